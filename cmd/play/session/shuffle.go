package session

import (
	"math/rand"
	"slices"

	"github.com/gigurra/audix/cmd/play/playlist"
	"github.com/samber/lo"
)

// permute returns a uniformly shuffled copy of tracks.
func permute(tracks []playlist.Track, rng *rand.Rand) []playlist.Track {
	out := slices.Clone(tracks)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// shuffledWithFirst shuffles tracks and then moves first to index 0, so the
// track that is already audible is not opened again.
func shuffledWithFirst(tracks []playlist.Track, first playlist.Track, rng *rand.Rand) []playlist.Track {
	out := permute(tracks, rng)
	if i := lo.IndexOf(out, first); i > 0 {
		out[0], out[i] = out[i], out[0]
	}
	return out
}
