// Package session implements the playback session: the controller that owns
// the playlist cursor, the state it shares with the renderer, and the
// cooperative loop that drives both.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/gigurra/audix/cmd/play/playlist"
	"github.com/samber/lo"
)

var ErrNoPlayableTracks = errors.New("no playable tracks")

const (
	DefaultVolume          = 0.7
	DefaultVolumeStep      = 0.05
	DefaultNominalDuration = 180 * time.Second
	DefaultSeekStep        = 10 * time.Second
)

// Stream is a decoded track ready to be handed to a Sink.
type Stream interface {
	Close() error
}

// Decoder opens a track and produces a playable stream.
type Decoder interface {
	Decode(track playlist.Track) (Stream, error)
}

// Sink renders appended streams asynchronously. IsEmpty becomes true once
// every appended stream has finished or been stopped.
type Sink interface {
	Append(s Stream) error
	Play()
	Pause()
	Stop()
	SetVolume(level float64)
	IsEmpty() bool
}

// Seeker is implemented by sinks that can move within the current stream.
type Seeker interface {
	SeekTo(position time.Duration) error
}

// Hooks are optional side effects run by the controller.
type Hooks struct {
	TrackStarted func(track playlist.Track)
	CopyPath     func(path string) error
}

type Options struct {
	Shuffle         bool
	Volume          float64
	VolumeStep      float64
	NominalDuration time.Duration
	SeekStep        time.Duration
	Rand            *rand.Rand
	Now             func() time.Time
	Logger          *slog.Logger
	Hooks           Hooks
}

// Controller owns the playlist, the cursor and the sink for one session.
// It is not safe for concurrent use; only the loop calls it.
type Controller struct {
	natural  []playlist.Track
	playlist []playlist.Track
	cursor   int // next track to open; len(playlist) means exhausted

	shuffle  bool
	quit     bool
	playing  bool
	hasTrack bool
	phase    Phase
	volume   float64
	failures int

	startedAt time.Time
	pausedAt  time.Time

	decoder Decoder
	sink    Sink
	state   *StateWriter
	reader  *StateReader

	volumeStep float64
	nominal    time.Duration
	seekStep   time.Duration
	rng        *rand.Rand
	now        func() time.Time
	log        *slog.Logger
	hooks      Hooks
}

// New creates a controller over tracks, which must be non-empty.
func New(tracks []playlist.Track, decoder Decoder, sink Sink, opts Options) (*Controller, error) {
	if len(tracks) == 0 {
		return nil, playlist.ErrNoTracksFound
	}

	if opts.VolumeStep <= 0 {
		opts.VolumeStep = DefaultVolumeStep
	}
	if opts.NominalDuration <= 0 {
		opts.NominalDuration = DefaultNominalDuration
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = DefaultSeekStep
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	volume := roundLevel(clampLevel(opts.Volume))
	writer, reader := NewSharedState(volume, len(tracks))

	c := &Controller{
		natural:    slices.Clone(tracks),
		playlist:   slices.Clone(tracks),
		phase:      PhaseLoading,
		volume:     volume,
		decoder:    decoder,
		sink:       sink,
		state:      writer,
		reader:     reader,
		volumeStep: opts.VolumeStep,
		nominal:    opts.NominalDuration,
		seekStep:   opts.SeekStep,
		rng:        opts.Rand,
		now:        opts.Now,
		log:        opts.Logger,
		hooks:      opts.Hooks,
	}

	if opts.Shuffle {
		c.playlist = permute(c.natural, c.rng)
		c.shuffle = true
	}
	c.state.Update(func(s *Snapshot) {
		s.Shuffle = c.shuffle
		s.Duration = c.nominal
	})
	sink.SetVolume(volume)

	return c, nil
}

// Reader returns the read-only handle on the state this controller writes.
func (c *Controller) Reader() *StateReader {
	return c.reader
}

func (c *Controller) Cursor() int {
	return c.cursor
}

func (c *Controller) Phase() Phase {
	return c.phase
}

func (c *Controller) Shuffled() bool {
	return c.shuffle
}

func (c *Controller) Quitting() bool {
	return c.quit
}

// Playlist returns a copy of the active ordering.
func (c *Controller) Playlist() []playlist.Track {
	return slices.Clone(c.playlist)
}

// Advance opens the track at the cursor once the sink has drained. A track
// that fails to open is logged and skipped; the next call tries the one after
// it. Only a full lap of failures ends the session.
func (c *Controller) Advance() error {
	if c.quit || !c.sink.IsEmpty() {
		return nil
	}

	if c.cursor >= len(c.playlist) {
		c.setPhase(PhaseExhausted)
		c.log.Debug("playlist exhausted, looping", "tracks", len(c.playlist))
		c.cursor = 0
	}

	track := c.playlist[c.cursor]
	if err := c.open(track); err != nil {
		c.log.Warn("skipping track", "track", track.Path, "index", c.cursor, "error", err)
		c.cursor++
		c.failures++
		c.hasTrack = false
		c.setPhase(PhaseLoading)
		if c.failures >= len(c.playlist) {
			return fmt.Errorf("%w: all %d tracks failed to open", ErrNoPlayableTracks, len(c.playlist))
		}
		return nil
	}

	c.failures = 0
	if !c.playing {
		c.sink.Play()
	}
	c.playing = true
	c.hasTrack = true
	c.phase = PhasePlaying
	c.startedAt = c.now()
	c.pausedAt = time.Time{}

	index := c.cursor
	c.state.Update(func(s *Snapshot) {
		s.CurrentTrack = index
		s.TrackName = track.Name()
		s.TrackPath = track.Path
		s.Duration = c.nominal
		s.Position = 0
		s.Playing = true
		s.Phase = PhasePlaying
	})
	c.cursor++

	c.log.Info("playing", "track", track.Path, "index", index)
	if c.hooks.TrackStarted != nil {
		c.hooks.TrackStarted(track)
	}
	return nil
}

func (c *Controller) open(track playlist.Track) error {
	stream, err := c.decoder.Decode(track)
	if err != nil {
		return err
	}
	if err := c.sink.Append(stream); err != nil {
		_ = stream.Close()
		return err
	}
	return nil
}

// Apply executes one command against the current state.
func (c *Controller) Apply(cmd Command) {
	if c.quit {
		return
	}

	switch cmd {
	case CmdTogglePause:
		c.togglePause()
	case CmdNext:
		c.stopCurrent()
	case CmdPrevious:
		c.previous()
	case CmdRestart:
		if c.cursor > 0 {
			c.cursor--
			c.stopCurrent()
		}
	case CmdVolumeUp:
		c.setVolume(c.volume + c.volumeStep)
	case CmdVolumeDown:
		c.setVolume(c.volume - c.volumeStep)
	case CmdToggleShuffle:
		c.toggleShuffle()
	case CmdSeekForward:
		c.seek(c.seekStep)
	case CmdSeekBackward:
		c.seek(-c.seekStep)
	case CmdCopyPath:
		c.copyPath()
	case CmdQuit:
		c.quit = true
		c.sink.Stop()
		c.hasTrack = false
		c.setPhase(PhaseTerminating)
	default:
		return
	}
	c.log.Debug("command applied", "command", cmd.String(), "cursor", c.cursor)
}

// Tick refreshes the displayed position from the wall clock.
func (c *Controller) Tick() {
	if !c.playing || !c.hasTrack {
		return
	}
	pos := min(c.now().Sub(c.startedAt), c.nominal)
	pos = max(pos, 0)
	c.state.Update(func(s *Snapshot) {
		s.Position = pos
	})
}

func (c *Controller) togglePause() {
	now := c.now()
	if c.playing {
		c.sink.Pause()
		c.playing = false
		c.pausedAt = now
		if c.hasTrack {
			c.phase = PhasePaused
		}
	} else {
		c.sink.Play()
		c.playing = true
		if !c.pausedAt.IsZero() {
			c.startedAt = c.startedAt.Add(now.Sub(c.pausedAt))
			c.pausedAt = time.Time{}
		}
		if c.hasTrack {
			c.phase = PhasePlaying
		}
	}

	playing, phase := c.playing, c.phase
	c.state.Update(func(s *Snapshot) {
		s.Playing = playing
		s.Phase = phase
	})
}

func (c *Controller) previous() {
	switch {
	case c.cursor > 1:
		c.cursor -= 2
	case c.cursor == 1:
		c.cursor = len(c.playlist) - 1
	default:
		return
	}
	c.stopCurrent()
}

// stopCurrent drains the sink so the next Advance opens the track at the cursor.
func (c *Controller) stopCurrent() {
	c.sink.Stop()
	c.hasTrack = false
	c.setPhase(PhaseLoading)
}

func (c *Controller) setVolume(level float64) {
	c.volume = roundLevel(clampLevel(level))
	c.sink.SetVolume(c.volume)
	volume := c.volume
	c.state.Update(func(s *Snapshot) {
		s.Volume = volume
	})
}

func (c *Controller) seek(delta time.Duration) {
	if !c.hasTrack {
		return
	}

	now := c.now()
	current := c.positionAt(now)
	target := min(max(current+delta, 0), c.nominal)

	if seeker, ok := c.sink.(Seeker); ok {
		if err := seeker.SeekTo(target); err != nil {
			c.log.Warn("seek failed", "target", target, "error", err)
			return
		}
	}

	c.startedAt = now.Add(-target)
	if !c.playing {
		c.pausedAt = now
	}
	c.state.Update(func(s *Snapshot) {
		s.Position = target
	})
}

// positionAt is the elapsed play time at now, frozen while paused.
func (c *Controller) positionAt(now time.Time) time.Duration {
	if !c.playing && !c.pausedAt.IsZero() {
		now = c.pausedAt
	}
	return max(now.Sub(c.startedAt), 0)
}

func (c *Controller) copyPath() {
	if c.hooks.CopyPath == nil {
		return
	}
	path := c.state.Snapshot().TrackPath
	if path == "" {
		return
	}
	if err := c.hooks.CopyPath(path); err != nil {
		c.log.Warn("copy path failed", "path", path, "error", err)
	}
}

func (c *Controller) toggleShuffle() {
	if c.shuffle {
		// The cursor keeps its value, so the next advance may open a track
		// unrelated to the audible one.
		var audible string
		if c.hasTrack {
			audible = c.state.Snapshot().TrackPath
		}
		c.playlist = slices.Clone(c.natural)
		c.shuffle = false
		display := lo.IndexOf(c.natural, playlist.Track{Path: audible})
		c.state.Update(func(s *Snapshot) {
			s.Shuffle = false
			if display >= 0 {
				s.CurrentTrack = display
			}
		})
		c.log.Info("shuffle disabled", "cursor", c.cursor)
		return
	}

	current := c.playlist[0]
	if c.cursor > 0 {
		current = c.playlist[c.cursor-1]
	}
	c.playlist = shuffledWithFirst(c.natural, current, c.rng)
	c.cursor = 1
	c.shuffle = true
	c.state.Update(func(s *Snapshot) {
		s.Shuffle = true
		s.CurrentTrack = 0
	})
	c.log.Info("shuffle enabled", "current", current.Path)
}

func (c *Controller) setPhase(p Phase) {
	c.phase = p
	c.state.Update(func(s *Snapshot) {
		s.Phase = p
	})
}

func clampLevel(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// roundLevel drops float noise so repeated steps land on exact values.
func roundLevel(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
