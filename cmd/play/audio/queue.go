package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

type queued struct {
	stream   *Stream
	streamer beep.Streamer
}

// queue plays appended streams back to back and emits silence when empty.
// All methods must be called with the speaker locked.
type queue struct {
	items []queued
}

func (q *queue) add(s *Stream, streamer beep.Streamer) {
	q.items = append(q.items, queued{stream: s, streamer: streamer})
}

func (q *queue) empty() bool {
	return len(q.items) == 0
}

// clear drops and closes every queued stream.
func (q *queue) clear() {
	for _, it := range q.items {
		_ = it.stream.Close()
	}
	q.items = nil
}

// seekHead moves the head stream to position, clamped to its length.
func (q *queue) seekHead(position time.Duration) error {
	if len(q.items) == 0 {
		return nil
	}
	head := q.items[0].stream
	n := head.format.SampleRate.N(position)
	n = min(max(n, 0), head.streamer.Len())
	return head.streamer.Seek(n)
}

func (q *queue) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		if len(q.items) == 0 {
			for i := filled; i < len(samples); i++ {
				samples[i] = [2]float64{}
			}
			break
		}

		n, ok := q.items[0].streamer.Stream(samples[filled:])
		if !ok || n == 0 {
			_ = q.items[0].stream.Close()
			q.items = q.items[1:]
		}
		filled += n
	}
	return len(samples), true
}

func (q *queue) Err() error {
	return nil
}

// gain maps a linear level in [0, 1] to effects.Volume settings with base 2.
func gain(level float64) (volume float64, silent bool) {
	if level <= 0 {
		return 0, true
	}
	return math.Log2(math.Min(level, 1)), false
}
