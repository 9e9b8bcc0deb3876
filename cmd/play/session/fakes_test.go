package session

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gigurra/audix/cmd/play/playlist"
)

type fakeStream struct {
	path   string
	closed bool
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeDecoder struct {
	fail    map[string]error
	decoded []string
}

func (d *fakeDecoder) Decode(track playlist.Track) (Stream, error) {
	d.decoded = append(d.decoded, track.Path)
	if err, ok := d.fail[track.Path]; ok {
		return nil, err
	}
	return &fakeStream{path: track.Path}, nil
}

type fakeSink struct {
	queue  []*fakeStream
	paused bool
	volume float64
	calls  []string
}

func (s *fakeSink) Append(st Stream) error {
	s.queue = append(s.queue, st.(*fakeStream))
	s.calls = append(s.calls, "append")
	return nil
}

func (s *fakeSink) Play() {
	s.paused = false
	s.calls = append(s.calls, "play")
}

func (s *fakeSink) Pause() {
	s.paused = true
	s.calls = append(s.calls, "pause")
}

func (s *fakeSink) Stop() {
	for _, st := range s.queue {
		_ = st.Close()
	}
	s.queue = nil
	s.calls = append(s.calls, "stop")
}

func (s *fakeSink) SetVolume(level float64) {
	s.volume = level
	s.calls = append(s.calls, "volume")
}

func (s *fakeSink) IsEmpty() bool {
	return len(s.queue) == 0
}

// finish simulates the device running out of the head stream.
func (s *fakeSink) finish() {
	if len(s.queue) > 0 {
		_ = s.queue[0].Close()
		s.queue = s.queue[1:]
	}
}

func (s *fakeSink) resetCalls() {
	s.calls = nil
}

type seekingSink struct {
	fakeSink
	seeks []time.Duration
	err   error
}

func (s *seekingSink) SeekTo(position time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.seeks = append(s.seeks, position)
	return nil
}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Add(d time.Duration) {
	c.t = c.t.Add(d)
}

var errCorrupt = errors.New("corrupt")

func tracksOf(paths ...string) []playlist.Track {
	out := make([]playlist.Track, len(paths))
	for i, p := range paths {
		out[i] = playlist.Track{Path: p}
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testSession struct {
	c       *Controller
	sink    *fakeSink
	decoder *fakeDecoder
	clock   *fakeClock
}

func newTestSession(paths []string, opts Options) *testSession {
	ts := &testSession{
		sink:    &fakeSink{},
		decoder: &fakeDecoder{fail: map[string]error{}},
		clock:   newFakeClock(),
	}
	if opts.Volume == 0 {
		opts.Volume = DefaultVolume
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	opts.Now = ts.clock.Now
	opts.Logger = quietLogger()

	c, err := New(tracksOf(paths...), ts.decoder, ts.sink, opts)
	if err != nil {
		panic(err)
	}
	ts.c = c
	return ts
}

func (ts *testSession) snapshot() Snapshot {
	return ts.c.Reader().Snapshot()
}
