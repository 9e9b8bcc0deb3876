package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedInput returns one scripted command per poll; CmdNone means no key.
type scriptedInput struct {
	script []Command
	polls  int
}

func (s *scriptedInput) Poll(timeout time.Duration) (Command, bool) {
	defer func() { s.polls++ }()
	if s.polls >= len(s.script) {
		return CmdQuit, true
	}
	cmd := s.script[s.polls]
	return cmd, cmd != CmdNone
}

type recordingRenderer struct {
	frames []Snapshot
	err    error
}

func (r *recordingRenderer) Render(s Snapshot) error {
	r.frames = append(r.frames, s)
	return r.err
}

func newTestLoop(ts *testSession, input CommandSource, renderer Renderer) *Loop {
	l := NewLoop(ts.c, input, renderer, LoopConfig{
		PollTimeout:  50 * time.Millisecond,
		PositionTick: time.Second,
		FrameSleep:   500 * time.Millisecond,
	})
	l.sleep = ts.clock.Add
	return l
}

func TestLoop_CommandVisibleToNextAdvance(t *testing.T) {
	ts := newTestSession([]string{"A.mp3", "B.mp3", "C.mp3"}, Options{})
	input := &scriptedInput{script: []Command{CmdNext, CmdRestart, CmdNone, CmdQuit}}
	renderer := &recordingRenderer{}

	if err := newTestLoop(ts, input, renderer).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var names []string
	for _, f := range renderer.frames {
		names = append(names, f.TrackName)
	}
	// iteration 1 opens A then stops it, iteration 2 opens B then restarts
	// it, iteration 3 re-opens B.
	want := []string{"A", "B", "B"}
	if len(names) != len(want) {
		t.Fatalf("frames = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("frame %d = %q, want %q", i, names[i], want[i])
		}
	}

	wantDecoded := []string{"A.mp3", "B.mp3", "B.mp3"}
	if len(ts.decoder.decoded) != len(wantDecoded) {
		t.Fatalf("decoded = %v, want %v", ts.decoder.decoded, wantDecoded)
	}
	for i := range wantDecoded {
		if ts.decoder.decoded[i] != wantDecoded[i] {
			t.Errorf("decoded[%d] = %q, want %q", i, ts.decoder.decoded[i], wantDecoded[i])
		}
	}
	if !ts.c.Quitting() || !ts.sink.IsEmpty() {
		t.Error("loop should end with the sink stopped")
	}
}

func TestLoop_TicksPosition(t *testing.T) {
	ts := newTestSession([]string{"A.mp3"}, Options{})
	script := make([]Command, 6)
	renderer := &recordingRenderer{}

	if err := newTestLoop(ts, &scriptedInput{script: script}, renderer).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(renderer.frames) != 6 {
		t.Fatalf("got %d frames, want 6", len(renderer.frames))
	}
	if renderer.frames[0].Position != 0 {
		t.Errorf("first frame position = %v, want 0", renderer.frames[0].Position)
	}
	last := renderer.frames[len(renderer.frames)-1].Position
	if last != 2*time.Second {
		t.Errorf("last frame position = %v, want 2s", last)
	}
}

func TestLoop_RenderErrorsAreNotFatal(t *testing.T) {
	ts := newTestSession([]string{"A.mp3"}, Options{})
	renderer := &recordingRenderer{err: errors.New("broken pipe")}

	err := newTestLoop(ts, &scriptedInput{script: []Command{CmdNone, CmdNone}}, renderer).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(renderer.frames) != 2 {
		t.Errorf("got %d render attempts, want 2", len(renderer.frames))
	}
}

func TestLoop_CancelledContextQuits(t *testing.T) {
	ts := newTestSession([]string{"A.mp3"}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := newTestLoop(ts, &scriptedInput{}, &recordingRenderer{}).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !ts.c.Quitting() {
		t.Error("expected controller to be quitting")
	}
	if len(ts.decoder.decoded) != 0 {
		t.Errorf("nothing should be opened after cancel, decoded %v", ts.decoder.decoded)
	}
}

func TestLoop_NoPlayableTracks(t *testing.T) {
	ts := newTestSession([]string{"A.mp3", "B.mp3"}, Options{})
	ts.decoder.fail["A.mp3"] = errCorrupt
	ts.decoder.fail["B.mp3"] = errCorrupt

	err := newTestLoop(ts, &scriptedInput{script: make([]Command, 10)}, &recordingRenderer{}).Run(context.Background())
	if !errors.Is(err, ErrNoPlayableTracks) {
		t.Fatalf("Run error = %v, want ErrNoPlayableTracks", err)
	}
	if !ts.c.Quitting() {
		t.Error("expected controller to be quitting")
	}
}
