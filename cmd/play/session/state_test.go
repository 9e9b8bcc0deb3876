package session

import (
	"strconv"
	"testing"
)

func TestSharedState_SnapshotsAreCopies(t *testing.T) {
	writer, reader := NewSharedState(0.5, 3)

	snap := reader.Snapshot()
	snap.TrackName = "mutated"
	if reader.Snapshot().TrackName != "" {
		t.Error("modifying a snapshot leaked into shared state")
	}

	writer.Update(func(s *Snapshot) { s.TrackName = "A" })
	if got := reader.Snapshot().TrackName; got != "A" {
		t.Errorf("TrackName = %q, want A", got)
	}
	if got := reader.Snapshot(); got.Volume != 0.5 || got.Total != 3 || got.Phase != PhaseLoading {
		t.Errorf("unexpected defaults %+v", got)
	}
}

func TestSharedState_NoTornReads(t *testing.T) {
	writer, reader := NewSharedState(0.7, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 1; i <= 2000; i++ {
			writer.Update(func(s *Snapshot) {
				s.CurrentTrack = i
				s.TrackName = strconv.Itoa(i)
			})
		}
	}()

	for {
		snap := reader.Snapshot()
		if snap.TrackName != "" && snap.TrackName != strconv.Itoa(snap.CurrentTrack) {
			t.Fatalf("torn snapshot: index %d name %q", snap.CurrentTrack, snap.TrackName)
		}
		select {
		case <-done:
			return
		default:
		}
	}
}

func TestCommandString(t *testing.T) {
	tests := map[Command]string{
		CmdTogglePause:   "toggle-pause",
		CmdToggleShuffle: "toggle-shuffle",
		CmdQuit:          "quit",
		Command(99):      "unknown",
	}
	for cmd, want := range tests {
		if got := cmd.String(); got != want {
			t.Errorf("Command(%d).String() = %q, want %q", int(cmd), got, want)
		}
	}
}
