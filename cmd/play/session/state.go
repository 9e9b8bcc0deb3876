package session

import (
	"sync"
	"time"
)

// Phase is the controller's position in the session state machine.
type Phase string

const (
	PhaseLoading     Phase = "loading"
	PhasePlaying     Phase = "playing"
	PhasePaused      Phase = "paused"
	PhaseExhausted   Phase = "exhausted"
	PhaseTerminating Phase = "terminating"
)

// Snapshot is a consistent view of what is playing right now.
type Snapshot struct {
	CurrentTrack int
	TrackName    string
	TrackPath    string
	Playing      bool
	Volume       float64 // 0.0 to 1.0
	Position     time.Duration
	Duration     time.Duration
	Total        int
	Shuffle      bool
	Phase        Phase
}

type sharedState struct {
	mu   sync.Mutex
	snap Snapshot
}

// StateWriter is the controller's handle on the shared state. It is the
// only way to mutate it.
type StateWriter struct {
	s *sharedState
}

// StateReader is the renderer's handle on the shared state. It can only
// take whole snapshots.
type StateReader struct {
	s *sharedState
}

// NewSharedState creates the state shared between one writer and one reader.
func NewSharedState(volume float64, total int) (*StateWriter, *StateReader) {
	s := &sharedState{
		snap: Snapshot{
			Volume: volume,
			Total:  total,
			Phase:  PhaseLoading,
		},
	}
	return &StateWriter{s: s}, &StateReader{s: s}
}

// Update applies fn to the state while holding the lock, so readers never
// observe a partial update.
func (w *StateWriter) Update(fn func(*Snapshot)) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	fn(&w.s.snap)
}

// Snapshot returns a copy of the current state. Writers use it to read back
// what they last wrote.
func (w *StateWriter) Snapshot() Snapshot {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	return w.s.snap
}

// Snapshot returns a copy of the current state.
func (r *StateReader) Snapshot() Snapshot {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.snap
}
