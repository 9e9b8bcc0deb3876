package ui

import (
	"io"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gigurra/audix/cmd/play/session"
)

type Key int

const (
	KeyRune Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEsc
	KeyCtrlC
)

type KeyEvent struct {
	Key  Key
	Rune rune
}

// ParseKeys decodes a chunk of raw terminal input. Arrow keys arrive as
// CSI (ESC [) or SS3 (ESC O) sequences.
func ParseKeys(b []byte) []KeyEvent {
	var events []KeyEvent
	for len(b) > 0 {
		switch {
		case b[0] == 0x1b && len(b) >= 3 && (b[1] == '[' || b[1] == 'O'):
			switch b[2] {
			case 'A':
				events = append(events, KeyEvent{Key: KeyUp})
			case 'B':
				events = append(events, KeyEvent{Key: KeyDown})
			case 'C':
				events = append(events, KeyEvent{Key: KeyRight})
			case 'D':
				events = append(events, KeyEvent{Key: KeyLeft})
			}
			b = b[3:]
		case b[0] == 0x1b:
			events = append(events, KeyEvent{Key: KeyEsc})
			b = b[1:]
		case b[0] == 3:
			events = append(events, KeyEvent{Key: KeyCtrlC})
			b = b[1:]
		case b[0] == '\r' || b[0] == '\n':
			events = append(events, KeyEvent{Key: KeyEnter})
			b = b[1:]
		default:
			r, size := utf8.DecodeRune(b)
			events = append(events, KeyEvent{Key: KeyRune, Rune: r})
			b = b[size:]
		}
	}
	return events
}

// CommandFor maps a key to its session command.
func CommandFor(ev KeyEvent) (session.Command, bool) {
	switch ev.Key {
	case KeyUp:
		return session.CmdVolumeUp, true
	case KeyDown:
		return session.CmdVolumeDown, true
	case KeyLeft:
		return session.CmdSeekBackward, true
	case KeyRight:
		return session.CmdSeekForward, true
	case KeyEsc, KeyCtrlC:
		return session.CmdQuit, true
	case KeyRune:
		switch unicode.ToLower(ev.Rune) {
		case ' ':
			return session.CmdTogglePause, true
		case 'h', 'p':
			return session.CmdPrevious, true
		case 'l', 'n':
			return session.CmdNext, true
		case 'r':
			return session.CmdRestart, true
		case 's':
			return session.CmdToggleShuffle, true
		case 'q':
			return session.CmdQuit, true
		case 'k', '+', '=':
			return session.CmdVolumeUp, true
		case 'j', '-':
			return session.CmdVolumeDown, true
		case 'y':
			return session.CmdCopyPath, true
		}
	}
	return session.CmdNone, false
}

// Input reads keys from r on a background goroutine and hands them out one
// poll at a time.
type Input struct {
	events chan KeyEvent
}

func NewInput(r io.Reader) *Input {
	in := &Input{events: make(chan KeyEvent, 64)}
	go in.read(r)
	return in
}

func (in *Input) read(r io.Reader) {
	defer close(in.events)
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, ev := range ParseKeys(buf[:n]) {
			in.events <- ev
		}
		if err != nil {
			return
		}
	}
}

// Poll waits at most timeout for one key. Unmapped keys yield no command.
func (in *Input) Poll(timeout time.Duration) (session.Command, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-in.events:
		if !ok {
			// Input closed: keep honouring the timeout instead of spinning.
			in.events = nil
			<-timer.C
			return session.CmdNone, false
		}
		return CommandFor(ev)
	case <-timer.C:
		return session.CmdNone, false
	}
}
