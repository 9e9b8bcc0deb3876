package ui

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gigurra/audix/cmd/play/session"
	"golang.org/x/term"
)

var ErrRenderIO = errors.New("render failed")

// Screen redraws frames in place on a raw-mode terminal.
type Screen struct {
	out   io.Writer
	width func() int
	rng   *rand.Rand
}

func NewScreen(out io.Writer) *Screen {
	return &Screen{
		out:   out,
		width: TerminalWidth,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Render writes one frame. A failed write is returned wrapped in ErrRenderIO;
// the caller skips the frame and carries on.
func (s *Screen) Render(snap session.Snapshot) error {
	var sb strings.Builder
	sb.WriteString("\033[H") // Move to home
	for _, line := range Frame(snap, s.width(), s.rng) {
		sb.WriteString(line)
		sb.WriteString("\033[K\r\n") // Need \r in raw mode
	}
	sb.WriteString("\033[J")

	if _, err := io.WriteString(s.out, sb.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderIO, err)
	}
	return nil
}

// Enter hides the cursor and clears the screen.
func (s *Screen) Enter() {
	_, _ = io.WriteString(s.out, "\033[?25l\033[2J\033[H")
}

// Leave shows the cursor, clears the screen and says goodbye.
func (s *Screen) Leave() {
	_, _ = io.WriteString(s.out, "\033[?25h\033[2J\033[H  Goodbye!\r\n")
}

// TerminalWidth returns the current terminal width, or DefaultWidth if it
// cannot be determined.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// MakeRaw puts fd into raw mode. The returned func restores the previous
// mode and must run on every exit path.
func MakeRaw(fd int) (func(), error) {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}
	return func() { _ = term.Restore(fd, oldState) }, nil
}
