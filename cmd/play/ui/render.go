// Package ui draws the player frame and turns raw keyboard input into
// session commands.
package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/audix/cmd/play/session"
	"github.com/mattn/go-runewidth"
)

const (
	DefaultWidth   = 80
	barWidth       = 50
	volumeBarWidth = 20
	indent         = "  "
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	trackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	visualStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	legendStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

var visualizerBlocks = []rune("▁▂▃▄▅▆▇█")

// Frame lays out one screen for snap. Only the visualizer depends on rng.
func Frame(snap session.Snapshot, width int, rng *rand.Rand) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	bars := min(barWidth, max(width-len(indent)-16, 10))

	header := indent + headerStyle.Render("Audix Music Player")
	if tag := phaseTag(snap); tag != "" {
		header += "  " + tagStyle.Render(tag)
	}

	name := snap.TrackName
	if name == "" {
		name = "-"
	}
	nowPlaying := runewidth.Truncate("Now Playing: "+name, max(width-len(indent), 1), "…")

	status := "▶"
	if !snap.Playing {
		status = "⏸"
	}

	return []string{
		header,
		indent + trackStyle.Render(nowPlaying),
		indent + visualStyle.Render(Visualizer(bars, rng)),
		fmt.Sprintf("%s%s %s / %s", indent,
			ProgressBar(snap.Position, snap.Duration, bars),
			FormatDuration(snap.Position),
			FormatDuration(snap.Duration)),
		indent + counterStyle.Render(fmt.Sprintf("%s Track %d of %d", status, snap.CurrentTrack+1, snap.Total)),
		fmt.Sprintf("%s Volume: %s %.0f%%", indent, VolumeBar(snap.Volume, volumeBarWidth), snap.Volume*100),
		"",
		indent + legendStyle.Render("Controls:"),
		indent + legendStyle.Render("  [Space] Play/Pause  [h] Previous  [l] Next  [r] Restart  [s] Shuffle  [q] Quit"),
		indent + legendStyle.Render("  [↑/↓] Volume  [←/→] Seek  [y] Copy path"),
	}
}

func phaseTag(snap session.Snapshot) string {
	var tags []string
	switch snap.Phase {
	case session.PhaseLoading:
		tags = append(tags, "[loading]")
	case session.PhasePaused:
		tags = append(tags, "[paused]")
	case session.PhaseExhausted:
		tags = append(tags, "[looping]")
	}
	if snap.Shuffle {
		tags = append(tags, "[shuffle]")
	}
	return strings.Join(tags, " ")
}

// Visualizer is decorative noise; it carries no playback information.
func Visualizer(width int, rng *rand.Rand) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		sb.WriteRune(visualizerBlocks[rng.Intn(len(visualizerBlocks))])
	}
	return sb.String()
}

// ProgressBar renders position/duration, clamped to [0, 1], as a fixed-width bar.
func ProgressBar(position, duration time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	if duration <= 0 {
		return strings.Repeat("─", width)
	}
	ratio := float64(position) / float64(duration)
	ratio = min(max(ratio, 0), 1)
	filled := int(ratio * float64(width))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

func VolumeBar(level float64, width int) string {
	if width <= 0 {
		return ""
	}
	level = min(max(level, 0), 1)
	filled := int(level*float64(width) + 1e-9)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatDuration formats d as MM:SS.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
