package play

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gigurra/audix/cmd/play/playlist"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	return home
}

func TestRun_ArgumentErrors(t *testing.T) {
	isolateHome(t)
	emptyDir := t.TempDir()
	file := filepath.Join(t.TempDir(), "song.mp3")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		dir  string
		want error
	}{
		{"no dir", "", playlist.ErrDirectoryNotFound},
		{"missing dir", filepath.Join(emptyDir, "nope"), playlist.ErrDirectoryNotFound},
		{"file instead of dir", file, playlist.ErrNotADirectory},
		{"no tracks", emptyDir, playlist.ErrNoTracksFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(&Params{Dir: tt.dir, Volume: "0.7"})
			if !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRun_MalformedConfig(t *testing.T) {
	home := isolateHome(t)
	configDir := filepath.Join(home, ".audix")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Run(&Params{Dir: t.TempDir(), Volume: "0.7"}); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestHooks(t *testing.T) {
	var notified []string
	origNotifier := Notifier
	Notifier = func(title, message string) error {
		notified = append(notified, title+": "+message)
		return errors.New("no notification daemon")
	}
	defer func() { Notifier = origNotifier }()

	logger := quietLogger()
	track := playlist.Track{Path: "/music/Song A.mp3"}

	h := hooks(&Params{}, logger)
	if h.TrackStarted != nil {
		t.Error("TrackStarted should be unset without --notify")
	}
	if h.CopyPath == nil {
		t.Error("CopyPath should always be set")
	}

	h = hooks(&Params{Notify: true}, logger)
	h.TrackStarted(track)
	if len(notified) != 1 || notified[0] != "audix: Now playing: Song A" {
		t.Errorf("notifications = %v", notified)
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
