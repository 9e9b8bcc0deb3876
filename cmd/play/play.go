// Package play runs an interactive playback session over a directory of
// audio files.
package play

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/atotto/clipboard"
	"github.com/gen2brain/beeep"
	"github.com/gigurra/audix/cmd/common"
	"github.com/gigurra/audix/cmd/play/audio"
	"github.com/gigurra/audix/cmd/play/playlist"
	"github.com/gigurra/audix/cmd/play/session"
	"github.com/gigurra/audix/cmd/play/ui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type Params struct {
	Dir     string `short:"d" help:"Directory with audio files to play."`
	Shuffle bool   `short:"s" optional:"true" help:"Start in shuffled order."`
	Volume  string `short:"v" default:"0.7" help:"Initial volume between 0.0 and 1.0."`
	Notify  bool   `optional:"true" help:"Show a desktop notification when a track starts."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "play",
		Short:       "Play all audio files in a directory",
		Long:        Long,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc:     RunFunc,
	}.ToCobra()
}

const Long = `Play every mp3, wav, flac and ogg file under a directory, sorted by path.

Controls: Space play/pause, h previous, l next, r restart, s shuffle,
Up/Down volume, Left/Right seek, y copy path, q quit.`

// RunFunc is shared by the root command and the play subcommand.
func RunFunc(params *Params, cmd *cobra.Command, args []string) {
	if err := Run(params); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "audix: %v\n", err)
		os.Exit(1)
	}
}

// Notifier posts a desktop notification.
var Notifier = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// ClipboardWriter copies text to the system clipboard.
var ClipboardWriter = clipboard.WriteAll

func hooks(params *Params, logger *slog.Logger) session.Hooks {
	h := session.Hooks{
		CopyPath: ClipboardWriter,
	}
	if params.Notify {
		h.TrackStarted = func(track playlist.Track) {
			if err := Notifier("audix", "Now playing: "+track.Name()); err != nil {
				logger.Warn("notification failed", "track", track.Path, "error", err)
			}
		}
	}
	return h
}

func Run(params *Params) error {
	if params.Dir == "" {
		return fmt.Errorf("%w: no directory given", playlist.ErrDirectoryNotFound)
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	volume := common.ParseLevel(params.Volume, session.DefaultVolume)

	logger, closeLog := common.SetupLogging(common.LogPath(), cfg.LogLevel)
	defer closeLog()
	logger = logger.With("session", uuid.NewString())

	tracks, err := playlist.Scan(params.Dir)
	if err != nil {
		return err
	}
	logger.Info("session starting", "dir", params.Dir, "tracks", len(tracks), "shuffle", params.Shuffle)

	sink, err := audio.NewSpeakerSink()
	if err != nil {
		return err
	}
	defer sink.Close()

	controller, err := session.New(tracks, audio.NewDecoder(), sink, session.Options{
		Shuffle:         params.Shuffle,
		Volume:          volume,
		VolumeStep:      cfg.VolumeStep,
		NominalDuration: cfg.NominalDuration(),
		SeekStep:        cfg.SeekStep(),
		Logger:          logger,
		Hooks:           hooks(params, logger),
	})
	if err != nil {
		return err
	}

	restore, err := ui.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer restore()

	screen := ui.NewScreen(os.Stdout)
	screen.Enter()
	defer screen.Leave()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := session.NewLoop(controller, ui.NewInput(os.Stdin), screen, session.LoopConfig{
		PollTimeout:  cfg.InputPoll(),
		PositionTick: cfg.PositionTick(),
		FrameSleep:   cfg.FrameSleep(),
	})
	err = loop.Run(ctx)
	logger.Info("session ended", "error", err)
	return err
}
