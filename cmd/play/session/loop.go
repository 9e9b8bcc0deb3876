package session

import (
	"context"
	"log/slog"
	"time"
)

// CommandSource yields at most one command per poll, waiting no longer than
// timeout.
type CommandSource interface {
	Poll(timeout time.Duration) (Command, bool)
}

// Renderer draws one frame from a snapshot.
type Renderer interface {
	Render(s Snapshot) error
}

type LoopConfig struct {
	PollTimeout  time.Duration
	PositionTick time.Duration
	FrameSleep   time.Duration
}

func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		PollTimeout:  50 * time.Millisecond,
		PositionTick: time.Second,
		FrameSleep:   50 * time.Millisecond,
	}
}

// Loop is the cooperative scheduler. Every iteration runs, in order: advance,
// input, position tick, render, sleep. A command applied in one iteration is
// seen by the advance step of the next.
type Loop struct {
	controller *Controller
	input      CommandSource
	renderer   Renderer
	reader     *StateReader
	cfg        LoopConfig

	now   func() time.Time
	sleep func(time.Duration)
	log   *slog.Logger
}

func NewLoop(c *Controller, input CommandSource, renderer Renderer, cfg LoopConfig) *Loop {
	return &Loop{
		controller: c,
		input:      input,
		renderer:   renderer,
		reader:     c.Reader(),
		cfg:        cfg,
		now:        c.now,
		sleep:      time.Sleep,
		log:        c.log,
	}
}

// Run drives the session until quit. Cancelling ctx quits the same way the
// quit command does. The only error returned is from Advance.
func (l *Loop) Run(ctx context.Context) error {
	lastTick := l.now()

	for {
		if ctx.Err() != nil {
			l.log.Info("session cancelled", "reason", context.Cause(ctx))
			l.controller.Apply(CmdQuit)
			return nil
		}

		if err := l.controller.Advance(); err != nil {
			l.controller.Apply(CmdQuit)
			return err
		}

		if cmd, ok := l.input.Poll(l.cfg.PollTimeout); ok {
			l.controller.Apply(cmd)
			if l.controller.Quitting() {
				return nil
			}
		}

		if now := l.now(); now.Sub(lastTick) >= l.cfg.PositionTick {
			l.controller.Tick()
			lastTick = now
		}

		if err := l.renderer.Render(l.reader.Snapshot()); err != nil {
			l.log.Debug("frame skipped", "error", err)
		}

		l.sleep(l.cfg.FrameSleep)
	}
}
