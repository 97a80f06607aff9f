package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/audiolibrelab/lapsecapture/internal/display"
	"github.com/audiolibrelab/lapsecapture/internal/ui"
)

type LoopOptions struct {
	MaxFPS int           // 0 free-runs
	Splash time.Duration // background-only frame shown before the first real frame
}

// Loop pumps input, redraws and presents; it owns the display
type Loop struct {
	app      *App
	disp     display.Display
	renderer *Renderer
	opts     LoopOptions
}

func NewLoop(app *App, disp display.Display, renderer *Renderer, opts LoopOptions) *Loop {
	return &Loop{app: app, disp: disp, renderer: renderer, opts: opts}
}

// Run returns nil on a quit event, a completed shutdown request or ctx
// cancellation. It does not close the display.
func (l *Loop) Run(ctx context.Context) error {
	if l.opts.Splash > 0 {
		l.renderer.DrawBackground(l.disp.Canvas())
		if err := l.disp.Present(); err != nil {
			return fmt.Errorf("failed to present splash: %w", err)
		}
		if !wait(ctx, l.opts.Splash) {
			return nil
		}
	}

	var tick <-chan time.Time
	if l.opts.MaxFPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(l.opts.MaxFPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	slog.Debug("Render loop started", "max_fps", l.opts.MaxFPS)
	for {
		if quit := l.pump(); quit {
			slog.Info("Quit requested")
			return nil
		}
		if l.app.Quitting() {
			return nil
		}

		l.renderer.Draw(l.disp.Canvas(), l.app)
		if err := l.disp.Present(); err != nil {
			return fmt.Errorf("failed to present frame: %w", err)
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}
	}
}

// pump dispatches pending taps and reports whether a quit event arrived
func (l *Loop) pump() bool {
	for _, ev := range l.disp.Poll() {
		switch ev.Kind {
		case display.EventQuit:
			return true
		case display.EventTap:
			if !ui.Dispatch(l.app.Screen(), ev.Pos, l.app) {
				slog.Debug("Tap not handled", "x", ev.Pos.X, "y", ev.Pos.Y)
			}
		}
	}
	return false
}

func wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
