package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/audiolibrelab/lapsecapture/internal/capture"
	"github.com/audiolibrelab/lapsecapture/internal/settings"
	"github.com/audiolibrelab/lapsecapture/internal/ui"
)

// Controller is the capture session as the interface drives it
type Controller interface {
	Start(plan capture.Plan) error
	Stop()
	Progress() capture.Progress
}

type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// App holds all interface state owned by the render goroutine
type App struct {
	screens  *ui.ScreenSet
	machine  *Machine
	store    settings.Store
	values   settings.Values
	session  Controller
	shutdown Shutdowner
	settling time.Duration
	quitting bool
}

func New(screens *ui.ScreenSet, store settings.Store, session Controller, shutdown Shutdowner, settling time.Duration) *App {
	return &App{
		screens:  screens,
		machine:  NewMachine(),
		store:    store,
		values:   settings.Normalize(store.Load()),
		session:  session,
		shutdown: shutdown,
		settling: settling,
	}
}

func (a *App) Machine() *Machine {
	return a.machine
}

// Screen is the active screen's region list
func (a *App) Screen() *ui.Screen {
	return a.screens.Screen(a.machine.Active())
}

func (a *App) Values() settings.Values {
	return a.values.Clone()
}

func (a *App) Progress() capture.Progress {
	return a.session.Progress()
}

func (a *App) Settling() time.Duration {
	return a.settling
}

// Quitting is set once a shutdown has been requested successfully
func (a *App) Quitting() bool {
	return a.quitting
}

// Plan is the session the current settings describe
func (a *App) Plan() capture.Plan {
	return capture.Plan{
		Frames:   a.values.Get(settings.Images),
		Interval: time.Duration(a.values.Get(settings.Interval)) * time.Millisecond,
	}
}

// HandleAction is the single dispatcher for every region action. Actions
// that do not belong to the active screen are ignored.
func (a *App) HandleAction(act ui.Action) {
	owner, ok := screenFor(act.Kind)
	if !ok || owner != a.machine.Active() {
		slog.Debug("Action ignored", "action", act, "screen", a.machine.Active())
		return
	}
	slog.Debug("Action", "action", act, "screen", a.machine.Active())

	switch act.Kind {
	case ui.ActionStart:
		if err := a.session.Start(a.Plan()); err != nil {
			slog.Warn("Failed to start session", "error", err)
		}

	case ui.ActionStop:
		a.session.Stop()

	case ui.ActionOpenSettings:
		a.machine.OpenSettings()

	case ui.ActionEditField:
		if act.Arg < 0 || act.Arg >= len(settings.Fields) {
			slog.Warn("No such setting field", "index", act.Arg)
			return
		}
		field := settings.Fields[act.Arg]
		a.machine.OpenEditor(field, a.values.Get(field.Key))

	case ui.ActionSettingsDone:
		a.persist()
		a.machine.Done()

	case ui.ActionShutdown:
		a.requestShutdown()

	case ui.ActionDigit:
		a.machine.Editor().Append(act.Arg)

	case ui.ActionDelete:
		a.machine.Editor().Delete()

	case ui.ActionCancel:
		a.machine.CloseEditor()

	case ui.ActionConfirm:
		editor := a.machine.Editor()
		a.values[editor.Field.Key] = editor.Value()
		a.persist()
		a.machine.CloseEditor()
	}
}

// persist failures are logged and otherwise ignored
func (a *App) persist() {
	if err := a.store.Save(a.values); err != nil {
		slog.Warn("Failed to save settings", "error", err)
	}
}

func (a *App) requestShutdown() {
	if a.shutdown == nil {
		slog.Warn("Shutdown requested but not configured")
		return
	}

	a.session.Stop()
	a.persist()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.shutdown.Shutdown(ctx); err != nil {
		slog.Warn("Shutdown failed", "error", err)
		return
	}
	a.quitting = true
}
