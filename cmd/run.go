package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/audiolibrelab/lapsecapture/internal/app"
	"github.com/audiolibrelab/lapsecapture/internal/display"
	"github.com/audiolibrelab/lapsecapture/internal/service"
	"github.com/audiolibrelab/lapsecapture/internal/system"
	"github.com/audiolibrelab/lapsecapture/internal/ui"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the touchscreen controller",
	Long: `Open the display and touch input, then run the controller until quit,
ESC, power-off or Ctrl+C. Display drivers are tried in the configured order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		drivers := cfg.Display.Drivers
		if override, _ := cmd.Flags().GetStringSlice("driver"); len(override) > 0 {
			drivers = override
		}

		disp, driver, err := display.Open(drivers, display.Options{
			Framebuffer: cfg.Display.Framebuffer,
			TouchDevice: cfg.Display.TouchDevice,
			Width:       cfg.Display.Width,
			Height:      cfg.Display.Height,
			SwapXY:      cfg.Display.SwapXY,
			InvertX:     cfg.Display.InvertX,
			InvertY:     cfg.Display.InvertY,
			Snapshot:    cfg.Display.Snapshot,
		})
		if err != nil {
			return fmt.Errorf("failed to open display: %w", err)
		}

		screens := ui.DefaultScreens()
		icons, err := ui.LoadIcons(cfg.Paths.Icons)
		if err != nil {
			slog.Warn("Icons not loaded, drawing plain regions", "dir", cfg.Paths.Icons, "error", err)
		}
		screens.Resolve(icons)

		background, err := ui.LoadImage(cfg.BackgroundPath())
		if err != nil {
			slog.Debug("No background image", "path", cfg.BackgroundPath(), "error", err)
		}

		rig, err := service.New(cfg)
		if err != nil {
			disp.Close()
			return err
		}

		controller := app.New(screens, rig.Store, rig.Session,
			system.NewShutdown(cfg.System.ShutdownCommand), service.Settling(cfg))
		renderer := app.NewRenderer(display.NewFonts(), background,
			system.NewDiskProbe(cfg.Paths.Output, 5*time.Second))
		loop := app.NewLoop(controller, disp, renderer, app.LoopOptions{
			MaxFPS: cfg.Display.MaxFPS,
			Splash: time.Duration(cfg.Display.SplashMs) * time.Millisecond,
		})

		slog.Info("Controller running", "driver", driver, "settings", rig.Store.Path(), "output", cfg.Paths.Output)
		if driver == "headless" {
			slog.Info("Headless display has no input - Press Ctrl+C to quit")
		}

		// Handle interruption
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(sigCtx)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			defer cancel()
			return loop.Run(gctx)
		})
		g.Go(func() error {
			return watchProgress(gctx, rig.Session, time.Second)
		})
		runErr := g.Wait()

		slog.Info("Shutting down controller")
		rig.Session.Stop()
		if err := disp.Close(); err != nil {
			slog.Warn("Failed to close display", "error", err)
		}

		if runErr != nil {
			return fmt.Errorf("controller failed: %w", runErr)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringSlice("driver", nil, "display drivers to try in order (overrides config)")
}
