package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/audiolibrelab/lapsecapture/internal/service"

	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Capture a timelapse session without the touchscreen",
	Long: `Run one capture session using the persisted interval and frame count.
Frames are written to a timestamped directory under the output root and
encoded into a video when the session completes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			cfg.Paths.Output = output
		}

		// Create service instance
		slog.Debug("Creating rig")
		rig, err := service.New(cfg)
		if err != nil {
			return err
		}

		plan := rig.Plan()
		if frames, _ := cmd.Flags().GetInt("frames"); frames > 0 {
			plan.Frames = frames
		}
		if interval, _ := cmd.Flags().GetDuration("interval"); interval > 0 {
			plan.Interval = interval
		}

		slog.Info("Record command started", "frames", plan.Frames, "interval", plan.Interval, "output", cfg.Paths.Output)
		if err := rig.Session.Start(plan); err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		slog.Info("Capturing... Press Ctrl+C to stop")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go watchProgress(ctx, rig.Session, time.Second)

		finished := make(chan struct{})
		go func() {
			rig.Session.Wait()
			close(finished)
		}()

		// Handle interruption
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case <-sigChan:
			slog.Info("Stopping session...")
			rig.Session.Stop()
		case <-finished:
		}

		p := rig.Session.Progress()
		fmt.Printf("Captured %d of %d frames in %s\n", p.Captured, p.Total, p.Dir)
		if p.Video != "" {
			fmt.Printf("Video: %s\n", p.Video)
		}
		if p.LastError != "" {
			return fmt.Errorf("session ended with error: %s", p.LastError)
		}
		return nil
	},
}

func init() {
	recordCmd.Flags().StringP("output", "o", "", "output directory (overrides config)")
	recordCmd.Flags().IntP("frames", "n", 0, "frame count (overrides settings)")
	recordCmd.Flags().DurationP("interval", "i", 0, "interval between frames (overrides settings)")
}
