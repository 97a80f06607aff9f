package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/audiolibrelab/lapsecapture/internal/capture"
)

type progressSource interface {
	Progress() capture.Progress
}

// watchProgress logs frame progress and session completion until ctx is done
func watchProgress(ctx context.Context, src progressSource, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var last capture.Progress
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		p := src.Progress()
		if p.Active && p.Current != last.Current && p.Current > 0 {
			slog.Info("Progress", "frame", p.Current, "total", p.Total, "captured", p.Captured)
		}
		if p.Encoding && !last.Encoding {
			slog.Info("Encoding video", "dir", p.Dir)
		}
		if !p.Active && last.Active {
			slog.Info("Session finished", "captured", p.Captured, "video", p.Video)
		}
		last = p
	}
}
