package cmd

import (
	"context"
	"fmt"

	"github.com/audiolibrelab/lapsecapture/internal/encode"
	"github.com/audiolibrelab/lapsecapture/internal/play"

	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [session]",
	Short: "Encode the frames of a session into a video",
	Long: `Encode the captured frames of a session directory into a timelapse video.
Without an argument the most recent session under the output root is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var session string
		if len(args) == 1 {
			session = args[0]
		}

		// Get command line overrides
		if fps, _ := cmd.Flags().GetInt("fps"); fps > 0 {
			cfg.Encoder.FPS = fps
		}

		dir, err := play.New(cfg).SessionDir(session)
		if err != nil {
			return err
		}

		fmt.Printf("Encoding session: %s\n", dir)
		fmt.Printf("Frame rate: %d fps\n", cfg.Encoder.FPS)

		video, err := encode.New(cfg.Encoder).Encode(context.Background(), dir, cfg.Session.FramePattern)
		if err != nil {
			return fmt.Errorf("encoding failed: %w", err)
		}

		fmt.Printf("Encoding completed successfully: %s\n", video)
		return nil
	},
}

func init() {
	encodeCmd.Flags().IntP("fps", "f", 0, "output frame rate (overrides config)")
}
