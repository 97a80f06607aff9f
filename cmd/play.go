package cmd

import (
	"fmt"

	"github.com/audiolibrelab/lapsecapture/internal/play"

	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [session]",
	Short: "Play the encoded video of a session",
	Long: `Play a session's timelapse video with the first available player
(mpv, vlc or ffplay). Without an argument the most recent session is played.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var session string
		if len(args) == 1 {
			session = args[0]
		}

		if err := play.New(cfg).Play(session); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
		return nil
	},
}
