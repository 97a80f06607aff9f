package encode

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/audiolibrelab/lapsecapture/internal/config"
)

// Encoder assembles a session's numbered frames into one video with FFmpeg
type Encoder struct {
	cfg config.EncoderConfig
}

func New(cfg config.EncoderConfig) *Encoder {
	return &Encoder{cfg: cfg}
}

// OutputPath is where the video for dir is written
func (e *Encoder) OutputPath(dir string) string {
	return filepath.Join(dir, e.cfg.OutputName)
}

// Args builds the FFmpeg command line for dir/pattern
func (e *Encoder) Args(dir, pattern string) []string {
	args := []string{
		"-y", // Overwrite output file
		"-framerate", strconv.Itoa(e.cfg.FPS),
		"-i", filepath.Join(dir, pattern),
	}
	if e.cfg.Resolution != "" {
		args = append(args, "-s", e.cfg.Resolution)
	}
	if e.cfg.Codec != "" {
		args = append(args, "-c:v", e.cfg.Codec)
	}
	args = append(args, "-pix_fmt", "yuv420p")
	args = append(args, e.cfg.ExtraArgs...)
	args = append(args, e.OutputPath(dir))
	return args
}

// Encode runs to completion; ctx only bounds the FFmpeg process lifetime
func (e *Encoder) Encode(ctx context.Context, dir, pattern string) (string, error) {
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("session directory not found: %s", dir)
	}

	outputFile := e.OutputPath(dir)

	// Remove existing output file
	os.Remove(outputFile)

	cmd := exec.CommandContext(ctx, e.cfg.Command, e.Args(dir, pattern)...)
	slog.Debug("Running FFmpeg for encoding", "command", strings.Join(cmd.Args, " "))

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("FFmpeg encoding failed: %w\nOutput: %s", err, lastLines(string(output), 5))
	}

	// Verify output file was created
	if _, err := os.Stat(outputFile); err != nil {
		return "", fmt.Errorf("output file not created: %s", outputFile)
	}

	slog.Info("Encoded video saved to", "file", outputFile)
	return outputFile, nil
}

// FFmpeg prints its banner first; the cause is at the end
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
