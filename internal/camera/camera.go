package camera

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/audiolibrelab/lapsecapture/internal/config"
)

// Still shells out to a still-capture tool once per frame
type Still struct {
	cfg     config.CameraConfig
	command string
	width   int
	height  int
}

func New(cfg config.CameraConfig) (*Still, error) {
	w, h, err := config.ParseResolution(cfg.Resolution)
	if err != nil {
		return nil, err
	}

	command := cfg.Command
	if command == "" {
		command = DefaultCommand(cfg.Backend)
	}
	if command == "" {
		return nil, fmt.Errorf("unsupported camera backend: %s", cfg.Backend)
	}

	return &Still{cfg: cfg, command: command, width: w, height: h}, nil
}

// DefaultCommand is the binary used when camera.command is empty
func DefaultCommand(backend string) string {
	switch backend {
	case "fswebcam":
		return "fswebcam"
	case "libcamera":
		return "libcamera-still"
	default:
		return ""
	}
}

func (c *Still) Command() string {
	return c.command
}

// Args builds the command line for one capture into path
func (c *Still) Args(path string) []string {
	var args []string
	switch c.cfg.Backend {
	case "libcamera":
		args = []string{
			"-n",
			"-t", "1",
			"--width", strconv.Itoa(c.width),
			"--height", strconv.Itoa(c.height),
		}
		args = append(args, c.cfg.ExtraArgs...)
		args = append(args, "-o", path)
	default:
		args = []string{
			"-d", c.cfg.Device,
			"-r", fmt.Sprintf("%dx%d", c.width, c.height),
			"--no-banner",
		}
		args = append(args, c.cfg.ExtraArgs...)
		args = append(args, path)
	}
	return args
}

func (c *Still) Capture(ctx context.Context, path string, frame int) error {
	if c.cfg.TimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutSec)*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.command, c.Args(path)...)
	slog.Debug("Running capture", "frame", frame, "command", strings.Join(cmd.Args, " "))

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s capture failed: %w\nOutput: %s", c.command, err, strings.TrimSpace(string(output)))
	}

	// fswebcam exits 0 when the device yields no frame
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("image not created: %s", path)
	}
	return nil
}
