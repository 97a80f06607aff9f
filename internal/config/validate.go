package config

import (
	"fmt"
	"strconv"
	"strings"
)

var supportedBackends = []string{"fswebcam", "libcamera"}

// Validate checks the values a session depends on
func Validate(cfg *Config) error {
	if !isSupportedBackend(cfg.Camera.Backend) {
		return fmt.Errorf("camera.backend '%s' is not supported (use: %s)", cfg.Camera.Backend, strings.Join(supportedBackends, ", "))
	}
	if _, _, err := ParseResolution(cfg.Camera.Resolution); err != nil {
		return fmt.Errorf("camera.resolution: %w", err)
	}
	if cfg.Camera.TimeoutSec < 0 {
		return fmt.Errorf("camera.timeout_sec must not be negative, got %d", cfg.Camera.TimeoutSec)
	}

	if cfg.Encoder.Command == "" {
		return fmt.Errorf("encoder.command must not be empty")
	}
	if cfg.Encoder.FPS <= 0 {
		return fmt.Errorf("encoder.fps must be positive, got %d", cfg.Encoder.FPS)
	}
	if _, _, err := ParseResolution(cfg.Encoder.Resolution); err != nil {
		return fmt.Errorf("encoder.resolution: %w", err)
	}
	if cfg.Encoder.OutputName == "" {
		return fmt.Errorf("encoder.output_name must not be empty")
	}

	if cfg.Session.SettlingMs < 0 {
		return fmt.Errorf("session.settling_ms must not be negative, got %d", cfg.Session.SettlingMs)
	}
	if strings.Count(cfg.Session.FramePattern, "%") != 1 || !strings.Contains(cfg.Session.FramePattern, "d") {
		return fmt.Errorf("session.frame_pattern '%s' must contain exactly one integer verb such as %%05d", cfg.Session.FramePattern)
	}

	if len(cfg.Display.Drivers) == 0 {
		return fmt.Errorf("display.drivers must list at least one driver")
	}
	if cfg.Display.MaxFPS < 0 {
		return fmt.Errorf("display.max_fps must not be negative, got %d", cfg.Display.MaxFPS)
	}
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		return fmt.Errorf("display size %dx%d is invalid", cfg.Display.Width, cfg.Display.Height)
	}

	if cfg.Paths.Output == "" {
		return fmt.Errorf("paths.output must not be empty")
	}
	return nil
}

// ParseResolution splits "WIDTHxHEIGHT"
func ParseResolution(s string) (int, int, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("resolution '%s' must look like 1280x720", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid width in '%s'", s)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid height in '%s'", s)
	}
	return w, h, nil
}

func isSupportedBackend(backend string) bool {
	for _, b := range supportedBackends {
		if b == backend {
			return true
		}
	}
	return false
}
