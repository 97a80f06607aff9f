package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Camera.Backend != "fswebcam" {
		t.Errorf("Expected backend 'fswebcam', got %s", cfg.Camera.Backend)
	}
	if cfg.Session.SettlingMs != 200 {
		t.Errorf("Expected settling 200ms, got %d", cfg.Session.SettlingMs)
	}
	if cfg.Session.FramePattern != "%05d.jpg" {
		t.Errorf("Expected frame pattern %%05d.jpg, got %s", cfg.Session.FramePattern)
	}
	if len(cfg.Display.Drivers) != 2 || cfg.Display.Drivers[0] != "fbdev" {
		t.Errorf("Expected drivers [fbdev headless], got %v", cfg.Display.Drivers)
	}

	home, _ := os.UserHomeDir()
	if cfg.Paths.Output != filepath.Join(home, "LapseCapture") {
		t.Errorf("Expected expanded output directory, got %s", cfg.Paths.Output)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	content := `
paths:
  output: /tmp/lapses
camera:
  backend: libcamera
  resolution: 2028x1520
session:
  settling_ms: 2300
  encode_on_stop: true
display:
  drivers: [headless]
  max_fps: 0
`
	configFile := createTempConfig(t, content)
	defer os.Remove(configFile)

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Paths.Output != "/tmp/lapses" {
		t.Errorf("Expected output /tmp/lapses, got %s", cfg.Paths.Output)
	}
	if cfg.Camera.Backend != "libcamera" {
		t.Errorf("Expected backend libcamera, got %s", cfg.Camera.Backend)
	}
	if cfg.Camera.Device != "/dev/video0" {
		t.Errorf("Expected inherited device /dev/video0, got %s", cfg.Camera.Device)
	}
	if cfg.Session.SettlingMs != 2300 || !cfg.Session.EncodeOnStop {
		t.Errorf("Session section not applied: %+v", cfg.Session)
	}
	if len(cfg.Display.Drivers) != 1 || cfg.Display.Drivers[0] != "headless" {
		t.Errorf("Expected drivers [headless], got %v", cfg.Display.Drivers)
	}
	if cfg.Display.MaxFPS != 0 {
		t.Errorf("Expected max_fps 0, got %d", cfg.Display.MaxFPS)
	}
	if cfg.Encoder.FPS != 30 {
		t.Errorf("Expected inherited fps 30, got %d", cfg.Encoder.FPS)
	}
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("LAPSECAPTURE_SESSION_SETTLING_MS", "750")
	t.Setenv("LAPSECAPTURE_PATHS_OUTPUT", "/srv/lapse")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.Session.SettlingMs != 750 {
		t.Errorf("Expected settling 750 from env, got %d", cfg.Session.SettlingMs)
	}
	if cfg.Paths.Output != "/srv/lapse" {
		t.Errorf("Expected output /srv/lapse from env, got %s", cfg.Paths.Output)
	}
}

func TestBackgroundPath(t *testing.T) {
	cfg := Default()
	cfg.Paths.Icons = "/opt/icons"

	if got := cfg.BackgroundPath(); got != "/opt/icons/LapsePi.png" {
		t.Errorf("Expected /opt/icons/LapsePi.png, got %s", got)
	}

	cfg.Paths.Background = "/srv/splash.png"
	if got := cfg.BackgroundPath(); got != "/srv/splash.png" {
		t.Errorf("Expected absolute path to be kept, got %s", got)
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "lapsecapture.yaml")
	cfg := Default()
	cfg.Encoder.FPS = 24
	cfg.Paths.Output = "/data/lapse"

	if err := cfg.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Encoder.FPS != 24 {
		t.Errorf("Expected fps 24, got %d", loaded.Encoder.FPS)
	}
	if loaded.Paths.Output != "/data/lapse" {
		t.Errorf("Expected output /data/lapse, got %s", loaded.Paths.Output)
	}
}
