package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/audiolibrelab/lapsecapture/internal/config"
	"github.com/audiolibrelab/lapsecapture/internal/settings"
)

func TestNew_WiresConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Settings = filepath.Join(t.TempDir(), "settings.yaml")
	cfg.Session.SettlingMs = 750

	rig, err := New(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rig.Camera.Command() != "fswebcam" {
		t.Errorf("Expected fswebcam camera, got %s", rig.Camera.Command())
	}
	if Settling(cfg) != 750*time.Millisecond {
		t.Errorf("Expected 750ms settling, got %v", Settling(cfg))
	}
	if rig.Session.Progress().Active {
		t.Error("Expected idle session")
	}
}

func TestPlan_FromSettings(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Settings = filepath.Join(t.TempDir(), "settings.yaml")

	rig, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := rig.Store.Save(settings.Values{settings.Interval: 10000, settings.Images: 12}); err != nil {
		t.Fatal(err)
	}

	plan := rig.Plan()
	if plan.Frames != 12 || plan.Interval != 10*time.Second {
		t.Errorf("Unexpected plan %+v", plan)
	}
}

func TestNew_BadCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Resolution = "nope"
	if _, err := New(cfg); err == nil {
		t.Error("Expected camera setup error")
	}
}
