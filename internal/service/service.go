package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/audiolibrelab/lapsecapture/internal/camera"
	"github.com/audiolibrelab/lapsecapture/internal/capture"
	"github.com/audiolibrelab/lapsecapture/internal/config"
	"github.com/audiolibrelab/lapsecapture/internal/encode"
	"github.com/audiolibrelab/lapsecapture/internal/settings"
)

// Rig wires the configured collaborators around one capture session
type Rig struct {
	Config  *config.Config
	Camera  *camera.Still
	Encoder *encode.Encoder
	Session *capture.Session
	Store   *settings.FileStore
}

func New(cfg *config.Config) (*Rig, error) {
	cam, err := camera.New(cfg.Camera)
	if err != nil {
		return nil, fmt.Errorf("failed to set up camera: %w", err)
	}
	enc := encode.New(cfg.Encoder)

	session := capture.New(cam, enc, capture.Options{
		OutputRoot:   cfg.Paths.Output,
		Settling:     Settling(cfg),
		FramePattern: cfg.Session.FramePattern,
		EncodeOnStop: cfg.Session.EncodeOnStop,
	})

	slog.Debug("Rig ready",
		"camera", cam.Command(),
		"encoder", cfg.Encoder.Command,
		"output", cfg.Paths.Output,
		"encode_on_stop", cfg.Session.EncodeOnStop)

	return &Rig{
		Config:  cfg,
		Camera:  cam,
		Encoder: enc,
		Session: session,
		Store:   settings.NewFileStore(cfg.Paths.Settings),
	}, nil
}

// Settling is the fixed pause after each capture
func Settling(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Session.SettlingMs) * time.Millisecond
}

// Plan builds a session plan from the persisted settings
func (r *Rig) Plan() capture.Plan {
	v := r.Store.Load()
	return capture.Plan{
		Frames:   v.Get(settings.Images),
		Interval: time.Duration(v.Get(settings.Interval)) * time.Millisecond,
	}
}
