package system

import (
	"os/exec"

	"github.com/audiolibrelab/lapsecapture/internal/camera"
	"github.com/audiolibrelab/lapsecapture/internal/config"
)

// Dependency is an external program the rig shells out to
type Dependency struct {
	Name        string
	Description string
	Required    bool
}

type CheckResult struct {
	Dependency Dependency
	Available  bool
	Path       string
}

// Dependencies lists the programs the configuration will invoke
func Dependencies(cfg *config.Config) []Dependency {
	capture := cfg.Camera.Command
	if capture == "" {
		capture = camera.DefaultCommand(cfg.Camera.Backend)
	}

	deps := []Dependency{
		{Name: capture, Description: "Still image capture (" + cfg.Camera.Backend + ")", Required: true},
		{Name: cfg.Encoder.Command, Description: "Timelapse video encoding", Required: true},
	}
	if len(cfg.System.ShutdownCommand) > 0 {
		deps = append(deps, Dependency{Name: cfg.System.ShutdownCommand[0], Description: "Power-off from the settings screen"})
	}
	for _, player := range Players {
		deps = append(deps, Dependency{Name: player, Description: "Video playback"})
	}
	return deps
}

// Players are tried in order by the play command
var Players = []string{"mpv", "vlc", "ffplay"}

func Check(deps []Dependency) []CheckResult {
	results := make([]CheckResult, 0, len(deps))
	for _, d := range deps {
		path, err := exec.LookPath(d.Name)
		results = append(results, CheckResult{
			Dependency: d,
			Available:  err == nil,
			Path:       path,
		})
	}
	return results
}
