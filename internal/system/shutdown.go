package system

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Shutdown runs the configured OS power-off command
type Shutdown struct {
	command []string
}

func NewShutdown(command []string) *Shutdown {
	return &Shutdown{command: command}
}

func (s *Shutdown) Shutdown(ctx context.Context) error {
	if len(s.command) == 0 {
		return fmt.Errorf("no shutdown command configured")
	}

	cmd := exec.CommandContext(ctx, s.command[0], s.command[1:]...)
	slog.Info("Requesting system shutdown", "command", strings.Join(cmd.Args, " "))

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("shutdown command failed: %w\nOutput: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
