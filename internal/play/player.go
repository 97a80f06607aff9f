package play

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/audiolibrelab/lapsecapture/internal/capture"
	"github.com/audiolibrelab/lapsecapture/internal/config"
	"github.com/audiolibrelab/lapsecapture/internal/system"
)

type Player struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Player {
	return &Player{cfg: cfg}
}

// Play opens the encoded video of a session. An empty session picks the
// most recent session directory under the output root.
func (p *Player) Play(session string) error {
	videoFile, err := p.VideoPath(session)
	if err != nil {
		return err
	}

	// Check if file exists
	if _, err := os.Stat(videoFile); err != nil {
		return fmt.Errorf("video file not found: %s", videoFile)
	}

	fmt.Printf("Playing: %s\n", videoFile)

	// Try to find available video player
	player, err := findVideoPlayer()
	if err != nil {
		return fmt.Errorf("no suitable video player found: %w", err)
	}

	var cmd *exec.Cmd
	switch player {
	case "vlc":
		cmd = exec.Command("vlc", "--play-and-exit", videoFile)
	case "mpv":
		cmd = exec.Command("mpv", "--loop=no", videoFile)
	case "ffplay":
		cmd = exec.Command("ffplay", "-autoexit", videoFile)
	default:
		return fmt.Errorf("unsupported player: %s", player)
	}

	// Run the player
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("playback failed with %s: %w", player, err)
	}

	fmt.Println("Playback completed")
	return nil
}

// VideoPath resolves a session name or directory to its video file
func (p *Player) VideoPath(session string) (string, error) {
	dir, err := p.SessionDir(session)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, p.cfg.Encoder.OutputName), nil
}

// SessionDir resolves a session name, a path or "" (the latest session)
func (p *Player) SessionDir(session string) (string, error) {
	if session == "" {
		return LatestSession(p.cfg.Paths.Output)
	}
	if filepath.IsAbs(session) {
		return session, nil
	}
	if _, err := os.Stat(session); err == nil {
		return session, nil
	}
	return filepath.Join(p.cfg.Paths.Output, session), nil
}

// LatestSession returns the newest session directory under root. Session
// names sort chronologically.
func LatestSession(root string) (string, error) {
	sessions, err := ListSessions(root)
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return "", fmt.Errorf("no sessions found in %s", root)
	}
	return filepath.Join(root, sessions[len(sessions)-1]), nil
}

// ListSessions lists session directory names in chronological order
func ListSessions(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var sessions []string
	for _, e := range entries {
		if !e.IsDir() || len(e.Name()) < len(capture.DirLayout) {
			continue
		}
		if !isSessionName(e.Name()) {
			continue
		}
		sessions = append(sessions, e.Name())
	}
	sort.Strings(sessions)
	return sessions, nil
}

func isSessionName(name string) bool {
	stamp := name[:len(capture.DirLayout)]
	for i, r := range stamp {
		want := capture.DirLayout[i]
		if want >= '0' && want <= '9' {
			if r < '0' || r > '9' {
				return false
			}
		} else if byte(r) != want {
			return false
		}
	}
	return true
}

func findVideoPlayer() (string, error) {
	for _, player := range system.Players {
		if _, err := exec.LookPath(player); err == nil {
			return player, nil
		}
	}

	return "", fmt.Errorf("no video player found (tried: %s)", strings.Join(system.Players, ", "))
}
