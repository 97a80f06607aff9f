package play

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/audiolibrelab/lapsecapture/internal/config"
)

func TestListSessions(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"2024-05-02_08-00-00", "2024-05-01_06-30-00", "2024-05-01_06-30-00-2", "icons", "notes"} {
		if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "2024-05-03_00-00-00"), []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}

	sessions, err := ListSessions(root)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %v", sessions)
	}
	if sessions[0] != "2024-05-01_06-30-00" || sessions[2] != "2024-05-02_08-00-00" {
		t.Errorf("Expected chronological order, got %v", sessions)
	}

	latest, err := LatestSession(root)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(latest) != "2024-05-02_08-00-00" {
		t.Errorf("Expected latest session, got %s", latest)
	}
}

func TestLatestSession_Empty(t *testing.T) {
	if _, err := LatestSession(t.TempDir()); err == nil {
		t.Error("Expected error when no sessions exist")
	}
}

func TestVideoPath(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "2024-05-01_06-30-00"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Paths.Output = root

	p := New(cfg)
	got, err := p.VideoPath("2024-05-01_06-30-00")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "2024-05-01_06-30-00", "timelapse.mp4")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	latest, err := p.VideoPath("")
	if err != nil {
		t.Fatal(err)
	}
	if latest != want {
		t.Errorf("Expected latest session video %s, got %s", want, latest)
	}
}
