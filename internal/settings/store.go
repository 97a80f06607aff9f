package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store loads and saves the persisted settings
type Store interface {
	Load() Values
	Save(Values) error
}

// FileStore keeps settings in a small YAML document
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load never fails: a missing or unreadable file yields the defaults
func (s *FileStore) Load() Values {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No settings file, using defaults", "path", s.path)
		} else {
			slog.Warn("Failed to read settings, using defaults", "path", s.path, "error", err)
		}
		return Defaults()
	}

	raw := map[string]int{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		slog.Warn("Corrupt settings file, using defaults", "path", s.path, "error", err)
		return Defaults()
	}

	values := make(Values, len(raw))
	for k, n := range raw {
		values[Key(k)] = n
	}
	return Normalize(values)
}

// Save writes to a temporary file and renames it over the old one
func (s *FileStore) Save(v Values) error {
	raw := make(map[string]int, len(v))
	for k, n := range v {
		raw[string(k)] = n
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace settings: %w", err)
	}

	slog.Debug("Settings saved", "path", s.path)
	return nil
}
