package ui

import (
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nfnt/resize"
)

// LoadIcons decodes every *.png in dir; the file stem becomes the name.
// Undecodable files are skipped.
func LoadIcons(dir string) ([]*Decoration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	icons := make([]*Decoration, 0, len(names))
	for _, name := range names {
		img, err := LoadImage(filepath.Join(dir, name))
		if err != nil {
			slog.Debug("Skipping icon", "file", name, "error", err)
			continue
		}
		icons = append(icons, &Decoration{
			Name:   strings.TrimSuffix(name, filepath.Ext(name)),
			Bitmap: img,
		})
	}

	slog.Debug("Icons loaded", "dir", dir, "count", len(icons))
	return icons, nil
}

// LoadImage decodes a single image file
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// fitDecoration shrinks bitmaps larger than the region, keeping aspect ratio
func fitDecoration(d *Decoration, bounds Rect) *Decoration {
	if d.Bitmap == nil || bounds.W <= 0 || bounds.H <= 0 {
		return d
	}
	size := d.Bitmap.Bounds().Size()
	if size.X <= bounds.W && size.Y <= bounds.H {
		return d
	}
	return &Decoration{
		Name:   d.Name,
		Bitmap: resize.Thumbnail(uint(bounds.W), uint(bounds.H), d.Bitmap, resize.Lanczos3),
	}
}
