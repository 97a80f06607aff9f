package display

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Fonts caches faces of the bundled Go Regular font by point size
type Fonts struct {
	mutex sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewFonts falls back to a fixed bitmap face if the bundled font fails to parse
func NewFonts() *Fonts {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		slog.Warn("Failed to parse bundled font, using bitmap font", "error", err)
		f = nil
	}
	return &Fonts{font: f, faces: map[float64]font.Face{}}
}

func (f *Fonts) Face(size float64) font.Face {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if face, ok := f.faces[size]; ok {
		return face
	}
	if f.font == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		slog.Warn("Failed to create font face", "size", size, "error", err)
		return basicfont.Face7x13
	}
	f.faces[size] = face
	return face
}

// DrawText draws s with its top-left corner at pt
func DrawText(dst draw.Image, face font.Face, s string, pt image.Point, c color.Color) {
	ascent := face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(pt.X), Y: fixed.I(pt.Y) + ascent},
	}
	d.DrawString(s)
}

// TextWidth is the advance of s in pixels
func TextWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
