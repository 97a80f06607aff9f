package app

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/audiolibrelab/lapsecapture/internal/display"
	"github.com/audiolibrelab/lapsecapture/internal/settings"
	"github.com/audiolibrelab/lapsecapture/internal/system"
	"github.com/audiolibrelab/lapsecapture/internal/ui"

	"golang.org/x/image/font"
)

var (
	textColor   = color.White
	errorColor  = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	statusColor = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	dimColor    = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

// FreeSpace reports free bytes where sessions are written
type FreeSpace interface {
	Free() (uint64, bool)
}

// Renderer paints the active screen and its live overlays
type Renderer struct {
	fonts      *display.Fonts
	background image.Image
	disk       FreeSpace
}

// NewRenderer accepts a nil background or disk probe
func NewRenderer(fonts *display.Fonts, background image.Image, disk FreeSpace) *Renderer {
	return &Renderer{fonts: fonts, background: background, disk: disk}
}

// DrawBackground letterboxes the background image on black
func (r *Renderer) DrawBackground(dst draw.Image) {
	b := dst.Bounds()
	if r.background == nil || r.background.Bounds().Dy() < b.Dy() || r.background.Bounds().Dx() < b.Dx() {
		draw.Draw(dst, b, image.Black, image.Point{}, draw.Src)
	}
	if r.background == nil {
		return
	}
	bg := r.background.Bounds()
	at := image.Pt(b.Min.X+(b.Dx()-bg.Dx())/2, b.Min.Y+(b.Dy()-bg.Dy())/2)
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(bg.Size())}, r.background, bg.Min, draw.Over)
}

// Draw paints one full frame for the active screen
func (r *Renderer) Draw(dst draw.Image, a *App) {
	r.DrawBackground(dst)

	screen := a.Screen()
	for _, region := range screen.Regions {
		drawRegion(dst, region)
	}

	switch screen.ID {
	case ui.ScreenViewfinder:
		r.drawViewfinder(dst, a)
	case ui.ScreenSettings:
		r.drawSettings(dst, a)
	case ui.ScreenNumeric:
		r.drawNumeric(dst, a)
	}
}

func drawRegion(dst draw.Image, region *ui.Region) {
	bounds := region.Bounds.Image()
	if region.Fill != nil {
		draw.Draw(dst, bounds, image.NewUniform(region.Fill), image.Point{}, draw.Src)
	}
	if region.Bg != nil {
		drawCentered(dst, bounds, region.Bg.Bitmap)
	}
	if region.Fg != nil {
		drawCentered(dst, bounds, region.Fg.Bitmap)
	}
}

func drawCentered(dst draw.Image, bounds image.Rectangle, img image.Image) {
	if img == nil {
		return
	}
	ib := img.Bounds()
	at := image.Pt(bounds.Min.X+(bounds.Dx()-ib.Dx())/2, bounds.Min.Y+(bounds.Dy()-ib.Dy())/2)
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(ib.Size())}, img, ib.Min, draw.Over)
}

func (r *Renderer) drawViewfinder(dst draw.Image, a *App) {
	values := a.Values()
	progress := a.Progress()

	total := values.Get(settings.Images)
	if progress.Active {
		total = progress.Total
	}
	interval := values.Get(settings.Interval)
	remaining := RemainingSeconds(interval, int(a.Settling().Milliseconds()), total, progress.Current)

	face := r.fonts.Face(24)
	display.DrawText(dst, face, "Interval:", image.Pt(10, 50), textColor)
	display.DrawText(dst, face, "Frames:", image.Pt(10, 90), textColor)
	display.DrawText(dst, face, "Remaining:", image.Pt(10, 130), textColor)
	display.DrawText(dst, face, strconv.Itoa(interval)+"ms", image.Pt(160, 50), textColor)
	display.DrawText(dst, face, strconv.Itoa(progress.Current)+" of "+strconv.Itoa(total), image.Pt(160, 90), textColor)
	display.DrawText(dst, face, FormatRemaining(remaining), image.Pt(160, 130), textColor)

	small := r.fonts.Face(14)
	switch {
	case progress.Encoding:
		display.DrawText(dst, small, "Encoding...", image.Pt(10, 12), statusColor)
	case progress.LastError != "":
		display.DrawText(dst, small, clip(small, progress.LastError, dst.Bounds().Dx()-100), image.Pt(10, 12), errorColor)
	}

	if r.disk != nil {
		if free, ok := r.disk.Free(); ok {
			label := system.FormatBytes(free) + " free"
			x := dst.Bounds().Dx() - display.TextWidth(small, label) - 6
			display.DrawText(dst, small, label, image.Pt(x, 12), dimColor)
		}
	}
}

func (r *Renderer) drawSettings(dst draw.Image, a *App) {
	values := a.Values()
	face := r.fonts.Face(24)
	for i, field := range settings.Fields {
		y := 70 + 60*i
		display.DrawText(dst, face, field.Label, image.Pt(10, y), textColor)
		display.DrawText(dst, face, field.Format(values.Get(field.Key)), image.Pt(130, y), textColor)
	}
}

func (r *Renderer) drawNumeric(dst draw.Image, a *App) {
	editor := a.Machine().Editor()
	if editor == nil {
		return
	}
	display.DrawText(dst, r.fonts.Face(44), editor.Buffer, image.Pt(10, 2), textColor)
}

// clip keeps the first line of s and shortens it to fit width pixels
func clip(face font.Face, s string, width int) string {
	s, _, _ = strings.Cut(s, "\n")
	if display.TextWidth(face, s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && display.TextWidth(face, string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
