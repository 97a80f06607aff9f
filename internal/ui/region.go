package ui

import (
	"image"
	"image/color"
)

// Rect is a region's bounds in screen pixels
type Rect struct {
	X, Y, W, H int
}

// Contains is inclusive on all four edges: X <= p.X <= X+W-1
func (r Rect) Contains(p image.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W-1 &&
		p.Y >= r.Y && p.Y <= r.Y+r.H-1
}

func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Decoration is a named bitmap loaded from the icon directory
type Decoration struct {
	Name   string
	Bitmap image.Image
}

// Region is one tappable, drawable area of a screen. BgName and FgName are
// cleared once Resolve has attached the matching decoration.
type Region struct {
	Bounds Rect
	Fill   color.Color
	BgName string
	FgName string
	Bg     *Decoration
	Fg     *Decoration
	Action Action
}

// Decorative regions absorb taps without doing anything
func (r *Region) Decorative() bool {
	return r.Action.Kind == ActionNone
}
