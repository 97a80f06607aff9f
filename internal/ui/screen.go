package ui

import (
	"image"
	"log/slog"
)

// ScreenID identifies one full-screen panel
type ScreenID int

const (
	ScreenViewfinder ScreenID = iota
	ScreenSettings
	ScreenNumeric
)

func (id ScreenID) String() string {
	switch id {
	case ScreenViewfinder:
		return "viewfinder"
	case ScreenSettings:
		return "settings"
	case ScreenNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// Screen is an ordered region list. Order is both hit order (first wins)
// and paint order (last drawn on top).
type Screen struct {
	ID      ScreenID
	Regions []*Region
}

// HitTest returns the first region containing p
func (s *Screen) HitTest(p image.Point) (*Region, bool) {
	for _, r := range s.Regions {
		if r.Bounds.Contains(p) {
			return r, true
		}
	}
	return nil, false
}

// Dispatch routes a tap to the first region containing p. It reports
// whether any region claimed the tap; decorative regions claim it without
// invoking h.
func Dispatch(s *Screen, p image.Point, h ActionHandler) bool {
	r, ok := s.HitTest(p)
	if !ok {
		return false
	}
	if !r.Decorative() {
		h.HandleAction(r.Action)
	}
	return true
}

// ScreenSet holds every screen of the interface
type ScreenSet struct {
	screens map[ScreenID]*Screen
}

func NewScreenSet(screens ...*Screen) *ScreenSet {
	set := &ScreenSet{screens: make(map[ScreenID]*Screen, len(screens))}
	for _, s := range screens {
		set.screens[s.ID] = s
	}
	return set
}

func (set *ScreenSet) Screen(id ScreenID) *Screen {
	return set.screens[id]
}

// Resolve attaches decorations to regions by exact name. Matched names are
// cleared so a second pass leaves resolved regions alone; unmatched names
// are kept and the region stays undecorated.
func (set *ScreenSet) Resolve(icons []*Decoration) {
	byName := make(map[string]*Decoration, len(icons))
	for _, d := range icons {
		if _, dup := byName[d.Name]; !dup {
			byName[d.Name] = d
		}
	}

	fitted := map[fitKey]*Decoration{}
	resolve := func(name string, bounds Rect) *Decoration {
		d, ok := byName[name]
		if !ok {
			return nil
		}
		key := fitKey{name: name, w: bounds.W, h: bounds.H}
		if f, ok := fitted[key]; ok {
			return f
		}
		f := fitDecoration(d, bounds)
		fitted[key] = f
		return f
	}

	for _, id := range []ScreenID{ScreenViewfinder, ScreenSettings, ScreenNumeric} {
		s := set.screens[id]
		if s == nil {
			continue
		}
		for _, r := range s.Regions {
			if r.BgName != "" {
				if d := resolve(r.BgName, r.Bounds); d != nil {
					r.Bg = d
					r.BgName = ""
				} else {
					slog.Debug("No icon for region", "screen", id, "name", r.BgName)
				}
			}
			if r.FgName != "" {
				if d := resolve(r.FgName, r.Bounds); d != nil {
					r.Fg = d
					r.FgName = ""
				}
			}
		}
	}
}

type fitKey struct {
	name string
	w, h int
}
