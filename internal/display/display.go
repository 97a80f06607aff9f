package display

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"sort"
	"strings"
)

// ErrNoDriver means none of the requested display drivers could be opened
var ErrNoDriver = errors.New("no suitable display driver found")

type EventKind int

const (
	EventTap EventKind = iota
	EventQuit
)

// Event is a tap-down at Pos or a request to quit
type Event struct {
	Kind EventKind
	Pos  image.Point
}

func Tap(x, y int) Event {
	return Event{Kind: EventTap, Pos: image.Pt(x, y)}
}

// Display is a drawing surface with its input source
type Display interface {
	Size() image.Point
	Canvas() draw.Image
	// Poll returns pending events without blocking
	Poll() []Event
	Present() error
	Close() error
}

type Options struct {
	Framebuffer string
	TouchDevice string
	Width       int
	Height      int
	SwapXY      bool
	InvertX     bool
	InvertY     bool
	Snapshot    string
}

type OpenFunc func(Options) (Display, error)

var drivers = map[string]OpenFunc{}

// Register makes a driver available to Open
func Register(name string, open OpenFunc) {
	drivers[name] = open
}

// Drivers lists the registered driver names
func Drivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open tries each named driver in order and returns the first that opens
func Open(names []string, opts Options) (Display, string, error) {
	for _, name := range names {
		open, ok := drivers[name]
		if !ok {
			slog.Warn("Unknown display driver", "driver", name, "available", strings.Join(Drivers(), ", "))
			continue
		}

		d, err := open(opts)
		if err != nil {
			slog.Warn("Display driver failed", "driver", name, "error", err)
			continue
		}

		size := d.Size()
		slog.Info("Display opened", "driver", name, "width", size.X, "height", size.Y)
		return d, name, nil
	}
	return nil, "", fmt.Errorf("%w (tried: %s)", ErrNoDriver, strings.Join(names, ", "))
}
