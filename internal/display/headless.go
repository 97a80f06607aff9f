package display

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"sync"
)

func init() {
	Register("headless", func(opts Options) (Display, error) {
		h := NewHeadless(opts.Width, opts.Height)
		h.snapshot = opts.Snapshot
		return h, nil
	})
}

// Headless is an in-memory display. Events are fed with Inject; the last
// presented frame can be written out as PNG.
type Headless struct {
	mutex    sync.Mutex
	canvas   *image.RGBA
	frame    *image.RGBA
	events   []Event
	frames   int
	snapshot string
}

func NewHeadless(width, height int) *Headless {
	if width <= 0 {
		width = 320
	}
	if height <= 0 {
		height = 240
	}
	r := image.Rect(0, 0, width, height)
	return &Headless{
		canvas: image.NewRGBA(r),
		frame:  image.NewRGBA(r),
	}
}

func (h *Headless) Size() image.Point {
	return h.canvas.Bounds().Size()
}

func (h *Headless) Canvas() draw.Image {
	return h.canvas
}

// Inject queues events for the next Poll; safe from any goroutine
func (h *Headless) Inject(events ...Event) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.events = append(h.events, events...)
}

func (h *Headless) Poll() []Event {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	events := h.events
	h.events = nil
	return events
}

func (h *Headless) Present() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	draw.Draw(h.frame, h.frame.Bounds(), h.canvas, image.Point{}, draw.Src)
	h.frames++
	return nil
}

// Frames counts calls to Present
func (h *Headless) Frames() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.frames
}

// Frame returns a copy of the last presented frame
func (h *Headless) Frame() *image.RGBA {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	out := image.NewRGBA(h.frame.Bounds())
	draw.Draw(out, out.Bounds(), h.frame, image.Point{}, draw.Src)
	return out
}

func (h *Headless) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, h.Frame()); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

func (h *Headless) Close() error {
	if h.snapshot == "" {
		return nil
	}
	return h.SavePNG(h.snapshot)
}
