package app

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/audiolibrelab/lapsecapture/internal/display"
	"github.com/audiolibrelab/lapsecapture/internal/ui"
)

type fixedFree uint64

func (f fixedFree) Free() (uint64, bool) { return uint64(f), true }

func square(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestLoop_TapThenQuit(t *testing.T) {
	a, _, _ := newTestApp(t)
	disp := display.NewHeadless(320, 240)
	loop := NewLoop(a, disp, NewRenderer(display.NewFonts(), nil, fixedFree(1<<30)), LoopOptions{})

	disp.Inject(display.Tap(160, 200), display.Event{Kind: display.EventQuit})

	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not exit on quit")
	}

	if a.Machine().Active() != ui.ScreenSettings {
		t.Errorf("Expected tap to open settings, got %s", a.Machine().Active())
	}
}

func TestLoop_RedrawsUntilCancelled(t *testing.T) {
	a, _, _ := newTestApp(t)
	disp := display.NewHeadless(320, 240)
	loop := NewLoop(a, disp, NewRenderer(display.NewFonts(), nil, nil), LoopOptions{MaxFPS: 200})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for disp.Frames() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("Expected nil on cancel, got %v", err)
	}
	if disp.Frames() < 3 {
		t.Errorf("Expected repeated frames while idle, got %d", disp.Frames())
	}

	// Viewfinder overlay text is white on the black letterbox
	frame := disp.Frame()
	lit := false
	for y := 50; y < 80 && !lit; y++ {
		for x := 10; x < 100; x++ {
			if frame.RGBAAt(x, y).R > 128 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("Expected interval label to be drawn")
	}
}

func TestLoop_SplashCancelled(t *testing.T) {
	a, _, _ := newTestApp(t)
	disp := display.NewHeadless(320, 240)
	loop := NewLoop(a, disp, NewRenderer(display.NewFonts(), nil, nil), LoopOptions{Splash: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Expected nil, got %v", err)
	}
	if disp.Frames() != 1 {
		t.Errorf("Expected only the splash frame, got %d", disp.Frames())
	}
}

func TestRenderer_RegionsAndBackground(t *testing.T) {
	a, _, _ := newTestApp(t)
	screens := ui.DefaultScreens()
	screens.Resolve([]*ui.Decoration{{Name: "start", Bitmap: square(20, 20, color.RGBA{G: 255, A: 255})}})
	a.screens = screens

	bg := square(320, 100, color.RGBA{B: 255, A: 255})
	r := NewRenderer(display.NewFonts(), bg, nil)
	dst := image.NewRGBA(image.Rect(0, 0, 320, 240))
	r.Draw(dst, a)

	// Start region (5,180,120,60) has its icon centered at (65,210)
	if c := dst.RGBAAt(65, 210); c.G != 255 || c.R != 0 {
		t.Errorf("Expected start icon at region center, got %v", c)
	}
	// Background is letterboxed vertically: rows 70..169
	if c := dst.RGBAAt(300, 72); c.B != 255 {
		t.Errorf("Expected background inside letterbox, got %v", c)
	}
	if c := dst.RGBAAt(300, 20); c.B != 0 {
		t.Errorf("Expected black above letterbox, got %v", c)
	}
}

func TestRenderer_NumericShowsBuffer(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.HandleAction(ui.Do(ui.ActionOpenSettings))
	a.HandleAction(ui.DoWith(ui.ActionEditField, 0))

	dst := image.NewRGBA(image.Rect(0, 0, 320, 240))
	NewRenderer(display.NewFonts(), nil, nil).Draw(dst, a)

	lit := false
	for y := 2; y < 50 && !lit; y++ {
		for x := 10; x < 120; x++ {
			if dst.RGBAAt(x, y).R > 128 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("Expected edit buffer to be drawn")
	}
}
