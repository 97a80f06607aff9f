package display

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_FallsBackInOrder(t *testing.T) {
	Register("test-broken", func(Options) (Display, error) {
		return nil, errors.New("no such panel")
	})

	d, name, err := Open([]string{"test-missing", "test-broken", "headless"}, Options{Width: 160, Height: 120})
	if err != nil {
		t.Fatalf("Expected headless fallback, got: %v", err)
	}
	defer d.Close()

	if name != "headless" {
		t.Errorf("Expected headless driver, got %s", name)
	}
	if d.Size() != image.Pt(160, 120) {
		t.Errorf("Expected 160x120, got %v", d.Size())
	}
}

func TestOpen_NoDriver(t *testing.T) {
	_, _, err := Open([]string{"test-missing"}, Options{})
	if !errors.Is(err, ErrNoDriver) {
		t.Errorf("Expected ErrNoDriver, got %v", err)
	}
}

func TestHeadless_InjectPollPresent(t *testing.T) {
	h := NewHeadless(0, 0)
	if h.Size() != image.Pt(320, 240) {
		t.Errorf("Expected default 320x240, got %v", h.Size())
	}

	h.Inject(Tap(10, 20), Event{Kind: EventQuit})
	events := h.Poll()
	if len(events) != 2 || events[0].Pos != image.Pt(10, 20) || events[1].Kind != EventQuit {
		t.Errorf("Unexpected events %v", events)
	}
	if len(h.Poll()) != 0 {
		t.Error("Expected Poll to drain the queue")
	}

	h.Canvas().Set(5, 5, color.RGBA{G: 255, A: 255})
	if err := h.Present(); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if h.Frames() != 1 {
		t.Errorf("Expected 1 frame, got %d", h.Frames())
	}
	if got := h.Frame().RGBAAt(5, 5); got.G != 255 {
		t.Errorf("Expected presented pixel to be green, got %v", got)
	}
}

func TestHeadless_SnapshotOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	d, _, err := Open([]string{"headless"}, Options{Width: 32, Height: 24, Snapshot: path})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Present(); err != nil {
		t.Fatal(err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected snapshot to be written: %v", err)
	}
}

func TestCalibration_Map(t *testing.T) {
	cal := Calibration{MinX: 0, MaxX: 4095, MinY: 0, MaxY: 4095, Width: 320, Height: 240}

	tests := []struct {
		name string
		cal  func(Calibration) Calibration
		x, y int32
		want image.Point
	}{
		{"origin", func(c Calibration) Calibration { return c }, 0, 0, image.Pt(0, 0)},
		{"max", func(c Calibration) Calibration { return c }, 4095, 4095, image.Pt(319, 239)},
		{"invert x", func(c Calibration) Calibration { c.InvertX = true; return c }, 0, 0, image.Pt(319, 0)},
		{"invert y", func(c Calibration) Calibration { c.InvertY = true; return c }, 0, 0, image.Pt(0, 239)},
		{"swap", func(c Calibration) Calibration { c.SwapXY = true; return c }, 4095, 0, image.Pt(0, 239)},
		{"out of range clamps", func(c Calibration) Calibration { return c }, 9000, -20, image.Pt(319, 0)},
		{"uncalibrated passes through", func(c Calibration) Calibration { c.MaxX, c.MaxY = 0, 0; return c }, 17, 42, image.Pt(17, 42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cal(cal).Map(tt.x, tt.y); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEncodePixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	src.SetRGBA(1, 0, color.RGBA{B: 255, A: 255})

	buf16 := make([]byte, 4)
	if err := encodePixels(buf16, src, 16, 4); err != nil {
		t.Fatal(err)
	}
	// Red is 0xF800, blue 0x001F, little endian
	if buf16[0] != 0x00 || buf16[1] != 0xF8 || buf16[2] != 0x1F || buf16[3] != 0x00 {
		t.Errorf("Unexpected RGB565 bytes %x", buf16)
	}

	buf32 := make([]byte, 8)
	if err := encodePixels(buf32, src, 32, 8); err != nil {
		t.Fatal(err)
	}
	if buf32[2] != 0xff || buf32[4] != 0xff {
		t.Errorf("Unexpected BGRX bytes %x", buf32)
	}

	if err := encodePixels(make([]byte, 2), src, 16, 4); err == nil {
		t.Error("Expected error for short buffer")
	}
	if err := encodePixels(make([]byte, 16), src, 8, 8); err == nil {
		t.Error("Expected error for unsupported depth")
	}
}

func TestReadFramebufferInfo(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "fb1")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"name":           "fb_ili9340\n",
		"virtual_size":   "320,240\n",
		"bits_per_pixel": "16\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	info, err := readFramebufferInfo(root, "/dev/fb1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if info.Width != 320 || info.Height != 240 || info.BitsPerPixel != 16 {
		t.Errorf("Unexpected geometry %+v", info)
	}
	if info.Stride != 640 {
		t.Errorf("Expected derived stride 640, got %d", info.Stride)
	}
	if info.Name != "fb_ili9340" {
		t.Errorf("Expected name fb_ili9340, got %s", info.Name)
	}

	if _, err := readFramebufferInfo(root, "/dev/fb7"); err == nil {
		t.Error("Expected error for unknown framebuffer")
	}
}

func TestDrawText(t *testing.T) {
	fonts := NewFonts()
	face := fonts.Face(30)
	if fonts.Face(30) != face {
		t.Error("Expected face to be cached")
	}

	img := image.NewRGBA(image.Rect(0, 0, 200, 50))
	DrawText(img, face, "8h", image.Pt(2, 2), color.White)

	lit := 0
	for _, v := range img.Pix {
		if v != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("Expected text to be drawn")
	}
	if TextWidth(face, "888") <= TextWidth(face, "8") {
		t.Error("Expected wider text to measure wider")
	}
}
