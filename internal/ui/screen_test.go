package ui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

type recorder struct {
	actions []Action
}

func (r *recorder) HandleAction(a Action) {
	r.actions = append(r.actions, a)
}

func TestRect_ContainsInclusiveEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	tests := []struct {
		p    image.Point
		want bool
	}{
		{image.Pt(10, 20), true},
		{image.Pt(39, 59), true},
		{image.Pt(39, 20), true},
		{image.Pt(10, 59), true},
		{image.Pt(40, 30), false},
		{image.Pt(20, 60), false},
		{image.Pt(9, 30), false},
		{image.Pt(20, 19), false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, expected %v", tt.p, got, tt.want)
		}
	}
}

func TestDispatch_FirstMatchWins(t *testing.T) {
	// The second region is painted on top but the first claims the tap
	s := &Screen{Regions: []*Region{
		{Bounds: Rect{0, 0, 100, 100}, Action: DoWith(ActionDigit, 1)},
		{Bounds: Rect{50, 50, 100, 100}, Action: DoWith(ActionDigit, 2)},
	}}
	rec := &recorder{}

	if !Dispatch(s, image.Pt(75, 75), rec) {
		t.Fatal("Expected tap to be handled")
	}
	if len(rec.actions) != 1 || rec.actions[0].Arg != 1 {
		t.Errorf("Expected only digit 1, got %v", rec.actions)
	}

	rec.actions = nil
	if !Dispatch(s, image.Pt(120, 120), rec) {
		t.Fatal("Expected tap to be handled")
	}
	if len(rec.actions) != 1 || rec.actions[0].Arg != 2 {
		t.Errorf("Expected only digit 2, got %v", rec.actions)
	}
}

func TestDispatch_DecorativeRegionAbsorbsTap(t *testing.T) {
	s := &Screen{Regions: []*Region{
		{Bounds: Rect{0, 0, 320, 60}, BgName: "box"},
		{Bounds: Rect{0, 0, 60, 60}, Action: Do(ActionStart)},
	}}
	rec := &recorder{}

	if !Dispatch(s, image.Pt(30, 30), rec) {
		t.Error("Expected decorative region to report handled")
	}
	if len(rec.actions) != 0 {
		t.Errorf("Expected no action, got %v", rec.actions)
	}
}

func TestDispatch_Unhandled(t *testing.T) {
	s := DefaultScreens().Screen(ScreenViewfinder)
	rec := &recorder{}

	if Dispatch(s, image.Pt(160, 90), rec) {
		t.Error("Expected tap outside all regions to be unhandled")
	}
	if len(rec.actions) != 0 {
		t.Errorf("Expected no action, got %v", rec.actions)
	}
}

func TestDefaultScreens_Viewfinder(t *testing.T) {
	s := DefaultScreens().Screen(ScreenViewfinder)

	tests := []struct {
		p    image.Point
		want ActionKind
	}{
		{image.Pt(5, 180), ActionStart},
		{image.Pt(124, 239), ActionStart},
		{image.Pt(160, 200), ActionOpenSettings},
		{image.Pt(314, 239), ActionStop},
	}

	for _, tt := range tests {
		rec := &recorder{}
		if !Dispatch(s, tt.p, rec) {
			t.Errorf("Tap at %v not handled", tt.p)
			continue
		}
		if rec.actions[0].Kind != tt.want {
			t.Errorf("Tap at %v: expected %s, got %s", tt.p, tt.want, rec.actions[0].Kind)
		}
	}

	// Gap between start and cog
	if Dispatch(s, image.Pt(127, 200), &recorder{}) {
		t.Error("Expected gap at x=127 to be unhandled")
	}
}

func TestDefaultScreens_NumericKeypad(t *testing.T) {
	s := DefaultScreens().Screen(ScreenNumeric)
	digits := map[int]image.Point{
		0: image.Pt(200, 140), 1: image.Pt(10, 200), 2: image.Pt(70, 200),
		3: image.Pt(130, 200), 4: image.Pt(10, 140), 5: image.Pt(70, 140),
		6: image.Pt(130, 140), 7: image.Pt(10, 80), 8: image.Pt(70, 80),
		9: image.Pt(130, 80),
	}

	for d, p := range digits {
		rec := &recorder{}
		Dispatch(s, p, rec)
		if len(rec.actions) != 1 || rec.actions[0].Kind != ActionDigit || rec.actions[0].Arg != d {
			t.Errorf("Tap at %v: expected digit %d, got %v", p, d, rec.actions)
		}
	}

	rec := &recorder{}
	if !Dispatch(s, image.Pt(100, 10), rec) || len(rec.actions) != 0 {
		t.Errorf("Expected text box to absorb tap, got %v", rec.actions)
	}
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img
}

func TestResolve_AttachesAndIsIdempotent(t *testing.T) {
	set := DefaultScreens()
	start := &Decoration{Name: "start", Bitmap: solid(100, 50)}
	big := &Decoration{Name: "cog", Bitmap: solid(120, 120)}

	set.Resolve([]*Decoration{start, big})

	vf := set.Screen(ScreenViewfinder)
	if vf.Regions[0].Bg != start {
		t.Error("Expected start decoration attached as-is")
	}
	if vf.Regions[0].BgName != "" {
		t.Errorf("Expected matched name cleared, got %q", vf.Regions[0].BgName)
	}

	cog := vf.Regions[1].Bg
	if cog == nil {
		t.Fatal("Expected cog decoration attached")
	}
	if size := cog.Bitmap.Bounds().Size(); size.X > 60 || size.Y > 60 {
		t.Errorf("Expected cog fitted into 60x60, got %v", size)
	}

	// The stop icon does not exist
	if vf.Regions[2].Bg != nil || vf.Regions[2].BgName != "stop" {
		t.Errorf("Expected unmatched region to keep its name and no decoration")
	}

	replacement := &Decoration{Name: "start", Bitmap: solid(10, 10)}
	set.Resolve([]*Decoration{replacement})
	if vf.Regions[0].Bg != start {
		t.Error("Expected second pass to leave resolved region alone")
	}
}

func TestLoadIcons(t *testing.T) {
	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, "ok.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, solid(4, 4)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	icons, err := LoadIcons(dir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(icons) != 1 || icons[0].Name != "ok" {
		t.Errorf("Expected only the 'ok' icon, got %d icons", len(icons))
	}

	if _, err := LoadIcons(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}
