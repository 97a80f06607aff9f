package display

import "image"

// Calibration maps raw touch coordinates onto screen pixels
type Calibration struct {
	MinX, MaxX int32
	MinY, MaxY int32
	Width      int
	Height     int
	SwapXY     bool
	InvertX    bool
	InvertY    bool
}

// Map scales a raw (x, y) reading; SwapXY is applied before scaling
func (c Calibration) Map(x, y int32) image.Point {
	minX, maxX, minY, maxY := c.MinX, c.MaxX, c.MinY, c.MaxY
	if c.SwapXY {
		x, y = y, x
		minX, maxX, minY, maxY = minY, maxY, minX, maxX
	}

	px := scaleAxis(x, minX, maxX, c.Width)
	py := scaleAxis(y, minY, maxY, c.Height)
	if c.InvertX {
		px = c.Width - 1 - px
	}
	if c.InvertY {
		py = c.Height - 1 - py
	}
	return image.Pt(px, py)
}

func scaleAxis(v, lo, hi int32, size int) int {
	if size <= 0 {
		return 0
	}
	var p int
	if hi > lo {
		p = int(int64(v-lo) * int64(size-1) / int64(hi-lo))
	} else {
		p = int(v)
	}
	if p < 0 {
		return 0
	}
	if p > size-1 {
		return size - 1
	}
	return p
}
