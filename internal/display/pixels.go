package display

import (
	"encoding/binary"
	"fmt"
	"image"
)

// encodePixels converts src into framebuffer memory. 16 bpp is RGB565,
// 24 and 32 bpp are little-endian BGR(X), the layouts fbtft and vc4 expose.
func encodePixels(dst []byte, src *image.RGBA, bpp, stride int) error {
	b := src.Bounds()
	bytesPP := bpp / 8
	if len(dst) < stride*(b.Dy()-1)+b.Dx()*bytesPP {
		return fmt.Errorf("framebuffer too small for %dx%d at %d bpp", b.Dx(), b.Dy(), bpp)
	}

	for y := 0; y < b.Dy(); y++ {
		row := dst[y*stride:]
		srcRow := src.Pix[y*src.Stride:]
		for x := 0; x < b.Dx(); x++ {
			r, g, bl := srcRow[x*4], srcRow[x*4+1], srcRow[x*4+2]
			switch bpp {
			case 16:
				v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(bl>>3)
				binary.LittleEndian.PutUint16(row[x*2:], v)
			case 24:
				row[x*3], row[x*3+1], row[x*3+2] = bl, g, r
			case 32:
				row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = bl, g, r, 0xff
			default:
				return fmt.Errorf("unsupported framebuffer depth: %d bpp", bpp)
			}
		}
	}
	return nil
}
