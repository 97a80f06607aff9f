//go:build linux

package display

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

func init() {
	Register("fbdev", openFramebuffer)
}

// framebuffer draws into an mmap'd /dev/fbN and reads taps via evdev
type framebuffer struct {
	file   *os.File
	mem    []byte
	info   FramebufferInfo
	canvas *image.RGBA
	touch  *touchInput
}

func openFramebuffer(opts Options) (Display, error) {
	if opts.Framebuffer == "" {
		return nil, fmt.Errorf("no framebuffer device configured")
	}

	info, err := ReadFramebufferInfo(opts.Framebuffer)
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(opts.Framebuffer, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", opts.Framebuffer, err)
	}

	mem, err := unix.Mmap(int(file.Fd()), 0, info.Stride*info.Height, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to map %s: %w", opts.Framebuffer, err)
	}

	fb := &framebuffer{
		file:   file,
		mem:    mem,
		info:   info,
		canvas: image.NewRGBA(image.Rect(0, 0, info.Width, info.Height)),
	}

	touch, err := openTouch(opts.TouchDevice, Calibration{
		Width:   info.Width,
		Height:  info.Height,
		SwapXY:  opts.SwapXY,
		InvertX: opts.InvertX,
		InvertY: opts.InvertY,
	})
	if err != nil {
		// Still usable as a status panel; quit via signal
		slog.Warn("No touch input available", "error", err)
	}
	fb.touch = touch

	slog.Debug("Framebuffer mapped", "device", opts.Framebuffer, "bpp", info.BitsPerPixel, "stride", info.Stride)
	return fb, nil
}

func (fb *framebuffer) Size() image.Point {
	return image.Pt(fb.info.Width, fb.info.Height)
}

func (fb *framebuffer) Canvas() draw.Image {
	return fb.canvas
}

func (fb *framebuffer) Poll() []Event {
	if fb.touch == nil {
		return nil
	}
	return fb.touch.Poll()
}

func (fb *framebuffer) Present() error {
	return encodePixels(fb.mem, fb.canvas, fb.info.BitsPerPixel, fb.info.Stride)
}

func (fb *framebuffer) Close() error {
	if fb.touch != nil {
		fb.touch.Close()
	}

	// Leave a blank panel behind
	for i := range fb.mem {
		fb.mem[i] = 0
	}
	if err := unix.Munmap(fb.mem); err != nil {
		fb.file.Close()
		return fmt.Errorf("failed to unmap framebuffer: %w", err)
	}
	return fb.file.Close()
}
