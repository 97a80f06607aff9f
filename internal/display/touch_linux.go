//go:build linux

package display

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"syscall"

	evdev "github.com/holoplot/go-evdev"
)

// touchInput turns evdev touchscreen and keyboard events into display events
type touchInput struct {
	devices []*touchDevice
}

type touchDevice struct {
	dev     *evdev.InputDevice
	cal     Calibration
	isTouch bool
	x, y    int32
	pressed bool // touch-down seen, tap emitted at the next SYN_REPORT
}

// InputDeviceInfo describes an evdev device for listing
type InputDeviceInfo struct {
	Path  string
	Name  string
	Touch bool
	Quit  bool
}

func openTouch(path string, cal Calibration) (*touchInput, error) {
	var paths []string
	if path != "" {
		paths = []string{path}
	} else {
		found, err := evdev.ListDevicePaths()
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			paths = append(paths, p.Path)
		}
		sort.Strings(paths)
	}

	in := &touchInput{}
	for _, p := range paths {
		dev, err := evdev.OpenWithFlags(p, os.O_RDONLY)
		if err != nil {
			if path != "" {
				return nil, fmt.Errorf("failed to open %s: %w", p, err)
			}
			continue
		}

		isTouch, isQuit := classify(dev)
		if !isTouch && !isQuit {
			_ = dev.Close()
			continue
		}
		if err := dev.NonBlock(); err != nil {
			_ = dev.Close()
			continue
		}

		td := &touchDevice{dev: dev, cal: cal, isTouch: isTouch}
		if isTouch {
			td.calibrate()
		}
		name, _ := dev.Name()
		slog.Debug("Input device opened", "path", p, "name", name, "touch", isTouch)
		in.devices = append(in.devices, td)
	}

	if len(in.devices) == 0 {
		return nil, fmt.Errorf("no touchscreen or keyboard input devices found")
	}
	return in, nil
}

func classify(dev *evdev.InputDevice) (touch, quit bool) {
	for _, code := range dev.CapableEvents(evdev.EV_ABS) {
		if code == evdev.ABS_X || code == evdev.ABS_MT_POSITION_X {
			touch = true
		}
	}
	for _, code := range dev.CapableEvents(evdev.EV_KEY) {
		if code == evdev.KEY_ESC {
			quit = true
		}
	}
	return touch, quit
}

func (d *touchDevice) calibrate() {
	infos, err := d.dev.AbsInfos()
	if err != nil {
		return
	}
	if info, ok := infos[evdev.ABS_X]; ok {
		d.cal.MinX, d.cal.MaxX = info.Minimum, info.Maximum
	} else if info, ok := infos[evdev.ABS_MT_POSITION_X]; ok {
		d.cal.MinX, d.cal.MaxX = info.Minimum, info.Maximum
	}
	if info, ok := infos[evdev.ABS_Y]; ok {
		d.cal.MinY, d.cal.MaxY = info.Minimum, info.Maximum
	} else if info, ok := infos[evdev.ABS_MT_POSITION_Y]; ok {
		d.cal.MinY, d.cal.MaxY = info.Minimum, info.Maximum
	}
}

// Poll drains every device without blocking
func (in *touchInput) Poll() []Event {
	var events []Event
	alive := in.devices[:0]
	for _, d := range in.devices {
		var closed bool
		events, closed = d.drain(events)
		if closed {
			slog.Warn("Input device went away", "path", d.dev.Path())
			_ = d.dev.Close()
			continue
		}
		alive = append(alive, d)
	}
	in.devices = alive
	return events
}

func (d *touchDevice) drain(events []Event) ([]Event, bool) {
	for {
		ev, err := d.dev.ReadOne()
		if err != nil {
			if isWouldBlockError(err) {
				return events, false
			}
			if isDeviceClosedError(err) {
				return events, true
			}
			slog.Debug("Input read failed", "path", d.dev.Path(), "error", err)
			return events, false
		}
		if ev == nil {
			continue
		}

		switch ev.Type {
		case evdev.EV_ABS:
			switch ev.Code {
			case evdev.ABS_X, evdev.ABS_MT_POSITION_X:
				d.x = ev.Value
			case evdev.ABS_Y, evdev.ABS_MT_POSITION_Y:
				d.y = ev.Value
			}
		case evdev.EV_KEY:
			switch ev.Code {
			case evdev.BTN_TOUCH, evdev.BTN_LEFT:
				if ev.Value == 1 {
					d.pressed = true
				}
			case evdev.KEY_ESC:
				if ev.Value == 1 {
					events = append(events, Event{Kind: EventQuit})
				}
			}
		case evdev.EV_SYN:
			// Coordinates for the press arrive in the same report
			if ev.Code == evdev.SYN_REPORT && d.pressed {
				d.pressed = false
				events = append(events, Event{Kind: EventTap, Pos: d.cal.Map(d.x, d.y)})
			}
		}
	}
}

func (in *touchInput) Close() {
	for _, d := range in.devices {
		_ = d.dev.Close()
	}
	in.devices = nil
}

// ListInputDevices reports evdev devices usable for touch or quit input
func ListInputDevices() ([]InputDeviceInfo, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	infos := make([]InputDeviceInfo, 0, len(paths))
	for _, p := range paths {
		dev, err := evdev.OpenWithFlags(p.Path, os.O_RDONLY)
		if err != nil {
			continue
		}
		name := p.Name
		if actual, err := dev.Name(); err == nil && actual != "" {
			name = actual
		}
		touch, quit := classify(dev)
		infos = append(infos, InputDeviceInfo{Path: p.Path, Name: name, Touch: touch, Quit: quit})
		_ = dev.Close()
	}
	return infos, nil
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
