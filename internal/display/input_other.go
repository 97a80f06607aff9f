//go:build !linux

package display

import "fmt"

type InputDeviceInfo struct {
	Path  string
	Name  string
	Touch bool
	Quit  bool
}

func ListInputDevices() ([]InputDeviceInfo, error) {
	return nil, fmt.Errorf("input devices can only be listed on Linux")
}
