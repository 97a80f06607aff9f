package display

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const sysGraphics = "/sys/class/graphics"

// FramebufferInfo is the geometry the kernel reports for /dev/fbN
type FramebufferInfo struct {
	Device       string
	Name         string
	Width        int
	Height       int
	BitsPerPixel int
	Stride       int
}

// ReadFramebufferInfo reads geometry for a device such as /dev/fb1
func ReadFramebufferInfo(device string) (FramebufferInfo, error) {
	return readFramebufferInfo(sysGraphics, device)
}

// ListFramebuffers enumerates the framebuffers known to sysfs
func ListFramebuffers() ([]FramebufferInfo, error) {
	matches, err := filepath.Glob(filepath.Join(sysGraphics, "fb*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	infos := make([]FramebufferInfo, 0, len(matches))
	for _, m := range matches {
		info, err := readFramebufferInfo(sysGraphics, "/dev/"+filepath.Base(m))
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func readFramebufferInfo(root, device string) (FramebufferInfo, error) {
	dir := filepath.Join(root, filepath.Base(device))
	info := FramebufferInfo{Device: device}

	info.Name = readSysString(filepath.Join(dir, "name"))

	size := readSysString(filepath.Join(dir, "virtual_size"))
	parts := strings.Split(size, ",")
	if len(parts) != 2 {
		return info, fmt.Errorf("unreadable virtual_size for %s: %q", device, size)
	}
	var err error
	if info.Width, err = strconv.Atoi(parts[0]); err != nil {
		return info, fmt.Errorf("invalid width for %s: %w", device, err)
	}
	if info.Height, err = strconv.Atoi(parts[1]); err != nil {
		return info, fmt.Errorf("invalid height for %s: %w", device, err)
	}

	if info.BitsPerPixel, err = strconv.Atoi(readSysString(filepath.Join(dir, "bits_per_pixel"))); err != nil {
		return info, fmt.Errorf("invalid bits_per_pixel for %s: %w", device, err)
	}

	// Older kernels have no stride attribute
	if stride, err := strconv.Atoi(readSysString(filepath.Join(dir, "stride"))); err == nil && stride > 0 {
		info.Stride = stride
	} else {
		info.Stride = info.Width * info.BitsPerPixel / 8
	}
	return info, nil
}

func readSysString(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
