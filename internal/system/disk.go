package system

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
)

// DiskProbe reports free space at a path, re-reading at most once per interval
type DiskProbe struct {
	path     string
	interval time.Duration
	usage    func(string) (*disk.UsageStat, error)

	mutex   sync.Mutex
	checked time.Time
	free    uint64
	ok      bool
}

func NewDiskProbe(path string, interval time.Duration) *DiskProbe {
	return &DiskProbe{path: path, interval: interval, usage: disk.Usage}
}

// Free returns the cached free byte count and whether it is known
func (p *DiskProbe) Free() (uint64, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.checked.IsZero() && time.Since(p.checked) < p.interval {
		return p.free, p.ok
	}
	p.checked = time.Now()

	stat, err := p.usage(p.path)
	if err != nil {
		if p.ok {
			slog.Debug("Disk usage probe failed", "path", p.path, "error", err)
		}
		p.ok = false
		return 0, false
	}
	p.free = stat.Free
	p.ok = true
	return p.free, true
}

// FormatBytes renders a byte count with a binary unit
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
