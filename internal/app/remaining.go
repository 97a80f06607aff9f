package app

import "fmt"

// RemainingSeconds estimates time left: (interval + settling) * (total - current) / 1000
func RemainingSeconds(intervalMs, settlingMs, total, current int) int {
	left := total - current
	if left <= 0 {
		return 0
	}
	return int(int64(intervalMs+settlingMs) * int64(left) / 1000)
}

// FormatRemaining renders seconds as "0h8m50s"; hours are not wrapped at a day
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh%dm%ds", seconds/3600, seconds%3600/60, seconds%60)
}
