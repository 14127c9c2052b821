package update

import (
	"fmt"
	"strconv"
	"time"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// formatCountdown renders a remaining duration as HH:MM:SS; past-due
// durations show how far over.
func formatCountdown(d time.Duration) string {
	prefix := ""
	if d < 0 {
		prefix = "-"
		d = -d
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", prefix, hours, minutes, seconds)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
