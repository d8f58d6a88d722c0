package model

import (
	"fmt"
	"time"
)

// FormatPosition renders seconds as m:ss, or h:mm:ss past the hour
func FormatPosition(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// TimeAgo returns a short relative label for t as seen from now
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < time.Minute {
		return "just now"
	}

	minutes := int(diff / time.Minute)
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return plural(days, "day") + " ago"
	case hours > 0:
		return plural(hours, "hour") + " ago"
	default:
		return plural(minutes, "minute") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatRate renders a playback rate the way the speed label shows it
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.3fx", rate)
}
