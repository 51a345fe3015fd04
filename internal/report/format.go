// Package report renders analysis results for humans: formatted split
// times, CSV tables and chart pages.
package report

import (
	"fmt"
	"time"
)

// FormatSplit renders a duration in the split-board convention: mm:ss.hh,
// or h:mm:ss.hh once an hour is reached (or forceHours is set).
func FormatSplit(d time.Duration, forceHours bool) string {
	if d < 0 {
		d = -d
	}
	hundredths := int64(d / (10 * time.Millisecond))
	seconds := hundredths / 100
	hundredths %= 100
	minutes := seconds / 60
	seconds %= 60
	hours := minutes / 60

	if hours > 0 || forceHours {
		minutes %= 60
		return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, hundredths)
	}
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, hundredths)
}
