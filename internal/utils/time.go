package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// TripDuration derives a human duration label from "HH:MM" departure and
// arrival clock times. Arrivals past midnight wrap forward one day.
func TripDuration(departure, arrival string) string {
	depH, depM, err1 := splitClock(departure)
	arrH, arrM, err2 := splitClock(arrival)
	if err1 != nil || err2 != nil {
		return ""
	}

	minutes := (arrH*60 + arrM) - (depH*60 + depM)
	if minutes < 0 {
		minutes += 24 * 60
	}

	h := minutes / 60
	m := minutes % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dmin", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dmin", h, m)
	}
}

// FormatCountdown renders remaining seconds as M:SS for display.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func splitClock(s string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("clock time out of range %q", s)
	}
	return h, m, nil
}
