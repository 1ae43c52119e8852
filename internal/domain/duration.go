package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseISODuration converts a Clockify interval duration such as
// "PT1H30M45S" into a time.Duration. Empty strings and "PT0S" yield zero.
// Fractional components are accepted ("PT0.5H").
func ParseISODuration(s string) (time.Duration, error) {
	if s == "" || s == "PT0S" {
		return 0, nil
	}
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok {
		return 0, fmt.Errorf("parse duration %q: missing PT prefix", s)
	}

	var seconds float64
	units := []struct {
		sep  string
		mult float64
	}{{"H", 3600}, {"M", 60}, {"S", 1}}
	for _, u := range units {
		before, after, found := strings.Cut(rest, u.sep)
		if !found {
			continue
		}
		v, err := strconv.ParseFloat(before, 64)
		if err != nil {
			return 0, fmt.Errorf("parse duration %q: %w", s, err)
		}
		seconds += v * u.mult
		rest = after
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// FormatDetailed renders a duration as "1h 30m 45s", omitting zero
// components. Negative durations render as "0s".
func FormatDetailed(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60

	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	return strings.Join(parts, " ")
}

// FormatClock renders a duration as "HH:MM:SS" for the ticking display.
func FormatClock(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
