package utils

import (
	"flexera-service/internal/pkg/constvars"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var hhmmRegex = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// IsValidClockTime reports whether value is a 24-hour HH:MM string.
func IsValidClockTime(value string) bool {
	return hhmmRegex.MatchString(value)
}

// ClockTimeToMinutes converts a validated HH:MM string to minutes since midnight.
func ClockTimeToMinutes(value string) int {
	parts := strings.SplitN(value, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// RangesOverlap reports whether [startA, endA) and [startB, endB) intersect.
func RangesOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// ParseScheduleDate parses a YYYY-MM-DD string, rejecting calendar-impossible
// values such as 2025-02-30.
func ParseScheduleDate(value string) (time.Time, error) {
	return time.Parse(constvars.DateFormat, value)
}

// IsPastDate reports whether date is strictly before today, comparing calendar
// days in the local timezone.
func IsPastDate(date time.Time, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return day.Before(today)
}
