package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "10:00", "19:59", "23:59"}
	for _, v := range valid {
		assert.True(t, IsValidClockTime(v), "expected %q to be valid", v)
	}

	invalid := []string{"24:00", "9:30", "10:60", "10-30", "1000", "", "ab:cd", "10:30:00"}
	for _, v := range invalid {
		assert.False(t, IsValidClockTime(v), "expected %q to be invalid", v)
	}
}

func TestClockTimeToMinutes(t *testing.T) {
	assert.Equal(t, 0, ClockTimeToMinutes("00:00"))
	assert.Equal(t, 630, ClockTimeToMinutes("10:30"))
	assert.Equal(t, 1439, ClockTimeToMinutes("23:59"))
}

func TestRangesOverlap(t *testing.T) {
	t.Run("PartialOverlap", func(t *testing.T) {
		// 10:00-10:30 against 10:15-10:45
		assert.True(t, RangesOverlap(600, 630, 615, 645))
	})

	t.Run("Containment", func(t *testing.T) {
		assert.True(t, RangesOverlap(600, 660, 615, 630))
	})

	t.Run("IdenticalRange", func(t *testing.T) {
		assert.True(t, RangesOverlap(600, 630, 600, 630))
	})

	t.Run("TouchingBoundariesDoNotOverlap", func(t *testing.T) {
		// 10:00-10:30 then 10:30-11:00 is back-to-back, not overlapping
		assert.False(t, RangesOverlap(600, 630, 630, 660))
		assert.False(t, RangesOverlap(630, 660, 600, 630))
	})

	t.Run("Disjoint", func(t *testing.T) {
		assert.False(t, RangesOverlap(600, 630, 700, 730))
	})
}

func TestParseScheduleDate(t *testing.T) {
	parsed, err := ParseScheduleDate("2025-12-07")
	assert.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.December, parsed.Month())
	assert.Equal(t, 7, parsed.Day())

	_, err = ParseScheduleDate("07-12-2025")
	assert.Error(t, err)

	_, err = ParseScheduleDate("2025-02-30")
	assert.Error(t, err, "calendar-impossible dates must be rejected")
}

func TestIsPastDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsPastDate(yesterday, now))

	// Today is never past, no matter the clock time.
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsPastDate(today, now))

	tomorrow := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsPastDate(tomorrow, now))
}
