package addressbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNextOccurrence verifies the re-anchoring of a birthday to the current or next year.
// It covers standard dates, the end of year boundary and leap year complexities.
func TestNextOccurrence(t *testing.T) {
	// Reference "today": June 15th, 2025 (Non-Leap Year)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		birthDate    time.Time
		expectedDate time.Time
		desc         string
	}{
		{
			name:         "Birthday in the past (this year)",
			birthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			desc:         "Jan 1 is before June 15, so next occurrence is 2026",
		},
		{
			name:         "Birthday in the future (this year)",
			birthDate:    time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			desc:         "Dec 31 is after June 15, so next occurrence is 2025",
		},
		{
			name:         "Birthday is Today",
			birthDate:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			desc:         "If birthday is today, it counts as the next occurrence",
		},
		{
			name:         "Leapling - Non-Leap Year (Feb 29 -> Mar 1)",
			birthDate:    time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			desc:         "Born Feb 29. Next occurrence relative to June 2025 is March 1st 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedDate, nextOccurrence(today, tt.birthDate), tt.desc)
		})
	}
}

// TestNextOccurrence_LeapYearContext verifies behavior when the *current* year is a leap year.
func TestNextOccurrence_LeapYearContext(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	birthDate := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)

	expected := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, expected, nextOccurrence(today, birthDate), "In a leap year, the birthday should be Feb 29, not Mar 1")
}

func TestCongratulationDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"Monday", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{"Friday", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)},
		{"Saturday", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)},
		{"Sunday", time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)},
		{"Sunday across year end", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, congratulationDate(tt.in))
		})
	}
}

func TestDateOnly_UsesLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 23:30 on June 15th in Tokyo is still June 15th for the user.
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), dateOnly(now))
}
