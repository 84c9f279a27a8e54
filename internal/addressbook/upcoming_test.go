package addressbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func bookWithBirthdays(t *testing.T, birthdays map[string]string, order ...string) *addressbook.AddressBook {
	t.Helper()
	book := addressbook.New()
	for _, name := range order {
		r := newRecord(t, name, "1234567890")
		if raw := birthdays[name]; raw != "" {
			require.NoError(t, r.AddBirthday(raw))
		}
		book.Add(r)
	}
	return book
}

func names(list []addressbook.Upcoming) []string {
	out := make([]string, 0, len(list))
	for _, u := range list {
		out = append(out, u.Record.Name().Value())
	}
	return out
}

func TestUpcomingBirthdays_WeekendRollForward(t *testing.T) {
	// June 10th, 2024 is a Monday.
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	book := bookWithBirthdays(t, map[string]string{
		"Sat":   "15.06.1990",
		"Wed":   "12.06.1985",
		"None":  "",
		"Later": "30.06.1990",
	}, "Sat", "Wed", "None", "Later")

	got := book.UpcomingBirthdays(now, 7)
	require.Len(t, got, 2)

	assert.Equal(t, "Wed", got[0].Record.Name().Value())
	assert.Equal(t, day(2024, 6, 12), got[0].Birthday)
	assert.Equal(t, day(2024, 6, 12), got[0].CongratulationDate, "Weekday birthdays are unchanged")

	assert.Equal(t, "Sat", got[1].Record.Name().Value())
	assert.Equal(t, day(2024, 6, 15), got[1].Birthday)
	assert.Equal(t, day(2024, 6, 17), got[1].CongratulationDate, "Saturday moves to Monday")
}

func TestUpcomingBirthdays_YearWrap(t *testing.T) {
	now := time.Date(2024, 12, 28, 18, 0, 0, 0, time.UTC)
	book := bookWithBirthdays(t, map[string]string{"Jan": "02.01.1999"}, "Jan")

	got := book.UpcomingBirthdays(now, 7)
	require.Len(t, got, 1)
	assert.Equal(t, day(2025, 1, 2), got[0].Birthday)
	assert.Equal(t, day(2025, 1, 2), got[0].CongratulationDate)
}

func TestUpcomingBirthdays_WindowBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	book := bookWithBirthdays(t, map[string]string{
		"Today":     "10.06.2000",
		"Yesterday": "09.06.2000",
		"Horizon":   "17.06.2000",
		"Beyond":    "18.06.2000",
	}, "Today", "Yesterday", "Horizon", "Beyond")

	got := book.UpcomingBirthdays(now, 7)
	assert.Equal(t, []string{"Today", "Horizon"}, names(got))
}

func TestUpcomingBirthdays_SortedByCongratulationDateStable(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	book := bookWithBirthdays(t, map[string]string{
		"Monday":   "17.06.2000",
		"Sunday":   "16.06.2000",
		"Saturday": "15.06.2000",
		"Tuesday":  "11.06.2000",
	}, "Monday", "Sunday", "Saturday", "Tuesday")

	got := book.UpcomingBirthdays(now, 7)
	assert.Equal(t, []string{"Tuesday", "Monday", "Sunday", "Saturday"}, names(got),
		"All three land on Monday June 17th and keep insertion order")
	for _, u := range got[1:] {
		assert.Equal(t, day(2024, 6, 17), u.CongratulationDate)
	}
}

func TestUpcomingBirthdays_LeapDayInNonLeapYear(t *testing.T) {
	// 2025 is not a leap year: Feb 29 is celebrated on March 1st, a Saturday.
	now := time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)
	book := bookWithBirthdays(t, map[string]string{"Leap": "29.02.2000"}, "Leap")

	got := book.UpcomingBirthdays(now, 7)
	require.Len(t, got, 1)
	assert.Equal(t, day(2025, 3, 1), got[0].Birthday)
	assert.Equal(t, day(2025, 3, 3), got[0].CongratulationDate)
}

func TestUpcomingBirthdays_LeapDayInLeapYear(t *testing.T) {
	now := time.Date(2028, 2, 25, 0, 0, 0, 0, time.UTC)
	book := bookWithBirthdays(t, map[string]string{"Leap": "29.02.2000"}, "Leap")

	got := book.UpcomingBirthdays(now, 7)
	require.Len(t, got, 1)
	assert.Equal(t, day(2028, 2, 29), got[0].Birthday)
	assert.Equal(t, day(2028, 2, 29), got[0].CongratulationDate, "Feb 29th 2028 is a Tuesday")
}

func TestUpcomingBirthdays_EmptyBook(t *testing.T) {
	assert.Empty(t, addressbook.New().UpcomingBirthdays(time.Now(), 20))
}
