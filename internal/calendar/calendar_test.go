package calendar_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
	"github.com/tartampluch/go-assistant-bot/internal/calendar"
	"github.com/tartampluch/go-assistant-bot/internal/config"
)

func TestBuild_EventsOnCongratulationDates(t *testing.T) {
	book := addressbook.New()
	for name, bday := range map[string]string{"Sat": "15.06.1990", "Wed": "12.06.1985"} {
		r, err := addressbook.NewRecord(name)
		require.NoError(t, err)
		require.NoError(t, r.AddBirthday(bday))
		book.Add(r)
	}
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	data, err := calendar.Build(book.UpcomingBirthdays(now, 7), now)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "PRODID:"+config.ICalProdid)
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "SUMMARY:Birthday: Sat")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240617", "Saturday birthday is exported on Monday")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240612")
	assert.NotContains(t, ics, "DTSTART;VALUE=DATE:20240615")
}

func TestBuild_DeterministicUIDs(t *testing.T) {
	r, err := addressbook.NewRecord("John")
	require.NoError(t, err)
	require.NoError(t, r.AddBirthday("12.06.1990"))
	book := addressbook.New()
	book.Add(r)
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	first, err := calendar.Build(book.UpcomingBirthdays(now, 7), now)
	require.NoError(t, err)
	second, err := calendar.Build(book.UpcomingBirthdays(now, 7), now.Add(time.Hour))
	require.NoError(t, err)

	uid := func(ics string) string {
		for _, line := range strings.Split(ics, "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}
	assert.NotEmpty(t, uid(string(first)))
	assert.Equal(t, uid(string(first)), uid(string(second)))
	assert.True(t, strings.HasSuffix(uid(string(first)), "@"+config.ICalDomain))
}

func TestBuild_EmptyIsStub(t *testing.T) {
	data, err := calendar.Build(nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}
