package addressbook

import (
	"sort"
	"time"
)

// Upcoming pairs a record with the dates used by the birthday reminder.
type Upcoming struct {
	Record *Record

	// Birthday is the next occurrence of the birthday, in the current or next year.
	Birthday time.Time

	// CongratulationDate is Birthday moved forward to Monday when it falls on a weekend.
	CongratulationDate time.Time
}

// UpcomingBirthdays returns the records whose next birthday falls within
// [today, today+days], sorted by congratulation date. Ties keep insertion order.
func (b *AddressBook) UpcomingBirthdays(now time.Time, days int) []Upcoming {
	today := dateOnly(now)
	horizon := today.AddDate(0, 0, days)

	var out []Upcoming
	for _, r := range b.Records() {
		bday, ok := r.Birthday()
		if !ok {
			continue
		}
		candidate := nextOccurrence(today, bday.Date())
		if candidate.After(horizon) {
			continue
		}
		out = append(out, Upcoming{
			Record:             r,
			Birthday:           candidate,
			CongratulationDate: congratulationDate(candidate),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CongratulationDate.Before(out[j].CongratulationDate)
	})
	return out
}

// dateOnly strips the time of day, keeping the local calendar date of t.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nextOccurrence re-anchors birthDate to today's year, or to the next year
// when that date has already passed.
// time.Date normalises Feb 29 to Mar 1 in non-leap years.
func nextOccurrence(today, birthDate time.Time) time.Time {
	candidate := time.Date(today.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		candidate = time.Date(today.Year()+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	}
	return candidate
}

// congratulationDate shifts Saturday and Sunday to the following Monday.
func congratulationDate(d time.Time) time.Time {
	// 0=Monday..6=Sunday.
	weekday := (int(d.Weekday()) + 6) % 7
	if weekday >= 5 {
		return d.AddDate(0, 0, 7-weekday)
	}
	return d
}
