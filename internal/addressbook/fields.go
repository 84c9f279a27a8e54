package addressbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-assistant-bot/internal/config"
)

// Name is a contact's display name. The zero value is not a valid name.
type Name struct {
	value string
}

// NewName trims surrounding whitespace and rejects blank names.
func NewName(raw string) (Name, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Name{}, ErrInvalidName
	}
	return Name{value: v}, nil
}

// Value returns the underlying string, which is also the book key.
func (n Name) Value() string { return n.value }

func (n Name) String() string { return n.value }

// Phone is a number made of exactly config.PhoneLength ASCII digits.
type Phone struct {
	value string
}

// NewPhone is the only way to obtain a Phone.
// The digit rule is checked before the length rule.
func NewPhone(raw string) (Phone, error) {
	if !isDigits(raw) {
		return Phone{}, &PhoneFormatError{Value: raw, Reason: ReasonDigitsOnly}
	}
	if len(raw) != config.PhoneLength {
		return Phone{}, &PhoneFormatError{Value: raw, Reason: ReasonWrongLength}
	}
	return Phone{value: raw}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Value returns the ten digits.
func (p Phone) Value() string { return p.value }

func (p Phone) String() string { return p.value }

// Birthday holds a calendar date at UTC midnight.
type Birthday struct {
	date time.Time
}

// NewBirthday parses a DD.MM.YYYY string. Impossible dates such as
// 30.02.2024 are rejected by the parser itself.
func NewBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatBirthday, strings.TrimSpace(raw))
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}
	return Birthday{date: t}, nil
}

// BirthdayFromDate restores a Birthday from a stored date value.
// Time of day and location are discarded.
func BirthdayFromDate(t time.Time) Birthday {
	y, m, d := t.Date()
	return Birthday{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Date returns the birthday as a UTC midnight time.
func (b Birthday) Date() time.Time { return b.date }

// String renders the date as DD.MM.YYYY.
func (b Birthday) String() string {
	return b.date.Format(config.DateFormatBirthday)
}
