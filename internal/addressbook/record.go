package addressbook

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-assistant-bot/internal/config"
)

// Record is one contact: a fixed name, ordered phones and an optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record key.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday reports the stored birthday, if any.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates raw and appends it. Duplicates are allowed.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// AddUniquePhone is AddPhone that refuses an exact duplicate.
func (r *Record) AddUniquePhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	if r.indexOf(p.value) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicatePhone, p.value)
	}
	r.phones = append(r.phones, p)
	return nil
}

// FindPhone returns the first phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, error) {
	i := r.indexOf(raw)
	if i < 0 {
		return Phone{}, fmt.Errorf("phone %s: %w", raw, ErrNotFound)
	}
	return r.phones[i], nil
}

// EditPhone replaces every phone equal to oldRaw with newRaw.
// newRaw is validated before anything is changed.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	replaced := false
	for i := range r.phones {
		if r.phones[i].value == oldRaw {
			r.phones[i] = p
			replaced = true
		}
	}
	if !replaced {
		return fmt.Errorf("phone %s: %w", oldRaw, ErrNotFound)
	}
	return nil
}

// RemovePhone drops the first phone equal to raw.
func (r *Record) RemovePhone(raw string) error {
	i := r.indexOf(raw)
	if i < 0 {
		return fmt.Errorf("phone %s: %w", raw, ErrNotFound)
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return nil
}

// AddBirthday parses raw and overwrites any previous birthday.
func (r *Record) AddBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// SetBirthday stores an already validated birthday.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = &b
}

func (r *Record) indexOf(raw string) int {
	for i, p := range r.phones {
		if p.value == raw {
			return i
		}
	}
	return -1
}

// PhoneList joins the phone numbers with ", ".
func (r *Record) PhoneList() string {
	values := make([]string, len(r.phones))
	for i, p := range r.phones {
		values[i] = p.value
	}
	return strings.Join(values, config.PhoneJoiner)
}

// String renders the one-line summary used by the "all" listing.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name.value)
	sb.WriteString(", phone(s): ")
	sb.WriteString(r.PhoneList())
	if r.birthday != nil {
		sb.WriteString(", birthday: ")
		sb.WriteString(r.birthday.String())
	}
	return sb.String()
}
