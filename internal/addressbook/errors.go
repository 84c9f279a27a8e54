// Package addressbook contains the contact-book domain: validated fields,
// records, the name-keyed book and the upcoming-birthdays query.
// It has no knowledge of files, terminals or message catalogs.
package addressbook

import (
	"errors"
	"fmt"
)

// Errors for domain-level failures.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidPhoneFormat = errors.New("invalid phone format")
	ErrInvalidDateFormat  = errors.New("invalid date format")
	ErrDuplicatePhone     = errors.New("duplicate phone")
)

// PhoneReason names the validation rule a phone number failed.
type PhoneReason string

const (
	ReasonDigitsOnly  PhoneReason = "digits only"
	ReasonWrongLength PhoneReason = "wrong length"
)

// PhoneFormatError reports why a raw string is not a valid phone number.
// It matches ErrInvalidPhoneFormat with errors.Is.
type PhoneFormatError struct {
	Value  string
	Reason PhoneReason
}

func (e *PhoneFormatError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidPhoneFormat, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidPhoneFormat.
func (e *PhoneFormatError) Unwrap() error {
	return ErrInvalidPhoneFormat
}
