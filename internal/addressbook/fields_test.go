package addressbook_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
)

func TestNewPhone_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason addressbook.PhoneReason
	}{
		{"Empty", "", addressbook.ReasonDigitsOnly},
		{"Letters", "12345abcde", addressbook.ReasonDigitsOnly},
		{"Plus prefix", "+380501234", addressbook.ReasonDigitsOnly},
		{"Dashes", "123-456-78", addressbook.ReasonDigitsOnly},
		{"Unicode digits", "١٢٣٤٥٦٧٨٩٠", addressbook.ReasonDigitsOnly},
		{"Too short", "123456789", addressbook.ReasonWrongLength},
		{"Too long", "12345678901", addressbook.ReasonWrongLength},
		{"Non-digit and wrong length", "12a", addressbook.ReasonDigitsOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := addressbook.NewPhone(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, addressbook.ErrInvalidPhoneFormat)

			var pfe *addressbook.PhoneFormatError
			require.True(t, errors.As(err, &pfe))
			assert.Equal(t, tt.reason, pfe.Reason)
			assert.Equal(t, tt.raw, pfe.Value)
		})
	}
}

func TestNewPhone_Valid(t *testing.T) {
	for _, raw := range []string{"1234567890", "0000000000", "0501234567"} {
		p, err := addressbook.NewPhone(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, p.String(), "Rendered form must equal the input")
		assert.Equal(t, raw, p.Value())
	}
}

func TestPhone_EqualityByValue(t *testing.T) {
	a, _ := addressbook.NewPhone("1234567890")
	b, _ := addressbook.NewPhone("1234567890")
	c, _ := addressbook.NewPhone("1112223333")

	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestNewName(t *testing.T) {
	n, err := addressbook.NewName("  John ")
	require.NoError(t, err)
	assert.Equal(t, "John", n.Value())

	_, err = addressbook.NewName("   ")
	assert.ErrorIs(t, err, addressbook.ErrInvalidName)
}

func TestNewBirthday(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"Standard", "15.06.1990", time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"Leap day", "29.02.2000", time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), false},
		{"Impossible Feb 30", "30.02.2024", time.Time{}, true},
		{"Feb 29 in non-leap year", "29.02.2023", time.Time{}, true},
		{"Month 13", "01.13.2000", time.Time{}, true},
		{"ISO layout", "1990-06-15", time.Time{}, true},
		{"Single digit day", "1.06.1990", time.Time{}, true},
		{"Garbage", "tomorrow", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := addressbook.NewBirthday(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, addressbook.ErrInvalidDateFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Date())
			assert.Equal(t, tt.raw, b.String(), "Rendering must use the same DD.MM.YYYY layout")
		})
	}
}

func TestBirthdayFromDate_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	b := addressbook.BirthdayFromDate(time.Date(1990, 6, 15, 23, 30, 0, 0, loc))

	assert.Equal(t, time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), b.Date())
	assert.Equal(t, "15.06.1990", b.String())
}
