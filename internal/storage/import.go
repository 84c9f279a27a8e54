package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
	"github.com/tartampluch/go-assistant-bot/internal/config"
)

// ImportVCards merges the contacts of an arbitrary vCard stream into book.
// Unlike DecodeSnapshot it is lenient: malformed cards, unusable phones and
// unparseable dates are logged and skipped. Phones are appended to an existing
// record of the same name unless already present.
// It returns the number of cards that produced or updated a record.
func ImportVCards(ctx context.Context, r io.Reader, book *addressbook.AddressBook) (int, error) {
	dec := vcard.NewDecoder(r)
	imported := 0

	for {
		if err := ctx.Err(); err != nil {
			return imported, err
		}

		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken line desynchronises the decoder; stop with what we have.
			slog.Warn(config.ErrVCardDecode,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyError, err)
			return imported, err
		}

		name := cardName(card)
		if name == "" {
			slog.Warn(config.MsgSkippedCard, config.LogKeyComponent, config.CompStorage)
			continue
		}

		rec, err := book.Find(name)
		if err != nil {
			rec, err = addressbook.NewRecord(name)
			if err != nil {
				slog.Warn(config.MsgSkippedCard,
					config.LogKeyComponent, config.CompStorage,
					config.LogKeyError, err)
				continue
			}
			book.Add(rec)
		}

		for _, tel := range card.Values(vcard.FieldTelephone) {
			number := digitsOnly(tel)
			if err := rec.AddUniquePhone(number); err != nil && !errors.Is(err, addressbook.ErrDuplicatePhone) {
				slog.Debug(config.MsgSkippedPhone,
					config.LogKeyComponent, config.CompStorage,
					config.LogKeyName, name,
					config.LogKeyValue, tel)
			}
		}

		if raw := card.Value(vcard.FieldBirthday); raw != "" {
			if date, _, err := parseDate(raw); err == nil {
				rec.SetBirthday(addressbook.BirthdayFromDate(date))
			} else {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompStorage,
					config.LogKeyName, name,
					config.LogKeyValue, raw)
			}
		}
		imported++
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyCount, imported)
	return imported, nil
}

// cardName prefers FN (Formatted) over N (Structured). Inner whitespace is
// collapsed into underscores because command arguments are whitespace separated.
func cardName(card vcard.Card) string {
	name := card.Value(vcard.FieldFormattedName)
	if name == "" {
		if n := card.Name(); n != nil {
			name = strings.TrimSpace(n.GivenName + " " + n.FamilyName)
		}
	}
	return strings.Join(strings.Fields(name), "_")
}

// digitsOnly strips formatting such as "+", spaces, dashes and brackets.
// A leading "38" country code is dropped from 12-digit numbers.
func digitsOnly(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			sb.WriteByte(s[i])
		}
	}
	out := sb.String()
	if len(out) == config.PhoneLength+2 && strings.HasPrefix(out, "38") {
		out = out[2:]
	}
	return out
}
