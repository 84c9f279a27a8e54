package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
	"github.com/tartampluch/go-assistant-bot/internal/config"
)

var uidNamespace = uuid.MustParse(config.UIDNamespace)

// VCardStore keeps the book in a single .vcf file, one vCard 4.0 per record.
// Each card carries X-ADDRESSBOOK-FORMAT so the layout can be versioned.
type VCardStore struct {
	Path string
}

// NewVCardStore returns a store for the .vcf file at path. The file and its
// parent directories are only created by the first Save.
func NewVCardStore(path string) *VCardStore {
	return &VCardStore{Path: path}
}

// Load decodes the snapshot. A missing file yields an empty book.
func (s *VCardStore) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info(config.MsgBookEmpty,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyFile, s.Path)
			return addressbook.New(), nil
		}
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	}
	defer func() { _ = f.Close() }()

	book, err := DecodeSnapshot(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	}

	slog.Info(config.MsgBookLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyDriver, config.StorageVCard,
		config.LogKeyFile, s.Path,
		config.LogKeyRecords, book.Len())
	return book, nil
}

// Save writes the whole book atomically.
func (s *VCardStore) Save(ctx context.Context, book *addressbook.AddressBook) error {
	err := writeFileAtomic(s.Path, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		if err := EncodeSnapshot(ctx, bw, book); err != nil {
			return err
		}
		return bw.Flush()
	})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
	}

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyDriver, config.StorageVCard,
		config.LogKeyFile, s.Path,
		config.LogKeyRecords, book.Len())
	return nil
}

// EncodeSnapshot writes every record of book as a vCard stream.
func EncodeSnapshot(ctx context.Context, w io.Writer, book *addressbook.AddressBook) error {
	enc := vcard.NewEncoder(w)
	for _, r := range book.Records() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := enc.Encode(recordToCard(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

// DecodeSnapshot rebuilds a book from a stream produced by EncodeSnapshot.
// Any card that does not convert back into a valid record fails the whole load.
func DecodeSnapshot(ctx context.Context, r io.Reader) (*addressbook.AddressBook, error) {
	book := addressbook.New()

	br := bufio.NewReader(r)
	empty, err := checkSnapshotStart(br)
	if err != nil {
		return nil, err
	}
	if empty {
		return book, nil
	}
	dec := vcard.NewDecoder(br)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardDecode, err)
		}

		if err := checkFormat(card); err != nil {
			return nil, err
		}
		rec, err := cardToRecord(card)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardDecode, err)
		}
		book.Add(rec)
	}
	return book, nil
}

// checkSnapshotStart skips leading blank lines and requires the first
// remaining line to open a vCard. A blank stream is an empty snapshot.
func checkSnapshotStart(br *bufio.Reader) (bool, error) {
	for {
		b, err := br.Peek(1)
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("%s: %w", config.ErrVCardDecode, err)
		}
		if !isBlankByte(b[0]) {
			break
		}
		_, _ = br.ReadByte()
	}

	head, _ := br.Peek(len(config.VCardBegin))
	if !strings.EqualFold(string(head), config.VCardBegin) {
		return false, fmt.Errorf("%s: %s", config.ErrVCardDecode, config.ErrSnapshotHeader)
	}
	return false, nil
}

func isBlankByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// checkFormat accepts cards without the format tag as version 1.
func checkFormat(card vcard.Card) error {
	raw := card.Value(config.VCardPropFormat)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > config.VCardFormatVersion {
		return fmt.Errorf("%w: %s=%q", ErrUnsupportedFormat, config.VCardPropFormat, raw)
	}
	return nil
}

func recordToCard(r *addressbook.Record) vcard.Card {
	name := r.Name().Value()

	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldProductID, config.VCardProdid)
	card.SetValue(config.VCardPropFormat, strconv.Itoa(config.VCardFormatVersion))
	card.SetValue(vcard.FieldUID, RecordUID(name))
	card.SetValue(vcard.FieldFormattedName, name)

	for _, p := range r.Phones() {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  p.Value(),
			Params: vcard.Params{vcard.ParamType: {config.VCardTelType}},
		})
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Date().Format(config.DateFormatFullBasic))
	}
	return card
}

func cardToRecord(card vcard.Card) (*addressbook.Record, error) {
	rec, err := addressbook.NewRecord(card.Value(vcard.FieldFormattedName))
	if err != nil {
		return nil, err
	}
	for _, tel := range card.Values(vcard.FieldTelephone) {
		if err := rec.AddPhone(tel); err != nil {
			return nil, err
		}
	}
	if raw := card.Value(vcard.FieldBirthday); raw != "" {
		date, _, err := parseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", addressbook.ErrInvalidDateFormat, raw)
		}
		rec.SetBirthday(addressbook.BirthdayFromDate(date))
	}
	return rec, nil
}

// RecordUID derives a stable UID from the contact name, so successive
// snapshots of the same contact keep the same identity.
func RecordUID(name string) string {
	return config.VCardUIDPrefix + uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

// parseDate handles the vCard date forms. The second result reports whether
// the year was present; dates without a year are placed in config.DefaultLeapYear.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullBasic,
		config.DateFormatFullDash,
		config.DateFormatRFC3339,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
