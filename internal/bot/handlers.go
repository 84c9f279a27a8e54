package bot

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
	"github.com/tartampluch/go-assistant-bot/internal/calendar"
	"github.com/tartampluch/go-assistant-bot/internal/config"
	"github.com/tartampluch/go-assistant-bot/internal/storage"
)

func helloHandler(_ context.Context, s *Session, _ []string) (string, error) {
	return s.Catalog.Msg(config.TKeyGreeting), nil
}

func helpHandler(_ context.Context, s *Session, _ []string) (string, error) {
	return s.Catalog.Msg(config.TKeyHelp), nil
}

// addContact creates the contact or appends a phone to it.
// The phone is validated before a new record enters the book.
func addContact(_ context.Context, s *Session, args []string) (string, error) {
	a, err := requireArgs(args, 2)
	if err != nil {
		return "", err
	}
	name, phone := a[0], a[1]

	key := config.TKeyContactUpdated
	rec, err := s.Book.Find(name)
	if err != nil {
		rec, err = addressbook.NewRecord(name)
		if err != nil {
			return "", aboutContact(err, name)
		}
		key = config.TKeyContactAdded
	}

	if s.Settings.StrictPhones {
		err = rec.AddUniquePhone(phone)
	} else {
		err = rec.AddPhone(phone)
	}
	if err != nil {
		return "", aboutPhone(err, name, phone)
	}

	if key == config.TKeyContactAdded {
		s.Book.Add(rec)
	}
	return s.Catalog.Msgf(key, map[string]any{"Name": name}), nil
}

func changeContact(_ context.Context, s *Session, args []string) (string, error) {
	a, err := requireArgs(args, 3)
	if err != nil {
		return "", err
	}
	name, oldPhone, newPhone := a[0], a[1], a[2]

	rec, err := s.Book.Find(name)
	if err != nil {
		return "", aboutContact(err, name)
	}
	if err := rec.EditPhone(oldPhone, newPhone); err != nil {
		return "", aboutPhone(err, name, oldPhone)
	}
	return s.Catalog.Msgf(config.TKeyPhoneChanged, map[string]any{"Name": name, "Phone": newPhone}), nil
}

func showPhones(_ context.Context, s *Session, args []string) (string, error) {
	a, err := requireArgs(args, 1)
	if err != nil {
		return "", err
	}
	rec, err := s.Book.Find(a[0])
	if err != nil {
		return "", aboutContact(err, a[0])
	}
	if len(rec.Phones()) == 0 {
		return s.Catalog.Msgf(config.TKeyNoPhones, map[string]any{"Name": a[0]}), nil
	}
	return rec.PhoneList(), nil
}

func showAll(_ context.Context, s *Session, _ []string) (string, error) {
	records := s.Book.Records()
	if len(records) == 0 {
		return s.Catalog.Msg(config.TKeyNoContacts), nil
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = fmt.Sprintf("%d. %s", i+1, r)
	}
	return strings.Join(lines, "\n"), nil
}

func addBirthday(_ context.Context, s *Session, args []string) (string, error) {
	a, err := requireArgs(args, 2)
	if err != nil {
		return "", err
	}
	name, raw := a[0], a[1]

	rec, err := s.Book.Find(name)
	if err != nil {
		return "", aboutContact(err, name)
	}
	if err := rec.AddBirthday(raw); err != nil {
		return "", aboutContact(err, name)
	}
	return s.Catalog.Msgf(config.TKeyBirthdaySet, map[string]any{"Name": name, "Birthday": raw}), nil
}

func showBirthday(_ context.Context, s *Session, args []string) (string, error) {
	a, err := requireArgs(args, 1)
	if err != nil {
		return "", err
	}
	rec, err := s.Book.Find(a[0])
	if err != nil {
		return "", aboutContact(err, a[0])
	}
	b, ok := rec.Birthday()
	if !ok {
		return s.Catalog.Msgf(config.TKeyNoBirthday, map[string]any{"Name": a[0]}), nil
	}
	return b.String(), nil
}

func upcomingBirthdays(_ context.Context, s *Session, _ []string) (string, error) {
	if s.Book.Len() == 0 {
		return s.Catalog.Msg(config.TKeyNoContacts), nil
	}
	upcoming := s.Book.UpcomingBirthdays(s.Clock.Now(), s.Settings.WindowDays)
	if len(upcoming) == 0 {
		return s.Catalog.Msg(config.TKeyNoUpcoming), nil
	}

	lines := []string{s.Catalog.Msgf(config.TKeyUpcomingHeader, map[string]any{"Days": s.Settings.WindowDays})}
	for i, u := range upcoming {
		bday, _ := u.Record.Birthday()
		lines = append(lines, s.Catalog.Msgf(config.TKeyUpcomingLine, map[string]any{
			"Index":    i + 1,
			"Name":     u.Record.Name().Value(),
			"Birthday": bday.String(),
			"Date":     u.CongratulationDate.Format(config.DateFormatBirthday),
		}))
	}
	return strings.Join(lines, "\n"), nil
}

func deleteContact(_ context.Context, s *Session, args []string) (string, error) {
	a, err := requireArgs(args, 1)
	if err != nil {
		return "", err
	}
	if err := s.Book.Delete(a[0]); err != nil {
		return "", aboutContact(err, a[0])
	}
	return s.Catalog.Msgf(config.TKeyContactDeleted, map[string]any{"Name": a[0]}), nil
}

func removePhone(_ context.Context, s *Session, args []string) (string, error) {
	a, err := requireArgs(args, 2)
	if err != nil {
		return "", err
	}
	name, phone := a[0], a[1]

	rec, err := s.Book.Find(name)
	if err != nil {
		return "", aboutContact(err, name)
	}
	if err := rec.RemovePhone(phone); err != nil {
		return "", aboutPhone(err, name, phone)
	}
	return s.Catalog.Msgf(config.TKeyPhoneRemoved, map[string]any{"Name": name, "Phone": phone}), nil
}

// exportCalendar writes the current upcoming window as an .ics file.
func exportCalendar(_ context.Context, s *Session, args []string) (string, error) {
	a, err := requireArgs(args, 1)
	if err != nil {
		return "", err
	}
	now := s.Clock.Now()
	upcoming := s.Book.UpcomingBirthdays(now, s.Settings.WindowDays)

	data, err := calendar.Build(upcoming, now)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(a[0], data, config.FilePermUserRW); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrWriteFile, err)
	}
	return s.Catalog.Msgf(config.TKeyCalendarExported, map[string]any{"Count": len(upcoming), "Path": a[0]}), nil
}

// importContacts merges a foreign .vcf file. Cards decoded before a broken
// line stay merged, and the reply says how many that was.
func importContacts(ctx context.Context, s *Session, args []string) (string, error) {
	a, err := requireArgs(args, 1)
	if err != nil {
		return "", err
	}
	path := a[0]

	f, err := os.Open(path)
	if err != nil {
		return "", &importError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	count, err := storage.ImportVCards(ctx, f, s.Book)
	if err != nil {
		return "", &importError{Path: path, Count: count, Err: err}
	}
	return s.Catalog.Msgf(config.TKeyImported, map[string]any{"Count": count, "Path": path}), nil
}

// closeSession saves before the loop terminates.
func closeSession(ctx context.Context, s *Session, _ []string) (string, error) {
	if err := s.Store.Save(ctx, s.Book); err != nil {
		return "", &saveError{Err: err}
	}
	return s.Catalog.Msg(config.TKeyGoodbye), nil
}
