package bot

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
	"github.com/tartampluch/go-assistant-bot/internal/config"
)

// ErrInsufficientArguments is returned when a command receives too few tokens.
var ErrInsufficientArguments = errors.New("not enough arguments")

// subjectError attaches the contact (and phone) a failure is about,
// so the translated message can name them.
type subjectError struct {
	Name  string
	Phone string
	Err   error
}

func (e *subjectError) Error() string { return e.Err.Error() }

func (e *subjectError) Unwrap() error { return e.Err }

// saveError marks a failed snapshot write so it is reported as such.
type saveError struct {
	Err error
}

func (e *saveError) Error() string { return e.Err.Error() }

func (e *saveError) Unwrap() error { return e.Err }

// importError reports a failed import and how many cards were merged before it.
type importError struct {
	Path  string
	Count int
	Err   error
}

func (e *importError) Error() string { return e.Err.Error() }

func (e *importError) Unwrap() error { return e.Err }

func aboutContact(err error, name string) error {
	if err == nil {
		return nil
	}
	return &subjectError{Name: name, Err: err}
}

func aboutPhone(err error, name, phone string) error {
	if err == nil {
		return nil
	}
	return &subjectError{Name: name, Phone: phone, Err: err}
}

// requireArgs returns the first n arguments or ErrInsufficientArguments.
func requireArgs(args []string, n int) ([]string, error) {
	if len(args) < n {
		return nil, ErrInsufficientArguments
	}
	return args[:n], nil
}

// translate maps any handler error to a short localized message.
// It is the only place where errors become text.
func translate(c *Catalog, err error) string {
	data := map[string]any{}
	var subject *subjectError
	if errors.As(err, &subject) {
		data["Name"] = subject.Name
		data["Phone"] = subject.Phone
	}

	var phoneErr *addressbook.PhoneFormatError
	var saveErr *saveError
	var importErr *importError
	switch {
	case errors.As(err, &saveErr):
		slog.Error(config.ErrStoreSave,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyError, saveErr.Err)
		return c.Msgf(config.TKeySaveFailed, map[string]any{"Error": saveErr.Err.Error()})
	case errors.As(err, &importErr):
		return translateImport(c, importErr)
	case errors.Is(err, ErrInsufficientArguments):
		return c.Msg(config.TKeyErrArguments)
	case errors.As(err, &phoneErr):
		if phoneErr.Reason == addressbook.ReasonWrongLength {
			return c.Msg(config.TKeyErrPhoneLength)
		}
		return c.Msg(config.TKeyErrDigitsOnly)
	case errors.Is(err, addressbook.ErrInvalidDateFormat):
		return c.Msg(config.TKeyErrDate)
	case errors.Is(err, addressbook.ErrInvalidName):
		return c.Msg(config.TKeyErrName)
	case errors.Is(err, addressbook.ErrDuplicatePhone):
		return c.Msgf(config.TKeyErrDuplicate, data)
	case errors.Is(err, addressbook.ErrNotFound):
		if subject != nil && subject.Phone != "" {
			return c.Msgf(config.TKeyErrPhoneNotFound, data)
		}
		return c.Msgf(config.TKeyErrNotFound, data)
	default:
		slog.Error(config.ErrHandlerUnexpected,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyError, err)
		return c.Msg(config.TKeyErrUnexpected)
	}
}

func translateImport(c *Catalog, e *importError) string {
	if errors.Is(e.Err, fs.ErrNotExist) || errors.Is(e.Err, fs.ErrPermission) {
		return c.Msgf(config.TKeyErrImportOpen, map[string]any{"Path": e.Path})
	}
	slog.Error(config.ErrImportFailed,
		config.LogKeyComponent, config.CompBot,
		config.LogKeyFile, e.Path,
		config.LogKeyCount, e.Count,
		config.LogKeyError, e.Err)
	return c.Msgf(config.TKeyImportPartial, map[string]any{"Count": e.Count, "Path": e.Path})
}
