// Package bot turns tokenized command lines into address book operations
// and renders every outcome, including failures, as a display string.
package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
	"github.com/tartampluch/go-assistant-bot/internal/config"
	"github.com/tartampluch/go-assistant-bot/internal/storage"
)

// Session is the mutable state shared by all handlers.
type Session struct {
	Book     *addressbook.AddressBook
	Store    storage.Store
	Clock    addressbook.Clock
	Settings config.Settings
	Catalog  *Catalog
}

// HandlerFunc implements one command. Errors are translated by the caller.
type HandlerFunc func(ctx context.Context, s *Session, args []string) (string, error)

// Result is what the display layer prints after a command.
type Result struct {
	Reply string
	Quit  bool
}

type command struct {
	run  HandlerFunc
	quit bool
}

// Bot dispatches commands against a Session.
type Bot struct {
	session  *Session
	commands map[string]command
}

// New wires the command table. A nil Clock defaults to the real clock
// and a nil Catalog to the configured language.
func New(s *Session) *Bot {
	if s.Clock == nil {
		s.Clock = addressbook.RealClock{}
	}
	if s.Catalog == nil {
		s.Catalog = NewCatalog(s.Settings.Language)
	}
	if s.Book == nil {
		s.Book = addressbook.New()
	}

	b := &Bot{session: s}
	b.commands = map[string]command{
		config.CmdHello:          {run: helloHandler},
		config.CmdHelp:           {run: helpHandler},
		config.CmdAdd:            {run: addContact},
		config.CmdChange:         {run: changeContact},
		config.CmdPhone:          {run: showPhones},
		config.CmdShow:           {run: showPhones},
		config.CmdAll:            {run: showAll},
		config.CmdAddBirthday:    {run: addBirthday},
		config.CmdShowBirthday:   {run: showBirthday},
		config.CmdBirthdays:      {run: upcomingBirthdays},
		config.CmdDelete:         {run: deleteContact},
		config.CmdRemovePhone:    {run: removePhone},
		config.CmdExportCalendar: {run: exportCalendar},
		config.CmdImport:         {run: importContacts},
		config.CmdClose:          {run: closeSession, quit: true},
		config.CmdExit:           {run: closeSession, quit: true},
	}
	return b
}

// Session exposes the state the bot operates on.
func (b *Bot) Session() *Session { return b.session }

// Execute parses and runs one input line.
func (b *Bot) Execute(ctx context.Context, line string) Result {
	cmd, args := ParseInput(line)
	return b.Dispatch(ctx, cmd, args)
}

// Dispatch runs an already tokenized command. Unknown commands change nothing.
// A quitting command that fails does not quit, so a failed save keeps the session alive.
func (b *Bot) Dispatch(ctx context.Context, cmd string, args []string) Result {
	c, ok := b.commands[cmd]
	if !ok {
		return Result{Reply: b.session.Catalog.Msg(config.TKeyInvalidCommand)}
	}

	slog.Debug(config.MsgCommand,
		config.LogKeyComponent, config.CompBot,
		config.LogKeyCommand, cmd,
		config.LogKeyArgs, len(args))

	reply, err := wrap(c.run)(ctx, b.session, args)
	return Result{Reply: reply, Quit: c.quit && err == nil}
}

// Save flushes the book through the configured store.
func (b *Bot) Save(ctx context.Context) error {
	return b.session.Store.Save(ctx, b.session.Book)
}

// wrap decorates a handler with the uniform error-to-message translation.
// The returned error is only informational; the reply is always displayable.
func wrap(h HandlerFunc) func(ctx context.Context, s *Session, args []string) (string, error) {
	return func(ctx context.Context, s *Session, args []string) (string, error) {
		reply, err := h(ctx, s, args)
		if err != nil {
			return translate(s.Catalog, err), err
		}
		return reply, nil
	}
}

// ParseInput lowercases the command word and splits the arguments on whitespace.
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
