package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Assistant Bot"
	AppID       = "com.github.tartampluch.go-assistant-bot"
	LogFileName = "bot.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the address book snapshot and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging (mirrored to stderr)"
	FlagDescConfig   = "Path to the TOML configuration file"
	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
	PromptInput      = "Enter a command ➡️ "
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultConfigFile   = "assistant-bot.toml"
	DefaultDataFile     = "data_files/addressbook.vcf"
	DefaultWindowDays   = 20
	MaxWindowDays       = 366
	DefaultLanguage     = "en"
	DefaultStrictPhones = false

	StorageVCard  = "vcard"
	StorageSQLite = "sqlite"

	PhoneLength = 10
)

// SupportedLanguages defines the list of available message catalogs (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

const (
	CmdHello          = "hello"
	CmdAdd            = "add"
	CmdChange         = "change"
	CmdPhone          = "phone"
	CmdShow           = "show"
	CmdAll            = "all"
	CmdAddBirthday    = "add-birthday"
	CmdShowBirthday   = "show-birthday"
	CmdBirthdays      = "birthdays"
	CmdDelete         = "delete"
	CmdRemovePhone    = "remove-phone"
	CmdExportCalendar = "export-calendar"
	CmdImport         = "import"
	CmdHelp           = "help"
	CmdClose          = "close"
	CmdExit           = "exit"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome          = "welcome"
	TKeyGreeting         = "greeting"
	TKeyGoodbye          = "goodbye"
	TKeyInterrupted      = "interrupted"
	TKeySaveFailed       = "save_failed"
	TKeyContactAdded     = "contact_added"   // Requires Name
	TKeyContactUpdated   = "contact_updated" // Requires Name
	TKeyPhoneChanged     = "phone_changed"   // Requires Name, Phone
	TKeyPhoneRemoved     = "phone_removed"   // Requires Name, Phone
	TKeyContactDeleted   = "contact_deleted" // Requires Name
	TKeyBirthdaySet      = "birthday_set"    // Requires Name, Birthday
	TKeyNoBirthday       = "no_birthday"     // Requires Name
	TKeyNoPhones         = "no_phones"       // Requires Name
	TKeyNoContacts       = "no_contacts"
	TKeyUpcomingHeader   = "upcoming_header" // Requires Days
	TKeyUpcomingLine     = "upcoming_line"   // Requires Index, Name, Birthday, Date
	TKeyNoUpcoming       = "no_upcoming"
	TKeyCalendarExported = "calendar_export"    // Requires Count, Path
	TKeyImported         = "imported"           // Requires Count, Path
	TKeyImportPartial    = "import_partial"     // Requires Count, Path
	TKeyErrImportOpen    = "err_import_open"    // Requires Path
	TKeyHelp             = "help"
	TKeyInvalidCommand   = "invalid_command"
	TKeyErrArguments     = "err_arguments"
	TKeyErrNotFound      = "err_not_found"    // Requires Name
	TKeyErrPhoneNotFound = "err_phone_absent" // Requires Name, Phone
	TKeyErrDigitsOnly    = "err_phone_digits"
	TKeyErrPhoneLength   = "err_phone_length"
	TKeyErrDate          = "err_date_format"
	TKeyErrName          = "err_name"
	TKeyErrDuplicate     = "err_duplicate_phone" // Requires Name, Phone
	TKeyErrUnexpected    = "err_unexpected"
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the user-facing DD.MM.YYYY layout.
	DateFormatBirthday = "02.01.2006"

	// Date layouts used for vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	DefaultLeapYear = 2000 // Year used for vCard dates without a year

	ExtTemp     = ".tmp"
	PhoneJoiner = ", "
)

// -----------------------------------------------------------------------------
// Standards: vCard Snapshot
// -----------------------------------------------------------------------------

const (
	VCardBegin          = "BEGIN:VCARD"
	VCardVersion        = "4.0"
	VCardProdid         = "-//Assistant Bot//AddressBook//EN"
	VCardPropFormat     = "X-ADDRESSBOOK-FORMAT"
	VCardFormatVersion  = 1
	VCardUIDPrefix      = "urn:uuid:"
	UIDNamespace        = "6f1d3c2e-5b7a-4e1f-9a0d-3c5b2e7f8a41"
	VCardTelType        = "cell"
	SQLiteSchemaVersion = 1
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Assistant Bot//Birthdays//EN"
	ICalCalName = "Congratulations"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "assistant-bot"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	FormatHashInput = "%s|%s"
	FormatUID       = "%s@%s"
	UIDHashLength   = 16
	FallbackSummary = "Birthday: %s"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLoadConfig        = "failed to load configuration"
	ErrConfigWindow      = "birthday_window_days must be between 1 and 366"
	ErrConfigStorage     = "unsupported storage driver"
	ErrConfigLanguage    = "unsupported language"
	ErrConfigDataFile    = "data_file must not be empty"
	ErrStoreOpen         = "failed to open address book store"
	ErrStoreLoad         = "failed to load address book"
	ErrStoreSave         = "failed to save address book"
	ErrVCardDecode       = "failed to decode vCard snapshot"
	ErrVCardEncode       = "failed to encode vCard snapshot"
	ErrSnapshotHeader    = "content before the first BEGIN:VCARD"
	ErrSQLiteQuery       = "sqlite query failed"
	ErrICalEncode        = "failed to encode iCalendar data"
	ErrDateParse         = "unable to parse date"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create directory"
	ErrAppFailed         = "application failed unexpectedly"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
	ErrReadInput         = "failed to read command input"
	ErrHandlerUnexpected = "command failed unexpectedly"
	ErrWriteFile         = "failed to write file"
	ErrImportFailed      = "vCard import stopped on a decoding error"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgConfigMissing = "Configuration file not found, using defaults"
	MsgConfigLoaded  = "Configuration loaded"
	MsgBookLoaded    = "Address book loaded"
	MsgBookEmpty     = "Address book file not found, starting empty"
	MsgBookSaved     = "Address book saved"
	MsgInterrupted   = "Interrupt received, saving state"
	MsgCommand       = "Command dispatched"
	MsgSkippedCard   = "Skipping vCard without usable name"
	MsgSkippedPhone  = "Skipping invalid phone in vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgImportDone    = "vCard import finished"
	MsgCalendarBuilt = "Calendar generation successful"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyDriver    = "driver"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyName      = "name"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyRecords   = "records"
	LogKeyWindow    = "window_days"
	LogKeySizeBytes = "size_bytes"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompBot      = "bot"
	CompStorage  = "storage"
	CompCalendar = "calendar"
	CompI18n     = "i18n"
	CompConfig   = "config"
)
