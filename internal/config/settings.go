package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings holds the runtime parameters of the bot.
// They replace process-wide constants so the core can be tested in isolation.
type Settings struct {
	DataFile     string // Location of the persisted address book
	Storage      string // StorageVCard or StorageSQLite
	WindowDays   int    // Upcoming-birthdays horizon in days
	Language     string // Message catalog (ISO 639-1)
	StrictPhones bool   // Reject exact duplicate phones within a record
}

// fileSettings is the assistant-bot.toml key mapping.
type fileSettings struct {
	DataFile     string `toml:"data_file"`
	Storage      string `toml:"storage"`
	WindowDays   int    `toml:"birthday_window_days"`
	Language     string `toml:"language"`
	StrictPhones bool   `toml:"strict_phones"`
}

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings() Settings {
	return Settings{
		DataFile:     DefaultDataFile,
		Storage:      StorageVCard,
		WindowDays:   DefaultWindowDays,
		Language:     DefaultLanguage,
		StrictPhones: DefaultStrictPhones,
	}
}

// LoadSettings decodes the TOML file at path and overlays it on the defaults.
// Only keys present in the file override a default. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	cfg := DefaultSettings()

	var raw fileSettings
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug(MsgConfigMissing,
				LogKeyComponent, CompConfig,
				LogKeyFile, path)
			return cfg, nil
		}
		return Settings{}, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	if meta.IsDefined("data_file") {
		cfg.DataFile = strings.TrimSpace(raw.DataFile)
	}
	if meta.IsDefined("storage") {
		cfg.Storage = strings.ToLower(strings.TrimSpace(raw.Storage))
	}
	if meta.IsDefined("birthday_window_days") {
		cfg.WindowDays = raw.WindowDays
	}
	if meta.IsDefined("language") {
		cfg.Language = strings.ToLower(strings.TrimSpace(raw.Language))
	}
	if meta.IsDefined("strict_phones") {
		cfg.StrictPhones = raw.StrictPhones
	}

	if err := cfg.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	slog.Info(MsgConfigLoaded,
		LogKeyComponent, CompConfig,
		LogKeyFile, path,
		LogKeyDriver, cfg.Storage,
		LogKeyWindow, cfg.WindowDays,
		LogKeyLang, cfg.Language,
	)
	return cfg, nil
}

// Validate reports the first setting that is out of range.
func (s Settings) Validate() error {
	if s.DataFile == "" {
		return errors.New(ErrConfigDataFile)
	}
	if s.Storage != StorageVCard && s.Storage != StorageSQLite {
		return fmt.Errorf("%s: %q", ErrConfigStorage, s.Storage)
	}
	if s.WindowDays < 1 || s.WindowDays > MaxWindowDays {
		return errors.New(ErrConfigWindow)
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: %q", ErrConfigLanguage, s.Language)
	}
	return nil
}
