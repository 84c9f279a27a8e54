package bot_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-assistant-bot/internal/config"
)

// translationKeys lists every key referenced from config.go.
var translationKeys = []string{
	config.TKeyWelcome,
	config.TKeyGreeting,
	config.TKeyGoodbye,
	config.TKeyInterrupted,
	config.TKeySaveFailed,
	config.TKeyContactAdded,
	config.TKeyContactUpdated,
	config.TKeyPhoneChanged,
	config.TKeyPhoneRemoved,
	config.TKeyContactDeleted,
	config.TKeyBirthdaySet,
	config.TKeyNoBirthday,
	config.TKeyNoPhones,
	config.TKeyNoContacts,
	config.TKeyUpcomingHeader,
	config.TKeyUpcomingLine,
	config.TKeyNoUpcoming,
	config.TKeyCalendarExported,
	config.TKeyImported,
	config.TKeyHelp,
	config.TKeyInvalidCommand,
	config.TKeyErrArguments,
	config.TKeyErrNotFound,
	config.TKeyErrPhoneNotFound,
	config.TKeyErrDigitsOnly,
	config.TKeyErrPhoneLength,
	config.TKeyErrDate,
	config.TKeyErrName,
	config.TKeyErrDuplicate,
	config.TKeyErrUnexpected,
}

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in each shipped locale, and that locales carry no orphan keys.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := make(map[string]bool)
	for _, k := range translationKeys {
		definedKeys[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			path := filepath.Join("locales", "active."+lang+".json")
			content, err := os.ReadFile(path)
			require.NoError(t, err, "Must load %s", path)

			var jsonMap map[string]interface{}
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, path)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				assert.Truef(t, definedKeys[jsonKey], "Key '%s' in %s is not defined in config.go", jsonKey, path)
			}
		})
	}
}
