// Package storage persists a whole address book as a single snapshot file.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
	"github.com/tartampluch/go-assistant-bot/internal/config"
)

// ErrUnsupportedFormat is returned when a snapshot was written by a newer format version.
var ErrUnsupportedFormat = errors.New("unsupported snapshot format")

// Store loads and saves complete address book snapshots.
type Store interface {
	// Load returns an empty book when the snapshot does not exist yet.
	Load(ctx context.Context) (*addressbook.AddressBook, error)

	// Save replaces the snapshot with the full content of book.
	Save(ctx context.Context, book *addressbook.AddressBook) error
}

// Open returns the Store implementation for driver.
func Open(driver, path string) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%s: %s", config.ErrStoreOpen, config.ErrConfigDataFile)
	}
	switch driver {
	case config.StorageVCard:
		return NewVCardStore(path), nil
	case config.StorageSQLite:
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("%s: %s: %q", config.ErrStoreOpen, config.ErrConfigStorage, driver)
	}
}

// writeFileAtomic writes data to a temp file next to path, syncs it and renames it
// over path, so readers only ever see a complete snapshot.
func writeFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+config.ExtTemp+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(config.FilePermUserRW); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return f.Sync()
}
