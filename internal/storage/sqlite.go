package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
	"github.com/tartampluch/go-assistant-bot/internal/config"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contacts (
	position INTEGER NOT NULL,
	name     TEXT    NOT NULL PRIMARY KEY,
	birthday TEXT
);
CREATE TABLE IF NOT EXISTS phones (
	contact  TEXT    NOT NULL REFERENCES contacts(name) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	number   TEXT    NOT NULL,
	PRIMARY KEY (contact, position)
);`

// SQLiteStore keeps the book in a single SQLite database file.
// PRAGMA user_version holds the schema version.
type SQLiteStore struct {
	Path string
}

// NewSQLiteStore returns a store for the database file at path. The schema
// is created on the first Save.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{Path: path}
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", s.Path)
	return sql.Open("sqlite3", dsn)
}

// Load reads the snapshot. A missing database file yields an empty book
// and is not created.
func (s *SQLiteStore) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info(config.MsgBookEmpty,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyFile, s.Path)
			return addressbook.New(), nil
		}
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	}

	db, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	}
	defer func() { _ = db.Close() }()

	book, err := loadSQLite(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreLoad, err)
	}

	slog.Info(config.MsgBookLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyDriver, config.StorageSQLite,
		config.LogKeyFile, s.Path,
		config.LogKeyRecords, book.Len())
	return book, nil
}

func loadSQLite(ctx context.Context, db *sql.DB) (*addressbook.AddressBook, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}
	if version != config.SQLiteSchemaVersion {
		return nil, fmt.Errorf("%w: user_version=%d", ErrUnsupportedFormat, version)
	}

	book := addressbook.New()
	records := make(map[string]*addressbook.Record)

	rows, err := db.QueryContext(ctx, "SELECT name, birthday FROM contacts ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		var birthday sql.NullString
		if err := rows.Scan(&name, &birthday); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
		}
		rec, err := addressbook.NewRecord(name)
		if err != nil {
			return nil, err
		}
		if birthday.Valid && birthday.String != "" {
			date, err := time.Parse(config.DateFormatFullDash, birthday.String)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", addressbook.ErrInvalidDateFormat, birthday.String)
			}
			rec.SetBirthday(addressbook.BirthdayFromDate(date))
		}
		records[name] = rec
		book.Add(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}

	phoneRows, err := db.QueryContext(ctx, "SELECT contact, number FROM phones ORDER BY contact, position")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}
	defer func() { _ = phoneRows.Close() }()

	for phoneRows.Next() {
		var contact, number string
		if err := phoneRows.Scan(&contact, &number); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
		}
		rec, ok := records[contact]
		if !ok {
			return nil, fmt.Errorf("%s: phone for unknown contact %q", config.ErrSQLiteQuery, contact)
		}
		if err := rec.AddPhone(number); err != nil {
			return nil, err
		}
	}
	if err := phoneRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}
	return book, nil
}

// Save replaces every row in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, book *addressbook.AddressBook) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %s: %w", config.ErrStoreSave, config.ErrCreateDir, err)
	}

	db, err := s.open()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
	}
	defer func() { _ = db.Close() }()

	if err := saveSQLite(ctx, db, book); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreSave, err)
	}

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyDriver, config.StorageSQLite,
		config.LogKeyFile, s.Path,
		config.LogKeyRecords, book.Len())
	return nil
}

func saveSQLite(ctx context.Context, db *sql.DB, book *addressbook.AddressBook) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", config.SQLiteSchemaVersion)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM phones"); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM contacts"); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}

	insertContact, err := tx.PrepareContext(ctx, "INSERT INTO contacts (position, name, birthday) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}
	defer func() { _ = insertContact.Close() }()

	insertPhone, err := tx.PrepareContext(ctx, "INSERT INTO phones (contact, position, number) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
	}
	defer func() { _ = insertPhone.Close() }()

	for i, rec := range book.Records() {
		name := rec.Name().Value()

		var birthday sql.NullString
		if b, ok := rec.Birthday(); ok {
			birthday = sql.NullString{String: b.Date().Format(config.DateFormatFullDash), Valid: true}
		}
		if _, err := insertContact.ExecContext(ctx, i, name, birthday); err != nil {
			return fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
		}
		for j, p := range rec.Phones() {
			if _, err := insertPhone.ExecContext(ctx, name, j, p.Value()); err != nil {
				return fmt.Errorf("%s: %w", config.ErrSQLiteQuery, err)
			}
		}
	}
	return tx.Commit()
}
