// Package store persists calendar conversions in SQLite so repeated birth
// dates skip the remote converter.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // SQLite driver.

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

// Store is a SQLite-backed calendar.ResolutionStore.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrStoreMigrate, err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversions (
		id          TEXT PRIMARY KEY,
		moment_key  TEXT NOT NULL UNIQUE,
		solar_date  TEXT NOT NULL,
		lunar_date  TEXT NOT NULL,
		year        TEXT NOT NULL,
		month       TEXT NOT NULL,
		day         TEXT NOT NULL,
		hour        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_conversions_created ON conversions(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Lookup returns the resolution stored under key.
func (s *Store) Lookup(ctx context.Context, key string) (engine.Resolution, bool, error) {
	var res engine.Resolution
	err := s.db.QueryRowContext(ctx,
		`SELECT solar_date, lunar_date, year, month, day, hour FROM conversions WHERE moment_key = ?`,
		key,
	).Scan(&res.SolarDate, &res.LunarDate, &res.Year, &res.Month, &res.Day, &res.Hour)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.Resolution{}, false, nil
	}
	if err != nil {
		return engine.Resolution{}, false, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	return res, true, nil
}

// Save upserts the resolution under key.
func (s *Store) Save(ctx context.Context, key string, res engine.Resolution) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, moment_key, solar_date, lunar_date, year, month, day, hour, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(moment_key) DO UPDATE SET
			solar_date = excluded.solar_date,
			lunar_date = excluded.lunar_date,
			year = excluded.year,
			month = excluded.month,
			day = excluded.day,
			hour = excluded.hour`,
		ulid.Make().String(), key,
		res.SolarDate, res.LunarDate, res.Year, res.Month, res.Day, res.Hour,
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	return nil
}

// Count reports the number of cached conversions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	return n, nil
}

// Purge deletes every cached conversion and returns how many were removed.
func (s *Store) Purge(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM conversions`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	return int(n), nil
}
