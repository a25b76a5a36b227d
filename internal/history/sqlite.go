package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS observations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp   TEXT NOT NULL,
	title       TEXT NOT NULL,
	price_text  TEXT NOT NULL,
	price_value TEXT,
	url         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_observations_url ON observations(url);
`

// SQLiteStore mirrors observations into a SQLite table with the same five
// fields as the CSV record. Values are stored as text to keep decimals exact.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens the database at path and creates the table if needed.
func NewSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: exec %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, sqliteMigration); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, o Observation) error {
	var value sql.NullString
	if o.PriceValue.Valid {
		value = sql.NullString{String: o.PriceValue.Decimal.String(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO observations (timestamp, title, price_text, price_value, url) VALUES (?, ?, ?, ?, ?)`,
		o.Timestamp.Format(TimestampLayout), o.Title, o.PriceText, value, o.URL,
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert observation: %w", err)
	}
	return nil
}

// Recent returns the last limit observations, oldest first
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Observation, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, title, price_text, price_value, url FROM (
			SELECT id, timestamp, title, price_text, price_value, url
			FROM observations ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query observations: %w", err)
	}
	defer rows.Close()

	var obs []Observation
	for rows.Next() {
		var (
			ts    string
			value sql.NullString
			o     Observation
		)
		if err := rows.Scan(&ts, &o.Title, &o.PriceText, &value, &o.URL); err != nil {
			return nil, fmt.Errorf("sqlite: scan observation: %w", err)
		}

		o.Timestamp, err = time.ParseInLocation(TimestampLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse timestamp %q: %w", ts, err)
		}
		if value.Valid {
			d, err := decimal.NewFromString(value.String)
			if err != nil {
				return nil, fmt.Errorf("sqlite: parse price %q: %w", value.String, err)
			}
			o.PriceValue = decimal.NewNullDecimal(d)
		}
		obs = append(obs, o)
	}
	return obs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
