package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cards (
    name        TEXT PRIMARY KEY,
    type_line   TEXT NOT NULL DEFAULT '',
    oracle_text TEXT NOT NULL DEFAULT '',
    mana_cost   TEXT NOT NULL DEFAULT '',
    power       TEXT NOT NULL DEFAULT '',
    toughness   TEXT NOT NULL DEFAULT '',
    loyalty     TEXT NOT NULL DEFAULT ''
);
`

// SQLiteStore persists cards in a local SQLite database. This is the
// default on-disk backend: a single file, no server to run.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path
// and ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (*RawCard, error) {
	var card RawCard
	err := s.db.QueryRowContext(ctx,
		`SELECT name, type_line, oracle_text, mana_cost, power, toughness, loyalty
		 FROM cards WHERE name = ?`,
		strings.ToLower(name),
	).Scan(&card.Name, &card.TypeLine, &card.OracleText, &card.ManaCost,
		&card.Power, &card.Toughness, &card.Loyalty)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query card %q: %w", name, err)
	}
	return &card, nil
}

func (s *SQLiteStore) Put(ctx context.Context, card *RawCard) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cards (name, type_line, oracle_text, mana_cost, power, toughness, loyalty)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		     type_line = excluded.type_line,
		     oracle_text = excluded.oracle_text,
		     mana_cost = excluded.mana_cost,
		     power = excluded.power,
		     toughness = excluded.toughness,
		     loyalty = excluded.loyalty`,
		strings.ToLower(card.Name), card.TypeLine, card.OracleText,
		card.ManaCost, card.Power, card.Toughness, card.Loyalty)
	if err != nil {
		return fmt.Errorf("upsert card %q: %w", card.Name, err)
	}
	return nil
}

// Count reports the number of stored cards.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
