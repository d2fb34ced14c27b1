package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS cards (
    name        TEXT PRIMARY KEY,
    type_line   TEXT NOT NULL DEFAULT '',
    oracle_text TEXT NOT NULL DEFAULT '',
    mana_cost   TEXT NOT NULL DEFAULT '',
    power       TEXT NOT NULL DEFAULT '',
    toughness   TEXT NOT NULL DEFAULT '',
    loyalty     TEXT NOT NULL DEFAULT ''
)`

// PostgresStore persists cards in Postgres, for deployments where
// several engine instances share one catalog.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database, verifies the connection,
// and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate postgres schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, name string) (*RawCard, error) {
	var card RawCard
	err := s.pool.QueryRow(ctx,
		`SELECT name, type_line, oracle_text, mana_cost, power, toughness, loyalty
		 FROM cards WHERE name = $1`,
		strings.ToLower(name),
	).Scan(&card.Name, &card.TypeLine, &card.OracleText, &card.ManaCost,
		&card.Power, &card.Toughness, &card.Loyalty)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query card %q: %w", name, err)
	}
	return &card, nil
}

func (s *PostgresStore) Put(ctx context.Context, card *RawCard) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO cards (name, type_line, oracle_text, mana_cost, power, toughness, loyalty)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (name) DO UPDATE SET
		     type_line = EXCLUDED.type_line,
		     oracle_text = EXCLUDED.oracle_text,
		     mana_cost = EXCLUDED.mana_cost,
		     power = EXCLUDED.power,
		     toughness = EXCLUDED.toughness,
		     loyalty = EXCLUDED.loyalty`,
		strings.ToLower(card.Name), card.TypeLine, card.OracleText,
		card.ManaCost, card.Power, card.Toughness, card.Loyalty)
	if err != nil {
		return fmt.Errorf("upsert card %q: %w", card.Name, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
