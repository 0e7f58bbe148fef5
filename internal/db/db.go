package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS game_results (
		id TEXT PRIMARY KEY,
		game_id TEXT NOT NULL,
		winner TEXT NOT NULL,
		moves INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_game_results_finished_at ON game_results (finished_at);`,
}

// Open connects to the SQLite database at dsn. ":memory:" (or an empty dsn)
// gives a private in-memory database that lives as long as the pool.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	pool, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Every new connection to :memory: would see its own empty database.
	if strings.Contains(dsn, ":memory:") {
		pool.SetMaxOpenConns(1)
	}

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	slog.Info("History database ready", "dsn", dsn)
	return pool, nil
}

// Migrate creates the history schema if it does not exist yet.
func Migrate(ctx context.Context, pool *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := pool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate history schema: %w", err)
		}
	}
	return nil
}
