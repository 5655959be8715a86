package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresBlobs backend Postgres: tabela blobs(key, value) com upsert.
type PostgresBlobs struct {
	db *sql.DB
}

func NewPostgresBlobs(dsn string) (*PostgresBlobs, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS blobs (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("failed to create blobs table: %w", err)
	}
	return &PostgresBlobs{db: db}, nil
}

func (p *PostgresBlobs) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get blob %s: %w", key, err)
	}
	return value, nil
}

func (p *PostgresBlobs) Set(ctx context.Context, key string, value string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set blob %s: %w", key, err)
	}
	return nil
}

// Close fecha a conexão com o banco.
func (p *PostgresBlobs) Close() error {
	return p.db.Close()
}
