package leadstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type rowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresBackend keeps values in the lead_kv table (see migrations).
type PostgresBackend struct {
	pool rowQuerier
}

// NewPostgresBackend initializes a backend on pgxpool.
func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	if pool == nil {
		panic("leadstore: pgx pool required")
	}
	return &PostgresBackend{pool: pool}
}

func newPostgresBackendWithExec(exec rowQuerier) *PostgresBackend {
	if exec == nil {
		panic("leadstore: exec required")
	}
	return &PostgresBackend{pool: exec}
}

func (b *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM lead_kv WHERE key = $1`
	var data []byte
	if err := b.pool.QueryRow(ctx, query, key).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("leadstore: select failed: %w", err)
	}
	return data, nil
}

func (b *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO lead_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := b.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("leadstore: upsert failed: %w", err)
	}
	return nil
}
