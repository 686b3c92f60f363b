package slot

import (
	"context"
	"errors"
	"io"
	"log"

	"queencare-storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres stores slots in the client_slots table.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Get(ctx context.Context, owner, name string) ([]byte, error) {
	const q = `
SELECT payload
FROM client_slots
WHERE owner = $1 AND name = $2
`
	var payload string
	if err := r.pool.QueryRow(ctx, q, owner, name).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("slot repo: get owner=%s name=%s error=%v", owner, name, err)
		return nil, err
	}
	return []byte(payload), nil
}

func (r *postgresRepo) Put(ctx context.Context, owner, name string, data []byte) error {
	const q = `
INSERT INTO client_slots (owner, name, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (owner, name) DO UPDATE SET
    payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at
`
	if _, err := r.pool.Exec(ctx, q, owner, name, string(data)); err != nil {
		r.logger.Printf("slot repo: put owner=%s name=%s error=%v", owner, name, err)
		return err
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, owner, name string) error {
	const q = `
DELETE FROM client_slots
WHERE owner = $1 AND name = $2
`
	if _, err := r.pool.Exec(ctx, q, owner, name); err != nil {
		r.logger.Printf("slot repo: delete owner=%s name=%s error=%v", owner, name, err)
		return err
	}
	return nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
