package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/porsenia/sportreg/internal/ledger"
	"github.com/porsenia/sportreg/internal/observability"
	"github.com/porsenia/sportreg/internal/registration"
)

// Store keeps one row per registration id with the whole progress document as
// JSONB. Writes are all-or-nothing upserts, matching the per-step atomicity
// the flow requires.
type Store struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func New(pool *pgxpool.Pool, prom *observability.Prom) *Store {
	return &Store{
		pool: pool,
		prom: prom,
	}
}

// Migrate creates the backing table. Safe to run on every startup.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS registration_progress (
			id         TEXT PRIMARY KEY,
			doc        JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)

	return err
}

func (s *Store) Read(ctx context.Context, id string) (registration.Progress, error) {
	var p registration.Progress

	err := s.prom.ObserveStore("postgres.read", func() error {
		var raw []byte

		err := s.pool.QueryRow(ctx,
			`SELECT doc FROM registration_progress WHERE id = $1`, id,
		).Scan(&raw)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ledger.ErrNotFound
			}

			return err
		}

		return json.Unmarshal(raw, &p)
	})

	if err != nil {
		return registration.Progress{}, err
	}

	return p, nil
}

func (s *Store) Write(ctx context.Context, id string, p registration.Progress) error {
	return s.prom.ObserveStore("postgres.write", func() error {
		raw, err := json.Marshal(p)

		if err != nil {
			return fmt.Errorf("marshal progress: %w", err)
		}

		_, err = s.pool.Exec(ctx, `
			INSERT INTO registration_progress (id, doc, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
		`, id, raw)

		return err
	})
}

func (s *Store) Clear(ctx context.Context, id string) error {
	return s.prom.ObserveStore("postgres.clear", func() error {
		_, err := s.pool.Exec(ctx,
			`DELETE FROM registration_progress WHERE id = $1`, id)

		return err
	})
}

// Ping checks database connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
