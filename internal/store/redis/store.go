package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/porsenia/sportreg/internal/ledger"
	"github.com/porsenia/sportreg/internal/observability"
	"github.com/porsenia/sportreg/internal/registration"
)

// Store persists each registration's progress as one JSON document under a
// namespaced key. Redis is the natural shape for this contract: one record,
// read and written whole.

const keyPrefix = "sportreg:progress:"

type Config struct {
	Addr     string
	Password string
	DB       int
	// TTL of an abandoned registration; 0 keeps documents forever.
	TTL time.Duration
}

type Store struct {
	redisdb *redis.Client
	ttl     time.Duration
	prom    *observability.Prom
}

func New(cfg Config, prom *observability.Prom) *Store {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Store{
		redisdb: redisdb,
		ttl:     cfg.TTL,
		prom:    prom,
	}
}

func key(id string) string {
	return keyPrefix + id
}

func (s *Store) Read(ctx context.Context, id string) (registration.Progress, error) {
	var p registration.Progress

	err := s.prom.ObserveStore("redis.read", func() error {
		raw, err := s.redisdb.Get(ctx, key(id)).Bytes()

		if err != nil {
			if errors.Is(err, redis.Nil) {
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
	return s.prom.ObserveStore("redis.write", func() error {
		raw, err := json.Marshal(p)

		if err != nil {
			return fmt.Errorf("marshal progress: %w", err)
		}

		return s.redisdb.Set(ctx, key(id), raw, s.ttl).Err()
	})
}

func (s *Store) Clear(ctx context.Context, id string) error {
	return s.prom.ObserveStore("redis.clear", func() error {
		return s.redisdb.Del(ctx, key(id)).Err()
	})
}

// Ping checks redis connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.redisdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.redisdb.Close()
}
