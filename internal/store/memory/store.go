package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/porsenia/sportreg/internal/ledger"
	"github.com/porsenia/sportreg/internal/registration"
)

// Store keeps progress documents in a plain map. Used as the dev default and
// as the test substitute for the real backends.
//
// Documents are held JSON-encoded, like the real backends hold them. The
// round-trip is what guarantees isolation: step payloads hang off pointers, so
// handing out the struct directly would share mutable state between the store
// and every snapshot ever returned.
type Store struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func New() *Store {
	return &Store{
		items: make(map[string][]byte),
	}
}

func (s *Store) Read(ctx context.Context, id string) (registration.Progress, error) {
	s.mu.RLock()
	raw, ok := s.items[id]
	s.mu.RUnlock()

	if !ok {
		return registration.Progress{}, ledger.ErrNotFound
	}

	var p registration.Progress

	if err := json.Unmarshal(raw, &p); err != nil {
		return registration.Progress{}, err
	}

	return p, nil
}

func (s *Store) Write(ctx context.Context, id string, p registration.Progress) error {
	raw, err := json.Marshal(p)

	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items[id] = raw
	s.mu.Unlock()

	return nil
}

func (s *Store) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()

	return nil
}
