// Package history keeps the short recent-activity lists: recent fact checks and
// recent free-text searches. Both live as JSON arrays in a storage.KV under a
// namespaced key.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"truthonly/models"
	"truthonly/storage"

	"github.com/rs/zerolog"
)

const (
	// MaxEntries bounds every history list.
	MaxEntries = 10
	// DefaultPrefix namespaces the storage keys.
	DefaultPrefix = "truthonly-"

	recentChecksKey   = "recent-checks"
	recentSearchesKey = "recent-searches"
)

// Store is the recent fact-checks list.
type Store struct {
	kv     storage.KV
	key    string
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewStore keeps recent checks in kv under prefix + "recent-checks".
func NewStore(kv storage.KV, prefix string, logger zerolog.Logger) *Store {
	return &Store{kv: kv, key: prefix + recentChecksKey, logger: logger}
}

// Key is the storage key the list is persisted under.
func (s *Store) Key() string { return s.key }

// Record puts entry at the front, replacing any entry with the same id,
// and keeps at most MaxEntries.
func (s *Store) Record(ctx context.Context, entry models.RecentCheckEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load(ctx)
	next := make([]models.RecentCheckEntry, 0, MaxEntries)
	next = append(next, entry)
	for _, e := range current {
		if len(next) == MaxEntries {
			break
		}
		if e.ID != entry.ID {
			next = append(next, e)
		}
	}
	return save(ctx, s.kv, s.key, next)
}

// LoadAll returns the list, most recent first. Missing or unreadable data is an empty list.
func (s *Store) LoadAll(ctx context.Context) []models.RecentCheckEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) []models.RecentCheckEntry {
	entries := []models.RecentCheckEntry{}
	if err := load(ctx, s.kv, s.key, &entries); err != nil {
		s.logger.Debug().Err(err).Str("key", s.key).Msg("Treating recent checks as empty")
		return []models.RecentCheckEntry{}
	}
	return entries
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear recent checks: %w", err)
	}
	return nil
}

func load(ctx context.Context, kv storage.KV, key string, dst any) error {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func save(ctx context.Context, kv storage.KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}
