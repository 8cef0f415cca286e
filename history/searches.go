package history

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"truthonly/storage"

	"github.com/rs/zerolog"
)

// recentSuggestionCount is how many recent searches are offered for an empty query.
const recentSuggestionCount = 5

// DefaultSuggestions are offered alongside any caller-supplied ones.
var DefaultSuggestions = []string{
	"COVID-19 vaccine effectiveness",
	"Climate change facts",
	"Election fraud claims",
	"Social media misinformation",
	"Health supplement claims",
	"Celebrity death hoax",
	"Political fact check",
	"Scientific study verification",
}

// Searches is the recent free-text searches list.
type Searches struct {
	kv          storage.KV
	key         string
	suggestions []string
	logger      zerolog.Logger
	mu          sync.Mutex
}

// NewSearches keeps recent searches under prefix + "recent-searches".
// extra suggestions are listed before DefaultSuggestions.
func NewSearches(kv storage.KV, prefix string, extra []string, logger zerolog.Logger) *Searches {
	all := make([]string, 0, len(extra)+len(DefaultSuggestions))
	all = append(all, extra...)
	all = append(all, DefaultSuggestions...)
	return &Searches{kv: kv, key: prefix + recentSearchesKey, suggestions: all, logger: logger}
}

// Key is the storage key the list is persisted under.
func (s *Searches) Key() string { return s.key }

// Record moves query to the front. Blank queries are ignored.
func (s *Searches) Record(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load(ctx)
	next := make([]string, 0, MaxEntries)
	next = append(next, query)
	for _, q := range current {
		if len(next) == MaxEntries {
			break
		}
		if q != query {
			next = append(next, q)
		}
	}
	return save(ctx, s.kv, s.key, next)
}

// LoadAll returns recent searches, most recent first.
func (s *Searches) LoadAll(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Searches) load(ctx context.Context) []string {
	out := []string{}
	if err := load(ctx, s.kv, s.key, &out); err != nil {
		s.logger.Debug().Err(err).Str("key", s.key).Msg("Treating recent searches as empty")
		return []string{}
	}
	return out
}

// Clear removes every recent search.
func (s *Searches) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear recent searches: %w", err)
	}
	return nil
}

// Suggest returns the first recent searches for an empty query, otherwise
// every known suggestion containing query, case-insensitively.
func (s *Searches) Suggest(ctx context.Context, query string) []string {
	if query == "" {
		recent := s.LoadAll(ctx)
		if len(recent) > recentSuggestionCount {
			recent = recent[:recentSuggestionCount]
		}
		return recent
	}

	needle := strings.ToLower(query)
	out := []string{}
	for _, sug := range s.suggestions {
		if strings.Contains(strings.ToLower(sug), needle) {
			out = append(out, sug)
		}
	}
	return out
}
