// Package annotation keeps user notes and tags per trip fingerprint.
package annotation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// KV is the key-value collaborator backing the store
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	All(ctx context.Context) (map[string][]byte, error)
}

// Store caches annotations in memory and writes every change through to KV.
// Call Load once on start before serving reads.
type Store struct {
	kv    KV
	mu    sync.RWMutex
	cache map[string]models.TripAnnotation
}

// NewStore creates a store over kv
func NewStore(kv KV) *Store {
	return &Store{
		kv:    kv,
		cache: make(map[string]models.TripAnnotation),
	}
}

// Load replaces the in-memory state with every entry held by the KV.
// Entries that fail to decode are skipped and logged.
func (s *Store) Load(ctx context.Context) error {
	entries, err := s.kv.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load annotations: %w", err)
	}

	cache := make(map[string]models.TripAnnotation, len(entries))
	for key, raw := range entries {
		a, err := Decode(raw)
		if err != nil {
			zap.S().Warnw("skipping undecodable annotation", "fingerprint", key, "error", err)
			continue
		}
		cache[key] = a
	}

	s.mu.Lock()
	s.cache = cache
	s.mu.Unlock()

	zap.S().Infow("annotations loaded", "count", len(cache))
	return nil
}

// Get returns the annotation for fingerprint, or the zero annotation
func (s *Store) Get(fingerprint string) models.TripAnnotation {
	s.mu.RLock()
	a, ok := s.cache[fingerprint]
	s.mu.RUnlock()
	if !ok {
		return models.TripAnnotation{Tags: []string{}}
	}
	return models.TripAnnotation{
		Notes: a.Notes,
		Tags:  append([]string{}, a.Tags...),
	}
}

// Lookup adapts Get to the filter engine's lookup signature
func (s *Store) Lookup(fingerprint string) models.TripAnnotation {
	return s.Get(fingerprint)
}

// Set stores an annotation, last writer wins.
// Tags are trimmed and de-duplicated keeping first-seen order.
func (s *Store) Set(ctx context.Context, fingerprint string, a models.TripAnnotation) (models.TripAnnotation, error) {
	if strings.TrimSpace(fingerprint) == "" {
		return models.TripAnnotation{}, fmt.Errorf("empty fingerprint")
	}
	a = Clean(a)

	raw, err := Encode(a)
	if err != nil {
		return models.TripAnnotation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(ctx, fingerprint, raw); err != nil {
		return models.TripAnnotation{}, fmt.Errorf("failed to save annotation: %w", err)
	}
	s.cache[fingerprint] = a
	return a, nil
}

// AllTags returns the sorted union of tags across stored annotations
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	tags := []string{}
	for _, a := range s.cache {
		for _, tag := range a.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Clean trims tags and drops duplicate or empty ones
func Clean(a models.TripAnnotation) models.TripAnnotation {
	out := models.TripAnnotation{
		Notes: a.Notes,
		Tags:  make([]string, 0, len(a.Tags)),
	}
	seen := make(map[string]bool, len(a.Tags))
	for _, tag := range a.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out.Tags = append(out.Tags, tag)
	}
	return out
}
