// Package store provides test-result persistence: an in-memory store with a
// seedable test catalog for tests and local development, and a postgres
// store joining the catalog table.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"perf-service/internal/testresult/models"
)

// CatalogEntry is one standardized test's display data.
type CatalogEntry struct {
	Name string
	Unit string
}

// InMemoryStore keeps results and the test catalog in maps. Safe for
// concurrent use.
type InMemoryStore struct {
	mu      sync.RWMutex
	results []models.TestResult
	catalog map[uuid.UUID]CatalogEntry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{catalog: make(map[uuid.UUID]CatalogEntry)}
}

// SeedCatalog registers a standardized test so the enriched read can name it.
func (s *InMemoryStore) SeedCatalog(testID uuid.UUID, entry CatalogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog[testID] = entry
}

func (s *InMemoryStore) SaveAll(_ context.Context, results []*models.TestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range results {
		s.results = append(s.results, *r)
	}
	return nil
}

func (s *InMemoryStore) FindByAthleteID(_ context.Context, athleteID uuid.UUID) ([]models.Enriched, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Enriched
	for _, r := range s.results {
		if r.AthleteID != athleteID {
			continue
		}
		entry := s.catalog[r.TestID]
		out = append(out, models.Enriched{TestResult: r, TestName: entry.Name, TestUnit: entry.Unit})
	}
	return out, nil
}
