// Package store provides attendance record persistence.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"perf-service/internal/attendance/models"
)

type presenceKey struct {
	athleteID uuid.UUID
	date      time.Time
}

// InMemoryStore keeps attendance records in memory. Useful for local
// development and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[presenceKey]*models.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[presenceKey]*models.Record)}
}

// SaveAll writes the batch, skipping athletes already marked present on the
// same day, and reports how many records were actually written.
func (s *InMemoryStore) SaveAll(_ context.Context, records []*models.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	written := 0
	for _, record := range records {
		key := presenceKey{athleteID: record.AthleteID, date: record.Date}
		if _, exists := s.records[key]; exists {
			continue
		}
		clone := *record
		s.records[key] = &clone
		written++
	}
	return written, nil
}

// FindByAthleteID returns the athlete's attendance history.
func (s *InMemoryStore) FindByAthleteID(_ context.Context, athleteID uuid.UUID) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Record
	for _, record := range s.records {
		if record.AthleteID == athleteID {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}
