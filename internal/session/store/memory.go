// Package store provides the session persistence implementations: an
// in-memory store for tests and local development, and a postgres store for
// production.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"perf-service/internal/session/models"
	"perf-service/pkg/platform/sentinel"
)

// InMemoryStore keeps sessions in a map. Safe for concurrent use.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]models.Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[uuid.UUID]models.Session)}
}

func (s *InMemoryStore) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session %s: %w", session.ID, sentinel.ErrConflict)
	}
	stored := *session
	stored.Metrics = append([]models.Metric{}, session.Metrics...)
	s.sessions[session.ID] = stored
	return nil
}

func (s *InMemoryStore) FindByAthleteID(_ context.Context, athleteID uuid.UUID) ([]models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Session
	for _, session := range s.sessions {
		if session.AthleteID == athleteID {
			copied := session
			copied.Metrics = append([]models.Metric{}, session.Metrics...)
			out = append(out, copied)
		}
	}
	return out, nil
}
