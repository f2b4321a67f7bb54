// Package store provides combat event persistence.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"perf-service/internal/combat/models"
)

// InMemoryStore keeps combat events in a slice. Safe for concurrent use.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []models.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

func (s *InMemoryStore) FindByAthleteID(_ context.Context, athleteID uuid.UUID) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Event
	for _, event := range s.events {
		if event.AthleteID == athleteID {
			out = append(out, event)
		}
	}
	return out, nil
}
