package dashboard

import (
	"context"
	"fmt"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]Counters
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]Counters)}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Counters, error) {
	if err := ctx.Err(); err != nil {
		return Counters{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data[userID]
	if !ok {
		return Counters{UserID: userID}, nil
	}
	return c, nil
}

func (s *memoryStore) Increment(ctx context.Context, userID, field string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data[userID]
	if !ok {
		c = Counters{UserID: userID}
	}
	switch field {
	case FieldSearches:
		c.TotalSearches++
	case FieldDocuments:
		c.DocumentsUploaded++
	case FieldPlans:
		c.PlansCreated++
	default:
		return fmt.Errorf("unknown counter field %q", field)
	}
	s.data[userID] = c
	return nil
}
