package dashboard

import "context"

// Service manages usage counters via an underlying store.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore()}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Get returns the counters for a user, zero-filled when absent.
func (s *Service) Get(ctx context.Context, userID string) (Counters, error) {
	return s.store.Get(ctx, userID)
}

// IncrementSearches bumps the search counter.
func (s *Service) IncrementSearches(ctx context.Context, userID string) error {
	return s.store.Increment(ctx, userID, FieldSearches)
}

// IncrementDocuments bumps the uploaded-documents counter.
func (s *Service) IncrementDocuments(ctx context.Context, userID string) error {
	return s.store.Increment(ctx, userID, FieldDocuments)
}

// IncrementPlans bumps the plans-created counter.
func (s *Service) IncrementPlans(ctx context.Context, userID string) error {
	return s.store.Increment(ctx, userID, FieldPlans)
}
