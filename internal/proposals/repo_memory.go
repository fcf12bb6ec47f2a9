package proposals

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Proposal // id -> proposal
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Proposal)}
}

// Create stores a proposal.
func (r *MemoryRepo) Create(ctx context.Context, p Proposal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.ID] = p
	return nil
}

// GetByID returns a proposal by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Proposal, error) {
	if err := ctx.Err(); err != nil {
		return Proposal{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[id]
	if !ok {
		return Proposal{}, ErrNotFound
	}
	return p, nil
}

// ListByUser returns the search-history projection for a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var owned []Proposal
	for _, p := range r.data {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	entries := make([]HistoryEntry, 0, len(owned))
	for _, p := range owned {
		entries = append(entries, HistoryEntry{ID: p.ID, SearchString: p.SearchString})
	}
	return entries, nil
}

// Delete removes a proposal owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok || p.UserID != userID {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

// CountByUser reports how many proposals a user owns. Test helper.
func (r *MemoryRepo) CountByUser(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.data {
		if p.UserID == userID {
			n++
		}
	}
	return n
}

var _ Repo = (*MemoryRepo)(nil)
