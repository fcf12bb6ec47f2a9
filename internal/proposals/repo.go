package proposals

import "context"

// Repo defines persistence operations for proposals.
type Repo interface {
	Create(ctx context.Context, p Proposal) error
	GetByID(ctx context.Context, id string) (Proposal, error)
	ListByUser(ctx context.Context, userID string) ([]HistoryEntry, error)
	Delete(ctx context.Context, userID, id string) error
}
