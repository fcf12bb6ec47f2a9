package dashboard

import "context"

// Counter field selectors for increments.
const (
	FieldSearches  = "total_searches"
	FieldDocuments = "documents_uploaded"
	FieldPlans     = "plans_created"
)

type store interface {
	Get(ctx context.Context, userID string) (Counters, error)
	Increment(ctx context.Context, userID, field string) error
}
