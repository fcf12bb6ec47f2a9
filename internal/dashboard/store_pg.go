package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed counter store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Get(ctx context.Context, userID string) (Counters, error) {
	const query = `
SELECT user_id, total_searches, documents_uploaded, plans_created
FROM dashboards
WHERE user_id = $1`

	var c Counters
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(
		&c.UserID,
		&c.TotalSearches,
		&c.DocumentsUploaded,
		&c.PlansCreated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Counters{UserID: userID}, nil
		}
		return Counters{}, err
	}
	return c, nil
}

func (s *pgStore) Increment(ctx context.Context, userID, field string) error {
	switch field {
	case FieldSearches, FieldDocuments, FieldPlans:
	default:
		return fmt.Errorf("unknown counter field %q", field)
	}

	// Lazily creates the row; the counter column name is validated above.
	query := fmt.Sprintf(`
INSERT INTO dashboards (user_id, %[1]s)
VALUES ($1, 1)
ON CONFLICT (user_id) DO UPDATE SET %[1]s = dashboards.%[1]s + 1`, field)

	_, err := s.DB.ExecContext(ctx, query, userID)
	return err
}
