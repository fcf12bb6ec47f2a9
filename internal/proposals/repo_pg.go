package proposals

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. The generated payload is stored as
// JSONB so the model's caller-defined keys survive round-trips untouched.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new proposal.
func (r *PGRepo) Create(ctx context.Context, p Proposal) error {
	payload, err := json.Marshal(p.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	const query = `
INSERT INTO proposals (id, user_id, search_string, location, budget, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.DB.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.SearchString,
		p.Location,
		p.Budget,
		payload,
		p.CreatedAt,
	)
	return err
}

// GetByID fetches a proposal by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Proposal, error) {
	const query = `
SELECT id, user_id, search_string, location, budget, payload, created_at
FROM proposals
WHERE id = $1`

	var p Proposal
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.UserID,
		&p.SearchString,
		&p.Location,
		&p.Budget,
		&payload,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Proposal{}, ErrNotFound
		}
		return Proposal{}, err
	}
	if err := json.Unmarshal(payload, &p.Payload); err != nil {
		return Proposal{}, fmt.Errorf("unmarshal payload id=%s: %w", id, err)
	}
	return p, nil
}

// ListByUser returns the search-history projection for a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]HistoryEntry, error) {
	const query = `
SELECT id, search_string
FROM proposals
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.SearchString); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes a proposal owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM proposals WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
