package proposals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"proposal-backend/internal/llm"
	"proposal-backend/internal/shared/telemetry"
)

// Counters records usage events. Implemented by the dashboard service;
// increments are best-effort and never fail the request.
type Counters interface {
	IncrementSearches(ctx context.Context, userID string) error
	IncrementPlans(ctx context.Context, userID string) error
}

// Service contains the resolve-or-generate business logic for proposals.
type Service struct {
	Repo     Repo
	LLM      llm.Client
	Counters Counters
}

// Resolve returns a proposal for the request, either by reusing a persisted
// one or by generating a fresh one.
//
// When existingID names a stored proposal whose search string, location and
// budget all exactly equal the request, the stored payload is returned with
// internal identifiers stripped at every nesting depth and no model call is
// made. Any difference, including a missing record, forces full generation.
//
// A generated payload carrying a truthy "error" field is a model-declared
// infeasibility: it is returned to the caller as a normal outcome and
// nothing is persisted.
func (s *Service) Resolve(ctx context.Context, userID, searchString, location string, budget float64, existingID string) (map[string]any, error) {
	if userID == "" || strings.TrimSpace(searchString) == "" {
		return nil, ErrInvalidInput
	}

	s.countSearch(ctx, userID)

	if existingID != "" {
		stored, err := s.Repo.GetByID(ctx, existingID)
		if err == nil &&
			stored.UserID == userID &&
			stored.SearchString == searchString &&
			stored.Location == location &&
			stored.Budget == budget {
			stripped, ok := StripKey(stored.Payload, identifierField).(map[string]any)
			if !ok {
				stripped = map[string]any{}
			}
			return stripped, nil
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("load proposal %s: %w", existingID, err)
		}
	}

	prompt := llm.BuildProposalPrompt(searchString, location, budget)
	raw, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate proposal: %w", err)
	}

	parsed, err := parseModelJSON(raw)
	if err != nil {
		return nil, err
	}

	if isTruthy(parsed["error"]) {
		return parsed, nil
	}

	now := time.Now().UTC()
	record := Proposal{
		ID:           uuid.NewString(),
		UserID:       userID,
		SearchString: searchString,
		Location:     location,
		Budget:       budget,
		Payload:      mergePayload(parsed, userID, searchString, location, budget),
		CreatedAt:    now,
	}
	record.Payload[identifierField] = record.ID

	if err := s.Repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("persist proposal: %w", err)
	}

	s.countPlan(ctx, userID)

	return parsed, nil
}

// Get fetches one persisted proposal scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, id string) (Proposal, error) {
	if id == "" {
		return Proposal{}, ErrInvalidInput
	}
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Proposal{}, err
	}
	if p.UserID != userID {
		return Proposal{}, ErrNotFound
	}
	return p, nil
}

// History lists past search strings for a user, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Delete removes one persisted proposal scoped to its owner.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID, id)
}

// parseModelJSON strips an optional markdown code fence and parses the
// response as a JSON object. Parse failure is terminal for the request.
func parseModelJSON(raw string) (map[string]any, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableModel, err)
	}
	return parsed, nil
}

// mergePayload combines the request echo with the generated fields; parsed
// fields win on key collision.
func mergePayload(parsed map[string]any, userID, searchString, location string, budget float64) map[string]any {
	merged := map[string]any{
		"user_id":       userID,
		"search_string": searchString,
		"location":      location,
		"budget":        budget,
	}
	for k, v := range parsed {
		merged[k] = v
	}
	return merged
}

func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && !strings.EqualFold(t, "false")
	case float64:
		return t != 0
	default:
		return true
	}
}

func (s *Service) countSearch(ctx context.Context, userID string) {
	if s.Counters == nil {
		return
	}
	if err := s.Counters.IncrementSearches(ctx, userID); err != nil {
		telemetry.Error("dashboard.increment_searches_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

func (s *Service) countPlan(ctx context.Context, userID string) {
	if s.Counters == nil {
		return
	}
	if err := s.Counters.IncrementPlans(ctx, userID); err != nil {
		telemetry.Error("dashboard.increment_plans_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}
