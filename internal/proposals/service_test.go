package proposals

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type fakeLLM struct {
	calls    int
	response string
	err      error
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const generatedJSON = `{
	"project_title": "Todo App",
	"objective": "Build a todo app",
	"modules": ["auth", "tasks"],
	"technology_stack": {"backend": ["Go"]},
	"timeline": {"week_1": ["setup"]},
	"estimated_pricing": {
		"one_time_cost": {"breakdown": [{"item": "dev", "cost": 900}], "total": 900},
		"monthly_maintenance_cost": {"breakdown": [{"item": "hosting", "cost": 5}], "total": 5}
	},
	"conclusion": "done"
}`

func newService(llmClient *fakeLLM) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return &Service{Repo: repo, LLM: llmClient}, repo
}

func TestResolvePersistsFreshGeneration(t *testing.T) {
	llmClient := &fakeLLM{response: generatedJSON}
	svc, repo := newService(llmClient)

	payload, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Anywhere", 1000, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if payload["project_title"] != "Todo App" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if repo.CountByUser("owner-1") != 1 {
		t.Fatalf("expected exactly one persisted record, got %d", repo.CountByUser("owner-1"))
	}
	if llmClient.calls != 1 {
		t.Fatalf("expected one model call, got %d", llmClient.calls)
	}
}

func TestResolveNoDeduplicationWithoutID(t *testing.T) {
	llmClient := &fakeLLM{response: generatedJSON}
	svc, repo := newService(llmClient)

	for i := 0; i < 2; i++ {
		if _, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Anywhere", 1000, ""); err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
	}
	if repo.CountByUser("owner-1") != 2 {
		t.Fatalf("expected two distinct records, got %d", repo.CountByUser("owner-1"))
	}
}

func TestResolveInfeasibilityIsNotPersisted(t *testing.T) {
	llmClient := &fakeLLM{response: `{"error": true, "message": "budget too small for scope"}`}
	svc, repo := newService(llmClient)

	payload, err := svc.Resolve(context.Background(), "owner-1", "simple todo list app", "Anywhere", 50, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if payload["error"] != true {
		t.Fatalf("expected error payload, got %v", payload)
	}
	if msg, _ := payload["message"].(string); msg == "" {
		t.Fatalf("expected non-empty message")
	}
	if repo.CountByUser("owner-1") != 0 {
		t.Fatalf("infeasibility must not persist, got %d records", repo.CountByUser("owner-1"))
	}
}

func TestResolveCacheHitSkipsModelAndStripsIdentifiers(t *testing.T) {
	llmClient := &fakeLLM{response: generatedJSON}
	svc, repo := newService(llmClient)

	if _, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Anywhere", 1000, ""); err != nil {
		t.Fatalf("initial resolve: %v", err)
	}
	entries, err := repo.ListByUser(context.Background(), "owner-1")
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one history entry, got %v (%v)", entries, err)
	}
	id := entries[0].ID

	llmClient.calls = 0
	payload, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Anywhere", 1000, id)
	if err != nil {
		t.Fatalf("cached resolve: %v", err)
	}
	if llmClient.calls != 0 {
		t.Fatalf("cache hit must not call the model, got %d calls", llmClient.calls)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), `"_id"`) {
		t.Fatalf("cached payload still carries identifiers: %s", raw)
	}
	if payload["project_title"] != "Todo App" {
		t.Fatalf("cached payload missing content: %v", payload)
	}
}

func TestResolveFieldMismatchForcesRegeneration(t *testing.T) {
	llmClient := &fakeLLM{response: generatedJSON}
	svc, repo := newService(llmClient)

	if _, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Anywhere", 1000, ""); err != nil {
		t.Fatalf("initial resolve: %v", err)
	}
	entries, _ := repo.ListByUser(context.Background(), "owner-1")
	id := entries[0].ID

	mismatches := []struct {
		name     string
		search   string
		location string
		budget   float64
	}{
		{"search differs by one char", "todo app!", "Anywhere", 1000},
		{"location differs", "todo app", "Berlin", 1000},
		{"budget differs", "todo app", "Anywhere", 1001},
	}

	for _, tc := range mismatches {
		t.Run(tc.name, func(t *testing.T) {
			before := llmClient.calls
			if _, err := svc.Resolve(context.Background(), "owner-1", tc.search, tc.location, tc.budget, id); err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if llmClient.calls != before+1 {
				t.Fatalf("expected regeneration, model calls went %d -> %d", before, llmClient.calls)
			}
		})
	}
}

func TestResolveUnknownIDFallsBackToGeneration(t *testing.T) {
	llmClient := &fakeLLM{response: generatedJSON}
	svc, _ := newService(llmClient)

	if _, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Anywhere", 1000, "missing-id"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if llmClient.calls != 1 {
		t.Fatalf("expected fallback generation, got %d calls", llmClient.calls)
	}
}

func TestResolveStripsCodeFences(t *testing.T) {
	llmClient := &fakeLLM{response: "```json\n" + generatedJSON + "\n```"}
	svc, _ := newService(llmClient)

	payload, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Anywhere", 1000, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if payload["project_title"] != "Todo App" {
		t.Fatalf("fenced payload not parsed: %v", payload)
	}
}

func TestResolveUnparseableOutputIsTerminal(t *testing.T) {
	llmClient := &fakeLLM{response: "the model rambled instead of emitting JSON"}
	svc, repo := newService(llmClient)

	_, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Anywhere", 1000, "")
	if !errors.Is(err, ErrUnparseableModel) {
		t.Fatalf("expected ErrUnparseableModel, got %v", err)
	}
	if repo.CountByUser("owner-1") != 0 {
		t.Fatalf("nothing may persist on parse failure")
	}
	if llmClient.calls != 1 {
		t.Fatalf("no retry allowed, got %d calls", llmClient.calls)
	}
}

func TestResolveGatewayFailureSurfaces(t *testing.T) {
	llmClient := &fakeLLM{err: errors.New("connection refused")}
	svc, repo := newService(llmClient)

	if _, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Anywhere", 1000, ""); err == nil {
		t.Fatalf("expected gateway failure to surface")
	}
	if repo.CountByUser("owner-1") != 0 {
		t.Fatalf("nothing may persist on gateway failure")
	}
	if llmClient.calls != 1 {
		t.Fatalf("no retry allowed, got %d calls", llmClient.calls)
	}
}

func TestResolveMergedRecordEchoesRequest(t *testing.T) {
	llmClient := &fakeLLM{response: generatedJSON}
	svc, repo := newService(llmClient)

	if _, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Berlin", 1000, ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	entries, _ := repo.ListByUser(context.Background(), "owner-1")
	stored, err := repo.GetByID(context.Background(), entries[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Payload["user_id"] != "owner-1" || stored.Payload["location"] != "Berlin" {
		t.Fatalf("request echo missing from payload: %v", stored.Payload)
	}
	if stored.Payload["project_title"] != "Todo App" {
		t.Fatalf("generated fields missing from payload: %v", stored.Payload)
	}
	if stored.Payload[identifierField] != stored.ID {
		t.Fatalf("payload identifier mismatch: %v vs %s", stored.Payload[identifierField], stored.ID)
	}
}

func TestGetIsOwnerScoped(t *testing.T) {
	llmClient := &fakeLLM{response: generatedJSON}
	svc, repo := newService(llmClient)

	if _, err := svc.Resolve(context.Background(), "owner-1", "todo app", "Anywhere", 1000, ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	entries, _ := repo.ListByUser(context.Background(), "owner-1")

	if _, err := svc.Get(context.Background(), "other-user", entries[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "owner-1", entries[0].ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
}
