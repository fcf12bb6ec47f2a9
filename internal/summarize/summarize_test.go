package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type scriptedClient struct {
	calls     int
	responses map[int]string
	failOn    map[int]bool
}

func (c *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	defer func() { c.calls++ }()
	if c.failOn[c.calls] {
		return "", errors.New("upstream unavailable")
	}
	if resp, ok := c.responses[c.calls]; ok {
		return resp, nil
	}
	return "summary", nil
}

func TestAllPreservesChunkCountOnFailure(t *testing.T) {
	chunks := []string{"first chunk", "second chunk", "third chunk"}
	client := &scriptedClient{failOn: map[int]bool{1: true}}

	summaries := All(context.Background(), client, chunks)

	if len(summaries) != len(chunks) {
		t.Fatalf("expected %d summaries, got %d", len(chunks), len(summaries))
	}
	if summaries[1] != "second chunk" {
		t.Fatalf("expected failed chunk to fall back to original text, got %q", summaries[1])
	}
	if summaries[0] != "summary" || summaries[2] != "summary" {
		t.Fatalf("expected surviving chunks to be summarized, got %v", summaries)
	}
}

func TestAllTrimsResponses(t *testing.T) {
	client := &scriptedClient{responses: map[int]string{0: "  trimmed  \n"}}
	summaries := All(context.Background(), client, []string{"chunk"})
	if summaries[0] != "trimmed" {
		t.Fatalf("expected trimmed summary, got %q", summaries[0])
	}
}

func TestAllSequentialOrder(t *testing.T) {
	client := &scriptedClient{responses: map[int]string{0: "a", 1: "b", 2: "c"}}
	summaries := All(context.Background(), client, []string{"x", "y", "z"})
	if got := Flatten(summaries); got != "a b c" {
		t.Fatalf("expected input-order summaries, got %q", got)
	}
}

func TestFlattenSegmentCount(t *testing.T) {
	summaries := []string{"one", "two", "three"}
	joined := Flatten(summaries)
	if parts := strings.Split(joined, " "); len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}
}
