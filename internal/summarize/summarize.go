package summarize

import (
	"context"
	"strings"

	"proposal-backend/internal/llm"
	"proposal-backend/internal/shared/telemetry"
)

// All summarizes each chunk through the client, sequentially and in input
// order. A failed chunk falls back to its original text instead of aborting
// the document; the result always has exactly len(chunks) entries.
func All(ctx context.Context, client llm.Client, chunks []string) []string {
	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := summarizeOne(ctx, client, chunk)
		if err != nil {
			telemetry.Error("summarize.chunk_failed", map[string]any{
				"chunk_index": i,
				"chunk_words": len(strings.Fields(chunk)),
				"error":       err.Error(),
			})
			summary = chunk
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// Flatten joins chunk summaries into one document summary.
func Flatten(summaries []string) string {
	return strings.Join(summaries, " ")
}

func summarizeOne(ctx context.Context, client llm.Client, chunk string) (string, error) {
	raw, err := client.Complete(ctx, llm.BuildChunkSummaryPrompt(chunk))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}
