package llm

import (
	_ "embed"
	"strconv"
	"strings"
)

var (
	//go:embed prompts/proposal_v1.txt
	proposalPromptV1 string
	//go:embed prompts/chunk_summary_v1.txt
	chunkSummaryPromptV1 string
)

// DefaultLocation substitutes for an empty location in proposal prompts.
const DefaultLocation = "Anywhere"

// BuildProposalPrompt interpolates the client request into the proposal
// template. It never fails and never touches the network; budget is
// interpolated as given.
func BuildProposalPrompt(query, location string, budget float64) string {
	if strings.TrimSpace(location) == "" {
		location = DefaultLocation
	}
	replacer := strings.NewReplacer(
		"{{QUERY}}", query,
		"{{LOCATION}}", location,
		"{{BUDGET}}", strconv.FormatFloat(budget, 'f', -1, 64),
	)
	return replacer.Replace(proposalPromptV1)
}

// BuildChunkSummaryPrompt interpolates a document chunk into the summary
// template.
func BuildChunkSummaryPrompt(chunk string) string {
	return strings.Replace(chunkSummaryPromptV1, "{{CHUNK}}", chunk, 1)
}
