package summarize

import "strings"

// DefaultWordLimit is the chunk size used when the caller passes a
// non-positive limit.
const DefaultWordLimit = 300

// Chunk splits text into fixed-size word windows. Whitespace runs collapse
// to single separators; the final chunk may be shorter than wordLimit.
// Joining the chunks by spaces reproduces the whitespace-normalized input.
func Chunk(text string, wordLimit int) []string {
	if wordLimit <= 0 {
		wordLimit = DefaultWordLimit
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+wordLimit-1)/wordLimit)
	for start := 0; start < len(words); start += wordLimit {
		end := start + wordLimit
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
