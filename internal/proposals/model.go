package proposals

import "time"

// Proposal is a persisted generated project proposal. The generated content
// keeps whatever shape the model produced: category keys in
// technology_stack and week keys in the timeline are caller-defined, so the
// payload is preserved verbatim as a loose document rather than a fixed
// struct.
type Proposal struct {
	ID           string
	UserID       string
	SearchString string
	Location     string
	Budget       float64
	Payload      map[string]any
	CreatedAt    time.Time
}

// HistoryEntry is the projection returned for search-history listings.
type HistoryEntry struct {
	ID           string `json:"_id"`
	SearchString string `json:"search_string"`
}
