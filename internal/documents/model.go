package documents

import "time"

// Document represents an uploaded document owned by a user.
type Document struct {
	ID           string
	UserID       string
	URL          string
	FileName     string
	MimeType     string
	SizeBytes    int64
	StorageKey   string
	ResourceType string
	CreatedAt    time.Time
}
