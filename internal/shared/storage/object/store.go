package object

import (
	"context"
	"io"
	"strings"
)

// Resource-type classifications controlling how an object is stored and later deleted.
const (
	ResourceTypeRaw  = "raw"
	ResourceTypeAuto = "auto"
)

// SavedObject describes a stored binary object.
type SavedObject struct {
	StorageKey string
	URL        string
	SizeBytes  int64
	MimeType   string
}

// ObjectStore defines the contract for saving, retrieving and deleting binary objects.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (SavedObject, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string, resourceType string) error
}

// ClassifyResourceType maps a MIME type to the storage resource-type tag.
// PDF documents are stored as raw binary; everything else is auto-detected.
func ClassifyResourceType(mimeType string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == "application/pdf" {
		return ResourceTypeRaw
	}
	return ResourceTypeAuto
}
