package documents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"proposal-backend/internal/extract"
	"proposal-backend/internal/llm"
	"proposal-backend/internal/proposals"
	"proposal-backend/internal/shared/storage/object"
	"proposal-backend/internal/shared/telemetry"
	"proposal-backend/internal/summarize"
)

// Counters records document-related usage, best effort.
type Counters interface {
	IncrementDocuments(ctx context.Context, userID string) error
}

// Service contains business logic for documents.
type Service struct {
	Store     object.ObjectStore
	Repo      DocumentsRepo
	Counters  Counters
	LLM       llm.Client
	Proposals *proposals.Service

	// HTTPClient fetches remote documents for search; nil means http.DefaultClient.
	HTTPClient *http.Client
	// ChunkWordLimit sizes summarization windows; zero means the default.
	ChunkWordLimit int
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, userId, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}

	saved, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:           uuid.NewString(),
		UserID:       userId,
		URL:          saved.URL,
		FileName:     fileName,
		MimeType:     saved.MimeType,
		SizeBytes:    saved.SizeBytes,
		StorageKey:   saved.StorageKey,
		ResourceType: object.ClassifyResourceType(saved.MimeType),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	if s.Counters != nil {
		if err := s.Counters.IncrementDocuments(ctx, userId); err != nil {
			telemetry.Error("dashboard.increment_documents_failed", map[string]any{
				"user_id": userId,
				"error":   err.Error(),
			})
		}
	}

	return doc, nil
}

// List returns all documents owned by the user, newest first.
func (s *Service) List(ctx context.Context, userId string) ([]Document, error) {
	if userId == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userId)
}

// Delete removes the stored object first, then the record. A storage
// failure aborts the operation and leaves the record intact so the
// stored object is never orphaned without a reference.
func (s *Service) Delete(ctx context.Context, userId, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, userId, documentID)
	if err != nil {
		return err
	}

	if err := s.Store.Delete(ctx, doc.StorageKey, doc.ResourceType); err != nil {
		return fmt.Errorf("delete stored object key=%s: %w", doc.StorageKey, err)
	}

	return s.Repo.Delete(ctx, userId, documentID)
}

// Search fetches a remote PDF, summarizes it chunk by chunk and runs the
// flattened summary through the proposal resolution path.
func (s *Service) Search(ctx context.Context, userId, documentURL, location string, budget float64, existingID string) (map[string]any, error) {
	if strings.TrimSpace(documentURL) == "" {
		return nil, ErrInvalidInput
	}

	data, contentType, err := extract.Fetch(ctx, s.HTTPClient, documentURL)
	if err != nil {
		return nil, err
	}

	text, err := extract.TextFromBytes(ctx, data, contentType, documentURL)
	if err != nil {
		return nil, fmt.Errorf("extract document text: %w", err)
	}

	wordLimit := s.ChunkWordLimit
	if wordLimit <= 0 {
		wordLimit = summarize.DefaultWordLimit
	}
	chunks := summarize.Chunk(text, wordLimit)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document contains no extractable text")
	}

	summaries := summarize.All(ctx, s.LLM, chunks)
	flattened := summarize.Flatten(summaries)

	return s.Proposals.Resolve(ctx, userId, flattened, location, budget, existingID)
}
