package documents

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"proposal-backend/internal/shared/storage/object"
)

type fakeStore struct {
	mimeType  string
	deleteErr error

	savedKeys   []string
	deletedKeys []string
}

func (f *fakeStore) Save(ctx context.Context, userId, fileName string, r io.Reader) (object.SavedObject, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return object.SavedObject{}, err
	}
	key := userId + "/" + fileName
	f.savedKeys = append(f.savedKeys, key)
	return object.SavedObject{
		StorageKey: key,
		URL:        "https://store.example/" + key,
		SizeBytes:  int64(len(data)),
		MimeType:   f.mimeType,
	}, nil
}

func (f *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *fakeStore) Delete(ctx context.Context, storageKey, resourceType string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedKeys = append(f.deletedKeys, storageKey)
	return nil
}

type countingCounters struct {
	documents int
}

func (c *countingCounters) IncrementDocuments(ctx context.Context, userID string) error {
	c.documents++
	return nil
}

func TestUploadClassifiesPDFAsRaw(t *testing.T) {
	store := &fakeStore{mimeType: "application/pdf"}
	counters := &countingCounters{}
	svc := &Service{Store: store, Repo: NewMemoryRepo(), Counters: counters}

	doc, err := svc.Upload(context.Background(), "u1", "tiny.pdf", strings.NewReader("0123456789"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.ResourceType != object.ResourceTypeRaw {
		t.Fatalf("expected raw resource type for pdf, got %q", doc.ResourceType)
	}
	if doc.SizeBytes != 10 {
		t.Fatalf("expected 10 bytes, got %d", doc.SizeBytes)
	}
	if counters.documents != 1 {
		t.Fatalf("expected documents counter incremented once, got %d", counters.documents)
	}
}

func TestUploadClassifiesOtherMimeAsAuto(t *testing.T) {
	store := &fakeStore{mimeType: "image/png"}
	svc := &Service{Store: store, Repo: NewMemoryRepo()}

	doc, err := svc.Upload(context.Background(), "u1", "pic.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.ResourceType != object.ResourceTypeAuto {
		t.Fatalf("expected auto resource type, got %q", doc.ResourceType)
	}
}

func TestDeleteRemovesStorageBeforeRecord(t *testing.T) {
	store := &fakeStore{mimeType: "application/pdf"}
	repo := NewMemoryRepo()
	svc := &Service{Store: store, Repo: repo}

	doc, err := svc.Upload(context.Background(), "u1", "plan.pdf", strings.NewReader("%PDF-"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Delete(context.Background(), "u1", doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.deletedKeys) != 1 || store.deletedKeys[0] != doc.StorageKey {
		t.Fatalf("expected storage delete for %q, got %v", doc.StorageKey, store.deletedKeys)
	}
	if _, err := repo.GetByID(context.Background(), "u1", doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected record removed, got err=%v", err)
	}
}

func TestDeleteStorageFailureLeavesRecordIntact(t *testing.T) {
	store := &fakeStore{mimeType: "application/pdf"}
	repo := NewMemoryRepo()
	svc := &Service{Store: store, Repo: repo}

	doc, err := svc.Upload(context.Background(), "u1", "plan.pdf", strings.NewReader("%PDF-"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	store.deleteErr = errors.New("bucket unavailable")
	if err := svc.Delete(context.Background(), "u1", doc.ID); err == nil {
		t.Fatal("expected delete to fail when storage delete fails")
	}

	docs, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != doc.ID {
		t.Fatalf("expected record still listed after failed storage delete, got %v", docs)
	}
}

func TestDeleteUnknownDocument(t *testing.T) {
	svc := &Service{Store: &fakeStore{}, Repo: NewMemoryRepo()}
	if err := svc.Delete(context.Background(), "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchRejectsEmptyURL(t *testing.T) {
	svc := &Service{Store: &fakeStore{}, Repo: NewMemoryRepo()}
	if _, err := svc.Search(context.Background(), "u1", "  ", "Anywhere", 100, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSearchSurfacesFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	svc := &Service{Store: &fakeStore{}, Repo: NewMemoryRepo(), HTTPClient: srv.Client()}
	if _, err := svc.Search(context.Background(), "u1", srv.URL, "Anywhere", 100, ""); err == nil {
		t.Fatal("expected error for unfetchable document")
	}
}
