package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nileshk/legal-analyzer/internal/core/domain"
)

type ingestRepoFake struct {
	created *domain.Document
	err     error
}

func (f *ingestRepoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.err != nil {
		return f.err
	}
	f.created = doc
	return nil
}

func (f *ingestRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	return nil, domain.ErrDocumentNotFound
}

func (f *ingestRepoFake) UpdateStatus(context.Context, string, domain.DocumentStatus, string) error {
	return nil
}

func (f *ingestRepoFake) SaveAnalysis(context.Context, string, domain.DocumentAnalysis) error {
	return nil
}

func (f *ingestRepoFake) GetAnalysis(context.Context, string) (*domain.DocumentAnalysis, error) {
	return nil, domain.ErrAnalysisNotFound
}

type storageFake struct {
	saved map[string][]byte
	err   error
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[key] = raw
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := f.saved[key]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishAnalysisRequested(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, documentID)
	return nil
}

func (f *queueFake) SubscribeAnalysisRequested(context.Context, func(context.Context, string) error) error {
	return nil
}

func TestUploadStoresCreatesAndPublishes(t *testing.T) {
	repo := &ingestRepoFake{}
	storage := &storageFake{}
	queue := &queueFake{}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	doc, err := uc.Upload(context.Background(), "writ petition.pdf", "application/pdf", strings.NewReader("%PDF-"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.ID == "" {
		t.Fatal("empty document id")
	}
	if doc.Status != domain.StatusUploaded {
		t.Fatalf("got status %q, want uploaded", doc.Status)
	}
	if len(storage.saved) != 1 {
		t.Fatalf("expected one stored object, got %d", len(storage.saved))
	}
	if repo.created == nil || repo.created.ID != doc.ID {
		t.Fatalf("document metadata not created: %+v", repo.created)
	}
	if len(queue.published) != 1 || queue.published[0] != doc.ID {
		t.Fatalf("unexpected publish calls: %v", queue.published)
	}
}

func TestUploadSanitizesStorageKey(t *testing.T) {
	storage := &storageFake{}
	uc := NewIngestDocumentUseCase(&ingestRepoFake{}, storage, &queueFake{})

	doc, err := uc.Upload(context.Background(), "../../etc/pass wd?.pdf", "application/pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if strings.Contains(doc.StoragePath, "/") || strings.Contains(doc.StoragePath, "?") {
		t.Fatalf("storage key not sanitized: %q", doc.StoragePath)
	}
}

func TestUploadFailsWhenStorageFails(t *testing.T) {
	repo := &ingestRepoFake{}
	uc := NewIngestDocumentUseCase(repo, &storageFake{err: errors.New("disk full")}, &queueFake{})

	if _, err := uc.Upload(context.Background(), "a.pdf", "application/pdf", strings.NewReader("x")); err == nil {
		t.Fatal("expected error")
	}
	if repo.created != nil {
		t.Fatal("metadata created despite storage failure")
	}
}

func TestUploadFailsWhenPublishFails(t *testing.T) {
	uc := NewIngestDocumentUseCase(&ingestRepoFake{}, &storageFake{}, &queueFake{err: errors.New("nats down")})

	if _, err := uc.Upload(context.Background(), "a.pdf", "application/pdf", strings.NewReader("x")); err == nil {
		t.Fatal("expected error")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain.pdf", "plain.pdf"},
		{"with space.pdf", "with_space.pdf"},
		{"../traversal.pdf", "traversal.pdf"},
		{"weird!@#.pdf", "weird___.pdf"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
