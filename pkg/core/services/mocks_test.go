package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hopehub/hopehub/pkg/db"
	"github.com/hopehub/hopehub/pkg/media"
)

// mockStore wraps a MemoryStore, counting calls and injecting failures
type mockStore struct {
	mu        sync.Mutex
	inner     *db.MemoryStore
	inserts   int
	queries   []db.Query
	insertErr error
	queryErr  func(q db.Query) error
}

func newMockStore() *mockStore {
	inner := db.NewMemoryStore()
	base := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	var tick int
	var clockMu sync.Mutex
	inner.SetClock(func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	return &mockStore{inner: inner}
}

func (m *mockStore) InsertDocument(ctx context.Context, collection string, fields map[string]any) (db.Document, error) {
	m.mu.Lock()
	m.inserts++
	err := m.insertErr
	m.mu.Unlock()

	if err != nil {
		return db.Document{}, err
	}
	return m.inner.InsertDocument(ctx, collection, fields)
}

func (m *mockStore) QueryDocuments(ctx context.Context, q db.Query) ([]db.Document, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	failure := m.queryErr
	m.mu.Unlock()

	if failure != nil {
		if err := failure(q); err != nil {
			return nil, err
		}
	}
	return m.inner.QueryDocuments(ctx, q)
}

func (m *mockStore) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inserts + len(m.queries)
}

// mockUploader records upload attempts in order
type mockUploader struct {
	attempts []string
	failures map[string]error
}

func (m *mockUploader) Upload(ctx context.Context, file media.File, onProgress media.ProgressFunc) (*media.Result, error) {
	m.attempts = append(m.attempts, file.Name)
	if err, ok := m.failures[file.Name]; ok {
		return nil, err
	}
	if onProgress != nil {
		onProgress(50)
	}
	return &media.Result{URL: "https://media.example.org/" + file.Name}, nil
}

func pngFile(name string) media.File {
	return media.File{
		Name:        name,
		ContentType: media.MIMEPNG,
		Size:        3,
		Body:        strings.NewReader("png"),
	}
}

func pdfFile(name string) media.File {
	return media.File{
		Name:        name,
		ContentType: media.MIMEPDF,
		Size:        4,
		Body:        strings.NewReader("%PDF"),
	}
}

func requestFields(name, district, city string, items ...string) map[string]any {
	return map[string]any{
		"requestType":   "student",
		"name":          name,
		"contactNumber": "0771234567",
		"district":      district,
		"cityTown":      city,
		"items":         items,
		"description":   "Lost books in the flood",
		"proofFiles":    []string{"https://media.example.org/proof.png"},
		"status":        "open",
	}
}
