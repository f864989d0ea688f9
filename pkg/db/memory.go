package db

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process DocumentStore. It can only order by createdAt,
// any other ordering fails with ErrUnorderable.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string][]Document
	now         func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]Document),
		now:         time.Now,
	}
}

// SetClock overrides the timestamp source used for inserts
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Put stores a document as-is, keeping its id and timestamp.
// A zero CreatedAt models a document written without a timestamp.
func (s *MemoryStore) Put(collection string, doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], copyDocument(doc))
}

// InsertDocument stores fields under a new id with a server timestamp
func (s *MemoryStore) InsertDocument(ctx context.Context, collection string, fields map[string]any) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := Document{
		ID:        uuid.New().String(),
		CreatedAt: s.now().UTC(),
		Fields:    make(map[string]any, len(fields)),
	}
	for k, v := range fields {
		if k == FieldID || k == FieldCreatedAt {
			continue
		}
		doc.Fields[k] = v
	}

	s.collections[collection] = append(s.collections[collection], doc)
	return copyDocument(doc), nil
}

// QueryDocuments returns matching documents from one collection
func (s *MemoryStore) QueryDocuments(ctx context.Context, q Query) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.OrderByDesc != "" && q.OrderByDesc != FieldCreatedAt {
		return nil, fmt.Errorf("%w %q in collection %s", ErrUnorderable, q.OrderByDesc, q.Collection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result []Document
	for _, doc := range s.collections[q.Collection] {
		if q.Where != nil && !matches(doc, *q.Where) {
			continue
		}
		result = append(result, copyDocument(doc))
	}

	if q.OrderByDesc == FieldCreatedAt {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}

	return result, nil
}

func matches(doc Document, f Filter) bool {
	switch f.Field {
	case FieldID:
		return doc.ID == f.Value
	case FieldCreatedAt:
		t, ok := f.Value.(time.Time)
		return ok && doc.CreatedAt.Equal(t)
	default:
		v, ok := doc.Fields[f.Field]
		if !ok {
			return false
		}
		if f.TrimSpace {
			stored, isString := v.(string)
			want, wantString := f.Value.(string)
			return isString && wantString && strings.TrimSpace(stored) == strings.TrimSpace(want)
		}
		return reflect.DeepEqual(v, f.Value)
	}
}

func copyDocument(doc Document) Document {
	fields := make(map[string]any, len(doc.Fields))
	for k, v := range doc.Fields {
		fields[k] = v
	}
	doc.Fields = fields
	return doc
}
