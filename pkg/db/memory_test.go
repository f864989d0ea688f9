package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

func TestMemoryStore_InsertAssignsIDAndTimestamp(t *testing.T) {
	store := NewMemoryStore()
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(steppingClock(start))

	doc, err := store.InsertDocument(context.Background(), "c", map[string]any{
		"url":       "https://a.example",
		"id":        "caller-supplied",
		"createdAt": "ignored",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.NotEqual(t, "caller-supplied", doc.ID)
	assert.True(t, start.Equal(doc.CreatedAt))
	assert.Equal(t, map[string]any{"url": "https://a.example"}, doc.Fields)
}

func TestMemoryStore_QueryOrderFilterLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.SetClock(steppingClock(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))

	for _, rid := range []string{"r1", "r2", "r1", "r3", "r1"} {
		_, err := store.InsertDocument(ctx, "donations", map[string]any{"requestId": rid})
		require.NoError(t, err)
	}

	all, err := store.QueryDocuments(ctx, Query{Collection: "donations", OrderByDesc: FieldCreatedAt})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].CreatedAt.After(all[i].CreatedAt))
	}

	r1, err := store.QueryDocuments(ctx, Query{
		Collection: "donations",
		Where:      &Filter{Field: "requestId", Value: "r1"},
	})
	require.NoError(t, err)
	assert.Len(t, r1, 3)

	limited, err := store.QueryDocuments(ctx, Query{Collection: "donations", OrderByDesc: FieldCreatedAt, Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, all[0].ID, limited[0].ID)

	byID, err := store.QueryDocuments(ctx, Query{
		Collection: "donations",
		Where:      &Filter{Field: FieldID, Value: all[2].ID},
	})
	require.NoError(t, err)
	require.Len(t, byID, 1)
}

func TestMemoryStore_TrimSpaceFilter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_, err := store.InsertDocument(ctx, "links", map[string]any{"url": "  https://a.example\n"})
	require.NoError(t, err)
	_, err = store.InsertDocument(ctx, "links", map[string]any{"url": 42})
	require.NoError(t, err)

	exact, err := store.QueryDocuments(ctx, Query{Collection: "links", Where: &Filter{Field: "url", Value: "https://a.example"}})
	require.NoError(t, err)
	assert.Empty(t, exact)

	trimmed, err := store.QueryDocuments(ctx, Query{Collection: "links", Where: &Filter{Field: "url", Value: " https://a.example ", TrimSpace: true}})
	require.NoError(t, err)
	assert.Len(t, trimmed, 1)

	nonString, err := store.QueryDocuments(ctx, Query{Collection: "links", Where: &Filter{Field: "url", Value: 42, TrimSpace: true}})
	require.NoError(t, err)
	assert.Empty(t, nonString)
}

func TestMemoryStore_UnorderableField(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.QueryDocuments(context.Background(), Query{Collection: "c", OrderByDesc: "title"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnorderable))
}

func TestMemoryStore_ReturnedDocumentsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.InsertDocument(ctx, "c", map[string]any{"url": "https://a.example"})
	require.NoError(t, err)

	docs, err := store.QueryDocuments(ctx, Query{Collection: "c"})
	require.NoError(t, err)
	docs[0].Fields["url"] = "changed"

	again, err := store.QueryDocuments(ctx, Query{Collection: "c"})
	require.NoError(t, err)
	assert.Equal(t, "https://a.example", again[0].Fields["url"])
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	_, err := store.InsertDocument(ctx, "c", map[string]any{})
	assert.Error(t, err)
	_, err = store.QueryDocuments(ctx, Query{Collection: "c"})
	assert.Error(t, err)
}
