package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/db"
)

func putDonation(store *mockStore, id, requestID string, createdAt time.Time) {
	store.inner.Put(db.DefaultCollections().Donations, db.Document{
		ID:        id,
		CreatedAt: createdAt,
		Fields: map[string]any{
			"requestId":     requestID,
			"donorName":     "Donor " + id,
			"donorContact":  "077",
			"donationItems": "books",
		},
	})
}

func TestListDonations_SortedNewestFirst(t *testing.T) {
	store := newMockStore()
	base := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	putDonation(store, "d-mid", "req-1", base.Add(2*time.Hour))
	putDonation(store, "d-none", "req-1", time.Time{})
	putDonation(store, "d-old", "req-1", base.Add(time.Hour))
	putDonation(store, "d-other", "req-2", base.Add(5*time.Hour))
	putDonation(store, "d-new", "req-1", base.Add(3*time.Hour))

	donations, err := ListDonations(context.Background(), store, zap.NewNop(), db.DefaultCollections(), "req-1")
	require.NoError(t, err)

	ids := make([]string, len(donations))
	for i, d := range donations {
		ids[i] = d.ID
	}
	assert.Equal(t, []string{"d-new", "d-mid", "d-old", "d-none"}, ids)

	// Queried by request id without ordering
	require.Len(t, store.queries, 1)
	assert.Empty(t, store.queries[0].OrderByDesc)
	assert.Equal(t, &db.Filter{Field: "requestId", Value: "req-1"}, store.queries[0].Where)
}

func TestListDonations_SkipsMalformed(t *testing.T) {
	store := newMockStore()
	putDonation(store, "d-1", "req-1", time.Now())
	store.inner.Put(db.DefaultCollections().Donations, db.Document{
		ID:     "d-bad",
		Fields: map[string]any{"requestId": "req-1"},
	})

	donations, err := ListDonations(context.Background(), store, zap.NewNop(), db.DefaultCollections(), "req-1")
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, "d-1", donations[0].ID)
}

func TestListDonations_QueryError(t *testing.T) {
	store := newMockStore()
	store.queryErr = func(q db.Query) error { return errors.New("unavailable") }

	_, err := ListDonations(context.Background(), store, zap.NewNop(), db.DefaultCollections(), "req-1")
	require.Error(t, err)

	var queryErr *QueryError
	require.True(t, errors.As(err, &queryErr))
	assert.Equal(t, "hopehub_donations", queryErr.Collection)
}

func TestLoadDonationsForRequests_PartialFailure(t *testing.T) {
	store := newMockStore()
	now := time.Now()
	requests := make([]db.Request, 5)
	for i := range requests {
		id := string(rune('a'+i)) + "-req"
		requests[i] = db.Request{ID: id}
		putDonation(store, "d-"+id, id, now)
	}
	store.queryErr = func(q db.Query) error {
		if q.Where != nil && q.Where.Value == "c-req" {
			return errors.New("timeout")
		}
		return nil
	}

	result := LoadDonationsForRequests(context.Background(), store, zap.NewNop(), db.DefaultCollections(), requests, 2)

	require.Len(t, result, 5)
	for _, req := range requests {
		donations, ok := result[req.ID]
		require.True(t, ok, req.ID)
		if req.ID == "c-req" {
			assert.NotNil(t, donations)
			assert.Empty(t, donations)
			continue
		}
		require.Len(t, donations, 1, req.ID)
		assert.Equal(t, "d-"+req.ID, donations[0].ID)
	}
}

func TestLoadDonationsForRequests_Empty(t *testing.T) {
	store := newMockStore()

	result := LoadDonationsForRequests(context.Background(), store, zap.NewNop(), db.DefaultCollections(), nil, 0)

	assert.Empty(t, result)
	assert.Equal(t, 0, store.calls())
}
