package postgres

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopehub/hopehub/pkg/db"
)

func TestBuildQuery(t *testing.T) {
	ts := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		query        db.Query
		expectedSQL  string
		expectedArgs []any
	}{
		{
			name:         "collection scan",
			query:        db.Query{Collection: "hopehub_requests"},
			expectedSQL:  `SELECT id::text, data, created_at FROM documents WHERE collection = $1`,
			expectedArgs: []any{"hopehub_requests"},
		},
		{
			name: "ordered with limit",
			query: db.Query{
				Collection:  "educationWebsites",
				OrderByDesc: db.FieldCreatedAt,
				Limit:       100,
			},
			expectedSQL:  `SELECT id::text, data, created_at FROM documents WHERE collection = $1 ORDER BY created_at DESC LIMIT $2`,
			expectedArgs: []any{"educationWebsites", 100},
		},
		{
			name: "field equality",
			query: db.Query{
				Collection: "hopehub_donations",
				Where:      &db.Filter{Field: "requestId", Value: "req-1"},
			},
			expectedSQL:  `SELECT id::text, data, created_at FROM documents WHERE collection = $1 AND data->>'requestId' = $2`,
			expectedArgs: []any{"hopehub_donations", "req-1"},
		},
		{
			name: "trimmed field equality",
			query: db.Query{
				Collection: "whatsappGroups",
				Where:      &db.Filter{Field: "url", Value: " https://chat.whatsapp.com/abc\n", TrimSpace: true},
				Limit:      1,
			},
			expectedSQL:  `SELECT id::text, data, created_at FROM documents WHERE collection = $1 AND btrim(data->>'url', E' \t\n\r\f') = $2 LIMIT $3`,
			expectedArgs: []any{"whatsappGroups", "https://chat.whatsapp.com/abc", 1},
		},
		{
			name: "id equality",
			query: db.Query{
				Collection: "hopehub_requests",
				Where:      &db.Filter{Field: db.FieldID, Value: "abc"},
			},
			expectedSQL:  `SELECT id::text, data, created_at FROM documents WHERE collection = $1 AND id::text = $2`,
			expectedArgs: []any{"hopehub_requests", "abc"},
		},
		{
			name: "createdAt equality",
			query: db.Query{
				Collection: "hopehub_requests",
				Where:      &db.Filter{Field: db.FieldCreatedAt, Value: ts},
			},
			expectedSQL:  `SELECT id::text, data, created_at FROM documents WHERE collection = $1 AND created_at = $2`,
			expectedArgs: []any{"hopehub_requests", ts},
		},
		{
			name: "order by data field",
			query: db.Query{
				Collection:  "hopehub_campaigns",
				OrderByDesc: "title",
			},
			expectedSQL:  `SELECT id::text, data, created_at FROM documents WHERE collection = $1 ORDER BY data->'title' DESC`,
			expectedArgs: []any{"hopehub_campaigns"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := buildQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSQL, sql)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestBuildQuery_RejectsUnsafeFieldNames(t *testing.T) {
	_, _, err := buildQuery(db.Query{
		Collection: "whatsappGroups",
		Where:      &db.Filter{Field: "url' OR '1'='1", Value: "x"},
	})
	assert.Error(t, err)

	_, _, err = buildQuery(db.Query{
		Collection:  "whatsappGroups",
		OrderByDesc: "created at",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrUnorderable))
}

func TestBuildQuery_CreatedAtFilterNeedsTime(t *testing.T) {
	_, _, err := buildQuery(db.Query{
		Collection: "hopehub_requests",
		Where:      &db.Filter{Field: db.FieldCreatedAt, Value: "yesterday"},
	})
	assert.Error(t, err)
}

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_index_lookup_fields.sql": {Data: []byte("SELECT 1")},
		"migrations/001_create_documents.sql":    {Data: []byte("SELECT 1")},
		"migrations/README.md":                   {Data: []byte("notes")},
	}

	pending, err := pendingMigrations(fsys, map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_documents.sql", "002_index_lookup_fields.sql"}, pending)

	pending, err = pendingMigrations(fsys, map[string]bool{"001_create_documents.sql": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"002_index_lookup_fields.sql"}, pending)
}

func TestEmbeddedMigrations(t *testing.T) {
	pending, err := pendingMigrations(migrationsFS, map[string]bool{})
	require.NoError(t, err)
	require.NotEmpty(t, pending)
	assert.Equal(t, "001_create_documents.sql", pending[0])
}
