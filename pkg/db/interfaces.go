package db

import (
	"context"
	"errors"
	"time"
)

// Reserved field names addressable in filters and ordering
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
)

// ErrUnorderable is returned when a store cannot order by the requested field
var ErrUnorderable = errors.New("cannot order by field")

// Document is a stored record with its store-assigned id and timestamp.
// Fields never contain the id or createdAt keys.
type Document struct {
	ID        string
	CreatedAt time.Time
	Fields    map[string]any
}

// Filter is an equality match on a single field.
// With TrimSpace set, string values match once surrounding whitespace is removed from both sides.
type Filter struct {
	Field     string
	Value     any
	TrimSpace bool
}

// Query describes a read against one collection
type Query struct {
	Collection  string
	Where       *Filter
	OrderByDesc string // empty for store order
	Limit       int    // 0 for no limit
}

// DocumentStore defines the persistence gateway operations.
// Both the in-memory MemoryStore and postgres.DB implement this interface.
type DocumentStore interface {
	InsertDocument(ctx context.Context, collection string, fields map[string]any) (Document, error)
	QueryDocuments(ctx context.Context, q Query) ([]Document, error)
}

// Collections holds the collection names used by the workflows
type Collections struct {
	Requests          string
	Donations         string
	Campaigns         string
	EducationWebsites string
	FileUploads       string
	OneDriveLinks     string
	WhatsappGroups    string
}

// DefaultCollections returns the collection names used by the hosted app
func DefaultCollections() Collections {
	return Collections{
		Requests:          "hopehub_requests",
		Donations:         "hopehub_donations",
		Campaigns:         "hopehub_campaigns",
		EducationWebsites: "educationWebsites",
		FileUploads:       "fileUploads",
		OneDriveLinks:     "oneDriveLinks",
		WhatsappGroups:    "whatsappGroups",
	}
}
