package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/db"
)

// DefaultListingLimit caps how many resource records a listing returns
const DefaultListingLimit = 100

const fieldURL = "url"

// ResourceListing reads one collection of shared resource links.
// Reads never fail: errors are logged and produce empty results.
type ResourceListing[T any] struct {
	store      db.DocumentStore
	logger     *zap.Logger
	collection string
	limit      int
}

// NewResourceListing creates a listing over collection. A non-positive limit uses DefaultListingLimit.
func NewResourceListing[T any](store db.DocumentStore, logger *zap.Logger, collection string, limit int) *ResourceListing[T] {
	if limit <= 0 {
		limit = DefaultListingLimit
	}
	return &ResourceListing[T]{
		store:      store,
		logger:     logger,
		collection: collection,
		limit:      limit,
	}
}

func EducationWebsites(store db.DocumentStore, logger *zap.Logger, collections db.Collections, limit int) *ResourceListing[db.EducationWebsite] {
	return NewResourceListing[db.EducationWebsite](store, logger, collections.EducationWebsites, limit)
}

func FileUploads(store db.DocumentStore, logger *zap.Logger, collections db.Collections, limit int) *ResourceListing[db.FileUpload] {
	return NewResourceListing[db.FileUpload](store, logger, collections.FileUploads, limit)
}

func OneDriveLinks(store db.DocumentStore, logger *zap.Logger, collections db.Collections, limit int) *ResourceListing[db.OneDriveLink] {
	return NewResourceListing[db.OneDriveLink](store, logger, collections.OneDriveLinks, limit)
}

func WhatsappGroups(store db.DocumentStore, logger *zap.Logger, collections db.Collections, limit int) *ResourceListing[db.WhatsappGroup] {
	return NewResourceListing[db.WhatsappGroup](store, logger, collections.WhatsappGroups, limit)
}

// Collection returns the name of the collection being listed
func (l *ResourceListing[T]) Collection() string {
	return l.collection
}

// List returns up to the listing limit of records, newest first.
// If the store cannot order the collection it retries once in store order.
func (l *ResourceListing[T]) List(ctx context.Context) []T {
	docs, err := l.store.QueryDocuments(ctx, db.Query{
		Collection:  l.collection,
		OrderByDesc: db.FieldCreatedAt,
		Limit:       l.limit,
	})
	if err != nil {
		l.logger.Warn("Ordered listing failed, retrying without ordering",
			zap.String("collection", l.collection),
			zap.Error(err))

		docs, err = l.store.QueryDocuments(ctx, db.Query{
			Collection: l.collection,
			Limit:      l.limit,
		})
		if err != nil {
			l.logger.Error("Error listing resources",
				zap.String("collection", l.collection),
				zap.Error(err))
			return []T{}
		}
	}

	records, errs := db.DecodeAll[T](docs)
	logMalformed(l.logger, l.collection, errs)
	return records
}

// IsDuplicate reports whether a record with this url already exists.
// Both the given and the stored url are trimmed before comparison. A failed check reports false.
func (l *ResourceListing[T]) IsDuplicate(ctx context.Context, url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}

	docs, err := l.store.QueryDocuments(ctx, db.Query{
		Collection: l.collection,
		Where:      &db.Filter{Field: fieldURL, Value: url, TrimSpace: true},
		Limit:      1,
	})
	if err != nil {
		l.logger.Error("Error checking duplicate url",
			zap.String("collection", l.collection),
			zap.String("url", url),
			zap.Error(err))
		return false
	}

	return len(docs) > 0
}
