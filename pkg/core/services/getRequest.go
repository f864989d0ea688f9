package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hopehub/hopehub/pkg/db"
)

// ErrRequestNotFound is returned when no request has the given id
var ErrRequestNotFound = errors.New("request not found")

// GetRequest loads a single request by id
func GetRequest(ctx context.Context, store db.DocumentStore, collections db.Collections, requestID string) (*db.Request, error) {
	docs, err := store.QueryDocuments(ctx, db.Query{
		Collection: collections.Requests,
		Where:      &db.Filter{Field: db.FieldID, Value: requestID},
		Limit:      1,
	})
	if err != nil {
		return nil, &QueryError{Collection: collections.Requests, Err: err}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRequestNotFound, requestID)
	}

	request, err := db.Decode[db.Request](docs[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read request %s: %w", requestID, err)
	}
	return &request, nil
}
