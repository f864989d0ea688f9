package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hopehub/hopehub/pkg/db"
)

const fieldRequestID = "requestId"

// ListDonations returns the pledges for one request, most recent first.
// The query is unordered and sorted here so no store index is needed.
func ListDonations(
	ctx context.Context,
	store db.DocumentStore,
	logger *zap.Logger,
	collections db.Collections,
	requestID string,
) ([]db.Donation, error) {
	docs, err := store.QueryDocuments(ctx, db.Query{
		Collection: collections.Donations,
		Where:      &db.Filter{Field: fieldRequestID, Value: requestID},
	})
	if err != nil {
		return nil, &QueryError{Collection: collections.Donations, Err: err}
	}

	donations, errs := db.DecodeAll[db.Donation](docs)
	logMalformed(logger, collections.Donations, errs)

	db.SortDonations(donations)
	return donations, nil
}

// LoadDonationsForRequests fetches the pledges of several requests concurrently.
// A request whose query fails maps to an empty list, the rest of the batch is unaffected.
// concurrency caps the number of in-flight queries, 0 means no cap.
func LoadDonationsForRequests(
	ctx context.Context,
	store db.DocumentStore,
	logger *zap.Logger,
	collections db.Collections,
	requests []db.Request,
	concurrency int,
) map[string][]db.Donation {
	logger.Debug("Loading donations for requests",
		zap.Int("request_count", len(requests)),
		zap.Int("concurrency", concurrency))

	result := make(map[string][]db.Donation, len(requests))
	var mu sync.Mutex

	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for _, req := range requests {
		requestID := req.ID
		g.Go(func() error {
			donations, err := ListDonations(ctx, store, logger, collections, requestID)
			if err != nil {
				logger.Error("Error loading donations for request",
					zap.String("request_id", requestID),
					zap.Error(err))
				donations = []db.Donation{}
			}

			mu.Lock()
			result[requestID] = donations
			mu.Unlock()
			return nil
		})
	}

	// Per-request failures are absorbed above so Wait never reports an error
	_ = g.Wait()

	return result
}

func logMalformed(logger *zap.Logger, collection string, errs []error) {
	for _, err := range errs {
		logger.Warn("Skipping malformed document",
			zap.String("collection", collection),
			zap.Error(err))
	}
}
