package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/core/directory"
	"github.com/hopehub/hopehub/pkg/db"
)

// Directory is everything the request browser shows on load
type Directory struct {
	Requests  []db.Request // createdAt descending, with donation counts
	Campaigns []db.Campaign
	Stats     directory.Stats
}

// LoadDirectory reads the request list, their donation counts and the campaigns.
// Read failures are logged and leave the affected part empty so the directory
// stays browsable.
func LoadDirectory(
	ctx context.Context,
	store db.DocumentStore,
	logger *zap.Logger,
	collections db.Collections,
) *Directory {
	dir := &Directory{
		Requests:  []db.Request{},
		Campaigns: []db.Campaign{},
	}

	// Step 1: Requests, newest first
	docs, err := store.QueryDocuments(ctx, db.Query{
		Collection:  collections.Requests,
		OrderByDesc: db.FieldCreatedAt,
	})
	if err != nil {
		logger.Error("Error loading requests",
			zap.String("collection", collections.Requests),
			zap.Error(err))
	} else {
		requests, errs := db.DecodeAll[db.Request](docs)
		logMalformed(logger, collections.Requests, errs)
		dir.Requests = requests
	}

	// Step 2: Donation counts from a single scan of the donations collection
	if len(dir.Requests) > 0 {
		counts, err := countDonations(ctx, store, logger, collections)
		if err != nil {
			logger.Warn("Error loading donation counts, showing zero",
				zap.String("collection", collections.Donations),
				zap.Error(err))
		}
		for i := range dir.Requests {
			dir.Requests[i].DonationCount = counts[dir.Requests[i].ID]
		}
	}

	// Step 3: Campaigns
	dir.Campaigns = ListCampaigns(ctx, store, logger, collections, 0)

	dir.Stats = directory.ComputeStats(dir.Requests)

	logger.Debug("Directory loaded",
		zap.Int("requests", len(dir.Requests)),
		zap.Int("campaigns", len(dir.Campaigns)),
		zap.Int("donations", dir.Stats.TotalDonations))

	return dir
}

func countDonations(ctx context.Context, store db.DocumentStore, logger *zap.Logger, collections db.Collections) (map[string]int, error) {
	docs, err := store.QueryDocuments(ctx, db.Query{Collection: collections.Donations})
	if err != nil {
		return map[string]int{}, &QueryError{Collection: collections.Donations, Err: err}
	}

	donations, errs := db.DecodeAll[db.Donation](docs)
	logMalformed(logger, collections.Donations, errs)

	return db.CountDonationsByRequest(donations), nil
}

// ListCampaigns returns campaigns newest first, or an empty list if they cannot be read.
// limit 0 returns every campaign.
func ListCampaigns(
	ctx context.Context,
	store db.DocumentStore,
	logger *zap.Logger,
	collections db.Collections,
	limit int,
) []db.Campaign {
	docs, err := store.QueryDocuments(ctx, db.Query{
		Collection:  collections.Campaigns,
		OrderByDesc: db.FieldCreatedAt,
		Limit:       limit,
	})
	if err != nil {
		logger.Error("Error loading campaigns",
			zap.String("collection", collections.Campaigns),
			zap.Error(err))
		return []db.Campaign{}
	}

	campaigns, errs := db.DecodeAll[db.Campaign](docs)
	logMalformed(logger, collections.Campaigns, errs)
	return campaigns
}
