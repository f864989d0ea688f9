package db

import (
	"sort"
	"time"
)

var epoch = time.Unix(0, 0).UTC()

// sortTime treats a missing timestamp as the Unix epoch
func sortTime(t time.Time) time.Time {
	if t.IsZero() {
		return epoch
	}
	return t
}

// SortDonations orders donations most recent first.
// Ties keep the order they were returned in by the store.
func SortDonations(donations []Donation) {
	sort.SliceStable(donations, func(i, j int) bool {
		return sortTime(donations[i].CreatedAt).After(sortTime(donations[j].CreatedAt))
	})
}

// CountDonationsByRequest groups donations by request id
func CountDonationsByRequest(donations []Donation) map[string]int {
	counts := make(map[string]int)
	for _, d := range donations {
		counts[d.RequestID]++
	}
	return counts
}
