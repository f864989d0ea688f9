package directory

import (
	"slices"
	"strings"

	"github.com/hopehub/hopehub/pkg/db"
)

// AllDistricts is the district filter value that matches every request
const AllDistricts = "all"

// Districts is the fixed list of administrative districts a request can belong to
var Districts = []string{
	"Colombo",
	"Gampaha",
	"Kalutara",
	"Kandy",
	"Matale",
	"Nuwara Eliya",
	"Galle",
	"Matara",
	"Hambantota",
	"Jaffna",
	"Kilinochchi",
	"Mannar",
	"Vavuniya",
	"Mullaitivu",
	"Batticaloa",
	"Ampara",
	"Trincomalee",
	"Kurunegala",
	"Puttalam",
	"Anuradhapura",
	"Polonnaruwa",
	"Badulla",
	"Monaragala",
	"Ratnapura",
	"Kegalle",
}

// IsDistrict reports whether name is one of the known districts
func IsDistrict(name string) bool {
	return slices.Contains(Districts, name)
}

// Filter returns the requests in district whose name, city or any item contains query.
// Matching is case-insensitive and input order is preserved. A blank query
// matches everything; otherwise the query is matched as typed, spaces included.
func Filter(requests []db.Request, query, district string) []db.Request {
	q := strings.ToLower(query)
	blank := strings.TrimSpace(q) == ""

	filtered := make([]db.Request, 0, len(requests))
	for _, r := range requests {
		if district != AllDistricts && r.District != district {
			continue
		}
		if !blank && !matchesQuery(r, q) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func matchesQuery(r db.Request, q string) bool {
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.CityTown), q) {
		return true
	}
	for _, item := range r.Items {
		if strings.Contains(strings.ToLower(item), q) {
			return true
		}
	}
	return false
}

// OtherRequests picks up to n requests from filtered, skipping currentID.
// Used for the "other requests nearby" panel next to an open request.
func OtherRequests(filtered []db.Request, currentID string, n int) []db.Request {
	if n <= 0 {
		return []db.Request{}
	}
	others := make([]db.Request, 0, n)
	for _, r := range filtered {
		if len(others) == n {
			break
		}
		if currentID != "" && r.ID == currentID {
			continue
		}
		others = append(others, r)
	}
	return others
}

// Stats summarises the loaded requests
type Stats struct {
	TotalRequests  int
	ActiveRequests int
	TotalDonations int
}

// ComputeStats derives the directory totals from the request list
func ComputeStats(requests []db.Request) Stats {
	stats := Stats{TotalRequests: len(requests)}
	for _, r := range requests {
		if r.Status != db.RequestStatusFulfilled {
			stats.ActiveRequests++
		}
		stats.TotalDonations += r.DonationCount
	}
	return stats
}
