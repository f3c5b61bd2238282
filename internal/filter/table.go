package filter

import (
	"sort"
	"strings"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// Search keeps trips whose addresses contain q (case-insensitive)
// or whose start date contains q verbatim.
func Search(trips []models.Trip, q string) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	if q == "" {
		return append(out, trips...)
	}
	needle := strings.ToLower(q)
	for _, t := range trips {
		if strings.Contains(strings.ToLower(t.StartAddress), needle) ||
			strings.Contains(strings.ToLower(t.EndAddress), needle) ||
			strings.Contains(t.StartDate, q) {
			out = append(out, t)
		}
	}
	return out
}

// Sort returns a sorted copy. Unknown keys sort by start date;
// order defaults to descending.
func Sort(trips []models.Trip, key, order string) []models.Trip {
	out := append([]models.Trip(nil), trips...)
	less := lessFunc(key)
	if order == models.SortOrderAscending {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return less(out[j], out[i]) })
	}
	return out
}

func lessFunc(key string) func(a, b models.Trip) bool {
	switch key {
	case models.SortByDistance:
		return func(a, b models.Trip) bool { return a.DistanceKm < b.DistanceKm }
	case models.SortByConsumption:
		return func(a, b models.Trip) bool { return a.ConsumptionKwh < b.ConsumptionKwh }
	case models.SortByEfficiency:
		return func(a, b models.Trip) bool { return a.Efficiency < b.Efficiency }
	case models.SortBySocDrop:
		return func(a, b models.Trip) bool { return a.SocDrop < b.SocDrop }
	default:
		return startBefore
	}
}

// startBefore orders by parsed start time; unparsable dates go last
func startBefore(a, b models.Trip) bool {
	ta, okA := a.StartTime()
	tb, okB := b.StartTime()
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okA != okB:
		return okA
	default:
		return a.StartDate < b.StartDate
	}
}
