package filter

import (
	"math"
	"sort"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// Bounds describes the categories and value ranges present in trips,
// for populating filter controls.
func Bounds(trips []models.Trip) models.FilterBounds {
	b := models.FilterBounds{Categories: []string{}}
	if len(trips) == 0 {
		return b
	}

	seen := make(map[string]bool)
	minDist, maxDist := math.Inf(1), math.Inf(-1)
	minEff, maxEff := math.Inf(1), math.Inf(-1)
	minDrop, maxDrop := math.Inf(1), math.Inf(-1)
	var firstDay, lastDay string

	for _, t := range trips {
		if t.Category != "" && !seen[t.Category] {
			seen[t.Category] = true
			b.Categories = append(b.Categories, t.Category)
		}

		minDist = math.Min(minDist, t.DistanceKm)
		maxDist = math.Max(maxDist, t.DistanceKm)
		if t.Efficiency > 0 {
			minEff = math.Min(minEff, t.Efficiency)
			maxEff = math.Max(maxEff, t.Efficiency)
		}
		minDrop = math.Min(minDrop, float64(t.SocDrop))
		maxDrop = math.Max(maxDrop, float64(t.SocDrop))

		if day, ok := t.Day(); ok {
			s := day.Format("2006-01-02")
			if firstDay == "" || s < firstDay {
				firstDay = s
			}
			if lastDay == "" || s > lastDay {
				lastDay = s
			}
		}
	}
	sort.Strings(b.Categories)

	b.DateMin, b.DateMax = firstDay, lastDay
	b.MinDistance, b.MaxDistance = math.Floor(minDist), math.Ceil(maxDist)
	b.MinSocDrop, b.MaxSocDrop = math.Floor(minDrop), math.Ceil(maxDrop)
	if !math.IsInf(minEff, 1) {
		b.MinEfficiency, b.MaxEfficiency = math.Floor(minEff), math.Ceil(maxEff)
	}
	return b
}
