package models

import (
	"fmt"
	"strings"
	"time"
)

// FilterCriteria is the set of trip predicates. Nil or empty fields impose no constraint.
type FilterCriteria struct {
	DateFrom *time.Time // inclusive from start of day
	DateTo   *time.Time // inclusive through end of day

	DistanceMin *float64
	DistanceMax *float64

	EfficiencyMin *float64
	EfficiencyMax *float64

	SocDropMin *float64
	SocDropMax *float64

	Category string   // exact match
	Tags     []string // trip matches if any annotation tag is listed
}

// IsEmpty reports whether no criterion is set
func (c FilterCriteria) IsEmpty() bool {
	return c.ActiveCount() == 0
}

// ActiveCount returns the number of set criteria
func (c FilterCriteria) ActiveCount() int {
	n := 0
	for _, set := range []bool{
		c.DateFrom != nil, c.DateTo != nil,
		c.DistanceMin != nil, c.DistanceMax != nil,
		c.EfficiencyMin != nil, c.EfficiencyMax != nil,
		c.SocDropMin != nil, c.SocDropMax != nil,
		c.Category != "", len(c.Tags) > 0,
	} {
		if set {
			n++
		}
	}
	return n
}

// FilterQuery represents filter parameters bound from the query string
type FilterQuery struct {
	DateFrom      string   `form:"dateFrom"` // YYYY-MM-DD
	DateTo        string   `form:"dateTo"`   // YYYY-MM-DD
	DistanceMin   *float64 `form:"distanceMin" binding:"omitempty,gte=0"`
	DistanceMax   *float64 `form:"distanceMax" binding:"omitempty,gte=0"`
	EfficiencyMin *float64 `form:"efficiencyMin" binding:"omitempty,gte=0"`
	EfficiencyMax *float64 `form:"efficiencyMax" binding:"omitempty,gte=0"`
	SocDropMin    *float64 `form:"socDropMin"`
	SocDropMax    *float64 `form:"socDropMax"`
	Category      string   `form:"category"`
	Tags          []string `form:"tags"` // repeated or comma separated
}

// Criteria converts the bound query into FilterCriteria
func (q FilterQuery) Criteria() (FilterCriteria, error) {
	c := FilterCriteria{
		DistanceMin:   q.DistanceMin,
		DistanceMax:   q.DistanceMax,
		EfficiencyMin: q.EfficiencyMin,
		EfficiencyMax: q.EfficiencyMax,
		SocDropMin:    q.SocDropMin,
		SocDropMax:    q.SocDropMax,
		Category:      strings.TrimSpace(q.Category),
	}

	if q.DateFrom != "" {
		d, ok := ParseDay(q.DateFrom)
		if !ok {
			return FilterCriteria{}, fmt.Errorf("invalid dateFrom %q", q.DateFrom)
		}
		c.DateFrom = &d
	}
	if q.DateTo != "" {
		d, ok := ParseDay(q.DateTo)
		if !ok {
			return FilterCriteria{}, fmt.Errorf("invalid dateTo %q", q.DateTo)
		}
		c.DateTo = &d
	}

	for _, raw := range q.Tags {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				c.Tags = append(c.Tags, tag)
			}
		}
	}

	return c, nil
}

// TableQuery represents search and sort parameters for the trip table
type TableQuery struct {
	Search string `form:"search"`
	SortBy string `form:"sortBy" binding:"omitempty,oneof=startDate distanceKm consumptionKwh efficiency socDrop"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc"`
}

// Sort keys accepted by TableQuery
const (
	SortByStartDate   = "startDate"
	SortByDistance    = "distanceKm"
	SortByConsumption = "consumptionKwh"
	SortByEfficiency  = "efficiency"
	SortBySocDrop     = "socDrop"
)

// Sort orders accepted by TableQuery
const (
	SortOrderAscending  = "asc"
	SortOrderDescending = "desc"
)

// FilterBounds describes the value ranges available in a dataset
type FilterBounds struct {
	Categories    []string `json:"categories"`
	DateMin       string   `json:"dateMin,omitempty"`
	DateMax       string   `json:"dateMax,omitempty"`
	MinDistance   float64  `json:"minDistance"`
	MaxDistance   float64  `json:"maxDistance"`
	MinEfficiency float64  `json:"minEfficiency"`
	MaxEfficiency float64  `json:"maxEfficiency"`
	MinSocDrop    float64  `json:"minSocDrop"`
	MaxSocDrop    float64  `json:"maxSocDrop"`
}
