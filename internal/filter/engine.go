package filter

import (
	"time"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// AnnotationLookup returns the annotation stored under a trip fingerprint.
// Missing entries must yield the zero annotation.
type AnnotationLookup func(fingerprint string) models.TripAnnotation

// Apply returns the trips that satisfy every set criterion, preserving order.
// Tags match when the trip's annotation carries any of the listed tags.
func Apply(trips []models.Trip, c models.FilterCriteria, lookup AnnotationLookup) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	if c.IsEmpty() {
		return append(out, trips...)
	}

	from, to := dayBound(c.DateFrom), dayBound(c.DateTo)
	for _, t := range trips {
		if match(t, c, from, to, lookup) {
			out = append(out, t)
		}
	}
	return out
}

// match tests a single trip. from and to are the calendar-day bounds of c.
func match(t models.Trip, c models.FilterCriteria, from, to *time.Time, lookup AnnotationLookup) bool {
	if from != nil || to != nil {
		day, ok := t.Day()
		if !ok {
			return false
		}
		if from != nil && day.Before(*from) {
			return false
		}
		if to != nil && day.After(*to) {
			return false
		}
	}

	if !within(t.DistanceKm, c.DistanceMin, c.DistanceMax) {
		return false
	}
	if !within(t.Efficiency, c.EfficiencyMin, c.EfficiencyMax) {
		return false
	}
	if !within(float64(t.SocDrop), c.SocDropMin, c.SocDropMax) {
		return false
	}

	if c.Category != "" && t.Category != c.Category {
		return false
	}

	if len(c.Tags) > 0 {
		if lookup == nil {
			return false
		}
		annotation := lookup(t.Fingerprint())
		if !anyTag(annotation, c.Tags) {
			return false
		}
	}

	return true
}

// within checks inclusive bounds; nil bounds are open
func within(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

func anyTag(a models.TripAnnotation, tags []string) bool {
	for _, tag := range tags {
		if a.HasTag(tag) {
			return true
		}
	}
	return false
}

// dayBound truncates a bound to its calendar date. The trip date is compared
// at day granularity, so this covers start-of-day for DateFrom and
// end-of-day for DateTo.
func dayBound(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
