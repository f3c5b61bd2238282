package spatial

import (
	"math"
	"sort"

	"github.com/jengzang/evjourney-backend-go/internal/models"
	"github.com/jengzang/evjourney-backend-go/internal/stats"
)

// DefaultCenter is used when no trip carries usable coordinates (Ottawa)
var DefaultCenter = models.GeoPoint{Lat: 45.4215, Lng: -75.6972}

// Efficiency band thresholds in kWh/100km
const (
	greenBelow  = 15.0
	yellowBelow = 20.0
	orangeBelow = 25.0
)

// ValidTrips returns the trips whose four coordinates are all set
func ValidTrips(trips []models.Trip) []models.Trip {
	valid := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if t.HasCoordinates() {
			valid = append(valid, t)
		}
	}
	return valid
}

// Center returns the mean start coordinate of the valid trips
func Center(trips []models.Trip) models.GeoPoint {
	valid := ValidTrips(trips)
	if len(valid) == 0 {
		return DefaultCenter
	}

	lats := make([]float64, len(valid))
	lngs := make([]float64, len(valid))
	for i, t := range valid {
		lats[i] = t.StartLat
		lngs[i] = t.StartLng
	}

	center := DefaultCenter
	if lat := stats.Mean(lats); !math.IsNaN(lat) && !math.IsInf(lat, 0) {
		center.Lat = lat
	}
	if lng := stats.Mean(lngs); !math.IsNaN(lng) && !math.IsInf(lng, 0) {
		center.Lng = lng
	}
	return center
}

// DayGroup is the valid trips of one calendar day in start order
type DayGroup struct {
	Day   string
	Trips []models.Trip
}

// TripsByDay groups valid trips by the date portion of StartDate.
// Days are ordered chronologically, with unparsable dates last in first-seen order.
func TripsByDay(trips []models.Trip) []DayGroup {
	index := make(map[string]int)
	var groups []DayGroup
	for _, t := range ValidTrips(trips) {
		day := t.DatePart()
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Trips = append(groups[i].Trips, t)
	}

	for _, g := range groups {
		sort.SliceStable(g.Trips, func(i, j int) bool {
			a, aok := g.Trips[i].StartTime()
			b, bok := g.Trips[j].StartTime()
			if aok && bok {
				return a.Before(b)
			}
			return aok && !bok
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, aok := models.ParseDay(groups[i].Day)
		b, bok := models.ParseDay(groups[j].Day)
		if aok && bok {
			return a.Before(b)
		}
		return aok && !bok
	})

	return groups
}

// DayLinks connects each trip's end to the next trip's start within a day
func DayLinks(trips []models.Trip) []models.DayLink {
	var links []models.DayLink
	for dayIndex, g := range TripsByDay(trips) {
		for i := 0; i+1 < len(g.Trips); i++ {
			links = append(links, models.DayLink{
				Day:      g.Day,
				DayIndex: dayIndex,
				From:     models.GeoPoint{Lat: g.Trips[i].EndLat, Lng: g.Trips[i].EndLng},
				To:       models.GeoPoint{Lat: g.Trips[i+1].StartLat, Lng: g.Trips[i+1].StartLng},
			})
		}
	}
	return links
}

// StraightLineKm returns the great-circle distance from trip start to end
func StraightLineKm(t models.Trip) float64 {
	return HaversineDistance(t.StartLat, t.StartLng, t.EndLat, t.EndLng) / 1000
}

// EfficiencyBand classifies an efficiency expressed in the given unit
func EfficiencyBand(efficiency float64, unit string) string {
	factor := models.UnitFactor(unit)
	switch {
	case efficiency < math.Round(greenBelow*factor):
		return models.BandGreen
	case efficiency < math.Round(yellowBelow*factor):
		return models.BandYellow
	case efficiency < math.Round(orangeBelow*factor):
		return models.BandOrange
	default:
		return models.BandRed
	}
}

// BuildMap projects trips onto map layers. Routes and heatmap points cover the
// first limit valid trips (all when limit <= 0); center and day links use every valid trip.
func BuildMap(trips []models.Trip, unit string, limit int) models.MapData {
	unit = models.NormalizeUnit(unit)
	valid := ValidTrips(trips)

	shown := valid
	if limit > 0 && limit < len(shown) {
		shown = shown[:limit]
	}

	data := models.MapData{
		Center:   Center(valid),
		Routes:   make([]models.RouteFeature, 0, len(shown)),
		Heatmap:  make([]models.GeoPoint, 0, 2*len(shown)),
		DayLinks: DayLinks(valid),
	}

	factor := models.UnitFactor(unit)
	for _, t := range shown {
		midLat, midLng := Midpoint(t.StartLat, t.StartLng, t.EndLat, t.EndLng)
		efficiency := t.Efficiency * factor
		start := models.GeoPoint{Lat: t.StartLat, Lng: t.StartLng}
		end := models.GeoPoint{Lat: t.EndLat, Lng: t.EndLng}

		data.Routes = append(data.Routes, models.RouteFeature{
			TripID:         t.ID,
			Start:          start,
			End:            end,
			Midpoint:       models.GeoPoint{Lat: midLat, Lng: midLng},
			Bearing:        math.Round(Bearing(t.StartLat, t.StartLng, t.EndLat, t.EndLng)*10) / 10,
			Efficiency:     math.Round(efficiency*100) / 100,
			Band:           EfficiencyBand(efficiency, unit),
			StraightLineKm: math.Round(StraightLineKm(t)*100) / 100,
		})
		data.Heatmap = append(data.Heatmap, start, end)
	}

	return data
}
