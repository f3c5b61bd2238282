// Package charts projects trip collections into chart-ready series.
// Every function is pure and returns an empty, non-nil slice for empty input.
package charts

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// Defaults used by the dashboard charts
const (
	DefaultWindowDays    = 30
	DefaultMinEfficiency = 0
	DefaultMaxEfficiency = 50
	DefaultSOCCount      = 20
)

// kmRangeBoundaries are the distance bucket edges in kilometers
var kmRangeBoundaries = [4]float64{5, 10, 20, 50}

// TimeSeries groups trips by start date and keeps the most recent windowSize days.
// Days without trips are not synthesized. A non-positive window keeps every day.
func TimeSeries(trips []models.Trip, windowSize int) []models.TimeSeriesPoint {
	byDate := make(map[string]*models.TimeSeriesPoint)
	for _, t := range trips {
		date := t.DatePart()
		p, ok := byDate[date]
		if !ok {
			p = &models.TimeSeriesPoint{Date: date}
			byDate[date] = p
		}
		p.Distance += t.DistanceKm
		p.Consumption += t.ConsumptionKwh
		p.Trips++
	}

	points := make([]models.TimeSeriesPoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		return dateBefore(points[i].Date, points[j].Date)
	})

	if windowSize > 0 && len(points) > windowSize {
		points = points[len(points)-windowSize:]
	}
	return points
}

// dateBefore orders parsable dates chronologically, then unparsable ones lexically
func dateBefore(a, b string) bool {
	da, okA := models.ParseDay(a)
	db, okB := models.ParseDay(b)
	switch {
	case okA && okB:
		if da.Equal(db) {
			return a < b
		}
		return da.Before(db)
	case okA != okB:
		return okA
	default:
		return a < b
	}
}

// EfficiencyDistribution keeps trips with minEff < efficiency < maxEff,
// sorted ascending by efficiency.
func EfficiencyDistribution(trips []models.Trip, minEff, maxEff float64) []models.EfficiencyPoint {
	points := make([]models.EfficiencyPoint, 0, len(trips))
	for _, t := range trips {
		if t.Efficiency > minEff && t.Efficiency < maxEff {
			points = append(points, models.EfficiencyPoint{
				Efficiency: t.Efficiency,
				Distance:   t.DistanceKm,
			})
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Efficiency < points[j].Efficiency
	})
	return points
}

// RangeBoundaries returns the four bucket edges for a display unit
func RangeBoundaries(unit string) [4]float64 {
	factor := models.UnitFactor(unit)
	var out [4]float64
	for i, km := range kmRangeBoundaries {
		out[i] = math.Round(km / factor)
	}
	return out
}

// DistanceRangeBuckets counts trips per half-open distance range.
// A trip on a boundary belongs to the upper range.
func DistanceRangeBuckets(trips []models.Trip, unit string) []models.DistanceRange {
	u := models.NormalizeUnit(unit)
	b := RangeBoundaries(u)
	ranges := []models.DistanceRange{
		{Range: rangeLabel(0, b[0], u), Min: 0, Max: b[0]},
		{Range: rangeLabel(b[0], b[1], u), Min: b[0], Max: b[1]},
		{Range: rangeLabel(b[1], b[2], u), Min: b[1], Max: b[2]},
		{Range: rangeLabel(b[2], b[3], u), Min: b[2], Max: b[3]},
		{Range: fmt.Sprintf("%s+ %s", num(b[3]), u), Min: b[3], Max: math.Inf(1)},
	}

	for _, t := range trips {
		for i := range ranges {
			if t.DistanceKm >= ranges[i].Min && t.DistanceKm < ranges[i].Max {
				ranges[i].Count++
				break
			}
		}
	}
	return ranges
}

func rangeLabel(lo, hi float64, unit string) string {
	return fmt.Sprintf("%s-%s %s", num(lo), num(hi), unit)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SOCSeries projects the last count trips in collection order.
// A non-positive count keeps every trip.
func SOCSeries(trips []models.Trip, count int) []models.SOCPoint {
	start := 0
	if count > 0 && len(trips) > count {
		start = len(trips) - count
	}

	points := make([]models.SOCPoint, 0, len(trips)-start)
	for i, t := range trips[start:] {
		points = append(points, models.SOCPoint{
			Trip:     fmt.Sprintf("Trip %d", i+1),
			StartSOC: t.SocSource,
			EndSOC:   t.SocDestination,
			Drop:     t.SocDrop,
		})
	}
	return points
}

// ConsumptionByHour aggregates consumption by the hour of the start time.
// Trips without a parsable hour are skipped.
func ConsumptionByHour(trips []models.Trip) []models.HourlyConsumption {
	byHour := make(map[int]*models.HourlyConsumption)
	for _, t := range trips {
		hour, ok := startHour(t)
		if !ok {
			continue
		}
		h, exists := byHour[hour]
		if !exists {
			h = &models.HourlyConsumption{Hour: hour}
			byHour[hour] = h
		}
		h.TotalConsumption += t.ConsumptionKwh
		h.Trips++
	}

	out := make([]models.HourlyConsumption, 0, len(byHour))
	for _, h := range byHour {
		h.AvgConsumption = h.TotalConsumption / float64(h.Trips)
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// startHour reads the leading integer of the time portion, before the first colon
func startHour(t models.Trip) (int, bool) {
	timePart := t.TimePart()
	if timePart == "" {
		return 0, false
	}
	hourText, _, _ := strings.Cut(timePart, ":")
	hourText = strings.TrimSpace(hourText)

	end := 0
	if end < len(hourText) && (hourText[end] == '-' || hourText[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(hourText) && hourText[end] >= '0' && hourText[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	hour, err := strconv.Atoi(hourText[:end])
	if err != nil {
		return 0, false
	}
	return hour, true
}
