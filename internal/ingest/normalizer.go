package ingest

import (
	"math"
	"strings"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// Report summarizes one normalization pass
type Report struct {
	Rows    int `json:"rows"`
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
}

// Normalize converts decoded rows into trips.
// Rows whose distance does not parse to a positive number are dropped;
// every other bad cell degrades to zero or the field default.
func Normalize(rows []models.RawRow) []models.Trip {
	trips, _ := NormalizeWithReport(rows)
	return trips
}

// NormalizeWithReport is Normalize plus kept/dropped counts
func NormalizeWithReport(rows []models.RawRow) ([]models.Trip, Report) {
	trips := make([]models.Trip, 0, len(rows))
	for _, row := range rows {
		distance := parseLenientFloat(row[models.ColDistanceKm])
		if distance <= 0 {
			continue
		}
		trips = append(trips, normalizeRow(row, distance, len(trips)))
	}

	return trips, Report{
		Rows:    len(rows),
		Kept:    len(trips),
		Dropped: len(rows) - len(trips),
	}
}

func normalizeRow(row models.RawRow, distance float64, id int) models.Trip {
	consumption := parseLenientFloat(row[models.ColConsumptionKwh])
	socSource := parseLenientInt(row[models.ColSOCSource])
	socDestination := parseLenientInt(row[models.ColSOCDestination])

	return models.Trip{
		ID:             id,
		StartDate:      stringValue(row[models.ColStartDate]),
		EndDate:        stringValue(row[models.ColEndDate]),
		StartAddress:   stringValue(row[models.ColStartAddress]),
		EndAddress:     stringValue(row[models.ColEndAddress]),
		DistanceKm:     distance,
		ConsumptionKwh: consumption,
		Efficiency:     Efficiency(consumption, distance),
		Category:       withDefault(stringValue(row[models.ColCategory]), models.DefaultCategory),
		StartLat:       parseLenientFloat(row[models.ColStartLatitude]),
		StartLng:       parseLenientFloat(row[models.ColStartLongitude]),
		EndLat:         parseLenientFloat(row[models.ColEndLatitude]),
		EndLng:         parseLenientFloat(row[models.ColEndLongitude]),
		StartOdometer:  parseLenientInt(row[models.ColStartOdometer]),
		EndOdometer:    parseLenientInt(row[models.ColEndOdometer]),
		TripType:       withDefault(stringValue(row[models.ColTripType]), models.DefaultTripType),
		SocSource:      socSource,
		SocDestination: socDestination,
		SocDrop:        socSource - socDestination,
		Comments:       stringValue(row[models.ColComments]),
	}
}

// Efficiency returns kWh per 100 km rounded to 2 decimals, or 0 without distance
func Efficiency(consumptionKwh, distanceKm float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return math.Round(consumptionKwh/distanceKm*100*100) / 100
}

func withDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
