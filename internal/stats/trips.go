package stats

import (
	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// Reference combustion vehicle used for the environmental estimate
const (
	IceFuelLitersPer100Km = 8.9  // US EPA average
	CO2KgPerLiter         = 2.31 // gasoline
	CO2KgPerTreeYear      = 21.0 // absorbed by one tree in a year
)

// Aggregate reduces trips into summary statistics.
// Returns nil when there are no trips.
func Aggregate(trips []models.Trip) *models.Statistics {
	if len(trips) == 0 {
		return nil
	}

	distances := make([]float64, len(trips))
	consumptions := make([]float64, len(trips))
	efficiencies := make([]float64, 0, len(trips))
	odometerStart := trips[0].StartOdometer
	odometerEnd := trips[0].EndOdometer

	for i, t := range trips {
		distances[i] = t.DistanceKm
		consumptions[i] = t.ConsumptionKwh
		if t.Efficiency > 0 {
			efficiencies = append(efficiencies, t.Efficiency)
		}
		if t.StartOdometer < odometerStart {
			odometerStart = t.StartOdometer
		}
		if t.EndOdometer > odometerEnd {
			odometerEnd = t.EndOdometer
		}
	}

	totalDistance := Sum(distances)
	totalConsumption := Sum(consumptions)

	// Distance weighted: recomputed from totals, not averaged per trip
	avgEfficiency := 0.0
	if totalDistance > 0 {
		avgEfficiency = totalConsumption / totalDistance * 100
	}

	gasSaved := totalDistance / 100 * IceFuelLitersPer100Km
	carbonSaved := gasSaved * CO2KgPerLiter

	return &models.Statistics{
		TotalTrips:       len(trips),
		TotalDistance:    totalDistance,
		TotalConsumption: totalConsumption,
		AvgEfficiency:    avgEfficiency,
		BestEfficiency:   Min(efficiencies),
		WorstEfficiency:  Max(efficiencies),
		AvgTripDistance:  totalDistance / float64(len(trips)),
		OdometerStart:    odometerStart,
		OdometerEnd:      odometerEnd,
		GasSaved:         gasSaved,
		CarbonSaved:      carbonSaved,
		TreesEquivalent:  carbonSaved / CO2KgPerTreeYear,
	}
}
