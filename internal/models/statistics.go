package models

import (
	"encoding/json"
	"strconv"
)

// Statistics represents aggregate metrics over a set of trips.
// Values are kept in floating point and rendered to fixed precision on output.
type Statistics struct {
	TotalTrips       int
	TotalDistance    float64 // km
	TotalConsumption float64 // kWh
	AvgEfficiency    float64 // kWh/100km, distance weighted
	BestEfficiency   float64
	WorstEfficiency  float64
	AvgTripDistance  float64
	OdometerStart    int
	OdometerEnd      int

	// Environmental estimate against a reference combustion vehicle
	GasSaved        float64 // liters
	CarbonSaved     float64 // kg CO2
	TreesEquivalent float64 // tree-years of absorption
}

// statisticsView is the display rendering of Statistics
type statisticsView struct {
	TotalTrips       int    `json:"totalTrips"`
	TotalDistance    string `json:"totalDistance"`
	TotalConsumption string `json:"totalConsumption"`
	AvgEfficiency    string `json:"avgEfficiency"`
	BestEfficiency   string `json:"bestEfficiency"`
	WorstEfficiency  string `json:"worstEfficiency"`
	AvgTripDistance  string `json:"avgTripDistance"`
	OdometerStart    int    `json:"odometerStart"`
	OdometerEnd      int    `json:"odometerEnd"`
	CarbonSaved      string `json:"carbonSaved"`
	TreesEquivalent  string `json:"treesEquivalent"`
	GasSaved         string `json:"gasSaved"`
}

// MarshalJSON renders numeric fields as fixed-precision strings
func (s Statistics) MarshalJSON() ([]byte, error) {
	return json.Marshal(statisticsView{
		TotalTrips:       s.TotalTrips,
		TotalDistance:    Fixed(s.TotalDistance, 2),
		TotalConsumption: Fixed(s.TotalConsumption, 2),
		AvgEfficiency:    Fixed(s.AvgEfficiency, 2),
		BestEfficiency:   Fixed(s.BestEfficiency, 2),
		WorstEfficiency:  Fixed(s.WorstEfficiency, 2),
		AvgTripDistance:  Fixed(s.AvgTripDistance, 2),
		OdometerStart:    s.OdometerStart,
		OdometerEnd:      s.OdometerEnd,
		CarbonSaved:      Fixed(s.CarbonSaved, 2),
		TreesEquivalent:  Fixed(s.TreesEquivalent, 1),
		GasSaved:         Fixed(s.GasSaved, 2),
	})
}

// Fixed formats v with the given number of decimals
func Fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
