package models

import (
	"encoding/json"
	"math"
)

// TimeSeriesPoint aggregates the trips of one calendar day
type TimeSeriesPoint struct {
	Date        string  `json:"date"`
	Distance    float64 `json:"distance"`
	Consumption float64 `json:"consumption"`
	Trips       int     `json:"trips"`
}

// EfficiencyPoint is one trip in the efficiency distribution
type EfficiencyPoint struct {
	Efficiency float64 `json:"efficiency"`
	Distance   float64 `json:"distance"`
}

// DistanceRange is a half-open distance bucket [Min, Max)
type DistanceRange struct {
	Range string  `json:"range"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"` // +Inf for the open-ended bucket
	Count int     `json:"count"`
}

// MarshalJSON renders the open-ended upper bound as null
func (r DistanceRange) MarshalJSON() ([]byte, error) {
	var upper *float64
	if !math.IsInf(r.Max, 1) {
		upper = &r.Max
	}
	return json.Marshal(struct {
		Range string   `json:"range"`
		Min   float64  `json:"min"`
		Max   *float64 `json:"max"`
		Count int      `json:"count"`
	}{r.Range, r.Min, upper, r.Count})
}

// SOCPoint is the state of charge of one recent trip
type SOCPoint struct {
	Trip     string `json:"trip"`
	StartSOC int    `json:"startSOC"`
	EndSOC   int    `json:"endSOC"`
	Drop     int    `json:"drop"`
}

// HourlyConsumption aggregates consumption by start hour
type HourlyConsumption struct {
	Hour             int     `json:"hour"`
	TotalConsumption float64 `json:"totalConsumption"`
	Trips            int     `json:"trips"`
	AvgConsumption   float64 `json:"avgConsumption"`
}

// Distance units
const (
	UnitKm    = "km"
	UnitMiles = "mi"
)

// KmPerMile converts miles to kilometers
const KmPerMile = 1.60934

// UnitFactor returns the km-per-unit factor for a distance unit.
// Unknown units fall back to kilometers.
func UnitFactor(unit string) float64 {
	if unit == UnitMiles {
		return KmPerMile
	}
	return 1
}

// NormalizeUnit maps any unit string onto a supported unit
func NormalizeUnit(unit string) string {
	if unit == UnitMiles {
		return UnitMiles
	}
	return UnitKm
}

// ChartQuery represents chart parameters bound from the query string
type ChartQuery struct {
	Unit          string   `form:"unit" binding:"omitempty,oneof=km mi"`
	Window        *int     `form:"window"` // days kept by the time series, <= 0 keeps all
	MinEfficiency *float64 `form:"minEfficiency"`
	MaxEfficiency *float64 `form:"maxEfficiency"`
	Count         *int     `form:"count"` // trips kept by the SOC series, <= 0 keeps all
}

// MapQuery represents map parameters bound from the query string
type MapQuery struct {
	Unit  string `form:"unit" binding:"omitempty,oneof=km mi"`
	Limit int    `form:"limit" binding:"omitempty,gte=0"` // 0 shows every trip
}
