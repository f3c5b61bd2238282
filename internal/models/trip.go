package models

import (
	"strconv"
	"strings"
)

// Source column names as produced by the journey log export
const (
	ColStartDate      = "Start Date"
	ColEndDate        = "End Date"
	ColStartAddress   = "Start Address"
	ColEndAddress     = "End Address"
	ColDistanceKm     = "Distance in KM"
	ColConsumptionKwh = "Consumption in Kwh"
	ColCategory       = "Category"
	ColStartLatitude  = "Start Latitude"
	ColStartLongitude = "Start Longitude"
	ColEndLatitude    = "End Latitude"
	ColEndLongitude   = "End Longitude"
	ColStartOdometer  = "Start Odometer"
	ColEndOdometer    = "End Odometer"
	ColTripType       = "Trip Type"
	ColSOCSource      = "SOC Source"
	ColSOCDestination = "SOC Destination"
	ColComments       = "Comments"
)

// Field defaults applied when the source cell is blank
const (
	DefaultCategory = "Uncategorized"
	DefaultTripType = "SINGLE"
)

// RawRow is one decoded spreadsheet/CSV row keyed by column name.
// Values may be strings, numbers, booleans or absent.
type RawRow map[string]any

// Trip represents one normalized journey record
type Trip struct {
	ID int `json:"id"`

	// Temporal info, "YYYY-MM-DD, HH:MM"
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	StartAddress string `json:"startAddress"`
	EndAddress   string `json:"endAddress"`

	// Energy and distance
	DistanceKm     float64 `json:"distanceKm"`
	ConsumptionKwh float64 `json:"consumptionKwh"`
	Efficiency     float64 `json:"efficiency"` // kWh/100km, rounded to 2 decimals

	Category string `json:"category"`

	// Coordinates, 0 means "no coordinate"
	StartLat float64 `json:"startLat"`
	StartLng float64 `json:"startLng"`
	EndLat   float64 `json:"endLat"`
	EndLng   float64 `json:"endLng"`

	StartOdometer int `json:"startOdometer"`
	EndOdometer   int `json:"endOdometer"`

	TripType string `json:"tripType"`

	// Battery state of charge, percent
	SocSource      int `json:"socSource"`
	SocDestination int `json:"socDestination"`
	SocDrop        int `json:"socDrop"` // may be negative when charging en route

	Comments string `json:"comments"`
}

// DatePart returns the date portion of StartDate (text before the first comma)
func (t Trip) DatePart() string {
	return DatePart(t.StartDate)
}

// TimePart returns the trimmed time portion of StartDate, or "" when absent
func (t Trip) TimePart() string {
	_, after, ok := strings.Cut(t.StartDate, ",")
	if !ok {
		return ""
	}
	return strings.TrimSpace(after)
}

// FormattedEfficiency renders efficiency the way it is displayed and exported
func (t Trip) FormattedEfficiency() string {
	return strconv.FormatFloat(t.Efficiency, 'f', 2, 64)
}

// HasStartCoordinates reports whether both start coordinates are set
func (t Trip) HasStartCoordinates() bool {
	return t.StartLat != 0 && t.StartLng != 0
}

// HasCoordinates reports whether all four coordinates are set
func (t Trip) HasCoordinates() bool {
	return t.HasStartCoordinates() && t.EndLat != 0 && t.EndLng != 0
}

// DatePart returns the text before the first comma of a "date, time" value
func DatePart(s string) string {
	before, _, _ := strings.Cut(s, ",")
	return strings.TrimSpace(before)
}
