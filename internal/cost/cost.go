// Package cost estimates charging cost from aggregate consumption.
package cost

import (
	"math"
	"strings"

	"github.com/jengzang/evjourney-backend-go/internal/models"
)

// Defaults applied when a parameter is not supplied
const (
	DefaultElectricityRate     = 0.13 // per kWh
	DefaultHomeChargingPercent = 80.0
	DefaultCurrency            = "USD"

	// PublicRateMultiplier is the public charger price relative to the home rate
	PublicRateMultiplier = 2.5
)

// CountryRate is an approximate residential electricity price
type CountryRate struct {
	Rate     float64
	Currency string
}

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "C$",
	"AUD": "A$",
}

var countryRates = map[string]CountryRate{
	"united states":        {0.16, "USD"},
	"canada":               {0.11, "CAD"},
	"united kingdom":       {0.35, "GBP"},
	"germany":              {0.38, "EUR"},
	"france":               {0.23, "EUR"},
	"spain":                {0.28, "EUR"},
	"italy":                {0.31, "EUR"},
	"netherlands":          {0.33, "EUR"},
	"belgium":              {0.30, "EUR"},
	"sweden":               {0.20, "EUR"},
	"norway":               {0.17, "EUR"},
	"denmark":              {0.36, "EUR"},
	"australia":            {0.25, "AUD"},
	"new zealand":          {0.23, "AUD"},
	"japan":                {0.26, "USD"},
	"south korea":          {0.11, "USD"},
	"china":                {0.08, "USD"},
	"india":                {0.08, "USD"},
	"brazil":               {0.15, "USD"},
	"mexico":               {0.09, "USD"},
	"argentina":            {0.05, "USD"},
	"chile":                {0.14, "USD"},
	"south africa":         {0.11, "USD"},
	"israel":               {0.17, "USD"},
	"switzerland":          {0.21, "EUR"},
	"austria":              {0.24, "EUR"},
	"poland":               {0.18, "EUR"},
	"portugal":             {0.27, "EUR"},
	"ireland":              {0.32, "EUR"},
	"finland":              {0.19, "EUR"},
	"turkey":               {0.10, "USD"},
	"united arab emirates": {0.08, "USD"},
	"saudi arabia":         {0.05, "USD"},
	"singapore":            {0.22, "USD"},
	"malaysia":             {0.08, "USD"},
	"thailand":             {0.11, "USD"},
	"indonesia":            {0.09, "USD"},
	"philippines":          {0.18, "USD"},
}

// RateForCountry looks up the electricity rate for a country name, case-insensitively
func RateForCountry(name string) (CountryRate, bool) {
	r, ok := countryRates[strings.ToLower(strings.TrimSpace(name))]
	return r, ok
}

// Symbol returns the display symbol of a currency code, or the code itself
func Symbol(currency string) string {
	if s, ok := symbols[currency]; ok {
		return s
	}
	return currency
}

// Estimate splits total consumption between home and public charging and prices it.
// Explicit rate and currency take precedence over the country table.
func Estimate(s *models.Statistics, params models.CostParams) models.CostEstimate {
	rate := DefaultElectricityRate
	currency := DefaultCurrency
	if cr, ok := RateForCountry(params.Country); ok {
		rate = cr.Rate
		currency = cr.Currency
	}
	if params.ElectricityRate != nil {
		rate = *params.ElectricityRate
	}
	if params.Currency != "" {
		currency = params.Currency
	}

	homePct := DefaultHomeChargingPercent
	if params.HomeChargingPercent != nil {
		homePct = *params.HomeChargingPercent
	}

	est := models.CostEstimate{
		Currency:        currency,
		Symbol:          Symbol(currency),
		ElectricityRate: rate,
		HomeChargingPct: homePct,
	}
	if s == nil {
		return est
	}

	homeKwh := s.TotalConsumption * homePct / 100
	publicKwh := s.TotalConsumption - homeKwh

	home := homeKwh * rate
	public := publicKwh * rate * PublicRateMultiplier
	total := home + public

	est.HomeChargingCost = round(home, 2)
	est.PublicChargingCost = round(public, 2)
	est.TotalCost = round(total, 2)
	if s.TotalTrips > 0 {
		est.AvgPerTrip = round(total/float64(s.TotalTrips), 2)
	}
	if s.TotalDistance > 0 {
		est.AvgPerKm = round(total/s.TotalDistance, 4)
	}
	return est
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
