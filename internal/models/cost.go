package models

// CostParams represents charging cost parameters bound from the query string
type CostParams struct {
	ElectricityRate     *float64 `form:"rate" binding:"omitempty,gte=0"`
	HomeChargingPercent *float64 `form:"homePercent" binding:"omitempty,gte=0,lte=100"`
	Currency            string   `form:"currency" binding:"omitempty,oneof=USD EUR GBP CAD AUD"`
	Country             string   `form:"country"`
}

// CostEstimate is the estimated charging cost for a set of trips
type CostEstimate struct {
	Currency           string  `json:"currency"`
	Symbol             string  `json:"symbol"`
	ElectricityRate    float64 `json:"electricityRate"`
	HomeChargingPct    float64 `json:"homeChargingPercent"`
	HomeChargingCost   float64 `json:"homeChargingCost"`
	PublicChargingCost float64 `json:"publicChargingCost"`
	TotalCost          float64 `json:"totalCost"`
	AvgPerTrip         float64 `json:"avgPerTrip"`
	AvgPerKm           float64 `json:"avgPerKm"`
}
