package models

// GeoPoint is a latitude/longitude pair in degrees
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteFeature is a start to end route for one trip
type RouteFeature struct {
	TripID         int      `json:"tripId"`
	Start          GeoPoint `json:"start"`
	End            GeoPoint `json:"end"`
	Midpoint       GeoPoint `json:"midpoint"`
	Bearing        float64  `json:"bearing"`    // degrees clockwise from north
	Efficiency     float64  `json:"efficiency"` // in the requested unit
	Band           string   `json:"band"`
	StraightLineKm float64  `json:"straightLineKm"`
}

// DayLink connects the end of one trip to the start of the next on the same day
type DayLink struct {
	Day      string   `json:"day"`
	DayIndex int      `json:"dayIndex"`
	From     GeoPoint `json:"from"`
	To       GeoPoint `json:"to"`
}

// MapData is the map projection of a trip collection
type MapData struct {
	Center   GeoPoint       `json:"center"`
	Routes   []RouteFeature `json:"routes"`
	Heatmap  []GeoPoint     `json:"heatmap"`
	DayLinks []DayLink      `json:"dayLinks,omitempty"`
}

// Efficiency colour bands
const (
	BandGreen  = "green"
	BandYellow = "yellow"
	BandOrange = "orange"
	BandRed    = "red"
)
