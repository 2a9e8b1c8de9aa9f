package picker

import "math"

// Coords is a latitude/longitude pair.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DefaultCenter is where the map starts before anything is chosen (NYC).
var DefaultCenter = Coords{Lat: 40.7128, Lng: -74.006}

const (
	DefaultZoom = 7
	SearchZoom  = 14
)

// ValidCoordinate is the single validity predicate shared by marker
// rendering, camera movement and form submission: both values finite,
// latitude in [-90, 90], longitude in [-180, 180].
func ValidCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func (c Coords) Valid() bool {
	return ValidCoordinate(c.Lat, c.Lng)
}

// ValidLatitude reports whether lat is finite and within [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) && lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lng is finite and within [-180, 180].
func ValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && !math.IsInf(lng, 0) && lng >= -180 && lng <= 180
}
