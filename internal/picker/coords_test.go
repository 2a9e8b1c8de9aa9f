package picker

import (
	"math"
	"testing"
)

func TestValidCoordinate(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"origin", 0, 0, true},
		{"nyc", 40.7128, -74.006, true},
		{"lat min", -90, 0, true},
		{"lat max", 90, 0, true},
		{"lng min", 0, -180, true},
		{"lng max", 0, 180, true},
		{"lat too low", -90.0001, 0, false},
		{"lat too high", 90.0001, 0, false},
		{"lng too low", 0, -180.0001, false},
		{"lng too high", 0, 180.0001, false},
		{"lat nan", math.NaN(), 0, false},
		{"lng nan", 0, math.NaN(), false},
		{"both nan", math.NaN(), math.NaN(), false},
		{"lat inf", math.Inf(1), 0, false},
		{"lng -inf", 0, math.Inf(-1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidCoordinate(tc.lat, tc.lng); got != tc.want {
				t.Errorf("ValidCoordinate(%v, %v) = %v, want %v", tc.lat, tc.lng, got, tc.want)
			}
			if got := (Coords{Lat: tc.lat, Lng: tc.lng}).Valid(); got != tc.want {
				t.Errorf("Coords.Valid(%v, %v) = %v, want %v", tc.lat, tc.lng, got, tc.want)
			}
		})
	}
}
