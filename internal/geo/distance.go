package geo

import (
	"math"
	"strconv"
)

// EarthRadiusMeters is the mean Earth radius used by DistanceMeters.
const EarthRadiusMeters = 6371e3

// Display thresholds for FormatDistance.
const (
	metersPerMile       = 1609.344
	meterDisplayCeiling = 950.0 // below this, show whole meters
	wholeMileThreshold  = 10.0  // at or above this, drop the decimal
)

// DistanceMeters returns the haversine great-circle distance between a and b.
func DistanceMeters(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)
	s1 := math.Sin(dLat / 2)
	s2 := math.Sin(dLon / 2)
	h := s1*s1 + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*s2*s2
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// FormatDistance renders a distance for display.
// Rules:
//   - under 950 m: whole meters, "412 m"
//   - under 10 mi: miles with one decimal, "3.4 mi"
//   - otherwise: whole miles, "27 mi"
func FormatDistance(m float64) string {
	if m < meterDisplayCeiling {
		return strconv.FormatFloat(math.Round(m), 'f', 0, 64) + " m"
	}
	mi := m / metersPerMile
	prec := 0
	if mi < wholeMileThreshold {
		prec = 1
	}
	return strconv.FormatFloat(mi, 'f', prec, 64) + " mi"
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
