// ============================================================================
// GEO UTILITIES - SafarLahore
// ============================================================================
// Great-circle distance and speed-based time estimates shared by the
// routing core, the stop index fallback and the seeding tooling.
// Travel times are estimates from average speeds, not timetables.
// ============================================================================

package geo

import (
	"math"

	"github.com/yourorg/safarlahore/internal/models"
)

const (
	// EarthRadiusM is the mean Earth radius used by the haversine formula.
	EarthRadiusM = 6371000.0

	// WalkingSpeedMPM is the assumed pedestrian speed (5 km/h) in m/min.
	WalkingSpeedMPM = 83.33

	// Average in-vehicle speeds in m/min.
	BusSpeedMPM   = 20.0 * 1000 / 60 // 20 km/h
	MetroSpeedMPM = 30.0 * 1000 / 60 // 30 km/h
	RailSpeedMPM  = 40.0 * 1000 / 60 // 40 km/h, Orange Line and trains
)

// Haversine returns the great-circle distance in meters between two
// WGS84 coordinates.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusM * c
}

// WalkingMinutes converts a distance to walking time, never less than
// one minute for a non-zero distance.
func WalkingMinutes(distanceM float64) int {
	if distanceM <= 0 {
		return 0
	}
	return atLeastOne(distanceM / WalkingSpeedMPM)
}

// SpeedFor returns the average speed in m/min for a transport category.
// Unknown categories ride at bus speed.
func SpeedFor(t models.TransportType) float64 {
	switch t {
	case models.TransportMetro:
		return MetroSpeedMPM
	case models.TransportOrangeLine, models.TransportTrain:
		return RailSpeedMPM
	default:
		return BusSpeedMPM
	}
}

// TravelMinutes estimates in-vehicle time between two stops of a route,
// never less than one minute.
func TravelMinutes(distanceM float64, t models.TransportType) int {
	return atLeastOne(distanceM / SpeedFor(t))
}

func atLeastOne(minutes float64) int {
	m := int(math.Round(minutes))
	if m < 1 {
		return 1
	}
	return m
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
