package validation

import (
	"fmt"
	"math"
)

// CoordinateError represents a coordinate validation failure.
type CoordinateError struct {
	Field   string
	Value   float64
	Message string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s: %s (value: %.6f)", e.Field, e.Message, e.Value)
}

// ValidateLatitude validates a latitude coordinate.
func ValidateLatitude(lat float64, fieldName string) error {
	if math.IsNaN(lat) {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lat,
			Message: "NaN value not allowed",
		}
	}

	if math.IsInf(lat, 0) {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lat,
			Message: "infinite value not allowed",
		}
	}

	if lat < -90 || lat > 90 {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lat,
			Message: "must be between -90 and 90",
		}
	}

	return nil
}

// ValidateLongitude validates a longitude coordinate.
func ValidateLongitude(lng float64, fieldName string) error {
	if math.IsNaN(lng) {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lng,
			Message: "NaN value not allowed",
		}
	}

	if math.IsInf(lng, 0) {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lng,
			Message: "infinite value not allowed",
		}
	}

	if lng < -180 || lng > 180 {
		return &CoordinateError{
			Field:   fieldName,
			Value:   lng,
			Message: "must be between -180 and 180",
		}
	}

	return nil
}

// ValidateCoordinatePair validates a (lat, lng) pair.
func ValidateCoordinatePair(lat, lng float64, prefix string) error {
	if err := ValidateLatitude(lat, prefix+"_lat"); err != nil {
		return err
	}

	if err := ValidateLongitude(lng, prefix+"_lng"); err != nil {
		return err
	}

	return nil
}

// ValidateLahoreRegion checks that coordinates fall inside the service
// area. Approximately: lat 31.2 to 31.8, lng 74.0 to 74.6.
func ValidateLahoreRegion(lat, lng float64) error {
	const (
		minLat = 31.2
		maxLat = 31.8
		minLng = 74.0
		maxLng = 74.6
	)

	if lat < minLat || lat > maxLat {
		return &CoordinateError{
			Field:   "latitude",
			Value:   lat,
			Message: fmt.Sprintf("outside the Lahore service area (%.1f to %.1f)", minLat, maxLat),
		}
	}

	if lng < minLng || lng > maxLng {
		return &CoordinateError{
			Field:   "longitude",
			Value:   lng,
			Message: fmt.Sprintf("outside the Lahore service area (%.1f to %.1f)", minLng, maxLng),
		}
	}

	return nil
}

// IsZeroCoordinate reports whether a coordinate is (0, 0).
func IsZeroCoordinate(lat, lng float64) bool {
	return lat == 0 && lng == 0
}
