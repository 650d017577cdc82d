package models

// ============================================================================
// JOURNEY PLANNING TYPES
// ============================================================================
// Shapes produced by the planner and consumed by the narrator/frontend.
// A PlannedRoute is ephemeral: built per request, never persisted.

// Preference is a named weighting scheme applied when building graph
// edge weights and scoring candidate itineraries.
type Preference string

const (
	PreferenceFastest        Preference = "fastest"
	PreferenceLeastWalking   Preference = "least-walking"
	PreferenceLeastTransfers Preference = "least-transfers"
)

// Valid reports whether p is one of the known preferences.
func (p Preference) Valid() bool {
	switch p {
	case PreferenceFastest, PreferenceLeastWalking, PreferenceLeastTransfers:
		return true
	}
	return false
}

// OrDefault returns p, or "fastest" when empty/unknown.
func (p Preference) OrDefault() Preference {
	if p.Valid() {
		return p
	}
	return PreferenceFastest
}

// Endpoint labels used for itinerary legs that start or end at the
// rider's own coordinates rather than at a stop.
const (
	LabelCurrentLocation = "Current Location"
	LabelDestination     = "Destination"
)

// StepType tags one homogeneous leg of an itinerary.
type StepType string

const (
	StepWalk      StepType = "walk"
	StepBus       StepType = "bus"
	StepMetro     StepType = "metro"
	StepLightRail StepType = "light-rail"
	StepFeeder    StepType = "feeder"
	StepTrain     StepType = "train"
)

// StepTypeFor maps a route's transport category to the leg tag riders see.
// The Orange Line is kept as its own first-class light-rail category.
func StepTypeFor(t TransportType) StepType {
	switch t {
	case TransportMetro:
		return StepMetro
	case TransportOrangeLine:
		return StepLightRail
	case TransportFeeder:
		return StepFeeder
	case TransportTrain:
		return StepTrain
	case TransportBus:
		return StepBus
	default:
		return StepBus
	}
}

// RouteStep is one leg of a planned journey: a walk, or one uninterrupted
// ride on a single route.
type RouteStep struct {
	Type     StepType `json:"type"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Route    string   `json:"route,omitempty"`
	Time     int      `json:"time"`               // minutes
	Distance float64  `json:"distance,omitempty"` // meters, walking legs only
}

// PlannedRoute is a complete point-to-point itinerary.
// Leg durations always sum to EstimatedTime.
type PlannedRoute struct {
	EstimatedTime   int         `json:"estimatedTime"` // total minutes
	Transfers       int         `json:"transfers"`
	Steps           []RouteStep `json:"steps"`
	WalkingDistance float64     `json:"walkingDistance,omitempty"` // meters
	RouteIDs        []string    `json:"routeIds,omitempty"`
	StartStopID     string      `json:"startStopId,omitempty"`
	EndStopID       string      `json:"endStopId,omitempty"`
}

// Coordinate is a WGS84 geographic position.
type Coordinate struct {
	Lat float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

// PlanRouteRequest is the payload accepted by POST /api/transit/plan.
type PlanRouteRequest struct {
	Origin      Coordinate `json:"origin" validate:"required"`
	Destination Coordinate `json:"destination" validate:"required"`
	Preference  Preference `json:"preference" validate:"omitempty,oneof=fastest least-walking least-transfers"`
}

// PlanWaypointsRequest is the payload accepted by POST /api/transit/plan/waypoints.
// Waypoints are visited in the order given; they are never reordered.
type PlanWaypointsRequest struct {
	Waypoints  []Coordinate `json:"waypoints" validate:"required,min=2,dive"`
	Preference Preference   `json:"preference" validate:"omitempty,oneof=fastest least-walking least-transfers"`
}

// ErrorResponse is a simple error shape for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
