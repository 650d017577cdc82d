package models

// StopType classifies a boardable transit location.
type StopType string

const (
	StopTypeBus        StopType = "BUS_STOP"
	StopTypeMetro      StopType = "METRO"
	StopTypeOrangeLine StopType = "ORANGE_LINE"
	StopTypeFeeder     StopType = "FEEDER"
)

// TransportType classifies a transit route by vehicle category.
type TransportType string

const (
	TransportBus        TransportType = "BUS"
	TransportMetro      TransportType = "METRO"
	TransportOrangeLine TransportType = "ORANGE_LINE"
	TransportFeeder     TransportType = "FEEDER"
	TransportTrain      TransportType = "TRAIN"
)

// Stop is immutable reference data: a single boardable transit location.
// Created by network ingestion (cmd/cli seed), read-only to the routing core.
type Stop struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Line      string   `json:"line,omitempty" db:"line"`
	Latitude  float64  `json:"latitude" db:"latitude"`
	Longitude float64  `json:"longitude" db:"longitude"`
	Type      StopType `json:"type" db:"type"`
	IsStation bool     `json:"is_station" db:"is_station"`
}

// Route is an ordered sequence of stops served by one transit line.
type Route struct {
	ID            string        `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Line          string        `json:"line,omitempty" db:"line"`
	TransportType TransportType `json:"transport_type" db:"transport_type"`
	Color         string        `json:"color,omitempty" db:"color"`
}

// RouteStop links a stop into a route's ordered sequence.
// StopOrder is strictly increasing and unique within one route.
type RouteStop struct {
	RouteID   string `json:"route_id" db:"route_id"`
	StopID    string `json:"stop_id" db:"stop_id"`
	StopOrder int    `json:"stop_order" db:"stop_order"`
	Stop      Stop   `json:"stop"`
}

// Transfer is a recorded walking connection between two nearby stops
// (within ~500m). Distance and time are kept consistent with the fixed
// walking speed of ~83 m/min.
type Transfer struct {
	ID               string  `json:"id" db:"id"`
	FromStopID       string  `json:"from_stop_id" db:"from_stop_id"`
	ToStopID         string  `json:"to_stop_id" db:"to_stop_id"`
	WalkingDistanceM float64 `json:"walking_distance_m" db:"walking_distance_m"`
	EstimatedTimeMin int     `json:"estimated_time_min" db:"estimated_time_min"`
}

// NearbyStop is a stop annotated with its distance from a query point.
type NearbyStop struct {
	Stop
	DistanceM float64 `json:"distance_meters"`
}
