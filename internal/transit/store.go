// ============================================================================
// TRANSIT NETWORK STORE - SafarLahore
// ============================================================================
// Read-only accessor for the Lahore transit network reference data:
// stops, routes, ordered route-stop sequences and walking transfers.
// Also hosts the geospatial stop index: the primary substrate is a SQL
// haversine query with a bounding-box prefilter; if that fails, it
// degrades to a linear scan over all stops with identical results.
// ============================================================================

package transit

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/yourorg/safarlahore/internal/cache"
	"github.com/yourorg/safarlahore/internal/geo"
	"github.com/yourorg/safarlahore/internal/models"
)

// ErrStopNotFound is returned when a stop identifier does not exist.
// This is the only lookup failure surfaced to API callers.
var ErrStopNotFound = errors.New("stop not found")

// Store reads the transit network from MariaDB. Safe for unlimited
// concurrent readers; the network is mutated only by the seed tooling.
type Store struct {
	db *sql.DB
}

// NewStore creates a network store over an open DB connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetStop returns one stop by id, or ErrStopNotFound.
func (s *Store) GetStop(id string) (*models.Stop, error) {
	if cache.StopsCache != nil {
		if v, found := cache.StopsCache.Get("stop:" + id); found {
			stop := v.(models.Stop)
			return &stop, nil
		}
	}

	var stop models.Stop
	var line sql.NullString
	err := s.db.QueryRow(`
		SELECT id, name, line, latitude, longitude, type, is_station
		FROM stops WHERE id = ?
	`, id).Scan(&stop.ID, &stop.Name, &line, &stop.Latitude, &stop.Longitude, &stop.Type, &stop.IsStation)
	if err == sql.ErrNoRows {
		return nil, ErrStopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query stop %s: %w", id, err)
	}
	stop.Line = line.String

	if cache.StopsCache != nil {
		cache.StopsCache.Set("stop:"+id, stop)
	}

	return &stop, nil
}

// ListStops returns every stop in the network.
func (s *Store) ListStops() ([]models.Stop, error) {
	if cache.StopsCache != nil {
		if v, found := cache.StopsCache.Get("stops:all"); found {
			return v.([]models.Stop), nil
		}
	}

	rows, err := s.db.Query(`
		SELECT id, name, line, latitude, longitude, type, is_station
		FROM stops ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query stops: %w", err)
	}
	defer rows.Close()

	var stops []models.Stop
	for rows.Next() {
		var stop models.Stop
		var line sql.NullString
		if err := rows.Scan(&stop.ID, &stop.Name, &line, &stop.Latitude, &stop.Longitude, &stop.Type, &stop.IsStation); err != nil {
			continue
		}
		stop.Line = line.String
		stops = append(stops, stop)
	}

	if cache.StopsCache != nil {
		cache.StopsCache.Set("stops:all", stops)
	}

	return stops, nil
}

// ListRoutes returns every route in the network.
func (s *Store) ListRoutes() ([]models.Route, error) {
	if cache.RoutesCache != nil {
		if v, found := cache.RoutesCache.Get("routes:all"); found {
			return v.([]models.Route), nil
		}
	}

	rows, err := s.db.Query(`
		SELECT id, name, line, transport_type, color
		FROM routes ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var route models.Route
		var line, color sql.NullString
		if err := rows.Scan(&route.ID, &route.Name, &line, &route.TransportType, &color); err != nil {
			continue
		}
		route.Line = line.String
		route.Color = color.String
		routes = append(routes, route)
	}

	if cache.RoutesCache != nil {
		cache.RoutesCache.Set("routes:all", routes)
	}

	return routes, nil
}

// ListRouteStops returns a route's stops in stop_order, with the full
// stop embedded in each entry.
func (s *Store) ListRouteStops(routeID string) ([]models.RouteStop, error) {
	cacheKey := "route_stops:" + routeID
	if cache.RoutesCache != nil {
		if v, found := cache.RoutesCache.Get(cacheKey); found {
			return v.([]models.RouteStop), nil
		}
	}

	rows, err := s.db.Query(`
		SELECT rs.route_id, rs.stop_id, rs.stop_order,
		       st.id, st.name, st.line, st.latitude, st.longitude, st.type, st.is_station
		FROM route_stops rs
		JOIN stops st ON st.id = rs.stop_id
		WHERE rs.route_id = ?
		ORDER BY rs.stop_order
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("query route stops %s: %w", routeID, err)
	}
	defer rows.Close()

	var routeStops []models.RouteStop
	for rows.Next() {
		var rs models.RouteStop
		var line sql.NullString
		if err := rows.Scan(&rs.RouteID, &rs.StopID, &rs.StopOrder,
			&rs.Stop.ID, &rs.Stop.Name, &line, &rs.Stop.Latitude, &rs.Stop.Longitude, &rs.Stop.Type, &rs.Stop.IsStation); err != nil {
			continue
		}
		rs.Stop.Line = line.String
		routeStops = append(routeStops, rs)
	}

	if cache.RoutesCache != nil {
		cache.RoutesCache.Set(cacheKey, routeStops)
	}

	return routeStops, nil
}

// ListTransfers returns every recorded walking transfer.
func (s *Store) ListTransfers() ([]models.Transfer, error) {
	if cache.TransfersCache != nil {
		if v, found := cache.TransfersCache.Get("transfers:all"); found {
			return v.([]models.Transfer), nil
		}
	}

	rows, err := s.db.Query(`
		SELECT id, from_stop_id, to_stop_id, walking_distance_m, estimated_time_min
		FROM transfers
	`)
	if err != nil {
		return nil, fmt.Errorf("query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []models.Transfer
	for rows.Next() {
		var tr models.Transfer
		if err := rows.Scan(&tr.ID, &tr.FromStopID, &tr.ToStopID, &tr.WalkingDistanceM, &tr.EstimatedTimeMin); err != nil {
			continue
		}
		transfers = append(transfers, tr)
	}

	if cache.TransfersCache != nil {
		cache.TransfersCache.Set("transfers:all", transfers)
	}

	return transfers, nil
}

// FindNearest returns up to limit stops within radiusMeters of a point,
// ordered by distance ascending. Returns an empty slice, never an error,
// when nothing is within radius. A failure of the SQL substrate is
// logged and silently degrades to a linear scan with identical behavior.
func (s *Store) FindNearest(lat, lng float64, radiusMeters, limit int) ([]models.NearbyStop, error) {
	nearby, err := s.findNearestSQL(lat, lng, radiusMeters, limit)
	if err != nil {
		log.Printf("⚠️  Spatial query failed, degrading to linear scan: %v", err)
		return s.findNearestScan(lat, lng, radiusMeters, limit)
	}
	return nearby, nil
}

// findNearestSQL runs the haversine distance in SQL, prefiltered by an
// approximate bounding box (1 degree latitude ~ 111km).
func (s *Store) findNearestSQL(lat, lng float64, radiusMeters, limit int) ([]models.NearbyStop, error) {
	latDelta := float64(radiusMeters) / 111000.0
	lngDelta := float64(radiusMeters) / (111000.0 * math.Cos(lat*math.Pi/180))

	rows, err := s.db.Query(`
		SELECT id, name, line, latitude, longitude, type, is_station,
		       (6371000 * acos(
		           LEAST(1.0, GREATEST(-1.0,
		               cos(radians(?)) * cos(radians(latitude)) *
		               cos(radians(longitude) - radians(?)) +
		               sin(radians(?)) * sin(radians(latitude))
		           ))
		       )) AS distance
		FROM stops
		WHERE latitude BETWEEN ? AND ?
		  AND longitude BETWEEN ? AND ?
		HAVING distance <= ?
		ORDER BY distance
		LIMIT ?
	`,
		lat, lng, lat,
		lat-latDelta, lat+latDelta, lng-lngDelta, lng+lngDelta,
		radiusMeters, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nearby := make([]models.NearbyStop, 0, limit)
	for rows.Next() {
		var ns models.NearbyStop
		var line sql.NullString
		if err := rows.Scan(&ns.ID, &ns.Name, &line, &ns.Latitude, &ns.Longitude, &ns.Type, &ns.IsStation, &ns.DistanceM); err != nil {
			continue
		}
		ns.Line = line.String
		nearby = append(nearby, ns)
	}

	return nearby, nil
}

// findNearestScan is the fallback: great-circle distance against every
// stop, filtered, sorted and truncated.
func (s *Store) findNearestScan(lat, lng float64, radiusMeters, limit int) ([]models.NearbyStop, error) {
	stops, err := s.ListStops()
	if err != nil {
		return nil, err
	}
	return nearestByScan(stops, lat, lng, radiusMeters, limit), nil
}

// nearestByScan implements the linear-scan stop index over an in-memory
// stop list. Behavior matches the SQL path modulo floating-point noise.
func nearestByScan(stops []models.Stop, lat, lng float64, radiusMeters, limit int) []models.NearbyStop {
	nearby := make([]models.NearbyStop, 0, limit)
	for _, stop := range stops {
		d := geo.Haversine(lat, lng, stop.Latitude, stop.Longitude)
		if d <= float64(radiusMeters) {
			nearby = append(nearby, models.NearbyStop{Stop: stop, DistanceM: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceM < nearby[j].DistanceM
	})

	if len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby
}
