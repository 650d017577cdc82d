package routing

import (
	"sort"

	"github.com/yourorg/safarlahore/internal/geo"
	"github.com/yourorg/safarlahore/internal/models"
	"github.com/yourorg/safarlahore/internal/transit"
)

// fakeStore is an in-memory network used by the routing tests. The
// fixture is a small two-line network:
//
//	bus:   b1 --7m-- b2 --7m-- b3 --7m-- b4 --7m-- b5   (south to north)
//	metro:           m2 --------9m-------- m4
//	transfers:       b2<->m2 (2m)          b4<->m4 (2m)
//
// so the metro shortcut wins under fastest but loses once transfers
// are penalized.
type fakeStore struct {
	stops      map[string]models.Stop
	routes     []models.Route
	routeStops map[string][]models.RouteStop
	transfers  []models.Transfer

	listRoutesCalls int
}

func newTestNetwork() *fakeStore {
	s := &fakeStore{
		stops:      make(map[string]models.Stop),
		routeStops: make(map[string][]models.RouteStop),
	}

	busStops := []models.Stop{}
	for i := 1; i <= 5; i++ {
		stop := models.Stop{
			ID:        "b" + string(rune('0'+i)),
			Name:      "Bus Stop " + string(rune('0'+i)),
			Line:      "B-1",
			Latitude:  31.50 + 0.02*float64(i-1),
			Longitude: 74.30,
			Type:      models.StopTypeBus,
		}
		s.stops[stop.ID] = stop
		busStops = append(busStops, stop)
	}

	m2 := models.Stop{
		ID: "m2", Name: "Metro Station 2", Line: "M-1",
		Latitude: 31.52, Longitude: 74.3003,
		Type: models.StopTypeMetro, IsStation: true,
	}
	m4 := models.Stop{
		ID: "m4", Name: "Metro Station 4", Line: "M-1",
		Latitude: 31.56, Longitude: 74.3003,
		Type: models.StopTypeMetro, IsStation: true,
	}
	s.stops["m2"] = m2
	s.stops["m4"] = m4

	s.routes = []models.Route{
		{ID: "r-bus", Name: "Route B-1", Line: "B-1", TransportType: models.TransportBus},
		{ID: "r-metro", Name: "Metro Line", Line: "M-1", TransportType: models.TransportMetro},
	}
	for i, stop := range busStops {
		s.routeStops["r-bus"] = append(s.routeStops["r-bus"], models.RouteStop{
			RouteID: "r-bus", StopID: stop.ID, StopOrder: i + 1, Stop: stop,
		})
	}
	s.routeStops["r-metro"] = []models.RouteStop{
		{RouteID: "r-metro", StopID: "m2", StopOrder: 1, Stop: m2},
		{RouteID: "r-metro", StopID: "m4", StopOrder: 2, Stop: m4},
	}

	s.transfers = []models.Transfer{
		{ID: "t1", FromStopID: "b2", ToStopID: "m2", WalkingDistanceM: 170, EstimatedTimeMin: 2},
		{ID: "t2", FromStopID: "b4", ToStopID: "m4", WalkingDistanceM: 170, EstimatedTimeMin: 2},
	}

	return s
}

func (s *fakeStore) ListRoutes() ([]models.Route, error) {
	s.listRoutesCalls++
	return s.routes, nil
}

func (s *fakeStore) ListRouteStops(routeID string) ([]models.RouteStop, error) {
	return s.routeStops[routeID], nil
}

func (s *fakeStore) ListTransfers() ([]models.Transfer, error) {
	return s.transfers, nil
}

func (s *fakeStore) GetStop(id string) (*models.Stop, error) {
	stop, ok := s.stops[id]
	if !ok {
		return nil, transit.ErrStopNotFound
	}
	return &stop, nil
}

func (s *fakeStore) FindNearest(lat, lng float64, radiusMeters, limit int) ([]models.NearbyStop, error) {
	out := []models.NearbyStop{}
	for _, stop := range s.stops {
		d := geo.Haversine(lat, lng, stop.Latitude, stop.Longitude)
		if d <= float64(radiusMeters) {
			out = append(out, models.NearbyStop{Stop: stop, DistanceM: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceM < out[j].DistanceM })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
