// ============================================================================
// TRANSIT GRAPH BUILDER - SafarLahore
// ============================================================================
// Compiles the transit network into an in-memory weighted directed graph:
// one edge per consecutive route-stop pair, one edge pair per recorded
// walking transfer. Edge weights are scaled by the routing preference, so
// a graph is specific to one preference and immutable once built.
// ============================================================================

package routing

import (
	"fmt"

	"github.com/yourorg/safarlahore/internal/config"
	"github.com/yourorg/safarlahore/internal/geo"
	"github.com/yourorg/safarlahore/internal/models"
)

// NetworkStore is the slice of the transit store the routing core reads.
type NetworkStore interface {
	ListRoutes() ([]models.Route, error)
	ListRouteStops(routeID string) ([]models.RouteStop, error)
	ListTransfers() ([]models.Transfer, error)
	GetStop(id string) (*models.Stop, error)
	FindNearest(lat, lng float64, radiusMeters, limit int) ([]models.NearbyStop, error)
}

// Edge is a weighted directed connection between two stops.
type Edge struct {
	To               string
	Weight           float64 // preference-scaled minutes, search only
	BaseMinutes      int     // unscaled travel time shown to riders
	RouteID          string  // empty for transfers
	IsTransfer       bool
	WalkingDistanceM float64 // transfers only
}

// Graph is an ephemeral, preference-specific view of the network.
// It also carries the stop and route metadata the itinerary assembler
// needs, so assembly never goes back to the database.
type Graph struct {
	adj    map[string][]Edge
	stops  map[string]models.Stop
	routes map[string]models.Route
}

// Neighbors returns the outgoing edges of a stop.
func (g *Graph) Neighbors(stopID string) []Edge {
	return g.adj[stopID]
}

// EdgeBetween returns the edge used to travel between two adjacent
// stops, preferring the cheapest when several connect the same pair.
func (g *Graph) EdgeBetween(from, to string) (Edge, bool) {
	var best Edge
	found := false
	for _, e := range g.adj[from] {
		if e.To != to {
			continue
		}
		if !found || e.Weight < best.Weight {
			best = e
			found = true
		}
	}
	return best, found
}

// Stop returns the metadata of a stop present in the graph.
func (g *Graph) Stop(id string) (models.Stop, bool) {
	s, ok := g.stops[id]
	return s, ok
}

// Route returns the metadata of a route present in the graph.
func (g *Graph) Route(id string) (models.Route, bool) {
	r, ok := g.routes[id]
	return r, ok
}

// NodeCount returns the number of stops in the graph.
func (g *Graph) NodeCount() int {
	return len(g.stops)
}

func (g *Graph) addEdge(from string, e Edge) {
	g.adj[from] = append(g.adj[from], e)
}

func (g *Graph) addStop(s models.Stop) {
	if _, ok := g.stops[s.ID]; !ok {
		g.stops[s.ID] = s
	}
}

// BuildGraph compiles a fresh graph for one preference. Ride edges get
// weight = base travel time x ride multiplier; transfer edges get
// weight = recorded walking minutes x transfer multiplier, in both
// directions. Transfers are always penalized harder than riding.
func BuildGraph(store NetworkStore, pref models.Preference, w config.RoutingWeights) (*Graph, error) {
	g := &Graph{
		adj:    make(map[string][]Edge),
		stops:  make(map[string]models.Stop),
		routes: make(map[string]models.Route),
	}

	rideMult := rideMultiplier(pref, w)
	transferMult := transferMultiplier(pref, w)

	routes, err := store.ListRoutes()
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	for _, route := range routes {
		routeStops, err := store.ListRouteStops(route.ID)
		if err != nil {
			return nil, fmt.Errorf("build graph, route %s: %w", route.ID, err)
		}
		if len(routeStops) == 0 {
			continue
		}
		g.routes[route.ID] = route

		for i := 0; i < len(routeStops)-1; i++ {
			from := routeStops[i].Stop
			to := routeStops[i+1].Stop
			g.addStop(from)
			g.addStop(to)

			dist := geo.Haversine(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
			baseMinutes := geo.TravelMinutes(dist, route.TransportType)

			g.addEdge(from.ID, Edge{
				To:          to.ID,
				Weight:      float64(baseMinutes) * rideMult,
				BaseMinutes: baseMinutes,
				RouteID:     route.ID,
			})
		}
	}

	transfers, err := store.ListTransfers()
	if err != nil {
		return nil, fmt.Errorf("build graph, transfers: %w", err)
	}

	for _, tr := range transfers {
		if err := g.ensureStop(store, tr.FromStopID); err != nil {
			continue // stop no longer exists, skip the transfer
		}
		if err := g.ensureStop(store, tr.ToStopID); err != nil {
			continue
		}

		weight := float64(tr.EstimatedTimeMin) * transferMult
		g.addEdge(tr.FromStopID, Edge{
			To:               tr.ToStopID,
			Weight:           weight,
			BaseMinutes:      tr.EstimatedTimeMin,
			IsTransfer:       true,
			WalkingDistanceM: tr.WalkingDistanceM,
		})
		g.addEdge(tr.ToStopID, Edge{
			To:               tr.FromStopID,
			Weight:           weight,
			BaseMinutes:      tr.EstimatedTimeMin,
			IsTransfer:       true,
			WalkingDistanceM: tr.WalkingDistanceM,
		})
	}

	return g, nil
}

func (g *Graph) ensureStop(store NetworkStore, id string) error {
	if _, ok := g.stops[id]; ok {
		return nil
	}
	stop, err := store.GetStop(id)
	if err != nil {
		return err
	}
	g.addStop(*stop)
	return nil
}

// rideMultiplier scales in-vehicle time. least-transfers mildly rewards
// staying aboard the same route; least-walking applies a mild penalty.
func rideMultiplier(pref models.Preference, w config.RoutingWeights) float64 {
	switch pref {
	case models.PreferenceLeastWalking:
		return w.RideLeastWalking
	case models.PreferenceLeastTransfers:
		return w.RideLeastTransfers
	default:
		return w.RideFastest
	}
}

// transferMultiplier scales walking-transfer time. Much larger than the
// ride multipliers on purpose: walking between stops is always worse
// than staying on a vehicle.
func transferMultiplier(pref models.Preference, w config.RoutingWeights) float64 {
	switch pref {
	case models.PreferenceLeastWalking:
		return w.TransferLeastWalking
	case models.PreferenceLeastTransfers:
		return w.TransferLeastTransfers
	default:
		return w.TransferFastest
	}
}
