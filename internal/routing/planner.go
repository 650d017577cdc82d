package routing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/yourorg/safarlahore/internal/config"
	"github.com/yourorg/safarlahore/internal/models"
	"github.com/yourorg/safarlahore/internal/transit"
)

// ErrNotEnoughWaypoints is returned when a waypoint plan carries fewer
// than two points.
var ErrNotEnoughWaypoints = errors.New("at least 2 waypoints are required")

// ExternalDirections is the external transit directions provider. The
// planner prefers it and falls back to the local network when it is
// unavailable, times out, or returns no transit route.
type ExternalDirections interface {
	PlanTransit(ctx context.Context, origin, dest models.Coordinate) (*models.PlannedRoute, error)
}

// Planner answers journey queries over the transit network.
type Planner struct {
	store    NetworkStore
	provider ExternalDirections
	weights  config.RoutingWeights
	snap     config.SnapConfig
	timeout  time.Duration

	mu     sync.RWMutex
	graphs map[models.Preference]*Graph
}

// NewPlanner wires the planner. provider may be nil, in which case
// every plan is computed locally.
func NewPlanner(store NetworkStore, provider ExternalDirections, cfg config.AppConfig) *Planner {
	return &Planner{
		store:    store,
		provider: provider,
		weights:  cfg.Weights,
		snap:     cfg.Snap,
		timeout:  time.Duration(cfg.Provider.TimeoutMS) * time.Millisecond,
		graphs:   make(map[models.Preference]*Graph),
	}
}

// PlanRoute plans a journey between two coordinates. The external
// provider is tried first; any provider failure degrades silently to
// the local network, never to an error.
func (p *Planner) PlanRoute(ctx context.Context, origin, dest models.Coordinate, pref models.Preference) *models.PlannedRoute {
	pref = pref.OrDefault()

	if p.provider != nil {
		providerCtx, cancel := context.WithTimeout(ctx, p.timeout)
		route, err := p.provider.PlanTransit(providerCtx, origin, dest)
		cancel()
		if err == nil && route != nil && len(route.Steps) > 0 {
			log.Printf("✅ Using external transit directions (%d steps)", len(route.Steps))
			return route
		}
		if err != nil {
			log.Printf("⚠️ External directions unavailable, falling back to local network: %v", err)
		}
	}

	return p.planLocal(origin, dest, pref)
}

// planLocal snaps both endpoints to nearby stops and runs the
// preference-weighted search over every candidate pair, keeping the
// best-scoring itinerary. No nearby stops or no connecting path
// degrades to a direct walk.
func (p *Planner) planLocal(origin, dest models.Coordinate, pref models.Preference) *models.PlannedRoute {
	originStops, err := p.store.FindNearest(origin.Lat, origin.Lng, p.snap.RadiusMeters, p.snap.MaxCandidates)
	if err != nil {
		log.Printf("⚠️ Stop snap failed near origin: %v", err)
	}
	destStops, err := p.store.FindNearest(dest.Lat, dest.Lng, p.snap.RadiusMeters, p.snap.MaxCandidates)
	if err != nil {
		log.Printf("⚠️ Stop snap failed near destination: %v", err)
	}
	if len(originStops) == 0 || len(destStops) == 0 {
		log.Printf("🚶 No stops within %dm, planning a direct walk", p.snap.RadiusMeters)
		return DirectWalk(origin, dest)
	}

	g, err := p.graphFor(pref)
	if err != nil {
		log.Printf("⚠️ Graph build failed, planning a direct walk: %v", err)
		return DirectWalk(origin, dest)
	}

	var best *models.PlannedRoute
	bestScore := 0.0
	for _, from := range originStops {
		for _, to := range destStops {
			if from.ID == to.ID {
				continue
			}
			path := ShortestPath(g, from.ID, to.ID)
			if len(path) == 0 {
				continue
			}
			candidate := AssembleItinerary(path, origin, dest, g)
			candidate.StartStopID = from.ID
			candidate.EndStopID = to.ID
			score := ScoreRoute(candidate, pref)
			if best == nil || score < bestScore {
				best = candidate
				bestScore = score
			}
		}
	}

	if best == nil {
		log.Printf("🚶 No transit path between candidate stops, planning a direct walk")
		return DirectWalk(origin, dest)
	}
	return best
}

// PlanBetweenStops plans a journey anchored at two known stops. The
// stop ids are resolved to coordinates and handed to the regular
// planning path, so the external provider is consulted here too.
// Unknown stop ids surface transit.ErrStopNotFound.
func (p *Planner) PlanBetweenStops(ctx context.Context, fromID, toID string, pref models.Preference) (*models.PlannedRoute, error) {
	from, err := p.store.GetStop(fromID)
	if err != nil {
		return nil, fmt.Errorf("origin stop %s: %w", fromID, err)
	}
	to, err := p.store.GetStop(toID)
	if err != nil {
		return nil, fmt.Errorf("destination stop %s: %w", toID, err)
	}

	origin := models.Coordinate{Lat: from.Latitude, Lng: from.Longitude}
	dest := models.Coordinate{Lat: to.Latitude, Lng: to.Longitude}
	return p.PlanRoute(ctx, origin, dest, pref), nil
}

// PlanWaypoints chains plans through an ordered list of points and
// merges the legs into one itinerary.
func (p *Planner) PlanWaypoints(ctx context.Context, points []models.Coordinate, pref models.Preference) (*models.PlannedRoute, error) {
	if len(points) < 2 {
		return nil, ErrNotEnoughWaypoints
	}
	pref = pref.OrDefault()

	merged := &models.PlannedRoute{}
	for i := 0; i < len(points)-1; i++ {
		leg := p.PlanRoute(ctx, points[i], points[i+1], pref)
		merged.EstimatedTime += leg.EstimatedTime
		merged.Transfers += leg.Transfers
		merged.WalkingDistance += leg.WalkingDistance
		merged.Steps = append(merged.Steps, leg.Steps...)
		merged.RouteIDs = append(merged.RouteIDs, leg.RouteIDs...)
		if i == 0 {
			merged.StartStopID = leg.StartStopID
		}
		merged.EndStopID = leg.EndStopID
	}
	merged.RouteIDs = dedupe(merged.RouteIDs)
	return merged, nil
}

// ScoreRoute ranks an itinerary under a preference. Lower is better.
// Fastest ranks by total minutes, least-walking by kilometres walked,
// least-transfers by transfer count with minutes as tie-breaker.
func ScoreRoute(route *models.PlannedRoute, pref models.Preference) float64 {
	switch pref {
	case models.PreferenceLeastWalking:
		return route.WalkingDistance / 1000.0
	case models.PreferenceLeastTransfers:
		return float64(route.Transfers)*1000.0 + float64(route.EstimatedTime)
	default:
		return float64(route.EstimatedTime)
	}
}

// graphFor returns the cached graph snapshot for a preference, building
// it on first use.
func (p *Planner) graphFor(pref models.Preference) (*Graph, error) {
	p.mu.RLock()
	g, ok := p.graphs[pref]
	p.mu.RUnlock()
	if ok {
		return g, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.graphs[pref]; ok {
		return g, nil
	}
	g, err := BuildGraph(p.store, pref, p.weights)
	if err != nil {
		return nil, err
	}
	log.Printf("🗺️ Built %s routing graph (%d stops)", pref, g.NodeCount())
	p.graphs[pref] = g
	return g, nil
}

// InvalidateGraphs drops every cached graph snapshot. Call after the
// network data changes.
func (p *Planner) InvalidateGraphs() {
	p.mu.Lock()
	p.graphs = make(map[models.Preference]*Graph)
	p.mu.Unlock()
}

// IsStopNotFound reports whether an error chain contains the unknown
// stop sentinel.
func IsStopNotFound(err error) bool {
	return errors.Is(err, transit.ErrStopNotFound)
}
