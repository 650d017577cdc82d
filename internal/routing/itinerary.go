package routing

import (
	"github.com/yourorg/safarlahore/internal/geo"
	"github.com/yourorg/safarlahore/internal/models"
)

// DirectWalk degrades a plan to a single walking leg between the raw
// coordinates. Used when no stops are nearby or no path connects the
// candidate stops.
func DirectWalk(origin, dest models.Coordinate) *models.PlannedRoute {
	distance := geo.Haversine(origin.Lat, origin.Lng, dest.Lat, dest.Lng)
	minutes := geo.WalkingMinutes(distance)
	if minutes < 1 {
		minutes = 1
	}

	return &models.PlannedRoute{
		EstimatedTime: minutes,
		Transfers:     0,
		Steps: []models.RouteStep{
			{
				Type:     models.StepWalk,
				From:     models.LabelCurrentLocation,
				To:       models.LabelDestination,
				Time:     minutes,
				Distance: distance,
			},
		},
		WalkingDistance: distance,
	}
}

// AssembleItinerary converts a stop-id path into typed legs. Consecutive
// edges on the same route merge into one leg; transfer edges become walk
// legs and count as transfers; boarding a different route after riding
// one also counts as a transfer. Walking legs to the first stop and from
// the last stop are attached when the journey starts or ends away from
// a stop.
func AssembleItinerary(path []string, origin, dest models.Coordinate, g *Graph) *models.PlannedRoute {
	if len(path) == 0 {
		return DirectWalk(origin, dest)
	}

	steps := []models.RouteStep{}
	totalTime := 0
	transfers := 0
	totalWalking := 0.0
	routeIDs := []string{}
	currentRouteID := ""

	// Walk from the origin to the first stop.
	if first, ok := g.Stop(path[0]); ok {
		walkDist := geo.Haversine(origin.Lat, origin.Lng, first.Latitude, first.Longitude)
		walkTime := geo.WalkingMinutes(walkDist)
		if walkTime > 0 {
			totalWalking += walkDist
			totalTime += walkTime
			steps = append(steps, models.RouteStep{
				Type:     models.StepWalk,
				From:     models.LabelCurrentLocation,
				To:       first.Name,
				Time:     walkTime,
				Distance: walkDist,
			})
		}
	}

	for i := 0; i < len(path)-1; i++ {
		edge, ok := g.EdgeBetween(path[i], path[i+1])
		if !ok {
			continue
		}
		fromStop, okFrom := g.Stop(path[i])
		toStop, okTo := g.Stop(path[i+1])
		if !okFrom || !okTo {
			continue
		}

		minutes := edge.BaseMinutes

		if edge.IsTransfer {
			transfers++
			totalWalking += edge.WalkingDistanceM
			totalTime += minutes
			currentRouteID = ""
			steps = append(steps, models.RouteStep{
				Type:     models.StepWalk,
				From:     fromStop.Name,
				To:       toStop.Name,
				Time:     minutes,
				Distance: edge.WalkingDistanceM,
			})
			continue
		}

		if edge.RouteID == "" {
			continue
		}

		if currentRouteID != edge.RouteID {
			// Boarding a new route; changing vehicles is a transfer.
			if currentRouteID != "" {
				transfers++
			}
			currentRouteID = edge.RouteID
			routeIDs = append(routeIDs, edge.RouteID)

			stepType := models.StepBus
			routeName := "Unknown Route"
			if route, ok := g.Route(edge.RouteID); ok {
				stepType = models.StepTypeFor(route.TransportType)
				routeName = route.Name
			}

			totalTime += minutes
			steps = append(steps, models.RouteStep{
				Type:  stepType,
				From:  fromStop.Name,
				To:    toStop.Name,
				Route: routeName,
				Time:  minutes,
			})
		} else {
			// Still aboard the same route: extend the open leg.
			last := &steps[len(steps)-1]
			last.To = toStop.Name
			last.Time += minutes
			totalTime += minutes
		}
	}

	// Walk from the last stop to the destination.
	if last, ok := g.Stop(path[len(path)-1]); ok {
		walkDist := geo.Haversine(last.Latitude, last.Longitude, dest.Lat, dest.Lng)
		walkTime := geo.WalkingMinutes(walkDist)
		if walkTime > 0 {
			totalWalking += walkDist
			totalTime += walkTime
			steps = append(steps, models.RouteStep{
				Type:     models.StepWalk,
				From:     last.Name,
				To:       models.LabelDestination,
				Time:     walkTime,
				Distance: walkDist,
			})
		}
	}

	return &models.PlannedRoute{
		EstimatedTime:   totalTime,
		Transfers:       transfers,
		Steps:           steps,
		WalkingDistance: totalWalking,
		RouteIDs:        dedupe(routeIDs),
	}
}

// dedupe removes duplicate route ids, preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
