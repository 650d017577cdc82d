package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/safarlahore/internal/config"
	"github.com/yourorg/safarlahore/internal/models"
	"github.com/yourorg/safarlahore/internal/routing"
	"github.com/yourorg/safarlahore/internal/transit"
)

// memStore is a two-stop, one-route network for handler tests.
type memStore struct{}

var (
	stopA = models.Stop{ID: "a", Name: "Kalma Chowk", Line: "Metro Bus",
		Latitude: 31.4940, Longitude: 74.2970, Type: models.StopTypeMetro, IsStation: true}
	stopB = models.Stop{ID: "b", Name: "Canal", Line: "Metro Bus",
		Latitude: 31.4980, Longitude: 74.3010, Type: models.StopTypeMetro, IsStation: true}
	routeMB = models.Route{ID: "mb", Name: "Metro Bus System", Line: "Metro Bus",
		TransportType: models.TransportMetro}
)

func (memStore) ListRoutes() ([]models.Route, error) { return []models.Route{routeMB}, nil }

func (memStore) ListRouteStops(routeID string) ([]models.RouteStop, error) {
	return []models.RouteStop{
		{RouteID: "mb", StopID: "a", StopOrder: 1, Stop: stopA},
		{RouteID: "mb", StopID: "b", StopOrder: 2, Stop: stopB},
	}, nil
}

func (memStore) ListTransfers() ([]models.Transfer, error) { return nil, nil }

func (memStore) GetStop(id string) (*models.Stop, error) {
	switch id {
	case "a":
		s := stopA
		return &s, nil
	case "b":
		s := stopB
		return &s, nil
	}
	return nil, transit.ErrStopNotFound
}

func (memStore) FindNearest(lat, lng float64, radiusMeters, limit int) ([]models.NearbyStop, error) {
	return []models.NearbyStop{{Stop: stopA}, {Stop: stopB}}, nil
}

func testApp() *fiber.App {
	planner := routing.NewPlanner(memStore{}, nil, config.Defaults())
	handler := NewTransitHandler(planner)

	app := fiber.New()
	app.Post("/api/transit/plan", handler.PlanRoute)
	app.Post("/api/transit/plan/waypoints", handler.PlanWaypoints)
	app.Get("/api/transit/plan/stops", handler.PlanBetweenStops)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestPlanRouteEndpoint(t *testing.T) {
	app := testApp()

	resp := postJSON(t, app, "/api/transit/plan", models.PlanRouteRequest{
		Origin:      models.Coordinate{Lat: 31.4940, Lng: 74.2970},
		Destination: models.Coordinate{Lat: 31.4980, Lng: 74.3010},
		Preference:  models.PreferenceFastest,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var route models.PlannedRoute
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(route.Steps) == 0 || route.EstimatedTime <= 0 {
		t.Errorf("expected a usable plan, got %+v", route)
	}
}

func TestPlanRouteEndpointRejectsBadCoordinates(t *testing.T) {
	app := testApp()

	resp := postJSON(t, app, "/api/transit/plan", models.PlanRouteRequest{
		Origin:      models.Coordinate{Lat: 99, Lng: 74.30},
		Destination: models.Coordinate{Lat: 31.50, Lng: 74.31},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for latitude 99", resp.StatusCode)
	}
}

func TestPlanWaypointsEndpointRejectsSinglePoint(t *testing.T) {
	app := testApp()

	resp := postJSON(t, app, "/api/transit/plan/waypoints", models.PlanWaypointsRequest{
		Waypoints: []models.Coordinate{{Lat: 31.50, Lng: 74.30}},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a single waypoint", resp.StatusCode)
	}
}

func TestPlanBetweenStopsEndpointUnknownStop(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest(http.MethodGet, "/api/transit/plan/stops?from=a&to=ghost", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for an unknown stop", resp.StatusCode)
	}
}

func TestPlanBetweenStopsEndpoint(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest(http.MethodGet, "/api/transit/plan/stops?from=a&to=b&preference=least-transfers", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var route models.PlannedRoute
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if route.StartStopID != "a" || route.EndStopID != "b" {
		t.Errorf("anchored at %s -> %s, want a -> b", route.StartStopID, route.EndStopID)
	}
}
