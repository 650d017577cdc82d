package directions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourorg/safarlahore/internal/config"
	"github.com/yourorg/safarlahore/internal/models"
)

var (
	testOrigin = models.Coordinate{Lat: 31.5497, Lng: 74.3436}
	testDest   = models.Coordinate{Lat: 31.5204, Lng: 74.3587}
)

const sampleResponse = `{
  "status": "OK",
  "routes": [{
    "legs": [{
      "duration": {"text": "34 mins", "value": 2040},
      "distance": {"text": "12 km", "value": 12000},
      "steps": [
        {
          "travel_mode": "WALKING",
          "duration": {"text": "5 mins", "value": 300},
          "distance": {"text": "400 m", "value": 400},
          "html_instructions": "Walk to <b>Qainchi Station</b>"
        },
        {
          "travel_mode": "TRANSIT",
          "duration": {"text": "22 mins", "value": 1320},
          "distance": {"text": "11 km", "value": 11000},
          "transit_details": {
            "departure_stop": {"name": "Qainchi"},
            "arrival_stop": {"name": "MAO College"},
            "line": {"name": "Metro Bus", "short_name": "MTR", "vehicle": {"type": "BUS"}},
            "num_stops": 12
          }
        },
        {
          "travel_mode": "WALKING",
          "duration": {"text": "7 mins", "value": 420},
          "distance": {"text": "600 m", "value": 600},
          "html_instructions": "Walk to destination"
        }
      ]
    }]
  }]
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.ProviderConfig{
		BaseURL:   srv.URL,
		APIKey:    "test-key",
		TimeoutMS: 2000,
	})
}

func TestNewClientDisabledWithoutBaseURL(t *testing.T) {
	if c := NewClient(config.ProviderConfig{}); c != nil {
		t.Error("expected nil client when no base URL is configured")
	}
}

func TestPlanTransitNormalizesResponse(t *testing.T) {
	var gotQuery map[string]string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"mode":   r.URL.Query().Get("mode"),
			"key":    r.URL.Query().Get("key"),
			"origin": r.URL.Query().Get("origin"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleResponse))
	})

	route, err := client.PlanTransit(context.Background(), testOrigin, testDest)
	if err != nil {
		t.Fatalf("PlanTransit: %v", err)
	}

	if gotQuery["mode"] != "transit" || gotQuery["key"] != "test-key" || gotQuery["origin"] == "" {
		t.Errorf("unexpected request query: %v", gotQuery)
	}

	wantTypes := []models.StepType{models.StepWalk, models.StepMetro, models.StepWalk}
	if len(route.Steps) != len(wantTypes) {
		t.Fatalf("expected %d steps, got %d: %+v", len(wantTypes), len(route.Steps), route.Steps)
	}
	for i, want := range wantTypes {
		if route.Steps[i].Type != want {
			t.Errorf("step %d type = %s, want %s", i, route.Steps[i].Type, want)
		}
	}

	if route.EstimatedTime != 5+22+7 {
		t.Errorf("estimated time = %d, want 34", route.EstimatedTime)
	}
	if route.WalkingDistance != 1000 {
		t.Errorf("walking distance = %.0f, want 1000", route.WalkingDistance)
	}
	if route.Transfers != 0 {
		t.Errorf("single transit leg means 0 transfers, got %d", route.Transfers)
	}

	transit := route.Steps[1]
	if transit.From != "Qainchi" || transit.To != "MAO College" || transit.Route != "Metro Bus" {
		t.Errorf("unexpected transit step: %+v", transit)
	}

	// Walking legs line up with the ride between them and the journey
	// endpoints.
	first, last := route.Steps[0], route.Steps[2]
	if first.From != models.LabelCurrentLocation || first.To != "Qainchi" {
		t.Errorf("first walk = %q -> %q, want %q -> %q",
			first.From, first.To, models.LabelCurrentLocation, "Qainchi")
	}
	if last.From != "MAO College" || last.To != models.LabelDestination {
		t.Errorf("last walk = %q -> %q, want %q -> %q",
			last.From, last.To, "MAO College", models.LabelDestination)
	}
}

func TestWalkLabel(t *testing.T) {
	cases := []struct {
		instruction string
		want        string
	}{
		{"Walk to <b>Qainchi Station</b>", "Walk to Qainchi Station"},
		{"Head <div style=\"font-size:0.9em\">north</div>", "Head north"},
		{"", "Walk"},
		{"<b></b>", "Walk"},
	}
	for _, tc := range cases {
		if got := walkLabel(tc.instruction); got != tc.want {
			t.Errorf("walkLabel(%q) = %q, want %q", tc.instruction, got, tc.want)
		}
	}
}

func TestPlanTransitNoRoute(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	})

	_, err := client.PlanTransit(context.Background(), testOrigin, testDest)
	if !errors.Is(err, ErrNoTransitRoute) {
		t.Errorf("expected ErrNoTransitRoute, got %v", err)
	}
}

func TestPlanTransitServerError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	if _, err := client.PlanTransit(context.Background(), testOrigin, testDest); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}

func TestPlanTransitContextCancellation(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(sampleResponse))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.PlanTransit(ctx, testOrigin, testDest); err == nil {
		t.Error("expected an error when the context deadline passes")
	}
}

func TestClassifyLine(t *testing.T) {
	cases := []struct {
		name        string
		shortName   string
		vehicleType string
		want        models.StepType
	}{
		{"Orange Line Metro Train", "OLMT", "TRAM", models.StepLightRail},
		{"Metro Bus", "MTR", "BUS", models.StepMetro},
		{"Speedo Feeder", "FRT01", "BUS", models.StepFeeder},
		{"Shalimar Express Train", "", "HEAVY_RAIL", models.StepTrain},
		{"Route 42", "", "BUS", models.StepBus},
		{"Line 9", "", "SUBWAY", models.StepMetro},
		{"City Loop", "", "LIGHT_RAIL", models.StepLightRail},
		{"", "", "", models.StepBus},
	}

	for _, tc := range cases {
		line := transitLine{Name: tc.name, ShortName: tc.shortName}
		if got := classifyLine(line, tc.vehicleType); got != tc.want {
			t.Errorf("classifyLine(%q/%q, %q) = %s, want %s",
				tc.name, tc.shortName, tc.vehicleType, got, tc.want)
		}
	}
}

func TestPlanTransitCountsTransfers(t *testing.T) {
	// Back-to-back rides are a transfer; a walking leg between rides
	// is a connection, not a transfer.
	threeLegResponse := `{
	  "status": "OK",
	  "routes": [{
	    "legs": [{
	      "steps": [
	        {"travel_mode": "TRANSIT", "duration": {"value": 600},
	         "transit_details": {"departure_stop": {"name": "A"}, "arrival_stop": {"name": "B"},
	          "line": {"name": "Metro Bus", "vehicle": {"type": "BUS"}}}},
	        {"travel_mode": "TRANSIT", "duration": {"value": 300},
	         "transit_details": {"departure_stop": {"name": "B"}, "arrival_stop": {"name": "C"},
	          "line": {"name": "Speedo Feeder", "vehicle": {"type": "BUS"}}}},
	        {"travel_mode": "WALKING", "duration": {"value": 120}, "distance": {"value": 150}},
	        {"travel_mode": "TRANSIT", "duration": {"value": 900},
	         "transit_details": {"departure_stop": {"name": "D"}, "arrival_stop": {"name": "E"},
	          "line": {"name": "Orange Line", "vehicle": {"type": "TRAM"}}}}
	      ]
	    }]
	  }]
	}`
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(threeLegResponse))
	})

	route, err := client.PlanTransit(context.Background(), testOrigin, testDest)
	if err != nil {
		t.Fatalf("PlanTransit: %v", err)
	}
	if route.Transfers != 1 {
		t.Errorf("only the back-to-back boarding is a transfer, got %d", route.Transfers)
	}
	if route.Steps[3].Type != models.StepLightRail {
		t.Errorf("Orange Line should classify as light-rail, got %s", route.Steps[3].Type)
	}

	// The connecting walk borders rides on both sides.
	walk := route.Steps[2]
	if walk.From != "C" || walk.To != "D" {
		t.Errorf("connecting walk = %q -> %q, want C -> D", walk.From, walk.To)
	}
}
