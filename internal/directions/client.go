// ============================================================================
// External Transit Directions Client - SafarLahore
// ============================================================================
// HTTP client for a Google-Directions-compatible transit API. Responses
// are normalized into the planner's itinerary shape; the planner treats
// any failure here as a signal to fall back to the local network.
// ============================================================================

package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yourorg/safarlahore/internal/config"
	"github.com/yourorg/safarlahore/internal/models"
)

// ErrNoTransitRoute is returned when the provider answers but has no
// transit itinerary for the requested pair.
var ErrNoTransitRoute = errors.New("provider returned no transit route")

// Client talks to the external directions API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client from configuration. Returns nil when no
// base URL is configured, which disables the provider entirely.
func NewClient(cfg config.ProviderConfig) *Client {
	if cfg.BaseURL == "" {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ============================================================================
// WIRE STRUCTURES
// ============================================================================

type directionsResponse struct {
	Status string  `json:"status"`
	Routes []route `json:"routes"`
}

type route struct {
	Legs []leg `json:"legs"`
}

type leg struct {
	Duration textValue `json:"duration"`
	Distance textValue `json:"distance"`
	Steps    []step    `json:"steps"`
}

type step struct {
	TravelMode      string          `json:"travel_mode"` // "WALKING" | "TRANSIT"
	Duration        textValue       `json:"duration"`
	Distance        textValue       `json:"distance"`
	HTMLInstruction string          `json:"html_instructions"`
	TransitDetails  *transitDetails `json:"transit_details,omitempty"`
}

type transitDetails struct {
	DepartureStop stopInfo    `json:"departure_stop"`
	ArrivalStop   stopInfo    `json:"arrival_stop"`
	Line          transitLine `json:"line"`
	NumStops      int         `json:"num_stops"`
}

type stopInfo struct {
	Name string `json:"name"`
}

type transitLine struct {
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
	Vehicle   vehicle `json:"vehicle"`
}

type vehicle struct {
	Type string `json:"type"` // "BUS", "SUBWAY", "TRAM", ...
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"` // seconds for durations, meters for distances
}

// ============================================================================
// PLANNING
// ============================================================================

// PlanTransit requests a transit itinerary between two coordinates and
// normalizes it into the planner's shape.
func (c *Client) PlanTransit(ctx context.Context, origin, dest models.Coordinate) (*models.PlannedRoute, error) {
	u, err := url.Parse(c.baseURL + "/directions/json")
	if err != nil {
		return nil, fmt.Errorf("directions url: %w", err)
	}

	q := u.Query()
	q.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	q.Set("destination", fmt.Sprintf("%f,%f", dest.Lat, dest.Lng))
	q.Set("mode", "transit")
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("directions request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("directions error %d: %s", resp.StatusCode, string(body))
	}

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("directions decode: %w", err)
	}

	if dr.Status != "OK" || len(dr.Routes) == 0 || len(dr.Routes[0].Legs) == 0 {
		return nil, ErrNoTransitRoute
	}

	return normalize(dr.Routes[0].Legs[0]), nil
}

// normalize converts a provider leg into the itinerary shape used by
// the rest of the backend.
func normalize(l leg) *models.PlannedRoute {
	planned := &models.PlannedRoute{}

	for _, s := range l.Steps {
		minutes := secondsToMinutes(s.Duration.Value)

		if s.TravelMode == "TRANSIT" && s.TransitDetails != nil {
			td := s.TransitDetails
			// Boarding straight off another ride, with no walking leg
			// in between, is a transfer.
			if n := len(planned.Steps); n > 0 && planned.Steps[n-1].Type != models.StepWalk {
				planned.Transfers++
			}
			planned.Steps = append(planned.Steps, models.RouteStep{
				Type:  classifyLine(td.Line, td.Line.Vehicle.Type),
				From:  td.DepartureStop.Name,
				To:    td.ArrivalStop.Name,
				Route: lineLabel(td.Line),
				Time:  minutes,
			})
			planned.EstimatedTime += minutes
			continue
		}

		// Everything else is a walking leg.
		planned.Steps = append(planned.Steps, models.RouteStep{
			Type:     models.StepWalk,
			From:     walkLabel(s.HTMLInstruction),
			Time:     minutes,
			Distance: float64(s.Distance.Value),
		})
		planned.EstimatedTime += minutes
		planned.WalkingDistance += float64(s.Distance.Value)
	}

	relabelWalks(planned.Steps)
	return planned
}

// relabelWalks rewrites walking-leg endpoints so they line up with the
// stops around them: the first walk starts at the rider's location, the
// last walk ends at the destination, and walks bordering a ride take
// the adjacent stop's name.
func relabelWalks(steps []models.RouteStep) {
	for i := range steps {
		if steps[i].Type != models.StepWalk {
			continue
		}
		if i > 0 && steps[i-1].Type != models.StepWalk {
			steps[i].From = steps[i-1].To
		}
		if i < len(steps)-1 && steps[i+1].Type != models.StepWalk {
			steps[i].To = steps[i+1].From
		}
		if i == 0 {
			steps[i].From = models.LabelCurrentLocation
		}
		if i == len(steps)-1 {
			steps[i].To = models.LabelDestination
		}
	}
}

// classifyLine maps a provider line onto the local step taxonomy by
// keyword. Lahore's network names are distinctive enough for this:
// "Orange Line" is the light-rail, "Speedo"/"FRT" are feeder buses and
// "Metro" or "MTR" is the metrobus.
func classifyLine(line transitLine, vehicleType string) models.StepType {
	name := strings.ToLower(line.Name + " " + line.ShortName)

	switch {
	case strings.Contains(name, "orange"):
		return models.StepLightRail
	case strings.Contains(name, "feeder"), strings.Contains(name, "frt"), strings.Contains(name, "speedo"):
		return models.StepFeeder
	case strings.Contains(name, "metro"), strings.Contains(name, "mtr"):
		return models.StepMetro
	case strings.Contains(name, "train"):
		return models.StepTrain
	}

	switch vehicleType {
	case "SUBWAY", "METRO_RAIL":
		return models.StepMetro
	case "TRAM", "LIGHT_RAIL":
		return models.StepLightRail
	case "HEAVY_RAIL", "RAIL", "TRAIN":
		return models.StepTrain
	default:
		return models.StepBus
	}
}

func lineLabel(line transitLine) string {
	if line.Name != "" {
		return line.Name
	}
	return line.ShortName
}

// walkLabel strips the provider's HTML markup down to plain text.
func walkLabel(instruction string) string {
	if instruction == "" {
		return "Walk"
	}
	var b strings.Builder
	inTag := false
	for _, r := range instruction {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "Walk"
	}
	return out
}

func secondsToMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	m := int(math.Round(float64(seconds) / 60.0))
	if m < 1 {
		m = 1
	}
	return m
}
