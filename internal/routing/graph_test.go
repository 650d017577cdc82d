package routing

import (
	"math"
	"testing"

	"github.com/yourorg/safarlahore/internal/config"
	"github.com/yourorg/safarlahore/internal/models"
)

func TestBuildGraphNodesAndRideEdges(t *testing.T) {
	store := newTestNetwork()
	g, err := BuildGraph(store, models.PreferenceFastest, config.Defaults().Weights)
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}

	if g.NodeCount() != 7 {
		t.Errorf("expected 7 stops in graph, got %d", g.NodeCount())
	}

	edge, ok := g.EdgeBetween("b1", "b2")
	if !ok {
		t.Fatal("expected a ride edge b1 -> b2")
	}
	if edge.IsTransfer {
		t.Error("b1 -> b2 should be a ride edge, not a transfer")
	}
	if edge.RouteID != "r-bus" {
		t.Errorf("expected route r-bus, got %q", edge.RouteID)
	}
	if edge.BaseMinutes != 7 {
		t.Errorf("expected 7 base minutes for a ~2.2km bus hop, got %d", edge.BaseMinutes)
	}
	if math.Abs(edge.Weight-7.0) > 1e-9 {
		t.Errorf("fastest keeps ride weight unscaled, got %.3f", edge.Weight)
	}

	// Route stops are ordered south to north; no reverse ride edge exists.
	if _, ok := g.EdgeBetween("b2", "b1"); ok {
		t.Error("did not expect a reverse ride edge b2 -> b1")
	}
}

func TestBuildGraphTransferEdgesAreSymmetric(t *testing.T) {
	store := newTestNetwork()
	g, err := BuildGraph(store, models.PreferenceFastest, config.Defaults().Weights)
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}

	out, ok := g.EdgeBetween("b2", "m2")
	if !ok {
		t.Fatal("expected transfer edge b2 -> m2")
	}
	back, ok := g.EdgeBetween("m2", "b2")
	if !ok {
		t.Fatal("expected transfer edge m2 -> b2")
	}

	if !out.IsTransfer || !back.IsTransfer {
		t.Error("both directions should be transfer edges")
	}
	if out.Weight != back.Weight {
		t.Errorf("transfer weights differ: %.3f vs %.3f", out.Weight, back.Weight)
	}
	if out.WalkingDistanceM != 170 || back.WalkingDistanceM != 170 {
		t.Errorf("transfer walking distance not preserved: %.0f / %.0f",
			out.WalkingDistanceM, back.WalkingDistanceM)
	}
	// fastest applies a 1.2x transfer penalty on 2 recorded minutes.
	if math.Abs(out.Weight-2.4) > 1e-9 {
		t.Errorf("expected transfer weight 2.4, got %.3f", out.Weight)
	}
}

func TestBuildGraphPreferenceScalesWeights(t *testing.T) {
	store := newTestNetwork()
	weights := config.Defaults().Weights

	cases := []struct {
		pref           models.Preference
		rideWeight     float64
		transferWeight float64
	}{
		{models.PreferenceFastest, 7.0, 2.4},
		{models.PreferenceLeastWalking, 7.7, 6.0},
		{models.PreferenceLeastTransfers, 6.3, 4.0},
	}

	for _, tc := range cases {
		g, err := BuildGraph(store, tc.pref, weights)
		if err != nil {
			t.Fatalf("BuildGraph(%s): %v", tc.pref, err)
		}
		ride, _ := g.EdgeBetween("b1", "b2")
		transfer, _ := g.EdgeBetween("b2", "m2")
		if math.Abs(ride.Weight-tc.rideWeight) > 1e-9 {
			t.Errorf("%s: ride weight %.3f, want %.3f", tc.pref, ride.Weight, tc.rideWeight)
		}
		if math.Abs(transfer.Weight-tc.transferWeight) > 1e-9 {
			t.Errorf("%s: transfer weight %.3f, want %.3f", tc.pref, transfer.Weight, tc.transferWeight)
		}
		// Scaling never touches the rider-facing minutes.
		if ride.BaseMinutes != 7 || transfer.BaseMinutes != 2 {
			t.Errorf("%s: base minutes changed: ride %d, transfer %d",
				tc.pref, ride.BaseMinutes, transfer.BaseMinutes)
		}
	}
}
