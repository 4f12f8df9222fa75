package tune

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/procsim/internal/process"
)

func baseScenario() process.LoopConfig {
	return process.LoopConfig{
		Horizon:       20,
		Steps:         40,
		Setpoint:      0.5,
		SetpointStep:  0.6,
		StepTime:      2,
		TimeD:         1,
		Lower:         0,
		Upper:         1,
		PlantGain:     1,
		PlantTau:      5,
		InitialPV:     0.5,
		InitialOutput: 0.5,
	}
}

func TestSearchRanksByIAE(t *testing.T) {
	g := &GridSearch{
		Gains:  []float64{0.5, 2.0},
		TimeIs: []float64{10.0, 40.0},
	}
	results, err := g.Search(context.Background(), baseScenario())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		if prev.Converged == cur.Converged && prev.IAE > cur.IAE {
			t.Errorf("candidates not ranked: %f before %f", prev.IAE, cur.IAE)
		}
	}
	best := results[0]
	if !best.Converged {
		t.Fatal("expected best candidate to converge")
	}
	if math.IsInf(best.IAE, 1) {
		t.Fatal("expected finite iae for best candidate")
	}
	// faster integral action tracks the step more tightly
	if best.TimeI != 10.0 {
		t.Errorf("expected best time_i 10, got %f", best.TimeI)
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := &GridSearch{Gains: []float64{1}, TimeIs: []float64{10}}
	if _, err := g.Search(ctx, baseScenario()); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestSearchSingleWorker(t *testing.T) {
	g := &GridSearch{
		Gains:   []float64{1.0},
		TimeIs:  []float64{10.0, 20.0},
		Workers: 1,
	}
	results, err := g.Search(context.Background(), baseScenario())
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(results))
	}
}
