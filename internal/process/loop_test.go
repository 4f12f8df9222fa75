package process

import (
	"math"
	"testing"

	"github.com/san-kum/procsim/internal/model"
)

func demoConfig() LoopConfig {
	return LoopConfig{
		Horizon:       30,
		Steps:         60,
		Setpoint:      0.5,
		SetpointStep:  0.6,
		StepTime:      2,
		Gain:          2,
		TimeI:         10,
		TimeD:         1,
		Lower:         0,
		Upper:         1,
		PlantGain:     1,
		PlantTau:      5,
		InitialPV:     0.5,
		InitialOutput: 0.5,
	}
}

func TestNewLoopValidation(t *testing.T) {
	cfg := demoConfig()
	cfg.Steps = 0
	if _, err := NewLoop(cfg); err == nil {
		t.Error("expected error for zero steps")
	}

	cfg = demoConfig()
	cfg.PlantTau = 0
	if _, err := NewLoop(cfg); err == nil {
		t.Error("expected error for zero time constant")
	}
}

func TestClosedLoopTracksSetpointStep(t *testing.T) {
	loop, err := NewLoop(demoConfig())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	res, err := loop.Solve(model.NewNewton(map[string]float64{"tol": 1e-8, "max_iter": 200}))
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected convergence, got %s (residual %g)", res.Condition, res.Residual)
	}

	_, pv, out := loop.Series()
	last := len(pv) - 1
	if math.Abs(pv[last]-0.6) > 0.02 {
		t.Errorf("pv should settle near 0.6, got %g", pv[last])
	}
	if pv[20] <= pv[4] {
		t.Errorf("pv should rise after the setpoint step: pv[4]=%g pv[20]=%g", pv[4], pv[20])
	}
	for i, u := range out {
		if u < -1e-3 || u > 1+1e-3 {
			t.Fatalf("output %g at sample %d escapes limits", u, i)
		}
	}
}

func TestFirstOrderSteadyState(t *testing.T) {
	ts, _ := model.NewTimeSet(0, 1000)
	fs := model.NewBlock("fs")
	u := fs.NewVar("u", ts, 0.3)
	pv := fs.NewVar("pv", ts, 0)
	u.Fix()
	pv.FixAt(0)

	_, err := NewFirstOrder(fs, "plant", ts, FirstOrderConfig{
		Input: u, PV: pv, Gain: 2, Tau: 1, Bias: 0.1,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	res, err := model.NewNewton(nil).Solve(fs)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected convergence, got %s", res.Condition)
	}
	// One huge implicit-Euler step lands on the static gain line.
	want := 2*0.3 + 0.1
	if math.Abs(pv.At(1000)-want) > 1e-3 {
		t.Errorf("steady pv = %g, want %g", pv.At(1000), want)
	}
}
