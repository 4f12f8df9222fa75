package metrics

import (
	"math"
	"testing"
)

func TestIAEConstantError(t *testing.T) {
	m := NewIAE()
	// error of 0.5 held for 4 seconds
	for i := 0; i <= 4; i++ {
		m.Observe(Sample{T: float64(i), Setpoint: 1.0, PV: 0.5})
	}
	if math.Abs(m.Value()-2.0) > 1e-12 {
		t.Errorf("expected iae 2.0, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero iae after reset")
	}
}

func TestISESquaresError(t *testing.T) {
	m := NewISE()
	for i := 0; i <= 2; i++ {
		m.Observe(Sample{T: float64(i), Setpoint: 1.0, PV: 0.0})
	}
	if math.Abs(m.Value()-2.0) > 1e-12 {
		t.Errorf("expected ise 2.0, got %f", m.Value())
	}
}

func TestControlEffortSumsTravel(t *testing.T) {
	m := NewControlEffort()
	for i, out := range []float64{0.5, 0.7, 0.6, 0.9} {
		m.Observe(Sample{T: float64(i), Output: out})
	}
	// |0.2| + |-0.1| + |0.3|
	if math.Abs(m.Value()-0.6) > 1e-12 {
		t.Errorf("expected effort 0.6, got %f", m.Value())
	}
}

func TestOvershootAfterStep(t *testing.T) {
	m := NewOvershoot()
	samples := []Sample{
		{T: 0, Setpoint: 0.5, PV: 0.5},
		{T: 1, Setpoint: 0.6, PV: 0.5},
		{T: 2, Setpoint: 0.6, PV: 0.62},
		{T: 3, Setpoint: 0.6, PV: 0.65},
		{T: 4, Setpoint: 0.6, PV: 0.6},
	}
	for _, s := range samples {
		m.Observe(s)
	}
	if math.Abs(m.Value()-0.05) > 1e-12 {
		t.Errorf("expected overshoot 0.05, got %f", m.Value())
	}
}

func TestOvershootIgnoresUndershoot(t *testing.T) {
	m := NewOvershoot()
	samples := []Sample{
		{T: 0, Setpoint: 0.5, PV: 0.5},
		{T: 1, Setpoint: 0.6, PV: 0.4},
		{T: 2, Setpoint: 0.6, PV: 0.55},
	}
	for _, s := range samples {
		m.Observe(s)
	}
	if m.Value() != 0 {
		t.Errorf("expected zero overshoot, got %f", m.Value())
	}
}

func TestSettlingTime(t *testing.T) {
	m := NewSettlingTime(0.02)
	samples := []Sample{
		{T: 0, Setpoint: 0.6, PV: 0.5},
		{T: 1, Setpoint: 0.6, PV: 0.55},
		{T: 2, Setpoint: 0.6, PV: 0.59},
		{T: 3, Setpoint: 0.6, PV: 0.595},
		{T: 4, Setpoint: 0.6, PV: 0.6},
	}
	for _, s := range samples {
		m.Observe(s)
	}
	if m.Value() != 1 {
		t.Errorf("expected settling at t=1, got %f", m.Value())
	}
}

func TestSummarize(t *testing.T) {
	times := []float64{0, 1, 2}
	sp := []float64{1, 1, 1}
	pv := []float64{0.5, 0.5, 0.5}
	out := []float64{0, 0.5, 0.5}
	vals := Summarize(times, sp, pv, out, NewIAE(), NewControlEffort())
	if math.Abs(vals["iae"]-1.0) > 1e-12 {
		t.Errorf("expected iae 1.0, got %f", vals["iae"])
	}
	if math.Abs(vals["control_effort"]-0.5) > 1e-12 {
		t.Errorf("expected effort 0.5, got %f", vals["control_effort"])
	}
}
