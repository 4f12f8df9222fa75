package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewtonScalar(t *testing.T) {
	b := NewBlock("m")
	x := b.NewScalarVar("x", 1.0)
	b.NewScalarConstraint("square", func() float64 { return x.Value()*x.Value() - 4 })

	res, err := NewNewton(nil).Solve(b)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected convergence, got %s", res.Condition)
	}
	if math.Abs(x.Value()-2.0) > 1e-6 {
		t.Errorf("expected x=2, got %g", x.Value())
	}
}

func TestNewtonCoupled(t *testing.T) {
	b := NewBlock("m")
	x := b.NewScalarVar("x", 1.0)
	y := b.NewScalarVar("y", 1.0)
	b.NewScalarConstraint("c1", func() float64 { return x.Value() + y.Value() - 3 })
	b.NewScalarConstraint("c2", func() float64 { return x.Value()*y.Value() - 2 })

	res, err := NewNewton(map[string]float64{"tol": 1e-10, "max_iter": 100}).Solve(b)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected convergence, got %s after %d iterations", res.Condition, res.Iterations)
	}
	sum := x.Value() + y.Value()
	prod := x.Value() * y.Value()
	if math.Abs(sum-3) > 1e-8 || math.Abs(prod-2) > 1e-8 {
		t.Errorf("bad solution: x=%g y=%g", x.Value(), y.Value())
	}
}

func TestNewtonFixedVariablesHeld(t *testing.T) {
	b := NewBlock("m")
	x := b.NewScalarVar("x", 1.0)
	k := b.NewScalarVar("k", 3.0)
	k.Fix()
	b.NewScalarConstraint("lin", func() float64 { return k.Value()*x.Value() - 6 })

	res, err := NewNewton(nil).Solve(b)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !res.OK() {
		t.Fatalf("expected convergence, got %s", res.Condition)
	}
	if k.Value() != 3.0 {
		t.Errorf("fixed variable moved: %g", k.Value())
	}
	if math.Abs(x.Value()-2.0) > 1e-6 {
		t.Errorf("expected x=2, got %g", x.Value())
	}
}

func TestNewtonDegreesOfFreedom(t *testing.T) {
	b := NewBlock("m")
	b.NewScalarVar("x", 1.0)
	b.NewScalarVar("y", 1.0)
	b.NewScalarConstraint("only", func() float64 { return 0 })

	_, err := NewNewton(nil).Solve(b)
	if !errors.Is(err, ErrDegreesOfFreedom) {
		t.Errorf("expected degrees-of-freedom error, got %v", err)
	}
}

func TestNewtonIterationLimit(t *testing.T) {
	b := NewBlock("m")
	x := b.NewScalarVar("x", 5.0)
	// No real root: x^2 + 1 = 0 can never converge.
	b.NewScalarConstraint("none", func() float64 { return x.Value()*x.Value() + 1 })

	res, err := NewNewton(map[string]float64{"max_iter": 10}).Solve(b)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if res.OK() {
		t.Error("solve of infeasible system should not converge")
	}
}

func TestNewtonInactiveConstraintsIgnored(t *testing.T) {
	b := NewBlock("m")
	x := b.NewScalarVar("x", 1.0)
	b.NewScalarConstraint("keep", func() float64 { return x.Value() - 4 })
	off := b.NewScalarConstraint("off", func() float64 { return x.Value() - 100 })
	off.Deactivate()

	res, err := NewNewton(nil).Solve(b)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !res.OK() || math.Abs(x.Value()-4) > 1e-6 {
		t.Errorf("expected x=4, got %g (%s)", x.Value(), res.Condition)
	}
}
