package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// TerminationCondition classifies the outcome of a solve.
type TerminationCondition string

const (
	Converged      TerminationCondition = "converged"
	IterationLimit TerminationCondition = "iteration_limit"
	Singular       TerminationCondition = "singular"
	Diverged       TerminationCondition = "diverged"
)

// Result reports the outcome of a solve. Non-convergence is not an error;
// callers check the condition explicitly.
type Result struct {
	Condition  TerminationCondition
	Iterations int
	Residual   float64
}

// OK reports whether the solve converged.
func (r Result) OK() bool { return r.Condition == Converged }

// Solver drives the free variables of a block until every active
// constraint instance is satisfied.
type Solver interface {
	Solve(b *Block) (Result, error)
}

// Newton is a damped Newton solver with a forward-difference Jacobian and
// a dense LU linear solve. It is square-system only: the free variable
// count must equal the active equation count.
type Newton struct {
	Tol     float64 // convergence tolerance on the max scaled residual
	MaxIter int
	MaxStep float64 // largest per-iteration update (inf norm), 0 disables
}

// NewNewton builds a solver from an option map in the keys "tol",
// "max_iter", and "max_step". Missing keys keep their defaults.
func NewNewton(options map[string]float64) *Newton {
	n := &Newton{Tol: 1e-6, MaxIter: 50}
	if v, ok := options["tol"]; ok {
		n.Tol = v
	}
	if v, ok := options["max_iter"]; ok {
		n.MaxIter = int(v)
	}
	if v, ok := options["max_step"]; ok {
		n.MaxStep = v
	}
	return n
}

type freeEntry struct {
	v *Var
	t float64
}

type eqInstance struct {
	c *Constraint
	t float64
}

// Solve gathers the free variable entries and active constraint instances
// under b and iterates until the scaled residual drops below Tol.
func (n *Newton) Solve(b *Block) (Result, error) {
	var xs []freeEntry
	for _, v := range b.Vars() {
		for _, t := range v.keys() {
			if !v.FixedAt(t) {
				xs = append(xs, freeEntry{v, t})
			}
		}
	}
	var eqs []eqInstance
	for _, c := range b.Constraints() {
		for _, t := range c.points {
			if c.ActiveAt(t) {
				eqs = append(eqs, eqInstance{c, t})
			}
		}
	}
	if len(xs) != len(eqs) {
		return Result{}, fmt.Errorf("%w: %d free variables, %d active equations on %s",
			ErrDegreesOfFreedom, len(xs), len(eqs), b.Name())
	}
	m := len(xs)
	if m == 0 {
		return Result{Condition: Converged}, nil
	}

	residAt := func(i int) float64 {
		e := eqs[i]
		return e.c.Residual(e.t) * e.c.ScalingFactorAt(e.t)
	}

	r := mat.NewVecDense(m, nil)
	jac := mat.NewDense(m, m, nil)
	step := mat.NewVecDense(m, nil)

	norm := math.Inf(1)
	for iter := 0; iter < n.MaxIter; iter++ {
		norm = 0
		for i := 0; i < m; i++ {
			ri := residAt(i)
			if math.IsNaN(ri) || math.IsInf(ri, 0) {
				return Result{Condition: Diverged, Iterations: iter, Residual: ri}, nil
			}
			r.SetVec(i, ri)
			norm = math.Max(norm, math.Abs(ri))
		}
		if norm < n.Tol {
			return Result{Condition: Converged, Iterations: iter, Residual: norm}, nil
		}

		// Forward-difference Jacobian, one column per free entry.
		for j, u := range xs {
			x0 := u.v.At(u.t)
			h := 1e-7 * (1 + math.Abs(x0))
			u.v.SetAt(u.t, x0+h)
			for i := 0; i < m; i++ {
				jac.Set(i, j, (residAt(i)-r.AtVec(i))/h)
			}
			u.v.SetAt(u.t, x0)
		}

		var lu mat.LU
		lu.Factorize(jac)
		if err := lu.SolveVecTo(step, false, r); err != nil {
			return Result{Condition: Singular, Iterations: iter, Residual: norm}, nil
		}

		scale := 1.0
		if n.MaxStep > 0 {
			s := 0.0
			for j := 0; j < m; j++ {
				s = math.Max(s, math.Abs(step.AtVec(j)))
			}
			if s > n.MaxStep {
				scale = n.MaxStep / s
			}
		}
		for j, u := range xs {
			u.v.SetAt(u.t, u.v.At(u.t)-scale*step.AtVec(j))
		}
	}
	return Result{Condition: IterationLimit, Iterations: n.MaxIter, Residual: norm}, nil
}
