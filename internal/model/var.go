package model

import "fmt"

// scalarKey indexes the single entry of a non-time-indexed Var.
const scalarKey = 0.0

// Var is a solver variable, optionally indexed by time. Each entry carries
// a value and a fixed flag; fixed entries are held constant by the solver,
// free entries are solved for.
type Var struct {
	name  string
	block *Block
	ts    *TimeSet // nil for a scalar
	value map[float64]float64
	fixed map[float64]bool
	sf    float64 // scaling factor annotation, 0 when unset
}

// NewVar declares a time-indexed variable on b, every entry free and
// initialized to init.
func (b *Block) NewVar(name string, ts *TimeSet, init float64) *Var {
	b.claim(name)
	v := &Var{
		name:  name,
		block: b,
		ts:    ts,
		value: make(map[float64]float64, ts.Len()),
		fixed: make(map[float64]bool, ts.Len()),
	}
	for _, t := range ts.points {
		v.value[t] = init
	}
	b.vars = append(b.vars, v)
	return v
}

// NewScalarVar declares a scalar variable on b, free and initialized to
// init.
func (b *Block) NewScalarVar(name string, init float64) *Var {
	b.claim(name)
	v := &Var{
		name:  name,
		block: b,
		value: map[float64]float64{scalarKey: init},
		fixed: map[float64]bool{},
	}
	b.vars = append(b.vars, v)
	return v
}

// Name returns the fully-qualified name of the variable.
func (v *Var) Name() string { return v.block.Name() + "." + v.name }

func (v *Var) keys() []float64 {
	if v.ts == nil {
		return []float64{scalarKey}
	}
	return v.ts.points
}

func (v *Var) check(t float64) {
	if _, ok := v.value[t]; !ok {
		panic(fmt.Sprintf("model: %s has no entry at t=%g", v.Name(), t))
	}
}

// At returns the value at time t.
func (v *Var) At(t float64) float64 {
	v.check(t)
	return v.value[t]
}

// SetAt sets the value at time t.
func (v *Var) SetAt(t, val float64) {
	v.check(t)
	v.value[t] = val
}

// SetAll sets every entry to val.
func (v *Var) SetAll(val float64) {
	for _, t := range v.keys() {
		v.value[t] = val
	}
}

// Value returns the value of a scalar variable.
func (v *Var) Value() float64 { return v.At(scalarKey) }

// Set sets the value of a scalar variable.
func (v *Var) Set(val float64) { v.SetAt(scalarKey, val) }

// FixAt holds the entry at time t constant at its current value.
func (v *Var) FixAt(t float64) {
	v.check(t)
	v.fixed[t] = true
}

// UnfixAt releases the entry at time t to the solver.
func (v *Var) UnfixAt(t float64) {
	v.check(t)
	delete(v.fixed, t)
}

// Fix holds every entry constant at its current value.
func (v *Var) Fix() {
	for _, t := range v.keys() {
		v.fixed[t] = true
	}
}

// Unfix releases every entry to the solver.
func (v *Var) Unfix() {
	for _, t := range v.keys() {
		delete(v.fixed, t)
	}
}

// FixedAt reports whether the entry at time t is fixed.
func (v *Var) FixedAt(t float64) bool {
	v.check(t)
	return v.fixed[t]
}

// Fixed reports whether every entry is fixed.
func (v *Var) Fixed() bool {
	for _, t := range v.keys() {
		if !v.fixed[t] {
			return false
		}
	}
	return true
}

// SetScalingFactor annotates the variable with a numeric scale factor.
func (v *Var) SetScalingFactor(sf float64) { v.sf = sf }

// ScalingFactor returns the annotated scale factor, 0 when unset.
func (v *Var) ScalingFactor() float64 { return v.sf }
