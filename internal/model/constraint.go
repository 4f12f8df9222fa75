package model

// Constraint is a named, time-indexed equality written in residual form:
// the solver drives residual(t) to zero for every active time point.
// A constraint may cover only part of the time set (see NewConstraintAt).
type Constraint struct {
	name     string
	block    *Block
	points   []float64
	residual func(t float64) float64
	active   map[float64]bool
	sf       map[float64]float64
}

// NewConstraint declares a constraint over every point of ts.
func (b *Block) NewConstraint(name string, ts *TimeSet, residual func(t float64) float64) *Constraint {
	return b.NewConstraintAt(name, ts.Points(), residual)
}

// NewConstraintAt declares a constraint over an explicit subset of time
// points, active by default.
func (b *Block) NewConstraintAt(name string, points []float64, residual func(t float64) float64) *Constraint {
	b.claim(name)
	c := &Constraint{
		name:     name,
		block:    b,
		points:   append([]float64(nil), points...),
		residual: residual,
		active:   make(map[float64]bool, len(points)),
		sf:       map[float64]float64{},
	}
	for _, t := range points {
		c.active[t] = true
	}
	b.cons = append(b.cons, c)
	return c
}

// NewScalarConstraint declares a single-instance constraint.
func (b *Block) NewScalarConstraint(name string, residual func() float64) *Constraint {
	return b.NewConstraintAt(name, []float64{scalarKey}, func(float64) float64 { return residual() })
}

// Name returns the fully-qualified name of the constraint.
func (c *Constraint) Name() string { return c.block.Name() + "." + c.name }

// Points returns the time points the constraint is declared over.
func (c *Constraint) Points() []float64 {
	return append([]float64(nil), c.points...)
}

// Residual evaluates the unscaled residual at time t.
func (c *Constraint) Residual(t float64) float64 { return c.residual(t) }

// Activate marks every instance active.
func (c *Constraint) Activate() {
	for _, t := range c.points {
		c.active[t] = true
	}
}

// Deactivate marks every instance inactive; inactive instances are ignored
// by the solver.
func (c *Constraint) Deactivate() {
	for _, t := range c.points {
		c.active[t] = false
	}
}

// ActiveAt reports whether the instance at time t is active.
func (c *Constraint) ActiveAt(t float64) bool { return c.active[t] }

// SetScalingFactorAt annotates the instance at time t with a numeric scale
// factor applied to its residual by the solver. Annotation never redefines
// the residual itself.
func (c *Constraint) SetScalingFactorAt(t, sf float64) { c.sf[t] = sf }

// ScalingFactorAt returns the scale factor at time t, 1 when unset.
func (c *Constraint) ScalingFactorAt(t float64) float64 {
	if sf, ok := c.sf[t]; ok && sf != 0 {
		return sf
	}
	return 1
}
