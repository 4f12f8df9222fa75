package model

import "fmt"

// TimeSet is an ordered, finite set of time points shared by every
// time-indexed component on a flowsheet. Points are strictly increasing.
type TimeSet struct {
	points []float64
}

// NewTimeSet builds a time set from strictly increasing points.
func NewTimeSet(points ...float64) (*TimeSet, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: time set needs at least one point", ErrConfiguration)
	}
	for i := 1; i < len(points); i++ {
		if points[i] <= points[i-1] {
			return nil, fmt.Errorf("%w: time points must be strictly increasing", ErrConfiguration)
		}
	}
	ps := make([]float64, len(points))
	copy(ps, points)
	return &TimeSet{points: ps}, nil
}

// SteadyState returns the single-point time set used by steady models.
func SteadyState() *TimeSet {
	return &TimeSet{points: []float64{0}}
}

// Grid returns a uniform time set with steps+1 points over [0, horizon].
func Grid(horizon float64, steps int) (*TimeSet, error) {
	if horizon <= 0 || steps < 1 {
		return nil, fmt.Errorf("%w: grid needs horizon > 0 and steps >= 1", ErrConfiguration)
	}
	points := make([]float64, steps+1)
	for i := range points {
		points[i] = horizon * float64(i) / float64(steps)
	}
	return &TimeSet{points: points}, nil
}

func (ts *TimeSet) Len() int       { return len(ts.points) }
func (ts *TimeSet) First() float64 { return ts.points[0] }
func (ts *TimeSet) Last() float64  { return ts.points[len(ts.points)-1] }

// Points returns a copy of the time points in order.
func (ts *TimeSet) Points() []float64 {
	ps := make([]float64, len(ts.points))
	copy(ps, ts.points)
	return ps
}

func (ts *TimeSet) index(t float64) (int, bool) {
	for i, p := range ts.points {
		if p == t {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether t is a member of the set.
func (ts *TimeSet) Contains(t float64) bool {
	_, ok := ts.index(t)
	return ok
}

// Prev returns the point immediately before t under the set's order.
// It panics if t is the first point or not a member.
func (ts *TimeSet) Prev(t float64) float64 {
	i, ok := ts.index(t)
	if !ok {
		panic(fmt.Sprintf("model: time point %g not in time set", t))
	}
	if i == 0 {
		panic(fmt.Sprintf("model: time point %g has no predecessor", t))
	}
	return ts.points[i-1]
}
