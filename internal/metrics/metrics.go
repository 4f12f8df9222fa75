// Package metrics computes control-loop performance measures from a
// solved trajectory.
package metrics

// Sample is one point of a closed-loop trajectory.
type Sample struct {
	T        float64
	Setpoint float64
	PV       float64
	Output   float64
}

// Metric accumulates a performance measure over trajectory samples.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Summarize feeds a trajectory through the given metrics and collects
// their values by name. The slices must have equal length.
func Summarize(times, sp, pv, out []float64, ms ...Metric) map[string]float64 {
	for i, t := range times {
		s := Sample{T: t, Setpoint: sp[i], PV: pv[i], Output: out[i]}
		for _, m := range ms {
			m.Observe(s)
		}
	}
	vals := make(map[string]float64, len(ms))
	for _, m := range ms {
		vals[m.Name()] = m.Value()
	}
	return vals
}
