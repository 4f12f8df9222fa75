package metrics

import "math"

// Overshoot is the largest excursion of the measurement past the
// setpoint, in the direction the setpoint last moved.
type Overshoot struct {
	name    string
	peak    float64
	prevSP  float64
	dir     float64
	samples int
}

func NewOvershoot() *Overshoot {
	return &Overshoot{name: "overshoot"}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(s Sample) {
	if o.samples > 0 && s.Setpoint != o.prevSP {
		o.dir = 1
		if s.Setpoint < o.prevSP {
			o.dir = -1
		}
		o.peak = 0
	}
	if o.dir != 0 {
		ex := o.dir * (s.PV - s.Setpoint)
		o.peak = math.Max(o.peak, ex)
	}
	o.prevSP = s.Setpoint
	o.samples++
}

func (o *Overshoot) Value() float64 { return o.peak }

func (o *Overshoot) Reset() {
	o.peak = 0
	o.prevSP = 0
	o.dir = 0
	o.samples = 0
}

// SettlingTime is the last time the measurement was outside a band
// around the final setpoint.
type SettlingTime struct {
	name    string
	band    float64
	samples []Sample
}

// NewSettlingTime uses band as an absolute tolerance around the final
// setpoint value.
func NewSettlingTime(band float64) *SettlingTime {
	return &SettlingTime{name: "settling_time", band: band}
}

func (st *SettlingTime) Name() string { return st.name }

func (st *SettlingTime) Observe(s Sample) {
	st.samples = append(st.samples, s)
}

func (st *SettlingTime) Value() float64 {
	if len(st.samples) == 0 {
		return 0
	}
	target := st.samples[len(st.samples)-1].Setpoint
	settled := st.samples[0].T
	for _, s := range st.samples {
		if math.Abs(s.PV-target) > st.band {
			settled = s.T
		}
	}
	return settled
}

func (st *SettlingTime) Reset() { st.samples = nil }
