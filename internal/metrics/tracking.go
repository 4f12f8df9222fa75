package metrics

import "math"

// IAE is the integral of the absolute setpoint tracking error,
// accumulated with the trapezoid rule.
type IAE struct {
	name    string
	sum     float64
	prevT   float64
	prevErr float64
	samples int
}

func NewIAE() *IAE {
	return &IAE{name: "iae"}
}

func (m *IAE) Name() string { return m.name }

func (m *IAE) Observe(s Sample) {
	err := math.Abs(s.Setpoint - s.PV)
	if m.samples > 0 {
		m.sum += 0.5 * (err + m.prevErr) * (s.T - m.prevT)
	}
	m.prevT = s.T
	m.prevErr = err
	m.samples++
}

func (m *IAE) Value() float64 { return m.sum }

func (m *IAE) Reset() {
	m.sum = 0
	m.prevT = 0
	m.prevErr = 0
	m.samples = 0
}

// ISE is the integral of the squared setpoint tracking error.
type ISE struct {
	name    string
	sum     float64
	prevT   float64
	prevErr float64
	samples int
}

func NewISE() *ISE {
	return &ISE{name: "ise"}
}

func (m *ISE) Name() string { return m.name }

func (m *ISE) Observe(s Sample) {
	err := s.Setpoint - s.PV
	sq := err * err
	if m.samples > 0 {
		m.sum += 0.5 * (sq + m.prevErr) * (s.T - m.prevT)
	}
	m.prevT = s.T
	m.prevErr = sq
	m.samples++
}

func (m *ISE) Value() float64 { return m.sum }

func (m *ISE) Reset() {
	m.sum = 0
	m.prevT = 0
	m.prevErr = 0
	m.samples = 0
}
