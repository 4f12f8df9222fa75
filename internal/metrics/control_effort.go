package metrics

import "math"

// ControlEffort is the total actuator travel: the summed absolute change
// of the controller output over the trajectory.
type ControlEffort struct {
	name    string
	sum     float64
	prevOut float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{name: "control_effort"}
}

func (c *ControlEffort) Name() string { return c.name }

func (c *ControlEffort) Observe(s Sample) {
	if c.samples > 0 {
		c.sum += math.Abs(s.Output - c.prevOut)
	}
	c.prevOut = s.Output
	c.samples++
}

func (c *ControlEffort) Value() float64 { return c.sum }

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.prevOut = 0
	c.samples = 0
}
