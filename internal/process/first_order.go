// Package process provides simple plant models and closed-loop flowsheet
// assembly for demonstrations. The plant is declared the same way the
// controller is: as constraints over the shared time set, solved
// simultaneously with the control law rather than stepped forward.
package process

import (
	"fmt"

	"github.com/san-kum/procsim/internal/model"
)

// FirstOrderConfig references the externally-owned input and measured
// variables and sets the plant parameters.
type FirstOrderConfig struct {
	Input *model.Var // actuator signal, required
	PV    *model.Var // measured variable, required
	Gain  float64    // static gain from input to pv
	Tau   float64    // time constant
	Bias  float64    // pv value at zero input
}

// FirstOrder is a first-order lag discretized with implicit Euler over the
// time set: tau*dpv/dt = gain*u + bias - pv. No constraint is generated at
// the first time point; its pv value is an initial condition.
type FirstOrder struct {
	blk     *model.Block
	ts      *model.TimeSet
	cfg     FirstOrderConfig
	Balance *model.Constraint
}

// NewFirstOrder builds the plant block under parent.
func NewFirstOrder(parent *model.Block, name string, ts *model.TimeSet, cfg FirstOrderConfig) (*FirstOrder, error) {
	if cfg.Input == nil || cfg.PV == nil {
		return nil, fmt.Errorf("%w: plant %q requires 'input' and 'pv'", model.ErrConfiguration, name)
	}
	if cfg.Tau <= 0 {
		return nil, fmt.Errorf("%w: plant %q requires tau > 0", model.ErrConfiguration, name)
	}
	blk := parent.NewChild(name)
	p := &FirstOrder{blk: blk, ts: ts, cfg: cfg}

	rest := ts.Points()[1:]
	p.Balance = blk.NewConstraintAt("balance", rest, func(t float64) float64 {
		tp := ts.Prev(t)
		dt := t - tp
		pv := cfg.PV.At(t)
		return pv - cfg.PV.At(tp) - dt*(cfg.Gain*cfg.Input.At(t)+cfg.Bias-pv)/cfg.Tau
	})
	return p, nil
}

// Block returns the underlying model block.
func (p *FirstOrder) Block() *model.Block { return p.blk }
