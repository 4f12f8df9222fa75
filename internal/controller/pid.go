// Package controller provides time-indexed control-law blocks for
// equation-oriented flowsheets. Unlike a sampled feedback loop, a block
// here emits expressions and constraints over the whole time horizon; the
// solver determines the controller output trajectory simultaneously with
// the process it drives.
package controller

import (
	"fmt"

	"github.com/san-kum/procsim/internal/model"
	"github.com/san-kum/procsim/internal/smooth"
)

// Config selects the external variables a PID block acts on and its output
// limits. PV and Output are non-owning references to time-indexed
// variables owned elsewhere on the flowsheet.
type Config struct {
	PV     *model.Var // measured process variable, required
	Output *model.Var // controlled output variable, required
	Upper  float64    // output upper limit
	Lower  float64    // output lower limit

	// CalculateInitialIntegral back-solves the initial integral error from
	// the fixed output value at the first time point, so the output holds
	// its initial value exactly when the dynamic solve begins. When false
	// the block owns an ErrI0 variable the caller fixes instead.
	CalculateInitialIntegral bool
}

// DefaultConfig returns the default limits: output in [0, 1] with the
// initial integral error calculated.
func DefaultConfig() Config {
	return Config{Upper: 1.0, Lower: 0.0, CalculateInitialIntegral: true}
}

// PID is a proportional-integral-derivative control law in velocity-free
// positional form, with proportional and derivative action on the
// measurement only, trapezoidal integration of the error, and a smoothed
// clamp on the output. The output constraint is skipped at the first time
// point, whose externally fixed value seeds the integral term instead.
type PID struct {
	blk *model.Block
	ts  *model.TimeSet
	cfg Config

	Setpoint *model.Var
	Gain     *model.Var
	TimeI    *model.Var
	TimeD    *model.Var
	ErrD0    *model.Var
	ErrI0Var *model.Var // only when CalculateInitialIntegral is false

	Err                 *model.Expr
	PTerm               *model.Expr
	DTerm               *model.Expr
	ITerm               *model.Expr
	ErrD                *model.Expr
	ErrI                *model.Expr
	UnconstrainedOutput *model.Expr

	Low       *model.Param
	High      *model.Param
	SmoothEps *model.Param

	OutputConstraint *model.Constraint

	errI0 func() float64
}

// New builds a PID block named name under parent (nil for a root block).
// Construction fails if the PV or Output reference is missing.
func New(parent *model.Block, name string, ts *model.TimeSet, cfg Config) (*PID, error) {
	if cfg.PV == nil {
		return nil, fmt.Errorf("%w: controller %q requires 'pv'", model.ErrConfiguration, name)
	}
	if cfg.Output == nil {
		return nil, fmt.Errorf("%w: controller %q requires 'output'", model.ErrConfiguration, name)
	}

	var blk *model.Block
	if parent == nil {
		blk = model.NewBlock(name)
	} else {
		blk = parent.NewChild(name)
	}

	p := &PID{blk: blk, ts: ts, cfg: cfg}
	t0 := ts.First()
	pv := cfg.PV
	output := cfg.Output

	// Controller settings may change with time; they are inputs, so every
	// entry starts fixed.
	p.Setpoint = blk.NewVar("setpoint", ts, 0)
	p.Gain = blk.NewVar("gain", ts, 1)
	p.TimeI = blk.NewVar("time_i", ts, 1)
	p.TimeD = blk.NewVar("time_d", ts, 0)
	for _, v := range []*model.Var{p.Setpoint, p.Gain, p.TimeI, p.TimeD} {
		v.Fix()
	}

	// The initial derivative error is a fixed variable so a run can carry
	// on from the end of a previous time period.
	p.ErrD0 = blk.NewScalarVar("err_d0", 0)
	p.ErrD0.Fix()
	if !cfg.CalculateInitialIntegral {
		p.ErrI0Var = blk.NewScalarVar("err_i0", 0)
		p.ErrI0Var.Fix()
	}

	p.Err = blk.NewExpr("err", ts, func(t float64) float64 {
		return p.Setpoint.At(t) - pv.At(t)
	})
	// Proportional and derivative act on the measurement, so setpoint
	// changes do not spike them.
	p.PTerm = blk.NewExpr("pterm", ts, func(t float64) float64 { return -pv.At(t) })
	p.DTerm = blk.NewExpr("dterm", ts, func(t float64) float64 { return -pv.At(t) })
	p.ITerm = blk.NewExpr("iterm", ts, func(t float64) float64 { return p.Err.At(t) })

	p.Low = blk.NewParam("low", cfg.Lower)
	p.High = blk.NewParam("high", cfg.Upper)
	p.SmoothEps = blk.NewParam("smooth_eps", 1e-4)

	p.ErrD = blk.NewExpr("err_d", ts, func(t float64) float64 {
		if t == t0 {
			return p.ErrD0.Value()
		}
		tp := ts.Prev(t)
		return (p.DTerm.At(t) - p.DTerm.At(tp)) / (t - tp)
	})

	if cfg.CalculateInitialIntegral {
		// Solve the output law at t0 for the integral error, so the fixed
		// initial output is reproduced exactly and the controller does not
		// jump when the dynamic solve starts.
		e := blk.NewScalarExpr("err_i0", func() float64 {
			k0 := p.Gain.At(t0)
			return p.TimeI.At(t0) * (output.At(t0) -
				k0*p.PTerm.At(t0) -
				k0*p.TimeD.At(t0)*p.ErrD.At(t0)) / k0
		})
		p.errI0 = e.Value
	} else {
		p.errI0 = p.ErrI0Var.Value
	}

	p.ErrI = blk.NewExpr("err_i", ts, func(tEnd float64) float64 {
		sum := p.errI0()
		for _, t := range ts.Points() {
			if t <= t0 || t > tEnd {
				continue
			}
			tp := ts.Prev(t)
			sum += (p.ITerm.At(t) + p.ITerm.At(tp)) * (t - tp) / 2.0
		}
		return sum
	})

	p.UnconstrainedOutput = blk.NewExpr("unconstrained_output", ts, func(t float64) float64 {
		return p.Gain.At(t) * (p.PTerm.At(t) +
			p.ErrI.At(t)/p.TimeI.At(t) +
			p.TimeD.At(t)*p.ErrD.At(t))
	})

	// No constraint at t0: the first output value is an input there.
	rest := ts.Points()[1:]
	p.OutputConstraint = blk.NewConstraintAt("output_constraint", rest, func(t float64) float64 {
		return output.At(t) - smooth.Clamp(
			p.UnconstrainedOutput.At(t),
			p.Low.Value(), p.High.Value(), p.SmoothEps.Value())
	})

	return p, nil
}

// Block returns the underlying model block.
func (p *PID) Block() *model.Block { return p.blk }

// PV returns the referenced process variable.
func (p *PID) PV() *model.Var { return p.cfg.PV }

// Output returns the referenced controlled variable.
func (p *PID) Output() *model.Var { return p.cfg.Output }

// ErrI0 returns the initial integral error, either the back-solved value
// or the fixed ErrI0Var.
func (p *PID) ErrI0() float64 { return p.errI0() }

// SetTuning fixes gain, integral time, and derivative time to constant
// values over the whole horizon.
func (p *PID) SetTuning(gain, timeI, timeD float64) {
	p.Gain.SetAll(gain)
	p.TimeI.SetAll(timeI)
	p.TimeD.SetAll(timeD)
}
