// Package condenser provides a 0D NTU condenser unit model. The hot side
// condenses fully to saturated liquid at roughly constant temperature, so
// the cold side is always the limiting stream and the effectiveness
// reduces to 1 - exp(-NTU).
package condenser

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/procsim/internal/model"
)

// ErrUnfixChoice is returned when Initialize is asked to free a variable
// outside its fixed enumeration.
var ErrUnfixChoice = errors.New("condenser: free variable must be one of hot_flow, cold_flow, pressure")

// Valid Unfix selections for Initialize.
const (
	UnfixHotFlow  = "hot_flow"
	UnfixColdFlow = "cold_flow"
	UnfixPressure = "pressure"
)

// Config names the two sides and carries their control-volume
// configuration. The names become sub-block names and alias keys, so they
// must differ.
type Config struct {
	HotSideName  string // default "shell"
	ColdSideName string // default "tube"
	HotSide      VolumeConfig
	ColdSide     VolumeConfig
}

// Condenser couples a condensing hot side and a single-phase cold side
// through an NTU-method heat-transfer rate equation, a unit-level energy
// balance, and a saturated-liquid outlet constraint.
type Condenser struct {
	blk *model.Block
	ts  *model.TimeSet
	cfg Config

	HotSide  *ControlVolume
	ColdSide *ControlVolume
	sides    map[string]*ControlVolume

	U    *model.Var // overall heat transfer coefficient, time-indexed
	Area *model.Var

	McpMin        *model.Expr
	NTU           *model.Expr
	Effectiveness *model.Expr
	HeatTransfer  *model.Expr
	DeltaTIn      *model.Expr
	DeltaTOut     *model.Expr
	DeltaTNTU     *model.Expr

	UnitHeatBalance *model.Constraint
	HeatTransferEqn *model.Constraint
	SaturationEqn   *model.Constraint
}

// New builds a condenser named name under parent (nil for a root block).
func New(parent *model.Block, name string, ts *model.TimeSet, cfg Config) (*Condenser, error) {
	if cfg.HotSideName == "" {
		cfg.HotSideName = "shell"
	}
	if cfg.ColdSideName == "" {
		cfg.ColdSideName = "tube"
	}
	if cfg.HotSideName == cfg.ColdSideName {
		return nil, fmt.Errorf("%w: condenser hot and cold side cannot share the name %q",
			model.ErrConfiguration, cfg.HotSideName)
	}

	var blk *model.Block
	if parent == nil {
		blk = model.NewBlock(name)
	} else {
		blk = parent.NewChild(name)
	}
	c := &Condenser{blk: blk, ts: ts, cfg: cfg}

	// Design variables stay fixed; initialization adjusts a stream instead.
	c.U = blk.NewVar("overall_heat_transfer_coefficient", ts, 100.0)
	c.U.Fix()
	c.Area = blk.NewScalarVar("area", 1000.0)
	c.Area.Fix()

	var err error
	c.HotSide, err = newControlVolume(blk, cfg.HotSideName, ts, cfg.HotSide)
	if err != nil {
		return nil, err
	}
	c.ColdSide, err = newControlVolume(blk, cfg.ColdSideName, ts, cfg.ColdSide)
	if err != nil {
		return nil, err
	}
	// Alias table: the configured names plus the positional and role names
	// all resolve to the same control volume.
	c.sides = map[string]*ControlVolume{
		cfg.HotSideName:  c.HotSide,
		cfg.ColdSideName: c.ColdSide,
		"side_1":         c.HotSide,
		"side_2":         c.ColdSide,
		"hot_side":       c.HotSide,
		"cold_side":      c.ColdSide,
	}

	hotProps := cfg.HotSide.Properties
	coldProps := cfg.ColdSide.Properties

	c.UnitHeatBalance = blk.NewConstraint("unit_heat_balance", ts, func(t float64) float64 {
		return c.HotSide.Heat.At(t) + c.ColdSide.Heat.At(t)
	})

	c.DeltaTIn = blk.NewExpr("delta_temperature_in", ts, func(t float64) float64 {
		return c.HotSide.TIn.At(t) - c.ColdSide.TIn.At(t)
	})
	c.DeltaTOut = blk.NewExpr("delta_temperature_out", ts, func(t float64) float64 {
		return c.HotSide.TOut.At(t) - c.ColdSide.TOut.At(t)
	})
	c.DeltaTNTU = blk.NewExpr("delta_temperature_ntu", ts, func(t float64) float64 {
		return hotProps.TSat(c.HotSide.In.Pressure.At(t)) - c.ColdSide.TIn.At(t)
	})

	// The cold side limits heat transfer: the hot side changes phase at
	// nearly constant temperature.
	c.McpMin = blk.NewExpr("mcp_min", ts, func(t float64) float64 {
		return c.ColdSide.In.FlowMol.At(t) *
			coldProps.CpMolLiq(c.ColdSide.In.EnthMol.At(t), c.ColdSide.In.Pressure.At(t))
	})
	c.NTU = blk.NewExpr("ntu", ts, func(t float64) float64 {
		return c.U.At(t) * c.Area.Value() / c.McpMin.At(t)
	})
	c.Effectiveness = blk.NewExpr("effectiveness", ts, func(t float64) float64 {
		return 1 - math.Exp(-c.NTU.At(t))
	})
	c.HeatTransfer = blk.NewExpr("heat_transfer", ts, func(t float64) float64 {
		return c.Effectiveness.At(t) * c.McpMin.At(t) * c.DeltaTNTU.At(t)
	})

	c.HeatTransferEqn = blk.NewConstraint("heat_transfer_eqn", ts, func(t float64) float64 {
		return c.ColdSide.Heat.At(t) - c.HeatTransfer.At(t)
	})
	c.SaturationEqn = blk.NewConstraint("saturation_eqn", ts, func(t float64) float64 {
		return c.HotSide.Out.EnthMol.At(t) - hotProps.EnthMolSatLiq(c.HotSide.In.Pressure.At(t))
	})

	return c, nil
}

// Block returns the underlying model block.
func (c *Condenser) Block() *model.Block { return c.blk }

// Side resolves a control volume by any of its aliases: the configured
// side names, side_1/side_2, or hot_side/cold_side.
func (c *Condenser) Side(name string) (*ControlVolume, bool) {
	cv, ok := c.sides[name]
	return cv, ok
}

// SetInitialCondition zeroes and fixes the accumulation terms at the first
// time point of a dynamic model.
func (c *Condenser) SetInitialCondition() {
	t0 := c.ts.First()
	for _, cv := range []*ControlVolume{c.HotSide, c.ColdSide} {
		if cv.MaterialAcc == nil {
			continue
		}
		cv.MaterialAcc.SetAll(0)
		cv.EnergyAcc.SetAll(0)
		cv.MaterialAcc.FixAt(t0)
		cv.EnergyAcc.FixAt(t0)
	}
}

// InitOptions steers Initialize. The zero value selects hot_flow as the
// degree of freedom and the default Newton solver.
type InitOptions struct {
	HotState  map[string]float64 // inlet guesses for the hot side
	ColdState map[string]float64 // inlet guesses for the cold side

	// Unfix picks the one variable freed so the solver can satisfy the
	// saturation constraint: UnfixHotFlow, UnfixColdFlow, or UnfixPressure.
	Unfix string

	Solver        model.Solver
	SolverOptions map[string]float64 // used when Solver is nil
}

// Initialize drives the condenser to a feasible warm start. It records the
// caller's fixed/active specification, initializes both control volumes,
// frees the selected variable against the activated saturation constraint,
// solves, and restores the recorded specification on every exit path.
// Non-convergence is logged and reported in the result, never raised.
func (c *Condenser) Initialize(opts InitOptions) (model.Result, error) {
	unfix := opts.Unfix
	if unfix == "" {
		unfix = UnfixHotFlow
	}
	switch unfix {
	case UnfixHotFlow, UnfixColdFlow, UnfixPressure:
	default:
		return model.Result{}, fmt.Errorf("%w: got %q", ErrUnfixChoice, unfix)
	}

	log := slog.With("block", c.blk.Name())

	snap := model.Capture(c.blk)
	defer snap.Restore(c.blk)

	flags1 := c.HotSide.Initialize(opts.HotState)
	flags2 := c.ColdSide.Initialize(opts.ColdState)
	log.Info("initialization step 1 complete")

	c.SaturationEqn.Activate()
	t0 := c.ts.First()
	switch unfix {
	case UnfixPressure:
		c.HotSide.In.Pressure.UnfixAt(t0)
	case UnfixHotFlow:
		c.HotSide.In.FlowMol.UnfixAt(t0)
	case UnfixColdFlow:
		c.ColdSide.In.FlowMol.UnfixAt(t0)
	}

	solver := opts.Solver
	if solver == nil {
		solver = model.NewNewton(opts.SolverOptions)
	}
	res, err := solver.Solve(c.blk)
	if err != nil {
		log.Error("initialization solve failed", "err", err)
		c.HotSide.ReleaseState(flags1)
		c.ColdSide.ReleaseState(flags2)
		return res, err
	}
	if res.OK() {
		log.Info("initialization solve complete",
			"condition", res.Condition, "iterations", res.Iterations)
	} else {
		log.Warn("initialization solve did not converge",
			"condition", res.Condition, "residual", res.Residual)
	}

	c.HotSide.ReleaseState(flags1)
	c.ColdSide.ReleaseState(flags2)
	return res, nil
}

// CalculateScalingFactors annotates variables and constraints with default
// scale factors where none are set. Heat-related constraints inherit the
// cold-side heat variable's factor, the saturation constraint the hot
// outlet enthalpy's.
func (c *Condenser) CalculateScalingFactors() {
	if c.Area.ScalingFactor() == 0 {
		c.Area.SetScalingFactor(1e-2)
	}
	if c.U.ScalingFactor() == 0 {
		c.U.SetScalingFactor(1e-2)
	}

	heatSF := c.ColdSide.Heat.ScalingFactor()
	if heatSF == 0 {
		heatSF = 1e-3
		c.ColdSide.Heat.SetScalingFactor(heatSF)
	}
	enthSF := c.HotSide.Out.EnthMol.ScalingFactor()
	if enthSF == 0 {
		enthSF = 1e-4
		c.HotSide.Out.EnthMol.SetScalingFactor(enthSF)
	}
	for _, t := range c.ts.Points() {
		c.HeatTransferEqn.SetScalingFactorAt(t, heatSF)
		c.UnitHeatBalance.SetScalingFactorAt(t, heatSF)
		c.SaturationEqn.SetScalingFactorAt(t, enthSF)
	}
}

// Performance is the reporting view of the unit at one time point.
type Performance struct {
	Vars  map[string]float64
	Exprs map[string]float64
}

// PerformanceContents collects the reporting quantities at time t. The
// duty reported is the cold-side heat term.
func (c *Condenser) PerformanceContents(t float64) Performance {
	return Performance{
		Vars: map[string]float64{
			"HX Coefficient": c.U.At(t),
			"HX Area":        c.Area.Value(),
			"Heat Duty":      c.ColdSide.Heat.At(t),
		},
		Exprs: map[string]float64{
			"Delta T In":    c.DeltaTIn.At(t),
			"Delta T Out":   c.DeltaTOut.At(t),
			"NTU":           c.NTU.At(t),
			"Effectiveness": c.Effectiveness.At(t),
		},
	}
}
