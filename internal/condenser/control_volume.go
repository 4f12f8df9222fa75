package condenser

import (
	"fmt"

	"github.com/san-kum/procsim/internal/model"
	"github.com/san-kum/procsim/internal/props"
)

// VolumeConfig is the acquisition-time metadata for building one control
// volume: dynamics and holdup flags plus the property package handle.
type VolumeConfig struct {
	Dynamic    bool
	HasHoldup  bool
	Properties props.Package
}

// StreamState groups the time-indexed state variables of one stream
// terminal (flow in mol/s, molar enthalpy in J/mol, pressure in Pa).
type StreamState struct {
	FlowMol  *model.Var
	EnthMol  *model.Var
	Pressure *model.Var
}

// ControlVolume models one thermodynamic stream passing through a unit:
// inlet and outlet state, a heat term, and material/pressure/energy
// balances. Dynamic volumes additionally carry accumulation variables.
type ControlVolume struct {
	blk *model.Block
	ts  *model.TimeSet
	cfg VolumeConfig

	In   StreamState
	Out  StreamState
	Heat *model.Var

	MaterialAcc *model.Var // dynamic models only
	EnergyAcc   *model.Var

	TIn  *model.Expr
	TOut *model.Expr

	MaterialBalance *model.Constraint
	PressureBalance *model.Constraint
	EnergyBalance   *model.Constraint
}

func newControlVolume(parent *model.Block, name string, ts *model.TimeSet, cfg VolumeConfig) (*ControlVolume, error) {
	if cfg.Properties == nil {
		return nil, fmt.Errorf("%w: control volume %q requires a property package", model.ErrConfiguration, name)
	}
	blk := parent.NewChild(name)
	cv := &ControlVolume{blk: blk, ts: ts, cfg: cfg}

	in := blk.NewChild("properties_in")
	out := blk.NewChild("properties_out")
	cv.In = StreamState{
		FlowMol:  in.NewVar("flow_mol", ts, 1.0),
		EnthMol:  in.NewVar("enth_mol", ts, 1000.0),
		Pressure: in.NewVar("pressure", ts, 101325.0),
	}
	cv.Out = StreamState{
		FlowMol:  out.NewVar("flow_mol", ts, 1.0),
		EnthMol:  out.NewVar("enth_mol", ts, 1000.0),
		Pressure: out.NewVar("pressure", ts, 101325.0),
	}
	cv.Heat = blk.NewVar("heat", ts, 0.0)

	if cfg.Dynamic {
		cv.MaterialAcc = blk.NewVar("material_accumulation", ts, 0.0)
		cv.EnergyAcc = blk.NewVar("energy_accumulation", ts, 0.0)
	}

	pk := cfg.Properties
	cv.TIn = blk.NewExpr("temperature_in", ts, func(t float64) float64 {
		return pk.Temperature(cv.In.EnthMol.At(t), cv.In.Pressure.At(t))
	})
	cv.TOut = blk.NewExpr("temperature_out", ts, func(t float64) float64 {
		return pk.Temperature(cv.Out.EnthMol.At(t), cv.Out.Pressure.At(t))
	})

	cv.MaterialBalance = blk.NewConstraint("material_balance", ts, func(t float64) float64 {
		r := cv.In.FlowMol.At(t) - cv.Out.FlowMol.At(t)
		if cfg.Dynamic {
			r -= cv.MaterialAcc.At(t)
		}
		return r
	})
	cv.PressureBalance = blk.NewConstraint("pressure_balance", ts, func(t float64) float64 {
		return cv.Out.Pressure.At(t) - cv.In.Pressure.At(t)
	})
	cv.EnergyBalance = blk.NewConstraint("energy_balance", ts, func(t float64) float64 {
		r := cv.In.FlowMol.At(t)*cv.In.EnthMol.At(t) -
			cv.Out.FlowMol.At(t)*cv.Out.EnthMol.At(t) +
			cv.Heat.At(t)
		if cfg.Dynamic {
			r -= cv.EnergyAcc.At(t)
		}
		return r
	})

	return cv, nil
}

// Block returns the underlying model block.
func (cv *ControlVolume) Block() *model.Block { return cv.blk }

// StateFlags records which inlet entries Initialize fixed temporarily, so
// ReleaseState can hand exactly those back.
type StateFlags struct {
	flow, enth, pres []float64
}

// Initialize applies optional initial-state guesses (keys "flow_mol",
// "enth_mol", "pressure"), temporarily fixes the full inlet state, and
// propagates it to the outlet as a starting point. The returned flags must
// be passed to ReleaseState.
func (cv *ControlVolume) Initialize(stateArgs map[string]float64) StateFlags {
	if v, ok := stateArgs["flow_mol"]; ok {
		cv.In.FlowMol.SetAll(v)
	}
	if v, ok := stateArgs["enth_mol"]; ok {
		cv.In.EnthMol.SetAll(v)
	}
	if v, ok := stateArgs["pressure"]; ok {
		cv.In.Pressure.SetAll(v)
	}

	var flags StateFlags
	for _, t := range cv.ts.Points() {
		if !cv.In.FlowMol.FixedAt(t) {
			cv.In.FlowMol.FixAt(t)
			flags.flow = append(flags.flow, t)
		}
		if !cv.In.EnthMol.FixedAt(t) {
			cv.In.EnthMol.FixAt(t)
			flags.enth = append(flags.enth, t)
		}
		if !cv.In.Pressure.FixedAt(t) {
			cv.In.Pressure.FixAt(t)
			flags.pres = append(flags.pres, t)
		}
		// Outlet starts at the inlet state.
		cv.Out.FlowMol.SetAt(t, cv.In.FlowMol.At(t))
		cv.Out.EnthMol.SetAt(t, cv.In.EnthMol.At(t))
		cv.Out.Pressure.SetAt(t, cv.In.Pressure.At(t))
	}
	return flags
}

// ReleaseState unfixes the inlet entries Initialize fixed.
func (cv *ControlVolume) ReleaseState(flags StateFlags) {
	for _, t := range flags.flow {
		cv.In.FlowMol.UnfixAt(t)
	}
	for _, t := range flags.enth {
		cv.In.EnthMol.UnfixAt(t)
	}
	for _, t := range flags.pres {
		cv.In.Pressure.UnfixAt(t)
	}
}
