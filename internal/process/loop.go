package process

import (
	"github.com/san-kum/procsim/internal/controller"
	"github.com/san-kum/procsim/internal/model"
)

// LoopConfig describes a closed-loop demonstration scenario: a first-order
// plant under PID control with a setpoint step partway through the
// horizon.
type LoopConfig struct {
	Horizon float64
	Steps   int

	Setpoint     float64 // setpoint before the step
	SetpointStep float64 // setpoint after the step
	StepTime     float64

	Gain  float64 // controller gain
	TimeI float64
	TimeD float64
	Lower float64
	Upper float64

	PlantGain float64
	PlantTau  float64
	PlantBias float64

	InitialPV     float64
	InitialOutput float64
}

// Loop is an assembled closed-loop flowsheet: one block tree holding the
// measured and actuator variables, the plant, and the controller. Solving
// it determines the whole trajectory simultaneously.
type Loop struct {
	FS     *model.Block
	TS     *model.TimeSet
	PV     *model.Var
	Output *model.Var
	PID    *controller.PID
	Plant  *FirstOrder
}

// NewLoop builds the flowsheet for a scenario.
func NewLoop(cfg LoopConfig) (*Loop, error) {
	ts, err := model.Grid(cfg.Horizon, cfg.Steps)
	if err != nil {
		return nil, err
	}
	fs := model.NewBlock("flowsheet")
	pv := fs.NewVar("pv", ts, cfg.InitialPV)
	out := fs.NewVar("valve", ts, cfg.InitialOutput)

	t0 := ts.First()
	pv.FixAt(t0)
	out.FixAt(t0)

	pcfg := controller.Config{
		PV:                       pv,
		Output:                   out,
		Upper:                    cfg.Upper,
		Lower:                    cfg.Lower,
		CalculateInitialIntegral: true,
	}
	pid, err := controller.New(fs, "pid", ts, pcfg)
	if err != nil {
		return nil, err
	}
	pid.SetTuning(cfg.Gain, cfg.TimeI, cfg.TimeD)
	for _, t := range ts.Points() {
		if t < cfg.StepTime {
			pid.Setpoint.SetAt(t, cfg.Setpoint)
		} else {
			pid.Setpoint.SetAt(t, cfg.SetpointStep)
		}
	}

	plant, err := NewFirstOrder(fs, "plant", ts, FirstOrderConfig{
		Input: out,
		PV:    pv,
		Gain:  cfg.PlantGain,
		Tau:   cfg.PlantTau,
		Bias:  cfg.PlantBias,
	})
	if err != nil {
		return nil, err
	}

	return &Loop{FS: fs, TS: ts, PV: pv, Output: out, PID: pid, Plant: plant}, nil
}

// Solve runs the solver over the whole flowsheet.
func (l *Loop) Solve(solver model.Solver) (model.Result, error) {
	if solver == nil {
		solver = model.NewNewton(nil)
	}
	return solver.Solve(l.FS)
}

// Series returns the time, measurement, and output trajectories.
func (l *Loop) Series() (times, pv, out []float64) {
	times = l.TS.Points()
	pv = make([]float64, len(times))
	out = make([]float64, len(times))
	for i, t := range times {
		pv[i] = l.PV.At(t)
		out[i] = l.Output.At(t)
	}
	return times, pv, out
}
