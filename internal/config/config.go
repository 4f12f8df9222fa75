package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHorizon  = 30.0
	DefaultSteps    = 60
	DefaultGain     = 2.0
	DefaultTimeI    = 10.0
	DefaultTimeD    = 1.0
	DefaultPlantTau = 5.0
	DefaultTol      = 1e-8
	DefaultMaxIter  = 100
)

// Config is a demonstration scenario: a closed-loop PID case, a condenser
// initialization case, and solver options shared by both.
type Config struct {
	Horizon   float64         `yaml:"horizon"`
	Steps     int             `yaml:"steps"`
	PID       PIDConfig       `yaml:"pid"`
	Plant     PlantConfig     `yaml:"plant"`
	Condenser CondenserConfig `yaml:"condenser"`
	Solver    SolverConfig    `yaml:"solver"`
}

type PIDConfig struct {
	Gain         float64 `yaml:"gain"`
	TimeI        float64 `yaml:"time_i"`
	TimeD        float64 `yaml:"time_d"`
	Lower        float64 `yaml:"lower"`
	Upper        float64 `yaml:"upper"`
	Setpoint     float64 `yaml:"setpoint"`
	SetpointStep float64 `yaml:"setpoint_step"`
	StepTime     float64 `yaml:"step_time"`
}

type PlantConfig struct {
	Gain          float64 `yaml:"gain"`
	Tau           float64 `yaml:"tau"`
	Bias          float64 `yaml:"bias"`
	InitialPV     float64 `yaml:"initial_pv"`
	InitialOutput float64 `yaml:"initial_output"`
}

type CondenserConfig struct {
	Area         float64 `yaml:"area"`
	U            float64 `yaml:"u"`
	HotFlow      float64 `yaml:"hot_flow"`
	HotPressure  float64 `yaml:"hot_pressure"`
	ColdFlow     float64 `yaml:"cold_flow"`
	ColdTempIn   float64 `yaml:"cold_temp_in"`
	ColdPressure float64 `yaml:"cold_pressure"`
	Unfix        string  `yaml:"unfix"`
}

type SolverConfig struct {
	Tol     float64 `yaml:"tol"`
	MaxIter int     `yaml:"max_iter"`
	MaxStep float64 `yaml:"max_step"`
}

func DefaultConfig() *Config {
	return &Config{
		Horizon: DefaultHorizon,
		Steps:   DefaultSteps,
		PID: PIDConfig{
			Gain:         DefaultGain,
			TimeI:        DefaultTimeI,
			TimeD:        DefaultTimeD,
			Lower:        0.0,
			Upper:        1.0,
			Setpoint:     0.5,
			SetpointStep: 0.6,
			StepTime:     2.0,
		},
		Plant: PlantConfig{
			Gain:          1.0,
			Tau:           DefaultPlantTau,
			InitialPV:     0.5,
			InitialOutput: 0.5,
		},
		Condenser: CondenserConfig{
			Area:         1000.0,
			U:            100.0,
			HotFlow:      0.1,
			HotPressure:  101325.0,
			ColdFlow:     1.0,
			ColdTempIn:   300.0,
			ColdPressure: 101325.0,
			Unfix:        "cold_flow",
		},
		Solver: SolverConfig{
			Tol:     DefaultTol,
			MaxIter: DefaultMaxIter,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SolverOptions flattens the solver section into the option map the
// solver constructor takes.
func (c *Config) SolverOptions() map[string]float64 {
	opts := map[string]float64{}
	if c.Solver.Tol != 0 {
		opts["tol"] = c.Solver.Tol
	}
	if c.Solver.MaxIter != 0 {
		opts["max_iter"] = float64(c.Solver.MaxIter)
	}
	if c.Solver.MaxStep != 0 {
		opts["max_step"] = c.Solver.MaxStep
	}
	return opts
}
