package config

// Presets are named scenario variants keyed by case then preset name.
var Presets = map[string]map[string]func() *Config{
	"pid": {
		"gentle": func() *Config {
			cfg := DefaultConfig()
			cfg.PID.SetpointStep = 0.55
			return cfg
		},
		"aggressive": func() *Config {
			cfg := DefaultConfig()
			cfg.PID.Gain = 5.0
			cfg.PID.TimeI = 4.0
			return cfg
		},
		"saturating": func() *Config {
			cfg := DefaultConfig()
			cfg.Horizon = 60
			cfg.Steps = 120
			cfg.PID.SetpointStep = 0.9
			cfg.Plant.Tau = 20.0
			return cfg
		},
	},
	"condenser": {
		"atmospheric": func() *Config {
			return DefaultConfig()
		},
		"vacuum": func() *Config {
			cfg := DefaultConfig()
			cfg.Condenser.HotPressure = 20000
			cfg.Condenser.ColdTempIn = 290
			return cfg
		},
		"pressure-float": func() *Config {
			cfg := DefaultConfig()
			cfg.Condenser.Unfix = "pressure"
			cfg.Condenser.ColdFlow = 0.8
			return cfg
		},
	},
}

func GetPreset(caseName, preset string) *Config {
	casePresets, ok := Presets[caseName]
	if !ok {
		return nil
	}
	mk, ok := casePresets[preset]
	if !ok {
		return nil
	}
	return mk()
}

func ListPresets(caseName string) []string {
	casePresets, ok := Presets[caseName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(casePresets))
	for name := range casePresets {
		names = append(names, name)
	}
	return names
}
