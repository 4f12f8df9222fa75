package props

import "math"

// Antoine coefficients for water, T in degC and P in mmHg, fit for the
// 1-100 degC range.
const (
	antoineA = 8.07131
	antoineB = 1730.63
	antoineC = 233.426
)

const (
	cpMolLiquid = 75.4  // J/mol/K
	cpMolVapor  = 33.6  // J/mol/K
	dhVap       = 40660 // J/mol, condensation enthalpy near 1 atm

	mmHgPerPa = 1.0 / 133.322
	tRef      = 273.15 // K, enthalpy reference: saturated liquid at 0 degC
)

// Water is a constant-heat-capacity water/steam property package with an
// Antoine saturation curve. Good enough near atmospheric pressure; not a
// substitute for a real equation of state.
type Water struct{}

func (Water) TSat(pressure float64) float64 {
	return antoineB/(antoineA-math.Log10(pressure*mmHgPerPa)) - antoineC + tRef
}

func (w Water) EnthMolSatLiq(pressure float64) float64 {
	return cpMolLiquid * (w.TSat(pressure) - tRef)
}

func (w Water) EnthMolSatVap(pressure float64) float64 {
	return w.EnthMolSatLiq(pressure) + dhVap
}

func (w Water) Temperature(enthMol, pressure float64) float64 {
	hl := w.EnthMolSatLiq(pressure)
	hv := hl + dhVap
	switch {
	case enthMol <= hl:
		return tRef + enthMol/cpMolLiquid
	case enthMol >= hv:
		return w.TSat(pressure) + (enthMol-hv)/cpMolVapor
	default:
		// Two-phase region sits on the saturation curve.
		return w.TSat(pressure)
	}
}

func (Water) CpMolLiq(enthMol, pressure float64) float64 {
	return cpMolLiquid
}
