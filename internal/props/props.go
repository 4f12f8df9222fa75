// Package props defines the thermodynamic property interface consumed by
// unit models, together with a simple water/steam implementation used by
// demos and tests. Property correlations are a collaborator of the unit
// models, not part of them; any package satisfying [Package] can be
// plugged into a control volume.
package props

// Package supplies the property calls unit models need. Molar enthalpy is
// in J/mol, pressure in Pa, temperature in K.
type Package interface {
	// Temperature returns temperature from molar enthalpy and pressure.
	Temperature(enthMol, pressure float64) float64
	// TSat returns the saturation temperature at pressure.
	TSat(pressure float64) float64
	// EnthMolSatLiq returns the saturated-liquid molar enthalpy at pressure.
	EnthMolSatLiq(pressure float64) float64
	// EnthMolSatVap returns the saturated-vapor molar enthalpy at pressure.
	EnthMolSatVap(pressure float64) float64
	// CpMolLiq returns the liquid molar heat capacity at the given state.
	CpMolLiq(enthMol, pressure float64) float64
}
