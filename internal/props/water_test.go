package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaterTSat(t *testing.T) {
	w := Water{}
	assert.InDelta(t, 373.15, w.TSat(101325), 0.5, "boiling point at 1 atm")
	assert.Less(t, w.TSat(50000), w.TSat(101325), "saturation temperature rises with pressure")
	assert.Less(t, w.TSat(101325), w.TSat(200000))
}

func TestWaterSaturatedEnthalpies(t *testing.T) {
	w := Water{}
	hl := w.EnthMolSatLiq(101325)
	hv := w.EnthMolSatVap(101325)
	assert.InDelta(t, cpMolLiquid*100, hl, 50, "liquid enthalpy from 0 degC reference")
	assert.InDelta(t, dhVap, hv-hl, 1e-9, "latent heat between saturation curves")
}

func TestWaterTemperatureByRegion(t *testing.T) {
	w := Water{}
	p := 101325.0
	hl := w.EnthMolSatLiq(p)
	hv := w.EnthMolSatVap(p)

	assert.InDelta(t, 323.15, w.Temperature(cpMolLiquid*50, p), 0.01, "subcooled liquid")
	assert.InDelta(t, w.TSat(p), w.Temperature((hl+hv)/2, p), 1e-9, "two-phase on saturation curve")
	assert.Greater(t, w.Temperature(hv+1000, p), w.TSat(p), "superheated vapor")
}
