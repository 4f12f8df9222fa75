// Package report builds stream tables and trajectory exports for solved
// flowsheets. CSV uses struct tags via gocsv; JSON mirrors the same rows.
package report

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/procsim/internal/condenser"
)

// StreamRow is one stream terminal in a unit's stream table.
type StreamRow struct {
	Stream      string  `csv:"stream" json:"stream"`
	FlowMol     float64 `csv:"flow_mol" json:"flow_mol"`
	EnthMol     float64 `csv:"enth_mol" json:"enth_mol"`
	Pressure    float64 `csv:"pressure" json:"pressure"`
	Temperature float64 `csv:"temperature" json:"temperature"`
}

// CondenserStreamTable collects the four stream terminals of a condenser
// at time t.
func CondenserStreamTable(c *condenser.Condenser, t float64) []StreamRow {
	row := func(label string, cv *condenser.ControlVolume, in bool) StreamRow {
		st := cv.Out
		temp := cv.TOut.At(t)
		if in {
			st = cv.In
			temp = cv.TIn.At(t)
		}
		return StreamRow{
			Stream:      label,
			FlowMol:     st.FlowMol.At(t),
			EnthMol:     st.EnthMol.At(t),
			Pressure:    st.Pressure.At(t),
			Temperature: temp,
		}
	}
	return []StreamRow{
		row("Hot Inlet", c.HotSide, true),
		row("Hot Outlet", c.HotSide, false),
		row("Cold Inlet", c.ColdSide, true),
		row("Cold Outlet", c.ColdSide, false),
	}
}

// WriteStreamCSV writes a stream table as CSV.
func WriteStreamCSV(w io.Writer, rows []StreamRow) error {
	return gocsv.Marshal(&rows, w)
}

// WriteStreamJSON writes a stream table as indented JSON.
func WriteStreamJSON(w io.Writer, rows []StreamRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// SeriesRow is one sample of a solved closed-loop trajectory.
type SeriesRow struct {
	Time   float64 `csv:"time" json:"time"`
	PV     float64 `csv:"pv" json:"pv"`
	Output float64 `csv:"output" json:"output"`
}

// Series zips trajectory slices into rows.
func Series(times, pv, out []float64) []SeriesRow {
	rows := make([]SeriesRow, len(times))
	for i := range times {
		rows[i] = SeriesRow{Time: times[i], PV: pv[i], Output: out[i]}
	}
	return rows
}

// WriteSeriesCSV writes a trajectory as CSV.
func WriteSeriesCSV(w io.Writer, rows []SeriesRow) error {
	return gocsv.Marshal(&rows, w)
}

// WriteSeriesJSON writes a trajectory as indented JSON.
func WriteSeriesJSON(w io.Writer, rows []SeriesRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
