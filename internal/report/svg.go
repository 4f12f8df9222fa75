package report

import (
	"fmt"
	"io"
	"strings"
)

const (
	svgWidth  = 800
	svgHeight = 400
)

// WriteSeriesSVG renders the measurement and output trends as a
// standalone SVG trend chart.
func WriteSeriesSVG(w io.Writer, rows []SeriesRow) error {
	if len(rows) < 2 {
		return fmt.Errorf("report: need at least 2 samples for an svg trend")
	}

	tMin, tMax := rows[0].Time, rows[len(rows)-1].Time
	vMin, vMax := rows[0].PV, rows[0].PV
	for _, r := range rows {
		for _, v := range []float64{r.PV, r.Output} {
			if v < vMin {
				vMin = v
			}
			if v > vMax {
				vMax = v
			}
		}
	}

	tRange := tMax - tMin
	vRange := vMax - vMin
	if tRange == 0 {
		tRange = 1
	}
	if vRange == 0 {
		vRange = 1
	}
	vMin -= vRange * 0.1
	vMax += vRange * 0.1
	vRange = vMax - vMin

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, svgWidth, svgHeight, svgWidth, svgHeight))

	polyline := func(color string, value func(SeriesRow) float64) {
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, color))
		for i, r := range rows {
			x := float64(svgWidth) * (r.Time - tMin) / tRange
			y := float64(svgHeight) * (1 - (value(r)-vMin)/vRange)
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString("\"/>\n")
	}
	polyline("#00ff00", func(r SeriesRow) float64 { return r.PV })
	polyline("#00aaff", func(r SeriesRow) float64 { return r.Output })

	sb.WriteString(`<text x="10" y="20" fill="#00ff00" font-family="monospace" font-size="12">pv</text>
<text x="10" y="36" fill="#00aaff" font-family="monospace" font-size="12">output</text>
</svg>`)

	_, err := io.WriteString(w, sb.String())
	return err
}
