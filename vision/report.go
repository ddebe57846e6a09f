package vision

import (
	"github.com/lixenwraith/termcore/color"
	"github.com/lixenwraith/termcore/colorspace"
)

// ReportRow is one line of the simulation comparison display
type ReportRow struct {
	Deficiency Deficiency
	Color      color.Color
	HSL        colorspace.HSL
	ReverseHue float64
}

// Report simulates c under every deficiency; the first row is c itself under None
func Report(c color.Color, severity float64) ([]ReportRow, error) {
	if err := checkSeverity(severity); err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(Deficiencies)+1)
	rows = append(rows, newRow(None, c))
	for _, d := range Deficiencies {
		sim, err := Simulate(c, d, severity)
		if err != nil {
			return nil, err
		}
		rows = append(rows, newRow(d, sim))
	}
	return rows, nil
}

func newRow(d Deficiency, c color.Color) ReportRow {
	hsl := colorspace.RGBToHSL(c.Terminal())
	return ReportRow{
		Deficiency: d,
		Color:      c,
		HSL:        hsl,
		ReverseHue: colorspace.ReverseHue(hsl.H),
	}
}
