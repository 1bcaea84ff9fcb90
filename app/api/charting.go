package api

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
)

// GenerateProgressChart produces a PNG bar chart of per-round
// completion for the given bracket.
func GenerateProgressChart(bracket bracketdomain.Bracket) ([]byte, error) {
	if len(bracket.Rounds) == 0 {
		return renderNoDataPlaceholder()
	}

	bars := make([]chart.Value, len(bracket.Rounds))
	for i, round := range bracket.Rounds {
		decided := 0
		for _, m := range round.Matches {
			if m.Decided() {
				decided++
			}
		}
		percent := 0.0
		if len(round.Matches) > 0 {
			percent = 100 * float64(decided) / float64(len(round.Matches))
		}
		bars[i] = chart.Value{
			Label: fmt.Sprintf("R%d", round.Number),
			Value: percent,
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2e7d32"),
				StrokeColor: drawing.ColorFromHex("1b5e20"),
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Title:  "Round completion (%)",
		Width:  800,
		Height: 400,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No bracket found"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
