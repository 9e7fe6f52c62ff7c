// Package chart draws the submitter leaderboard as a PNG bar chart.
package chart

import (
	"bytes"
	"fmt"

	"github.com/teensteam/namecup/internal/ranking"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	width      = 800
	height     = 400
	maxAuthors = 10
)

var (
	background = drawing.ColorFromHex("fdfaf5")
	barColor   = drawing.ColorFromHex("e4572e")
	textColor  = drawing.ColorFromHex("2b2d42")
)

// Leaderboard renders the highest scoring submitters, in leaderboard order,
// as bars. Only the first ten entries are drawn.
func Leaderboard(entries []ranking.Entry) ([]byte, error) {
	if len(entries) == 0 {
		return placeholder("No scores yet")
	}
	if len(entries) > maxAuthors {
		entries = entries[:maxAuthors]
	}

	top := 0
	bars := make([]chart.Value, 0, len(entries))
	for _, e := range entries {
		top = max(top, e.Score)
		bars = append(bars, chart.Value{
			Label: e.Author,
			Value: float64(e.Score),
			Style: chart.Style{
				FillColor:   barColor,
				StrokeColor: barColor,
			},
		})
	}

	graph := chart.BarChart{
		Title:      "Submitter leaderboard",
		Width:      width,
		Height:     height,
		BarWidth:   40,
		BarSpacing: 20,
		Background: chart.Style{
			FillColor: background,
		},
		Canvas: chart.Style{
			FillColor: background,
		},
		TitleStyle: chart.Style{
			FontColor: textColor,
		},
		XAxis: chart.Style{
			FontColor: textColor,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: textColor,
			},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render leaderboard chart: %w", err)
	}
	return buf.Bytes(), nil
}

func placeholder(msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:  width / 2,
		Height: height / 2,
		Background: chart.Style{
			FillColor: background,
		},
		Canvas: chart.Style{
			FillColor: background,
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
				r.SetFontColor(textColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render placeholder chart: %w", err)
	}
	return buf.Bytes(), nil
}
