package ui

import (
	plot "github.com/chriskim06/drawille-go"

	"github.com/saunahuone/mqttscope/internal/monitor"
)

// renderChart draws the numeric series as a braille plot sized to the pane.
// Points arrive oldest-first, which is already left-to-right plotting order.
func renderChart(points []monitor.Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	// A braille cell is two dots wide; beyond that the extra samples just
	// alias, so thin the series down first.
	values = downsample(values, width*2)

	canvas := plot.NewCanvas(width, height)
	canvas.ShowAxis = false
	canvas.NumDataPoints = len(values)
	canvas.LineColors = []plot.Color{plot.Red}
	canvas.Fill([][]float64{values})
	return canvas.String()
}

// downsample thins values to at most max samples, keeping endpoints and even
// spacing so the plotted shape is preserved.
func downsample(values []float64, max int) []float64 {
	if max < 1 || len(values) <= max {
		return values
	}
	if max == 1 {
		return values[len(values)-1:]
	}
	out := make([]float64, max)
	step := float64(len(values)-1) / float64(max-1)
	for i := range out {
		out[i] = values[int(float64(i)*step+0.5)]
	}
	out[max-1] = values[len(values)-1]
	return out
}
