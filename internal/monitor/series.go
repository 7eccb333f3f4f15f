package monitor

import (
	"math"
	"strconv"
	"strings"
)

// Point is one sample of the derived numeric series. Index runs 1..n from the
// oldest shown point to the newest, so consumers can plot left to right.
type Point struct {
	Index int
	Value float64
}

// ExtractSeries derives a numeric series from a filtered, newest-first
// message view. Payloads are parsed as finite decimal numbers; entries that
// fail to parse are skipped rather than plotted as gaps, since non-numeric
// payloads are a normal case on a wildcard subscription. The result is
// oldest-first.
func ExtractSeries(filtered []Message) []Point {
	values := make([]float64, 0, len(filtered))
	for _, m := range filtered {
		v, ok := parseFinite(m.Payload)
		if !ok {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil
	}

	// values is newest-first; emit oldest-first with indices counting up.
	points := make([]Point, len(values))
	for i, v := range values {
		points[len(values)-1-i] = Point{Index: len(values) - i, Value: v}
	}
	return points
}

// parseFinite parses s as a finite float64. strconv accepts "NaN" and "Inf"
// tokens, which are not finite samples, so those are rejected here.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
