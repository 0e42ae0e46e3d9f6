package stats

import (
	"strings"

	"seqevo/internal/model"
)

type PlotPoint struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

func BuildAveragePlot(series []model.GenerationRecord) []PlotPoint {
	points := make([]PlotPoint, 0, len(series))
	for _, record := range series {
		points = append(points, PlotPoint{Index: record.Generation, Value: record.AverageFitness})
	}
	return points
}

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws one tick per point scaled between the series min and max.
// A flat series renders at the lowest tick.
func Sparkline(points []PlotPoint) string {
	if len(points) == 0 {
		return ""
	}
	lo, hi := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		if p.Value < lo {
			lo = p.Value
		}
		if p.Value > hi {
			hi = p.Value
		}
	}

	var sb strings.Builder
	span := hi - lo
	last := len(sparkTicks) - 1
	for _, p := range points {
		idx := 0
		if span > 0 {
			idx = int((p.Value - lo) / span * float64(last))
		}
		sb.WriteRune(sparkTicks[idx])
	}
	return sb.String()
}
