package stats

import (
	"fmt"
	"math"

	"seqevo/internal/model"
)

type SeriesSummary struct {
	Generations    int     `json:"generations"`
	FirstAverage   float64 `json:"first_average"`
	LastAverage    float64 `json:"last_average"`
	MinAverage     float64 `json:"min_average"`
	MaxAverage     float64 `json:"max_average"`
	MeanAverage    float64 `json:"mean_average"`
	StdAverage     float64 `json:"std_average"`
	BestGeneration int     `json:"best_generation"`
	NetChange      float64 `json:"net_change"`
}

// Summarize reduces an average-fitness trajectory to its headline numbers.
func Summarize(series []model.GenerationRecord) (SeriesSummary, error) {
	if len(series) == 0 {
		return SeriesSummary{}, fmt.Errorf("series must not be empty")
	}
	values := Values(series)
	mean, _ := Avg(values)
	std, _ := Std(values)

	summary := SeriesSummary{
		Generations:    len(series),
		FirstAverage:   values[0],
		LastAverage:    values[len(values)-1],
		MinAverage:     values[0],
		MaxAverage:     values[0],
		MeanAverage:    mean,
		StdAverage:     std,
		BestGeneration: series[0].Generation,
	}
	for i, v := range values[1:] {
		if v > summary.MaxAverage {
			summary.MaxAverage = v
			summary.BestGeneration = series[i+1].Generation
		}
		if v < summary.MinAverage {
			summary.MinAverage = v
		}
	}
	summary.NetChange = summary.LastAverage - summary.FirstAverage
	return summary, nil
}

func Values(series []model.GenerationRecord) []float64 {
	values := make([]float64, 0, len(series))
	for _, record := range series {
		values = append(values, record.AverageFitness)
	}
	return values
}

func Avg(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("values must not be empty")
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values)), nil
}

// Std returns population standard deviation.
func Std(values []float64) (float64, error) {
	mean, err := Avg(values)
	if err != nil {
		return 0, err
	}
	acc := 0.0
	for _, value := range values {
		d := value - mean
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(values))), nil
}
