// Package metrics exposes evolution progress as Prometheus collectors.
//
// A Recorder is an evo.Observer: hand it to the evolver config and it updates
// its counters and gauges once per generation. Collectors are registered on
// the Registerer passed to NewRecorder so callers can keep them off the
// global registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"seqevo/internal/model"
)

const namespace = "seqevo"

type Recorder struct {
	Generations    prometheus.Counter
	Crossovers     prometheus.Counter
	BaseMutations  prometheus.Counter
	AverageFitness prometheus.Gauge
	BestFitness    prometheus.Gauge
	MinFitness     prometheus.Gauge
	PopulationSize prometheus.Gauge
	EliteSize      prometheus.Gauge
}

func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		return nil, fmt.Errorf("registerer is required")
	}
	r := &Recorder{
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generations completed.",
		}),
		Crossovers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crossovers_total",
			Help:      "Offspring pairs produced by crossover.",
		}),
		BaseMutations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "base_mutations_total",
			Help:      "Bases replaced by point mutation.",
		}),
		AverageFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "average_fitness",
			Help:      "Mean fitness of the latest generation.",
		}),
		BestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_fitness",
			Help:      "Highest fitness in the latest generation.",
		}),
		MinFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "min_fitness",
			Help:      "Lowest fitness in the latest generation.",
		}),
		PopulationSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "population_size",
			Help:      "Genomes in the latest generation.",
		}),
		EliteSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "elite_size",
			Help:      "Genomes kept by selection each generation.",
		}),
	}
	for _, c := range []prometheus.Collector{
		r.Generations, r.Crossovers, r.BaseMutations,
		r.AverageFitness, r.BestFitness, r.MinFitness,
		r.PopulationSize, r.EliteSize,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return r, nil
}

func (r *Recorder) ObserveGeneration(stats model.GenerationStats) {
	r.Generations.Inc()
	r.Crossovers.Add(float64(stats.Crossovers))
	r.BaseMutations.Add(float64(stats.BaseMutations))
	r.AverageFitness.Set(stats.MeanFitness)
	r.BestFitness.Set(stats.BestFitness)
	r.MinFitness.Set(stats.MinFitness)
	r.PopulationSize.Set(float64(stats.PopulationSize))
	r.EliteSize.Set(float64(stats.EliteSize))
}

// WriteTextfile dumps every metric in g to path in the text exposition
// format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return fmt.Errorf("metrics path is required")
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
