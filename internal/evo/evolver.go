package evo

import (
	"fmt"
	"log/slog"
	"math"

	"seqevo/internal/genotype"
	"seqevo/internal/model"
)

const (
	DefaultGenerations    = 10
	DefaultPopulationSize = 50
	DefaultSequenceLength = 20
	DefaultEliteFraction  = 0.5
)

type Config struct {
	PopulationSize int
	SequenceLength int
	Generations    int
	EliteFraction  float64
	Rand           genotype.Source
	Selector       Selector
	Crossover      Operator
	Mutation       Operator
	Logger         *slog.Logger
	Observers      []Observer
}

type RunResult struct {
	Series          []model.GenerationRecord
	Best            model.Genome
	FinalPopulation []model.Genome
	Diagnostics     []model.GenerationStats
}

// Evolver runs a fixed number of select/crossover/mutate generations over a
// population seeded from one user genome.
type Evolver struct {
	cfg       Config
	eliteSize int
}

func NewEvolver(cfg Config) (*Evolver, error) {
	if cfg.PopulationSize < 2 {
		return nil, invalidParameter("population_size", cfg.PopulationSize, ">= 2")
	}
	if cfg.SequenceLength <= 0 {
		return nil, invalidParameter("sequence_length", cfg.SequenceLength, "> 0")
	}
	if cfg.Generations <= 0 {
		return nil, invalidParameter("generations", cfg.Generations, "> 0")
	}
	if math.IsNaN(cfg.EliteFraction) || cfg.EliteFraction <= 0 || cfg.EliteFraction > 1 {
		return nil, invalidParameter("elite_fraction", cfg.EliteFraction, "in (0, 1]")
	}
	eliteSize := EliteSize(cfg.PopulationSize, cfg.EliteFraction)
	if eliteSize < 1 {
		return nil, invalidParameter("elite_fraction", cfg.EliteFraction, "large enough to keep at least one genome")
	}
	if cfg.Rand == nil {
		return nil, invalidParameter("rand", nil, "non-nil")
	}
	if cfg.Selector == nil {
		cfg.Selector = EliteSelector{}
	}
	if cfg.Crossover == nil {
		cfg.Crossover = SinglePointCrossover{}
	}
	if cfg.Mutation == nil {
		cfg.Mutation = PointMutation{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Evolver{cfg: cfg, eliteSize: eliteSize}, nil
}

// EliteSize is floor(populationSize * fraction).
func EliteSize(populationSize int, fraction float64) int {
	return int(math.Floor(float64(populationSize) * fraction))
}

// Run evolves the population with the default operators. It is the
// one-call form of NewEvolver(...).Run(initial).
func Run(initial model.Genome, populationSize, sequenceLength, generations int, eliteFraction float64, rng genotype.Source) (RunResult, error) {
	evolver, err := NewEvolver(Config{
		PopulationSize: populationSize,
		SequenceLength: sequenceLength,
		Generations:    generations,
		EliteFraction:  eliteFraction,
		Rand:           rng,
	})
	if err != nil {
		return RunResult{}, err
	}
	return evolver.Run(initial)
}

func (e *Evolver) EliteSize() int {
	return e.eliteSize
}

func (e *Evolver) Run(initial model.Genome) (RunResult, error) {
	if err := genotype.ValidateSequence(initial.Bases, e.cfg.SequenceLength); err != nil {
		return RunResult{}, fmt.Errorf("initial genome: %w", err)
	}

	population, err := genotype.Seed(e.cfg.Rand, initial, e.cfg.PopulationSize)
	if err != nil {
		return RunResult{}, err
	}
	if err := e.checkBoundary(population, 0); err != nil {
		return RunResult{}, err
	}

	series := make([]model.GenerationRecord, 0, e.cfg.Generations)
	diagnostics := make([]model.GenerationStats, 0, e.cfg.Generations)
	for gen := 1; gen <= e.cfg.Generations; gen++ {
		stats, next, err := e.step(population, gen)
		if err != nil {
			return RunResult{}, err
		}
		population = next
		series = append(series, stats.Record())
		diagnostics = append(diagnostics, stats)
		for _, observer := range e.cfg.Observers {
			observer.ObserveGeneration(stats)
		}
		e.cfg.Logger.Debug("generation complete",
			"generation", gen,
			"average_fitness", stats.MeanFitness,
			"best_fitness", stats.BestFitness,
			"crossovers", stats.Crossovers,
			"base_mutations", stats.BaseMutations,
		)
	}

	best, _ := Best(population)
	e.cfg.Logger.Info("evolution finished",
		"generations", e.cfg.Generations,
		"population_size", e.cfg.PopulationSize,
		"best_sequence", best.Bases,
		"best_fitness", best.Fitness,
	)
	return RunResult{
		Series:          series,
		Best:            best,
		FinalPopulation: population,
		Diagnostics:     diagnostics,
	}, nil
}

func (e *Evolver) step(population []model.Genome, gen int) (model.GenerationStats, []model.Genome, error) {
	working, err := e.cfg.Selector.Select(population, e.eliteSize)
	if err != nil {
		return model.GenerationStats{}, nil, fmt.Errorf("generation %d %s: %w", gen, e.cfg.Selector.Name(), err)
	}
	if err := e.checkBoundary(working, gen); err != nil {
		return model.GenerationStats{}, nil, err
	}

	crossovers, err := e.cfg.Crossover.Apply(e.cfg.Rand, working)
	if err != nil {
		return model.GenerationStats{}, nil, fmt.Errorf("generation %d %s: %w", gen, e.cfg.Crossover.Name(), err)
	}
	mutations, err := e.cfg.Mutation.Apply(e.cfg.Rand, working)
	if err != nil {
		return model.GenerationStats{}, nil, fmt.Errorf("generation %d %s: %w", gen, e.cfg.Mutation.Name(), err)
	}
	if err := e.checkBoundary(working, gen); err != nil {
		return model.GenerationStats{}, nil, err
	}

	stats := Summarize(working, gen)
	stats.EliteSize = e.eliteSize
	stats.Crossovers = crossovers
	stats.BaseMutations = mutations
	return stats, working, nil
}

func (e *Evolver) checkBoundary(population []model.Genome, gen int) error {
	if len(population) != e.cfg.PopulationSize {
		return fmt.Errorf("generation %d: %w: got=%d want=%d", gen, ErrPopulationDrift, len(population), e.cfg.PopulationSize)
	}
	for i, g := range population {
		if g.Len() != e.cfg.SequenceLength {
			return fmt.Errorf("generation %d genome %d: %w: got=%d want=%d", gen, i, ErrLengthDrift, g.Len(), e.cfg.SequenceLength)
		}
	}
	return nil
}

// Summarize aggregates fitness over a population. An empty population yields
// zero values.
func Summarize(population []model.Genome, generation int) model.GenerationStats {
	stats := model.GenerationStats{Generation: generation, PopulationSize: len(population)}
	if len(population) == 0 {
		return stats
	}
	stats.BestFitness = population[0].Fitness
	stats.MinFitness = population[0].Fitness
	total := 0.0
	for _, g := range population {
		total += g.Fitness
		if g.Fitness > stats.BestFitness {
			stats.BestFitness = g.Fitness
		}
		if g.Fitness < stats.MinFitness {
			stats.MinFitness = g.Fitness
		}
	}
	stats.MeanFitness = total / float64(len(population))
	return stats
}

// Best returns the first genome with maximal fitness.
func Best(population []model.Genome) (model.Genome, bool) {
	if len(population) == 0 {
		return model.Genome{}, false
	}
	best := population[0]
	for _, g := range population[1:] {
		if g.Fitness > best.Fitness {
			best = g
		}
	}
	return best, true
}
