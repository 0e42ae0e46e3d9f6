package evo

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqevo/internal/genotype"
	"seqevo/internal/model"
)

var exampleGenome = model.Genome{Bases: "ACGTACGTACGTACGTACGT", Fitness: 0.5}

func newTestEvolver(t *testing.T, seed int64, mutate func(*Config)) *Evolver {
	t.Helper()
	cfg := Config{
		PopulationSize: DefaultPopulationSize,
		SequenceLength: DefaultSequenceLength,
		Generations:    DefaultGenerations,
		EliteFraction:  DefaultEliteFraction,
		Rand:           rand.New(rand.NewSource(seed)),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	evolver, err := NewEvolver(cfg)
	require.NoError(t, err)
	return evolver
}

func TestRunExample(t *testing.T) {
	result, err := Run(exampleGenome, 50, 20, 10, 0.5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	require.Len(t, result.Series, 10)
	for i, record := range result.Series {
		assert.Equal(t, i+1, record.Generation)
		assert.False(t, math.IsNaN(record.AverageFitness))
	}
	assert.Equal(t, 20, result.Best.Len())
	assert.False(t, math.IsInf(result.Best.Fitness, 0) || math.IsNaN(result.Best.Fitness))
	require.NoError(t, genotype.ValidateSequence(result.Best.Bases, 20))
}

func TestRunBestDominatesFinalPopulation(t *testing.T) {
	result, err := newTestEvolver(t, 7, nil).Run(exampleGenome)
	require.NoError(t, err)
	require.Len(t, result.FinalPopulation, DefaultPopulationSize)
	for _, g := range result.FinalPopulation {
		assert.GreaterOrEqual(t, result.Best.Fitness, g.Fitness)
	}
}

func TestRunAverageMatchesFinalPopulationMean(t *testing.T) {
	result, err := newTestEvolver(t, 8, nil).Run(exampleGenome)
	require.NoError(t, err)

	total := 0.0
	for _, g := range result.FinalPopulation {
		total += g.Fitness
	}
	last := result.Series[len(result.Series)-1]
	assert.InDelta(t, total/float64(len(result.FinalPopulation)), last.AverageFitness, 1e-9)
}

func TestRunDeterministicWithSeed(t *testing.T) {
	a, err := newTestEvolver(t, 99, nil).Run(exampleGenome)
	require.NoError(t, err)
	b, err := newTestEvolver(t, 99, nil).Run(exampleGenome)
	require.NoError(t, err)
	assert.Equal(t, a.Series, b.Series)
	assert.Equal(t, a.Best, b.Best)
}

func TestRunObserversSeeEveryGeneration(t *testing.T) {
	var seen []model.GenerationStats
	evolver := newTestEvolver(t, 3, func(cfg *Config) {
		cfg.Observers = []Observer{ObserverFunc(func(stats model.GenerationStats) {
			seen = append(seen, stats)
		})}
	})
	result, err := evolver.Run(exampleGenome)
	require.NoError(t, err)
	require.Len(t, seen, DefaultGenerations)
	for i, stats := range seen {
		assert.Equal(t, result.Series[i], stats.Record())
		assert.Equal(t, DefaultPopulationSize, stats.PopulationSize)
		assert.Equal(t, 25, stats.EliteSize)
		assert.Equal(t, 25, stats.Crossovers)
		assert.GreaterOrEqual(t, stats.BestFitness, stats.MeanFitness)
		assert.LessOrEqual(t, stats.MinFitness, stats.MeanFitness)
	}
}

func TestRunPopulationOfTwo(t *testing.T) {
	result, err := Run(model.Genome{Bases: "ACGT", Fitness: 0.1}, 2, 4, 5, 0.5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, result.Series, 5)
	assert.Len(t, result.FinalPopulation, 2)
}

func TestRunOddPopulationKeepsSize(t *testing.T) {
	result, err := Run(model.Genome{Bases: "ACGTA", Fitness: 0.1}, 7, 5, 4, 0.5, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	assert.Len(t, result.FinalPopulation, 7)
}

func TestNewEvolverRejectsParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cases := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"population", Config{PopulationSize: 1, SequenceLength: 4, Generations: 1, EliteFraction: 0.5, Rand: rng}, "population_size"},
		{"length", Config{PopulationSize: 4, SequenceLength: 0, Generations: 1, EliteFraction: 0.5, Rand: rng}, "sequence_length"},
		{"generations", Config{PopulationSize: 4, SequenceLength: 4, Generations: 0, EliteFraction: 0.5, Rand: rng}, "generations"},
		{"fraction zero", Config{PopulationSize: 4, SequenceLength: 4, Generations: 1, EliteFraction: 0, Rand: rng}, "elite_fraction"},
		{"fraction above one", Config{PopulationSize: 4, SequenceLength: 4, Generations: 1, EliteFraction: 1.5, Rand: rng}, "elite_fraction"},
		{"fraction too small", Config{PopulationSize: 4, SequenceLength: 4, Generations: 1, EliteFraction: 0.1, Rand: rng}, "elite_fraction"},
		{"rand", Config{PopulationSize: 4, SequenceLength: 4, Generations: 1, EliteFraction: 0.5}, "rand"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEvolver(tc.cfg)
			var paramErr *InvalidParameterError
			require.True(t, errors.As(err, &paramErr), "got %v", err)
			assert.Equal(t, tc.field, paramErr.Field)
		})
	}
}

func TestRunRejectsInvalidInitialSequence(t *testing.T) {
	_, err := newTestEvolver(t, 1, nil).Run(model.Genome{Bases: "ACGT"})
	var seqErr *genotype.InvalidSequenceError
	require.True(t, errors.As(err, &seqErr))
}

type shrinkingSelector struct{}

func (shrinkingSelector) Name() string { return "shrinking" }

func (shrinkingSelector) Select(population []model.Genome, eliteCount int) ([]model.Genome, error) {
	return RankDescending(population)[:eliteCount], nil
}

func TestRunDetectsPopulationDrift(t *testing.T) {
	evolver := newTestEvolver(t, 1, func(cfg *Config) {
		cfg.Selector = shrinkingSelector{}
	})
	_, err := evolver.Run(exampleGenome)
	require.ErrorIs(t, err, ErrPopulationDrift)
}

type truncatingMutation struct{}

func (truncatingMutation) Name() string { return "truncate" }

func (truncatingMutation) Apply(_ genotype.Source, population []model.Genome) (int, error) {
	population[0].Bases = population[0].Bases[1:]
	return 1, nil
}

func TestRunDetectsLengthDrift(t *testing.T) {
	evolver := newTestEvolver(t, 1, func(cfg *Config) {
		cfg.Mutation = truncatingMutation{}
	})
	_, err := evolver.Run(exampleGenome)
	require.ErrorIs(t, err, ErrLengthDrift)
}

func TestSummarizeAndBest(t *testing.T) {
	population := []model.Genome{
		{Bases: "A", Fitness: 0.2},
		{Bases: "C", Fitness: 1.4},
		{Bases: "G", Fitness: -0.3},
		{Bases: "T", Fitness: 1.4},
	}
	stats := Summarize(population, 3)
	assert.Equal(t, 3, stats.Generation)
	assert.InDelta(t, 0.675, stats.MeanFitness, 1e-12)
	assert.Equal(t, 1.4, stats.BestFitness)
	assert.Equal(t, -0.3, stats.MinFitness)

	best, ok := Best(population)
	require.True(t, ok)
	assert.Equal(t, "C", best.Bases)

	_, ok = Best(nil)
	assert.False(t, ok)
}

func TestEliteSize(t *testing.T) {
	assert.Equal(t, 25, EliteSize(50, 0.5))
	assert.Equal(t, 1, EliteSize(2, 0.5))
	assert.Equal(t, 3, EliteSize(7, 0.5))
}
