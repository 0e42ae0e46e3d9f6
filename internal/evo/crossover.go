package evo

import (
	"fmt"

	"seqevo/internal/genotype"
	"seqevo/internal/model"
)

const (
	DefaultCrossoverMinFraction = 0.2
	DefaultCrossoverMaxFraction = 0.8
)

// SinglePointCrossover replaces each pair of slots with two offspring spliced
// from a randomly chosen pair of distinct parents.
type SinglePointCrossover struct {
	MinFraction float64
	MaxFraction float64
}

func (SinglePointCrossover) Name() string {
	return "single_point_crossover"
}

func (c SinglePointCrossover) Apply(rng genotype.Source, population []model.Genome) (int, error) {
	if rng == nil {
		return 0, fmt.Errorf("random source is required")
	}
	if len(population) < 2 {
		return 0, fmt.Errorf("crossover needs at least 2 genomes, got %d", len(population))
	}
	lo, hi := c.bounds()

	parents := genotype.Clone(population)
	crossovers := 0
	for i := 0; i < len(population); i += 2 {
		p1, p2 := pickDistinct(rng, len(parents))
		length := parents[p1].Len()
		fraction := lo + (hi-lo)*rng.Float64()
		k := int(fraction * float64(length))

		a, b, err := genotype.Splice(parents[p1].Bases, parents[p2].Bases, k)
		if err != nil {
			return crossovers, fmt.Errorf("crossover at slot %d: %w", i, err)
		}
		population[i] = model.Genome{Bases: a, Fitness: rng.Float64()}
		offspringB := model.Genome{Bases: b, Fitness: rng.Float64()}
		if i+1 < len(population) {
			population[i+1] = offspringB
		}
		crossovers++
	}
	return crossovers, nil
}

func (c SinglePointCrossover) bounds() (float64, float64) {
	lo, hi := c.MinFraction, c.MaxFraction
	if lo == 0 && hi == 0 {
		return DefaultCrossoverMinFraction, DefaultCrossoverMaxFraction
	}
	return lo, hi
}

// pickDistinct draws two different indices uniformly from [0, n). The second
// draw covers the n-1 remaining slots so it never has to retry.
func pickDistinct(rng genotype.Source, n int) (int, int) {
	first := rng.Intn(n)
	second := rng.Intn(n - 1)
	if second >= first {
		second++
	}
	return first, second
}
