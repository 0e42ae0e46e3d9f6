package evo

import (
	"fmt"

	"seqevo/internal/genotype"
	"seqevo/internal/model"
)

const (
	DefaultBaseMutationRate = 0.01
	DefaultFitnessDelta     = 0.1
)

// PointMutation walks every base of every genome. Each position may be
// replaced with a random symbol and always nudges fitness by a delta drawn
// from [-FitnessDelta, FitnessDelta).
type PointMutation struct {
	Rate         float64
	FitnessDelta float64
}

func (PointMutation) Name() string {
	return "point_mutation"
}

func (m PointMutation) Apply(rng genotype.Source, population []model.Genome) (int, error) {
	if rng == nil {
		return 0, fmt.Errorf("random source is required")
	}
	rate, delta := m.params()

	mutated := 0
	for i := range population {
		bases := []byte(population[i].Bases)
		for j := range bases {
			if rng.Float64() < rate {
				base, err := genotype.RandomBase(rng, genotype.MutationAlphabet)
				if err != nil {
					return mutated, err
				}
				bases[j] = base
				mutated++
			}
			population[i].Fitness += -delta + 2*delta*rng.Float64()
		}
		population[i].Bases = string(bases)
	}
	return mutated, nil
}

func (m PointMutation) params() (float64, float64) {
	rate, delta := m.Rate, m.FitnessDelta
	if rate == 0 {
		rate = DefaultBaseMutationRate
	}
	if delta == 0 {
		delta = DefaultFitnessDelta
	}
	return rate, delta
}
