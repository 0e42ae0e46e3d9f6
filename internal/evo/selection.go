package evo

import (
	"fmt"
	"sort"

	"seqevo/internal/model"
)

// Selector winnows a population to its elite and hands back the working
// population for the rest of the generation.
type Selector interface {
	Name() string
	Select(population []model.Genome, eliteCount int) ([]model.Genome, error)
}

// EliteSelector keeps the eliteCount fittest genomes and refills the
// population to its original size by cloning elites in rank order.
type EliteSelector struct{}

func (EliteSelector) Name() string {
	return "elite"
}

func (EliteSelector) Select(population []model.Genome, eliteCount int) ([]model.Genome, error) {
	if eliteCount <= 0 || eliteCount > len(population) {
		return nil, fmt.Errorf("invalid elite count: %d", eliteCount)
	}
	elite := RankDescending(population)[:eliteCount]

	out := make([]model.Genome, len(population))
	for i := range out {
		out[i] = elite[i%eliteCount]
	}
	return out, nil
}

// RankDescending returns a copy of population ordered by fitness, highest
// first. Ties keep their input order.
func RankDescending(population []model.Genome) []model.Genome {
	ranked := append([]model.Genome(nil), population...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})
	return ranked
}
