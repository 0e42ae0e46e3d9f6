package evo

import (
	"seqevo/internal/genotype"
	"seqevo/internal/model"
)

// Operator rewrites a population in place and reports how many edits it made.
type Operator interface {
	Name() string
	Apply(rng genotype.Source, population []model.Genome) (int, error)
}
