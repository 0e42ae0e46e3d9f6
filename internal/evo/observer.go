package evo

import "seqevo/internal/model"

// Observer is notified once per generation after aggregation.
type Observer interface {
	ObserveGeneration(stats model.GenerationStats)
}

type ObserverFunc func(stats model.GenerationStats)

func (f ObserverFunc) ObserveGeneration(stats model.GenerationStats) {
	f(stats)
}
