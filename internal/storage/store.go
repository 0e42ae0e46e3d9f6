package storage

import (
	"context"

	"seqevo/internal/model"
)

// Store keeps completed runs for the lifetime of a client.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveFitnessHistory(ctx context.Context, runID string, series []model.GenerationRecord) error
	GetFitnessHistory(ctx context.Context, runID string) ([]model.GenerationRecord, bool, error)
}
