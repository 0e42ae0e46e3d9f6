// Package seqevo is the public entry point for running nucleotide sequence
// evolutions and looking up the runs a client has completed.
package seqevo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"seqevo/internal/evo"
	"seqevo/internal/genotype"
	"seqevo/internal/metrics"
	"seqevo/internal/model"
	"seqevo/internal/stats"
	"seqevo/internal/storage"
)

type Options struct {
	StoreKind string
	Logger    *slog.Logger
	// Registerer receives the run collectors. Nil disables metrics.
	Registerer prometheus.Registerer
}

type Client struct {
	store    storage.Store
	logger   *slog.Logger
	recorder *metrics.Recorder

	initOnce sync.Once
	initErr  error
}

// RunRequest describes one evolution. Zero-valued numeric fields take the
// package defaults; negative values are rejected. A zero Seed is replaced by
// one derived from the clock and reported back in the summary.
type RunRequest struct {
	Sequence       string
	Activity       float64
	Generations    int
	PopulationSize int
	SequenceLength int
	EliteFraction  float64
	Seed           int64
	Observers      []evo.Observer
}

type RunSummary struct {
	RunID           string
	Seed            int64
	PopulationSize  int
	SequenceLength  int
	Generations     int
	EliteFraction   float64
	Series          []model.GenerationRecord
	Diagnostics     []model.GenerationStats
	Best            model.Genome
	FinalPopulation []model.Genome
	Summary         stats.SeriesSummary
}

type RunItem struct {
	RunID          string
	CreatedAtUTC   string
	Seed           int64
	PopulationSize int
	Generations    int
	FinalAverage   float64
	BestFitness    float64
	BestSequence   string
}

var ErrRunNotFound = errors.New("run not found")

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	store, err := storage.NewStore(storeKind)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var recorder *metrics.Recorder
	if opts.Registerer != nil {
		recorder, err = metrics.NewRecorder(opts.Registerer)
		if err != nil {
			return nil, err
		}
	}

	return &Client{store: store, logger: logger, recorder: recorder}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) init(ctx context.Context) error {
	c.initOnce.Do(func() {
		c.initErr = c.store.Init(ctx)
	})
	return c.initErr
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return RunSummary{}, err
	}
	if err := c.init(ctx); err != nil {
		return RunSummary{}, err
	}
	req = withDefaults(req)

	initial := model.Genome{Bases: req.Sequence, Fitness: req.Activity}
	if err := genotype.Validate(initial, req.SequenceLength); err != nil {
		return RunSummary{}, err
	}

	runID := uuid.NewString()
	observers := append([]evo.Observer(nil), req.Observers...)
	if c.recorder != nil {
		observers = append(observers, c.recorder)
	}
	evolver, err := evo.NewEvolver(evo.Config{
		PopulationSize: req.PopulationSize,
		SequenceLength: req.SequenceLength,
		Generations:    req.Generations,
		EliteFraction:  req.EliteFraction,
		Rand:           rand.New(rand.NewSource(req.Seed)),
		Logger:         c.logger.With("run_id", runID),
		Observers:      observers,
	})
	if err != nil {
		return RunSummary{}, err
	}

	result, err := evolver.Run(initial)
	if err != nil {
		return RunSummary{}, fmt.Errorf("run %s: %w", runID, err)
	}
	summary, err := stats.Summarize(result.Series)
	if err != nil {
		return RunSummary{}, err
	}

	record := model.RunRecord{
		ID:             runID,
		CreatedAtUTC:   time.Now().UTC().Format(time.RFC3339),
		Seed:           req.Seed,
		PopulationSize: req.PopulationSize,
		SequenceLength: req.SequenceLength,
		Generations:    req.Generations,
		EliteFraction:  req.EliteFraction,
		Initial:        initial,
		Series:         result.Series,
		Diagnostics:    result.Diagnostics,
		Best:           result.Best,
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveFitnessHistory(ctx, runID, result.Series); err != nil {
		return RunSummary{}, err
	}

	out := summaryFromRecord(record, summary)
	out.FinalPopulation = result.FinalPopulation
	return out, nil
}

// Runs lists the newest completed runs first.
func (c *Client) Runs(ctx context.Context, limit int) ([]RunItem, error) {
	if err := c.init(ctx); err != nil {
		return nil, err
	}
	records, err := c.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]RunItem, 0, len(records))
	for _, r := range records {
		item := RunItem{
			RunID:          r.ID,
			CreatedAtUTC:   r.CreatedAtUTC,
			Seed:           r.Seed,
			PopulationSize: r.PopulationSize,
			Generations:    r.Generations,
			BestFitness:    r.Best.Fitness,
			BestSequence:   r.Best.Bases,
		}
		if n := len(r.Series); n > 0 {
			item.FinalAverage = r.Series[n-1].AverageFitness
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *Client) Get(ctx context.Context, runID string) (RunSummary, error) {
	if err := c.init(ctx); err != nil {
		return RunSummary{}, err
	}
	record, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return RunSummary{}, err
	}
	if !ok {
		return RunSummary{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	summary, err := stats.Summarize(record.Series)
	if err != nil {
		return RunSummary{}, err
	}
	return summaryFromRecord(record, summary), nil
}

// FitnessHistory returns the average-fitness series recorded for runID.
func (c *Client) FitnessHistory(ctx context.Context, runID string) ([]model.GenerationRecord, error) {
	if err := c.init(ctx); err != nil {
		return nil, err
	}
	series, ok, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return series, nil
}

func withDefaults(req RunRequest) RunRequest {
	if req.Generations == 0 {
		req.Generations = evo.DefaultGenerations
	}
	if req.PopulationSize == 0 {
		req.PopulationSize = evo.DefaultPopulationSize
	}
	if req.SequenceLength == 0 {
		req.SequenceLength = evo.DefaultSequenceLength
	}
	if req.EliteFraction == 0 {
		req.EliteFraction = evo.DefaultEliteFraction
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	return req
}

func summaryFromRecord(r model.RunRecord, summary stats.SeriesSummary) RunSummary {
	return RunSummary{
		RunID:          r.ID,
		Seed:           r.Seed,
		PopulationSize: r.PopulationSize,
		SequenceLength: r.SequenceLength,
		Generations:    r.Generations,
		EliteFraction:  r.EliteFraction,
		Series:         r.Series,
		Diagnostics:    r.Diagnostics,
		Best:           r.Best,
		Summary:        summary,
	}
}
