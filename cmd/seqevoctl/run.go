package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"seqevo/internal/config"
	"seqevo/internal/genotype"
	"seqevo/internal/metrics"
	"seqevo/internal/prompt"
	"seqevo/internal/report"
	seqapi "seqevo/pkg/seqevo"
)

type runFlags struct {
	configPath    string
	sequence      string
	activity      float64
	generations   int
	population    int
	length        int
	eliteFraction float64
	seed          int64
	format        string
	logLevel      string
	metricsOut    string
}

func newRunCommand(s streams) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one evolution and report the average activity per generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, s, f)
		},
	}

	defaults := config.Default()
	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "YAML file with run parameters")
	fs.StringVar(&f.sequence, "sequence", "", "initial DNA sequence (prompted when omitted)")
	fs.Float64Var(&f.activity, "activity", 0, "activity of the initial sequence in [0.0, 1.0) (prompted when omitted)")
	fs.IntVar(&f.generations, "generations", defaults.Generations, "generations to evolve")
	fs.IntVar(&f.population, "population", defaults.PopulationSize, "population size")
	fs.IntVar(&f.length, "length", defaults.SequenceLength, "sequence length")
	fs.Float64Var(&f.eliteFraction, "elite-fraction", defaults.EliteFraction, "fraction of the population kept by selection")
	fs.Int64Var(&f.seed, "seed", 0, "random seed (0 picks one from the clock)")
	fs.StringVar(&f.format, "format", defaults.Format, "output format: table|json")
	fs.StringVar(&f.logLevel, "log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&f.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile")
	return cmd
}

func runRun(cmd *cobra.Command, s streams, f runFlags) error {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(s.errOut, &slog.HandlerOptions{Level: level}))

	sequence, activity, err := initialGenome(cmd, s, f, cfg.SequenceLength)
	if err != nil {
		return err
	}

	opts := seqapi.Options{Logger: logger}
	var reg *prometheus.Registry
	if f.metricsOut != "" {
		reg = prometheus.NewRegistry()
		opts.Registerer = reg
	}
	client, err := seqapi.New(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(cmd.Context(), seqapi.RunRequest{
		Sequence:       sequence,
		Activity:       activity,
		Generations:    cfg.Generations,
		PopulationSize: cfg.PopulationSize,
		SequenceLength: cfg.SequenceLength,
		EliteFraction:  cfg.EliteFraction,
		Seed:           cfg.Seed,
	})
	if err != nil {
		return err
	}
	logger.Info("run complete", "run_id", summary.RunID, "seed", summary.Seed, "best_fitness", summary.Best.Fitness)

	if reg != nil {
		if err := metrics.WriteTextfile(f.metricsOut, reg); err != nil {
			return err
		}
	}

	return report.Render(s.out, cfg.Format, report.Result{
		RunID:          summary.RunID,
		Seed:           summary.Seed,
		PopulationSize: summary.PopulationSize,
		SequenceLength: summary.SequenceLength,
		Generations:    summary.Generations,
		EliteFraction:  summary.EliteFraction,
		Series:         summary.Series,
		Diagnostics:    summary.Diagnostics,
		Best:           summary.Best,
		Summary:        &summary.Summary,
	})
}

// resolveConfig layers defaults, the optional YAML file, then any flag the
// user set explicitly.
func resolveConfig(cmd *cobra.Command, f runFlags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("generations") {
		cfg.Generations = f.generations
	}
	if fs.Changed("population") {
		cfg.PopulationSize = f.population
	}
	if fs.Changed("length") {
		cfg.SequenceLength = f.length
	}
	if fs.Changed("elite-fraction") {
		cfg.EliteFraction = f.eliteFraction
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// initialGenome takes the sequence and activity from flags when given and
// asks for whichever is missing.
func initialGenome(cmd *cobra.Command, s streams, f runFlags, length int) (string, float64, error) {
	fs := cmd.Flags()
	var p prompt.Prompter
	prompter := func() prompt.Prompter {
		if p != nil {
			return p
		}
		if file, ok := s.in.(*os.File); ok {
			p = prompt.New(file, s.errOut)
		} else {
			p = prompt.NewLinePrompter(s.in, s.errOut)
		}
		return p
	}

	sequence := f.sequence
	if fs.Changed("sequence") {
		seq, err := prompt.ParseSequence(sequence, length)
		if err != nil {
			return "", 0, err
		}
		sequence = seq
	} else {
		seq, err := prompter().Sequence(length)
		if err != nil {
			return "", 0, err
		}
		sequence = seq
	}

	activity := f.activity
	if fs.Changed("activity") {
		if err := genotype.ValidateActivity(activity); err != nil {
			return "", 0, err
		}
	} else {
		v, err := prompter().Activity()
		if err != nil {
			return "", 0, err
		}
		activity = v
	}
	return sequence, activity, nil
}
