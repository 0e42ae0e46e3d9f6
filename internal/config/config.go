// Package config holds the run parameters for seqevoctl: compiled defaults,
// an optional YAML overlay, and struct-tag validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"seqevo/internal/evo"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

type Config struct {
	Generations    int     `yaml:"generations" validate:"gte=1"`
	PopulationSize int     `yaml:"population_size" validate:"gte=2"`
	SequenceLength int     `yaml:"sequence_length" validate:"gte=1"`
	EliteFraction  float64 `yaml:"elite_fraction" validate:"gt=0,lte=1"`
	// Seed of 0 means derive one from the wall clock at run time.
	Seed     int64  `yaml:"seed"`
	Format   string `yaml:"format" validate:"oneof=table json"`
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

func Default() Config {
	return Config{
		Generations:    evo.DefaultGenerations,
		PopulationSize: evo.DefaultPopulationSize,
		SequenceLength: evo.DefaultSequenceLength,
		EliteFraction:  evo.DefaultEliteFraction,
		Format:         FormatTable,
		LogLevel:       "warn",
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		if evo.EliteSize(c.PopulationSize, c.EliteFraction) < 1 {
			return fmt.Errorf("invalid config: elite_fraction %v keeps no genomes of population_size %d", c.EliteFraction, c.PopulationSize)
		}
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
