package genotype

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"seqevo/internal/model"
)

const (
	// Alphabet is the base set used for validation and population seeding.
	Alphabet = "ACGT"
	// MutationAlphabet is the draw order used when a base is replaced.
	MutationAlphabet = "ACTG"
)

type SequenceReason string

const (
	ReasonLength SequenceReason = "length"
	ReasonSymbol SequenceReason = "symbol"
)

// InvalidSequenceError reports a sequence that is the wrong length or carries a
// symbol outside the alphabet.
type InvalidSequenceError struct {
	Sequence string
	Reason   SequenceReason
	Want     int
	Index    int
}

func (e *InvalidSequenceError) Error() string {
	switch e.Reason {
	case ReasonLength:
		return fmt.Sprintf("invalid sequence: must be length %d bases, got %d", e.Want, len(e.Sequence))
	case ReasonSymbol:
		return fmt.Sprintf("invalid sequence: use only bases A, C, G, and T (found %q at %d)", e.Sequence[e.Index], e.Index)
	default:
		return "invalid sequence"
	}
}

// InvalidActivityError reports an activity value outside [0.0, 1.0).
type InvalidActivityError struct {
	Value float64
}

func (e *InvalidActivityError) Error() string {
	return fmt.Sprintf("invalid activity value %v: must be on the interval [0.0, 1.0)", e.Value)
}

var ErrEmptyAlphabet = errors.New("alphabet is empty")

func ValidateSequence(seq string, length int) error {
	if len(seq) != length {
		return &InvalidSequenceError{Sequence: seq, Reason: ReasonLength, Want: length}
	}
	for i := 0; i < len(seq); i++ {
		if strings.IndexByte(Alphabet, seq[i]) < 0 {
			return &InvalidSequenceError{Sequence: seq, Reason: ReasonSymbol, Want: length, Index: i}
		}
	}
	return nil
}

func ValidateActivity(v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return &InvalidActivityError{Value: v}
	}
	return nil
}

// Validate checks both halves of a user-supplied genome.
func Validate(g model.Genome, length int) error {
	if err := ValidateSequence(g.Bases, length); err != nil {
		return err
	}
	return ValidateActivity(g.Fitness)
}
