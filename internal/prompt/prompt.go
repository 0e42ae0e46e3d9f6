package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"seqevo/internal/genotype"
)

// Prompter collects the initial genome from a person.
type Prompter interface {
	Sequence(length int) (string, error)
	Activity() (float64, error)
}

// ErrNotANumber is returned by ParseActivity for input that is not a decimal.
var ErrNotANumber = errors.New("input must be a decimal number")

func ParseSequence(raw string, length int) (string, error) {
	seq := strings.TrimRight(raw, "\r\n")
	if err := genotype.ValidateSequence(seq, length); err != nil {
		return "", err
	}
	return seq, nil
}

func ParseActivity(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	if err := genotype.ValidateActivity(v); err != nil {
		return 0, err
	}
	return v, nil
}

// Message renders a validation error the way the console reports it.
func Message(err error) string {
	var seqErr *genotype.InvalidSequenceError
	var actErr *genotype.InvalidActivityError
	switch {
	case errors.As(err, &seqErr) && seqErr.Reason == genotype.ReasonLength:
		return fmt.Sprintf("ERROR: Invalid Sequence! Must be length %d bases.", seqErr.Want)
	case errors.As(err, &seqErr):
		return "ERROR: Invalid Sequence! Use only bases A, C, G, and T."
	case errors.As(err, &actErr):
		return "ERROR: Invalid Activity Value! Must be on the interval [0.0, 1.0)."
	case errors.Is(err, ErrNotANumber):
		return "ERROR: Invalid Activity Value Data Type! Input must be a decimal number."
	default:
		return "ERROR: " + err.Error()
	}
}

func sequenceQuestion(length int) string {
	return fmt.Sprintf("Enter the initial DNA Sequence, with bases ACGT and length %d: ", length)
}

const activityQuestion = "Enter the activity value for the initial sequence, a decimal on interval [0.0, 1.0): "
