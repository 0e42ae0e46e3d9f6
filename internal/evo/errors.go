package evo

import (
	"errors"
	"fmt"
)

var (
	ErrPopulationDrift = errors.New("population size drifted")
	ErrLengthDrift     = errors.New("sequence length drifted")
)

// InvalidParameterError rejects a run parameter before any generation starts.
type InvalidParameterError struct {
	Field      string
	Value      any
	Constraint string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: must be %s", e.Field, e.Value, e.Constraint)
}

func invalidParameter(field string, value any, constraint string) error {
	return &InvalidParameterError{Field: field, Value: value, Constraint: constraint}
}
