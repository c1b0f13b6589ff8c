// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import (
	"errors"
	"fmt"
)

var (
	ErrNoSolution         = errors.New("no valid assignment")
	ErrTooFewParticipants = errors.New("too few participants")
	ErrInfeasibleGiver    = errors.New("participant has no eligible receiver")
	ErrSearchExhausted    = errors.New("attempt budget exhausted")

	ErrContract          = errors.New("matching: invalid input")
	ErrInvalidAssignment = errors.New("matching: invalid assignment")
)

// NoSolutionError reports that no assignment was produced.
// It matches ErrNoSolution and its Reason with errors.Is.
type NoSolutionError struct {
	Reason   error
	Attempts int
	// Giver is the participant with no eligible receiver (ErrInfeasibleGiver only).
	Giver any
}

func (e *NoSolutionError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrInfeasibleGiver):
		return fmt.Sprintf("%v: %v: %v", ErrNoSolution, e.Reason, e.Giver)
	case errors.Is(e.Reason, ErrSearchExhausted):
		return fmt.Sprintf("%v: %v after %d attempts", ErrNoSolution, e.Reason, e.Attempts)
	default:
		return fmt.Sprintf("%v: %v", ErrNoSolution, e.Reason)
	}
}

func (e *NoSolutionError) Unwrap() []error {
	return []error{ErrNoSolution, e.Reason}
}

func contractErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContract, fmt.Sprintf(format, args...))
}
