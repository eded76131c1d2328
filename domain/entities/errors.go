package entities

import "fmt"

// InvalidSelectionError indicates manually supplied numbers that violate a
// game's shape constraints. The caller can recover by prompting for a new
// selection. Raised before any random draw or persistence attempt.
type InvalidSelectionError struct {
	Game   Game
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid %s selection: %s", e.Game, e.Reason)
}

// IOError wraps a persistence failure surfaced by the ticket store. The
// engine never retries on its own; callers decide whether to retry.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
