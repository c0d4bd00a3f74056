package fold

import (
	"errors"
	"fmt"
)

// ErrVerificationFailed marks a normal negative verification outcome: the
// artifact is well formed but does not attest to the claimed statement.
// Callers report it; they do not abort on it. Scheme-internal faults
// (malformed artifact, parameter mismatch) are returned as distinct errors.
var ErrVerificationFailed = errors.New("recursive proof verification failed")

// StepError reports a witness-generation or fold failure at a specific
// step. The whole run aborts; no partial artifact survives.
type StepError struct {
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
