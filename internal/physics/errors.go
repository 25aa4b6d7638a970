package physics

import (
	"errors"
	"fmt"
)

// Domain errors for kernel operations.
var (
	// ErrInvalidParticle indicates a particle with unusable tunables.
	ErrInvalidParticle = errors.New("physics: invalid particle")

	// ErrInvalidHandle indicates a handle that no longer resolves.
	ErrInvalidHandle = errors.New("physics: invalid particle handle")

	// ErrInvalidState indicates NaN or Inf in a particle's kinematic state.
	ErrInvalidState = errors.New("physics: invalid particle state (NaN or Inf detected)")
)

// StateError wraps ErrInvalidState with the offending particle.
type StateError struct {
	Handle Handle
	Field  string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: particle %s %s", ErrInvalidState, e.Handle, e.Field)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }
