// Package resolveerr defines the typed failures the resolution core
// surfaces to callers, grounded on how deps.dev/util/resolve wraps
// ErrNotFound with fmt.Errorf's %w rather than inventing a custom error
// interface hierarchy.
package resolveerr

import (
	"errors"
	"fmt"
)

// ResolutionCancelled is returned, wrapped together with the text of the
// context's error (context.Canceled or DeadlineExceeded), when a walk is
// aborted mid-flight. The caller must discard any partially built graph.
var ResolutionCancelled = errors.New("resolution cancelled")

// ResolutionDidNotConverge is returned when the conflict-resolution
// fixpoint exhausts its iteration budget without every node reaching a
// terminal disposition.
var ResolutionDidNotConverge = errors.New("resolution did not converge")

// InputError reports malformed input: an unknown required id, a malformed
// version range, or an inconsistent dependency-behavior flag.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return fmt.Sprintf("resolver input error: %s", e.Reason) }

// NewInputError builds an InputError with a formatted reason.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}

// ConstraintError wraps the single user-visible diagnostic string produced
// when no solution exists: an unresolvable conflict, or a genuine circular
// dependency. The diagnostic string is the only explanation surfaced; no
// stack trace accompanies it.
type ConstraintError struct {
	Diagnostic string
}

func (e *ConstraintError) Error() string { return e.Diagnostic }

// NewConstraintError builds a ConstraintError from a diagnostic string.
func NewConstraintError(diagnostic string) *ConstraintError {
	return &ConstraintError{Diagnostic: diagnostic}
}

// IsConstraint reports whether err is (or wraps) a ConstraintError.
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}

// IsInput reports whether err is (or wraps) an InputError.
func IsInput(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
