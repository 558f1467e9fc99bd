// Package ierrors implements the generator's two-member error
// taxonomy: ConfigError (bad CLI/standard/seed, reported and exited)
// and InvariantViolation (a broken internal invariant — a programmer
// error, never expected at runtime).
package ierrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind distinguishes the two error taxonomies. A UB tag is
// deliberately not a Kind here — it is a value-level flag processed by
// the rebuild loop (internal/ir), never surfaced as a Go error.
type Kind string

const (
	ConfigError       Kind = "ConfigError"
	InvariantViolation Kind = "InvariantViolation"
)

// Location pinpoints where a violation was raised: the file, line,
// and function an InvariantViolation reports alongside its reason.
type Location struct {
	File     string
	Line     int
	Function string
}

// GenError is the concrete error type returned for both taxonomies.
type GenError struct {
	Kind     Kind
	Reason   string
	Location Location
	cause    error
}

func (e *GenError) Error() string {
	if e.Location.File == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s (at %s:%d in %s)", e.Kind, e.Reason, e.Location.File, e.Location.Line, e.Location.Function)
}

// Unwrap exposes the pkg/errors-captured stack trace via errors.Unwrap /
// errors.As, without making GenError itself carry stack-walking logic.
func (e *GenError) Unwrap() error { return e.cause }

// Format lets %+v on a GenError print the underlying stack trace when
// one was captured (InvariantViolation only).
func (e *GenError) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('+') && e.cause != nil:
		fmt.Fprintf(s, "%s\n%+v", e.Error(), e.cause)
	default:
		fmt.Fprint(s, e.Error())
	}
}

// NewConfigError reports a bad CLI option, unknown --std, or seed
// version-tag mismatch. Callers exit with code -1 after printing it to
// stderr.
func NewConfigError(reason string) *GenError {
	return &GenError{Kind: ConfigError, Reason: reason}
}

// NewInvariantViolation reports a broken internal invariant: a type/
// kind mismatch, a missing member, an unsupported Data kind, or a
// UBTag surviving to the root of a completed expression.
// file/line/function should be populated with runtime.Caller(1) by the
// package that detected the violation, since the whole point is to
// report where in *this* engine's code the invariant broke, not where
// ierrors.NewInvariantViolation was called from.
func NewInvariantViolation(reason, file string, line int, function string) *GenError {
	return &GenError{
		Kind:   InvariantViolation,
		Reason: reason,
		Location: Location{
			File:     file,
			Line:     line,
			Function: function,
		},
		cause: errors.WithStack(fmt.Errorf("%s", reason)),
	}
}

// Is supports errors.Is(err, ierrors.ConfigError) / errors.Is(err,
// ierrors.InvariantViolation) style checks against the Kind constants
// by way of a sentinel wrapper.
func (e *GenError) Is(target error) bool {
	if k, ok := target.(kindSentinel); ok {
		return e.Kind == Kind(k)
	}
	return false
}

type kindSentinel string

func (kindSentinel) Error() string { return "" }

// AsSentinel lets callers write errors.Is(err, ierrors.AsSentinel(ierrors.ConfigError)).
func AsSentinel(k Kind) error { return kindSentinel(k) }
