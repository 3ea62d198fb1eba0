package thsa

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes the failures the builder can report, per the
// error taxonomy: UnsupportedGuardShape and InvalidInputId/
// UnknownAugmentedState are fatal to the call that produced them;
// AbstractStateNotFound/TimeIndexNotFound are not errors at all but the
// sentinel-zero protocol consumed internally by the switching builder.
type ErrorKind int

const (
	// ErrUnsupportedGuardShape: a transition's guard does not reduce to
	// an axis-aligned Box. Fatal to the whole build.
	ErrUnsupportedGuardShape ErrorKind = iota
	// ErrInvalidInputID: an accessor was called with a global input id
	// outside the continuous/switching ranges. Fatal to that call only.
	ErrInvalidInputID
	// ErrUnknownAugmentedState: AbstractState resolved an augmented
	// triple that is not present in aug2int. Fatal to that call only.
	ErrUnknownAugmentedState
	// ErrInvalidConfiguration: a BuildConfig entry is missing or
	// inconsistent with the hybrid system (e.g. no growth bound for a
	// declared mode).
	ErrInvalidConfiguration
)

// String names the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedGuardShape:
		return "UnsupportedGuardShape"
	case ErrInvalidInputID:
		return "InvalidInputId"
	case ErrUnknownAugmentedState:
		return "UnknownAugmentedState"
	case ErrInvalidConfiguration:
		return "InvalidConfiguration"
	default:
		return "UnknownError"
	}
}

// BuildError is a structured error carrying whichever of mode id,
// transition id or global input id are relevant: callers receive a
// typed error with the offending mode id, transition id, or input id
// when available.
type BuildError struct {
	Kind    ErrorKind
	Message string

	Mode  *ModeID
	Trans *TransitionID
	Input *GlobalInputID

	Cause error
}

func (e *BuildError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", e.Kind))
	parts = append(parts, e.Message)
	if e.Mode != nil {
		parts = append(parts, fmt.Sprintf("mode=%d", *e.Mode))
	}
	if e.Trans != nil {
		parts = append(parts, fmt.Sprintf("transition=%d", *e.Trans))
	}
	if e.Input != nil {
		parts = append(parts, fmt.Sprintf("input=%d", *e.Input))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("caused by: %v", e.Cause))
	}
	return strings.Join(parts, " ")
}

// Unwrap exposes the underlying cause, if any, for errors.Is/As.
func (e *BuildError) Unwrap() error { return e.Cause }

// Is matches another *BuildError by kind.
func (e *BuildError) Is(target error) bool {
	t, ok := target.(*BuildError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newBuildError(kind ErrorKind, format string, args ...any) *BuildError {
	return &BuildError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *BuildError) withMode(k ModeID) *BuildError   { e.Mode = &k; return e }
func (e *BuildError) withTrans(t TransitionID) *BuildError {
	e.Trans = &t
	return e
}
func (e *BuildError) withInput(g GlobalInputID) *BuildError {
	e.Input = &g
	return e
}

// ErrorCollector aggregates multiple BuildErrors so a single failed
// build reports every offending guard/mode rather than the first one.
type ErrorCollector struct {
	errors []error
}

// NewErrorCollector creates an empty collector.
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

// Add records err if non-nil.
func (c *ErrorCollector) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// HasErrors reports whether anything was collected.
func (c *ErrorCollector) HasErrors() bool { return len(c.errors) > 0 }

// Error implements error, joining every collected message.
func (c *ErrorCollector) Error() string {
	if len(c.errors) == 0 {
		return "no errors"
	}
	if len(c.errors) == 1 {
		return c.errors[0].Error()
	}
	msgs := make([]string, len(c.errors))
	for i, err := range c.errors {
		msgs[i] = fmt.Sprintf("%d. %s", i+1, err.Error())
	}
	return "multiple build errors occurred:\n" + strings.Join(msgs, "\n")
}

// ToError returns the collector as an error, or nil if nothing was
// collected.
func (c *ErrorCollector) ToError() error {
	if c.HasErrors() {
		return c
	}
	return nil
}

// Errors returns the individually collected errors.
func (c *ErrorCollector) Errors() []error { return c.errors }
