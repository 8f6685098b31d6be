package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akedrou/textdiff"
)

// Exported variables.
var (
	// ErrConfig marks a malformed contract table or an unknown contract name.
	ErrConfig = errors.New("contract configuration error")
	// ErrContractViolation marks a mock call no row accepts, or a verified
	// function that disagrees with a row.
	ErrContractViolation = errors.New("contract violation")
)

// ViolationError carries everything needed to diagnose a contract violation
// without re-running the test.
type ViolationError struct {
	Contract      string
	Args          Args
	Kwargs        Kwargs
	Preconditions Preconditions
	// Expected and Actual are only meaningful for verification mismatches.
	Expected any
	Actual   any
	// Cause is the error or recovered panic of the verified function, if any.
	Cause error

	mismatch bool
}

// Error renders the violation.
func (e *ViolationError) Error() string {
	if !e.mismatch {
		return fmt.Sprintf("%s: args: %v kwargs: %v precon: %v is not valid for contract mock %q",
			ErrContractViolation, e.Args, map[string]any(e.Kwargs), e.Preconditions, e.Contract)
	}

	var msg strings.Builder

	fmt.Fprintf(&msg, "%s: contract %q: function with args: %v, kwargs: %v and preconditions: %v does not return %#v",
		ErrContractViolation, e.Contract, e.Args, map[string]any(e.Kwargs), e.Preconditions, e.Expected)

	if e.Cause != nil {
		fmt.Fprintf(&msg, ": %v", e.Cause)

		return msg.String()
	}

	diff := textdiff.Unified("expected", "actual",
		fmt.Sprintf("%#v\n", e.Expected), fmt.Sprintf("%#v\n", e.Actual))
	if diff != "" {
		msg.WriteString("\n")
		msg.WriteString(diff)
	}

	return msg.String()
}

// Mismatch reports whether the violation came from a verified function rather
// than from an unmatched mock call.
func (e *ViolationError) Mismatch() bool {
	return e.mismatch
}

// Unwrap exposes ErrContractViolation and, when present, the cause.
func (e *ViolationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrContractViolation}
	}

	return []error{ErrContractViolation, e.Cause}
}

// unexported variables.
var (
	// errPanicked wraps values recovered from a verified function.
	errPanicked = errors.New("verified function panicked")
)

// configErrorf formats an ErrConfig-wrapped error.
func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfig}, args...)...)
}
