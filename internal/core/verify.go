package core

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Decorator turns a VerifyFunc into a zero-argument check over a contract.
type Decorator func(fn VerifyFunc) func() error

// VerifyFunc exercises the real implementation with one row's inputs and
// returns its result. Returning an error counts as a violation of that row.
type VerifyFunc func(args Args, kwargs Kwargs, pre Preconditions) (any, error)

// Contract returns a decorator replaying every row of the named contract
// against a verification function, in table order. The decorated check stops
// at the first row whose result differs from the expected return, or whose
// call fails or panics, and returns a *ViolationError for it.
func (r *Registry) Contract(name string) (Decorator, error) {
	contract, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	return func(fn VerifyFunc) func() error {
		return func() error {
			for _, row := range contract.rows {
				if err := r.checkRow(contract, row, fn); err != nil {
					return err
				}
			}

			return nil
		}
	}, nil
}

// ExhaustiveContract is like Contract, but the decorated check runs every row
// and returns all violations combined. Use multierr.Errors to split them.
func (r *Registry) ExhaustiveContract(name string) (Decorator, error) {
	contract, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	return func(fn VerifyFunc) func() error {
		return func() error {
			var errs error

			for _, row := range contract.rows {
				errs = multierr.Append(errs, r.checkRow(contract, row, fn))
			}

			return errs
		}
	}, nil
}

// Verify replays the named contract against fn and fails the test on the
// first violation, or if the contract is not registered.
func (r *Registry) Verify(t TestReporter, name string, fn VerifyFunc) {
	t.Helper()

	decorate, err := r.Contract(name)
	if err != nil {
		t.Fatalf("%v", err)

		return
	}

	if err := decorate(fn)(); err != nil {
		t.Fatalf("%v", err)
	}
}

// checkRow calls fn with deep copies of the row's inputs and compares its result.
func (r *Registry) checkRow(contract *Contract, row CallSpec, fn VerifyFunc) (err error) {
	violation := func(actual any, cause error) error {
		r.cfg.logger.Debug("contract row violated",
			zap.String("contract", contract.name),
			zap.Stringer("row", row),
			zap.Any("actual", actual),
			zap.Error(cause))

		return &ViolationError{
			Contract:      contract.name,
			Args:          cloneArgs(row.Args),
			Kwargs:        cloneKwargs(row.Kwargs),
			Preconditions: row.Preconditions.clone(),
			Expected:      deepCopy(row.Return),
			Actual:        actual,
			Cause:         cause,
			mismatch:      true,
		}
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = violation(nil, fmt.Errorf("%w: %v", errPanicked, recovered))
		}
	}()

	actual, callErr := fn(cloneArgs(row.Args), cloneKwargs(row.Kwargs), row.Preconditions.clone())
	if callErr != nil {
		return violation(actual, callErr)
	}

	if !ValuesEqual(actual, row.Return) {
		return violation(actual, nil)
	}

	return nil
}
