package core

import "go.uber.org/zap"

// Mock is a stand-in callable that answers strictly from one contract's rows.
//
// A Mock is not safe for concurrent use: the active preconditions are a single
// unguarded field.
type Mock struct {
	contract *Contract
	logger   *zap.Logger
	active   Preconditions
}

// Active returns the preconditions currently in scope (none outside any scope).
func (m *Mock) Active() Preconditions {
	return m.active
}

// Call resolves a call with positional arguments only.
func (m *Mock) Call(args ...any) (any, error) {
	return m.Resolve(args, nil)
}

// CallKw resolves a call with keyword and positional arguments.
func (m *Mock) CallKw(kwargs Kwargs, args ...any) (any, error) {
	return m.Resolve(args, kwargs)
}

// MustCall is Call, failing the test on a violation.
func (m *Mock) MustCall(t TestReporter, args ...any) any {
	t.Helper()

	return m.MustCallKw(t, nil, args...)
}

// MustCallKw is CallKw, failing the test on a violation.
func (m *Mock) MustCallKw(t TestReporter, kwargs Kwargs, args ...any) any {
	t.Helper()

	value, err := m.Resolve(args, kwargs)
	if err != nil {
		t.Fatalf("%v", err)
	}

	return value
}

// Name returns the name of the contract the mock answers from.
func (m *Mock) Name() string {
	return m.contract.name
}

// Pre opens a precondition scope and returns the function that closes it.
//
// The values always form a sequence, even when there is only one, and are not
// normalized the way table rows are: pass exactly the shape the rows hold.
// Closing resets to none, not to any outer scope's value, so scopes on the same
// Mock do not nest.
//
//	defer mock.Pre(7)()
func (m *Mock) Pre(values ...any) func() {
	m.active = Pre(values...)

	return func() {
		m.active = NoPreconditions()
	}
}

// Resolve returns a copy of the return value of the first row whose args,
// kwargs and preconditions all equal the call's. It fails with a *ViolationError when no
// row matches.
func (m *Mock) Resolve(args Args, kwargs Kwargs) (any, error) {
	// arguments may not be comparable, so the table is scanned rather than hashed
	for _, row := range m.contract.rows {
		if !row.nullArgs &&
			argsEqual(args, row.Args) &&
			kwargsEqual(kwargs, row.Kwargs) &&
			row.Preconditions.Equal(m.active) {
			return deepCopy(row.Return), nil
		}
	}

	m.logger.Debug("no contract row matched",
		zap.String("contract", m.contract.name),
		zap.Any("args", args),
		zap.Any("kwargs", kwargs),
		zap.Stringer("preconditions", m.active))

	return nil, &ViolationError{
		Contract:      m.contract.name,
		Args:          args,
		Kwargs:        kwargs,
		Preconditions: m.active,
	}
}

// WithPre runs body inside a precondition scope. The scope is closed however
// body exits, including by panic.
func (m *Mock) WithPre(values []any, body func() error) error {
	defer m.Pre(values...)()

	return body()
}

func newMock(contract *Contract, logger *zap.Logger) *Mock {
	return &Mock{contract: contract, logger: logger}
}
