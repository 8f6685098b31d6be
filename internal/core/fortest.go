package core

import "sync"

// TestReporter is the minimal interface contractual needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// MockFor returns the Mock for the given test, registry and contract name,
// creating one if needed. Multiple calls with the same TestReporter return the
// same Mock, so helpers within one test share its precondition scope.
//
// If the TestReporter supports Cleanup (like *testing.T), the Mock is
// automatically dropped when the test completes.
//
// The TestReporter is used as a map key, so it must be comparable: pass a
// pointer such as *testing.T. A non-comparable reporter (a struct value holding
// a slice, map or func) makes MockFor panic.
func MockFor(t TestReporter, reg *Registry, name string) (*Mock, error) {
	key := testMockKey{t: t, reg: reg, name: name}

	testMocksMu.Lock()
	defer testMocksMu.Unlock()

	if mock, ok := testMocks[key]; ok {
		return mock, nil
	}

	mock, err := reg.ContractMock(name)
	if err != nil {
		return nil, err
	}

	testMocks[key] = mock

	// Register cleanup if the TestReporter supports it
	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			testMocksMu.Lock()
			delete(testMocks, key)
			testMocksMu.Unlock()
		})
	}

	return mock, nil
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	testMocks = make(map[testMockKey]*Mock)
	//nolint:gochecknoglobals // Mutex for testMocks
	testMocksMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

type testMockKey struct {
	t    TestReporter
	reg  *Registry
	name string
}
