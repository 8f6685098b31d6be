package core_test

import (
	"fmt"
	"testing"

	"github.com/toejough/contractual/internal/core"
)

// fakeReporter records Fatalf calls instead of stopping the test.
type fakeReporter struct {
	failures []string
}

func (f *fakeReporter) Fatalf(format string, args ...any) {
	f.failures = append(f.failures, fmt.Sprintf(format, args...))
}

func (f *fakeReporter) Helper() {}

// exampleTable mirrors the three functions the contracts describe:
// args (a+b), kwargs (kw-2) and preconditions (fix+a+b).
func exampleTable() core.Table {
	return core.Table{
		"function_for_contract_args": {
			{"preconditions": nil, "args": []any{2, 2}, "return": 4},
			{"preconditions": nil, "args": []any{3, 5}, "return": 8},
		},
		"function_for_contract_kwargs": {
			{"preconditions": nil, "kwargs": map[string]any{"kw": 7}, "return": 5},
		},
		"function_for_contract_precondition": {
			{"preconditions": []any{7}, "args": []any{2, 2}, "return": 11},
			{"preconditions": []any{5}, "args": []any{3, 5}, "return": 13},
		},
	}
}

func mustRegistry(t *testing.T, table core.Table, opts ...core.Option) *core.Registry {
	t.Helper()

	reg, err := core.New(table, opts...)
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}

	return reg
}

func mustMock(t *testing.T, reg *core.Registry, name string) *core.Mock {
	t.Helper()

	mock, err := reg.ContractMock(name)
	if err != nil {
		t.Fatalf("creating mock %q: %v", name, err)
	}

	return mock
}
