package core_test

import (
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/contractual/internal/core"
	"pgregory.net/rapid"
)

// TestMockFor_SameT_ReturnsSameMock verifies that helpers in one test share
// one mock, and therefore one precondition scope.
func TestMockFor_SameT_ReturnsSameMock(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg := mustRegistry(t, exampleTable())

	mock1, err := core.MockFor(t, reg, "function_for_contract_precondition")
	g.Expect(err).NotTo(HaveOccurred())

	mock2, err := core.MockFor(t, reg, "function_for_contract_precondition")
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(mock1).To(BeIdenticalTo(mock2), "same t should return same Mock")

	defer mock1.Pre(7)()

	g.Expect(mock2.Call(2, 2)).To(Equal(11))
}

// TestMockFor_DifferentKeys_ReturnDifferentMocks verifies that tests,
// registries and contract names each get their own mock.
func TestMockFor_DifferentKeys_ReturnDifferentMocks(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg := mustRegistry(t, exampleTable())
	other := mustRegistry(t, exampleTable())

	var mock1, mock2 *core.Mock

	t.Run("subtest1", func(t *testing.T) {
		mock1, _ = core.MockFor(t, reg, "function_for_contract_args")
	})

	t.Run("subtest2", func(t *testing.T) {
		mock2, _ = core.MockFor(t, reg, "function_for_contract_args")
	})

	g.Expect(mock1).NotTo(BeIdenticalTo(mock2), "different t should return different Mock")

	byName, _ := core.MockFor(t, reg, "function_for_contract_kwargs")
	byRegistry, _ := core.MockFor(t, other, "function_for_contract_kwargs")

	g.Expect(byName).NotTo(BeIdenticalTo(byRegistry))
}

func TestMockFor_UnknownName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mock, err := core.MockFor(t, mustRegistry(t, exampleTable()), "nope")

	g.Expect(mock).To(BeNil())
	g.Expect(err).To(MatchError(core.ErrConfig))
}

// TestMockFor_WithoutCleanup verifies reporters that cannot register cleanups
// still get a shared mock.
func TestMockFor_WithoutCleanup(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg := mustRegistry(t, exampleTable())
	reporter := &fakeReporter{}

	mock1, err := core.MockFor(reporter, reg, "function_for_contract_args")
	g.Expect(err).NotTo(HaveOccurred())

	mock2, err := core.MockFor(reporter, reg, "function_for_contract_args")
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(mock1).To(BeIdenticalTo(mock2))
}

// valueReporter is a non-comparable TestReporter.
type valueReporter struct {
	failures []string
}

func (valueReporter) Fatalf(string, ...any) {}

func (valueReporter) Helper() {}

// TestMockFor_NonComparableReporterPanics pins the documented requirement that
// reporters be usable as map keys.
func TestMockFor_NonComparableReporterPanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg := mustRegistry(t, exampleTable())

	g.Expect(func() {
		_, _ = core.MockFor(valueReporter{}, reg, "function_for_contract_args")
	}).To(Panic())
}

// TestMockFor_ConcurrentAccess_Rapid uses property-based testing to verify
// concurrent lookups from one test always agree.
func TestMockFor_ConcurrentAccess_Rapid(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t, exampleTable())

	rapid.Check(t, func(rt *rapid.T) {
		numGoroutines := rapid.IntRange(2, 50).Draw(rt, "numGoroutines")
		results := make([]*core.Mock, numGoroutines)

		var wg sync.WaitGroup
		wg.Add(numGoroutines)

		for i := range numGoroutines {
			go func(idx int) {
				defer wg.Done()

				results[idx], _ = core.MockFor(t, reg, "function_for_contract_args")
			}(i)
		}

		wg.Wait()

		for i := 1; i < numGoroutines; i++ {
			if results[i] != results[0] {
				rt.Fatalf("goroutine %d got different Mock", i)
			}
		}
	})
}
