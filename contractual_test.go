package contractual_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/contractual"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func ExampleRegistry_ContractMock() {
	reg, err := contractual.New(contractual.Table{
		"add": {
			{"args": []any{2, 2}, "return": 4},
			{"args": []any{3, 5}, "return": 8},
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	add, _ := reg.ContractMock("add")

	sum, err := add.Call(3, 5)
	fmt.Println(sum, err)

	_, err = add.Call(1, 1)
	fmt.Println(errors.Is(err, contractual.ErrContractViolation))
	// Output:
	// 8 <nil>
	// true
}

func ExampleRegistry_Contract() {
	reg, _ := contractual.New(contractual.Table{
		"offset": {
			{"preconditions": []any{7}, "args": []any{2, 2}, "return": 11},
		},
	})

	decorate, _ := reg.Contract("offset")
	check := decorate(func(args contractual.Args, _ contractual.Kwargs, pre contractual.Preconditions) (any, error) {
		return pre.Values()[0].(int) + args[0].(int) + args[1].(int), nil
	})

	fmt.Println(check())
	// Output: <nil>
}

func TestFromFile_AllFormats(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"testdata/contracts.yaml", "testdata/contracts.json", "testdata/contracts.toml"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			reg, err := contractual.FromFile(path)
			g.Expect(err).NotTo(HaveOccurred())

			mock, err := reg.ContractMock("function_for_contract_precondition")
			g.Expect(err).NotTo(HaveOccurred())

			err = mock.WithPre([]any{5}, func() error {
				got, callErr := mock.Call(3, 5)
				g.Expect(got).To(Equal(13))

				return callErr
			})
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(mock.Active().IsNone()).To(BeTrue())
		})
	}
}

func TestFromFile_Errors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := contractual.FromFile("testdata/contracts.ini")
	g.Expect(err).To(MatchError(contractual.ErrUnsupportedFormat))

	_, err = contractual.FromFile("testdata/missing.yaml")
	g.Expect(err).To(HaveOccurred())
	g.Expect(errors.Is(err, contractual.ErrUnsupportedFormat)).To(BeFalse())
}

func TestFromYAML(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg, err := contractual.FromYAML(strings.NewReader(`
function_for_contract_kwargs:
  - kwargs: {kw: 7}
    return: 5
`))
	g.Expect(err).NotTo(HaveOccurred())

	mock, err := reg.ContractMock("function_for_contract_kwargs")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mock.CallKw(contractual.Kwargs{"kw": 7})).To(Equal(5))

	_, err = contractual.FromYAML(strings.NewReader("c:\n  - args: {a: 1}\n"))
	g.Expect(err).To(MatchError(contractual.ErrConfig))

	_, err = contractual.FromYAML(strings.NewReader("c:\n  - kwargs: null\n"))
	g.Expect(err).To(MatchError(contractual.ErrConfig))
}

func TestFromTOML(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg, err := contractual.FromTOML(strings.NewReader("[[add]]\nargs = [2, 2]\nreturn = 4\n"))
	g.Expect(err).NotTo(HaveOccurred())

	mock, err := reg.ContractMock("add")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mock.Call(2, 2)).To(Equal(4))

	_, err = contractual.FromTOML(strings.NewReader("add = [\n"))
	g.Expect(err).To(MatchError(contractual.ErrConfig))
}

func TestMockAndContractShareRows(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg, err := contractual.FromFile("testdata/contracts.yaml")
	g.Expect(err).NotTo(HaveOccurred())

	add := func(args contractual.Args, _ contractual.Kwargs, _ contractual.Preconditions) (any, error) {
		return args[0].(int) + args[1].(int), nil
	}

	reg.Verify(t, "function_for_contract_args", add)

	mock, err := contractual.MockFor(t, reg, "function_for_contract_args")
	g.Expect(err).NotTo(HaveOccurred())

	again, err := contractual.MockFor(t, reg, "function_for_contract_args")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(again).To(BeIdenticalTo(mock))

	for _, row := range mustRows(t, reg, "function_for_contract_args") {
		g.Expect(mock.Resolve(row.Args, row.Kwargs)).To(Equal(row.Return))
	}
}

func TestContract_WrongImplementation(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reg, err := contractual.FromFile("testdata/contracts.yaml")
	g.Expect(err).NotTo(HaveOccurred())

	decorate, err := reg.Contract("function_for_contract_kwargs")
	g.Expect(err).NotTo(HaveOccurred())

	err = decorate(func(_ contractual.Args, kwargs contractual.Kwargs, _ contractual.Preconditions) (any, error) {
		return kwargs["kw"].(int) - 3, nil
	})()

	var violation *contractual.ViolationError

	g.Expect(errors.As(err, &violation)).To(BeTrue())
	g.Expect(violation.Contract).To(Equal("function_for_contract_kwargs"))
	g.Expect(violation.Expected).To(Equal(5))
	g.Expect(violation.Actual).To(Equal(4))
}

func TestPreconditionConstructors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(contractual.NoPreconditions().IsNone()).To(BeTrue())
	g.Expect(contractual.Pre().IsNone()).To(BeFalse())
	g.Expect(contractual.Pre(7).Equal(contractual.Pre(7))).To(BeTrue())
	g.Expect(contractual.Pre().Equal(contractual.NoPreconditions())).To(BeFalse())
	g.Expect(contractual.ValuesEqual([]any{1, "a"}, []any{1, "a"})).To(BeTrue())
	g.Expect(contractual.ValuesEqual(1, 1.0)).To(BeFalse())
}

func TestOptions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	core, logs := observer.New(zap.DebugLevel)

	table := contractual.Table{
		"c": {{contractual.KeyArgs: []any{1}, contractual.KeyPreconditions: 7, contractual.KeyReturn: 2}},
	}

	reg, err := contractual.New(table, contractual.WithLiteralScalarPreconditions(), contractual.WithLogger(zap.New(core)))
	g.Expect(err).NotTo(HaveOccurred())

	rows := mustRows(t, reg, "c")
	g.Expect(rows[0].Preconditions.Equal(contractual.Pre(7))).To(BeTrue())
	g.Expect(logs.FilterMessage("registered contract").Len()).To(Equal(1))

	defaultReg, err := contractual.New(table)
	g.Expect(err).NotTo(HaveOccurred())

	rows = mustRows(t, defaultReg, "c")
	g.Expect(rows[0].Preconditions.Equal(contractual.Pre([]any{1}))).To(BeTrue())
}

func mustRows(t *testing.T, reg *contractual.Registry, name string) []contractual.CallSpec {
	t.Helper()

	rows, ok := reg.Rows(name)
	if !ok {
		t.Fatalf("no contract %q", name)
	}

	return rows
}
