// Package contractual enforces contract tests driven by declarative tables.
//
// A table lists, per named contract, rows of (args, kwargs, preconditions,
// return). The same table drives both sides of a boundary: ContractMock gives
// callers a stand-in that answers strictly from the rows, and Contract replays
// every row against the real implementation so the mock cannot drift from it.
//
// This is the public API entry point. Implementation lives in internal/core.
package contractual

import (
	"io"
	"os"

	"github.com/toejough/contractual/internal/core"
	"github.com/toejough/contractual/internal/load"
	"go.uber.org/zap"
)

// Row keys recognized in a table.
const (
	KeyArgs          = core.KeyArgs
	KeyKwargs        = core.KeyKwargs
	KeyPreconditions = core.KeyPreconditions
	KeyReturn        = core.KeyReturn
)

// Exported variables.
var (
	// Errors returned by contractual. Match them with errors.Is.
	ErrConfig            = core.ErrConfig
	ErrContractViolation = core.ErrContractViolation
	ErrUnsupportedFormat = load.ErrUnsupportedFormat
)

// Args is the ordered list of positional arguments of a call.
type Args = core.Args

// CallSpec is one normalized row of a contract table.
type CallSpec = core.CallSpec

// Decorator turns a VerifyFunc into a zero-argument check over a contract.
type Decorator = core.Decorator

// Kwargs maps parameter names to values.
type Kwargs = core.Kwargs

// Mock answers calls strictly from one contract's rows.
type Mock = core.Mock

// Option configures a Registry.
type Option = core.Option

// Preconditions is either none or an ordered sequence of values.
type Preconditions = core.Preconditions

// Registry maps contract names to their normalized rows.
type Registry = core.Registry

// Row is one raw row descriptor.
type Row = core.Row

// Table is the raw nested input: contract name to its rows.
type Table = core.Table

// TestReporter is the minimal interface contractual needs from test frameworks.
type TestReporter = core.TestReporter

// VerifyFunc exercises the real implementation with one row's inputs.
type VerifyFunc = core.VerifyFunc

// ViolationError describes a contract violation.
type ViolationError = core.ViolationError

// FromFile builds a Registry from a YAML, JSON or TOML document.
func FromFile(path string, opts ...Option) (*Registry, error) {
	table, err := load.File(osReader{}, path)
	if err != nil {
		return nil, err
	}

	return core.New(table, opts...)
}

// FromTOML builds a Registry from a TOML document.
func FromTOML(r io.Reader, opts ...Option) (*Registry, error) {
	table, err := load.TOML(r)
	if err != nil {
		return nil, err
	}

	return core.New(table, opts...)
}

// FromYAML builds a Registry from a YAML or JSON document.
func FromYAML(r io.Reader, opts ...Option) (*Registry, error) {
	table, err := load.YAML(r)
	if err != nil {
		return nil, err
	}

	return core.New(table, opts...)
}

// MockFor returns the Mock shared by everything in test t for the named
// contract, creating it on first use.
func MockFor(t TestReporter, reg *Registry, name string) (*Mock, error) {
	return core.MockFor(t, reg, name)
}

// New builds a Registry from an in-memory table.
func New(table Table, opts ...Option) (*Registry, error) {
	return core.New(table, opts...)
}

// NoPreconditions returns the none marker.
func NoPreconditions() Preconditions {
	return core.NoPreconditions()
}

// Pre builds a precondition sequence.
func Pre(values ...any) Preconditions {
	return core.Pre(values...)
}

// ValuesEqual reports whether two values are structurally equal, the way rows
// are compared.
func ValuesEqual(actual, expected any) bool {
	return core.ValuesEqual(actual, expected)
}

// WithLiteralScalarPreconditions wraps scalar preconditions as themselves
// instead of as a copy of the row's args.
func WithLiteralScalarPreconditions() Option {
	return core.WithLiteralScalarPreconditions()
}

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(logger *zap.Logger) Option {
	return core.WithLogger(logger)
}

// osReader reads files from the real filesystem.
type osReader struct{}

// ReadFile returns the contents of the named file.
func (osReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:wrapcheck // wrapped by load.File
}
