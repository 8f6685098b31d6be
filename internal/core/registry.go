package core

import (
	"maps"
	"slices"

	"go.uber.org/zap"
)

// Registry maps contract names to their normalized contracts.
// It is built once and only read afterwards, so any number of Mocks may share it.
type Registry struct {
	contracts map[string]*Contract
	cfg       config
}

// ContractMock returns a new Mock answering from the named contract.
func (r *Registry) ContractMock(name string) (*Mock, error) {
	contract, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	return newMock(contract, r.cfg.logger), nil
}

// Names returns the registered contract names, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.contracts))
}

// Rows returns a copy of the named contract's rows.
func (r *Registry) Rows(name string) ([]CallSpec, bool) {
	contract, ok := r.contracts[name]
	if !ok {
		return nil, false
	}

	return contract.Rows(), true
}

func (r *Registry) lookup(name string) (*Contract, error) {
	contract, ok := r.contracts[name]
	if !ok {
		return nil, configErrorf("%s is not a registered contract mock", name)
	}

	return contract, nil
}

// New normalizes the raw table into a Registry.
// A malformed row fails the whole construction with ErrConfig.
func New(table Table, opts ...Option) (*Registry, error) {
	cfg := newConfig(opts)
	contracts := make(map[string]*Contract, len(table))

	// sorted so the first reported error does not depend on map order
	for _, name := range slices.Sorted(maps.Keys(table)) {
		contract, err := buildContract(name, table[name], cfg.literalScalars)
		if err != nil {
			return nil, err
		}

		contracts[name] = contract

		cfg.logger.Debug("registered contract",
			zap.String("contract", name),
			zap.Int("rows", len(contract.rows)))
	}

	return &Registry{contracts: contracts, cfg: cfg}, nil
}
