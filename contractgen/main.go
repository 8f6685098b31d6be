// contractgen is a tool to embed a contract document in Go source.
// To use it, install it with `go install github.com/toejough/contractual/contractgen@latest`
// and add a `//go:generate contractgen contracts.yaml` comment to a file in the package that needs the table. The
// generated file declares `var Contracts = contractual.Table{...}`; add a `--name <Var>` flag to pick another variable
// name. The file is generated_<Var>.go, or generated_<Var>_test.go when generating from a test file or test package.
package main

import (
	"fmt"
	"os"

	"github.com/toejough/contractual/contractgen/run"
)

// main is the entry point of the contractgen tool.
func main() {
	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}
