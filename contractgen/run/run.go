// Package run implements the main logic for the contractgen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"go/token"
	"io"

	"github.com/alexflint/go-arg"
	"github.com/toejough/contractual/internal/core"
	"github.com/toejough/contractual/internal/load"
)

// FileSystem interface for mocking.
type FileSystem interface {
	load.FileReader
	Writer
}

// Run executes the contractgen tool logic. It takes command-line arguments, an environment variable getter, a
// FileSystem for file operations and a writer for status output. On success it writes a Go source file declaring the
// document's contract table as a contractual.Table literal, in the calling package.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, out io.Writer) error {
	info, err := getGeneratorCallInfo(args, getEnv)
	if err != nil {
		return err
	}

	table, err := load.File(fileSys, info.source)
	if err != nil {
		return err
	}

	// refuse to generate a table the registry would reject at test time
	var opts []core.Option
	if info.literalScalars {
		opts = append(opts, core.WithLiteralScalarPreconditions())
	}

	_, err = core.New(table, opts...)
	if err != nil {
		return fmt.Errorf("invalid contract table in %s: %w", info.source, err)
	}

	file, err := buildFile(info.pkgName, info.varName, info.source, table)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", info.varName, err)
	}

	code, err := printFile(file)
	if err != nil {
		return err
	}

	return WriteGeneratedCode(code, info.varName, info.pkgName, getEnv, fileSys, out)
}

// unexported variables.
var (
	errBadName   = errors.New("invalid variable name")
	errNoPackage = errors.New("GOPACKAGE is not set; run contractgen from a //go:generate directive")
)

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	File           string `arg:"positional,required" help:"contract document (.yaml, .yml, .json or .toml)"`
	Name           string `arg:"--name"              default:"Contracts" help:"name of the generated table variable"`
	LiteralScalars bool   `arg:"--literal-scalars"   help:"validate with scalar preconditions taken literally"`
}

// generatorInfo holds information gathered for generation.
type generatorInfo struct {
	pkgName, varName, source string
	literalScalars           bool
}

// getGeneratorCallInfo returns basic information about the current call to the generator.
func getGeneratorCallInfo(args []string, getEnv func(string) string) (generatorInfo, error) {
	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		return generatorInfo{}, errNoPackage
	}

	parsed, err := parseArgs(args)
	if err != nil {
		return generatorInfo{}, err
	}

	if !token.IsIdentifier(parsed.Name) {
		return generatorInfo{}, fmt.Errorf("%w: %q", errBadName, parsed.Name)
	}

	return generatorInfo{
		pkgName:        pkgName,
		varName:        parsed.Name,
		source:         parsed.File,
		literalScalars: parsed.LiteralScalars,
	}, nil
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "contractgen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}
