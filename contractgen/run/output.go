package run

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toejough/go-reorder"
)

// Writer interface for writing generated code.
type Writer interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// WriteGeneratedCode writes the generated code to generated_<varName>.go, or to generated_<varName>_test.go when the
// go:generate directive sits in a test file or a test package. varName must be a Go identifier.
func WriteGeneratedCode(
	code string, varName string, pkgName string, getEnv func(string) string, fileWriter Writer, out io.Writer,
) error {
	const generatedFilePermissions = 0o600

	suffix := ".go"
	if strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(getEnv("GOFILE"), "_test.go") {
		suffix = "_test.go"
	}

	filename := "generated_" + varName + suffix

	reordered, err := reorder.Source(code)
	if err != nil {
		// If reordering fails, log but continue with original code
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileWriter.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}
