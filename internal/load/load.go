// Package load decodes contract tables from structured documents.
//
// A document's top level maps contract names to lists of rows, exactly like an
// in-memory core.Table. YAML, JSON (through the YAML parser) and TOML are
// understood; the format is chosen by file extension.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/toejough/contractual/internal/core"
	"go.yaml.in/yaml/v3"
)

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Exported variables.
var (
	// ErrUnsupportedFormat is returned for documents no compiled-in parser handles.
	ErrUnsupportedFormat = errors.New("unsupported contract document format")
)

// Format names a document syntax.
type Format string

// FileReader reads whole files. The os package satisfies it via an adapter.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

// Decode parses data in the given format into a raw table.
func Decode(format Format, data []byte) (core.Table, error) {
	switch format {
	case FormatYAML:
		return YAML(bytes.NewReader(data))
	case FormatTOML:
		return TOML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: a parser for %q documents is required", ErrUnsupportedFormat, format)
	}
}

// File reads and decodes the document at path.
func File(reader FileReader, path string) (core.Table, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := reader.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	table, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return table, nil
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: a parser for %q documents is required", ErrUnsupportedFormat, ext)
	}
}

// TOML decodes a TOML document. Integers are narrowed from int64 to int so the
// table compares the same way a YAML one does.
func TOML(r io.Reader) (core.Table, error) {
	var doc map[string]any

	_, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding toml: %w", core.ErrConfig, err)
	}

	narrowed, _ := narrowTOML(doc).(map[string]any)

	return ToTable(narrowed)
}

// ToTable converts a decoded document into a raw table.
func ToTable(doc map[string]any) (core.Table, error) {
	table := make(core.Table, len(doc))

	for name, rawRows := range doc {
		rows, err := toRows(rawRows)
		if err != nil {
			return nil, fmt.Errorf("%w: contract %q: %w", core.ErrConfig, name, err)
		}

		table[name] = rows
	}

	return table, nil
}

// YAML decodes a YAML (or JSON) document. An empty document is an empty table.
func YAML(r io.Reader) (core.Table, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decoding yaml: %w", core.ErrConfig, err)
	}

	return ToTable(doc)
}

// narrowTOML rewrites int64 to int throughout a decoded TOML value, and
// flattens arrays of tables into plain []any.
func narrowTOML(value any) any {
	switch typed := value.(type) {
	case int64:
		return int(typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, v := range typed {
			out[key] = narrowTOML(v)
		}

		return out
	case []map[string]any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = narrowTOML(v)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = narrowTOML(v)
		}

		return out
	default:
		return value
	}
}

func toRows(raw any) ([]core.Row, error) {
	if raw == nil {
		return []core.Row{}, nil
	}

	value := reflect.ValueOf(raw)
	if value.Kind() != reflect.Slice {
		//nolint:err113 // wrapped by the caller
		return nil, fmt.Errorf("rows must be a list, got %T", raw)
	}

	rows := make([]core.Row, 0, value.Len())

	for i := range value.Len() {
		row, ok := value.Index(i).Interface().(map[string]any)
		if !ok {
			//nolint:err113 // wrapped by the caller
			return nil, fmt.Errorf("row %d must be a mapping, got %T", i, value.Index(i).Interface())
		}

		rows = append(rows, core.Row(row))
	}

	return rows, nil
}
