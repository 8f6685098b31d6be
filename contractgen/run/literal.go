package run

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/toejough/contractual/internal/core"
)

const contractualImportPath = "github.com/toejough/contractual"

// unexported variables.
var (
	errUnsupportedValue = errors.New("unsupported table value")
)

// buildFile assembles the generated file: the import and the table variable.
func buildFile(pkgName, varName, source string, table core.Table) (*dst.File, error) {
	lit, err := tableLiteral(table)
	if err != nil {
		return nil, err
	}

	importDecl := &dst.GenDecl{
		Tok: token.IMPORT,
		Specs: []dst.Spec{
			&dst.ImportSpec{Path: &dst.BasicLit{Kind: token.STRING, Value: strconv.Quote(contractualImportPath)}},
		},
	}

	varSpec := &dst.ValueSpec{Names: []*dst.Ident{dst.NewIdent(varName)}, Values: []dst.Expr{lit}}
	varSpec.Decs.Before = dst.NewLine
	varSpec.Decs.After = dst.NewLine
	varSpec.Decs.Start.Append(fmt.Sprintf("// %s is the contract table loaded from %s.", varName, source))

	// already in the shape declaration reordering produces
	varDecl := &dst.GenDecl{Tok: token.VAR, Lparen: true, Specs: []dst.Spec{varSpec}}
	varDecl.Decs.Before = dst.EmptyLine
	varDecl.Decs.Start.Append("// Exported variables.")

	file := &dst.File{
		Name:  dst.NewIdent(pkgName),
		Decls: []dst.Decl{importDecl, varDecl},
	}
	file.Decs.Start.Append("// Code generated by contractgen. DO NOT EDIT.", "\n")

	return file, nil
}

// floatLiteral always carries a decimal point or exponent, so the value stays a
// float64 once it lands in an any.
func floatLiteral(value float64, bitSize int) (string, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return "", fmt.Errorf("%w: %v has no literal form", errUnsupportedValue, value)
	}

	text := strconv.FormatFloat(value, 'g', -1, bitSize)
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}

	return text, nil
}

// multiline puts every element of a composite literal on its own line.
func multiline(lit *dst.CompositeLit) *dst.CompositeLit {
	for _, elt := range lit.Elts {
		elt.Decorations().Before = dst.NewLine
		elt.Decorations().After = dst.NewLine
	}

	return lit
}

// printFile renders the file as gofmt-formatted source.
func printFile(file *dst.File) (string, error) {
	var buf bytes.Buffer

	err := decorator.Fprint(&buf, file)
	if err != nil {
		return "", fmt.Errorf("failed to print generated code: %w", err)
	}

	return buf.String(), nil
}

func rowLiteral(row core.Row) (dst.Expr, error) {
	lit := &dst.CompositeLit{}

	for _, key := range slices.Sorted(maps.Keys(row)) {
		value, err := valueLiteral(row[key])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		lit.Elts = append(lit.Elts, &dst.KeyValueExpr{Key: stringLiteral(key), Value: value})
	}

	return lit, nil
}

func rowsLiteral(rows []core.Row) (dst.Expr, error) {
	lit := &dst.CompositeLit{}

	for index, row := range rows {
		expr, err := rowLiteral(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", index, err)
		}

		lit.Elts = append(lit.Elts, expr)
	}

	return multiline(lit), nil
}

func stringLiteral(value string) *dst.BasicLit {
	return &dst.BasicLit{Kind: token.STRING, Value: strconv.Quote(value)}
}

// tableLiteral renders contractual.Table{...} with contracts in name order.
func tableLiteral(table core.Table) (*dst.CompositeLit, error) {
	lit := &dst.CompositeLit{
		Type: &dst.SelectorExpr{X: dst.NewIdent("contractual"), Sel: dst.NewIdent("Table")},
	}

	for _, name := range slices.Sorted(maps.Keys(table)) {
		rows, err := rowsLiteral(table[name])
		if err != nil {
			return nil, fmt.Errorf("contract %q: %w", name, err)
		}

		lit.Elts = append(lit.Elts, &dst.KeyValueExpr{Key: stringLiteral(name), Value: rows})
	}

	return multiline(lit), nil
}

// typedLiteral converts an untyped literal to the value's type unless the
// type is the literal's default.
func typedLiteral(lit *dst.BasicLit, typ reflect.Type, defaultKind reflect.Kind) dst.Expr {
	if typ.Kind() == defaultKind && typ.PkgPath() == "" {
		return lit
	}

	return &dst.CallExpr{Fun: dst.NewIdent(typ.Kind().String()), Args: []dst.Expr{lit}}
}

// valueLiteral renders one table value as a Go expression.
func valueLiteral(value any) (dst.Expr, error) {
	switch typed := value.(type) {
	case nil:
		return dst.NewIdent("nil"), nil
	case bool:
		return dst.NewIdent(strconv.FormatBool(typed)), nil
	case string:
		return stringLiteral(typed), nil
	case []any:
		lit := &dst.CompositeLit{Type: &dst.ArrayType{Elt: dst.NewIdent("any")}}

		for index, elem := range typed {
			expr, err := valueLiteral(elem)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", index, err)
			}

			lit.Elts = append(lit.Elts, expr)
		}

		return lit, nil
	case map[string]any:
		lit := &dst.CompositeLit{Type: &dst.MapType{Key: dst.NewIdent("string"), Value: dst.NewIdent("any")}}

		for _, key := range slices.Sorted(maps.Keys(typed)) {
			expr, err := valueLiteral(typed[key])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}

			lit.Elts = append(lit.Elts, &dst.KeyValueExpr{Key: stringLiteral(key), Value: expr})
		}

		return lit, nil
	}

	reflected := reflect.ValueOf(value)

	switch reflected.Kind() { //nolint:exhaustive // everything else is unsupported
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		lit := &dst.BasicLit{Kind: token.INT, Value: strconv.FormatInt(reflected.Int(), 10)}

		return typedLiteral(lit, reflected.Type(), reflect.Int), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		lit := &dst.BasicLit{Kind: token.INT, Value: strconv.FormatUint(reflected.Uint(), 10)}

		return typedLiteral(lit, reflected.Type(), reflect.Invalid), nil
	case reflect.Float32, reflect.Float64:
		text, err := floatLiteral(reflected.Float(), reflected.Type().Bits())
		if err != nil {
			return nil, err
		}

		lit := &dst.BasicLit{Kind: token.FLOAT, Value: text}

		return typedLiteral(lit, reflected.Type(), reflect.Float64), nil
	default:
		return nil, fmt.Errorf("%w: %T", errUnsupportedValue, value)
	}
}
