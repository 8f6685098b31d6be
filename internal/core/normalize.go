package core

import (
	"fmt"
	"reflect"
)

// Recognized row keys.
const (
	KeyArgs          = "args"
	KeyKwargs        = "kwargs"
	KeyPreconditions = "preconditions"
	KeyReturn        = "return"
)

// Row is one raw row descriptor. Recognized keys are "args", "kwargs",
// "preconditions" and "return"; anything else is ignored.
type Row map[string]any

// Table is the raw nested input: contract name to its rows.
type Table map[string][]Row

// buildContract normalizes every raw row of one contract, preserving order.
func buildContract(name string, raw []Row, literalScalars bool) (*Contract, error) {
	rows := make([]CallSpec, 0, len(raw))

	for index, row := range raw {
		spec, err := normalizeRow(row, literalScalars)
		if err != nil {
			return nil, fmt.Errorf("%w: contract %q row %d: %w", ErrConfig, name, index, err)
		}

		rows = append(rows, spec)
	}

	return &Contract{name: name, rows: rows}, nil
}

// cloneArgs deep-copies args, keeping nil as nil.
func cloneArgs(args Args) Args {
	copied, _ := deepCopy(args).(Args)

	return copied
}

// cloneKwargs deep-copies kwargs, keeping nil as nil.
func cloneKwargs(kwargs Kwargs) Kwargs {
	copied, _ := deepCopy(kwargs).(Kwargs)

	return copied
}

// copyValue rebuilds slices, arrays and maps, recursively, with their own
// types. Anything else, including pointers and structs, is shared.
func copyValue(value reflect.Value) reflect.Value {
	switch value.Kind() { //nolint:exhaustive // only containers are copied
	case reflect.Interface:
		if value.IsNil() {
			return value
		}

		copied := reflect.New(value.Type()).Elem()
		copied.Set(copyValue(value.Elem()))

		return copied
	case reflect.Slice:
		if value.IsNil() {
			return value
		}

		copied := reflect.MakeSlice(value.Type(), value.Len(), value.Len())
		for i := range value.Len() {
			copied.Index(i).Set(copyValue(value.Index(i)))
		}

		return copied
	case reflect.Array:
		copied := reflect.New(value.Type()).Elem()
		for i := range value.Len() {
			copied.Index(i).Set(copyValue(value.Index(i)))
		}

		return copied
	case reflect.Map:
		if value.IsNil() {
			return value
		}

		copied := reflect.MakeMapWithSize(value.Type(), value.Len())

		iter := value.MapRange()
		for iter.Next() {
			copied.SetMapIndex(iter.Key(), copyValue(iter.Value()))
		}

		return copied
	default:
		return value
	}
}

// deepCopy returns a copy of value sharing no slice or map memory with it.
func deepCopy(value any) any {
	if value == nil {
		return nil
	}

	return copyValue(reflect.ValueOf(value)).Interface()
}

// isBytes reports whether raw is a byte string, which is one value rather than
// a sequence.
func isBytes(raw any) bool {
	value := reflect.ValueOf(raw)

	return value.Kind() == reflect.Slice && value.Type().Elem().Kind() == reflect.Uint8
}

func isScalarKind(kind reflect.Kind) bool {
	switch kind { //nolint:exhaustive // only strings and numbers are scalars
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func isSequenceKind(kind reflect.Kind) bool {
	return kind == reflect.Slice || kind == reflect.Array
}

// normalizeArgs: a string or byte string -> one element, a sequence -> a deep
// copy. Absent args are handled by normalizeRow.
func normalizeArgs(raw any) (Args, error) {
	// strings are never exploded into characters
	if s, ok := raw.(string); ok {
		return Args{s}, nil
	}

	if isBytes(raw) {
		return Args{deepCopy(raw)}, nil
	}

	seq, ok := toSequence(raw)
	if !ok {
		//nolint:err113 // wrapped by the caller
		return nil, fmt.Errorf("args must be a sequence or a string, got %T", raw)
	}

	return Args(seq), nil
}

// normalizeKwargs: any string-keyed map -> a deep copy. An explicit null is
// not a mapping; absent kwargs are handled by normalizeRow.
func normalizeKwargs(raw any) (Kwargs, error) {
	value := reflect.ValueOf(raw)
	if value.Kind() != reflect.Map || value.Type().Key().Kind() != reflect.String || value.IsNil() {
		//nolint:err113 // wrapped by the caller
		return nil, fmt.Errorf("kwargs must be a mapping, got %T", raw)
	}

	kwargs := make(Kwargs, value.Len())

	iter := value.MapRange()
	for iter.Next() {
		kwargs[iter.Key().String()] = deepCopy(iter.Value().Interface())
	}

	return kwargs, nil
}

// normalizePreconditions: absent -> none, a sequence -> that sequence.
//
// A scalar is replaced by a one-element sequence holding a copy of the row's
// own args, unless literalScalars is set, in which case the scalar itself is
// the single element.
func normalizePreconditions(raw any, args Args, literalScalars bool) (Preconditions, error) {
	if isNil(raw) {
		return NoPreconditions(), nil
	}

	if seq, ok := toSequence(raw); ok {
		return Pre(seq...), nil
	}

	if isScalarKind(reflect.ValueOf(raw).Kind()) || isBytes(raw) {
		if literalScalars {
			return Pre(raw), nil
		}

		return Pre([]any(args)), nil
	}

	//nolint:err113 // wrapped by the caller
	return Preconditions{}, fmt.Errorf("preconditions must be a sequence or a scalar, got %T", raw)
}

// normalizeRow defaults missing keys only. A present null args keeps the row
// but no call can match it; a present null kwargs is an error.
func normalizeRow(row Row, literalScalars bool) (CallSpec, error) {
	var (
		args     = Args{}
		nullArgs bool
		kwargs   = Kwargs{}
		err      error
	)

	rawArgs, ok := row[KeyArgs]

	switch {
	case !ok:
	case isNil(rawArgs):
		args, nullArgs = nil, true
	default:
		args, err = normalizeArgs(rawArgs)
		if err != nil {
			return CallSpec{}, err
		}
	}

	if rawKwargs, ok := row[KeyKwargs]; ok {
		kwargs, err = normalizeKwargs(rawKwargs)
		if err != nil {
			return CallSpec{}, err
		}
	}

	pre, err := normalizePreconditions(row[KeyPreconditions], args, literalScalars)
	if err != nil {
		return CallSpec{}, err
	}

	return CallSpec{
		Args:          args,
		Kwargs:        kwargs,
		Preconditions: pre,
		Return:        deepCopy(row[KeyReturn]),
		nullArgs:      nullArgs,
	}, nil
}

// toSequence deep-copies any slice or array, other than a byte string, into a
// []any.
func toSequence(raw any) ([]any, bool) {
	value := reflect.ValueOf(raw)
	if !isSequenceKind(value.Kind()) || isBytes(raw) {
		return nil, false
	}

	seq := make([]any, value.Len())
	for i := range seq {
		seq[i] = deepCopy(value.Index(i).Interface())
	}

	return seq, true
}
