package core

import "reflect"

// ValuesEqual reports whether actual and expected are structurally equal.
// Untyped nil and typed nils (nil pointers, maps, slices, ...) are all equal to
// each other. Everything else is compared with reflect.DeepEqual, so there is
// no numeric coercion: int(2), int64(2) and 2.0 are three different values.
func ValuesEqual(actual, expected any) bool {
	// handle, for instance, nil == (*int)(nil)
	if isNil(actual) && isNil(expected) {
		return true
	}

	return reflect.DeepEqual(actual, expected)
}

// argsEqual compares positional arguments element by element, in order.
func argsEqual(actual, expected Args) bool {
	return sequencesEqual(actual, expected)
}

// isNil returns whether the value is nil.
func isNil(value any) bool { return isUntypedNil(value) || isTypedNil(value) }

// isNillableKind returns true if the kind passed is nillable.
// According to https://pkg.go.dev/reflect#Value.IsNil, this is the case for
// chan, func, interface, map, pointer, or slice kinds.
func isNillableKind(kind reflect.Kind) bool {
	switch kind { //nolint:exhaustive // everything else is not nillable
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

// isTypedNil returns whether the value is a typed nil.
func isTypedNil(value any) bool {
	reflectedValue := reflect.ValueOf(value)
	return isNillableKind(reflectedValue.Kind()) && reflectedValue.IsNil()
}

// isUntypedNil returns whether the value is an untyped nil.
func isUntypedNil(value any) bool { return !reflect.ValueOf(value).IsValid() }

// kwargsEqual compares keyword arguments by key set and value.
// A nil map and an empty map both mean "no kwargs".
func kwargsEqual(actual, expected Kwargs) bool {
	if len(actual) != len(expected) {
		return false
	}

	for key, want := range expected {
		got, ok := actual[key]
		if !ok || !ValuesEqual(got, want) {
			return false
		}
	}

	return true
}

func sequencesEqual(actual, expected []any) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i := range expected {
		if !ValuesEqual(actual[i], expected[i]) {
			return false
		}
	}

	return true
}
