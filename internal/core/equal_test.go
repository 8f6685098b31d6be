package core_test

import (
	"slices"
	"testing"

	"github.com/toejough/contractual/internal/core"
	"pgregory.net/rapid"
)

func TestValuesEqual(t *testing.T) {
	t.Parallel()

	var (
		nilPtr   *int
		nilMap   map[string]any
		nilSlice []any
	)

	tests := []struct {
		name     string
		actual   any
		expected any
		want     bool
	}{
		{name: "nil and nil", actual: nil, expected: nil, want: true},
		{name: "typed nil pointer and nil", actual: nilPtr, expected: nil, want: true},
		{name: "typed nil map and nil slice", actual: nilMap, expected: nilSlice, want: true},
		{name: "nil and zero", actual: nil, expected: 0, want: false},
		{name: "same ints", actual: 4, expected: 4, want: true},
		{name: "int and int64", actual: 4, expected: int64(4), want: false},
		{name: "int and float", actual: 4, expected: 4.0, want: false},
		{name: "equal slices", actual: []any{1, "a"}, expected: []any{1, "a"}, want: true},
		{name: "reordered slices", actual: []any{"a", 1}, expected: []any{1, "a"}, want: false},
		{name: "equal nested maps", actual: map[string]any{"k": []any{1}}, expected: map[string]any{"k": []any{1}}, want: true},
		{name: "different strings", actual: "a", expected: "b", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := core.ValuesEqual(tc.actual, tc.expected); got != tc.want {
				t.Errorf("ValuesEqual(%#v, %#v) = %v, want %v", tc.actual, tc.expected, got, tc.want)
			}
		})
	}
}

func TestPreconditions_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b core.Preconditions
		want bool
	}{
		{name: "none and none", a: core.NoPreconditions(), b: core.Preconditions{}, want: true},
		{name: "none and empty", a: core.NoPreconditions(), b: core.Pre(), want: false},
		{name: "empty and empty", a: core.Pre(), b: core.Pre(), want: true},
		{name: "same values", a: core.Pre(7, "x"), b: core.Pre(7, "x"), want: true},
		{name: "different values", a: core.Pre(7), b: core.Pre(5), want: false},
		{name: "different lengths", a: core.Pre(7), b: core.Pre(7, 7), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}

			if got := tc.b.Equal(tc.a); got != tc.want {
				t.Errorf("%v.Equal(%v) = %v, want %v (reversed)", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestPreconditions_String(t *testing.T) {
	t.Parallel()

	if got := core.NoPreconditions().String(); got != "none" {
		t.Errorf("none renders as %q", got)
	}

	if got := core.Pre(7, "x").String(); got != "(7, x)" {
		t.Errorf("Pre(7, x) renders as %q", got)
	}
}

func TestPreconditions_ValuesAreCopies(t *testing.T) {
	t.Parallel()

	pre := core.Pre(1, 2)
	values := pre.Values()
	values[0] = 99

	if !pre.Equal(core.Pre(1, 2)) {
		t.Errorf("mutating Values() changed the preconditions to %v", pre)
	}

	if core.NoPreconditions().Values() != nil {
		t.Error("none should have nil values")
	}

	inner := []any{1}
	nested := core.Pre(inner)
	inner[0] = 99
	nested.Values()[0].([]any)[0] = 99

	if !nested.Equal(core.Pre([]any{1})) {
		t.Errorf("mutating nested values changed the preconditions to %v", nested)
	}
}

// TestValuesEqual_Reflexive_Property proves that generated values always equal
// themselves and their copies.
func TestValuesEqual_Reflexive_Property(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		ints := rapid.SliceOf(rapid.Int()).Draw(rt, "ints")
		key := rapid.String().Draw(rt, "key")

		value := map[string]any{key: ints}
		clone := map[string]any{key: slices.Clone(ints)}

		if !core.ValuesEqual(value, clone) {
			rt.Fatalf("ValuesEqual(%v, %v) should be true", value, clone)
		}
	})
}
