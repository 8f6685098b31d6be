// Package core provides the internal implementation of contractual's
// registry, mock and verification infrastructure.
package core

import (
	"fmt"
	"strings"
)

// Args is the ordered list of positional arguments of a call.
type Args []any

// CallSpec is one normalized row of a contract table.
type CallSpec struct {
	Args          Args
	Kwargs        Kwargs
	Preconditions Preconditions
	Return        any

	nullArgs bool
}

// NullArgs reports whether the row's args were an explicit null. Such a row
// is verified with nil Args, and no mock call ever matches it.
func (c CallSpec) NullArgs() bool {
	return c.nullArgs
}

// String renders the row for diagnostics.
func (c CallSpec) String() string {
	var args any = c.Args
	if c.nullArgs {
		args = "null"
	}

	return fmt.Sprintf("args: %v kwargs: %v precon: %v return: %#v",
		args, c.Kwargs, c.Preconditions, c.Return)
}

func (c CallSpec) clone() CallSpec {
	return CallSpec{
		Args:          cloneArgs(c.Args),
		Kwargs:        cloneKwargs(c.Kwargs),
		Preconditions: c.Preconditions.clone(),
		Return:        deepCopy(c.Return),
		nullArgs:      c.nullArgs,
	}
}

// Contract is a named, ordered list of call specifications.
// It is immutable once its Registry has been built.
type Contract struct {
	name string
	rows []CallSpec
}

// Name returns the contract's name.
func (c *Contract) Name() string {
	return c.name
}

// Rows returns a deep copy of the contract's rows, in table order.
func (c *Contract) Rows() []CallSpec {
	rows := make([]CallSpec, len(c.rows))
	for i, row := range c.rows {
		rows[i] = row.clone()
	}

	return rows
}

// Kwargs maps parameter names to values.
type Kwargs map[string]any

// Preconditions is either the "none" marker or an ordered sequence of values.
// The zero value is none. None is distinct from an empty sequence.
type Preconditions struct {
	values []any
	set    bool
}

// Equal reports whether two preconditions are the same tag.
// None equals only none.
func (p Preconditions) Equal(other Preconditions) bool {
	if p.set != other.set {
		return false
	}

	if !p.set {
		return true
	}

	return sequencesEqual(p.values, other.values)
}

// IsNone reports whether p is the none marker.
func (p Preconditions) IsNone() bool {
	return !p.set
}

// String renders none as "none" and sequences as "(a, b)".
func (p Preconditions) String() string {
	if !p.set {
		return "none"
	}

	parts := make([]string, 0, len(p.values))
	for _, v := range p.values {
		parts = append(parts, fmt.Sprintf("%v", v))
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Values returns a deep copy of the sequence, or nil for none.
func (p Preconditions) Values() []any {
	if !p.set {
		return nil
	}

	return p.clone().values
}

func (p Preconditions) clone() Preconditions {
	if !p.set {
		return p
	}

	values := make([]any, len(p.values))
	for i, v := range p.values {
		values[i] = deepCopy(v)
	}

	return Preconditions{values: values, set: true}
}

// NoPreconditions returns the none marker.
func NoPreconditions() Preconditions {
	return Preconditions{}
}

// Pre builds a precondition sequence from the given values.
// Pre() with no values is the empty sequence, not none.
func Pre(values ...any) Preconditions {
	return Preconditions{values: values, set: true}.clone()
}
