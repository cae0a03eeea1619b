// Package symboltable implements MiniSoft's single flat program scope:
// the mapping from identifier to symbol record that the semantic
// analyzer builds in its declaration pass and the validation pass and
// the quadruple emitter both read from (the validation pass writes
// only the Symbol.Mutated flag).
package symboltable

import "fmt"

// Kind distinguishes a scalar variable from a scalar constant from an
// array.
type Kind int

const (
	Variable Kind = iota
	Constant
	Array
)

// Base is the scalar element kind that every MiniSoft type is built
// from. There is no Bool: boolean-valued expressions are typed Int and
// restricted to {0, 1} at their producer sites. String exists only for
// the @define-inferred constants that carry a string literal; it is
// never a legal array element or arithmetic operand.
type Base int

const (
	Int Base = iota
	Float
	String
)

func (b Base) String() string {
	switch b {
	case Float:
		return "Float"
	case String:
		return "String"
	default:
		return "Int"
	}
}

// Type is a MiniSoft type: a scalar Int/Float, or a fixed-length array
// of one of those. Length is meaningless for scalar types.
type Type struct {
	Elem     Base
	IsArray  bool
	Length   int
}

// Scalar constructs a non-array Type.
func Scalar(b Base) Type { return Type{Elem: b} }

// ArrayOf constructs a fixed-length array Type.
func ArrayOf(b Base, length int) Type { return Type{Elem: b, IsArray: true, Length: length} }

func (t Type) String() string {
	if t.IsArray {
		return fmt.Sprintf("[%s; %d]", t.Elem, t.Length)
	}
	return t.Elem.String()
}

// Equal reports whether two types are identical (same shape, same
// element base, same length if arrays).
func (t Type) Equal(other Type) bool {
	return t == other
}
