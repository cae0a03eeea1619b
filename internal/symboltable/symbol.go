package symboltable

import "github.com/minisoft-lang/minisoft/internal/token"

// ConstValue is a folded compile-time value: an Int, a Float, or a
// String, per Base. Folding always produces one of these, even for a
// Float variable initialized from an integer literal (the widening
// rule converts at fold time, not at use time).
type ConstValue struct {
	Base Base
	I    int64
	F    float64
	Str  string
}

// IntValue constructs an Int ConstValue.
func IntValue(i int64) ConstValue { return ConstValue{Base: Int, I: i} }

// FloatValue constructs a Float ConstValue.
func FloatValue(f float64) ConstValue { return ConstValue{Base: Float, F: f} }

// StringValue constructs a String ConstValue, used only for @define
// constants inferred from a string literal.
func StringValue(s string) ConstValue { return ConstValue{Base: String, Str: s} }

// AsFloat returns the value widened to float64 regardless of Base.
func (v ConstValue) AsFloat() float64 {
	if v.Base == Float {
		return v.F
	}
	return float64(v.I)
}

// IsZero reports whether the value is the numeric zero of its Base.
func (v ConstValue) IsZero() bool {
	if v.Base == Float {
		return v.F == 0
	}
	return v.I == 0
}

// Symbol is a single entry in the symbol table: a name, its kind and
// declared type, its folded value if it is a constant (or an array's
// folded initializer elements), its declaration span, and a mutated
// flag tracked for diagnostics only.
type Symbol struct {
	Name        string
	Kind        Kind
	Type        Type
	Value       ConstValue
	ArrayValues []ConstValue
	DeclSpan    token.Span
	Mutated     bool
}

// IsConst reports whether assignment to this symbol must be rejected.
func (s *Symbol) IsConst() bool {
	return s.Kind == Constant
}
