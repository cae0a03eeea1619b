package ast

import "github.com/minisoft-lang/minisoft/internal/token"

// VarDecl is a plain variable (or array) declaration with no
// initializer: "let x, y: Int;". Value is left undefined at runtime.
type VarDecl struct {
	Names     []string
	NameSpans []token.Span
	Type      *TypeExpr
	SpanValue token.Span
}

func (*VarDecl) declNode()             {}
func (d *VarDecl) Span() token.Span    { return d.SpanValue }

// VarDeclInit is a single initialized scalar declaration:
// "let f: Float = 3;".
type VarDeclInit struct {
	Name      string
	NameSpan  token.Span
	Type      *TypeExpr
	Init      Expression
	SpanValue token.Span
}

func (*VarDeclInit) declNode()          {}
func (d *VarDeclInit) Span() token.Span { return d.SpanValue }

// ArrayDeclInit is an array declaration with a brace initializer list:
// "let v: [Int; 3] = {1, 2, 3};".
type ArrayDeclInit struct {
	Name      string
	NameSpan  token.Span
	Type      *TypeExpr
	Elements  []Expression
	SpanValue token.Span
}

func (*ArrayDeclInit) declNode()          {}
func (d *ArrayDeclInit) Span() token.Span { return d.SpanValue }

// ConstDecl is a named constant, declared either with an explicit type
// ("let pi: Const Float = 3.14;") or inferred from its literal via the
// @define directive ("@define pi = 3.14;").
type ConstDecl struct {
	Name      string
	NameSpan  token.Span
	Type      *TypeExpr // nil when declared via @define
	Literal   Expression
	SpanValue token.Span
}

func (*ConstDecl) declNode()          {}
func (d *ConstDecl) Span() token.Span { return d.SpanValue }
