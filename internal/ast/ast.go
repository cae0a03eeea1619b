// Package ast defines MiniSoft's abstract syntax tree. Every node is
// span-annotated; expression nodes additionally carry a slot for the
// type and folded constant value that the semantic analyzer's second
// pass fills in, so that type-checking and constant folding happen in
// a single traversal instead of two.
package ast

import (
	"github.com/minisoft-lang/minisoft/internal/symboltable"
	"github.com/minisoft-lang/minisoft/internal/token"
)

// Node is the common interface of every AST node: something with a
// source span.
type Node interface {
	Span() token.Span
}

// Declaration is one of the five top-level declaration shapes.
type Declaration interface {
	Node
	declNode()
}

// Statement is one of the six statement shapes.
type Statement interface {
	Node
	stmtNode()
}

// Expression is literal, identifier, array index, binary op, or unary
// not. After semantic analysis every Expression carries a resolved
// Type and, if it is a compile-time constant, a folded Value.
type Expression interface {
	Node
	exprNode()
	Type() symboltable.Type
	SetType(symboltable.Type)
	Folded() (symboltable.ConstValue, bool)
	SetFolded(symboltable.ConstValue)
}

// LValue is an Expression that may appear on the left of ':='.
type LValue interface {
	Expression
	lvalueNode()
}

// ExprBase is embedded by every concrete Expression to supply its span
// and its semantic annotation slots.
type ExprBase struct {
	SpanValue token.Span
	typ       symboltable.Type
	folded    *symboltable.ConstValue
}

func (b *ExprBase) Span() token.Span { return b.SpanValue }

func (b *ExprBase) Type() symboltable.Type { return b.typ }

func (b *ExprBase) SetType(t symboltable.Type) { b.typ = t }

func (b *ExprBase) Folded() (symboltable.ConstValue, bool) {
	if b.folded == nil {
		return symboltable.ConstValue{}, false
	}
	return *b.folded, true
}

func (b *ExprBase) SetFolded(v symboltable.ConstValue) {
	b.folded = &v
}

// Program is the root node: a name, the declaration block, and the
// statement body.
type Program struct {
	Name         string
	NameSpan     token.Span
	Declarations []Declaration
	Body         []Statement
	SpanValue    token.Span
}

func (p *Program) Span() token.Span { return p.SpanValue }

// TypeExpr names a declared type as written in source: a bare scalar
// ("Int" / "Float") or an array shape ("[Int; 3]").
type TypeExpr struct {
	Elem      symboltable.Base
	IsArray   bool
	Length    Expression // nil for scalar types
	SpanValue token.Span
}

func (t *TypeExpr) Span() token.Span { return t.SpanValue }
