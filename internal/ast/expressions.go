package ast

import "github.com/minisoft-lang/minisoft/internal/token"

// IntLiteral is an integer literal expression.
type IntLiteral struct {
	ExprBase
	Value int64
}

func (*IntLiteral) exprNode() {}

// FloatLiteral is a float literal expression.
type FloatLiteral struct {
	ExprBase
	Value float64
}

func (*FloatLiteral) exprNode() {}

// StringLiteral is a string literal. It is legal as a top-level output
// argument or as the value of an @define constant, never inside an
// arithmetic subexpression.
type StringLiteral struct {
	ExprBase
	Value string
}

func (*StringLiteral) exprNode() {}

// Identifier references a declared symbol, either as a bare scalar
// expression or, via Index below, as the array being indexed.
type Identifier struct {
	ExprBase
	Name string
}

func (*Identifier) exprNode()   {}
func (*Identifier) lvalueNode() {}

// IndexExpr is "a[e]": an array lvalue/expression.
type IndexExpr struct {
	ExprBase
	Array *Identifier
	Index Expression
}

func (*IndexExpr) exprNode()   {}
func (*IndexExpr) lvalueNode() {}

// BinaryExpr is one of + - * / == != < > <= >= AND OR.
type BinaryExpr struct {
	ExprBase
	Op        token.Type
	Left      Expression
	Right     Expression
	OpSpan    token.Span
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is the single unary operator, logical not ("!").
type UnaryExpr struct {
	ExprBase
	Op        token.Type
	Operand   Expression
	OpSpan    token.Span
}

func (*UnaryExpr) exprNode() {}
