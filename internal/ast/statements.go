package ast

import "github.com/minisoft-lang/minisoft/internal/token"

// AssignStmt is "lv := e;".
type AssignStmt struct {
	Target    LValue
	Value     Expression
	SpanValue token.Span
}

func (*AssignStmt) stmtNode()          {}
func (s *AssignStmt) Span() token.Span { return s.SpanValue }

// IfStmt is "if (c) then { ... } [else { ... }]".
type IfStmt struct {
	Cond      Expression
	Then      []Statement
	Else      []Statement
	HasElse   bool
	SpanValue token.Span
}

func (*IfStmt) stmtNode()          {}
func (s *IfStmt) Span() token.Span { return s.SpanValue }

// DoWhileStmt is "do { ... } while (c);".
type DoWhileStmt struct {
	Body      []Statement
	Cond      Expression
	SpanValue token.Span
}

func (*DoWhileStmt) stmtNode()          {}
func (s *DoWhileStmt) Span() token.Span { return s.SpanValue }

// ForStmt is "for v from a to b step s { ... }".
type ForStmt struct {
	Var       string
	VarSpan   token.Span
	From      Expression
	To        Expression
	Step      Expression
	Body      []Statement
	SpanValue token.Span
}

func (*ForStmt) stmtNode()          {}
func (s *ForStmt) Span() token.Span { return s.SpanValue }

// InputStmt is "input(lv);".
type InputStmt struct {
	Target    LValue
	SpanValue token.Span
}

func (*InputStmt) stmtNode()          {}
func (s *InputStmt) Span() token.Span { return s.SpanValue }

// OutputStmt is "output(a1, a2, ...);". Each argument is either a
// string literal or an expression of scalar type.
type OutputStmt struct {
	Args      []Expression
	SpanValue token.Span
}

func (*OutputStmt) stmtNode()          {}
func (s *OutputStmt) Span() token.Span { return s.SpanValue }
