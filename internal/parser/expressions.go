package parser

import (
	"strconv"

	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/token"
)

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.cur().Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression is the Pratt entry point: parse a prefix expression,
// then keep absorbing infix operators whose precedence exceeds
// minPrec. All binary operators are left-associative, so the loop
// compares with strict "<" against the next operator's precedence.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur().Type]
	if !ok {
		p.fail()
		return nil
	}
	left := prefix()

	for minPrec < p.peekPrecedence() {
		infix, ok := p.infixFns[p.cur().Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.advance()
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		// The lexer already validated range; a parse failure here would
		// be a codegen-internal inconsistency, not a user error.
		v = 0
	}
	return &ast.IntLiteral{ExprBase: ast.ExprBase{SpanValue: tok.Span}, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.advance()
	v, _ := strconv.ParseFloat(tok.Literal, 64)
	return &ast.FloatLiteral{ExprBase: ast.ExprBase{SpanValue: tok.Span}, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.advance()
	return &ast.StringLiteral{ExprBase: ast.ExprBase{SpanValue: tok.Span}, Value: tok.Literal}
}

// parseIdentifierOrIndex parses a bare identifier or "identifier[expr]"
// when used inside an expression (as opposed to as an assignment
// target, which uses parseLValue directly).
func (p *Parser) parseIdentifierOrIndex() ast.Expression {
	return p.parseLValue()
}

func (p *Parser) parseUnary() ast.Expression {
	opTok := p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.UnaryExpr{
		ExprBase:  ast.ExprBase{SpanValue: token.Span{Start: opTok.Span.Start, End: operand.Span().End}},
		Op:        opTok.Type,
		Operand:   operand,
		OpSpan:    opTok.Span,
	}
}

func (p *Parser) parseGroupedExpr() ast.Expression {
	p.expectOpen(token.LPAREN)
	expr := p.parseExpression(LOWEST)
	p.expectClose(token.RPAREN, token.LPAREN)
	return expr
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	opTok := p.advance()
	prec := precedences[opTok.Type]
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{
		ExprBase:  ast.ExprBase{SpanValue: token.Span{Start: left.Span().Start, End: right.Span().End}},
		Op:        opTok.Type,
		Left:      left,
		Right:     right,
		OpSpan:    opTok.Span,
	}
}
