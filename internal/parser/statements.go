package parser

import (
	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.IF:
		return p.parseIfStmt()
	case token.DO:
		return p.parseDoWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.INPUT:
		return p.parseInputStmt()
	case token.OUTPUT:
		return p.parseOutputStmt()
	case token.IDENT:
		return p.parseAssignStmt()
	default:
		p.fail(token.IF, token.DO, token.FOR, token.INPUT, token.OUTPUT, token.IDENT)
		return nil
	}
}

func (p *Parser) parseBlock() []ast.Statement {
	p.expectOpen(token.LBRACE)
	var stmts []ast.Statement
	for !p.curIs(token.RBRACE) {
		stmts = append(stmts, p.parseStatement())
	}
	p.expectClose(token.RBRACE, token.LBRACE)
	return stmts
}

// parseLValue parses "IDENT" or "IDENT[expr]".
func (p *Parser) parseLValue() ast.LValue {
	name := p.expect(token.IDENT)
	id := &ast.Identifier{ExprBase: ast.ExprBase{SpanValue: name.Span}, Name: name.Literal}
	if !p.curIs(token.LBRACKET) {
		return id
	}
	p.advance()
	idx := p.parseExpression(LOWEST)
	end := p.expectClose(token.RBRACKET, token.LBRACKET)
	return &ast.IndexExpr{
		ExprBase: ast.ExprBase{SpanValue: token.Span{Start: name.Span.Start, End: end.Span.End}},
		Array:    id,
		Index:    idx,
	}
}

func (p *Parser) parseAssignStmt() ast.Statement {
	lv := p.parseLValue()
	p.expect(token.ASSIGN)
	value := p.parseExpression(LOWEST)
	end := p.expect(token.SEMI)
	return &ast.AssignStmt{
		Target:    lv,
		Value:     value,
		SpanValue: token.Span{Start: lv.Span().Start, End: end.Span.End},
	}
}

func (p *Parser) parseInputStmt() ast.Statement {
	start := p.expect(token.INPUT)
	p.expectOpen(token.LPAREN)
	lv := p.parseLValue()
	p.expectClose(token.RPAREN, token.LPAREN)
	end := p.expect(token.SEMI)
	return &ast.InputStmt{Target: lv, SpanValue: token.Span{Start: start.Span.Start, End: end.Span.End}}
}

// parseOutputStmt parses "output(a1, a2, ...);" where each argument is
// either a bare string literal or an arithmetic expression. Strings are
// only allowed at this top level, never nested inside a binary/unary
// subexpression.
func (p *Parser) parseOutputStmt() ast.Statement {
	start := p.expect(token.OUTPUT)
	p.expectOpen(token.LPAREN)
	var args []ast.Expression
	if !p.curIs(token.RPAREN) {
		args = append(args, p.parseOutputArg())
		for p.curIs(token.COMMA) {
			p.advance()
			args = append(args, p.parseOutputArg())
		}
	}
	p.expectClose(token.RPAREN, token.LPAREN)
	end := p.expect(token.SEMI)
	return &ast.OutputStmt{Args: args, SpanValue: token.Span{Start: start.Span.Start, End: end.Span.End}}
}

func (p *Parser) parseOutputArg() ast.Expression {
	if p.curIs(token.STRING) {
		return p.parseStringLiteral()
	}
	return p.parseExpression(LOWEST)
}
