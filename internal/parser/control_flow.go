package parser

import (
	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/token"
)

// parseIfStmt implements "if (c) then { ... } [else { ... }]".
func (p *Parser) parseIfStmt() ast.Statement {
	start := p.expect(token.IF)
	p.expectOpen(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expectClose(token.RPAREN, token.LPAREN)
	p.expect(token.THEN)
	thenBlock := p.parseBlock()

	stmt := &ast.IfStmt{Cond: cond, Then: thenBlock}
	var endSpan token.Span
	if len(thenBlock) > 0 {
		endSpan = thenBlock[len(thenBlock)-1].Span()
	}

	if p.curIs(token.ELSE) {
		p.advance()
		elseBlock := p.parseBlock()
		stmt.Else = elseBlock
		stmt.HasElse = true
		if len(elseBlock) > 0 {
			endSpan = elseBlock[len(elseBlock)-1].Span()
		}
	}
	stmt.SpanValue = token.Span{Start: start.Span.Start, End: spanEndOr(endSpan, start.Span.End)}
	return stmt
}

// parseDoWhileStmt implements "do { ... } while (c);".
func (p *Parser) parseDoWhileStmt() ast.Statement {
	start := p.expect(token.DO)
	body := p.parseBlock()
	p.expect(token.WHILE)
	p.expectOpen(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expectClose(token.RPAREN, token.LPAREN)
	end := p.expect(token.SEMI)
	return &ast.DoWhileStmt{
		Body:      body,
		Cond:      cond,
		SpanValue: token.Span{Start: start.Span.Start, End: end.Span.End},
	}
}

// parseForStmt implements "for v from a to b step s { ... }".
func (p *Parser) parseForStmt() ast.Statement {
	start := p.expect(token.FOR)
	v := p.expect(token.IDENT)
	p.expect(token.FROM)
	from := p.parseExpression(LOWEST)
	p.expect(token.TO)
	to := p.parseExpression(LOWEST)
	p.expect(token.STEP)
	step := p.parseExpression(LOWEST)
	body := p.parseBlock()

	var endSpan token.Span = start.Span
	if len(body) > 0 {
		endSpan = body[len(body)-1].Span()
	}
	return &ast.ForStmt{
		Var:       v.Literal,
		VarSpan:   v.Span,
		From:      from,
		To:        to,
		Step:      step,
		Body:      body,
		SpanValue: token.Span{Start: start.Span.Start, End: endSpan.End},
	}
}

func spanEndOr(span token.Span, fallback token.Position) token.Position {
	if span == (token.Span{}) {
		return fallback
	}
	return span.End
}
