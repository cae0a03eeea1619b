package parser

import (
	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/symboltable"
	"github.com/minisoft-lang/minisoft/internal/token"
)

// parseProgram implements:
//
//	MainPrgm <Id>;
//	Var
//	  <declarations>
//	BeginPg
//	{ <statements> }
//	EndPg;
func (p *Parser) parseProgram() *ast.Program {
	start := p.expect(token.MAINPRGM)
	name := p.expect(token.IDENT)
	p.expect(token.SEMI)
	p.expect(token.VAR)

	var decls []ast.Declaration
	for !p.curIs(token.BEGINPG) {
		decls = append(decls, p.parseDeclaration())
	}

	p.expect(token.BEGINPG)
	p.expectOpen(token.LBRACE)
	var body []ast.Statement
	for !p.curIs(token.RBRACE) {
		body = append(body, p.parseStatement())
	}
	p.expectClose(token.RBRACE, token.LBRACE)
	endTok := p.expect(token.ENDPG)
	p.expect(token.SEMI)

	return &ast.Program{
		Name:         name.Literal,
		NameSpan:     name.Span,
		Declarations: decls,
		Body:         body,
		SpanValue:    token.Span{Start: start.Span.Start, End: endTok.Span.End},
	}
}

func (p *Parser) parseDeclaration() ast.Declaration {
	switch p.cur().Type {
	case token.LET:
		return p.parseLetDeclaration()
	case token.DEFINE:
		return p.parseDefineDeclaration()
	default:
		p.fail(token.LET, token.DEFINE)
		return nil
	}
}

// parseLetDeclaration parses the four "let"-headed declaration shapes:
// plain (possibly array) declarations, initialized scalars, arrays with
// a brace initializer list, and explicitly-typed constants.
func (p *Parser) parseLetDeclaration() ast.Declaration {
	start := p.expect(token.LET)
	firstName := p.expect(token.IDENT)

	names := []string{firstName.Literal}
	spans := []token.Span{firstName.Span}
	for p.curIs(token.COMMA) {
		p.advance()
		n := p.expect(token.IDENT)
		names = append(names, n.Literal)
		spans = append(spans, n.Span)
	}

	p.expect(token.COLON)

	if len(names) == 1 && p.curIs(token.CONST) {
		p.advance()
		typ := p.parseScalarType()
		p.expect(token.EQUAL)
		lit := p.parseLiteral()
		end := p.expect(token.SEMI)
		return &ast.ConstDecl{
			Name:      firstName.Literal,
			NameSpan:  firstName.Span,
			Type:      typ,
			Literal:   lit,
			SpanValue: token.Span{Start: start.Span.Start, End: end.Span.End},
		}
	}

	typ := p.parseType()

	if len(names) == 1 && p.curIs(token.EQUAL) {
		p.advance()
		if p.curIs(token.LBRACE) {
			elems := p.parseBraceList()
			end := p.expect(token.SEMI)
			return &ast.ArrayDeclInit{
				Name:      firstName.Literal,
				NameSpan:  firstName.Span,
				Type:      typ,
				Elements:  elems,
				SpanValue: token.Span{Start: start.Span.Start, End: end.Span.End},
			}
		}
		init := p.parseExpression(LOWEST)
		end := p.expect(token.SEMI)
		return &ast.VarDeclInit{
			Name:      firstName.Literal,
			NameSpan:  firstName.Span,
			Type:      typ,
			Init:      init,
			SpanValue: token.Span{Start: start.Span.Start, End: end.Span.End},
		}
	}

	end := p.expect(token.SEMI)
	return &ast.VarDecl{
		Names:     names,
		NameSpans: spans,
		Type:      typ,
		SpanValue: token.Span{Start: start.Span.Start, End: end.Span.End},
	}
}

// parseDefineDeclaration parses "@define <id> = <literal>;", a
// constant whose type is inferred from its literal.
func (p *Parser) parseDefineDeclaration() ast.Declaration {
	start := p.expect(token.DEFINE)
	name := p.expect(token.IDENT)
	p.expect(token.EQUAL)
	lit := p.parseLiteral()
	end := p.expect(token.SEMI)
	return &ast.ConstDecl{
		Name:      name.Literal,
		NameSpan:  name.Span,
		Type:      nil,
		Literal:   lit,
		SpanValue: token.Span{Start: start.Span.Start, End: end.Span.End},
	}
}

// parseType parses "Int", "Float", or "[ Int|Float ; length ]".
func (p *Parser) parseType() *ast.TypeExpr {
	if p.curIs(token.LBRACKET) {
		start := p.expect(token.LBRACKET)
		elemTok := p.expectOneOf(token.INTTYPE, token.FLOATTY)
		p.expect(token.SEMI)
		length := p.parseExpression(LOWEST)
		end := p.expectClose(token.RBRACKET, token.LBRACKET)
		return &ast.TypeExpr{
			Elem:      baseOf(elemTok.Type),
			IsArray:   true,
			Length:    length,
			SpanValue: token.Span{Start: start.Span.Start, End: end.Span.End},
		}
	}
	return p.parseScalarType()
}

func (p *Parser) parseScalarType() *ast.TypeExpr {
	tok := p.expectOneOf(token.INTTYPE, token.FLOATTY)
	return &ast.TypeExpr{Elem: baseOf(tok.Type), SpanValue: tok.Span}
}

func baseOf(tt token.Type) symboltable.Base {
	if tt == token.FLOATTY {
		return symboltable.Float
	}
	return symboltable.Int
}

// parseBraceList parses "{ e1, e2, ... }".
func (p *Parser) parseBraceList() []ast.Expression {
	p.expect(token.LBRACE)
	var elems []ast.Expression
	if !p.curIs(token.RBRACE) {
		elems = append(elems, p.parseExpression(LOWEST))
		for p.curIs(token.COMMA) {
			p.advance()
			elems = append(elems, p.parseExpression(LOWEST))
		}
	}
	p.expectClose(token.RBRACE, token.LBRACE)
	return elems
}

// parseLiteral parses a bare literal (int, float, or string), used for
// constant right-hand sides, which are restricted to literals.
func (p *Parser) parseLiteral() ast.Expression {
	switch p.cur().Type {
	case token.INT:
		return p.parseIntLiteral()
	case token.FLOAT:
		return p.parseFloatLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	default:
		p.fail(token.INT, token.FLOAT, token.STRING)
		return nil
	}
}

// expectOneOf consumes the current token if it matches any of types,
// else fails listing them all as legal continuations.
func (p *Parser) expectOneOf(types ...token.Type) token.Token {
	for _, t := range types {
		if p.curIs(t) {
			return p.advance()
		}
	}
	p.fail(types...)
	return token.Token{}
}

// expectOpen consumes an opening bracket/brace/paren.
func (p *Parser) expectOpen(tt token.Type) token.Token {
	return p.expect(tt)
}

// expectClose consumes a closing bracket/brace/paren, reporting a
// "mismatched bracket" diagnostic (rather than a generic unexpected
// token one) if it isn't there.
func (p *Parser) expectClose(tt token.Type, opener token.Type) token.Token {
	if p.curIs(tt) {
		return p.advance()
	}
	cur := p.cur()
	msg := "mismatched bracket: expected closing " + tt.String() + " for " + opener.String()
	p.reporter.Report(diag.Syntax, "syn:mismatched-bracket", cur.Span, msg)
	panic(bailout{})
}
