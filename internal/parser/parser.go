// Package parser implements MiniSoft's recursive-descent parser:
// recursive descent for declarations, statements, and control flow,
// plus a small Pratt table for expressions. It never recovers from an
// error: the first unexpected token is reported and parsing halts, so
// a single unwind (via a private panic/recover "bailout", the same
// technique go/parser uses internally) replaces the need to thread an
// error-checked return through every recursive call.
package parser

import (
	"fmt"
	"strings"

	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	LOGICAL    // AND OR
	COMPARISON // == != < > <= >=
	SUM        // + -
	PRODUCT    // * /
	UNARY      // !
)

var precedences = map[token.Type]int{
	token.AND:   LOGICAL,
	token.OR:    LOGICAL,
	token.EQ:    COMPARISON,
	token.NEQ:   COMPARISON,
	token.LT:    COMPARISON,
	token.GT:    COMPARISON,
	token.LE:    COMPARISON,
	token.GE:    COMPARISON,
	token.PLUS:  SUM,
	token.MINUS: SUM,
	token.STAR:  PRODUCT,
	token.SLASH: PRODUCT,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// bailout unwinds the parser to ParseProgram's recover once the first
// syntax error has been reported.
type bailout struct{}

// Parser consumes a fixed token slice (already produced and validated
// by the lexer) and builds an AST, reporting at most one diagnostic.
type Parser struct {
	tokens   []token.Token
	pos      int
	reporter *diag.Reporter

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New creates a Parser over tokens, reporting syntax diagnostics to r.
func New(tokens []token.Token, r *diag.Reporter) *Parser {
	p := &Parser{tokens: tokens, reporter: r}

	p.prefixFns = map[token.Type]prefixParseFn{
		token.INT:      p.parseIntLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.IDENT:    p.parseIdentifierOrIndex,
		token.NOT:      p.parseUnary,
		token.LPAREN:   p.parseGroupedExpr,
	}
	p.infixFns = map[token.Type]infixParseFn{
		token.PLUS:  p.parseBinary,
		token.MINUS: p.parseBinary,
		token.STAR:  p.parseBinary,
		token.SLASH: p.parseBinary,
		token.EQ:    p.parseBinary,
		token.NEQ:   p.parseBinary,
		token.LT:    p.parseBinary,
		token.GT:    p.parseBinary,
		token.LE:    p.parseBinary,
		token.GE:    p.parseBinary,
		token.AND:   p.parseBinary,
		token.OR:    p.parseBinary,
	}
	return p
}

// ParseProgram parses the whole token stream into a Program, returning
// ok=false (and a nil Program) the first time a syntax error is
// reported.
func (p *Parser) ParseProgram() (prog *ast.Program, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isBailout := r.(bailout); isBailout {
				prog, ok = nil, false
				return
			}
			panic(r)
		}
	}()
	return p.parseProgram(), true
}

func (p *Parser) cur() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) curIs(tt token.Type) bool {
	return p.cur().Type == tt
}

// expect consumes the current token if it has type tt, else reports a
// syntax error naming tt (and any other legal continuations) and
// bails out.
func (p *Parser) expect(tt token.Type, legal ...token.Type) token.Token {
	if p.curIs(tt) {
		return p.advance()
	}
	p.fail(append([]token.Type{tt}, legal...)...)
	return token.Token{}
}

// fail reports the "unexpected token" or "unexpected end of input"
// diagnostic for the current token and unwinds parsing.
func (p *Parser) fail(legal ...token.Type) {
	cur := p.cur()
	if cur.Type == token.EOF {
		p.reporter.Report(diag.Syntax, "syn:unexpected-eof", cur.Span, "unexpected end of input")
		panic(bailout{})
	}
	msg := fmt.Sprintf("unexpected token %s", describeToken(cur))
	if len(legal) > 0 {
		names := make([]string, len(legal))
		for i, t := range legal {
			names[i] = t.String()
		}
		hint := "expected one of: " + strings.Join(names, ", ")
		p.reporter.ReportHint(diag.Syntax, "syn:unexpected-token", cur.Span, msg, hint)
	} else {
		p.reporter.Report(diag.Syntax, "syn:unexpected-token", cur.Span, msg)
	}
	panic(bailout{})
}

func describeToken(t token.Token) string {
	if t.Literal == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s (%q)", t.Type, t.Literal)
}

func spanOf(start token.Token, end ast.Node) token.Span {
	return token.Span{Start: start.Span.Start, End: end.Span().End}
}
