// Package lexer turns MiniSoft source text into a sequence of located
// tokens. It scans the entire input and collects every lexical error
// it finds rather than stopping at the first one.
package lexer

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/token"
)

const (
	maxIdentifierLength = 14
	minInt              = -32768
	maxInt              = 32767
)

// Lexer scans MiniSoft source text into tokens, reporting lexical
// errors to the Reporter it was constructed with.
type Lexer struct {
	input    string
	reporter *diag.Reporter

	position     int // byte offset of ch
	readPosition int // byte offset of the next rune
	line         int
	column       int // rune count from start of line, 1-based
	ch           rune

	tracing bool

	maxIdentLen int
}

// New creates a Lexer over source, reporting lexical diagnostics to r.
func New(source string, r *diag.Reporter) *Lexer {
	l := &Lexer{
		input:       source,
		reporter:    r,
		line:        1,
		column:      0,
		maxIdentLen: maxIdentifierLength,
	}
	l.advance()
	return l
}

// SetTracing enables per-token debug tracing, used only by the CLI's
// verbose mode; it has no effect on tokenization itself.
func (l *Lexer) SetTracing(on bool) {
	l.tracing = on
}

// SetMaxIdentifierLength overrides the identifier-length limit, which
// otherwise defaults to 14. Exposed for the Configuration component's
// diagnostics.max_identifier_length override; MiniSoft itself names 14
// as the only correct value.
func (l *Lexer) SetMaxIdentifierLength(n int) {
	l.maxIdentLen = n
}

// Tokenize scans the entire input and returns every token, terminated
// by an EOF token. It always returns a (possibly partial) token list;
// callers should consult the Reporter to know whether lexing actually
// succeeded.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if l.tracing {
			fmt.Fprintf(os.Stderr, "lex: %s %q @%d:%d\n", tok.Type, tok.Literal, tok.Span.Start.Line, tok.Span.Start.Column)
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}

func (l *Lexer) advance() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.column++
	l.position = l.readPosition
	l.readPosition += size
	l.ch = r
}

func (l *Lexer) peekAt(offset int) rune {
	pos := l.readPosition
	for i := 0; i < offset-1; i++ {
		if pos >= len(l.input) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) peek() rune {
	return l.peekAt(1)
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Offset: l.position, Line: l.line, Column: l.column}
}

func (l *Lexer) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: l.currentPos()}
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentTail(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.advance()
	}
}

// NextToken returns the next token in the input, advancing past it.
// It skips whitespace and comments first. Unknown characters and
// malformed constructs are reported to the Reporter and surfaced as an
// ILLEGAL token so scanning can continue.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()
		if l.ch == '{' && l.peek() == '-' && l.peekAt(2) == '-' {
			commentStart := l.currentPos()
			if !l.skipBraceComment() {
				return l.illegalToken(commentStart, "unterminated comment (opened with {--)")
			}
			continue
		}
		if l.ch == '<' && l.peek() == '!' && l.peekAt(2) == '-' {
			commentStart := l.currentPos()
			if !l.skipAngleComment() {
				return l.illegalToken(commentStart, "unterminated comment (opened with <!-)")
			}
			continue
		}
		break
	}

	start := l.currentPos()

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Literal: "", Span: l.spanFrom(start)}
	case l.ch == '"':
		return l.readString(start)
	case l.ch == '@':
		return l.readDirective(start)
	case isLetter(l.ch):
		return l.readWord(start)
	case isDigit(l.ch):
		return l.readNumber(start)
	case l.ch == '(' && (l.peek() == '+' || l.peek() == '-') && l.signedNumeralAhead():
		return l.readParenSignedNumber(start)
	default:
		return l.readOperator(start)
	}
}

// skipBraceComment consumes a {-- ... --} comment, assuming the opening
// "{--" has already been peeked (not consumed). Returns false if the
// comment is never terminated.
func (l *Lexer) skipBraceComment() bool {
	l.advance() // {
	l.advance() // -
	l.advance() // -
	for {
		if l.ch == 0 {
			return false
		}
		if l.ch == '-' && l.peek() == '-' && l.peekAt(2) == '}' {
			l.advance()
			l.advance()
			l.advance()
			return true
		}
		l.advance()
	}
}

// skipAngleComment consumes a <!- ... -!> comment.
func (l *Lexer) skipAngleComment() bool {
	l.advance() // <
	l.advance() // !
	l.advance() // -
	for {
		if l.ch == 0 {
			return false
		}
		if l.ch == '-' && l.peek() == '!' && l.peekAt(2) == '>' {
			l.advance()
			l.advance()
			l.advance()
			return true
		}
		l.advance()
	}
}

func (l *Lexer) illegalToken(start token.Position, msg string) token.Token {
	span := l.spanFrom(start)
	l.reporter.Report(diag.Lexical, "lex:unterminated-comment", span, msg)
	return token.Token{Type: token.ILLEGAL, Literal: "", Span: span}
}

func (l *Lexer) readString(start token.Position) token.Token {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.ch == 0 || l.ch == '\n' {
			l.reporter.Report(diag.Lexical, "lex:unterminated-string", l.spanFrom(start), "unterminated string literal")
			return token.Token{Type: token.ILLEGAL, Literal: sb.String(), Span: l.spanFrom(start)}
		}
		if l.ch == '"' {
			l.advance()
			break
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	return token.Token{Type: token.STRING, Literal: sb.String(), Span: l.spanFrom(start)}
}

// readDirective recognizes the single '@'-prefixed keyword, @define.
func (l *Lexer) readDirective(start token.Position) token.Token {
	l.advance() // '@'
	var sb strings.Builder
	sb.WriteRune('@')
	for isIdentTail(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}
	word := sb.String()
	if tt, ok := token.Keywords[word]; ok {
		return token.Token{Type: tt, Literal: word, Span: l.spanFrom(start)}
	}
	l.reporter.Report(diag.Lexical, "lex:unknown-character", l.spanFrom(start), "unknown directive "+strconv.Quote(word))
	return token.Token{Type: token.ILLEGAL, Literal: word, Span: l.spanFrom(start)}
}

// readWord scans a maximal run of identifier-shaped characters, then
// classifies it as a keyword (exact match, tried first) or an
// identifier (subject to the well-formedness rules), else reports a
// malformed-identifier error.
func (l *Lexer) readWord(start token.Position) token.Token {
	var sb strings.Builder
	for isIdentTail(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}
	word := sb.String()

	if tt, ok := token.Keywords[word]; ok {
		return token.Token{Type: tt, Literal: word, Span: l.spanFrom(start)}
	}

	if violation := l.identifierViolation(word); violation != "" {
		l.reporter.Report(diag.Lexical, "lex:malformed-identifier", l.spanFrom(start), "malformed identifier "+strconv.Quote(word)+": "+violation)
		return token.Token{Type: token.ILLEGAL, Literal: word, Span: l.spanFrom(start)}
	}

	return token.Token{Type: token.IDENT, Literal: word, Span: l.spanFrom(start)}
}

// identifierViolation returns a human-readable description of the rule
// an identifier candidate breaks, or "" if it is well-formed:
//   - total length <= 14
//   - no two consecutive underscores
//   - no trailing underscore
//   - at most the first character may be uppercase
func (l *Lexer) identifierViolation(word string) string {
	runes := []rune(word)
	if len(runes) > l.maxIdentLen {
		return fmt.Sprintf("identifiers may be at most %d characters", l.maxIdentLen)
	}
	if runes[len(runes)-1] == '_' {
		return "identifiers may not end with an underscore"
	}
	for i := 1; i < len(runes); i++ {
		if runes[i] == '_' && runes[i-1] == '_' {
			return "identifiers may not contain consecutive underscores"
		}
		if 'A' <= runes[i] && runes[i] <= 'Z' {
			return "only the first character of an identifier may be uppercase"
		}
	}
	return ""
}

// signedNumeralAhead reports whether the '(' currently under the
// cursor begins a "(+123)"/"(-123)" signed numeral, without consuming
// any input. It disambiguates against ordinary parenthesized
// expressions, which never contain a sign directly after '('.
func (l *Lexer) signedNumeralAhead() bool {
	i := 2 // skip '(' and the sign, both already peeked
	sawDigit := false
	sawDot := false
	for {
		ch := l.peekAt(i)
		if isDigit(ch) {
			sawDigit = true
			i++
			continue
		}
		if ch == '.' && !sawDot {
			sawDot = true
			i++
			continue
		}
		break
	}
	return sawDigit && l.peekAt(i) == ')'
}

func (l *Lexer) readParenSignedNumber(start token.Position) token.Token {
	l.advance() // '('
	var sb strings.Builder
	sb.WriteRune(l.ch) // sign
	l.advance()
	sawDot := false
	for isDigit(l.ch) || (l.ch == '.' && !sawDot) {
		if l.ch == '.' {
			sawDot = true
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	l.advance() // ')'
	return l.classifyNumber(sb.String(), start, sawDot)
}

func (l *Lexer) readNumber(start token.Position) token.Token {
	var sb strings.Builder
	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.advance()
	}
	sawDot := false
	if l.ch == '.' && isDigit(l.peek()) {
		sawDot = true
		sb.WriteRune(l.ch)
		l.advance()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.advance()
		}
	}
	return l.classifyNumber(sb.String(), start, sawDot)
}

func (l *Lexer) classifyNumber(literal string, start token.Position, isFloat bool) token.Token {
	span := l.spanFrom(start)
	if isFloat {
		if _, err := strconv.ParseFloat(literal, 64); err != nil {
			l.reporter.Report(diag.Lexical, "lex:malformed-number", span, "malformed float literal "+strconv.Quote(literal))
			return token.Token{Type: token.ILLEGAL, Literal: literal, Span: span}
		}
		return token.Token{Type: token.FLOAT, Literal: literal, Span: span}
	}
	v, err := strconv.ParseInt(literal, 10, 64)
	if err != nil || v < minInt || v > maxInt {
		l.reporter.Report(diag.Lexical, "lex:integer-out-of-range", span, "integer literal "+literal+" out of range [-32768, 32767]")
		return token.Token{Type: token.ILLEGAL, Literal: literal, Span: span}
	}
	return token.Token{Type: token.INT, Literal: literal, Span: span}
}

// operators lists fixed-text operator/punctuation lexemes, longest
// first so that e.g. ":=" is preferred over ":" and "<=" over "<".
var operators = []struct {
	text string
	typ  token.Type
}{
	{":=", token.ASSIGN},
	{"==", token.EQ},
	{"!=", token.NEQ},
	{"<=", token.LE},
	{">=", token.GE},
	{"=", token.EQUAL},
	{"+", token.PLUS},
	{"-", token.MINUS},
	{"*", token.STAR},
	{"/", token.SLASH},
	{"<", token.LT},
	{">", token.GT},
	{"!", token.NOT},
	{"(", token.LPAREN},
	{")", token.RPAREN},
	{"[", token.LBRACKET},
	{"]", token.RBRACKET},
	{"{", token.LBRACE},
	{"}", token.RBRACE},
	{",", token.COMMA},
	{";", token.SEMI},
	{":", token.COLON},
}

func (l *Lexer) readOperator(start token.Position) token.Token {
	for _, op := range operators {
		if l.matches(op.text) {
			for range op.text {
				l.advance()
			}
			return token.Token{Type: op.typ, Literal: op.text, Span: l.spanFrom(start)}
		}
	}
	ch := l.ch
	l.advance()
	l.reporter.Report(diag.Lexical, "lex:unknown-character", l.spanFrom(start), "unknown character "+strconv.QuoteRune(ch))
	return token.Token{Type: token.ILLEGAL, Literal: string(ch), Span: l.spanFrom(start)}
}

func (l *Lexer) matches(text string) bool {
	runes := []rune(text)
	if l.ch != runes[0] {
		return false
	}
	for i := 1; i < len(runes); i++ {
		if l.peekAt(i) != runes[i] {
			return false
		}
	}
	return true
}
