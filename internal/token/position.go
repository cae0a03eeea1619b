// Package token defines the lexical vocabulary of MiniSoft: token types,
// the located Token value, and the Position/Span types every later stage
// of the compiler borrows to talk about where something came from.
package token

import "fmt"

// Position identifies a single point in the source text: a byte offset
// plus the 1-based line and column (in runes) of that offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open character range [Start, End) together with the
// line/column of Start. Every token and every AST node carries one; it
// is the sole authority diagnostics use to render a caret under source
// text.
type Span struct {
	Start Position
	End   Position
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	start := s.Start
	if other.Start.Offset < start.Offset {
		start = other.Start
	}
	end := s.End
	if other.End.Offset > end.Offset {
		end = other.End
	}
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
