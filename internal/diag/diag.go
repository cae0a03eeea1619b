// Package diag implements MiniSoft's diagnostic reporting contract: a
// single Reporter accumulates Diagnostic values from every compiler
// phase and renders them with a source-line caret.
package diag

import (
	"fmt"
	"strings"

	"github.com/minisoft-lang/minisoft/internal/token"
)

// Family identifies which phase produced a Diagnostic: lexical,
// syntax, semantic, or codegen.
type Family int

const (
	Lexical Family = iota
	Syntax
	Semantic
	Codegen
)

func (f Family) String() string {
	switch f {
	case Lexical:
		return "lexical"
	case Syntax:
		return "syntax"
	case Semantic:
		return "semantic"
	case Codegen:
		return "codegen"
	default:
		return "unknown"
	}
}

// Severity distinguishes hard errors from warnings. A warning is never
// promoted to an error, and neither is ever silently dropped.
type Severity int

const (
	Error Severity = iota
	Warning
)

// Diagnostic is a single user-visible report: a phase tag, a kind
// string namespaced by phase (e.g. "sem:division-by-zero"), a primary
// span, a message, and an optional hint.
type Diagnostic struct {
	Family   Family
	Severity Severity
	Kind     string
	Span     token.Span
	Message  string
	Hint     string
}

// Reporter accumulates diagnostics in insertion order. Insertion order,
// not span order, is what Render reproduces — this makes the
// analyzer's traversal order observable in test output, which is a
// testable property in its own right.
type Reporter struct {
	diagnostics []Diagnostic
	color       bool
}

// NewReporter creates an empty Reporter. color controls whether Render
// wraps the caret line in ANSI bold-red.
func NewReporter(color bool) *Reporter {
	return &Reporter{color: color}
}

// Report appends a new error-severity diagnostic.
func (r *Reporter) Report(family Family, kind string, span token.Span, message string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Family:   family,
		Severity: Error,
		Kind:     kind,
		Span:     span,
		Message:  message,
	})
}

// ReportHint appends an error-severity diagnostic carrying a hint.
func (r *Reporter) ReportHint(family Family, kind string, span token.Span, message, hint string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Family:   family,
		Severity: Error,
		Kind:     kind,
		Span:     span,
		Message:  message,
		Hint:     hint,
	})
}

// Warn appends a warning-severity diagnostic. Warnings never cause
// HasErrors to return true and never halt a phase.
func (r *Reporter) Warn(family Family, kind string, span token.Span, message string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Family:   family,
		Severity: Warning,
		Kind:     kind,
		Span:     span,
		Message:  message,
	})
}

// HasErrors reports whether any accumulated diagnostic is Error
// severity in the given family (or, with no arguments, any family).
func (r *Reporter) HasErrors(families ...Family) bool {
	for _, d := range r.diagnostics {
		if d.Severity != Error {
			continue
		}
		if len(families) == 0 {
			return true
		}
		for _, f := range families {
			if d.Family == f {
				return true
			}
		}
	}
	return false
}

// Diagnostics returns the accumulated diagnostics in insertion order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// Render formats every accumulated diagnostic against source, in
// insertion order, each followed by a blank line.
func (r *Reporter) Render(source string) string {
	var sb strings.Builder
	lines := strings.Split(source, "\n")
	for _, d := range r.diagnostics {
		sb.WriteString(renderOne(d, lines, r.color))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderOne(d Diagnostic, lines []string, color bool) string {
	var sb strings.Builder

	tag := d.Family.String()
	if d.Severity == Warning {
		tag = tag + " warning"
	}
	fmt.Fprintf(&sb, "%s: %s\n", tag, d.Message)

	lineIdx := d.Span.Start.Line - 1
	if lineIdx >= 0 && lineIdx < len(lines) {
		src := lines[lineIdx]
		lineNumStr := fmt.Sprintf("%4d | ", d.Span.Start.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(src)
		sb.WriteString("\n")

		width := d.Span.End.Offset - d.Span.Start.Offset
		if width < 1 {
			width = 1
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+d.Span.Start.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString(strings.Repeat("^", width))
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if d.Hint != "" {
		fmt.Fprintf(&sb, "hint: %s\n", d.Hint)
	}

	return sb.String()
}
