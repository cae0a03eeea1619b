package diag

import (
	"strings"
	"testing"

	"github.com/minisoft-lang/minisoft/internal/token"
)

func span(line, col int, width int) token.Span {
	start := token.Position{Line: line, Column: col, Offset: col - 1}
	end := token.Position{Line: line, Column: col + width, Offset: col - 1 + width}
	return token.Span{Start: start, End: end}
}

func TestHasErrorsIgnoresWarnings(t *testing.T) {
	r := NewReporter(false)
	r.Warn(Semantic, "sem:empty-loop", span(1, 1, 1), "loop never executes")
	if r.HasErrors() {
		t.Errorf("a warning alone should not count as an error")
	}
	r.Report(Semantic, "sem:division-by-zero", span(1, 1, 1), "division by zero")
	if !r.HasErrors() {
		t.Errorf("expected HasErrors to be true after Report")
	}
}

func TestHasErrorsFiltersByFamily(t *testing.T) {
	r := NewReporter(false)
	r.Report(Lexical, "lex:illegal-character", span(1, 1, 1), "unexpected character")
	if r.HasErrors(Syntax) {
		t.Errorf("a lexical error should not satisfy HasErrors(Syntax)")
	}
	if !r.HasErrors(Lexical) {
		t.Errorf("expected HasErrors(Lexical) to be true")
	}
}

func TestDiagnosticsPreservesInsertionOrder(t *testing.T) {
	r := NewReporter(false)
	r.Report(Lexical, "a", span(1, 1, 1), "first")
	r.Report(Syntax, "b", span(2, 1, 1), "second")
	diags := r.Diagnostics()
	if len(diags) != 2 || diags[0].Message != "first" || diags[1].Message != "second" {
		t.Errorf("got %v, want insertion order preserved", diags)
	}
}

func TestRenderIncludesSourceLineAndCaret(t *testing.T) {
	r := NewReporter(false)
	r.Report(Semantic, "sem:division-by-zero", span(2, 5, 3), "division by zero")
	source := "let a;\nlet b = 1 / 0;\n"
	out := r.Render(source)

	if !strings.Contains(out, "semantic: division by zero") {
		t.Errorf("expected a semantic tag and message, got %q", out)
	}
	if !strings.Contains(out, "let b = 1 / 0;") {
		t.Errorf("expected the offending source line, got %q", out)
	}
	if !strings.Contains(out, "^^^") {
		t.Errorf("expected a three-wide caret, got %q", out)
	}
}

func TestRenderTagsWarningsDistinctly(t *testing.T) {
	r := NewReporter(false)
	r.Warn(Semantic, "sem:empty-loop", span(1, 1, 1), "loop never executes")
	out := r.Render("for i from 10 to 1 step 1 {}\n")
	if !strings.Contains(out, "semantic warning: loop never executes") {
		t.Errorf("expected a warning tag, got %q", out)
	}
}

func TestRenderIncludesHint(t *testing.T) {
	r := NewReporter(false)
	r.ReportHint(Semantic, "sem:redeclaration", span(2, 1, 1), "redeclaration of \"a\"", "first declared at line 1, column 1")
	out := r.Render("let a;\nlet a;\n")
	if !strings.Contains(out, "hint: first declared at line 1, column 1") {
		t.Errorf("expected a hint line, got %q", out)
	}
}

func TestRenderWrapsCaretInColor(t *testing.T) {
	r := NewReporter(true)
	r.Report(Semantic, "sem:overflow", span(1, 1, 1), "integer overflow")
	out := r.Render("x\n")
	if !strings.Contains(out, "\033[1;31m") || !strings.Contains(out, "\033[0m") {
		t.Errorf("expected ANSI color codes around the caret, got %q", out)
	}
}

func TestFamilyString(t *testing.T) {
	cases := map[Family]string{
		Lexical:  "lexical",
		Syntax:   "syntax",
		Semantic: "semantic",
		Codegen:  "codegen",
	}
	for f, want := range cases {
		if got := f.String(); got != want {
			t.Errorf("Family(%d).String() = %q, want %q", f, got, want)
		}
	}
}
