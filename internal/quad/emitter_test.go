package quad

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/lexer"
	"github.com/minisoft-lang/minisoft/internal/parser"
	"github.com/minisoft-lang/minisoft/internal/semantic"
)

// compile lexes, parses, and analyzes source, returning the validated
// program and the symbol table the emitter reads from.
func compile(t *testing.T, source string) (*ast.Program, *semantic.Analyzer) {
	t.Helper()
	r := diag.NewReporter(false)
	toks := lexer.New(source, r).Tokenize()
	if r.HasErrors(diag.Lexical) {
		t.Fatalf("unexpected lexical errors: %v", r.Diagnostics())
	}
	prog, ok := parser.New(toks, r).ParseProgram()
	if !ok {
		t.Fatalf("unexpected parse errors: %v", r.Diagnostics())
	}
	analyzer := semantic.New(r)
	if !analyzer.Analyze(prog) {
		t.Fatalf("unexpected semantic errors: %v", r.Diagnostics())
	}
	return prog, analyzer
}

const factorialSource = `
MainPrgm Factorial;
Var
  let n: Int = 5;
  let result: Float = 1;
  let i: Int;
BeginPg
{
  for i from 1 to n step 1 {
    result := result * i;
  }
  output(result);
}
EndPg;
`

func TestEmitFactorialLoop(t *testing.T) {
	prog, analyzer := compile(t, factorialSource)
	quads := New(analyzer.Table()).Emit(prog)

	want := []Quadruple{
		{Op: ASSIGN, Arg1: "1", Arg2: unused, Result: "i"},
		{Op: LABEL, Arg1: unused, Arg2: unused, Result: "L1"},
		{Op: LE, Arg1: "i", Arg2: "n", Result: "t1"},
		{Op: JMPF, Arg1: "t1", Arg2: unused, Result: "L2"},
		{Op: MUL, Arg1: "result", Arg2: "i", Result: "t2"},
		{Op: ASSIGN, Arg1: "t2", Arg2: unused, Result: "result"},
		{Op: ADD, Arg1: "i", Arg2: "1", Result: "t3"},
		{Op: ASSIGN, Arg1: "t3", Arg2: unused, Result: "i"},
		{Op: JUMP, Arg1: unused, Arg2: unused, Result: "L1"},
		{Op: LABEL, Arg1: unused, Arg2: unused, Result: "L2"},
		{Op: OUTPUT, Arg1: "result", Arg2: unused, Result: unused},
		{Op: HALT, Arg1: unused, Arg2: unused, Result: unused},
	}

	if len(quads) != len(want) {
		t.Fatalf("got %d quadruples, want %d:\n%s", len(quads), len(want), Render(quads))
	}
	for i, q := range want {
		if quads[i] != q {
			t.Errorf("quad %d: got %s, want %s", i, quads[i], q)
		}
	}
}

func TestEmitFactorialLoopSnapshot(t *testing.T) {
	prog, analyzer := compile(t, factorialSource)
	quads := New(analyzer.Table()).Emit(prog)
	snaps.MatchSnapshot(t, Render(quads))
}

func TestEmitConstantFoldingProducesNoArithmeticQuads(t *testing.T) {
	prog, analyzer := compile(t, `
MainPrgm Folded;
Var
  let x: Int;
BeginPg
{
  x := 2 + 3 * 4;
  output(x);
}
EndPg;
`)
	quads := New(analyzer.Table()).Emit(prog)
	want := []Quadruple{
		{Op: ASSIGN, Arg1: "14", Arg2: unused, Result: "x"},
		{Op: OUTPUT, Arg1: "x", Arg2: unused, Result: unused},
		{Op: HALT, Arg1: unused, Arg2: unused, Result: unused},
	}
	if len(quads) != len(want) {
		t.Fatalf("got %d quadruples, want %d:\n%s", len(quads), len(want), Render(quads))
	}
	for i, q := range want {
		if quads[i] != q {
			t.Errorf("quad %d: got %s, want %s", i, quads[i], q)
		}
	}
}

func TestEmitWideningAssignmentRendersFloatLiteral(t *testing.T) {
	prog, analyzer := compile(t, `
MainPrgm Widen;
Var
  let f: Float;
BeginPg
{
  f := 3;
}
EndPg;
`)
	quads := New(analyzer.Table()).Emit(prog)
	if len(quads) != 2 {
		t.Fatalf("got %d quadruples, want 2:\n%s", len(quads), Render(quads))
	}
	want := Quadruple{Op: ASSIGN, Arg1: "3.0", Arg2: unused, Result: "f"}
	if quads[0] != want {
		t.Errorf("got %s, want %s", quads[0], want)
	}
}

func TestEmitArrayAccess(t *testing.T) {
	prog, analyzer := compile(t, `
MainPrgm Arr;
Var
  let v: [Int; 3] = {1, 2, 3};
  let i: Int;
BeginPg
{
  v[i] := v[0] + 1;
}
EndPg;
`)
	quads := New(analyzer.Table()).Emit(prog)
	want := []Quadruple{
		{Op: MUL, Arg1: "0", Arg2: elemSize, Result: "t1"},
		{Op: ARR_LOAD, Arg1: "t1", Arg2: "v", Result: "t2"},
		{Op: ADD, Arg1: "t2", Arg2: "1", Result: "t3"},
		{Op: MUL, Arg1: "i", Arg2: elemSize, Result: "t4"},
		{Op: ARR_STORE, Arg1: "t3", Arg2: "t4", Result: "v"},
		{Op: HALT, Arg1: unused, Arg2: unused, Result: unused},
	}
	if len(quads) != len(want) {
		t.Fatalf("got %d quadruples, want %d:\n%s", len(quads), len(want), Render(quads))
	}
	for i, q := range want {
		if quads[i] != q {
			t.Errorf("quad %d: got %s, want %s", i, quads[i], q)
		}
	}
}

func TestEmitIfWithoutElseCollapsesLabels(t *testing.T) {
	prog, analyzer := compile(t, `
MainPrgm Ifonly;
Var
  let x: Int;
BeginPg
{
  if (x > 0) then {
    output(x);
  }
}
EndPg;
`)
	quads := New(analyzer.Table()).Emit(prog)
	want := []Quadruple{
		{Op: GT, Arg1: "x", Arg2: "0", Result: "t1"},
		{Op: JMPF, Arg1: "t1", Arg2: unused, Result: "L1"},
		{Op: OUTPUT, Arg1: "x", Arg2: unused, Result: unused},
		{Op: LABEL, Arg1: unused, Arg2: unused, Result: "L1"},
		{Op: HALT, Arg1: unused, Arg2: unused, Result: unused},
	}
	if len(quads) != len(want) {
		t.Fatalf("got %d quadruples, want %d:\n%s", len(quads), len(want), Render(quads))
	}
	for i, q := range want {
		if quads[i] != q {
			t.Errorf("quad %d: got %s, want %s", i, quads[i], q)
		}
	}
}

func TestRenderFormat(t *testing.T) {
	quads := []Quadruple{{Op: ADD, Arg1: "1", Arg2: "2", Result: "t1"}}
	got := Render(quads)
	want := "(ADD, 1, 2, t1)\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
