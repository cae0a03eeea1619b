package semantic

import (
	"testing"

	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/lexer"
	"github.com/minisoft-lang/minisoft/internal/parser"
	"github.com/minisoft-lang/minisoft/internal/symboltable"
)

// analyze lexes, parses, and semantically analyzes source, failing the
// test immediately if an earlier phase already reports an error.
func analyze(t *testing.T, source string) (*ast.Program, *Analyzer, bool, *diag.Reporter) {
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
	analyzer := New(r)
	result := analyzer.Analyze(prog)
	return prog, analyzer, result, r
}

func hasKind(r *diag.Reporter, kind string) bool {
	for _, d := range r.Diagnostics() {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func TestAnalyzeAcceptsWellFormedProgram(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Ok;
Var
  let n: Int = 5;
  let total: Float = 0;
BeginPg
{
  for n from 1 to 5 step 1 {
    total := total + n;
  }
  output(total);
}
EndPg;
`)
	if !ok {
		t.Fatalf("unexpected semantic errors: %v", r.Diagnostics())
	}
}

func TestRedeclarationIsRejected(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Dup;
Var
  let a: Int;
  let a: Float;
BeginPg
{
  output(a);
}
EndPg;
`)
	if ok {
		t.Fatalf("expected a semantic failure")
	}
	if !hasKind(r, "sem:redeclaration") {
		t.Errorf("expected sem:redeclaration, got %v", r.Diagnostics())
	}
}

func TestArrayIndexOutOfBoundsIsRejected(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Oob;
Var
  let v: [Int; 3] = {1, 2, 3};
BeginPg
{
  v[5] := 0;
}
EndPg;
`)
	if ok {
		t.Fatalf("expected a semantic failure")
	}
	if !hasKind(r, "sem:array-index-out-of-bounds") {
		t.Errorf("expected sem:array-index-out-of-bounds, got %v", r.Diagnostics())
	}
}

func TestDivisionByZeroIsRejected(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Divzero;
Var
  let z: Int = 10 / (5 - 5);
BeginPg
{
  output(z);
}
EndPg;
`)
	if ok {
		t.Fatalf("expected a semantic failure")
	}
	if !hasKind(r, "sem:division-by-zero") {
		t.Errorf("expected sem:division-by-zero, got %v", r.Diagnostics())
	}
}

func TestIntOverflowInConstantExpressionIsRejected(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Overflow;
Var
  let x: Int = 32767 * 32767 * 3;
BeginPg
{
  output(x);
}
EndPg;
`)
	if ok {
		t.Fatalf("expected a semantic failure")
	}
	if !hasKind(r, "sem:overflow") {
		t.Errorf("expected sem:overflow, got %v", r.Diagnostics())
	}
}

func TestIntWidensToFloatOnAssignment(t *testing.T) {
	prog, _, ok, r := analyze(t, `
MainPrgm Widen;
Var
  let f: Float;
BeginPg
{
  f := 3;
  output(f);
}
EndPg;
`)
	if !ok {
		t.Fatalf("unexpected semantic errors: %v", r.Diagnostics())
	}
	assign := prog.Body[0].(*ast.AssignStmt)
	if assign.Value.Type().Elem != symboltable.Int {
		t.Errorf("widened value expression should keep its own Int type, got %s", assign.Value.Type())
	}
}

func TestFloatIntoIntDeclarationIsRejected(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Narrow;
Var
  let n: Int = 3.5;
BeginPg
{
  output(n);
}
EndPg;
`)
	if ok {
		t.Fatalf("expected a semantic failure")
	}
	if !hasKind(r, "sem:type-mismatch-in-initializer") {
		t.Errorf("expected sem:type-mismatch-in-initializer, got %v", r.Diagnostics())
	}
}

func TestAssignmentToConstantIsRejected(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Constassign;
Var
  let pi: Const Float = 3.14;
BeginPg
{
  pi := 1;
}
EndPg;
`)
	if ok {
		t.Fatalf("expected a semantic failure")
	}
	if !hasKind(r, "sem:assignment-to-constant") {
		t.Errorf("expected sem:assignment-to-constant, got %v", r.Diagnostics())
	}
}

func TestDefineInfersTypeFromLiteral(t *testing.T) {
	_, analyzer, ok, r := analyze(t, `
MainPrgm Define;
Var
  @define greeting = "hello";
BeginPg
{
  output(greeting);
}
EndPg;
`)
	if !ok {
		t.Fatalf("unexpected semantic errors: %v", r.Diagnostics())
	}
	sym, found := analyzer.Table().Lookup("greeting")
	if !found {
		t.Fatalf("greeting should be declared")
	}
	if sym.Type.Elem != symboltable.String {
		t.Errorf("greeting type = %s, want String", sym.Type)
	}
}

func TestZeroStepIsRejected(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Zerostep;
Var
  let i: Int;
BeginPg
{
  for i from 1 to 10 step 0 {
    output(i);
  }
}
EndPg;
`)
	if ok {
		t.Fatalf("expected a semantic failure")
	}
	if !hasKind(r, "sem:zero-step") {
		t.Errorf("expected sem:zero-step, got %v", r.Diagnostics())
	}
}

func TestEmptyLoopWarns(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Emptyloop;
Var
  let i: Int;
BeginPg
{
  for i from 10 to 1 step 1 {
    output(i);
  }
}
EndPg;
`)
	if !ok {
		t.Fatalf("a warning should not fail analysis: %v", r.Diagnostics())
	}
	if !hasKind(r, "sem:empty-loop") {
		t.Errorf("expected sem:empty-loop, got %v", r.Diagnostics())
	}
}

func TestChainedComparisonWarns(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Chained;
Var
  let a: Int;
  let b: Int;
BeginPg
{
  if (a < b < 1) then {
    output(a);
  }
}
EndPg;
`)
	if !ok {
		t.Fatalf("a warning should not fail analysis: %v", r.Diagnostics())
	}
	if !hasKind(r, "sem:chained-comparison") {
		t.Errorf("expected sem:chained-comparison, got %v", r.Diagnostics())
	}
}

func TestInputIntoConstantIsRejected(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Inputconst;
Var
  let pi: Const Float = 3.14;
BeginPg
{
  input(pi);
}
EndPg;
`)
	if ok {
		t.Fatalf("expected a semantic failure")
	}
	if !hasKind(r, "sem:invalid-input-target") {
		t.Errorf("expected sem:invalid-input-target, got %v", r.Diagnostics())
	}
}

func TestOutputRejectsWholeArray(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Outputarray;
Var
  let v: [Int; 2] = {1, 2};
BeginPg
{
  output(v);
}
EndPg;
`)
	if ok {
		t.Fatalf("expected a semantic failure")
	}
	if !hasKind(r, "sem:invalid-array-use") {
		t.Errorf("expected sem:invalid-array-use, got %v", r.Diagnostics())
	}
}

func TestInductionVariableMustBeIntVariable(t *testing.T) {
	_, _, ok, r := analyze(t, `
MainPrgm Badloop;
Var
  let f: Float;
BeginPg
{
  for f from 1 to 10 step 1 {
    output(f);
  }
}
EndPg;
`)
	if ok {
		t.Fatalf("expected a semantic failure")
	}
	if !hasKind(r, "sem:invalid-induction-variable") {
		t.Errorf("expected sem:invalid-induction-variable, got %v", r.Diagnostics())
	}
}
