package compiler

import (
	"os"
	"testing"

	"github.com/minisoft-lang/minisoft/internal/quad"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("reading fixture %q: %v", name, err)
	}
	return string(data)
}

func TestSessionRunSucceedsOnFactorial(t *testing.T) {
	s := New(readFixture(t, "factorial.minisoft"), "factorial.minisoft", false)
	stage := s.Run()
	if stage != StageDone {
		t.Fatalf("stage = %v, want StageDone; diagnostics: %v", stage, s.Reporter.Diagnostics())
	}
	if stage.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", stage.ExitCode())
	}
	if len(s.Quads) == 0 {
		t.Errorf("expected a non-empty quadruple stream")
	}
}

func TestSessionRunStopsAtLexOnOutOfRangeInteger(t *testing.T) {
	s := New(readFixture(t, "integer_range.minisoft"), "integer_range.minisoft", false)
	stage := s.Run()
	if stage != StageLex {
		t.Fatalf("stage = %v, want StageLex; diagnostics: %v", stage, s.Reporter.Diagnostics())
	}
	if stage.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", stage.ExitCode())
	}
}

func TestSessionRunStopsAtSemanticOnDuplicateDeclaration(t *testing.T) {
	s := New(readFixture(t, "duplicate_decl.minisoft"), "duplicate_decl.minisoft", false)
	stage := s.Run()
	if stage != StageSemantic {
		t.Fatalf("stage = %v, want StageSemantic; diagnostics: %v", stage, s.Reporter.Diagnostics())
	}
	if stage.ExitCode() != 4 {
		t.Errorf("ExitCode() = %d, want 4", stage.ExitCode())
	}
}

func TestSessionRunStopsAtSemanticOnArrayOutOfBounds(t *testing.T) {
	s := New(readFixture(t, "array_out_of_bounds.minisoft"), "array_out_of_bounds.minisoft", false)
	stage := s.Run()
	if stage != StageSemantic {
		t.Fatalf("stage = %v, want StageSemantic; diagnostics: %v", stage, s.Reporter.Diagnostics())
	}
}

func TestSessionRunStopsAtSemanticOnDivisionByZero(t *testing.T) {
	s := New(readFixture(t, "division_by_zero.minisoft"), "division_by_zero.minisoft", false)
	stage := s.Run()
	if stage != StageSemantic {
		t.Fatalf("stage = %v, want StageSemantic; diagnostics: %v", stage, s.Reporter.Diagnostics())
	}
}

func TestSessionRunSucceedsOnWidening(t *testing.T) {
	s := New(readFixture(t, "widening.minisoft"), "widening.minisoft", false)
	stage := s.Run()
	if stage != StageDone {
		t.Fatalf("stage = %v, want StageDone; diagnostics: %v", stage, s.Reporter.Diagnostics())
	}
	found := false
	for _, q := range s.Quads {
		if q.Op == quad.ASSIGN && q.Result == "f" && q.Arg1 == "3.0" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an ASSIGN of 3.0 into f, got %v", s.Quads)
	}
}

func TestExitCodeDefaultsToZero(t *testing.T) {
	if StageDone.ExitCode() != 0 {
		t.Errorf("StageDone.ExitCode() = %d, want 0", StageDone.ExitCode())
	}
	if StageCodegen.ExitCode() != 5 {
		t.Errorf("StageCodegen.ExitCode() = %d, want 5", StageCodegen.ExitCode())
	}
}
