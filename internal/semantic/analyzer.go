// Package semantic implements MiniSoft's two-pass semantic analysis:
// a declaration pass that populates the symbol table, and a validation
// pass that type-checks and constant-folds the program body against
// it. Both passes collect every diagnostic they find before the
// Analyzer reports failure, accumulating errors rather than halting
// on the first one.
package semantic

import (
	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/symboltable"
)

// Analyzer runs the declaration and validation passes over a Program
// and owns the symbol table they share.
type Analyzer struct {
	reporter *diag.Reporter
	table    *symboltable.Table
}

// New creates an Analyzer. Diagnostics are reported to r; the returned
// Analyzer owns a fresh, empty symbol table.
func New(r *diag.Reporter) *Analyzer {
	return &Analyzer{reporter: r, table: symboltable.New()}
}

// Table returns the symbol table built by the declaration pass. Valid
// to call only after Analyze has run; the quadruple emitter reads from
// it but never mutates it.
func (a *Analyzer) Table() *symboltable.Table {
	return a.table
}

// Analyze runs both passes over program, returning ok=false if either
// pass reported any Semantic-family error. Both passes always run to
// completion (no early exit on the first error) so that the reporter
// ends up with every diagnostic for the whole program.
func (a *Analyzer) Analyze(program *ast.Program) bool {
	pass1 := &declarationPass{reporter: a.reporter, table: a.table}
	pass1.run(program)

	pass2 := &validationPass{reporter: a.reporter, table: a.table}
	pass2.run(program)

	return !a.reporter.HasErrors(diag.Semantic)
}
