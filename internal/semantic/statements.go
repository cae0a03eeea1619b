package semantic

import (
	"fmt"

	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/symboltable"
	"github.com/minisoft-lang/minisoft/internal/token"
)

// validationPass is pass 2 of semantic analysis: it walks the program
// body once, type-checking and constant-folding every expression
// against the table pass 1 built. It never mutates the table's
// entries, aside from the Mutated diagnostic flag recorded when an
// l-value is written to.
type validationPass struct {
	reporter *diag.Reporter
	table    *symboltable.Table
}

func (p *validationPass) run(program *ast.Program) {
	p.analyzeBlock(program.Body)
}

func (p *validationPass) env() *foldEnv {
	return &foldEnv{table: p.table, reporter: p.reporter}
}

func (p *validationPass) analyzeBlock(stmts []ast.Statement) {
	for _, s := range stmts {
		p.analyzeStmt(s)
	}
}

func (p *validationPass) analyzeStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		p.analyzeAssign(s)
	case *ast.IfStmt:
		p.analyzeIf(s)
	case *ast.DoWhileStmt:
		p.analyzeDoWhile(s)
	case *ast.ForStmt:
		p.analyzeFor(s)
	case *ast.InputStmt:
		p.analyzeInput(s)
	case *ast.OutputStmt:
		p.analyzeOutput(s)
	}
}

func (p *validationPass) analyzeAssign(s *ast.AssignStmt) {
	targetResult := evalExpr(p.env(), s.Target)

	switch t := s.Target.(type) {
	case *ast.Identifier:
		if sym, found := p.table.Lookup(t.Name); found {
			if sym.IsConst() {
				p.reporter.Report(diag.Semantic, "sem:assignment-to-constant", t.Span(),
					fmt.Sprintf("cannot assign to constant %q", t.Name))
			} else {
				sym.Mutated = true
			}
		}
	case *ast.IndexExpr:
		if sym, found := p.table.Lookup(t.Array.Name); found {
			sym.Mutated = true
		}
	}

	valueResult := evalExpr(p.env(), s.Value)
	p.checkAssignable(targetResult.Type, valueResult.Type, s.Value.Span())
}

// checkAssignable enforces the assignment widening rule: exact type
// match, or an Int value into a Float target.
func (p *validationPass) checkAssignable(target, value symboltable.Type, span token.Span) {
	if target.IsArray || value.IsArray {
		p.reporter.Report(diag.Semantic, "sem:type-mismatch-in-assignment", span, "arrays cannot be assigned whole")
		return
	}
	if target.Elem == value.Elem {
		return
	}
	if target.Elem == symboltable.Float && value.Elem == symboltable.Int {
		return
	}
	p.reporter.Report(diag.Semantic, "sem:type-mismatch-in-assignment", span,
		fmt.Sprintf("cannot assign %s value to %s target", value, target))
}

func (p *validationPass) checkCondition(cond ast.Expression) {
	result := evalExpr(p.env(), cond)
	if result.Type.IsArray || result.Type.Elem != symboltable.Int {
		p.reporter.Report(diag.Semantic, "sem:invalid-condition-type", cond.Span(), "condition must be an Int expression")
	}
}

func (p *validationPass) analyzeIf(s *ast.IfStmt) {
	p.checkCondition(s.Cond)
	p.analyzeBlock(s.Then)
	if s.HasElse {
		p.analyzeBlock(s.Else)
	}
}

func (p *validationPass) analyzeDoWhile(s *ast.DoWhileStmt) {
	p.analyzeBlock(s.Body)
	p.checkCondition(s.Cond)
}

func (p *validationPass) analyzeFor(s *ast.ForStmt) {
	sym, found := p.table.Lookup(s.Var)
	switch {
	case !found:
		p.reporter.Report(diag.Semantic, "sem:not-declared", s.VarSpan, fmt.Sprintf("%q is not declared", s.Var))
	case sym.Kind != symboltable.Variable || sym.Type.IsArray || sym.Type.Elem != symboltable.Int:
		p.reporter.Report(diag.Semantic, "sem:invalid-induction-variable", s.VarSpan,
			fmt.Sprintf("%q must be a non-constant Int variable to serve as a loop induction variable", s.Var))
	default:
		sym.Mutated = true
	}

	from := p.checkLoopBound(s.From)
	to := p.checkLoopBound(s.To)
	step := p.checkLoopBound(s.Step)

	if from.Folded && to.Folded && step.Folded {
		switch {
		case step.Value.I == 0:
			p.reporter.Report(diag.Semantic, "sem:zero-step", s.Step.Span(), "loop step must not be zero")
		case step.Value.I > 0 && from.Value.I > to.Value.I:
			p.reporter.Warn(diag.Semantic, "sem:empty-loop", s.SpanValue, "loop never executes: step is positive but from > to")
		case step.Value.I < 0 && from.Value.I < to.Value.I:
			p.reporter.Warn(diag.Semantic, "sem:empty-loop", s.SpanValue, "loop never executes: step is negative but from < to")
		}
	}

	p.analyzeBlock(s.Body)
}

func (p *validationPass) checkLoopBound(e ast.Expression) foldResult {
	result := evalExpr(p.env(), e)
	if result.Type.IsArray || result.Type.Elem != symboltable.Int {
		p.reporter.Report(diag.Semantic, "sem:invalid-loop-bound", e.Span(), "loop bounds and step must be Int expressions")
	}
	return result
}

func (p *validationPass) analyzeInput(s *ast.InputStmt) {
	evalExpr(p.env(), s.Target)
	if id, ok := s.Target.(*ast.Identifier); ok {
		if sym, found := p.table.Lookup(id.Name); found && sym.IsConst() {
			p.reporter.Report(diag.Semantic, "sem:invalid-input-target", id.Span(),
				fmt.Sprintf("cannot read input into constant %q", id.Name))
		}
	}
}

func (p *validationPass) analyzeOutput(s *ast.OutputStmt) {
	for _, arg := range s.Args {
		if _, ok := arg.(*ast.StringLiteral); ok {
			arg.SetType(symboltable.Scalar(symboltable.String))
			continue
		}
		result := evalExpr(p.env(), arg)
		if result.Type.IsArray {
			p.reporter.Report(diag.Semantic, "sem:invalid-output-argument", arg.Span(), "cannot output an array value")
		}
	}
}
