package semantic

import (
	"fmt"

	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/symboltable"
	"github.com/minisoft-lang/minisoft/internal/token"
)

// declarationPass is pass 1 of semantic analysis: it walks every
// top-level declaration once, synthesizes a symbol, and inserts it
// into the table. A failed insertion or a bad initializer never
// aborts the pass — every declaration in the program gets a chance to
// report its own diagnostic before the analyzer gives up.
type declarationPass struct {
	reporter *diag.Reporter
	table    *symboltable.Table
}

func (p *declarationPass) run(program *ast.Program) {
	for _, decl := range program.Declarations {
		p.register(decl)
	}
}

func (p *declarationPass) register(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		p.registerVarDecl(d)
	case *ast.VarDeclInit:
		p.registerVarDeclInit(d)
	case *ast.ArrayDeclInit:
		p.registerArrayDeclInit(d)
	case *ast.ConstDecl:
		p.registerConstDecl(d)
	}
}

func (p *declarationPass) declare(sym *symboltable.Symbol, span token.Span) {
	prior, ok := p.table.Declare(sym)
	if ok {
		return
	}
	msg := fmt.Sprintf("redeclaration of %q", sym.Name)
	hint := fmt.Sprintf("first declared at line %d, column %d", prior.Start.Line, prior.Start.Column)
	p.reporter.ReportHint(diag.Semantic, "sem:redeclaration", span, msg, hint)
}

func (p *declarationPass) registerVarDecl(d *ast.VarDecl) {
	if d.Type.IsArray {
		length, ok := p.arrayLength(d.Type)
		if !ok {
			return
		}
		for i, name := range d.Names {
			p.declare(&symboltable.Symbol{
				Name:     name,
				Kind:     symboltable.Array,
				Type:     symboltable.ArrayOf(d.Type.Elem, length),
				DeclSpan: d.NameSpans[i],
			}, d.NameSpans[i])
		}
		return
	}
	for i, name := range d.Names {
		p.declare(&symboltable.Symbol{
			Name:     name,
			Kind:     symboltable.Variable,
			Type:     symboltable.Scalar(d.Type.Elem),
			DeclSpan: d.NameSpans[i],
		}, d.NameSpans[i])
	}
}

// arrayLength validates the "n must be an integer literal in
// [1, 2^31-1]" rule, reporting *invalid array size* otherwise.
func (p *declarationPass) arrayLength(t *ast.TypeExpr) (int, bool) {
	lit, ok := t.Length.(*ast.IntLiteral)
	if !ok || lit.Value < minArrayLength || lit.Value > maxArrayLength {
		p.reporter.Report(diag.Semantic, "sem:invalid-array-size", t.Length.Span(),
			"array length must be an integer literal in [1, 2147483647]")
		return 0, false
	}
	return int(lit.Value), true
}

func (p *declarationPass) constEnv() *foldEnv {
	return &foldEnv{table: p.table, reporter: p.reporter, constantsOnly: true}
}

// coerce applies the sole legal widening (an Int-typed initializer
// into a Float declaration) and otherwise requires a folded, exact
// type match, reporting *type mismatch in initializer* when it fails.
func (p *declarationPass) coerce(result foldResult, declType symboltable.Type, span token.Span) (symboltable.ConstValue, bool) {
	if !result.Folded {
		p.reporter.Report(diag.Semantic, "sem:type-mismatch-in-initializer", span,
			"initializer is not a compile-time constant expression")
		return symboltable.ConstValue{}, false
	}
	if result.Type.IsArray || result.Type.Elem != declType.Elem {
		if declType.Elem == symboltable.Float && result.Type.Elem == symboltable.Int && !result.Type.IsArray {
			return symboltable.FloatValue(float64(result.Value.I)), true
		}
		p.reporter.Report(diag.Semantic, "sem:type-mismatch-in-initializer", span,
			fmt.Sprintf("cannot initialize %s from %s", declType, result.Type))
		return symboltable.ConstValue{}, false
	}
	return result.Value, true
}

func (p *declarationPass) registerVarDeclInit(d *ast.VarDeclInit) {
	declType := symboltable.Scalar(d.Type.Elem)
	result := evalExpr(p.constEnv(), d.Init)

	value, ok := p.coerce(result, declType, d.Init.Span())
	if !ok {
		return
	}
	p.declare(&symboltable.Symbol{
		Name:     d.Name,
		Kind:     symboltable.Variable,
		Type:     declType,
		Value:    value,
		DeclSpan: d.NameSpan,
	}, d.NameSpan)
}

func (p *declarationPass) registerArrayDeclInit(d *ast.ArrayDeclInit) {
	length, ok := p.arrayLength(d.Type)
	if !ok {
		return
	}
	if len(d.Elements) != length {
		p.reporter.Report(diag.Semantic, "sem:array-length-mismatch", d.SpanValue,
			fmt.Sprintf("expected %d initializer elements, found %d", length, len(d.Elements)))
		return
	}

	declType := symboltable.Scalar(d.Type.Elem)
	env := p.constEnv()
	values := make([]symboltable.ConstValue, 0, length)
	allOK := true
	for _, elem := range d.Elements {
		result := evalExpr(env, elem)
		v, elemOK := p.coerce(result, declType, elem.Span())
		if !elemOK {
			allOK = false
			continue
		}
		values = append(values, v)
	}
	if !allOK {
		return
	}
	p.declare(&symboltable.Symbol{
		Name:        d.Name,
		Kind:        symboltable.Array,
		Type:        symboltable.ArrayOf(d.Type.Elem, length),
		ArrayValues: values,
		DeclSpan:    d.NameSpan,
	}, d.NameSpan)
}

func (p *declarationPass) registerConstDecl(d *ast.ConstDecl) {
	result := evalExpr(p.constEnv(), d.Literal)

	declType := result.Type
	if d.Type != nil {
		declType = symboltable.Scalar(d.Type.Elem)
	}

	value, ok := p.coerce(result, declType, d.Literal.Span())
	if !ok {
		return
	}
	p.declare(&symboltable.Symbol{
		Name:     d.Name,
		Kind:     symboltable.Constant,
		Type:     declType,
		Value:    value,
		DeclSpan: d.NameSpan,
	}, d.NameSpan)
}
