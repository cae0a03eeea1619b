package semantic

import (
	"fmt"

	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/diag"
	"github.com/minisoft-lang/minisoft/internal/symboltable"
	"github.com/minisoft-lang/minisoft/internal/token"
)

// comparisonOps identifies the six comparison operators, used both to
// type-check them uniformly and to detect the chained-comparison shape
// pass 2 warns about.
var comparisonOps = map[token.Type]bool{
	token.EQ: true, token.NEQ: true,
	token.LT: true, token.GT: true, token.LE: true, token.GE: true,
}

const (
	minArrayLength = 1
	maxArrayLength = 1<<31 - 1
	minInt32       = -1 << 31
	maxInt32       = 1<<31 - 1
)

// foldResult is the outcome of evaluating an expression: its resolved
// type, always set, and its compile-time value, set only when the
// expression is a constant one.
type foldResult struct {
	Type   symboltable.Type
	Value  symboltable.ConstValue
	Folded bool
}

func numeric(r foldResult) bool {
	return !r.Type.IsArray && (r.Type.Elem == symboltable.Int || r.Type.Elem == symboltable.Float)
}

// foldEnv carries what evalExpr needs to resolve identifiers and
// report diagnostics. constantsOnly is pass 1's restriction: an
// initializer may reference only literals and previously declared
// constants, never an ordinary variable or array.
type foldEnv struct {
	table         *symboltable.Table
	reporter      *diag.Reporter
	constantsOnly bool
}

// evalExpr type-checks and, where possible, constant-folds e in a
// single traversal, merging type resolution and constant-value
// computation for pass 2 and reused by pass 1 for initializer
// expressions.
// It always annotates e with a Type; Folded is set only when e turns
// out to be a compile-time constant.
func evalExpr(env *foldEnv, e ast.Expression) foldResult {
	var result foldResult

	switch n := e.(type) {
	case *ast.IntLiteral:
		result = foldResult{Type: symboltable.Scalar(symboltable.Int), Value: symboltable.IntValue(n.Value), Folded: true}

	case *ast.FloatLiteral:
		result = foldResult{Type: symboltable.Scalar(symboltable.Float), Value: symboltable.FloatValue(n.Value), Folded: true}

	case *ast.StringLiteral:
		result = foldResult{Type: symboltable.Scalar(symboltable.String), Value: symboltable.StringValue(n.Value), Folded: true}

	case *ast.Identifier:
		result = evalIdentifier(env, n)

	case *ast.IndexExpr:
		result = evalIndex(env, n)

	case *ast.BinaryExpr:
		result = evalBinary(env, n)

	case *ast.UnaryExpr:
		result = evalUnary(env, n)

	default:
		result = foldResult{Type: symboltable.Scalar(symboltable.Int)}
	}

	e.SetType(result.Type)
	if result.Folded {
		e.SetFolded(result.Value)
	}
	return result
}

func evalIdentifier(env *foldEnv, n *ast.Identifier) foldResult {
	sym, ok := env.table.Lookup(n.Name)
	if !ok {
		env.reporter.Report(diag.Semantic, "sem:not-declared", n.Span(), fmt.Sprintf("%q is not declared", n.Name))
		return foldResult{Type: symboltable.Scalar(symboltable.Int)}
	}
	if sym.Kind == symboltable.Array {
		env.reporter.Report(diag.Semantic, "sem:invalid-array-use", n.Span(),
			fmt.Sprintf("%q is an array and cannot be used as a scalar value", n.Name))
		return foldResult{Type: sym.Type}
	}
	if env.constantsOnly && sym.Kind != symboltable.Constant {
		env.reporter.Report(diag.Semantic, "sem:non-constant-initializer", n.Span(),
			fmt.Sprintf("%q is not a compile-time constant", n.Name))
		return foldResult{Type: sym.Type}
	}
	if sym.Kind == symboltable.Constant {
		return foldResult{Type: sym.Type, Value: sym.Value, Folded: true}
	}
	return foldResult{Type: sym.Type}
}

func evalIndex(env *foldEnv, n *ast.IndexExpr) foldResult {
	sym, ok := env.table.Lookup(n.Array.Name)
	if !ok {
		env.reporter.Report(diag.Semantic, "sem:not-declared", n.Array.Span(), fmt.Sprintf("%q is not declared", n.Array.Name))
		return foldResult{Type: symboltable.Scalar(symboltable.Int)}
	}
	if sym.Kind != symboltable.Array {
		env.reporter.Report(diag.Semantic, "sem:index-of-non-array", n.Array.Span(),
			fmt.Sprintf("%q is not an array", n.Array.Name))
		return foldResult{Type: symboltable.Scalar(symboltable.Int)}
	}
	n.Array.SetType(sym.Type)

	idx := evalExpr(env, n.Index)
	if idx.Type.IsArray || idx.Type.Elem != symboltable.Int {
		env.reporter.Report(diag.Semantic, "sem:invalid-index-type", n.Index.Span(), "array index must be an Int expression")
	} else if idx.Folded {
		if idx.Value.I < 0 || idx.Value.I >= int64(sym.Type.Length) {
			env.reporter.Report(diag.Semantic, "sem:array-index-out-of-bounds", n.Span(),
				fmt.Sprintf("index %d out of bounds for array %q of length %d", idx.Value.I, n.Array.Name, sym.Type.Length))
		}
	}

	return foldResult{Type: symboltable.Scalar(sym.Type.Elem)}
}

func evalBinary(env *foldEnv, n *ast.BinaryExpr) foldResult {
	left := evalExpr(env, n.Left)
	right := evalExpr(env, n.Right)

	switch {
	case n.Op == token.AND || n.Op == token.OR:
		return evalLogical(env, n, left, right)
	case comparisonOps[n.Op]:
		return evalComparison(env, n, left, right)
	default:
		return evalArithmetic(env, n, left, right)
	}
}

func evalArithmetic(env *foldEnv, n *ast.BinaryExpr, left, right foldResult) foldResult {
	if !numeric(left) || !numeric(right) {
		env.reporter.Report(diag.Semantic, "sem:invalid-operand-type", n.Span(),
			"arithmetic operands must be Int or Float")
		return foldResult{Type: symboltable.Scalar(symboltable.Int)}
	}

	resultBase := symboltable.Int
	if left.Type.Elem == symboltable.Float || right.Type.Elem == symboltable.Float {
		resultBase = symboltable.Float
	}
	result := foldResult{Type: symboltable.Scalar(resultBase)}

	if n.Op == token.SLASH && right.Folded && right.Value.IsZero() {
		env.reporter.Report(diag.Semantic, "sem:division-by-zero", n.Span(), "division by zero")
		return result
	}

	if !left.Folded || !right.Folded {
		return result
	}

	if resultBase == symboltable.Float {
		v, ok := foldFloatArith(n.Op, left.Value.AsFloat(), right.Value.AsFloat())
		if ok {
			result.Value = symboltable.FloatValue(v)
			result.Folded = true
		}
		return result
	}

	v, overflow := foldIntArith(n.Op, left.Value.I, right.Value.I)
	if overflow {
		env.reporter.Report(diag.Semantic, "sem:overflow", n.Span(), "integer overflow in constant expression")
		return result
	}
	result.Value = symboltable.IntValue(v)
	result.Folded = true
	return result
}

func foldFloatArith(op token.Type, l, r float64) (float64, bool) {
	switch op {
	case token.PLUS:
		return l + r, true
	case token.MINUS:
		return l - r, true
	case token.STAR:
		return l * r, true
	case token.SLASH:
		return l / r, true
	default:
		return 0, false
	}
}

// foldIntArith computes an arithmetic result in 64-bit arithmetic and
// reports an overflow if it falls outside the 32-bit two's-complement
// range Int values are required to stay within.
func foldIntArith(op token.Type, l, r int64) (v int64, overflow bool) {
	switch op {
	case token.PLUS:
		v = l + r
	case token.MINUS:
		v = l - r
	case token.STAR:
		v = l * r
	case token.SLASH:
		v = l / r
	}
	return v, v < minInt32 || v > maxInt32
}

func evalComparison(env *foldEnv, n *ast.BinaryExpr, left, right foldResult) foldResult {
	if !numeric(left) || !numeric(right) {
		env.reporter.Report(diag.Semantic, "sem:invalid-operand-type", n.Span(),
			"comparison operands must be Int or Float")
		return foldResult{Type: symboltable.Scalar(symboltable.Int)}
	}
	if chained, ok := n.Left.(*ast.BinaryExpr); ok && comparisonOps[chained.Op] {
		env.reporter.Warn(diag.Semantic, "sem:chained-comparison", n.Span(),
			"chained comparison is evaluated left-associatively, not as a mathematical chain")
	}

	result := foldResult{Type: symboltable.Scalar(symboltable.Int)}
	if !left.Folded || !right.Folded {
		return result
	}

	var cmp bool
	if left.Type.Elem == symboltable.Int && right.Type.Elem == symboltable.Int {
		cmp = compareInt(n.Op, left.Value.I, right.Value.I)
	} else {
		cmp = compareFloat(n.Op, left.Value.AsFloat(), right.Value.AsFloat())
	}
	result.Value = boolValue(cmp)
	result.Folded = true
	return result
}

func compareInt(op token.Type, l, r int64) bool {
	switch op {
	case token.EQ:
		return l == r
	case token.NEQ:
		return l != r
	case token.LT:
		return l < r
	case token.GT:
		return l > r
	case token.LE:
		return l <= r
	case token.GE:
		return l >= r
	}
	return false
}

func compareFloat(op token.Type, l, r float64) bool {
	switch op {
	case token.EQ:
		return l == r
	case token.NEQ:
		return l != r
	case token.LT:
		return l < r
	case token.GT:
		return l > r
	case token.LE:
		return l <= r
	case token.GE:
		return l >= r
	}
	return false
}

func evalLogical(env *foldEnv, n *ast.BinaryExpr, left, right foldResult) foldResult {
	if !isIntScalar(left) || !isIntScalar(right) {
		env.reporter.Report(diag.Semantic, "sem:invalid-logical-operand", n.Span(),
			"AND/OR operands must be Int")
		return foldResult{Type: symboltable.Scalar(symboltable.Int)}
	}
	result := foldResult{Type: symboltable.Scalar(symboltable.Int)}
	if !left.Folded || !right.Folded {
		return result
	}
	lt, rt := !left.Value.IsZero(), !right.Value.IsZero()
	var v bool
	if n.Op == token.AND {
		v = lt && rt
	} else {
		v = lt || rt
	}
	result.Value = boolValue(v)
	result.Folded = true
	return result
}

func evalUnary(env *foldEnv, n *ast.UnaryExpr) foldResult {
	operand := evalExpr(env, n.Operand)
	if !isIntScalar(operand) {
		env.reporter.Report(diag.Semantic, "sem:invalid-logical-operand", n.Span(), "! operand must be an Int")
		return foldResult{Type: symboltable.Scalar(symboltable.Int)}
	}
	result := foldResult{Type: symboltable.Scalar(symboltable.Int)}
	if !operand.Folded {
		return result
	}
	if operand.Value.I != 0 && operand.Value.I != 1 {
		env.reporter.Report(diag.Semantic, "sem:invalid-logical-operand", n.Span(),
			"! operand must fold to 0 or 1")
		return result
	}
	result.Value = symboltable.IntValue(1 - operand.Value.I)
	result.Folded = true
	return result
}

func isIntScalar(r foldResult) bool {
	return !r.Type.IsArray && r.Type.Elem == symboltable.Int
}

func boolValue(v bool) symboltable.ConstValue {
	if v {
		return symboltable.IntValue(1)
	}
	return symboltable.IntValue(0)
}
