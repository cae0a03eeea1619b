package quad

import (
	"strconv"
	"strings"

	"github.com/minisoft-lang/minisoft/internal/ast"
	"github.com/minisoft-lang/minisoft/internal/symboltable"
	"github.com/minisoft-lang/minisoft/internal/token"
)

// elemSize is the address-arithmetic unit the array-access lowering
// multiplies the index by. MiniSoft's IR is word-addressed, not
// byte-addressed, so every element — Int or Float — occupies exactly
// one slot.
const elemSize = "1"

// Emitter lowers a semantically-validated AST into a flat Quadruple
// stream. It reads the symbol table the analyzer built but never
// writes to it.
type Emitter struct {
	table      *symboltable.Table
	quads      []Quadruple
	tempCount  int
	labelCount int
}

// New creates an Emitter reading symbol types from table.
func New(table *symboltable.Table) *Emitter {
	return &Emitter{table: table}
}

// Emit lowers program's body into a quadruple stream terminated by a
// HALT instruction.
func (em *Emitter) Emit(program *ast.Program) []Quadruple {
	em.emitBlock(program.Body)
	em.emit(HALT, unused, unused, unused)
	return em.quads
}

func (em *Emitter) emit(op, arg1, arg2, result string) {
	em.quads = append(em.quads, Quadruple{Op: op, Arg1: arg1, Arg2: arg2, Result: result})
}

func (em *Emitter) newTemp() string {
	em.tempCount++
	return "t" + strconv.Itoa(em.tempCount)
}

func (em *Emitter) newLabel() string {
	em.labelCount++
	return "L" + strconv.Itoa(em.labelCount)
}

func (em *Emitter) emitBlock(stmts []ast.Statement) {
	for _, s := range stmts {
		em.emitStmt(s)
	}
}

func (em *Emitter) emitStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		em.emitAssign(s)
	case *ast.IfStmt:
		em.emitIf(s)
	case *ast.DoWhileStmt:
		em.emitDoWhile(s)
	case *ast.ForStmt:
		em.emitFor(s)
	case *ast.InputStmt:
		em.emitInput(s)
	case *ast.OutputStmt:
		em.emitOutput(s)
	}
}

// renderValue formats a folded constant as a quadruple operand. Floats
// always carry a decimal point, even for whole numbers, so that a
// widened Int reads unambiguously as a Float literal downstream.
func renderValue(v symboltable.ConstValue) string {
	switch v.Base {
	case symboltable.Float:
		return formatFloat(v.F)
	case symboltable.String:
		return strconv.Quote(v.Str)
	default:
		return strconv.FormatInt(v.I, 10)
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// emitExpr lowers an expression to an operand: a folded expression
// propagates its literal value directly, with no quad emitted at all.
func (em *Emitter) emitExpr(e ast.Expression) string {
	if fv, ok := e.Folded(); ok {
		return renderValue(fv)
	}
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Name
	case *ast.IndexExpr:
		return em.emitIndexLoad(n)
	case *ast.BinaryExpr:
		return em.emitBinary(n)
	case *ast.UnaryExpr:
		return em.emitUnary(n)
	default:
		return unused
	}
}

func (em *Emitter) emitIndexLoad(n *ast.IndexExpr) string {
	idx := em.emitExpr(n.Index)
	offset := em.newTemp()
	em.emit(MUL, idx, elemSize, offset)
	t := em.newTemp()
	em.emit(ARR_LOAD, offset, n.Array.Name, t)
	return t
}

var binaryOps = map[token.Type]string{
	token.PLUS:  ADD,
	token.MINUS: SUB,
	token.STAR:  MUL,
	token.SLASH: DIV,
	token.LT:    LT,
	token.LE:    LE,
	token.GT:    GT,
	token.GE:    GE,
	token.EQ:    EQ,
	token.NEQ:   NE,
	token.AND:   AND,
	token.OR:    OR,
}

func (em *Emitter) emitBinary(n *ast.BinaryExpr) string {
	l := em.emitExpr(n.Left)
	r := em.emitExpr(n.Right)
	t := em.newTemp()
	em.emit(binaryOps[n.Op], l, r, t)
	return t
}

func (em *Emitter) emitUnary(n *ast.UnaryExpr) string {
	v := em.emitExpr(n.Operand)
	t := em.newTemp()
	em.emit(NOT, v, unused, t)
	return t
}

// targetType resolves the declared type an l-value assigns into.
func (em *Emitter) targetType(lv ast.LValue) symboltable.Type {
	switch t := lv.(type) {
	case *ast.Identifier:
		if sym, ok := em.table.Lookup(t.Name); ok {
			return sym.Type
		}
	case *ast.IndexExpr:
		if sym, ok := em.table.Lookup(t.Array.Name); ok {
			return symboltable.Scalar(sym.Type.Elem)
		}
	}
	return symboltable.Type{}
}

// widenedOperand renders value for assignment into a target of type
// target, widening a folded Int literal to Float text when the target
// demands it (e.g. "f := 3;" lowers to "ASSIGN 3.0 _ f").
func (em *Emitter) widenedOperand(value ast.Expression, target symboltable.Type) string {
	if fv, ok := value.Folded(); ok {
		if target.Elem == symboltable.Float && fv.Base == symboltable.Int {
			return formatFloat(float64(fv.I))
		}
		return renderValue(fv)
	}
	return em.emitExpr(value)
}

func (em *Emitter) emitAssign(s *ast.AssignStmt) {
	target := em.targetType(s.Target)
	rhs := em.widenedOperand(s.Value, target)

	switch t := s.Target.(type) {
	case *ast.Identifier:
		em.emit(ASSIGN, rhs, unused, t.Name)
	case *ast.IndexExpr:
		idx := em.emitExpr(t.Index)
		offset := em.newTemp()
		em.emit(MUL, idx, elemSize, offset)
		em.emit(ARR_STORE, rhs, offset, t.Array.Name)
	}
}

// emitIf lowers "if (c) then S1 [else S2]" using a standard label
// schema (labels are allocated before the jumps that target them),
// collapsing Lelse into Lend when there is no else branch.
func (em *Emitter) emitIf(s *ast.IfStmt) {
	rc := em.emitExpr(s.Cond)

	if !s.HasElse {
		lend := em.newLabel()
		em.emit(JMPF, rc, unused, lend)
		em.emitBlock(s.Then)
		em.emit(LABEL, unused, unused, lend)
		return
	}

	lelse := em.newLabel()
	lend := em.newLabel()
	em.emit(JMPF, rc, unused, lelse)
	em.emitBlock(s.Then)
	em.emit(JUMP, unused, unused, lend)
	em.emit(LABEL, unused, unused, lelse)
	em.emitBlock(s.Else)
	em.emit(LABEL, unused, unused, lend)
}

func (em *Emitter) emitDoWhile(s *ast.DoWhileStmt) {
	lstart := em.newLabel()
	lend := em.newLabel()
	em.emit(LABEL, unused, unused, lstart)
	em.emitBlock(s.Body)
	rc := em.emitExpr(s.Cond)
	em.emit(JMPF, rc, unused, lend)
	em.emit(JUMP, unused, unused, lstart)
	em.emit(LABEL, unused, unused, lend)
}

// emitFor lowers "for lv from a to b step s S": initialize, compare
// against b with LE/GE chosen by the folded sign of s, run the body,
// advance lv by s, repeat. An unfolded step falls back to a runtime
// OR of both directions' comparisons.
func (em *Emitter) emitFor(s *ast.ForStmt) {
	intType := symboltable.Scalar(symboltable.Int)
	init := em.widenedOperand(s.From, intType)
	em.emit(ASSIGN, init, unused, s.Var)

	lstart := em.newLabel()
	lend := em.newLabel()
	em.emit(LABEL, unused, unused, lstart)

	b := em.emitExpr(s.To)
	cont := em.emitLoopGuard(s.Var, b, s.Step)
	em.emit(JMPF, cont, unused, lend)

	em.emitBlock(s.Body)
	em.emitIncrement(s.Var, s.Step)
	em.emit(JUMP, unused, unused, lstart)
	em.emit(LABEL, unused, unused, lend)
}

// emitLoopGuard computes the "continue looping" boolean for a
// for-step iteration: lv <= b when the step is known positive, lv >=
// b when known negative, or a runtime OR of both when the step isn't
// a compile-time constant.
func (em *Emitter) emitLoopGuard(lv, b string, step ast.Expression) string {
	if fv, ok := step.Folded(); ok {
		t := em.newTemp()
		if fv.AsFloat() > 0 {
			em.emit(LE, lv, b, t)
		} else {
			em.emit(GE, lv, b, t)
		}
		return t
	}

	stepOperand := em.emitExpr(step)
	posCmp := em.newTemp()
	em.emit(LE, lv, b, posCmp)
	negCmp := em.newTemp()
	em.emit(GE, lv, b, negCmp)
	stepPos := em.newTemp()
	em.emit(GT, stepOperand, "0", stepPos)
	notStepPos := em.newTemp()
	em.emit(NOT, stepPos, unused, notStepPos)
	leftTerm := em.newTemp()
	em.emit(AND, stepPos, posCmp, leftTerm)
	rightTerm := em.newTemp()
	em.emit(AND, notStepPos, negCmp, rightTerm)
	cont := em.newTemp()
	em.emit(OR, leftTerm, rightTerm, cont)
	return cont
}

func (em *Emitter) emitIncrement(lv string, step ast.Expression) {
	stepOperand := em.emitExpr(step)
	t := em.newTemp()
	em.emit(ADD, lv, stepOperand, t)
	em.emit(ASSIGN, t, unused, lv)
}

func (em *Emitter) emitInput(s *ast.InputStmt) {
	switch t := s.Target.(type) {
	case *ast.Identifier:
		em.emit(INPUT, unused, unused, t.Name)
	case *ast.IndexExpr:
		idx := em.emitExpr(t.Index)
		offset := em.newTemp()
		em.emit(MUL, idx, elemSize, offset)
		tmp := em.newTemp()
		em.emit(INPUT, unused, unused, tmp)
		em.emit(ARR_STORE, tmp, offset, t.Array.Name)
	}
}

// emitOutput emits one OUTPUT quadruple per argument, in order, so the
// back end can format each by its own type.
func (em *Emitter) emitOutput(s *ast.OutputStmt) {
	for _, arg := range s.Args {
		operand := em.emitExpr(arg)
		em.emit(OUTPUT, operand, unused, unused)
	}
}
