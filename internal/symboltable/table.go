package symboltable

import "github.com/minisoft-lang/minisoft/internal/token"

// Table is MiniSoft's single flat scope: a name-to-symbol mapping with
// insertion-ordered iteration, matching the language's lack of nested
// scopes. Symbols are inserted only during the declaration pass; the
// validation pass only sets the Mutated flag on existing symbols, and
// the quadruple emitter only reads from it.
type Table struct {
	symbols map[string]*Symbol
	order   []string
}

// New creates an empty Table.
func New() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

// Declare inserts sym under sym.Name. If the name is already taken it
// returns the prior declaration's span and ok=false; the caller
// (the declaration pass) is responsible for turning that into a
// diagnostic without aborting the rest of declaration processing.
func (t *Table) Declare(sym *Symbol) (priorSpan token.Span, ok bool) {
	if existing, found := t.symbols[sym.Name]; found {
		return existing.DeclSpan, false
	}
	t.symbols[sym.Name] = sym
	t.order = append(t.order, sym.Name)
	return token.Span{}, true
}

// Lookup returns the symbol named name, or ok=false if no such symbol
// was declared.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

// All returns every symbol in declaration order, the order the
// quadruple emitter and any future dump tooling must preserve.
func (t *Table) All() []*Symbol {
	out := make([]*Symbol, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.symbols[name])
	}
	return out
}

// Len reports the number of declared symbols.
func (t *Table) Len() int {
	return len(t.order)
}
