package compiler

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAlreadyDeclared = errors.New("symbol already declared")
	ErrScopeUnderflow  = errors.New("cannot pop from an empty scope stack")
	ErrNoScope         = errors.New("no symbol tables on stack")
)

// Symbol is one named declaration.
type Symbol struct {
	Name Token     // the declaring identifier
	Kind TokenType // VAR, LET or CONST
	Type TokenType // STRING_TYPE, NUMBER_TYPE, BOOLEAN_TYPE, or ILLEGAL when unannotated
}

// HasType reports whether the symbol carries a declared primitive type.
func (s Symbol) HasType() bool {
	return s.Type != ILLEGAL
}

// SymbolTable maps names to the symbols declared in one lexical region.
type SymbolTable struct {
	symbols map[string]Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

// Add inserts sym. It fails if the name is already present in this table.
func (t *SymbolTable) Add(sym Symbol) error {
	name := sym.Name.Lexeme
	if _, ok := t.symbols[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyDeclared, name)
	}
	t.symbols[name] = sym
	return nil
}

// Get returns the symbol and whether it was found.
func (t *SymbolTable) Get(name string) (Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

func (t *SymbolTable) Len() int {
	return len(t.symbols)
}

// Reset drops every symbol.
func (t *SymbolTable) Reset() {
	clear(t.symbols)
}

// String returns a deterministically ordered dump of the table.
func (t *SymbolTable) String() string {
	if len(t.symbols) == 0 {
		return "(empty)\n"
	}
	names := make([]string, 0, len(t.symbols))
	for name := range t.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		sym := t.symbols[name]
		typ := "-"
		if sym.HasType() {
			typ = sym.Type.TypeName()
		}
		fmt.Fprintf(&sb, "  %-20s  %-6s %-8s (line %d)\n", name, strings.ToLower(sym.Kind.String()), typ, sym.Name.Line)
	}
	return sb.String()
}

// Scope is a stack of symbol tables. Lookups walk from the innermost table
// outwards; declarations always go to the innermost one.
type Scope struct {
	tables []*SymbolTable
}

func NewScope() *Scope {
	return &Scope{}
}

func (s *Scope) Push(t *SymbolTable) {
	s.tables = append(s.tables, t)
}

func (s *Scope) Pop() (*SymbolTable, error) {
	if len(s.tables) == 0 {
		return nil, ErrScopeUnderflow
	}
	top := s.tables[len(s.tables)-1]
	s.tables = s.tables[:len(s.tables)-1]
	return top, nil
}

func (s *Scope) Depth() int {
	return len(s.tables)
}

// Lookup returns the innermost symbol named name.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if sym, ok := s.tables[i].Get(name); ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// DeclaredInCurrent only inspects the innermost table.
func (s *Scope) DeclaredInCurrent(name string) bool {
	if len(s.tables) == 0 {
		return false
	}
	_, ok := s.tables[len(s.tables)-1].Get(name)
	return ok
}

func (s *Scope) AddToCurrent(sym Symbol) error {
	if len(s.tables) == 0 {
		return ErrNoScope
	}
	return s.tables[len(s.tables)-1].Add(sym)
}
