package compiler

import (
	"fmt"
)

// Diagnostic is a non-fatal semantic error.
type Diagnostic struct {
	Message string
	Pos     Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

func diagnosticAt(tok Token, format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf(format, args...), Pos: tok.Pos()}
}

// Checker resolves names against a stack of scopes and checks primitive type
// assignability. One Checker serves one Check call.
type Checker struct {
	scope *Scope
}

var _ Visitor[[]Diagnostic] = (*Checker)(nil)

// Check returns every semantic error in prog, in source order of discovery.
// It populates the symbol tables owned by prog and its functions; tables are
// cleared on entry, so checking the same program again gives the same result.
// A Program must not be checked from two goroutines at once.
func Check(prog *Program) []Diagnostic {
	c := &Checker{scope: NewScope()}
	diags := Walk[[]Diagnostic](c, prog)
	if c.scope.Depth() != 0 {
		panic(fmt.Sprintf("checker: %d scopes left open", c.scope.Depth()))
	}
	return diags
}

func (c *Checker) EnterScope(owner ScopeOwner) {
	table := owner.Table()
	table.Reset()
	c.scope.Push(table)
}

func (c *Checker) ExitScope(ScopeOwner) {
	if _, err := c.scope.Pop(); err != nil {
		panic("checker: " + err.Error())
	}
}

func (c *Checker) StatementList(items [][]Diagnostic) []Diagnostic {
	return concat(items...)
}

func (c *Checker) FunctionDecl(_ *FunctionDecl, params [][]Diagnostic, body []Diagnostic) []Diagnostic {
	return append(concat(params...), body...)
}

// Param declares a var-kind symbol in the function's own table.
func (c *Checker) Param(n *Param) []Diagnostic {
	sym := Symbol{Name: n.Name, Kind: VAR, Type: annotationType(n.Type)}
	if c.scope.DeclaredInCurrent(n.Name.Lexeme) {
		return []Diagnostic{alreadyDeclared(n.Name)}
	}
	if err := c.scope.AddToCurrent(sym); err != nil {
		panic("checker: " + err.Error())
	}
	return nil
}

func (c *Checker) ExprStmt(_ *ExprStmt, call []Diagnostic) []Diagnostic {
	return call
}

func (c *Checker) ReturnStmt(_ *ReturnStmt, value []Diagnostic) []Diagnostic {
	return value
}

func (c *Checker) VarStmt(n *VarStmt, init []Diagnostic) []Diagnostic {
	name := n.Name.Lexeme

	sym, diag, ok := c.resolveTarget(n)
	if !ok {
		return append([]Diagnostic{diag}, init...)
	}

	diags := init
	if n.Kind == nil && n.Init != nil && sym.Kind == CONST {
		diags = append(diags, diagnosticAt(n.Name, "Cannot reassign to const variable '%s'", name))
	}
	if n.Init != nil && sym.HasType() {
		if initType := c.typeOf(n.Init); initType != ILLEGAL && initType != sym.Type {
			diags = append(diags, diagnosticAt(n.Name,
				"Cannot assign expression of type %s to variable of type %s for variable '%s'",
				initType.TypeName(), sym.Type.TypeName(), name))
		}
	}
	return diags
}

// resolveTarget declares the statement's variable when it carries a kind
// keyword and looks it up otherwise.
func (c *Checker) resolveTarget(n *VarStmt) (Symbol, Diagnostic, bool) {
	name := n.Name.Lexeme
	if n.Kind != nil {
		if c.scope.DeclaredInCurrent(name) {
			return Symbol{}, alreadyDeclared(n.Name), false
		}
		sym := Symbol{Name: n.Name, Kind: n.Kind.Type, Type: annotationType(n.Type)}
		if err := c.scope.AddToCurrent(sym); err != nil {
			panic("checker: " + err.Error())
		}
		return sym, Diagnostic{}, true
	}

	if sym, ok := c.scope.Lookup(name); ok {
		return sym, Diagnostic{}, true
	}
	if n.Init != nil {
		return Symbol{}, diagnosticAt(n.Name, "Must provide a variable kind on first declaration for '%s'", name), false
	}
	return Symbol{}, notFound(n.Name), false
}

// typeOf infers the primitive type of literals and annotated identifiers.
// Composite expressions are left unknown (ILLEGAL) and never checked.
func (c *Checker) typeOf(expr Expr) TokenType {
	switch e := expr.(type) {
	case *Literal:
		return literalType(e.Tok.Type)
	case *Ident:
		if sym, ok := c.scope.Lookup(e.Name()); ok {
			return sym.Type
		}
	}
	return ILLEGAL
}

// Callees are not resolved: there is no declaration form for builtins.
func (c *Checker) CallExpr(_ *CallExpr, args [][]Diagnostic) []Diagnostic {
	return concat(args...)
}

func (c *Checker) UnaryExpr(_ *UnaryExpr, operand []Diagnostic) []Diagnostic {
	return operand
}

func (c *Checker) BinaryExpr(_ *BinaryExpr, left, right []Diagnostic) []Diagnostic {
	return concat(left, right)
}

func (c *Checker) CondExpr(_ *CondExpr, test, then, els []Diagnostic) []Diagnostic {
	return concat(test, then, els)
}

func (c *Checker) Ident(n *Ident) []Diagnostic {
	if _, ok := c.scope.Lookup(n.Name()); !ok {
		return []Diagnostic{notFound(n.Tok)}
	}
	return nil
}

func (c *Checker) Literal(*Literal) []Diagnostic {
	return nil
}

func alreadyDeclared(tok Token) Diagnostic {
	return diagnosticAt(tok, "Symbol '%s' already declared in scope", tok.Lexeme)
}

func notFound(tok Token) Diagnostic {
	return diagnosticAt(tok, "Symbol '%s' not found", tok.Lexeme)
}

func annotationType(tok *Token) TokenType {
	if tok == nil {
		return ILLEGAL
	}
	return tok.Type
}

func concat(lists ...[]Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
