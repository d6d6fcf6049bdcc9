package compiler

import (
	"fmt"
	"strings"
)

//  Expression nodes

// Expr is implemented by every node that produces a value. The set is closed:
// Ident, Literal, CallExpr, UnaryExpr, BinaryExpr and CondExpr.
type Expr interface {
	exprNode()
	Pos() Position
	String() string
}

// Ident is a read of a named variable.
//
//	return x;
//	       ^  Ident{Tok: x}
type Ident struct {
	Tok Token
}

func (*Ident) exprNode()        {}
func (i *Ident) Pos() Position  { return i.Tok.Pos() }
func (i *Ident) String() string { return i.Tok.Lexeme }
func (i *Ident) Name() string   { return i.Tok.Lexeme }

// Literal is a string, decimal or boolean constant, kept as its source text.
type Literal struct {
	Tok Token
}

func (*Literal) exprNode()        {}
func (l *Literal) Pos() Position  { return l.Tok.Pos() }
func (l *Literal) String() string { return l.Tok.Lexeme }

// CallExpr represents callee(args).
type CallExpr struct {
	Callee Token
	Args   []Expr
}

func (*CallExpr) exprNode()       {}
func (c *CallExpr) Pos() Position { return c.Callee.Pos() }
func (c *CallExpr) String() string {
	return fmt.Sprintf("Call(%s, args=%v)", c.Callee.Lexeme, c.Args)
}

// UnaryExpr represents Op Operand (e.g. -x, !ok).
type UnaryExpr struct {
	Op      Token
	Operand Expr
}

func (*UnaryExpr) exprNode()        {}
func (u *UnaryExpr) Pos() Position  { return u.Op.Pos() }
func (u *UnaryExpr) String() string { return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Operand) }

// Tier names one row of the binary precedence table, loosest first.
type Tier int

const (
	TierLogicalOr Tier = iota
	TierLogicalAnd
	TierEquality
	TierRelational
	TierAdditive
	TierMultiplicative
)

var tierNames = [...]string{
	TierLogicalOr:      "LogicalOr",
	TierLogicalAnd:     "LogicalAnd",
	TierEquality:       "Equality",
	TierRelational:     "Relational",
	TierAdditive:       "Additive",
	TierMultiplicative: "Multiplicative",
}

func (t Tier) String() string {
	if int(t) >= 0 && int(t) < len(tierNames) {
		return tierNames[t]
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// BinaryExpr represents Left Op Right on one precedence tier.
//
//	x + 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
type BinaryExpr struct {
	Tier  Tier
	Op    Token
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode()       {}
func (b *BinaryExpr) Pos() Position { return b.Left.Pos() }
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op.Lexeme, b.Right)
}

// CondExpr represents Test ? Then : Else.
type CondExpr struct {
	Test Expr
	Then Expr
	Else Expr
}

func (*CondExpr) exprNode()       {}
func (c *CondExpr) Pos() Position { return c.Test.Pos() }
func (c *CondExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", c.Test, c.Then, c.Else)
}

//  Statement nodes

// Item is a top-level or function-body entry: a FunctionDecl or a Stmt.
type Item interface {
	itemNode()
	String() string
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Item
	stmtNode()
}

// ExprStmt is a call evaluated for its side effects. Only calls are accepted
// at statement position.
type ExprStmt struct {
	Call *CallExpr
}

func (*ExprStmt) itemNode() {}
func (*ExprStmt) stmtNode() {}
func (e *ExprStmt) String() string {
	return fmt.Sprintf("ExprStmt(%s)", e.Call)
}

// ReturnStmt represents return [expr];
type ReturnStmt struct {
	Keyword Token
	Value   Expr // nil for a bare return
}

func (*ReturnStmt) itemNode() {}
func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "ReturnStmt()"
	}
	return fmt.Sprintf("ReturnStmt(%s)", r.Value)
}

// VarStmt covers declarations and plain assignments:
//
//	let x: number = 1;
//	x = 2;
//
// Kind is nil when no var/let/const keyword was written; the checker decides
// whether that is legal.
type VarStmt struct {
	Kind *Token
	Name Token
	Type *Token // primitive type annotation, nil when absent
	Init Expr   // nil when absent
}

func (*VarStmt) itemNode() {}
func (*VarStmt) stmtNode() {}
func (v *VarStmt) String() string {
	var sb strings.Builder
	sb.WriteString("VarStmt(")
	if v.Kind != nil {
		sb.WriteString(v.Kind.Lexeme)
		sb.WriteByte(' ')
	}
	sb.WriteString(v.Name.Lexeme)
	if v.Type != nil {
		sb.WriteString(": ")
		sb.WriteString(v.Type.Lexeme)
	}
	if v.Init != nil {
		sb.WriteString(" = ")
		sb.WriteString(v.Init.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Param is one entry of a function's parameter list.
type Param struct {
	Name Token
	Type *Token // nil when unannotated
}

func (p *Param) String() string {
	if p.Type == nil {
		return p.Name.Lexeme
	}
	return p.Name.Lexeme + ": " + p.Type.Lexeme
}

// ScopeOwner is implemented by the nodes that own a symbol table.
type ScopeOwner interface {
	Table() *SymbolTable
}

// FunctionDecl represents function name(params) [: type] { body }
type FunctionDecl struct {
	Name       Token
	Params     []*Param
	ReturnType *Token // nil when unannotated
	Body       []Item
	Symbols    *SymbolTable
}

func (*FunctionDecl) itemNode() {}

// Table returns the function's symbol table, creating it on first use.
func (f *FunctionDecl) Table() *SymbolTable {
	if f.Symbols == nil {
		f.Symbols = NewSymbolTable()
	}
	return f.Symbols
}

func (f *FunctionDecl) String() string {
	ret := ""
	if f.ReturnType != nil {
		ret = ": " + f.ReturnType.Lexeme
	}
	return fmt.Sprintf("FunctionDecl(%s%s, params=%v, body=%v)", f.Name.Lexeme, ret, f.Params, f.Body)
}

// Program is the root of the tree.
type Program struct {
	Body    []Item
	Symbols *SymbolTable
}

// NewProgram builds a Program with an empty root symbol table.
func NewProgram(body []Item) *Program {
	return &Program{Body: body, Symbols: NewSymbolTable()}
}

// Table returns the root symbol table, creating it on first use.
func (p *Program) Table() *SymbolTable {
	if p.Symbols == nil {
		p.Symbols = NewSymbolTable()
	}
	return p.Symbols
}

func (p *Program) String() string {
	return fmt.Sprintf("Program(len=%d)", len(p.Body))
}
