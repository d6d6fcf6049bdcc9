package compiler

import "fmt"

// Visitor is one backend over the AST. Walk owns all structural recursion and
// calls exactly one method per node, after the node's children have been
// folded (post-order). Scope owners additionally get EnterScope before any of
// their parameters or body are visited and ExitScope after the last of them.
//
// For optional children (a bare return, a declaration without initializer)
// the folded value is the zero T; implementations inspect the node to tell.
type Visitor[T any] interface {
	EnterScope(owner ScopeOwner)
	ExitScope(owner ScopeOwner)

	StatementList(items []T) T
	FunctionDecl(n *FunctionDecl, params []T, body T) T
	Param(n *Param) T

	ExprStmt(n *ExprStmt, call T) T
	ReturnStmt(n *ReturnStmt, value T) T
	VarStmt(n *VarStmt, init T) T

	CallExpr(n *CallExpr, args []T) T
	UnaryExpr(n *UnaryExpr, operand T) T
	BinaryExpr(n *BinaryExpr, left, right T) T
	CondExpr(n *CondExpr, test, then, els T) T
	Ident(n *Ident) T
	Literal(n *Literal) T
}

// Walk folds prog with v.
func Walk[T any](v Visitor[T], prog *Program) T {
	w := walker[T]{v: v}
	v.EnterScope(prog)
	result := w.items(prog.Body)
	v.ExitScope(prog)
	return result
}

type walker[T any] struct {
	v Visitor[T]
}

func (w walker[T]) items(items []Item) T {
	folded := make([]T, 0, len(items))
	for _, item := range items {
		folded = append(folded, w.item(item))
	}
	return w.v.StatementList(folded)
}

func (w walker[T]) item(item Item) T {
	switch n := item.(type) {
	case *FunctionDecl:
		return w.functionDecl(n)
	case Stmt:
		return w.stmt(n)
	default:
		panic(fmt.Sprintf("walk: unknown item %T", item))
	}
}

func (w walker[T]) functionDecl(n *FunctionDecl) T {
	w.v.EnterScope(n)
	params := make([]T, 0, len(n.Params))
	for _, param := range n.Params {
		params = append(params, w.v.Param(param))
	}
	body := w.items(n.Body)
	w.v.ExitScope(n)
	return w.v.FunctionDecl(n, params, body)
}

func (w walker[T]) stmt(stmt Stmt) T {
	switch n := stmt.(type) {
	case *ExprStmt:
		return w.v.ExprStmt(n, w.expr(n.Call))
	case *ReturnStmt:
		var value T
		if n.Value != nil {
			value = w.expr(n.Value)
		}
		return w.v.ReturnStmt(n, value)
	case *VarStmt:
		var init T
		if n.Init != nil {
			init = w.expr(n.Init)
		}
		return w.v.VarStmt(n, init)
	default:
		panic(fmt.Sprintf("walk: unknown statement %T", stmt))
	}
}

func (w walker[T]) expr(expr Expr) T {
	switch n := expr.(type) {
	case *Ident:
		return w.v.Ident(n)
	case *Literal:
		return w.v.Literal(n)
	case *CallExpr:
		args := make([]T, 0, len(n.Args))
		for _, arg := range n.Args {
			args = append(args, w.expr(arg))
		}
		return w.v.CallExpr(n, args)
	case *UnaryExpr:
		return w.v.UnaryExpr(n, w.expr(n.Operand))
	case *BinaryExpr:
		left := w.expr(n.Left)
		right := w.expr(n.Right)
		return w.v.BinaryExpr(n, left, right)
	case *CondExpr:
		test := w.expr(n.Test)
		then := w.expr(n.Then)
		els := w.expr(n.Else)
		return w.v.CondExpr(n, test, then, els)
	default:
		panic(fmt.Sprintf("walk: unknown expression %T", expr))
	}
}
