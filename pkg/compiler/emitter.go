package compiler

import (
	"strings"
)

// EmitOptions control the shape of emitted source.
type EmitOptions struct {
	Indent    string // per nesting level inside function bodies; defaults to a tab
	KeepTypes bool   // re-emit ": type" annotations
}

// Emitter renders the AST back to source text. Operators and keywords are
// copied from their lexemes; parentheses are never reinserted.
//
// Indentation is applied per item from the current scope depth, so lexemes
// that span lines (string literals) are never altered.
type Emitter struct {
	opts  EmitOptions
	depth int // open scopes, the program included
}

var _ Visitor[string] = (*Emitter)(nil)

// Emit renders prog with default options.
func Emit(prog *Program) string {
	return EmitWith(prog, EmitOptions{})
}

func EmitWith(prog *Program, opts EmitOptions) string {
	if opts.Indent == "" {
		opts.Indent = "\t"
	}
	return Walk[string](&Emitter{opts: opts}, prog)
}

func (e *Emitter) EnterScope(ScopeOwner) { e.depth++ }
func (e *Emitter) ExitScope(ScopeOwner)  { e.depth-- }

func (e *Emitter) indent() string {
	return strings.Repeat(e.opts.Indent, max(e.depth-1, 0))
}

// StatementList prefixes the first line of every item. Lines after the first
// belong to nested bodies, which were indented when they were listed.
func (e *Emitter) StatementList(items []string) string {
	prefix := e.indent()
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, prefix+item)
	}
	return strings.Join(lines, "\n")
}

func (e *Emitter) FunctionDecl(n *FunctionDecl, params []string, body string) string {
	var sb strings.Builder
	sb.WriteString("function ")
	sb.WriteString(n.Name.Lexeme)
	sb.WriteByte('(')
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteByte(')')
	sb.WriteString(e.annotation(n.ReturnType))
	sb.WriteString(" {\n")
	if body != "" {
		sb.WriteString(body)
		sb.WriteByte('\n')
	}
	sb.WriteString(e.indent())
	sb.WriteByte('}')
	return sb.String()
}

func (e *Emitter) Param(n *Param) string {
	return n.Name.Lexeme + e.annotation(n.Type)
}

func (e *Emitter) ExprStmt(_ *ExprStmt, call string) string {
	return call + ";"
}

func (e *Emitter) ReturnStmt(n *ReturnStmt, value string) string {
	if n.Value == nil {
		return n.Keyword.Lexeme + ";"
	}
	return n.Keyword.Lexeme + " " + value + ";"
}

func (e *Emitter) VarStmt(n *VarStmt, init string) string {
	var sb strings.Builder
	if n.Kind != nil {
		sb.WriteString(n.Kind.Lexeme)
		sb.WriteByte(' ')
	}
	sb.WriteString(n.Name.Lexeme)
	sb.WriteString(e.annotation(n.Type))
	if n.Init != nil {
		sb.WriteString(" = ")
		sb.WriteString(init)
	}
	sb.WriteByte(';')
	return sb.String()
}

func (e *Emitter) CallExpr(n *CallExpr, args []string) string {
	return n.Callee.Lexeme + "(" + strings.Join(args, ", ") + ")"
}

func (e *Emitter) UnaryExpr(n *UnaryExpr, operand string) string {
	return n.Op.Lexeme + operand
}

func (e *Emitter) BinaryExpr(n *BinaryExpr, left, right string) string {
	return left + " " + n.Op.Lexeme + " " + right
}

func (e *Emitter) CondExpr(_ *CondExpr, test, then, els string) string {
	return test + " ? " + then + " : " + els
}

func (e *Emitter) Ident(n *Ident) string {
	return n.Tok.Lexeme
}

func (e *Emitter) Literal(n *Literal) string {
	return n.Tok.Lexeme
}

func (e *Emitter) annotation(tok *Token) string {
	if tok == nil || !e.opts.KeepTypes {
		return ""
	}
	return ": " + tok.Lexeme
}
