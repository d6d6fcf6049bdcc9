package compiler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func mustLex(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) error = %v", src, err)
	}
	return tokens
}

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(mustLex(t, src))
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return prog
}

// initOf returns the initializer of the single assignment in src.
func initOf(t *testing.T, src string) Expr {
	t.Helper()
	prog := mustParse(t, src)
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 item, got %d", len(prog.Body))
	}
	stmt, ok := prog.Body[0].(*VarStmt)
	if !ok {
		t.Fatalf("expected *VarStmt, got %T", prog.Body[0])
	}
	return stmt.Init
}

func TestParseEmptyProgram(t *testing.T) {
	prog, err := Parse([]Token{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(prog.Body) != 0 {
		t.Errorf("expected empty body, got %v", prog.Body)
	}
	if prog.Symbols == nil || prog.Symbols.Len() != 0 {
		t.Error("expected a fresh empty symbol table")
	}
}

func TestParseSampleProgram(t *testing.T) {
	prog := mustParse(t, SampleSource)
	if len(prog.Body) != 3 {
		t.Fatalf("expected 3 items, got %d", len(prog.Body))
	}

	fn, ok := prog.Body[0].(*FunctionDecl)
	if !ok {
		t.Fatalf("item 0: expected *FunctionDecl, got %T", prog.Body[0])
	}
	if fn.Name.Lexeme != "add" || len(fn.Params) != 2 || len(fn.Body) != 1 {
		t.Errorf("unexpected function %v", fn)
	}
	if _, ok := prog.Body[1].(*VarStmt); !ok {
		t.Errorf("item 1: expected *VarStmt, got %T", prog.Body[1])
	}
	stmt, ok := prog.Body[2].(*ExprStmt)
	if !ok {
		t.Fatalf("item 2: expected *ExprStmt, got %T", prog.Body[2])
	}
	if got := len(stmt.Call.Args); got != 2 {
		t.Errorf("log() should have 2 args, got %d", got)
	}
	if _, ok := stmt.Call.Args[0].(*CondExpr); !ok {
		t.Errorf("first log() arg should be *CondExpr, got %T", stmt.Call.Args[0])
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Var Declaration", "var x;", "VarStmt(var x)"},
		{"Let With Type And Init", "let x: number = 1;", "VarStmt(let x: number = 1)"},
		{"Const String", `const s: string = "hi";`, `VarStmt(const s: string = "hi")`},
		{"Assignment", "x = true;", "VarStmt(x = true)"},
		{"Bare Name", "x;", "VarStmt(x)"},
		{"Call Statement", "log(x);", "ExprStmt(Call(log, args=[x]))"},
		{"Nested Call Args", "f(a, g(b), 1 + 2);", "ExprStmt(Call(f, args=[a Call(g, args=[b]) (1 + 2)]))"},
		{"Trailing Comma", "f(a,);", "ExprStmt(Call(f, args=[a]))"},
		{"Bare Return", "return;", "ReturnStmt()"},
		{"Return Value", "return a;", "ReturnStmt(a)"},
		{
			"Function Declaration",
			"function f(a: number, b): string { return; }",
			"FunctionDecl(f: string, params=[a: number b], body=[ReturnStmt()])",
		},
		{"Empty Function", "function f() {}", "FunctionDecl(f, params=[], body=[])"},
		{
			"Nested Function",
			"function f() { function g() { return 1; } }",
			"FunctionDecl(f, params=[], body=[FunctionDecl(g, params=[], body=[ReturnStmt(1)])])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.input)
			if len(prog.Body) != 1 {
				t.Fatalf("expected 1 item, got %d", len(prog.Body))
			}
			if got := prog.Body[0].String(); got != tt.expected {
				t.Errorf("got %s\nwant %s", got, tt.expected)
			}
		})
	}
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Multiplicative Binds Tighter", "x = 1 + 2 * 3 - 4;", "((1 + (2 * 3)) - 4)"},
		{"Left Associative", "x = a - b - c;", "((a - b) - c)"},
		{"Division Chain", "x = a / b % c;", "((a / b) % c)"},
		{"Tier Ordering", "x = a || b && c == d < e;", "(a || (b && (c == (d < e))))"},
		{"Identity Equality", "x = a === b !== c;", "((a === b) !== c)"},
		{"Parentheses Regroup", "x = (1 + 2) * 3;", "((1 + 2) * 3)"},
		{"Unary Chain", "x = -!a;", "(- (! a))"},
		{"Unary Binds Tighter", "x = -a - -b;", "((- a) - (- b))"},
		{"Conditional", "x = a > 0 ? b : c;", "((a > 0) ? b : c)"},
		{"Conditional Right Associative", "x = a ? b : c ? d : e;", "(a ? b : (c ? d : e))"},
		{"Conditional In Branch", "x = a ? b ? c : d : e;", "(a ? (b ? c : d) : e)"},
		{"Call In Expression", "x = f(1) + 2;", "(Call(f, args=[1]) + 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := initOf(t, tt.input).String(); got != tt.expected {
				t.Errorf("got %s\nwant %s", got, tt.expected)
			}
		})
	}
}

func TestParseTiers(t *testing.T) {
	tests := []struct {
		op   string
		tier Tier
	}{
		{"||", TierLogicalOr},
		{"&&", TierLogicalAnd},
		{"==", TierEquality},
		{"===", TierEquality},
		{"!=", TierEquality},
		{"<=", TierRelational},
		{"+", TierAdditive},
		{"%", TierMultiplicative},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			bin, ok := initOf(t, "x = a "+tt.op+" b;").(*BinaryExpr)
			if !ok {
				t.Fatal("expected *BinaryExpr")
			}
			if bin.Tier != tt.tier {
				t.Errorf("tier: got %v, want %v", bin.Tier, tt.tier)
			}
			if bin.Op.Lexeme != tt.op {
				t.Errorf("op: got %q, want %q", bin.Op.Lexeme, tt.op)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"Missing Initializer", "var x = ;", `line 1, column 9: unexpected ";"`},
		{"Missing Semicolon", "var x = 1", "line 1, column 10: unexpected end of input"},
		{"Expression Statement Must Be Call", "a + b;", `line 1, column 3: unexpected "+"`},
		{"Literal Statement", "1;", `line 1, column 1: unexpected "1"`},
		{"Unclosed Function", "function f() {\n  return;", "line 2, column 10: unexpected end of input"},
		{"Dangling Operator", "x = 1 +;", `line 1, column 8: unexpected ";"`},
		{"Bad Annotation", "var x: y;", `line 1, column 8: unexpected "y"`},
		{"Conditional Without Else", "x = a ? b;", `line 1, column 10: unexpected ";"`},
		{"Call Statement Without Semicolon", "f()\ng();", `line 2, column 1: unexpected "g"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(mustLex(t, tt.input))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if got := err.Error(); got != tt.wantErr {
				t.Errorf("got %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestParseMemoization(t *testing.T) {
	t.Run("Bounded Work", func(t *testing.T) {
		depth := 40
		src := "x = " + strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth) + ";"
		tokens := mustLex(t, src)

		p := NewParser(tokens)
		if _, err := p.ParseProgram(); err != nil {
			t.Fatalf("ParseProgram() error = %v", err)
		}
		rules := int(ruleBinaryTail) + len(precedenceTiers)
		if limit := rules * (len(tokens) + 1); p.evaluated > limit {
			t.Errorf("evaluated %d rule bodies, expected at most %d", p.evaluated, limit)
		}
		if p.memo != nil {
			t.Error("cache should be released after parsing")
		}
	})

	t.Run("Repeatable", func(t *testing.T) {
		p := NewParser(mustLex(t, SampleSource))
		first, err := p.ParseProgram()
		if err != nil {
			t.Fatalf("first parse: %v", err)
		}
		second, err := p.ParseProgram()
		if err != nil {
			t.Fatalf("second parse: %v", err)
		}
		if fmt.Sprint(first.Body) != fmt.Sprint(second.Body) {
			t.Errorf("parses differ:\n%v\n%v", first.Body, second.Body)
		}
	})

	t.Run("Parses Do Not Share State", func(t *testing.T) {
		a := mustParse(t, "var x = 1;")
		b := mustParse(t, "f(y);")
		if got := a.Body[0].String(); got != "VarStmt(var x = 1)" {
			t.Errorf("first program: %s", got)
		}
		if got := b.Body[0].String(); got != "ExprStmt(Call(f, args=[y]))" {
			t.Errorf("second program: %s", got)
		}
	})
}

func TestParseKeepsTokens(t *testing.T) {
	prog := mustParse(t, "let total: number = 1;")
	stmt := prog.Body[0].(*VarStmt)
	want := Token{Type: IDENTIFIER, Lexeme: "total", Line: 1, Column: 5}
	if !reflect.DeepEqual(stmt.Name, want) {
		t.Errorf("name token: got %v, want %v", stmt.Name, want)
	}
	if stmt.Kind == nil || stmt.Kind.Type != LET {
		t.Errorf("kind: got %v", stmt.Kind)
	}
	if stmt.Type == nil || stmt.Type.Type != NUMBER_TYPE {
		t.Errorf("type: got %v", stmt.Type)
	}
}
