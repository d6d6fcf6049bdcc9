package compiler

import (
	"fmt"
)

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
//
// Grammar:
//
//	program      = item* EOF
//	item         = functionDecl | statement
//	statement    = returnStmt | varStmt | exprStmt
//	functionDecl = "function" IDENTIFIER "(" (param ("," param)*)? ")" typeAnn? "{" item* "}"
//	param        = IDENTIFIER typeAnn?
//	returnStmt   = "return" expression? ";"
//	varStmt      = ("var" | "let" | "const")? IDENTIFIER typeAnn? ("=" expression)? ";"
//	exprStmt     = call ";"
//	typeAnn      = ":" ("string" | "number" | "boolean")
//	expression   = conditional
//	conditional  = logical_or "?" conditional ":" conditional | logical_or
//	logical_or   = logical_and ("||" logical_and)*
//	logical_and  = equality ("&&" equality)*
//	equality     = relational (("==" | "!=" | "===" | "!==") relational)*
//	relational   = additive (("<" | ">" | "<=" | ">=") additive)*
//	additive     = multiplicative (("+" | "-") multiplicative)*
//	multiplicative = unary (("*" | "/" | "%") unary)*
//	unary        = ("!" | "-") unary | primary
//	primary      = call | "(" expression ")" | IDENTIFIER | literal
//	call         = IDENTIFIER "(" (expression ("," expression)*)? ")"
//
// Every production is memoized per input offset for the lifetime of one
// ParseProgram call, so backtracking through matchOneOf stays linear.
// Nesting depth is bounded only by the goroutine stack.
type Parser struct {
	tokens   []Token
	pos      int
	furthest int // furthest offset at which a token match was attempted and failed
	memo     map[memoKey]memoEntry

	evaluated int // rule bodies actually run (cache misses)
}

// ParseError reports that no derivation consumes the whole token list. It
// points at the furthest token the grammar tried and failed to match.
type ParseError struct {
	Pos   Position
	Found string // lexeme at Pos; empty at end of input
	AtEOF bool
}

func (e *ParseError) Error() string {
	if e.AtEOF {
		return fmt.Sprintf("line %d, column %d: unexpected end of input", e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("line %d, column %d: unexpected %q", e.Pos.Line, e.Pos.Column, e.Found)
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds a Program from tokens. It returns a *ParseError when the
// grammar cannot consume every token.
func Parse(tokens []Token) (*Program, error) {
	return NewParser(tokens).ParseProgram()
}

// ParseProgram runs the root production from offset zero with a fresh cache.
func (p *Parser) ParseProgram() (*Program, error) {
	p.pos = 0
	p.furthest = 0
	p.evaluated = 0
	p.memo = make(map[memoKey]memoEntry)
	defer func() {
		p.memo = nil
	}()

	prog, ok := parseProgram(p)
	if !ok {
		return nil, p.failure()
	}
	return prog, nil
}

func (p *Parser) failure() *ParseError {
	if p.furthest < len(p.tokens) {
		tok := p.tokens[p.furthest]
		return &ParseError{Pos: tok.Pos(), Found: tok.Lexeme}
	}
	pos := Position{Line: 1, Column: 1}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		pos = Position{Line: last.Line, Column: last.Column + len([]rune(last.Lexeme))}
	}
	return &ParseError{Pos: pos, AtEOF: true}
}

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.tokens)
}

// match consumes and returns the current token if pred accepts its type.
// On failure nothing is consumed.
func (p *Parser) match(pred func(TokenType) bool) (Token, bool) {
	if p.atEOF() || !pred(p.tokens[p.pos].Type) {
		if p.pos > p.furthest {
			p.furthest = p.pos
		}
		return Token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

// matchToken is match for a single token type.
func (p *Parser) matchToken(tt TokenType) (Token, bool) {
	return p.match(is(tt))
}

func is(tt TokenType) func(TokenType) bool {
	return func(t TokenType) bool { return t == tt }
}

// matchList repeatedly applies item until it fails, returning what matched so
// far. With a separator, another item is only attempted after a separator was
// consumed; a dangling separator stays consumed, which accepts trailing commas.
func matchList[T any](p *Parser, item func(*Parser) (T, bool), sep func(TokenType) bool) []T {
	var items []T
	for {
		v, ok := item(p)
		if !ok {
			return items
		}
		items = append(items, v)
		if sep != nil {
			if _, ok := p.match(sep); !ok {
				return items
			}
		}
	}
}

// matchOneOf tries each alternative from the same offset and returns the
// first success. It is the grammar's only backtracking point.
func matchOneOf[T any](p *Parser, alts ...func(*Parser) (T, bool)) (T, bool) {
	start := p.pos
	for _, alt := range alts {
		if v, ok := alt(p); ok {
			return v, true
		}
		p.pos = start
	}
	var zero T
	return zero, false
}

// widen adapts a rule producing a concrete node to one producing an interface.
func widen[U any, T any](rule func(*Parser) (T, bool)) func(*Parser) (U, bool) {
	return func(p *Parser) (U, bool) {
		v, ok := rule(p)
		if !ok {
			var zero U
			return zero, false
		}
		return any(v).(U), true
	}
}

//  Memoization

type ruleID int

const (
	ruleProgram ruleID = iota
	ruleItem
	ruleStatement
	ruleReturnStmt
	ruleVarStmt
	ruleExprStmt
	ruleFunctionDecl
	ruleParam
	ruleTypeAnnotation
	ruleConditional
	ruleConditionalForm
	ruleUnary
	ruleUnaryForm
	rulePrimary
	ruleCall
	ruleParenthesized
	ruleIdent
	ruleLiteral

	// One id per row of precedenceTiers.
	ruleBinary     ruleID = 64
	ruleBinaryTail ruleID = 96
)

type memoKey struct {
	rule ruleID
	pos  int
}

type memoEntry struct {
	node any
	ok   bool
	end  int
}

// memo runs parse at most once per (rule, offset). A failed rule leaves the
// cursor where it started; a hit restores the cursor the first run left.
func memo[T any](p *Parser, rule ruleID, parse func(*Parser) (T, bool)) (T, bool) {
	key := memoKey{rule: rule, pos: p.pos}
	if e, hit := p.memo[key]; hit {
		p.pos = e.end
		if !e.ok {
			var zero T
			return zero, false
		}
		return e.node.(T), true
	}

	p.evaluated++
	start := p.pos
	v, ok := parse(p)
	if !ok {
		p.pos = start
	}
	p.memo[key] = memoEntry{node: v, ok: ok, end: p.pos}
	return v, ok
}

//  Declarations and statements

func parseProgram(p *Parser) (*Program, bool) {
	return memo(p, ruleProgram, func(p *Parser) (*Program, bool) {
		body := matchList(p, parseItem, nil)
		if !p.atEOF() {
			return nil, false
		}
		return NewProgram(body), true
	})
}

func parseItem(p *Parser) (Item, bool) {
	return memo(p, ruleItem, func(p *Parser) (Item, bool) {
		return matchOneOf(p,
			widen[Item](parseFunctionDecl),
			widen[Item](parseStatement),
		)
	})
}

func parseStatement(p *Parser) (Stmt, bool) {
	return memo(p, ruleStatement, func(p *Parser) (Stmt, bool) {
		return matchOneOf(p,
			widen[Stmt](parseReturnStmt),
			widen[Stmt](parseVarStmt),
			widen[Stmt](parseExprStmt),
		)
	})
}

func parseTypeAnnotation(p *Parser) (Token, bool) {
	return memo(p, ruleTypeAnnotation, func(p *Parser) (Token, bool) {
		if _, ok := p.matchToken(COLON); !ok {
			return Token{}, false
		}
		return p.match(TokenType.IsPrimitiveType)
	})
}

// optionalType returns the annotation at the cursor, or nil.
func optionalType(p *Parser) *Token {
	if tok, ok := parseTypeAnnotation(p); ok {
		return &tok
	}
	return nil
}

func parseReturnStmt(p *Parser) (*ReturnStmt, bool) {
	return memo(p, ruleReturnStmt, func(p *Parser) (*ReturnStmt, bool) {
		kw, ok := p.matchToken(RETURN)
		if !ok {
			return nil, false
		}
		value, _ := parseExpression(p)
		if _, ok := p.matchToken(SEMICOLON); !ok {
			return nil, false
		}
		return &ReturnStmt{Keyword: kw, Value: value}, true
	})
}

func parseVarStmt(p *Parser) (*VarStmt, bool) {
	return memo(p, ruleVarStmt, func(p *Parser) (*VarStmt, bool) {
		stmt := &VarStmt{}
		if kind, ok := p.match(TokenType.IsVariableKind); ok {
			stmt.Kind = &kind
		}
		name, ok := p.match(TokenType.IsIdentifier)
		if !ok {
			return nil, false
		}
		stmt.Name = name
		stmt.Type = optionalType(p)
		if _, ok := p.matchToken(ASSIGN); ok {
			init, ok := parseExpression(p)
			if !ok {
				return nil, false
			}
			stmt.Init = init
		}
		if _, ok := p.matchToken(SEMICOLON); !ok {
			return nil, false
		}
		return stmt, true
	})
}

func parseExprStmt(p *Parser) (*ExprStmt, bool) {
	return memo(p, ruleExprStmt, func(p *Parser) (*ExprStmt, bool) {
		call, ok := parseCall(p)
		if !ok {
			return nil, false
		}
		if _, ok := p.matchToken(SEMICOLON); !ok {
			return nil, false
		}
		return &ExprStmt{Call: call}, true
	})
}

func parseFunctionDecl(p *Parser) (*FunctionDecl, bool) {
	return memo(p, ruleFunctionDecl, func(p *Parser) (*FunctionDecl, bool) {
		if _, ok := p.matchToken(FUNCTION); !ok {
			return nil, false
		}
		name, ok := p.match(TokenType.IsIdentifier)
		if !ok {
			return nil, false
		}
		if _, ok := p.matchToken(LPAREN); !ok {
			return nil, false
		}
		params := matchList(p, parseParam, is(COMMA))
		if _, ok := p.matchToken(RPAREN); !ok {
			return nil, false
		}
		ret := optionalType(p)
		if _, ok := p.matchToken(LBRACE); !ok {
			return nil, false
		}
		body := matchList(p, parseItem, nil)
		if _, ok := p.matchToken(RBRACE); !ok {
			return nil, false
		}
		return &FunctionDecl{
			Name:       name,
			Params:     params,
			ReturnType: ret,
			Body:       body,
			Symbols:    NewSymbolTable(),
		}, true
	})
}

func parseParam(p *Parser) (*Param, bool) {
	return memo(p, ruleParam, func(p *Parser) (*Param, bool) {
		name, ok := p.match(TokenType.IsIdentifier)
		if !ok {
			return nil, false
		}
		return &Param{Name: name, Type: optionalType(p)}, true
	})
}

//  Expressions

// precedenceTiers lists the binary operator tiers from loosest to tightest.
// Each row is folded left-associatively over the row below it.
var precedenceTiers = []struct {
	tier       Tier
	isOperator func(TokenType) bool
}{
	{TierLogicalOr, TokenType.IsLogicalOr},
	{TierLogicalAnd, TokenType.IsLogicalAnd},
	{TierEquality, TokenType.IsEquality},
	{TierRelational, TokenType.IsRelational},
	{TierAdditive, TokenType.IsAdditive},
	{TierMultiplicative, TokenType.IsMultiplicative},
}

func parseExpression(p *Parser) (Expr, bool) {
	return parseConditional(p)
}

func parseConditional(p *Parser) (Expr, bool) {
	return memo(p, ruleConditional, func(p *Parser) (Expr, bool) {
		return matchOneOf(p,
			widen[Expr](parseConditionalForm),
			func(p *Parser) (Expr, bool) { return parseBinary(p, 0) },
		)
	})
}

func parseConditionalForm(p *Parser) (*CondExpr, bool) {
	return memo(p, ruleConditionalForm, func(p *Parser) (*CondExpr, bool) {
		test, ok := parseBinary(p, 0)
		if !ok {
			return nil, false
		}
		if _, ok := p.matchToken(QUESTION); !ok {
			return nil, false
		}
		then, ok := parseConditional(p)
		if !ok {
			return nil, false
		}
		if _, ok := p.matchToken(COLON); !ok {
			return nil, false
		}
		els, ok := parseConditional(p)
		if !ok {
			return nil, false
		}
		return &CondExpr{Test: test, Then: then, Else: els}, true
	})
}

type binaryTail struct {
	op    Token
	right Expr
}

// parseBinary parses the tier at index level of precedenceTiers.
func parseBinary(p *Parser, level int) (Expr, bool) {
	if level == len(precedenceTiers) {
		return parseUnary(p)
	}
	return memo(p, ruleBinary+ruleID(level), func(p *Parser) (Expr, bool) {
		left, ok := parseBinary(p, level+1)
		if !ok {
			return nil, false
		}
		tails := matchList(p, func(p *Parser) (binaryTail, bool) {
			return parseBinaryTail(p, level)
		}, nil)
		for _, t := range tails {
			left = &BinaryExpr{Tier: precedenceTiers[level].tier, Op: t.op, Left: left, Right: t.right}
		}
		return left, true
	})
}

// parseBinaryTail matches one "operator operand" pair of a tier. A missing
// operand rejects the operator too.
func parseBinaryTail(p *Parser, level int) (binaryTail, bool) {
	return memo(p, ruleBinaryTail+ruleID(level), func(p *Parser) (binaryTail, bool) {
		op, ok := p.match(precedenceTiers[level].isOperator)
		if !ok {
			return binaryTail{}, false
		}
		right, ok := parseBinary(p, level+1)
		if !ok {
			return binaryTail{}, false
		}
		return binaryTail{op: op, right: right}, true
	})
}

func parseUnary(p *Parser) (Expr, bool) {
	return memo(p, ruleUnary, func(p *Parser) (Expr, bool) {
		return matchOneOf(p,
			widen[Expr](parseUnaryForm),
			parsePrimary,
		)
	})
}

func parseUnaryForm(p *Parser) (*UnaryExpr, bool) {
	return memo(p, ruleUnaryForm, func(p *Parser) (*UnaryExpr, bool) {
		op, ok := p.match(TokenType.IsUnaryOperator)
		if !ok {
			return nil, false
		}
		operand, ok := parseUnary(p)
		if !ok {
			return nil, false
		}
		return &UnaryExpr{Op: op, Operand: operand}, true
	})
}

func parsePrimary(p *Parser) (Expr, bool) {
	return memo(p, rulePrimary, func(p *Parser) (Expr, bool) {
		return matchOneOf(p,
			widen[Expr](parseCall),
			parseParenthesized,
			widen[Expr](parseIdent),
			widen[Expr](parseLiteral),
		)
	})
}

func parseCall(p *Parser) (*CallExpr, bool) {
	return memo(p, ruleCall, func(p *Parser) (*CallExpr, bool) {
		callee, ok := p.match(TokenType.IsIdentifier)
		if !ok {
			return nil, false
		}
		if _, ok := p.matchToken(LPAREN); !ok {
			return nil, false
		}
		args := matchList(p, parseExpression, is(COMMA))
		if _, ok := p.matchToken(RPAREN); !ok {
			return nil, false
		}
		return &CallExpr{Callee: callee, Args: args}, true
	})
}

// parseParenthesized returns the inner expression; parentheses leave no node.
func parseParenthesized(p *Parser) (Expr, bool) {
	return memo(p, ruleParenthesized, func(p *Parser) (Expr, bool) {
		if _, ok := p.matchToken(LPAREN); !ok {
			return nil, false
		}
		inner, ok := parseExpression(p)
		if !ok {
			return nil, false
		}
		if _, ok := p.matchToken(RPAREN); !ok {
			return nil, false
		}
		return inner, true
	})
}

func parseIdent(p *Parser) (*Ident, bool) {
	return memo(p, ruleIdent, func(p *Parser) (*Ident, bool) {
		tok, ok := p.match(TokenType.IsIdentifier)
		if !ok {
			return nil, false
		}
		return &Ident{Tok: tok}, true
	})
}

func parseLiteral(p *Parser) (*Literal, bool) {
	return memo(p, ruleLiteral, func(p *Parser) (*Literal, bool) {
		tok, ok := p.match(TokenType.IsLiteral)
		if !ok {
			return nil, false
		}
		return &Literal{Tok: tok}, true
	})
}
