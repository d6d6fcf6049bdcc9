package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	ILLEGAL TokenType = iota // zero value: never produced by Lex, also means "no type"

	// Paired delimiters
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }

	// Punctuation
	SEMICOLON // ;
	COMMA     // ,
	ASSIGN    // =
	QUESTION  // ?
	COLON     // :
	DOT       // .

	// Arithmetic operators
	PLUS    // +
	MINUS   // -
	NOT     // !
	STAR    // *
	SLASH   // /
	PERCENT // %

	// Comparison
	LESS         // <
	GREATER      // >
	LESS_EQ      // <=
	GREATER_EQ   // >=
	EQUALS       // ==
	NOT_EQ       // !=
	IDENTITY_EQ  // ===
	IDENTITY_NEQ // !==

	AND_LOGICAL // &&
	OR_LOGICAL  // ||

	// Keywords
	VAR      // "var"
	CONST    // "const"
	LET      // "let"
	RETURN   // "return"
	FUNCTION // "function"
	TRUE     // "true"
	FALSE    // "false"

	// Primitive type names
	STRING_TYPE  // "string"
	NUMBER_TYPE  // "number"
	BOOLEAN_TYPE // "boolean"

	// Open classes
	DECIMAL    // 12, 1.5
	IDENTIFIER // variable / function name
	STRING     // "..." or '...'
)

var tokenNames = [...]string{
	ILLEGAL:      "ILLEGAL",
	LPAREN:       "LPAREN",
	RPAREN:       "RPAREN",
	LBRACE:       "LBRACE",
	RBRACE:       "RBRACE",
	SEMICOLON:    "SEMICOLON",
	COMMA:        "COMMA",
	ASSIGN:       "ASSIGN",
	QUESTION:     "QUESTION",
	COLON:        "COLON",
	DOT:          "DOT",
	PLUS:         "PLUS",
	MINUS:        "MINUS",
	NOT:          "NOT",
	STAR:         "STAR",
	SLASH:        "SLASH",
	PERCENT:      "PERCENT",
	LESS:         "LESS",
	GREATER:      "GREATER",
	LESS_EQ:      "LESS_EQ",
	GREATER_EQ:   "GREATER_EQ",
	EQUALS:       "EQUALS",
	NOT_EQ:       "NOT_EQ",
	IDENTITY_EQ:  "IDENTITY_EQ",
	IDENTITY_NEQ: "IDENTITY_NEQ",
	AND_LOGICAL:  "AND_LOGICAL",
	OR_LOGICAL:   "OR_LOGICAL",
	VAR:          "VAR",
	CONST:        "CONST",
	LET:          "LET",
	RETURN:       "RETURN",
	FUNCTION:     "FUNCTION",
	TRUE:         "TRUE",
	FALSE:        "FALSE",
	STRING_TYPE:  "STRING_TYPE",
	NUMBER_TYPE:  "NUMBER_TYPE",
	BOOLEAN_TYPE: "BOOLEAN_TYPE",
	DECIMAL:      "DECIMAL",
	IDENTIFIER:   "IDENTIFIER",
	STRING:       "STRING",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// TypeName returns the source spelling of a primitive type token.
func (tt TokenType) TypeName() string {
	switch tt {
	case STRING_TYPE:
		return "string"
	case NUMBER_TYPE:
		return "number"
	case BOOLEAN_TYPE:
		return "boolean"
	}
	return "unknown"
}

func (tt TokenType) IsIdentifier() bool { return tt == IDENTIFIER }

func (tt TokenType) IsLiteral() bool {
	return tt == STRING || tt == DECIMAL || tt == TRUE || tt == FALSE
}

func (tt TokenType) IsPrimitiveType() bool {
	return tt == STRING_TYPE || tt == NUMBER_TYPE || tt == BOOLEAN_TYPE
}

func (tt TokenType) IsVariableKind() bool {
	return tt == VAR || tt == LET || tt == CONST
}

func (tt TokenType) IsUnaryOperator() bool { return tt == NOT || tt == MINUS }

func (tt TokenType) IsMultiplicative() bool {
	return tt == STAR || tt == SLASH || tt == PERCENT
}

func (tt TokenType) IsAdditive() bool { return tt == PLUS || tt == MINUS }

func (tt TokenType) IsRelational() bool {
	return tt == LESS || tt == GREATER || tt == LESS_EQ || tt == GREATER_EQ
}

// IsEquality reports == and != together with their identity forms.
// Relational operators belong to the relational tier, not this one.
func (tt TokenType) IsEquality() bool {
	return tt == EQUALS || tt == NOT_EQ || tt == IDENTITY_EQ || tt == IDENTITY_NEQ
}

func (tt TokenType) IsLogicalAnd() bool { return tt == AND_LOGICAL }

func (tt TokenType) IsLogicalOr() bool { return tt == OR_LOGICAL }

// literalType maps a literal token to the primitive type it carries.
func literalType(tt TokenType) TokenType {
	switch tt {
	case STRING:
		return STRING_TYPE
	case DECIMAL:
		return NUMBER_TYPE
	case TRUE, FALSE:
		return BOOLEAN_TYPE
	}
	return ILLEGAL
}

// Position is a 1-based line/column pair.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
	Column int    // 1-based source column, counted in runes
}

// Pos returns the token's source position.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

func (t Token) String() string {
	return fmt.Sprintf("%-12s %-14q  line %d col %d", t.Type, t.Lexeme, t.Line, t.Column)
}
