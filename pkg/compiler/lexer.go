package compiler

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type fixedLexeme struct {
	Type TokenType
	Text string
}

// fixedLexemes holds punctuation and keywords. It is sorted longest first in
// init so that "===" wins over "==" and "=".
var fixedLexemes = []fixedLexeme{
	{LPAREN, "("},
	{RPAREN, ")"},
	{LBRACE, "{"},
	{RBRACE, "}"},
	{SEMICOLON, ";"},
	{COMMA, ","},
	{ASSIGN, "="},
	{QUESTION, "?"},
	{COLON, ":"},
	{DOT, "."},
	{PLUS, "+"},
	{MINUS, "-"},
	{NOT, "!"},
	{STAR, "*"},
	{SLASH, "/"},
	{PERCENT, "%"},
	{LESS, "<"},
	{GREATER, ">"},
	{LESS_EQ, "<="},
	{GREATER_EQ, ">="},
	{EQUALS, "=="},
	{NOT_EQ, "!="},
	{IDENTITY_EQ, "==="},
	{IDENTITY_NEQ, "!=="},
	{AND_LOGICAL, "&&"},
	{OR_LOGICAL, "||"},
	{VAR, "var"},
	{CONST, "const"},
	{LET, "let"},
	{RETURN, "return"},
	{FUNCTION, "function"},
	{TRUE, "true"},
	{FALSE, "false"},
	{STRING_TYPE, "string"},
	{NUMBER_TYPE, "number"},
	{BOOLEAN_TYPE, "boolean"},
}

func init() {
	sort.SliceStable(fixedLexemes, func(i, j int) bool {
		return len(fixedLexemes[i].Text) > len(fixedLexemes[j].Text)
	})
}

type patternLexeme struct {
	Type     TokenType
	Patterns []*regexp.Regexp
}

var patternLexemes = []patternLexeme{
	{DECIMAL, []*regexp.Regexp{regexp.MustCompile(`^[0-9]+(\.[0-9]*)?`)}},
	{IDENTIFIER, []*regexp.Regexp{regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`)}},
	{STRING, []*regexp.Regexp{regexp.MustCompile(`^"[^"]*"`), regexp.MustCompile(`^'[^']*'`)}},
}

// LexError reports source text that no lexical rule accepts.
type LexError struct {
	Pos     Position
	Context string // up to ten runes starting at Pos
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d, column %d: unknown token beginning at %q", e.Pos.Line, e.Pos.Column, e.Context)
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  string
	pos  int // byte offset of the next unread character
	line int // current 1-based source line
	col  int // current 1-based source column
}

func newLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func isIdentRune(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// matchFixed returns the longest fixed lexeme at the current position.
// Keywords only match when they are not the prefix of a longer word.
func (l *Lexer) matchFixed() (fixedLexeme, bool) {
	rest := l.src[l.pos:]
	for _, fl := range fixedLexemes {
		if !strings.HasPrefix(rest, fl.Text) {
			continue
		}
		if isIdentRune(fl.Text[0]) && len(rest) > len(fl.Text) && isIdentRune(rest[len(fl.Text)]) {
			continue
		}
		return fl, true
	}
	return fixedLexeme{}, false
}

// matchPattern tries every pattern class; the longest match wins and ties go
// to the first alternative listed.
func (l *Lexer) matchPattern() (TokenType, string, bool) {
	rest := l.src[l.pos:]
	var (
		bestType TokenType
		best     string
		found    bool
	)
	for _, pl := range patternLexemes {
		for _, re := range pl.Patterns {
			m := re.FindString(rest)
			if m == "" {
				continue
			}
			if !found || len(m) > len(best) {
				bestType, best, found = pl.Type, m, true
			}
		}
	}
	return bestType, best, found
}

func (l *Lexer) emit(tt TokenType, text string) Token {
	tok := Token{Type: tt, Lexeme: text, Line: l.line, Column: l.col}
	l.pos += len(text)
	for _, r := range text {
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	return tok
}

func (l *Lexer) errorHere() error {
	ctx := l.src[l.pos:]
	n := 0
	for i := range ctx {
		if n == 10 {
			ctx = ctx[:i]
			break
		}
		n++
	}
	return &LexError{Pos: Position{Line: l.line, Column: l.col}, Context: ctx}
}

// nextToken skips whitespace and returns the next Token. ok is false at end
// of input.
func (l *Lexer) nextToken() (tok Token, ok bool, err error) {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
			l.col++
			continue
		case '\n':
			l.pos++
			l.line++
			l.col = 1
			continue
		}
		break
	}
	if l.pos >= len(l.src) {
		return Token{}, false, nil
	}

	if fl, found := l.matchFixed(); found {
		return l.emit(fl.Type, fl.Text), true, nil
	}
	if tt, text, found := l.matchPattern(); found {
		return l.emit(tt, text), true, nil
	}
	return Token{}, false, l.errorHere()
}

// Lex tokenises src and returns all tokens. There is no trailing EOF token:
// an empty source yields an empty slice. It returns a *LexError on the first
// character sequence that no rule accepts.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	tokens := []Token{}
	for {
		tok, ok, err := l.nextToken()
		if err != nil {
			return tokens, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
