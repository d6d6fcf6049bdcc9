package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SampleSource is the fixed program fed through the pipeline by the
// inspection driver and the desktop demo.
const SampleSource = `function add(a: number, b: number) {
	return a + b;
}
var result = add(-1, 2);
log(result > 0 ? "Positive result " : "Negative result ", result);`

// Result carries every stage's output for one Compile call.
type Result struct {
	Tokens      []Token
	Program     *Program
	Diagnostics []Diagnostic
	Output      string // emitted text, only set when Emitted
	Emitted     bool
}

type config struct {
	logger *slog.Logger
	emit   EmitOptions
}

// Option configures Compile.
type Option func(*config)

// WithLogger makes Compile report each stage at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithEmitOptions(opts EmitOptions) Option {
	return func(c *config) {
		c.emit = opts
	}
}

// Compile runs Lex, Parse and Check over src and emits the program when no
// diagnostics were found. Lexical and syntax errors are returned as errors;
// semantic errors are returned in Result.Diagnostics.
func Compile(src string, opts ...Option) (*Result, error) {
	return CompileContext(context.Background(), src, opts...)
}

// CompileContext is Compile with a context passed to every log record.
func CompileContext(ctx context.Context, src string, opts ...Option) (*Result, error) {
	cfg := config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger

	res := &Result{}

	tokens, err := Lex(src)
	if err != nil {
		logger.DebugContext(ctx, "lex failed", "error", err)
		return res, decorate(src, "lex error", err)
	}
	res.Tokens = tokens
	logger.DebugContext(ctx, "lexed", "tokens", len(tokens))

	prog, err := Parse(tokens)
	if err != nil {
		logger.DebugContext(ctx, "parse failed", "error", err)
		return res, decorate(src, "parse error", err)
	}
	res.Program = prog
	logger.DebugContext(ctx, "parsed", "items", len(prog.Body))

	res.Diagnostics = Check(prog)
	logger.DebugContext(ctx, "checked", "diagnostics", len(res.Diagnostics))
	if len(res.Diagnostics) > 0 {
		return res, nil
	}

	res.Output = EmitWith(prog, cfg.emit)
	res.Emitted = true
	logger.DebugContext(ctx, "emitted", "bytes", len(res.Output))
	return res, nil
}

// decorate wraps err with the source line it points at.
func decorate(src, stage string, err error) error {
	var pos Position
	var lexErr *LexError
	var parseErr *ParseError
	switch {
	case errors.As(err, &lexErr):
		pos = lexErr.Pos
	case errors.As(err, &parseErr):
		pos = parseErr.Pos
	default:
		return fmt.Errorf("%s: %w", stage, err)
	}

	lines := strings.Split(src, "\n")
	snippet := "<source unavailable>"
	if idx := pos.Line - 1; idx >= 0 && idx < len(lines) {
		snippet = strings.TrimSpace(lines[idx])
	}
	return fmt.Errorf("%s: %w\n  |> %s", stage, err, snippet)
}

// Messages joins diagnostics the way the drivers display them.
func Messages(diags []Diagnostic) string {
	msgs := make([]string, 0, len(diags))
	for _, d := range diags {
		msgs = append(msgs, d.Message)
	}
	return strings.Join(msgs, ", ")
}

const errorParsing = "Error parsing"

// Report runs the pipeline and renders the display text shown by the demo:
// the parsed tree, then either the emitted program or the diagnostics.
func Report(src string, opts ...Option) string {
	res, err := Compile(src, opts...)

	parsed := errorParsing
	if res.Program != nil {
		parsed = dumpProgram(res.Program)
	}

	var emitted string
	switch {
	case err != nil:
		emitted = errorParsing + ": " + err.Error()
	case !res.Emitted:
		emitted = Messages(res.Diagnostics)
	default:
		emitted = res.Output
	}

	return "\nParsed:\n\t" + indentLines(parsed, "\t") + "\nEmitted:\n\t" + indentLines(emitted, "\t") + "\n"
}

func dumpProgram(prog *Program) string {
	items := make([]string, 0, len(prog.Body))
	for _, item := range prog.Body {
		items = append(items, item.String())
	}
	return strings.Join(items, "\n")
}

func indentLines(text, indent string) string {
	return strings.ReplaceAll(text, "\n", "\n"+indent)
}
