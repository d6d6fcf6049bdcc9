package compiler

import (
	"strings"
	"testing"
)

// complexSource is a larger program exercising every tier, nested
// functions, conditionals and shadowing.
const complexSource = `
const limit: number = 100;
let label: string = "total";

function clamp(value: number, low: number, high: number): number {
	var below = value < low;
	var above = value > high;
	return below ? low : above ? high : value;
}

function score(a: number, b: number, c: number) {
	function weight(n: number) {
		return n * 2 + n % 3 - -n / 4;
	}
	var ok: boolean = true;
	ok = a >= 0 && b >= 0 || c === 0;
	return ok ? weight(a) + weight(b) * weight(c) : -1;
}

var total = clamp(score(1, 2, 3), 0, limit);
log(label, total != 0 ? "non-zero" : 'zero', !(total == limit));
`

// deepSource nests parentheses so that any exponential backtracking in the
// parser would show up immediately.
var deepSource = "x = " + strings.Repeat("(", 200) + "1 + 2" + strings.Repeat(")", 200) + ";"

//  Lex benchmarks

func BenchmarkLex_Simple(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Lex(SampleSource)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLex_Complex(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := Lex(complexSource)
		if err != nil {
			b.Fatal(err)
		}
	}
}

//  Parse benchmarks
// Tokens are pre-computed outside the timed region.

func benchmarkParse(b *testing.B, src string) {
	tokens, err := Lex(src)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := Parse(tokens)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse_Simple(b *testing.B)  { benchmarkParse(b, SampleSource) }
func BenchmarkParse_Complex(b *testing.B) { benchmarkParse(b, complexSource) }
func BenchmarkParse_Deep(b *testing.B)    { benchmarkParse(b, deepSource) }

//  Check and Emit benchmarks
// The AST is pre-computed outside the timed region.

func BenchmarkCheck_Complex(b *testing.B) {
	tokens, err := Lex(complexSource)
	if err != nil {
		b.Fatal(err)
	}
	prog, err := Parse(tokens)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if diags := Check(prog); len(diags) != 0 {
			b.Fatal(diags)
		}
	}
}

func BenchmarkEmit_Complex(b *testing.B) {
	tokens, err := Lex(complexSource)
	if err != nil {
		b.Fatal(err)
	}
	prog, err := Parse(tokens)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Emit(prog)
	}
}

//  Full pipeline benchmarks

func BenchmarkCompilerPipeline_Simple(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Compile(SampleSource); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompilerPipeline_Complex(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		res, err := Compile(complexSource)
		if err != nil {
			b.Fatal(err)
		}
		if !res.Emitted {
			b.Fatal(res.Diagnostics)
		}
	}
}
