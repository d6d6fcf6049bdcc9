// Package compiler is the front end for a small statically checked scripting
// language: a TypeScript subset with var/let/const, functions, calls, and
// string/number/boolean annotations.
//
// Pipeline: source → Lex → Parse → Check → Emit → normalized source text
//
// Check and Emit are two independent backends over the same Walk traversal.
// Every stage is a plain function and can be called on its own.
package compiler
