// Command tsminic runs the front end over one program and prints what each
// stage produced. Without a file argument it uses the built-in sample.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/reusee/dscope"

	"tsmini/pkg/compiler"
	"tsmini/pkg/configs"
	"tsmini/pkg/logs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs configs.Module
}

func main() {
	configPath := flag.String("config", "", "CUE configuration file")
	flag.Parse()

	src := compiler.SampleSource
	if flag.NArg() > 0 {
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = string(data)
	}

	var configFiles []string
	if *configPath != "" {
		configFiles = append(configFiles, *configPath)
	}
	loader := configs.NewLoader(configFiles, configs.Schema)
	if err := loader.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	dscope.New(
		new(Module),
		dscope.Provide(loader),
	).Fork(
		logs.ConfiguredLevel,
	).Call(func(
		logger logs.Logger,
		dump configs.Dump,
		opts compiler.EmitOptions,
	) {
		if err := inspect(os.Stdout, src, dump, compiler.WithLogger(logger), compiler.WithEmitOptions(opts)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	})
}

// inspect writes the report for src, preceded by the sections dump selects.
func inspect(w io.Writer, src string, dump configs.Dump, opts ...compiler.Option) error {
	res, err := compiler.Compile(src, opts...)

	if dump.Tokens && res.Tokens != nil {
		fmt.Fprintf(w, "Tokens (%d)\n", len(res.Tokens))
		for _, tok := range res.Tokens {
			fmt.Fprintln(w, " ", tok)
		}
		fmt.Fprintln(w)
	}

	if dump.AST && res.Program != nil {
		fmt.Fprintln(w, "AST")
		for _, item := range res.Program.Body {
			fmt.Fprintln(w, " ", item)
		}
		fmt.Fprintln(w)
	}

	if dump.Symbols && res.Program != nil {
		fmt.Fprintln(w, "Symbols")
		fmt.Fprint(w, res.Program.Table())
		for _, item := range res.Program.Body {
			if fn, ok := item.(*compiler.FunctionDecl); ok {
				fmt.Fprintf(w, "Symbols of %s\n", fn.Name.Lexeme)
				fmt.Fprint(w, fn.Table())
			}
		}
		fmt.Fprintln(w)
	}

	for _, d := range res.Diagnostics {
		fmt.Fprintln(w, "diagnostic:", d)
	}

	fmt.Fprint(w, compiler.Report(src, opts...))
	return err
}
