//go:build !js

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/reusee/dscope"

	"tsmini/pkg/compiler"
	"tsmini/pkg/configs"
	"tsmini/pkg/logs"
	"tsmini/pkg/utils"
)

// configName is looked up next to the input file when -config is not given.
const configName = "tsmini.cue"

var errDiagnostics = errors.New("semantic errors")

func main() {
	inPath := flag.String("in", "", "input source file path")
	outPath := flag.String("out", "", "output file path (default: input with .js extension)")
	configPath := flag.String("config", "", "CUE configuration file (default: "+configName+" next to the input, if present)")
	checkOnly := flag.Bool("check", false, "report diagnostics without writing output")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in <file>")
		flag.Usage()
		os.Exit(2)
	}

	fullPath, dir, err := utils.GetPathInfo(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid input path %q: %v\n", *inPath, err)
		os.Exit(1)
	}

	var configFiles []string
	if *configPath != "" {
		configFiles = append(configFiles, *configPath)
	} else if p, ok := utils.FindConfig(dir, fileExists, configName); ok {
		configFiles = append(configFiles, p)
	}
	loader := configs.NewLoader(configFiles, configs.Schema)
	if err := loader.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	scope := dscope.New(
		new(Module),
		dscope.Provide(loader),
	).Fork(
		logs.ConfiguredLevel,
	)

	output := *outPath
	if output == "" {
		output = utils.WithExt(*inPath, ".js")
	}
	if *checkOnly {
		output = ""
	}

	var n int
	scope.Call(func(
		logger logs.Logger,
		opts compiler.EmitOptions,
	) {
		ctx := logs.WithFile(context.Background(), fullPath)
		n, err = compileFile(ctx, logger, opts, *inPath, output)
	})

	switch {
	case errors.Is(err, errDiagnostics):
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "compilation failed: %v\n", err)
		os.Exit(1)
	case output != "":
		fmt.Printf("emitted %d bytes -> %s\n", n, output)
	}
}

// compileFile compiles inPath and writes the emitted program to outPath
// unless outPath is empty. Diagnostics are printed to stderr prefixed with
// the input path.
func compileFile(ctx context.Context, logger logs.Logger, opts compiler.EmitOptions, inPath, outPath string) (int, error) {
	source, err := os.ReadFile(inPath)
	if err != nil {
		return 0, err
	}

	res, err := compiler.CompileContext(ctx, string(source),
		compiler.WithLogger(logger),
		compiler.WithEmitOptions(opts),
	)
	if err != nil {
		return 0, logs.WrapFile(ctx, err)
	}
	if len(res.Diagnostics) > 0 {
		for _, d := range res.Diagnostics {
			fmt.Fprintf(os.Stderr, "%s:%s\n", inPath, d)
		}
		logger.WarnContext(ctx, "not emitted", "diagnostics", len(res.Diagnostics))
		return 0, errDiagnostics
	}
	if outPath == "" {
		logger.InfoContext(ctx, "check passed")
		return 0, nil
	}

	text := res.Output
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := writeOutput(outPath, text); err != nil {
		return 0, err
	}
	return len(text), nil
}

func writeOutput(path string, text string) error {
	return os.WriteFile(path, []byte(text), 0o644)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
