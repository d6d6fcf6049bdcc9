package configs

import (
	"testing"

	"github.com/reusee/dscope"

	"tsmini/pkg/compiler"
)

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/override.cue",
		"testdata/base.cue",
	}, Schema)

	emit := First[Emit](loader, "emit")
	if emit.Indent != "\t" || emit.KeepTypes {
		t.Fatalf("got %+v", emit)
	}

	level := First[string](loader, "log.level")
	if level != "debug" {
		t.Fatalf("got %v", level)
	}

	dump := First[Dump](loader, "dump")
	if !dump.Tokens || dump.AST || !dump.Symbols {
		t.Fatalf("got %+v", dump)
	}

}

func TestFirstMissing(t *testing.T) {
	loader := NewLoader(nil, Schema)
	if emit := First[Emit](loader, "emit"); emit != (Emit{}) {
		t.Fatalf("got %+v", emit)
	}
}

func TestModule(t *testing.T) {
	dscope.New(
		new(Module),
		dscope.Provide(NewLoader([]string{"testdata/base.cue"}, Schema)),
	).Call(func(
		emit Emit,
		log Log,
		dump Dump,
		opts compiler.EmitOptions,
	) {
		if emit.Indent != "  " || !emit.KeepTypes {
			t.Fatalf("got %+v", emit)
		}
		if log.Level != "debug" {
			t.Fatalf("got %+v", log)
		}
		if dump != (Dump{}) {
			t.Fatalf("got %+v", dump)
		}
		if opts != (compiler.EmitOptions{Indent: "  ", KeepTypes: true}) {
			t.Fatalf("got %+v", opts)
		}
	})
}
