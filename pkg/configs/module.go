package configs

import (
	"github.com/reusee/dscope"

	"tsmini/pkg/compiler"
)

// Module provides the typed sections of the configuration. The Loader
// itself is supplied by the caller:
//
//	dscope.New(new(configs.Module), dscope.Provide(configs.NewLoader(paths, configs.Schema)))
type Module struct {
	dscope.Module
}

func (Module) Emit(loader Loader) Emit {
	return First[Emit](loader, "emit")
}

func (Module) Log(loader Loader) Log {
	return First[Log](loader, "log")
}

func (Module) Dump(loader Loader) Dump {
	return First[Dump](loader, "dump")
}

func (Module) EmitOptions(emit Emit) compiler.EmitOptions {
	return compiler.EmitOptions{
		Indent:    emit.Indent,
		KeepTypes: emit.KeepTypes,
	}
}
