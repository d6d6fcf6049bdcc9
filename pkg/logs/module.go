// Package logs provides the structured logger shared by the command line
// tools. Values are composed with dscope:
//
//	dscope.New(new(logs.Module)).Call(func(logger logs.Logger) { ... })
package logs

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}
