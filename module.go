package main

import (
	"github.com/reusee/dscope"

	"tsmini/pkg/configs"
	"tsmini/pkg/logs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs configs.Module
}
