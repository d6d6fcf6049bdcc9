package configs

// Schema is the closed CUE schema every configuration file is checked
// against. Unknown keys are rejected at any level.
const Schema = `
emit?: close({
	indent?:    string
	keepTypes?: bool
})
log?: close({
	level?: "debug" | "info" | "warn" | "error"
})
dump?: close({
	tokens?:  bool
	ast?:     bool
	symbols?: bool
})
`

// Emit mirrors the emit section.
type Emit struct {
	Indent    string `json:"indent"`
	KeepTypes bool   `json:"keepTypes"`
}

type Log struct {
	Level string `json:"level"`
}

// Dump selects the extra sections the inspection driver prints.
type Dump struct {
	Tokens  bool `json:"tokens"`
	AST     bool `json:"ast"`
	Symbols bool `json:"symbols"`
}
