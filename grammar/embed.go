package grammar

import (
	_ "embed"
	"strings"
)

//go:embed builtin.toml
var builtinTOML string

// Builtin returns the grammar table embedded at build time. It is a genuine
// subset of the full ISO grammar, not a complete implementation --
// producing the complete grammar table is the out-of-scope generator's job
// (spec.md section 1). It has no function bodies, no expression statements
// (a declaration-seq holds declarations only), and no parenthesized
// initializer (only "= assignment-expression" and braces), so an input such
// as "int x((4 << 2) >> 3); x >>= 1;" does not parse.
//
// Builtin panics if the embedded TOML fails to parse; that would indicate a
// build-time data error in this package, not a runtime condition callers
// should need to handle.
func Builtin() Table {
	t, err := LoadTOML(strings.NewReader(builtinTOML))
	if err != nil {
		panic("grammar: embedded builtin.toml failed to load: " + err.Error())
	}
	if err := t.Validate(); err != nil {
		panic("grammar: embedded builtin.toml failed validation: " + err.Error())
	}
	return t
}
