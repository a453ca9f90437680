// Package cli implements the pegifront command's processing pipeline: read
// source text, lex it, parse it, and print the token stream and concrete
// syntax tree -- or render any lex/parse error -- to the given writers.
//
// It is grounded on cmd/tqi/main.go's shape (flag-driven front end delegating
// to a thin, testable package rather than doing the work in main itself) and
// on internal/tunascript/error.go's convention of rendering errors through a
// shared caret-formatter before they reach the user.
package cli

import (
	"fmt"
	"io"

	"github.com/niwohlos/pegi/grammar"
	"github.com/niwohlos/pegi/lexer"
	"github.com/niwohlos/pegi/parser"
	"github.com/niwohlos/pegi/perrors"
)

// Options controls how Process renders a single unit of source.
type Options struct {
	// TokensOnly skips parsing and the CST dump, printing only the lexed
	// token stream.
	TokensOnly bool
}

// Process lexes and (unless opts.TokensOnly) parses source, printing the
// token stream and CST to out. unit names the source for error messages
// ("a.cpp", "<stdin>", ...). It reports whether processing succeeded; on
// failure the caller should treat it as this run's nonzero-exit condition.
func Process(out, errOut io.Writer, prog, unit, source string, opts Options) bool {
	g := grammar.Builtin()

	toks, lexErr := lexer.Lex(source)
	if lexErr != nil {
		fmt.Fprintln(errOut, perrors.Render(prog, unit, lexErr.Line, lexErr.Column, lexErr.Message, source))
		return false
	}

	fmt.Fprintf(out, "-- tokens: %s --\n", unit)
	for _, tok := range toks {
		fmt.Fprintln(out, tok.String())
	}

	if opts.TokensOnly {
		return true
	}

	tree, parseErr := parser.BuildSyntaxTree(toks, g)
	if parseErr != nil {
		fmt.Fprintln(errOut, perrors.Render(prog, unit, parseErr.Line, parseErr.Column, parseErr.Message, source))
		return false
	}

	fmt.Fprintf(out, "-- syntax tree: %s --\n", unit)
	fmt.Fprintln(out, tree.String())
	return true
}
