package parser

import (
	"github.com/niwohlos/pegi/cst"
	"github.com/niwohlos/pegi/grammar"
	"github.com/niwohlos/pegi/lexer"
	"github.com/niwohlos/pegi/perrors"
	"github.com/niwohlos/pegi/symtab"
	"github.com/niwohlos/pegi/token"
)

// BuildSyntaxTree is this package's single entry point, the Go realization
// of the source's build_syntax_tree: it drives a fresh ParseContext and
// symtab.Env through one top-level translation-unit match, then runs the
// post-processing passes (cst.FixRightShifts, cst.Contract) spec section 4.7
// describes over the result.
//
// On failure it reports the furthest token position any matcher reached
// (ParseContext.maximumExtent), per spec section 5: the most informative
// single point to blame, since backtracking does not otherwise leave behind
// a notion of "the" failure site.
func BuildSyntaxTree(tokens []token.Token, g grammar.Table) (*cst.Node, *perrors.ParseError) {
	env := symtab.New(lexer.BuiltinKeywords())
	ctx := NewParseContext(tokens, g, env)

	root, ok := ctx.matchNonterminal("translation-unit", nil)
	if !ok {
		return nil, ctx.parseError()
	}
	if !ctx.eof() {
		return nil, ctx.parseError()
	}

	root = cst.FixRightShifts(root)
	root = cst.Contract(root)
	return root, nil
}

func (c *ParseContext) parseError() *perrors.ParseError {
	if len(c.tokens) == 0 {
		return &perrors.ParseError{
			Kind:    perrors.RootDidNotMatch,
			Line:    -1,
			Column:  -1,
			Message: "empty token stream: translation-unit did not match",
		}
	}

	idx := c.maximumExtent
	if idx >= len(c.tokens) {
		idx = len(c.tokens) - 1
	}
	offending := c.tokens[idx]
	return &perrors.ParseError{
		Kind:    perrors.UnmatchedToken,
		Line:    offending.Line,
		Column:  offending.Column,
		Message: "unexpected token " + offending.String(),
	}
}
