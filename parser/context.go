// Package parser implements the recursive-descent, backtracking CST builder
// described in spec.md section 4: a generic driver interprets a
// grammar.Table, calling out to a handful of hand-coded terminal matchers
// for the grammar's context-sensitive leaves and to post-match handlers that
// mutate the symbol environment.
//
// The driver's "cursor over a mutually recursive set of matchers" shape is
// grounded on internal/tunascript/parser.go's parseExpression/token-class
// dispatch, generalized from Pratt operator-precedence parsing to plain
// backtracking recursive descent over a grammar.Table; handler dispatch is
// grounded on internal/ictiobus/translation/binding.go's post-production
// attribute-binding application (a named hook run immediately after a
// production reduces).
//
// Building the grammar-definition-file generator that would turn a full ISO
// C++ grammar into a concrete list of Go matching procedures is out of
// scope (spec.md section 1); this package instead interprets grammar.Table
// directly.
package parser

import (
	"github.com/niwohlos/pegi/cst"
	"github.com/niwohlos/pegi/grammar"
	"github.com/niwohlos/pegi/symtab"
	"github.com/niwohlos/pegi/token"
)

// ParseContext is the explicit, threaded replacement for the source's
// process-wide maximum_extent cursor and namespace-context stack (spec.md
// section 9's "mutually recursive matchers with global state" design note).
// One ParseContext is created per build_syntax_tree call and discarded at
// its end; nothing about it survives across calls, making re-entrancy and
// test isolation trivial.
type ParseContext struct {
	tokens []token.Token
	pos    int

	// maximumExtent is monotonically non-decreasing across the parse (spec
	// section 5): it records the furthest token position any matcher has
	// reached, win or lose, for error reporting when the whole parse fails.
	maximumExtent int

	env   *symtab.Env
	table grammar.Table

	// starts records, for every node this context has built, the token
	// index it started consuming from. The noptr-declarator repair hook
	// reads it; with the builtin grammar it never rewinds (see
	// noptrDeclaratorRepair).
	starts map[*cst.Node]int
}

// NewParseContext returns a ParseContext ready to parse tokens against
// table, with env freshly seeded (see symtab.New).
func NewParseContext(tokens []token.Token, table grammar.Table, env *symtab.Env) *ParseContext {
	return &ParseContext{
		tokens: tokens,
		table:  table,
		env:    env,
		starts: make(map[*cst.Node]int),
	}
}

func (c *ParseContext) eof() bool {
	return c.pos >= len(c.tokens)
}

func (c *ParseContext) peek() (token.Token, bool) {
	if c.eof() {
		return token.Token{}, false
	}
	return c.tokens[c.pos], true
}

func (c *ParseContext) advance() token.Token {
	t := c.tokens[c.pos]
	c.pos++
	if c.pos > c.maximumExtent {
		c.maximumExtent = c.pos
	}
	return t
}

// mark returns a save point that restore can return the cursor to after a
// failed alternative.
func (c *ParseContext) mark() int {
	return c.pos
}

func (c *ParseContext) restore(pos int) {
	c.pos = pos
}

// rewindTo moves the cursor backward to tokenIndex, yielding back tokens a
// nested match over-consumed. No matcher or handler calls it at present,
// since noptrDeclaratorRepair has nothing to repair. It never moves the cursor forward, since that would
// skip tokens no matcher has actually matched.
func (c *ParseContext) rewindTo(tokenIndex int) {
	if tokenIndex < c.pos {
		c.pos = tokenIndex
	}
}
