package parser

import (
	"github.com/niwohlos/pegi/cst"
	"github.com/niwohlos/pegi/symtab"
	"github.com/niwohlos/pegi/token"
)

// terminals maps a grammar.Element's Terminal name to the hand-coded matcher
// that implements it. Each matcher peeks the current token (and, for the
// semantic-class matchers, consults the symbol environment), and on success
// appends whatever node(s) it needs directly to parent, advancing the
// cursor; on failure it leaves the cursor and parent untouched.
var terminals = map[string]func(*ParseContext, *cst.Node) bool{
	"identifier":              matchIdentifierTerminal,
	"typedef-name":            matchTypedefNameTerminal,
	"class-name":              matchClassNameTerminal,
	"template-name":           matchTemplateNameTerminal,
	"original-namespace-name": matchOriginalNamespaceNameTerminal,
	"right-shift":             matchRightShiftTerminal,
	"right-shift-assign":      matchRightShiftAssignTerminal,
	"trivially-balanced-token": matchTriviallyBalancedTokenTerminal,
	"overloadable-operator":    matchOverloadableOperatorTerminal,
}

// matchIdentifierTerminal matches a plain identifier: an Identifier-kind
// token that is not currently visible as a keyword (an active keyword
// spelling is matched through a literal grammar.Element instead, per
// package grammar's doc comment on Element.Literal).
func matchIdentifierTerminal(c *ParseContext, parent *cst.Node) bool {
	tok, ok := c.peek()
	if !ok || tok.Kind != token.Identifier {
		return false
	}
	if _, visible := c.env.LookupKeyword(tok.Content, parent); visible {
		return false
	}
	c.advance()
	cst.NewToken(parent, &c.tokens[c.pos-1])
	return true
}

func matchTypedefNameTerminal(c *ParseContext, parent *cst.Node) bool {
	return matchSemanticClass(c, parent, symtab.Typedef, cst.TypedefName)
}

// matchClassNameTerminal falls through to the typedef-name table when no
// class-name is visible, without checking that the typedef names a class.
func matchClassNameTerminal(c *ParseContext, parent *cst.Node) bool {
	if matchSemanticClass(c, parent, symtab.ClassName, cst.ClassName) {
		return true
	}
	return matchSemanticClass(c, parent, symtab.Typedef, cst.ClassName)
}

func matchTemplateNameTerminal(c *ParseContext, parent *cst.Node) bool {
	return matchSemanticClass(c, parent, symtab.TemplateName, cst.TemplateName)
}

func matchOriginalNamespaceNameTerminal(c *ParseContext, parent *cst.Node) bool {
	return matchSemanticClass(c, parent, symtab.NamespaceName, cst.OriginalNamespaceName)
}

// matchSemanticClass is shared by the four context-sensitive identifier
// terminals: an Identifier-kind token is accepted only if its spelling
// already has a visible binding in class's table (namespace-restricted to
// the active nested-name-specifier context, if any). The matched node's
// Declaration is the resolved binding, letting later scope queries find the
// introducing construct directly.
func matchSemanticClass(c *ParseContext, parent *cst.Node, class symtab.Class, kind cst.Kind) bool {
	tok, ok := c.peek()
	if !ok || tok.Kind != token.Identifier {
		return false
	}
	decl, found := c.env.Lookup(class, tok.Content, parent, c.env.CurrentNamespace())
	if !found {
		return false
	}
	c.advance()
	node := cst.New(kind, parent)
	node.Declaration = decl
	cst.NewToken(node, &c.tokens[c.pos-1])
	return true
}

// matchRightShiftTerminal matches two textually-adjacent ">" Operator
// tokens, the lexer-split form of ">>" (spec section 4.6), appending both as
// TOKEN children directly onto parent (a shift-operator node) rather than
// wrapping them -- cst.FixRightShifts rejoins them into a single token after
// the whole parse succeeds.
func matchRightShiftTerminal(c *ParseContext, parent *cst.Node) bool {
	if !c.twoOperatorsAhead(">", ">") {
		return false
	}
	c.advance()
	cst.NewToken(parent, &c.tokens[c.pos-1])
	c.advance()
	cst.NewToken(parent, &c.tokens[c.pos-1])
	return true
}

// matchRightShiftAssignTerminal is matchRightShiftTerminal's ">>="
// counterpart, for assignment-operator.
func matchRightShiftAssignTerminal(c *ParseContext, parent *cst.Node) bool {
	if !c.twoOperatorsAhead(">", ">=") {
		return false
	}
	c.advance()
	cst.NewToken(parent, &c.tokens[c.pos-1])
	c.advance()
	cst.NewToken(parent, &c.tokens[c.pos-1])
	return true
}

// twoOperatorsAhead reports whether the next two tokens are the given
// Operator-kind pair, textually contiguous (spec section 4.6: same line,
// columns differ by exactly the first token's width, i.e. no space between
// them). Adjacency is required here, at the match site, not just at
// cst.FixRightShifts's later collapse: a non-contiguous pair (e.g. "a > > b")
// must fail this terminal so the grammar backtracks and rejects it, rather
// than being accepted as a shift-operator spanning two unrelated ">" tokens.
func (c *ParseContext) twoOperatorsAhead(first, second string) bool {
	if c.pos+1 >= len(c.tokens) {
		return false
	}
	a, b := c.tokens[c.pos], c.tokens[c.pos+1]
	if a.Kind != token.Operator || a.Content != first || b.Kind != token.Operator || b.Content != second {
		return false
	}
	return a.Line == b.Line && a.Column+len([]rune(a.Content)) == b.Column
}

// triviallyBalancedExcluded lists the bracket punctuators
// sv_trivially_balanced_token in the original front end refuses to swallow,
// since a balanced-token-seq must track bracket nesting itself rather than
// letting this terminal consume a stray opener or closer.
var triviallyBalancedExcluded = map[string]bool{
	"(": true, "[": true, "{": true, ")": true, "]": true, "}": true,
}

func matchTriviallyBalancedTokenTerminal(c *ParseContext, parent *cst.Node) bool {
	tok, ok := c.peek()
	if !ok {
		return false
	}
	if tok.Kind == token.Operator && triviallyBalancedExcluded[tok.Content] {
		return false
	}
	c.advance()
	node := cst.New(cst.TriviallyBalancedToken, parent)
	cst.NewToken(node, &c.tokens[c.pos-1])
	return true
}

// overloadableOperatorSpellings is the static operator-function-id spelling
// list from the original front end's overloadable_operators[] table.
var overloadableOperatorSpellings = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "^": true, "&": true,
	"|": true, "~": true, "!": true, "=": true, "<": true, ">": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "^=": true,
	"&=": true, "|=": true, "<<": true, ">>": true, ">>=": true, "<<=": true,
	"==": true, "!=": true, "<=": true, ">=": true, "&&": true, "||": true,
	"++": true, "--": true, ",": true, "->*": true, "->": true,
}

// matchOverloadableOperatorTerminal mirrors sv_overloadable_operator's three
// cases: new/delete immediately followed by "[" "]" (three tokens, one
// node); a bare "(" or "[" only when immediately followed by its matching
// close (two tokens, one node); otherwise membership in the static spelling
// list (one token).
func matchOverloadableOperatorTerminal(c *ParseContext, parent *cst.Node) bool {
	tok, ok := c.peek()
	if !ok || tok.Kind != token.Operator {
		return false
	}

	switch tok.Content {
	case "new", "delete":
		if c.pos+2 >= len(c.tokens) {
			return false
		}
		open, closeTok := c.tokens[c.pos+1], c.tokens[c.pos+2]
		if open.Kind != token.Operator || open.Content != "[" || closeTok.Kind != token.Operator || closeTok.Content != "]" {
			return false
		}
		node := cst.New(cst.OverloadableOperator, parent)
		for i := 0; i < 3; i++ {
			c.advance()
			cst.NewToken(node, &c.tokens[c.pos-1])
		}
		return true

	case "(", "[":
		closing := ")"
		if tok.Content == "[" {
			closing = "]"
		}
		if c.pos+1 >= len(c.tokens) {
			return false
		}
		next := c.tokens[c.pos+1]
		if next.Kind != token.Operator || next.Content != closing {
			return false
		}
		node := cst.New(cst.OverloadableOperator, parent)
		c.advance()
		cst.NewToken(node, &c.tokens[c.pos-1])
		c.advance()
		cst.NewToken(node, &c.tokens[c.pos-1])
		return true

	default:
		if !overloadableOperatorSpellings[tok.Content] {
			return false
		}
		node := cst.New(cst.OverloadableOperator, parent)
		c.advance()
		cst.NewToken(node, &c.tokens[c.pos-1])
		return true
	}
}
