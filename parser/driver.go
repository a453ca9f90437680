package parser

import (
	"github.com/niwohlos/pegi/cst"
	"github.com/niwohlos/pegi/grammar"
	"github.com/niwohlos/pegi/token"
)

// isNestedNameSpecifierKind reports whether kind is one of the three
// nested-name-specifier rule kinds, the only nonterminals whose
// namespace-context pushes are allowed to survive past their own return (see
// matchNonterminal).
func isNestedNameSpecifierKind(kind string) bool {
	return kind == "nested-name-specifier" || kind == "nested-name-specifier-start" || kind == "nested-name-specifier-tail"
}

// matchNonterminal tries each alternative of the named rule in order,
// committing to the first that matches. parent may be nil only for the
// top-level call (translation-unit).
//
// node.Parent is set to parent at allocation time, before any alternative is
// tried, rather than deferred until this call succeeds: a post-match handler
// deep in an unfinished ancestor (e.g. class-specifier-done firing for a
// nested class still inside its enclosing class's member-specification)
// needs a complete, walkable ancestor chain to resolve scope, even though
// none of those ancestors have themselves returned yet. Only the append onto
// parent.Children is deferred to success, so a discarded alternative's node
// never shows up as a real child.
func (c *ParseContext) matchNonterminal(kind string, parent *cst.Node) (*cst.Node, bool) {
	rule, ok := c.table.Rules[kind]
	if !ok {
		return nil, false
	}

	preserveNS := isNestedNameSpecifierKind(kind)
	nsDepth := c.env.NamespaceDepth()

	start := c.mark()
	node := &cst.Node{Kind: cst.Kind(kind), Parent: parent}
	c.starts[node] = start

	for _, alt := range rule.Alternatives {
		c.restore(start)
		node.Children = nil
		c.env.Deregister(node)
		if !preserveNS {
			c.env.TruncateNamespace(nsDepth)
		}

		if c.matchAlternative(alt, node) {
			if alt.Handler != "" && !runAlternativeHandler(alt.Handler, c, node) {
				c.env.Deregister(node)
				continue
			}
			if !preserveNS {
				c.env.TruncateNamespace(nsDepth)
			}
			if parent != nil {
				parent.Children = append(parent.Children, node)
			}
			return node, true
		}
	}

	c.restore(start)
	c.env.Deregister(node)
	if !preserveNS {
		c.env.TruncateNamespace(nsDepth)
	}
	delete(c.starts, node)
	return nil, false
}

// matchAlternative tries every element of alt in order against node,
// restoring nothing itself on failure: the caller (matchNonterminal) owns
// backtracking to the alternative's start position.
func (c *ParseContext) matchAlternative(alt grammar.Alternative, node *cst.Node) bool {
	for _, elem := range alt.Elements {
		if !c.matchElement(elem, node) {
			return false
		}
	}
	return true
}

func (c *ParseContext) matchElement(elem grammar.Element, parent *cst.Node) bool {
	switch {
	case elem.Literal:
		return c.matchLiteralElement(elem, parent)
	case elem.IsTerminal():
		return c.matchTerminalElement(elem, parent)
	case elem.IsTokenKind():
		return c.matchTokenKindElement(elem, parent)
	default:
		return c.matchNonterminalElement(elem, parent)
	}
}

func (c *ParseContext) matchLiteralElement(elem grammar.Element, parent *cst.Node) bool {
	if elem.Optional {
		c.matchLiteral(elem.Kind, parent)
		return true
	}
	return c.matchLiteral(elem.Kind, parent)
}

func (c *ParseContext) matchTerminalElement(elem grammar.Element, parent *cst.Node) bool {
	fn, ok := terminals[elem.Terminal]
	if !ok {
		return false
	}

	if elem.Repeat {
		for fn(c, parent) {
		}
		return true
	}

	matched := fn(c, parent)
	if !matched {
		return elem.Optional
	}
	if elem.Handler != "" {
		child := parent.Children[len(parent.Children)-1]
		if !runElementHandler(elem.Handler, c, parent, child) {
			parent.Children = parent.Children[:len(parent.Children)-1]
			return false
		}
	}
	return true
}

func (c *ParseContext) matchTokenKindElement(elem grammar.Element, parent *cst.Node) bool {
	if elem.Repeat {
		for c.matchTokenKind(elem.TokenKind, parent) {
		}
		return true
	}
	if c.matchTokenKind(elem.TokenKind, parent) {
		return true
	}
	return elem.Optional
}

func (c *ParseContext) matchNonterminalElement(elem grammar.Element, parent *cst.Node) bool {
	if elem.Repeat {
		for {
			child, ok := c.matchNonterminal(elem.Kind, parent)
			if !ok {
				break
			}
			if elem.Intermediate {
				child.Intermediate = true
			}
		}
		return true
	}

	child, ok := c.matchNonterminal(elem.Kind, parent)
	if !ok {
		return elem.Optional
	}
	if elem.Intermediate {
		child.Intermediate = true
	}
	if elem.Handler != "" {
		if !runElementHandler(elem.Handler, c, parent, child) {
			parent.Children = parent.Children[:len(parent.Children)-1]
			return false
		}
	}
	return true
}

// matchLiteral matches spelling directly against the current token,
// appending a single TOKEN child to parent on success. Alphabetic spellings
// (keywords) require an Identifier-kind token whose content equals spelling
// AND current visibility in the keyword table; punctuation spellings require
// an Operator-kind token with an exact content match.
func (c *ParseContext) matchLiteral(spelling string, parent *cst.Node) bool {
	tok, ok := c.peek()
	if !ok {
		return false
	}

	if isAlphabeticSpelling(spelling) {
		if tok.Kind != token.Identifier || tok.Content != spelling {
			return false
		}
		if _, visible := c.env.LookupKeyword(spelling, parent); !visible {
			return false
		}
	} else {
		if tok.Kind != token.Operator || tok.Content != spelling {
			return false
		}
	}

	c.advance()
	cst.NewToken(parent, &c.tokens[c.pos-1])
	return true
}

// matchTokenKind matches any token whose lexical Kind.String() equals
// wantKind, regardless of spelling.
func (c *ParseContext) matchTokenKind(wantKind string, parent *cst.Node) bool {
	tok, ok := c.peek()
	if !ok || tok.Kind.String() != wantKind {
		return false
	}
	c.advance()
	cst.NewToken(parent, &c.tokens[c.pos-1])
	return true
}

func isAlphabeticSpelling(spelling string) bool {
	if spelling == "" {
		return false
	}
	r := rune(spelling[0])
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
