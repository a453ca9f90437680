package parser

import (
	"github.com/niwohlos/pegi/cst"
	"github.com/niwohlos/pegi/symtab"
	"github.com/niwohlos/pegi/token"
)

// alternativeHandlers fires once a rule's alternative has fully matched
// (node already carries all of its matched children). These are the
// post-production attribute actions from spec section 4.5: they mutate the
// symbol environment, they never reject an otherwise-successful match except
// where noted.
var alternativeHandlers = map[string]func(*ParseContext, *cst.Node) bool{
	"simple-declaration-done":            simpleDeclarationDone,
	"class-specifier-done":               classSpecifierDone,
	"template-declaration-done":          templateDeclarationDone,
	"template-parameter-done":            templateParameterDone,
	"original-namespace-definition-done": originalNamespaceDefinitionDone,
	"nested-name-specifier-component-done": nestedNameSpecifierComponentDone,
}

// elementHandlers fires immediately after one element of an alternative
// matches, before the rest of the alternative is tried -- used where a side
// effect must be visible to sibling elements still to come (none currently)
// or where the matched subtree itself may need repair (noptr-declarator-repair).
var elementHandlers = map[string]func(*ParseContext, *cst.Node, *cst.Node) bool{
	"noptr-declarator-repair": noptrDeclaratorRepair,
}

func runAlternativeHandler(name string, c *ParseContext, node *cst.Node) bool {
	fn, ok := alternativeHandlers[name]
	if !ok {
		return true
	}
	return fn(c, node)
}

func runElementHandler(name string, c *ParseContext, parent, matched *cst.Node) bool {
	fn, ok := elementHandlers[name]
	if !ok {
		return true
	}
	return fn(c, parent, matched)
}

// simpleDeclarationDone registers each declared name as a typedef-name (spec
// section 4.5) when the decl-specifier-seq carries a "typedef" specifier.
// Plain variable declarations introduce no semantic-class binding: an
// ordinary identifier is not one of the four context-sensitive classes.
func simpleDeclarationDone(c *ParseContext, node *cst.Node) bool {
	if len(node.Children) == 0 {
		return true
	}
	declSpecSeq := node.Children[0]
	if !containsKeyword(declSpecSeq, "typedef") {
		return true
	}
	for _, declaratorID := range findAll(node, "declarator-id") {
		if len(declaratorID.Children) == 0 {
			continue
		}
		last := declaratorID.Children[len(declaratorID.Children)-1]
		if last.Kind != cst.TokenKind || last.Token == nil {
			continue
		}
		c.env.Register(symtab.Typedef, last.Token.Content, node)
	}
	return true
}

// classSpecifierDone registers the class being defined as a class-name, with
// Declaration pointing at the class-specifier itself: per spec section 4.4,
// a class-specifier is a scope, so this is also the node symtab.ScopeAbove
// and symtab.Scope will return for anything declared inside it.
//
// A class referencing its own name from within its own member-specification
// is not supported here: this handler runs only once the whole
// class-specifier (body included) has matched, grounded on the observation
// that the retrieved original source's sv_class_name is itself an unfilled
// stub and carries no such behavior to reproduce.
func classSpecifierDone(c *ParseContext, node *cst.Node) bool {
	headName := firstDescendantOfKind(node, "class-head-name")
	if headName == nil {
		return true
	}
	tok := lastLeafToken(headName)
	if tok == nil {
		return true
	}
	c.env.Register(symtab.ClassName, tok.Content, node)
	return true
}

// templateDeclarationDone additionally registers a templated class's name as
// a template-name (spec section 4.4's fourth semantic class), reusing the
// inner class-specifier as Declaration so a later simple-template-id
// resolves to the same scope a bare class-name reference would.
func templateDeclarationDone(c *ParseContext, node *cst.Node) bool {
	classSpec := firstDescendantOfKind(node, "class-specifier")
	if classSpec == nil {
		return true
	}
	headName := firstDescendantOfKind(classSpec, "class-head-name")
	if headName == nil {
		return true
	}
	tok := lastLeafToken(headName)
	if tok == nil {
		return true
	}
	c.env.Register(symtab.TemplateName, tok.Content, classSpec)
	return true
}

// templateParameterDone registers a named type-parameter as a typedef-name:
// within the template's body, the parameter name stands for an unknown type
// exactly the way a typedef does.
func templateParameterDone(c *ParseContext, node *cst.Node) bool {
	typeParam := firstDescendantOfKind(node, "type-parameter")
	if typeParam == nil || len(typeParam.Children) < 2 {
		return true
	}
	nameNode := typeParam.Children[1]
	if nameNode.Kind != cst.TokenKind || nameNode.Token == nil {
		return true
	}
	c.env.Register(symtab.Typedef, nameNode.Token.Content, node)
	return true
}

// originalNamespaceDefinitionDone registers the namespace name with
// Declaration pointing at the whole namespace-definition, so that
// nestedNameSpecifierComponentDone can later find the namespace's own body
// scope via symtab.ScopeBelow.
func originalNamespaceDefinitionDone(c *ParseContext, node *cst.Node) bool {
	if len(node.Children) < 2 {
		return true
	}
	nameNode := node.Children[1]
	if nameNode.Kind != cst.TokenKind || nameNode.Token == nil {
		return true
	}
	c.env.Register(symtab.NamespaceName, nameNode.Token.Content, node)
	return true
}

// nestedNameSpecifierComponentDone implements the namespace-context stack
// push half of spec section 4.4: once a nested-name-specifier component
// (original-namespace-name or class-name, each followed by "::") has
// matched, its resolved scope becomes the active namespace context for the
// remainder of the enclosing qualified-id. The matching pop is generic --
// see matchNonterminal's preserveNS handling -- firing when the rule that
// directly references this nested-name-specifier finishes, one way or
// another.
func nestedNameSpecifierComponentDone(c *ParseContext, node *cst.Node) bool {
	if len(node.Children) == 0 {
		return true
	}
	semantic := node.Children[0]

	var ns *cst.Node
	switch semantic.Kind {
	case cst.OriginalNamespaceName:
		ns = symtab.ScopeBelow(semantic.Declaration)
	case cst.ClassName:
		ns = semantic.Declaration
	default:
		return true
	}

	c.env.PushNamespace(ns)
	return true
}

// noptrDeclaratorRepair is the hook spec section 4.8 calls for: when a
// noptr-declarator greedily binds a trailing parameters-and-qualifiers group
// that in fact belongs to an enclosing mandatory one, the match must be
// rewound using ParseContext.starts and re-tried without it.
//
// This subset grammar's noptr-declarator omits the parenthesized
// ptr-declarator alternative that creates that ambiguity in the first place
// (a plain declarator-id followed by an optional trailing group has no
// enclosing group to yield back to), so this hook currently has nothing to
// repair. It stays wired on every noptr-declarator match as the extension
// point for when that alternative is added.
func noptrDeclaratorRepair(c *ParseContext, parent, matched *cst.Node) bool {
	_ = c.starts[matched]
	return true
}

// --- subtree search helpers shared by the handlers above -------------------

func findAll(n *cst.Node, kind string) []*cst.Node {
	var out []*cst.Node
	var walk func(*cst.Node)
	walk = func(cur *cst.Node) {
		if string(cur.Kind) == kind {
			out = append(out, cur)
		}
		for _, child := range cur.Children {
			walk(child)
		}
	}
	walk(n)
	return out
}

func firstDescendantOfKind(n *cst.Node, kind string) *cst.Node {
	for _, child := range n.Children {
		if string(child.Kind) == kind {
			return child
		}
		if found := firstDescendantOfKind(child, kind); found != nil {
			return found
		}
	}
	return nil
}

func containsKeyword(n *cst.Node, spelling string) bool {
	if n.Kind == cst.TokenKind && n.Token != nil && n.Token.Content == spelling {
		return true
	}
	for _, child := range n.Children {
		if containsKeyword(child, spelling) {
			return true
		}
	}
	return false
}

// lastLeafToken returns the rightmost TOKEN descendant of n (n included),
// the convention these handlers use to pick a qualified name's final
// component (e.g. "bar" in "foo::bar") over its qualifying prefix.
func lastLeafToken(n *cst.Node) *token.Token {
	var last *token.Token
	var walk func(*cst.Node)
	walk = func(cur *cst.Node) {
		if cur.Kind == cst.TokenKind && cur.Token != nil {
			last = cur.Token
			return
		}
		for _, child := range cur.Children {
			walk(child)
		}
	}
	walk(n)
	return last
}
