// Package cst implements the concrete syntax tree produced by package
// parser: the Node type, tree-printing, tree-equality, contraction, and
// right-shift repair.
//
// The node shape and pretty-printer are grounded on
// internal/ictiobus/types/tree.go's ParseTree, extended with the
// Intermediate and Declaration fields a context-sensitive C++-family grammar
// needs and that a plain context-free parse tree (ictiobus's own domain) has
// no use for.
package cst

import (
	"fmt"
	"strings"

	"github.com/niwohlos/pegi/token"
)

// Kind identifies a tree node's grammar symbol. The set of kinds is
// open-ended: it is whatever the loaded grammar.Table defines, unioned with
// the fixed leaf kind Token and the synthetic kinds below -- hence Kind is a
// string rather than a closed Go enum.
type Kind string

const (
	// TokenKind marks a leaf node that references a single token.
	TokenKind Kind = "TOKEN"

	OverloadableOperator  Kind = "OVERLOADABLE_OPERATOR"
	TriviallyBalancedToken Kind = "TRIVIALLY_BALANCED_TOKEN"
	TypedefName            Kind = "TYPEDEF_NAME"
	ClassName               Kind = "CLASS_NAME"
	TemplateName            Kind = "TEMPLATE_NAME"
	OriginalNamespaceName   Kind = "ORIGINAL_NAMESPACE_NAME"
)

// Scope-introducing kinds referenced by package symtab's scope walk.
const (
	CompoundStatement Kind = "compound-statement"
	ClassSpecifier    Kind = "class-specifier"
	DeclarationSeq    Kind = "declaration-seq"
	TemplateDeclaration Kind = "template-declaration"
)

// Node is a single tree node: a parent back-reference, an ordered child
// sequence, and (for TokenKind leaves) the token it references.
type Node struct {
	Kind Kind

	// Token is non-nil only when Kind == TokenKind.
	Token *token.Token

	// Intermediate marks a node inserted purely by grammar structure (e.g.
	// the tail of a left-recursion rewrite); such nodes never survive
	// Contract.
	Intermediate bool

	// Declaration is meaningful only for semantic-class leaves (TypedefName,
	// ClassName, TemplateName, OriginalNamespaceName): it points at the
	// declaration node that introduced the binding.
	Declaration *Node

	Parent   *Node
	Children []*Node
}

// New creates a node of the given kind and, if parent is non-nil, appends it
// to parent's children.
func New(kind Kind, parent *Node) *Node {
	n := &Node{Kind: kind, Parent: parent}
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}
	return n
}

// NewToken creates a TokenKind leaf referencing tok and appends it to parent.
func NewToken(parent *Node, tok *token.Token) *Node {
	n := New(TokenKind, parent)
	n.Token = tok
	return n
}

// Detach removes n from its parent's child list and clears n.Parent. The
// parser's backtracking does not call it: a node whose alternatives all fail
// is never appended to its parent in the first place, and its bindings are
// dropped by symtab.Env.Deregister.
func (n *Node) Detach() {
	if n.Parent == nil {
		return
	}
	siblings := n.Parent.Children
	for i, child := range siblings {
		if child == n {
			n.Parent.Children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.Parent = nil
}

// Leaf reports whether n has no children (true for TokenKind nodes and for
// any nonterminal node that happened to match nothing, which the grammar
// driver never actually produces).
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}

const (
	treeLevelEmpty      = "        "
	treeLevelOngoing    = "  |     "
	treeLevelPrefix     = "  |%s: "
	treeLevelPrefixLast = `  \%s: `
	prefixPadChar       = '-'
	prefixPadAmount     = 3
)

func padPrefix(msg string) string {
	for len([]rune(msg)) < prefixPadAmount {
		msg = string(prefixPadChar) + msg
	}
	return msg
}

// String returns a prettified representation of the whole subtree, suitable
// for line-by-line comparison: two trees are structurally equal iff their
// String() output matches.
func (n *Node) String() string {
	return n.leveledStr("", "")
}

func (n *Node) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder
	sb.WriteString(firstPrefix)
	if n.Kind == TokenKind && n.Token != nil {
		sb.WriteString(fmt.Sprintf("(TOKEN %q)", n.Token.Content))
	} else {
		sb.WriteString(fmt.Sprintf("( %s )", n.Kind))
	}

	for i, child := range n.Children {
		sb.WriteByte('\n')
		var childFirst, childCont string
		if i+1 < len(n.Children) {
			childFirst = contPrefix + fmt.Sprintf(treeLevelPrefix, padPrefix(""))
			childCont = contPrefix + treeLevelOngoing
		} else {
			childFirst = contPrefix + fmt.Sprintf(treeLevelPrefixLast, padPrefix(""))
			childCont = contPrefix + treeLevelEmpty
		}
		sb.WriteString(child.leveledStr(childFirst, childCont))
	}

	return sb.String()
}

// Equal reports whether two subtrees are structurally identical: same Kind
// (or same token content for TokenKind leaves) and recursively equal
// children, in order.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind {
		return false
	}
	if n.Kind == TokenKind {
		if (n.Token == nil) != (o.Token == nil) {
			return false
		}
		if n.Token != nil && n.Token.Content != o.Token.Content {
			return false
		}
	}
	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy of the subtree rooted at n. Declaration
// side-references are rewired to point into the copy when the referenced
// node is itself part of the copied subtree, and left pointing at the
// original otherwise (mirroring the source invariant that a declaration
// reference never points outside the tree it is currently attached to --
// callers that copy a detached subtree are expected to already know whether
// any external declaration references are meaningful for their purpose).
func (n *Node) Copy() *Node {
	m := make(map[*Node]*Node)
	root := n.copyInto(nil, m)
	for orig, copyNode := range m {
		if orig.Declaration != nil {
			if mapped, ok := m[orig.Declaration]; ok {
				copyNode.Declaration = mapped
			} else {
				copyNode.Declaration = orig.Declaration
			}
		}
	}
	return root
}

func (n *Node) copyInto(parent *Node, m map[*Node]*Node) *Node {
	c := &Node{Kind: n.Kind, Token: n.Token, Intermediate: n.Intermediate, Parent: parent}
	m[n] = c
	for _, child := range n.Children {
		c.Children = append(c.Children, child.copyInto(c, m))
	}
	return c
}
