package symtab

import "github.com/niwohlos/pegi/cst"

func isScopeKind(k cst.Kind) bool {
	return k == cst.CompoundStatement || k == cst.ClassSpecifier || k == cst.DeclarationSeq
}

// Scope walks n's ancestors for the nearest enclosing compound-statement,
// class-specifier, or declaration-seq, per spec section 4.4. If a
// template-declaration is encountered first, the enclosing scope is the
// scope found by ScopeBelow from that template-declaration instead, so that
// template-parameter names stay visible throughout the template's body.
func Scope(n *cst.Node) *cst.Node {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Kind == cst.TemplateDeclaration {
			return ScopeBelow(cur)
		}
		if isScopeKind(cur.Kind) {
			return cur
		}
	}
	return nil
}

// ScopeAbove is Scope without the template-declaration special case: the
// nearest true ancestor scope node.
func ScopeAbove(n *cst.Node) *cst.Node {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if isScopeKind(cur.Kind) {
			return cur
		}
	}
	return nil
}

// ScopeBelow depth-first searches n's subtree for the first descendant scope
// node (not including n itself).
func ScopeBelow(n *cst.Node) *cst.Node {
	for _, child := range n.Children {
		if isScopeKind(child.Kind) {
			return child
		}
		if found := ScopeBelow(child); found != nil {
			return found
		}
	}
	return nil
}

// Sees reports whether other (a declaration node, or nil for a built-in) is
// visible from parent: nil is always visible; otherwise parent's scope chain
// (via repeated ScopeAbove) must reach other's scope. A template parameter is
// visible anywhere inside its template-declaration, and a templated
// class-specifier belongs to the scope around its template-declaration.
func Sees(parent *cst.Node, other *cst.Node) bool {
	if other == nil {
		return true
	}
	target := Scope(other)
	for cur := other.Parent; cur != nil && !isScopeKind(cur.Kind); cur = cur.Parent {
		if cur.Kind != cst.TemplateDeclaration {
			continue
		}
		if withinSubtree(other, ScopeBelow(cur)) {
			target = ScopeAbove(cur)
		} else if withinSubtree(cur, parent) {
			// The body may still be mid-match and not yet a child of cur.
			return true
		}
		break
	}
	for s := Scope(parent); s != nil; s = ScopeAbove(s) {
		if s == target {
			return true
		}
	}
	return false
}

// SeesInNS is the namespace-qualified variant of Sees used while resolving a
// qualified-id: if ns is non-nil, other must be declared directly in ns
// (other's ScopeAbove must equal ns exactly); otherwise it falls back to
// ordinary Sees.
//
// This mirrors the "FIXME: Oh god does this even work" contract from the
// source; its behavior here is the observed contract, exercised in
// symtab_test.go rather than independently re-derived.
func SeesInNS(parent *cst.Node, other *cst.Node, ns *cst.Node) bool {
	if ns == nil {
		return Sees(parent, other)
	}
	if other == nil {
		return false
	}
	return ScopeAbove(other) == ns
}
