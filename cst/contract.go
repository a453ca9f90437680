package cst

// Contract performs the post-order walk described in spec section 4.7: for
// each child, recurse first, then splice the child's own children into its
// place if the child is Intermediate or shares its parent's Kind (a
// recursive-rule loop node). The walk continues past the spliced-in
// grandchildren, so multiple layers of intermediate/recursive nodes collapse
// in one pass.
//
// After Contract, no node in the subtree carries Intermediate == true, and
// no non-leaf node has the same Kind as its direct parent.
func Contract(n *Node) *Node {
	contractChildren(n)
	return n
}

func contractChildren(n *Node) {
	var result []*Node
	for _, child := range n.Children {
		contractChildren(child)
		result = append(result, flattenCollapsible(n, child)...)
	}
	n.Children = result
}

// flattenCollapsible returns the list of nodes that should appear directly
// under parent in place of child, cascading through chains of collapsible
// nodes (e.g. an intermediate node whose only child is itself a same-kind
// recursive-loop node) so a single Contract pass fully flattens them.
func flattenCollapsible(parent, child *Node) []*Node {
	if !shouldCollapse(parent, child) {
		child.Parent = parent
		return []*Node{child}
	}
	var out []*Node
	for _, grandchild := range child.Children {
		out = append(out, flattenCollapsible(parent, grandchild)...)
	}
	return out
}

func shouldCollapse(parent, child *Node) bool {
	if child.Kind == TokenKind {
		return false
	}
	if child.Intermediate {
		return true
	}
	return child.Kind == parent.Kind
}
