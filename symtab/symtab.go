// Package symtab implements the live symbol environment that the parser's
// context-sensitive terminals (identifier-vs-keyword, typedef-name,
// class-name, template-name, original-namespace-name) consult while
// matching, and that declaration handlers mutate after a grammar rule
// completes.
//
// There is no dedicated environment type in the retrieved original source --
// the C++ front end this package replaces keeps its tables as free
// functions over global state (see ParseContext in package parser). The
// table shapes below (one map per semantic class, each entry carrying a
// visibility-relevant declaration node) are grounded directly on the
// identifier-resolution rules of spec section 4.3-4.4.
package symtab

import "github.com/niwohlos/pegi/cst"

// Class identifies which of the four semantic-class tables an entry lives
// in. Keyword entries are a fifth, unexported table that shares the same
// entry shape.
type Class int

const (
	Typedef Class = iota
	ClassName
	TemplateName
	NamespaceName
)

// Entry is one binding: a spelling visible from Declaration's scope onward.
// Declaration is nil for built-in keywords, which are always visible.
type Entry struct {
	Spelling    string
	Declaration *cst.Node
}

// Env is the symbol environment for one build_syntax_tree job. It must be
// cleared at the start and end of a parse (see New), never reused across
// jobs.
type Env struct {
	keywords  map[string][]*Entry
	typedefs  map[string][]*Entry
	classes   map[string][]*Entry
	templates map[string][]*Entry
	namespaces map[string][]*Entry

	// nsStack is the namespace-context stack from spec section 4.4: its top
	// is the active qualifying scope for a nested-name-specifier currently
	// being matched, or nil while no qualified-id is in progress.
	nsStack []*cst.Node
}

// New returns an empty environment seeded with the given built-in keyword
// spellings, each registered with a nil (always-visible) declaration.
func New(builtinKeywords []string) *Env {
	e := &Env{
		keywords:   make(map[string][]*Entry),
		typedefs:   make(map[string][]*Entry),
		classes:    make(map[string][]*Entry),
		templates:  make(map[string][]*Entry),
		namespaces: make(map[string][]*Entry),
	}
	for _, kw := range builtinKeywords {
		e.keywords[kw] = append(e.keywords[kw], &Entry{Spelling: kw, Declaration: nil})
	}
	return e
}

func (e *Env) table(class Class) map[string][]*Entry {
	switch class {
	case Typedef:
		return e.typedefs
	case ClassName:
		return e.classes
	case TemplateName:
		return e.templates
	case NamespaceName:
		return e.namespaces
	default:
		return nil
	}
}

// Register adds a binding of spelling to declaration in the given table.
// declaration is the node whose removal (see Deregister) should invalidate
// the binding, per spec section 4.5.
func (e *Env) Register(class Class, spelling string, declaration *cst.Node) {
	t := e.table(class)
	t[spelling] = append(t[spelling], &Entry{Spelling: spelling, Declaration: declaration})
}

// RegisterKeyword adds a user declaration that shadows (or introduces) a
// keyword spelling within declaration's scope.
func (e *Env) RegisterKeyword(spelling string, declaration *cst.Node) {
	e.keywords[spelling] = append(e.keywords[spelling], &Entry{Spelling: spelling, Declaration: declaration})
}

// Lookup reports whether spelling has an entry in the given table visible
// from parent's scope, optionally namespace-restricted to ns (see SeesInNS).
// It returns the visible entry's declaration (which may be nil for a
// built-in) and true, or false if nothing matches.
func (e *Env) Lookup(class Class, spelling string, parent *cst.Node, ns *cst.Node) (*cst.Node, bool) {
	return e.lookupIn(e.table(class), spelling, parent, ns)
}

// LookupKeyword mirrors Lookup for the keyword table.
func (e *Env) LookupKeyword(spelling string, parent *cst.Node) (*cst.Node, bool) {
	return e.lookupIn(e.keywords, spelling, parent, nil)
}

func (e *Env) lookupIn(table map[string][]*Entry, spelling string, parent *cst.Node, ns *cst.Node) (*cst.Node, bool) {
	entries := table[spelling]
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if ns != nil {
			if SeesInNS(parent, entry.Declaration, ns) {
				return entry.Declaration, true
			}
			continue
		}
		if Sees(parent, entry.Declaration) {
			return entry.Declaration, true
		}
	}
	return nil, false
}

// Deregister removes every entry, in every table, whose Declaration is doomed
// or any node in doomed's subtree. It is the Go realization of the source's
// cascade-destruction discipline (spec section 5): the parser's
// matchNonterminal calls it on its node before each alternative is tried,
// when a handler rejects a match, and when every alternative fails, so that
// speculative bindings never pollute later matches.
func (e *Env) Deregister(doomed *cst.Node) {
	for _, table := range []map[string][]*Entry{e.keywords, e.typedefs, e.classes, e.templates, e.namespaces} {
		for spelling, entries := range table {
			filtered := entries[:0]
			for _, entry := range entries {
				if entry.Declaration != nil && withinSubtree(doomed, entry.Declaration) {
					continue
				}
				filtered = append(filtered, entry)
			}
			if len(filtered) == 0 {
				delete(table, spelling)
			} else {
				table[spelling] = filtered
			}
		}
	}
}

func withinSubtree(root, n *cst.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// PushNamespace pushes ns onto the namespace-context stack, per the
// nested-name-specifier discipline in spec section 4.4.
func (e *Env) PushNamespace(ns *cst.Node) {
	e.nsStack = append(e.nsStack, ns)
}

// PopNamespace pops the namespace-context stack. It panics if the stack is
// empty, since every push must be matched by exactly one pop (spec section
// 5) and an unmatched pop indicates a parser bug, not a recoverable error.
func (e *Env) PopNamespace() {
	if len(e.nsStack) == 0 {
		panic("symtab: PopNamespace on empty namespace-context stack")
	}
	e.nsStack = e.nsStack[:len(e.nsStack)-1]
}

// CurrentNamespace returns the top of the namespace-context stack, or nil if
// no qualified-id is currently being resolved.
func (e *Env) CurrentNamespace() *cst.Node {
	if len(e.nsStack) == 0 {
		return nil
	}
	return e.nsStack[len(e.nsStack)-1]
}

// NamespaceDepth returns the current size of the namespace-context stack, a
// save point for TruncateNamespace.
func (e *Env) NamespaceDepth() int {
	return len(e.nsStack)
}

// TruncateNamespace pops the namespace-context stack back down to depth. It
// is how package parser's generic nonterminal driver enforces "the
// namespace-context stack is push/pop disciplined with exactly one push per
// nested-name-specifier match and exactly one pop per corresponding
// enclosing construct completion" (spec section 5) without every enclosing
// rule needing to count its own pushes: the rule that directly contains a
// nested-name-specifier reference records its entry depth and truncates
// back to it once its own match concludes, one way or another.
func (e *Env) TruncateNamespace(depth int) {
	if depth < len(e.nsStack) {
		e.nsStack = e.nsStack[:depth]
	}
}
