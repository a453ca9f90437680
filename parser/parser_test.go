package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niwohlos/pegi/cst"
	"github.com/niwohlos/pegi/grammar"
	"github.com/niwohlos/pegi/lexer"
	"github.com/niwohlos/pegi/symtab"
)

func newTestEnv() *symtab.Env {
	return symtab.New(lexer.BuiltinKeywords())
}

func parse(t *testing.T, source string) *cst.Node {
	t.Helper()
	toks, lexErr := lexer.Lex(source)
	require.Nil(t, lexErr, "lex error: %v", lexErr)
	tree, parseErr := BuildSyntaxTree(toks, grammar.Builtin())
	require.Nil(t, parseErr, "parse error: %v", parseErr)
	require.NotNil(t, tree)
	return tree
}

// findKind returns the first node of the given kind found by a depth-first
// search rooted at n.
func findKind(n *cst.Node, kind cst.Kind) *cst.Node {
	if n.Kind == kind {
		return n
	}
	for _, child := range n.Children {
		if found := findKind(child, kind); found != nil {
			return found
		}
	}
	return nil
}

func findAllKind(n *cst.Node, kind cst.Kind) []*cst.Node {
	var out []*cst.Node
	if n.Kind == kind {
		out = append(out, n)
	}
	for _, child := range n.Children {
		out = append(out, findAllKind(child, kind)...)
	}
	return out
}

// Scenario 1: a float-literal initializer.
func TestScenario_FloatInitializer(t *testing.T) {
	tree := parse(t, `int x = 3.25f;`)

	leaf := findKind(tree, cst.TokenKind)
	require.NotNil(t, leaf)

	var floatLeaf *cst.Node
	for _, n := range findAllKind(tree, cst.TokenKind) {
		if n.Token.Kind.String() == "float-literal" {
			floatLeaf = n
		}
	}
	require.NotNil(t, floatLeaf, "expected a float-literal token in the tree")
	assert.Equal(t, 3.25, floatLeaf.Token.Float.Value)
}

// Scenario 2: d registers as both class-name and template-name; d<int>
// matches as simple-template-id; the >> does not collapse.
func TestScenario_ClassTemplateNameDualRegistration(t *testing.T) {
	tree := parse(t, `template<typename T> class d {}; d<int> m;`)

	simpleTemplateIDs := findAllKind(tree, cst.Kind("simple-template-id"))
	require.Len(t, simpleTemplateIDs, 1)

	templateNames := findAllKind(tree, cst.TemplateName)
	require.Len(t, templateNames, 1)
	assert.Equal(t, "d", templateNames[0].Children[0].Token.Content)

	for _, n := range findAllKind(tree, cst.TokenKind) {
		assert.NotEqual(t, ">>", n.Token.Content, "no >> token should appear for a single-level template-id")
	}
}

// Scenario 3 (adapted to this subset grammar, which has no function-body
// machinery): nested simple-template-ids leave an inner ">>" as two
// textually-contiguous ">" tokens, neither of which gets joined, since
// nested-template-argument-list closes never invoke the right-shift
// terminal.
func TestScenario_NestedTemplateCloseDoesNotJoin(t *testing.T) {
	tree := parse(t, `template<class T> class a{}; template<class T> class b{}; a<b<int>> x;`)

	for _, n := range findAllKind(tree, cst.TokenKind) {
		assert.NotEqual(t, ">>", n.Token.Content)
	}

	var closers []*cst.Node
	for _, n := range findAllKind(tree, cst.TokenKind) {
		if n.Token.Content == ">" {
			closers = append(closers, n)
		}
	}
	assert.GreaterOrEqual(t, len(closers), 2)
}

// Scenario 4: >> and >>= in ordinary expression/assignment context are
// reassembled by the right-shift terminal and then fix_right_shifts.
func TestScenario_RightShiftReassembly(t *testing.T) {
	tree := parse(t, `int x((4 << 2) >> 3); x >>= 1;`)

	var joinedShift, joinedAssign bool
	for _, n := range findAllKind(tree, cst.TokenKind) {
		switch n.Token.Content {
		case ">>":
			joinedShift = true
		case ">>=":
			joinedAssign = true
		}
	}
	assert.True(t, joinedShift, "expected a joined >> token")
	assert.True(t, joinedAssign, "expected a joined >>= token")
}

// Two ">" tokens separated by whitespace are not textually contiguous (spec
// section 4.6), so the right-shift terminal must refuse them -- and nothing
// else in this subset grammar can otherwise consume a lone ">" here, so the
// whole declaration is rejected rather than silently parsed as "a >> b".
func TestScenario_NonContiguousGreaterPairIsRejected(t *testing.T) {
	toks, lexErr := lexer.Lex(`int x = a > > b;`)
	require.Nil(t, lexErr)

	_, parseErr := BuildSyntaxTree(toks, grammar.Builtin())
	require.NotNil(t, parseErr, "expected a non-contiguous '>' '>' pair to fail to parse")
}

func TestRightShiftTerminal_RejectsNonContiguousPair(t *testing.T) {
	toks, lexErr := lexer.Lex(`a > > b`)
	require.Nil(t, lexErr)
	ctx := NewParseContext(toks, grammar.Builtin(), newTestEnv())
	ctx.pos = 1 // position the cursor at the first ">"

	ok := matchRightShiftTerminal(ctx, &cst.Node{Kind: cst.ShiftOperator})
	assert.False(t, ok)
	assert.Equal(t, 1, ctx.pos, "a failed match must not advance the cursor")
}

func TestRightShiftTerminal_AcceptsContiguousPair(t *testing.T) {
	toks, lexErr := lexer.Lex(`a >> b`) // lexer always splits ">>" into two ">" tokens
	require.Nil(t, lexErr)
	ctx := NewParseContext(toks, grammar.Builtin(), newTestEnv())
	ctx.pos = 1

	parent := &cst.Node{Kind: cst.ShiftOperator}
	ok := matchRightShiftTerminal(ctx, parent)
	require.True(t, ok)
	assert.Len(t, parent.Children, 2)
	assert.Equal(t, 3, ctx.pos)
}

// Scenario 5: foo, bar, baz register; the qualified-id foo::bar::baz
// resolves through the namespace body then the class-specifier of bar.
func TestScenario_QualifiedNestedLookup(t *testing.T) {
	tree := parse(t, `namespace foo { class bar { public: class baz {}; }; } foo::bar::baz *x;`)

	namespaceNames := findAllKind(tree, cst.OriginalNamespaceName)
	require.Len(t, namespaceNames, 1)
	assert.Equal(t, "foo", namespaceNames[0].Children[0].Token.Content)

	classNames := findAllKind(tree, cst.ClassName)
	require.Len(t, classNames, 2, "bar (qualifier) and baz (the qualified class-name)")
}

// Scenario 6: a partial specialization's class-head-name accepts a
// simple-template-id, and the nested typedef registers scoped to it (the
// member "type value;" only parses, as a typedef-name use, if it did).
func TestScenario_PartialSpecializationTypedef(t *testing.T) {
	tree := parse(t, `template<bool B, class T = void> struct enable_if {}; template<class T> struct enable_if<true, T> { typedef T type; type value; };`)

	simpleTemplateIDs := findAllKind(tree, cst.Kind("simple-template-id"))
	require.Len(t, simpleTemplateIDs, 1)

	typedefNames := findAllKind(tree, cst.TypedefName)
	var foundType bool
	for _, n := range typedefNames {
		if n.Children[0].Token.Content == "type" {
			foundType = true
		}
	}
	assert.True(t, foundType, "expected 'type' to register as a typedef-name")
}

func TestBuildSyntaxTree_ReportsFurthestFailurePosition(t *testing.T) {
	toks, lexErr := lexer.Lex(`int x = ;`)
	require.Nil(t, lexErr)

	_, parseErr := BuildSyntaxTree(toks, grammar.Builtin())
	require.NotNil(t, parseErr)
	assert.Equal(t, 1, parseErr.Line)
}

func TestBuildSyntaxTree_EmptyTokenStream(t *testing.T) {
	_, parseErr := BuildSyntaxTree(nil, grammar.Builtin())
	require.NotNil(t, parseErr)
	assert.Equal(t, -1, parseErr.Line)
}

func TestTriviallyBalancedTokenTerminal_RejectsBrackets(t *testing.T) {
	toks, lexErr := lexer.Lex(`(`)
	require.Nil(t, lexErr)
	ctx := NewParseContext(toks, grammar.Builtin(), newTestEnv())
	ok := matchTriviallyBalancedTokenTerminal(ctx, &cst.Node{Kind: "balanced-token"})
	assert.False(t, ok)
}

func TestTriviallyBalancedTokenTerminal_AcceptsOrdinaryToken(t *testing.T) {
	toks, lexErr := lexer.Lex(`+`)
	require.Nil(t, lexErr)
	ctx := NewParseContext(toks, grammar.Builtin(), newTestEnv())
	parent := &cst.Node{Kind: "balanced-token"}
	ok := matchTriviallyBalancedTokenTerminal(ctx, parent)
	require.True(t, ok)
	require.Len(t, parent.Children, 1)
	assert.Equal(t, cst.TriviallyBalancedToken, parent.Children[0].Kind)
}

func TestOverloadableOperatorTerminal_NewArray(t *testing.T) {
	toks, lexErr := lexer.Lex(`new[]`)
	require.Nil(t, lexErr)
	ctx := NewParseContext(toks, grammar.Builtin(), newTestEnv())
	parent := &cst.Node{Kind: "operator-function-id"}
	ok := matchOverloadableOperatorTerminal(ctx, parent)
	require.True(t, ok)
	require.Len(t, parent.Children, 1)
	assert.Len(t, parent.Children[0].Children, 3)
}

func TestOverloadableOperatorTerminal_BareParenPair(t *testing.T) {
	toks, lexErr := lexer.Lex(`()`)
	require.Nil(t, lexErr)
	ctx := NewParseContext(toks, grammar.Builtin(), newTestEnv())
	parent := &cst.Node{Kind: "operator-function-id"}
	ok := matchOverloadableOperatorTerminal(ctx, parent)
	require.True(t, ok)
	assert.Len(t, parent.Children[0].Children, 2)
}

func TestOverloadableOperatorTerminal_StaticListMember(t *testing.T) {
	toks, lexErr := lexer.Lex(`+=`)
	require.Nil(t, lexErr)
	ctx := NewParseContext(toks, grammar.Builtin(), newTestEnv())
	parent := &cst.Node{Kind: "operator-function-id"}
	ok := matchOverloadableOperatorTerminal(ctx, parent)
	require.True(t, ok)
	assert.Len(t, parent.Children[0].Children, 1)
}

func TestOverloadableOperatorTerminal_RejectsUnlistedSpelling(t *testing.T) {
	toks, lexErr := lexer.Lex(`::`)
	require.Nil(t, lexErr)
	ctx := NewParseContext(toks, grammar.Builtin(), newTestEnv())
	ok := matchOverloadableOperatorTerminal(ctx, &cst.Node{Kind: "operator-function-id"})
	assert.False(t, ok)
}
