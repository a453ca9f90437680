package cst

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niwohlos/pegi/token"
)

func tok(content string, line, col int) *token.Token {
	return &token.Token{Kind: token.Operator, Content: content, Line: line, Column: col}
}

func TestContract_CollapsesIntermediateAndSameKindChains(t *testing.T) {
	assert := assert.New(t)

	root := &Node{Kind: "declaration-seq"}
	mid := New("declaration-seq", root)
	mid.Intermediate = true
	inner := New("declaration-seq", mid)
	leaf := NewToken(inner, tok("x", 1, 1))

	Contract(root)

	assert.Len(root.Children, 1)
	assert.Same(leaf, root.Children[0])
	assert.Same(root, leaf.Parent)
}

func TestContract_LeavesNonCollapsibleChildrenAlone(t *testing.T) {
	assert := assert.New(t)

	root := &Node{Kind: "simple-declaration"}
	a := New("decl-specifier-seq", root)
	b := New("init-declarator-list", root)

	Contract(root)

	assert.Len(root.Children, 2)
	assert.Same(a, root.Children[0])
	assert.Same(b, root.Children[1])
}

func TestContract_IsIdempotent(t *testing.T) {
	assert := assert.New(t)

	root := &Node{Kind: "declaration-seq"}
	mid := New("declaration-seq", root)
	mid.Intermediate = true
	NewToken(mid, tok("x", 1, 1))
	New("decl-specifier-seq", root)

	Contract(root)
	first := root.String()
	Contract(root)
	assert.Equal(first, root.String())
}

func TestFixRightShifts_JoinsContiguousGreaterPair(t *testing.T) {
	assert := assert.New(t)

	parent := &Node{Kind: ShiftOperator}
	NewToken(parent, tok(">", 1, 10))
	NewToken(parent, tok(">", 1, 11))

	FixRightShifts(parent)

	if !assert.Len(parent.Children, 1) {
		return
	}
	assert.Equal(">>", parent.Children[0].Token.Content)
	assert.Equal(">>", parent.Children[0].Token.Value)
}

func TestFixRightShifts_JoinsGreaterAndGreaterEquals(t *testing.T) {
	assert := assert.New(t)

	parent := &Node{Kind: AssignmentOperator}
	NewToken(parent, tok(">", 2, 5))
	NewToken(parent, tok(">=", 2, 6))

	FixRightShifts(parent)

	if !assert.Len(parent.Children, 1) {
		return
	}
	assert.Equal(">>=", parent.Children[0].Token.Content)
}

func TestFixRightShifts_LeavesNonContiguousPairSplit(t *testing.T) {
	assert := assert.New(t)

	parent := &Node{Kind: ShiftOperator}
	NewToken(parent, tok(">", 1, 10))
	NewToken(parent, tok(">", 1, 20)) // not adjacent -- separated by whitespace

	FixRightShifts(parent)

	assert.Len(parent.Children, 2)
}

func TestFixRightShifts_IgnoresOtherNodeKinds(t *testing.T) {
	assert := assert.New(t)

	parent := &Node{Kind: "template-argument-list"}
	NewToken(parent, tok(">", 1, 10))
	NewToken(parent, tok(">", 1, 11))

	FixRightShifts(parent)

	assert.Len(parent.Children, 2)
}

func TestFixRightShifts_IsIdempotent(t *testing.T) {
	assert := assert.New(t)

	parent := &Node{Kind: ShiftOperator}
	NewToken(parent, tok(">", 1, 10))
	NewToken(parent, tok(">", 1, 11))

	FixRightShifts(parent)
	first := parent.String()
	FixRightShifts(parent)
	assert.Equal(first, parent.String())
}

func TestNode_EqualAndCopy(t *testing.T) {
	assert := assert.New(t)

	root := &Node{Kind: "simple-declaration"}
	NewToken(root, tok("int", 1, 1))
	decl := New("decl-specifier-seq", root)
	semClass := New(TypedefName, decl)
	semClass.Declaration = root

	cp := root.Copy()
	assert.True(root.Equal(cp))
	assert.NotSame(root, cp)

	cpSemClass := cp.Children[1].Children[0]
	assert.Same(cp, cpSemClass.Declaration)
}

func TestNode_Detach(t *testing.T) {
	assert := assert.New(t)

	root := &Node{Kind: "declaration-seq"}
	child := New("simple-declaration", root)

	child.Detach()

	assert.Len(root.Children, 0)
	assert.Nil(child.Parent)
}
