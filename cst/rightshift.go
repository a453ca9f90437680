package cst

import "github.com/niwohlos/pegi/token"

// rightShiftPairs lists the two-token sequences the lexer always splits (so
// ">>" never survives lexing as a single token, per spec section 4.6) and the
// single joined spelling each pair collapses into once the parser has
// confirmed, by position, that both halves belong to the same operator.
var rightShiftPairs = map[[2]string]string{
	{">", ">"}:  ">>",
	{">", ">="}: ">>=",
}

// AssignmentOperator and ShiftOperator are the only two node kinds whose
// children FixRightShifts ever collapses, per spec section 4.6: the
// right-shift terminal matchers attach lexer-split ">" pairs directly onto
// these parents and nowhere else.
const (
	AssignmentOperator Kind = "assignment-operator"
	ShiftOperator       Kind = "shift-operator"
)

// FixRightShifts walks the tree and, for each assignment-operator or
// shift-operator node whose two TOKEN children are a textually-contiguous
// ">"/">" or ">"/">=" pair, collapses them into a single TOKEN child carrying
// the joined spelling. It is idempotent: a node already carrying a single
// joined token has no such pair of children left to collapse, so running
// FixRightShifts again is a no-op.
func FixRightShifts(n *Node) *Node {
	for _, child := range n.Children {
		FixRightShifts(child)
	}

	if joined, ok := joinedRightShift(n); ok {
		n.Children = []*Node{joined}
		joined.Parent = n
	}

	return n
}

func joinedRightShift(n *Node) (*Node, bool) {
	if n.Kind != AssignmentOperator && n.Kind != ShiftOperator {
		return nil, false
	}
	if len(n.Children) != 2 {
		return nil, false
	}
	first, second := n.Children[0], n.Children[1]
	if first.Kind != TokenKind || second.Kind != TokenKind {
		return nil, false
	}
	if first.Token == nil || second.Token == nil {
		return nil, false
	}

	spelling, ok := rightShiftPairs[[2]string{first.Token.Content, second.Token.Content}]
	if !ok {
		return nil, false
	}
	if !adjacent(first.Token, second.Token) {
		return nil, false
	}

	joinedTok := *first.Token
	joinedTok.Content = spelling
	joinedTok.Value = spelling

	return &Node{Kind: TokenKind, Token: &joinedTok}, true
}

// adjacent reports whether b begins exactly where a's spelling ends on the
// same line, i.e. the two tokens were written with no space between them --
// the condition under which a lexer-split ">" ">" pair is rejoined into ">>"
// (and ">" ">=" into ">>=").
func adjacent(a, b *token.Token) bool {
	if a.Line != b.Line {
		return false
	}
	return a.Column+len([]rune(a.Content)) == b.Column
}
