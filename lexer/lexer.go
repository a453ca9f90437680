// Package lexer converts C++-family source text into an ordered token
// stream, per spec section 4.1: skipping, longest-prefix operator matching,
// identifier/keyword-shaped literals, and numeric/string/char literal
// evaluation.
//
// The overall shape -- a position-tracking cursor dispatching to small,
// table-driven scan rules -- is grounded on internal/tunascript/lexer.go's
// mode-based rule table; the numeric-literal and escape-decoding algorithms
// are grounded on original_source/src/tokenize.cpp, extended with the
// promotion-table and float-evaluation rules this front end adds.
package lexer

import (
	"strings"
	"unicode"

	"github.com/niwohlos/pegi/perrors"
	"github.com/niwohlos/pegi/token"
)

// builtinKeywords seeds the parser's keyword table (see package symtab). It
// intentionally omits "new", "delete", "true", "false", "nullptr", and
// "this": the first two lex as Operator tokens (see operators.go), the next
// three as their own literal kinds, and "this" is -- per the original
// source's own comment -- treated as an ordinary identifier.
var builtinKeywords = []string{
	"alignas", "alignof", "asm", "auto", "bool", "break", "case", "catch",
	"char", "class", "const", "constexpr",
	"const_cast", "continue", "decltype", "default", "do", "double",
	"dynamic_cast", "else", "enum", "explicit", "export", "extern", "float",
	"for", "friend", "goto", "if", "inline", "int", "long", "mutable",
	"namespace", "noexcept",
	"operator", "private", "protected", "public", "register",
	"reinterpret_cast", "return", "short", "signed", "sizeof", "static",
	"static_assert", "static_cast", "struct", "switch", "template",
	"thread_local", "throw", "try", "typedef", "typeid", "typename", "union",
	"unsigned", "using", "virtual", "void", "volatile", "while",
}

// BuiltinKeywords returns the seed keyword list (see symtab.New).
func BuiltinKeywords() []string {
	out := make([]string, len(builtinKeywords))
	copy(out, builtinKeywords)
	return out
}

type cursor struct {
	src  string
	pos  int
	line int
	col  int
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

func (c *cursor) at(offset int) byte {
	i := c.pos + offset
	if i < 0 || i >= len(c.src) {
		return 0
	}
	return c.src[i]
}

func (c *cursor) advance() byte {
	ch := c.src[c.pos]
	c.pos++
	if ch == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return ch
}

func isNonDigit(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentChar(c byte) bool {
	return isNonDigit(c) || isDigit(c)
}

// Lex converts source into an ordered token stream.
func Lex(source string) ([]token.Token, *perrors.LexError) {
	c := &cursor{src: source, line: 1, col: 1}
	interner := token.NewInterner()
	var tokens []token.Token

	for {
		if lexErr := skipTrivia(c); lexErr != nil {
			return nil, lexErr
		}
		if c.eof() {
			break
		}

		startLine, startCol := c.line, c.col

		if lexeme, ok := matchOperator(c.src, c.pos); ok {
			for i := 0; i < len(lexeme); i++ {
				c.advance()
			}
			tokens = append(tokens, token.Token{
				Kind: token.Operator, Content: lexeme, Value: lexeme,
				Line: startLine, Column: startCol,
			})
			continue
		}

		ch := c.at(0)
		switch {
		case isNonDigit(ch):
			tokens = append(tokens, scanIdentifierLike(c, interner, startLine, startCol))
		case isDigit(ch) || (ch == '.' && isDigit(c.at(1))):
			tok, lexErr := scanNumber(c, startLine, startCol)
			if lexErr != nil {
				return nil, lexErr
			}
			tokens = append(tokens, tok)
		case ch == '"':
			tok, lexErr := scanString(c, startLine, startCol)
			if lexErr != nil {
				return nil, lexErr
			}
			tokens = append(tokens, tok)
		case ch == '\'':
			tok, lexErr := scanChar(c, startLine, startCol)
			if lexErr != nil {
				return nil, lexErr
			}
			tokens = append(tokens, tok)
		default:
			return nil, &perrors.LexError{
				Kind: perrors.UnclassifiableCharacter, Line: startLine, Column: startCol,
				Message: "could not classify character " + quoteByte(ch),
			}
		}
	}

	return tokens, nil
}

func quoteByte(b byte) string {
	return strings.TrimSpace(string([]rune{rune(b)}))
}

func skipTrivia(c *cursor) *perrors.LexError {
	for !c.eof() {
		ch := c.at(0)
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || unicode.IsSpace(rune(ch)) {
			c.advance()
			continue
		}
		if ch == '/' && c.at(1) == '/' {
			for !c.eof() && c.at(0) != '\n' {
				c.advance()
			}
			continue
		}
		if ch == '/' && c.at(1) == '*' {
			c.advance()
			c.advance()
			for !c.eof() && !(c.at(-2) == '*' && c.at(-1) == '/') {
				c.advance()
			}
			continue
		}
		break
	}
	return nil
}

func scanIdentifierLike(c *cursor, interner *token.Interner, line, col int) token.Token {
	start := c.pos
	for !c.eof() && (isNonDigit(c.at(0)) || isDigit(c.at(0))) {
		c.advance()
	}
	text := c.src[start:c.pos]

	switch text {
	case "true", "false":
		return token.Token{Kind: token.BoolLiteral, Content: text, Bool: text == "true", Line: line, Column: col}
	case "nullptr":
		return token.Token{Kind: token.PointerLiteral, Content: text, Line: line, Column: col}
	default:
		return token.Token{Kind: token.Identifier, Content: interner.Intern(text), Line: line, Column: col}
	}
}
