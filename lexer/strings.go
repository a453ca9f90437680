package lexer

import (
	"github.com/niwohlos/pegi/perrors"
	"github.com/niwohlos/pegi/token"
)

// decodeEscape decodes one escape sequence (the cursor is positioned just
// after the backslash) and returns its byte value, per spec section 4.1:
// \' \" \? \\ \a \b \f \n \r \t \v, plus variable-length \x<hex>+ and
// variable-length \<octal>+.
func decodeEscape(c *cursor) (byte, *perrors.LexError) {
	if c.eof() {
		return 0, &perrors.LexError{
			Kind: perrors.EmptyEscape, Line: c.line, Column: c.col,
			Message: "expected an escape sequence",
		}
	}

	if c.at(0) == 'x' {
		c.advance()
		if !isHexDigit(c.at(0)) {
			return 0, &perrors.LexError{
				Kind: perrors.UnknownEscape, Line: c.line, Column: c.col,
				Message: "expected a hex digit after \\x",
			}
		}
		var val byte
		for isHexDigit(c.at(0)) {
			val = val*16 + byte(digitValue(c.advance()))
		}
		return val, nil
	}

	if isOctalDigit(c.at(0)) {
		var val byte
		for isOctalDigit(c.at(0)) {
			val = val*8 + byte(digitValue(c.advance()))
		}
		return val, nil
	}

	ch := c.advance()
	switch ch {
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case '?':
		return '?', nil
	case '\\':
		return '\\', nil
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	default:
		return 0, &perrors.LexError{
			Kind: perrors.UnknownEscape, Line: c.line, Column: c.col,
			Message: "unknown escape character",
		}
	}
}

func scanString(c *cursor, line, col int) (token.Token, *perrors.LexError) {
	start := c.pos
	c.advance() // opening quote

	var decoded []byte
	for {
		if c.eof() {
			return token.Token{}, &perrors.LexError{
				Kind: perrors.UnterminatedString, Line: line, Column: col,
				Message: "unterminated string literal",
			}
		}
		if c.at(0) == '"' {
			break
		}
		if c.at(0) == '\\' {
			c.advance()
			b, lexErr := decodeEscape(c)
			if lexErr != nil {
				return token.Token{}, lexErr
			}
			decoded = append(decoded, b)
			continue
		}
		decoded = append(decoded, c.advance())
	}
	c.advance() // closing quote

	content := c.src[start:c.pos]
	return token.Token{
		Kind: token.StringLiteral, Content: content, Line: line, Column: col,
		Str: token.StringValue{Bytes: decoded, Length: len(decoded)},
	}, nil
}

func scanChar(c *cursor, line, col int) (token.Token, *perrors.LexError) {
	start := c.pos
	c.advance() // opening quote

	if c.eof() {
		return token.Token{}, &perrors.LexError{
			Kind: perrors.UnterminatedChar, Line: line, Column: col,
			Message: "unterminated character literal",
		}
	}

	var value byte
	if c.at(0) == '\\' {
		c.advance()
		b, lexErr := decodeEscape(c)
		if lexErr != nil {
			return token.Token{}, lexErr
		}
		value = b
	} else {
		value = c.advance()
	}

	if c.eof() || c.at(0) != '\'' {
		return token.Token{}, &perrors.LexError{
			Kind: perrors.UnterminatedChar, Line: c.line, Column: c.col,
			Message: "expected end of character literal",
		}
	}
	c.advance()

	content := c.src[start:c.pos]
	return token.Token{
		Kind: token.CharLiteral, Content: content, Line: line, Column: col,
		Char: uint32(value),
	}, nil
}
