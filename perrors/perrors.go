// Package perrors defines the error taxonomy produced by lexing and parsing:
// LexError, ParseError, and GrammarError, plus the shared caret-rendering
// format used to report them.
package perrors

import (
	"fmt"
	"strings"
)

// LexErrorKind enumerates the lexical failure modes.
type LexErrorKind int

const (
	EmptyEscape LexErrorKind = iota
	UnknownEscape
	UnterminatedString
	UnterminatedChar
	MissingExponentDigit
	IntegerOverflow
	UnknownFloatSuffix
	UnclassifiableCharacter
)

func (k LexErrorKind) String() string {
	switch k {
	case EmptyEscape:
		return "empty escape sequence"
	case UnknownEscape:
		return "unknown escape sequence"
	case UnterminatedString:
		return "unterminated string literal"
	case UnterminatedChar:
		return "unterminated character literal"
	case MissingExponentDigit:
		return "missing exponent digit"
	case IntegerOverflow:
		return "integer literal overflows"
	case UnknownFloatSuffix:
		return "unknown float suffix"
	case UnclassifiableCharacter:
		return "unclassifiable character"
	default:
		return "unknown lex error"
	}
}

// LexError is returned by lexer.Lex on failure. Line and Column are 1-based.
type LexError struct {
	Kind    LexErrorKind
	Line    int
	Column  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ParseErrorKind enumerates the parse-level failure modes.
type ParseErrorKind int

const (
	UnmatchedToken ParseErrorKind = iota
	RootDidNotMatch
)

// ParseError is returned by parser.BuildSyntaxTree on failure. Line is -1 for
// file-level errors that have no specific offending token (e.g. an empty
// token stream).
type ParseError struct {
	Kind    ParseErrorKind
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("%s", e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// GrammarErrorKind enumerates malformed-grammar-table failure modes. No code
// in this module constructs a GrammarError: parser.BuildSyntaxTree reports
// only *ParseError, and the handlers skip a construct of unexpected shape
// instead of reporting it.
type GrammarErrorKind int

const (
	MalformedTemplateParameter GrammarErrorKind = iota
	MissingNamespaceIdentifier
	DecltypeInNestedNameSpecifier
	UnreachableScope
)

type GrammarError struct {
	Kind    GrammarErrorKind
	Line    int
	Column  int
	Message string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar error: %s", e.Message)
}

// Render produces the standard
// "<prog>: <unit>:<line>:<col>: <msg>\n<offending-line>\n<spaces>^"
// rendering for an error located at (line, column) within source.
func Render(prog, unit string, line, column int, message, source string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s:%d:%d: %s", prog, unit, line, column, message)

	if line < 1 {
		return sb.String()
	}

	offending := sourceLine(source, line)
	if offending == "" {
		return sb.String()
	}

	sb.WriteByte('\n')
	sb.WriteString(offending)
	sb.WriteByte('\n')
	for i := 1; i < column; i++ {
		sb.WriteByte(' ')
	}
	sb.WriteByte('^')

	return sb.String()
}

// sourceLine returns the 1-indexed nth line of source, or "" if there is no
// such line.
func sourceLine(source string, n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}
