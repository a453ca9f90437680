package lexer

// operatorSpellings is the punctuator/operator table from spec section 4.1,
// grounded on original_source/src/tokenize.cpp's `poops` table: it includes
// both ordinary punctuation and the alternative-spelling operator tokens
// ("and", "bitor", "not_eq", ...) plus "new"/"delete" -- all of these lex as
// Operator tokens rather than identifiers, exactly as the original's
// ispoop() dispatch (checked before the identifier-like run) does. ">>" and
// ">>=" are deliberately absent: they lex as ">" ">" and ">" ">=" and are
// reassembled by the parser (see cst.FixRightShifts).
//
// Preprocessor-only tokens ("%:%:", "<:", ":>", "<%", "%>", "%:", "##") are
// dropped, since this front end performs no preprocessing (spec Non-goals).
var operatorSpellings = []string{
	// alternative spellings ending in an identifier character
	"and_eq", "not_eq", "xor_eq", "bitand", "delete",
	"bitor", "compl", "or_eq",
	"new", "and", "not", "xor",
	"or",

	// ordinary punctuation, longest first within each length class
	"...", "<<=", "->*",
	"::", ".*", "+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=",
	"<<", "==", "!=", "<=", ">=", "&&", "||", "++", "--", "->",
	"{", "}", "[", "]", "(", ")", ";", ":", "?", ".", "+", "-", "*", "/",
	"%", "^", "&", "|", "~", "!", "=", "<", ">", ",",
}

var operatorsByLen map[int]map[string]bool
var maxOperatorLen int

func init() {
	operatorsByLen = make(map[int]map[string]bool)
	for _, op := range operatorSpellings {
		n := len(op)
		if operatorsByLen[n] == nil {
			operatorsByLen[n] = make(map[string]bool)
		}
		operatorsByLen[n][op] = true
		if n > maxOperatorLen {
			maxOperatorLen = n
		}
	}
}

// matchOperator returns the longest operator-table entry that matches src at
// pos, honoring the identifier-suffix exception: a candidate ending in an
// identifier character only matches if the following source character is not
// itself an identifier-continuing character (this is what stops "new"
// matching the start of "newtype").
func matchOperator(src string, pos int) (string, bool) {
	for length := maxOperatorLen; length >= 1; length-- {
		if pos+length > len(src) {
			continue
		}
		set := operatorsByLen[length]
		if set == nil {
			continue
		}
		cand := src[pos : pos+length]
		if !set[cand] {
			continue
		}

		last := cand[length-1]
		if isNonDigit(last) {
			if pos+length < len(src) {
				next := src[pos+length]
				if isIdentChar(next) {
					continue
				}
			}
		}

		return cand, true
	}
	return "", false
}
