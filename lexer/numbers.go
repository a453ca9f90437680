package lexer

import (
	"math"

	"github.com/niwohlos/pegi/perrors"
	"github.com/niwohlos/pegi/token"
)

type numBase int

const (
	baseDecimal numBase = iota
	baseOctal
	baseHex
)

// scanNumber scans an integer or float literal starting at the cursor,
// applying the base-selection, suffix, promotion, and evaluation rules of
// spec section 4.1.
func scanNumber(c *cursor, line, col int) (token.Token, *perrors.LexError) {
	start := c.pos

	base := baseDecimal
	if c.at(0) == '0' {
		if c.at(1) == 'x' || c.at(1) == 'X' {
			base = baseHex
		} else {
			base = baseOctal
		}
	}

	// Consume the "0x"/"0X" prefix so digit scanning starts on the mantissa.
	if base == baseHex {
		c.advance()
		c.advance()
	}

	isFloat := false

	intDigitsStart := c.pos
	scanDigitRun(c, base)
	intDigits := c.src[intDigitsStart:c.pos]

	var fracDigits string
	if c.at(0) == '.' {
		isFloat = true
		c.advance()
		fracStart := c.pos
		scanDigitRun(c, base)
		fracDigits = c.src[fracStart:c.pos]
	}

	writtenExp := 0
	hasExp := false
	if (base != baseHex && (c.at(0) == 'e' || c.at(0) == 'E')) ||
		(base == baseHex && (c.at(0) == 'p' || c.at(0) == 'P')) {
		isFloat = true
		hasExp = true
		c.advance()
		neg := false
		if c.at(0) == '+' || c.at(0) == '-' {
			neg = c.at(0) == '-'
			c.advance()
		}
		if !isDigit(c.at(0)) {
			return token.Token{}, &perrors.LexError{
				Kind: perrors.MissingExponentDigit, Line: c.line, Column: c.col,
				Message: "expected a digit in exponent",
			}
		}
		expStart := c.pos
		for isDigit(c.at(0)) {
			c.advance()
		}
		expDigits := c.src[expStart:c.pos]
		for _, d := range expDigits {
			writtenExp = writtenExp*10 + int(d-'0')
		}
		if neg {
			writtenExp = -writtenExp
		}
	}
	_ = hasExp

	if base == baseHex && isFloat && !hasExp {
		// A hex mantissa with a radix point but no explicit p-exponent is
		// still lexed as a float literal with a binary exponent of zero; no
		// error is reported for the missing exponent.
	}

	if isFloat {
		subtype := token.Double
		if c.at(0) == 'f' || c.at(0) == 'F' {
			subtype = token.Float
			c.advance()
		} else if c.at(0) == 'l' || c.at(0) == 'L' {
			subtype = token.LongDouble
			c.advance()
		} else if isNonDigit(c.at(0)) {
			return token.Token{}, &perrors.LexError{
				Kind: perrors.UnknownFloatSuffix, Line: c.line, Column: c.col,
				Message: "unknown float suffix",
			}
		}

		content := c.src[start:c.pos]
		var value float64
		if base == baseHex {
			value = evalFloat(intDigits, fracDigits, writtenExp, 16, 2)
		} else {
			value = evalFloat(intDigits, fracDigits, writtenExp, 10, 10)
		}

		return token.Token{
			Kind: token.FloatLiteral, Content: content, Line: line, Column: col,
			Float: token.FloatValue{Subtype: subtype, Value: value},
		}, nil
	}

	// Integer literal: parse the u/l suffix combination.
	hasU := false
	lCount := 0
	for {
		ch := c.at(0)
		if ch == 'u' || ch == 'U' {
			hasU = true
			c.advance()
		} else if ch == 'l' || ch == 'L' {
			lCount++
			c.advance()
		} else {
			break
		}
	}

	content := c.src[start:c.pos]

	magnitude, overflowed := evalIntegerMagnitude(intDigits, base)
	if overflowed {
		return token.Token{}, &perrors.LexError{
			Kind: perrors.IntegerOverflow, Line: line, Column: col,
			Message: "integer literal " + content + " is too large to represent",
		}
	}

	fitsInt64 := magnitude <= math.MaxInt64
	if base == baseDecimal && !fitsInt64 {
		return token.Token{}, &perrors.LexError{
			Kind: perrors.IntegerOverflow, Line: line, Column: col,
			Message: "decimal integer literal " + content + " overflows signed accumulation",
		}
	}

	subtype := promoteIntegerSubtype(base, hasU, lCount, magnitude)

	var iv token.IntegerValue
	iv.Subtype = subtype
	if subtype.Unsigned() {
		iv.Unsigned = magnitude
	} else {
		iv.Signed = int64(magnitude)
	}

	return token.Token{
		Kind: token.IntegerLiteral, Content: content, Line: line, Column: col,
		Integer: iv,
	}, nil
}

func scanDigitRun(c *cursor, base numBase) {
	switch base {
	case baseHex:
		for isHexDigit(c.at(0)) {
			c.advance()
		}
	case baseOctal:
		for isOctalDigit(c.at(0)) {
			c.advance()
		}
	default:
		for isDigit(c.at(0)) {
			c.advance()
		}
	}
}

func digitValue(d byte) uint64 {
	switch {
	case d >= '0' && d <= '9':
		return uint64(d - '0')
	case d >= 'a' && d <= 'f':
		return uint64(d-'a') + 10
	case d >= 'A' && d <= 'F':
		return uint64(d-'A') + 10
	default:
		return 0
	}
}

// evalIntegerMagnitude accumulates digits as an unsigned 64-bit magnitude,
// reporting true overflow (a value that cannot be represented even as
// unsigned long long) separately from the decimal-vs-int64 check the caller
// performs afterward.
func evalIntegerMagnitude(digits string, base numBase) (value uint64, overflowed bool) {
	radix := uint64(10)
	switch base {
	case baseHex:
		radix = 16
	case baseOctal:
		radix = 8
	}

	var acc uint64
	for i := 0; i < len(digits); i++ {
		dv := digitValue(digits[i])
		if acc > (math.MaxUint64-dv)/radix {
			return 0, true
		}
		acc = acc*radix + dv
	}
	return acc, false
}

func promoteIntegerSubtype(base numBase, hasU bool, lCount int, magnitude uint64) token.IntegerSubtype {
	type slot struct {
		subtype token.IntegerSubtype
		width   int // 0=int, 1=long, 2=long long
	}

	var chain []slot
	switch {
	case base == baseDecimal && !hasU:
		chain = []slot{{token.SignedInt, 0}, {token.SignedLong, 1}, {token.SignedLongLong, 2}}
	case base == baseDecimal && hasU:
		chain = []slot{{token.UnsignedInt, 0}, {token.UnsignedLong, 1}, {token.UnsignedLongLong, 2}}
	case base != baseDecimal && !hasU:
		chain = []slot{
			{token.SignedInt, 0}, {token.UnsignedInt, 0},
			{token.SignedLong, 1}, {token.UnsignedLong, 1},
			{token.SignedLongLong, 2}, {token.UnsignedLongLong, 2},
		}
	default: // non-decimal, u
		chain = []slot{{token.UnsignedInt, 0}, {token.UnsignedLong, 1}, {token.UnsignedLongLong, 2}}
	}

	for _, s := range chain {
		if s.width < lCount {
			continue
		}
		if fits(s.subtype, magnitude) {
			return s.subtype
		}
	}

	// Every chain ends in a 64-bit type wide enough for any magnitude that
	// passed evalIntegerMagnitude's overflow check, so this is unreachable.
	return chain[len(chain)-1].subtype
}

func fits(subtype token.IntegerSubtype, magnitude uint64) bool {
	switch subtype {
	case token.SignedInt:
		return magnitude <= math.MaxInt32
	case token.UnsignedInt:
		return magnitude <= math.MaxUint32
	case token.SignedLong, token.SignedLongLong:
		return magnitude <= math.MaxInt64
	case token.UnsignedLong, token.UnsignedLongLong:
		return true
	default:
		return false
	}
}

// evalFloat implements the accumulate-then-promote float evaluation
// described in spec section 4.1: the integer and fractional mantissa parts
// are accumulated as 64-bit unsigned counters, recording a leftover exponent
// once they would overflow, then combined with the written exponent.
func evalFloat(intDigits, fracDigits string, writtenExp int, mantissaRadix, expRadix int) float64 {
	intAcc, leftover := accumulateWithLeftover(intDigits, uint64(mantissaRadix))
	fracAcc, fracUsed := accumulateFraction(fracDigits, uint64(mantissaRadix))

	mantissaBase := float64(mantissaRadix)
	value := float64(intAcc)*math.Pow(mantissaBase, float64(leftover)) +
		float64(fracAcc)*math.Pow(mantissaBase, -float64(fracUsed))

	// The written exponent is always expressed in expRadix (10 for decimal
	// floats, 2 for hex floats' mandatory "p" exponent), independent of the
	// mantissa's own radix -- "per hex digit = 4 binary" is already captured
	// by fracUsed counting hex digits while the mantissa base is 16.
	return value * math.Pow(float64(expRadix), float64(writtenExp))
}

func accumulateWithLeftover(digits string, radix uint64) (acc uint64, leftover int) {
	for i := 0; i < len(digits); i++ {
		dv := digitValue(digits[i])
		if acc > (math.MaxUint64-dv)/radix {
			leftover++
			continue
		}
		acc = acc*radix + dv
	}
	return acc, leftover
}

func accumulateFraction(digits string, radix uint64) (acc uint64, used int) {
	for i := 0; i < len(digits); i++ {
		dv := digitValue(digits[i])
		if acc > (math.MaxUint64-dv)/radix {
			break
		}
		acc = acc*radix + dv
		used++
	}
	return acc, used
}
