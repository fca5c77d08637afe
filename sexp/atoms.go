package sexp

import (
	"strconv"
	"strings"
)

// outcome is the result of a single parse attempt at a position.  When ok is
// false the attempt did not match and next is the position it started from.
type outcome struct {
	val  Value
	next int
	ok   bool
}

func noMatch(pos int) outcome { return outcome{next: pos} }

func matched(v Value, next int) outcome { return outcome{val: v, next: next, ok: true} }

// atomParser tries to read one non-sequence value at pos.
type atomParser func(text string, pos int) outcome

// atomParsers are tried in this order for every token inside a sequence;
// the first to match wins.  Nested sequences are tried after all of them.
var atomParsers = []atomParser{
	parseNumber,
	parseBoolean,
	parseSymbol,
	parseString,
}

// parseBoolean matches a lone T (true) or NIL (false), in any case.
func parseBoolean(text string, pos int) outcome {
	if pos >= len(text) {
		return noMatch(pos)
	}
	if (text[pos] == 'T' || text[pos] == 't') && isEndOfSymbol(text, pos+1) {
		return matched(Boolean(true), pos+1)
	}
	if pos+3 <= len(text) && strings.EqualFold(text[pos:pos+3], "NIL") && isEndOfSymbol(text, pos+3) {
		return matched(Boolean(false), pos+3)
	}
	return noMatch(pos)
}

// parseString matches from a '"' to the next '"'.  There are no escapes; the
// first quote found always ends the string.
func parseString(text string, pos int) outcome {
	if pos >= len(text) || text[pos] != '"' {
		return noMatch(pos)
	}
	end := strings.IndexByte(text[pos+1:], '"')
	if end < 0 {
		return noMatch(pos)
	}
	end += pos + 1
	return matched(Text(text[pos+1:end]), end+1)
}

// parseSymbol matches a bare token starting with ':'.  The value keeps the
// colon; it is only stripped when the symbol becomes a mapping key.
func parseSymbol(text string, pos int) outcome {
	if pos >= len(text) || text[pos] != ':' {
		return noMatch(pos)
	}
	end := findEndOfSymbol(text, pos)
	return matched(Text(text[pos:end]), end)
}

// parseNumber matches a bare token that is an optionally negative decimal
// numeral, such as 12, -0.5 or .5.
func parseNumber(text string, pos int) outcome {
	end := findEndOfSymbol(text, pos)
	tok := text[pos:end]
	if !isNumeral(tok) {
		return noMatch(pos)
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return noMatch(pos)
	}
	return matched(Number(f), end)
}

// isNumeral accepts ['-'] digits ['.' digits] with at least one digit in
// total.  strconv.ParseFloat alone would also take exponents, hex, "inf" and
// "nan", none of which are part of the format.
func isNumeral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	digits, dot := 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}
