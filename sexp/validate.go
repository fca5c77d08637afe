package sexp

import "strings"

// IsParensBalanced reports whether every '(' in text has a later matching
// ')' and no ')' appears before its '('.  Quotes are not considered, so a
// paren inside a quoted string counts.
func IsParensBalanced(text string) bool {
	open := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			open++
		case ')':
			open--
			if open < 0 {
				return false
			}
		}
	}
	return open == 0
}

// IsQuotesBalanced reports whether text holds an even number of '"'.
func IsQuotesBalanced(text string) bool {
	return strings.Count(text, `"`)%2 == 0
}

// checkParens is IsParensBalanced, except that parens between double quotes
// are ignored, which is how the parser itself treats them.  It returns the
// offending offset on failure.
func checkParens(text string) error {
	open, quoted := 0, false
	first := -1
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '(':
			if open == 0 {
				first = i
			}
			open++
		case c == ')':
			open--
			if open < 0 {
				return &FormatError{Offset: i, Err: ErrUnbalancedParens}
			}
		}
	}
	if open != 0 {
		return &FormatError{Offset: first, Err: ErrUnbalancedParens}
	}
	return nil
}
