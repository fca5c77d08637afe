package sexp

// isEndOfSymbol is true at or past the end of text, or on a space or a close
// paren.  Every bare token ends here.
func isEndOfSymbol(text string, pos int) bool {
	if pos >= len(text) {
		return true
	}
	return text[pos] == ' ' || text[pos] == ')'
}

// findEndOfSymbol returns the first position at or after pos where
// isEndOfSymbol holds.  It never returns more than len(text).
func findEndOfSymbol(text string, pos int) int {
	for !isEndOfSymbol(text, pos) {
		pos++
	}
	if pos > len(text) {
		return len(text)
	}
	return pos
}

// chompWhitespace skips literal spaces only; tabs and newlines are not
// separators in this format.
func chompWhitespace(text string, pos int) int {
	for pos < len(text) && text[pos] == ' ' {
		pos++
	}
	return pos
}
