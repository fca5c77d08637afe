/*
Package sexp encodes and decodes a small Lisp flavored data notation, used as
an alternative to JSON for records in logs, files and messages.

A document is a single parenthesized sequence.  Inside it, values are
separated by single space characters; tabs and newlines are not whitespace.

	(:number 123 :digits ("1" "2" "3") :attributes (:even NIL :positive T))

is the equivalent of the JSON

	{"number":123,"digits":["1","2","3"],"attributes":{"even":false,"positive":true}}

Values are one of:

	Number		-12, 0.5, .5 or 12.  No exponents, no leading '+'.
	Text		"anything but a double quote".  There are no escapes.
	Boolean		T for true, NIL for false; either is case-insensitive.
	Sequence	(value value ...), possibly empty.
	Mapping		(:key value :key value ...)

Bare words starting with ':' are symbols.  They only exist to mark mapping
keys: after a sequence is read, if it has an even, non-zero number of
elements and every other element starting with the first is a symbol (or a
quoted string starting with ':'), it is returned as a *Mapping with the
colons stripped from the keys.  Otherwise symbols are kept as Text, colon
included.  Any other bare word is an error.

A numeral too large for a float64 is not read as infinity; Parse fails with
ErrNumberRange.  Very small numerals simply round, possibly to zero.

Marshal and FromNative accept ordinary Go data much like encoding/json.
Structs become mappings of their exported fields, renamed or skipped with
tags:

	type Endpoint struct {
		Host string   `sexp:"host"`
		Tags []string `sexp:"tags,omitempty"`
		Pass string   `sexp:"-"`
	}

Known limits of the notation:

A Text holding '"' cannot be written.  A Text starting with ':' in key
position of an even length sequence will read back as a mapping key.  An empty
Mapping is written "()" and reads back as an empty Sequence.  Mapping keys
holding spaces, parens or double quotes do not survive a round trip.

Parse and Encode hold no shared state and are safe for concurrent use.
*/
package sexp
