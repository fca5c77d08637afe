/*
Package filters implements a record matching filter s-expression DSL.

The DSL is itself written in the sexp notation, selecting which decoded
records to keep.  The input to the resulting Filter is a sexp.Value, usually
a *sexp.Mapping read from a log or a file.

The simplest filter is the empty string, which returns a Filter function that
will match any possible record.

Every function call is a list starting with a symbol naming the function.
The following record selection functions are available:
	(:mapping)		the record is a mapping
	(:sequence)		the record is a plain sequence
	(:has path)		the record has a value at path
	(:eq path v)		the value at path equals v
	(:match path re)	the text at path matches a regexp
	(:gt path n)		the number at path is greater than n
	(:lt path n)		the number at path is less than n

Additionally, the following three logic functions can be used to build
complex filter functions:
	(:all f ...)	each given filter is true
	(:any f ...)	at least one given filter is true
	(:not f)	the given filter's output is negated

A path is a quoted string or a symbol holding mapping keys separated by dots.
A path segment that is a number indexes into a sequence, so "tags.0" is the
first tag.  Regular expression arguments are quoted strings; see
'go doc regexp/syntax' for what is allowed.  If any part of the expression
cannot be interpreted, or a regular expression fails to compile, then
Compile() will return an error.

Note that since a symbol followed by a single value is read as a one entry
mapping, (:not f) and (:has "x") arrive at the compiler as mappings.  This is
handled, but it means an expression like (:has "a" :eq "b") reads as one
mapping with two functions, which is an error, and (:has "a" :has "b") quietly
keeps only the last.  Use (:all (:has "a") (:has "b")) instead.

Examples

	""

Any empty rule always matches every record.

	(:mapping)

Matches any keyed record, but no plain sequences.

	(:eq :level "error")

Matches records whose level field is the text "error".

	(:not (:has "debug"))

Matches any record without a debug field, including every sequence.

	(:all (:match :host "^web-[0-9]+$")
	      (:any (:gt :status 499) (:eq :retry T))
	      (:not (:eq "user.name" "healthcheck")))

An example of a complex rule.  It captures any record from a web host that
either failed with a server error or was retried, unless it was made by the
health checker.
*/
package filters
