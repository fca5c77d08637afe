package filters

type constErr string

func (e constErr) Error() string { return string(e) }

const (
	// ErrNeedString indicates a function expected a quoted string or symbol
	// argument.
	ErrNeedString = constErr("not a string")
	// ErrNeedNumber indicates gt or lt got a non-numeric argument.
	ErrNeedNumber = constErr("not a number")
	// ErrWrongArgCount indicates the function received too few or too many
	// args.
	ErrWrongArgCount = constErr("wrong number of args")
	// ErrUnknownFunc indicates a an attempt to use an unknown/unimplemented
	// filter function.
	ErrUnknownFunc = constErr("unknown filter function")
	// ErrEmptyExpression indicates an empty sub-expression was found.
	ErrEmptyExpression = constErr("empty expression")
	// ErrExpressionType indicates a function sub-expression started with a
	// number, string, or other non-symbol.
	ErrExpressionType = constErr("invalid expression initial type")
	// ErrAmbiguousExpression indicates an expression that decoded as a
	// mapping of several keys, such as (:has "a" :has "b").  Use any/all to
	// chain multiple functions.
	ErrAmbiguousExpression = constErr("expression has more than one function")
	// ErrBadRegexp indicates the argument given failed to successfully compile via regexp.Compile
	ErrBadRegexp = constErr("unable to compile regexp")
)
