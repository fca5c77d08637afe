package filters

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/jasonrobot/sexp-parser/sexp"
)

// Filter is a function which decides if a decoded record should pass or fail.
type Filter func(rec sexp.Value) bool

type filterBuilders map[string]func([]sexp.Value) (Filter, error)

// Compile a source in sexp format into an invokable Filter
func Compile(source string) (Filter, error) {
	// Make sure our filter builders are initialized.
	buildersOnce.Do(builders.init)

	source = strings.TrimSpace(source)
	if source == "" {
		return passFunc, nil
	}

	expr, err := sexp.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("filter parsing error: %w", err)
	}

	return compileExpr(expr)
}

var (
	builders     filterBuilders
	buildersOnce sync.Once
)

// We can't initialize these as a package var, because recursion happens in
// some filters, and package level init can't handle that.
func (fb *filterBuilders) init() {
	*fb = map[string]func([]sexp.Value) (Filter, error){
		"mapping":  filterMapping,
		"sequence": filterSequence,
		"has":      filterHas,
		"eq":       filterEq,
		"match":    filterMatch,
		"gt":       filterGt,
		"lt":       filterLt,
		"not":      filterNot,
		"any":      filterAny,
		"all":      filterAll,
	}
}

// compile a function with possible argument list into a filter.  Some filter
// funcs recurse back to compileExpr in the case of embedded filters.
func compileExpr(e sexp.Value) (Filter, error) {
	f, args, err := splitCall(e)
	if err != nil {
		return nil, err
	}

	// We now have a function name, exec its builder if we have one.
	if builder, ok := builders[f]; ok {
		return builder(args)
	}
	return nil, fmt.Errorf("%v: %w", f, ErrUnknownFunc)
}

// splitCall pulls the function name and arguments out of an expression.
// Calls with exactly one argument, like (:not f), arrive as a one pair
// mapping since that is how the decoder reads a symbol followed by a value.
func splitCall(e sexp.Value) (string, []sexp.Value, error) {
	switch v := e.(type) {
	case sexp.Sequence:
		if len(v) < 1 {
			return "", nil, fmt.Errorf("expression [%v]: %w", v, ErrEmptyExpression)
		}
		name, ok := v[0].(sexp.Text)
		if !ok || !strings.HasPrefix(string(name), ":") {
			return "", nil, fmt.Errorf("expression %v must start with a func name, not %v: %w", v, v[0], ErrExpressionType)
		}
		return string(name[1:]), v[1:], nil
	case *sexp.Mapping:
		if v.Len() != 1 {
			return "", nil, fmt.Errorf("expression %v: %w", v, ErrAmbiguousExpression)
		}
		name := v.Keys()[0]
		arg, _ := v.Get(name)
		return name, []sexp.Value{arg}, nil
	}
	return "", nil, fmt.Errorf("expression %v must be a list, not %v: %w", e, e.Kind(), ErrExpressionType)
}

// convenience func to convert an argument that should contain a single quoted
// string into a filterable regexp.Regexp.
func regexpString(a sexp.Value) (*regexp.Regexp, error) {
	s, ok := a.(sexp.Text)
	if !ok {
		return nil, ErrNeedString
	}
	re, err := regexp.Compile(string(s))
	if err != nil {
		return nil, fmt.Errorf("compiling regexp: %w: %v", ErrBadRegexp, err)
	}
	return re, nil
}
