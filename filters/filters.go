package filters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jasonrobot/sexp-parser/sexp"
)

// pathArg converts a string or symbol argument into a field path.
func pathArg(name string, a sexp.Value) ([]string, error) {
	t, ok := a.(sexp.Text)
	if !ok {
		return nil, fmt.Errorf("%s path %v: %w", name, a, ErrNeedString)
	}
	return strings.Split(strings.TrimPrefix(string(t), ":"), "."), nil
}

// lookup follows a path of mapping keys (or sequence indexes) into rec.
func lookup(rec sexp.Value, path []string) (sexp.Value, bool) {
	cur := rec
	for _, p := range path {
		switch v := cur.(type) {
		case *sexp.Mapping:
			next, ok := v.Get(p)
			if !ok {
				return nil, false
			}
			cur = next
		case sexp.Sequence:
			i, err := strconv.Atoi(p)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			cur = v[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// creates a filter that's true if the record is a mapping
func filterMapping(args []sexp.Value) (Filter, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("mapping takes no args, got %v: %w", args, ErrWrongArgCount)
	}
	return func(rec sexp.Value) bool {
		return rec.Kind() == sexp.KindMapping
	}, nil
}

// creates a filter that's true if the record is a plain sequence
func filterSequence(args []sexp.Value) (Filter, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("sequence takes no args, got %v: %w", args, ErrWrongArgCount)
	}
	return func(rec sexp.Value) bool {
		return rec.Kind() == sexp.KindSequence
	}, nil
}

// create a filter that's true if the record has a value at the path.
func filterHas(args []sexp.Value) (Filter, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("has got %v: %w", args, ErrWrongArgCount)
	}
	path, err := pathArg("has", args[0])
	if err != nil {
		return nil, err
	}
	return func(rec sexp.Value) bool {
		_, ok := lookup(rec, path)
		return ok
	}, nil
}

// create a filter that's true if the value at the path is exactly the
// argument.
func filterEq(args []sexp.Value) (Filter, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("eq got %v: %w", args, ErrWrongArgCount)
	}
	path, err := pathArg("eq", args[0])
	if err != nil {
		return nil, err
	}
	want := args[1]
	return func(rec sexp.Value) bool {
		v, ok := lookup(rec, path)
		return ok && sexp.Equal(v, want)
	}, nil
}

// create a filter that returns true if the text at the path matches a regexp.
func filterMatch(args []sexp.Value) (Filter, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("match got %v: %w", args, ErrWrongArgCount)
	}
	path, err := pathArg("match", args[0])
	if err != nil {
		return nil, err
	}
	re, err := regexpString(args[1])
	if err != nil {
		return nil, fmt.Errorf("compiling match regexp: %w", err)
	}
	return func(rec sexp.Value) bool {
		v, ok := lookup(rec, path)
		if !ok {
			return false
		}
		t, ok := v.(sexp.Text)
		return ok && re.MatchString(string(t))
	}, nil
}

// shared by gt and lt, which only differ by comparison.
func compareFilter(name string, args []sexp.Value, cmp func(a, b float64) bool) (Filter, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s got %v: %w", name, args, ErrWrongArgCount)
	}
	path, err := pathArg(name, args[0])
	if err != nil {
		return nil, err
	}
	n, ok := args[1].(sexp.Number)
	if !ok {
		return nil, fmt.Errorf("%s %v: %w", name, args[1], ErrNeedNumber)
	}
	return func(rec sexp.Value) bool {
		v, ok := lookup(rec, path)
		if !ok {
			return false
		}
		got, ok := v.(sexp.Number)
		return ok && cmp(float64(got), float64(n))
	}, nil
}

// create a filter that's true if the number at the path is greater than the
// argument.
func filterGt(args []sexp.Value) (Filter, error) {
	return compareFilter("gt", args, func(a, b float64) bool { return a > b })
}

// create a filter that's true if the number at the path is less than the
// argument.
func filterLt(args []sexp.Value) (Filter, error) {
	return compareFilter("lt", args, func(a, b float64) bool { return a < b })
}

// creates a filter which inverts truth value of the argument filter.
func filterNot(args []sexp.Value) (Filter, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("not %v: %w", args, ErrWrongArgCount)
	}
	f, err := compileExpr(args[0])
	if err != nil {
		return nil, fmt.Errorf("compiling not filter: %w", err)
	}
	return func(rec sexp.Value) bool {
		return !f(rec)
	}, nil
}

// Helper since any/all need to do the same checking.
func checkFilterArgs(name string, args []sexp.Value) ([]Filter, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%v got %v: %w", name, args, ErrWrongArgCount)
	}
	filters := []Filter{}
	for i, a := range args {
		f, err := compileExpr(a)
		if err != nil {
			return nil, fmt.Errorf("compiling %v filter, arg %d %v: %w", name, i+1, a, err)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// create a filter that's true if any one of all the arguments is true.
func filterAny(args []sexp.Value) (Filter, error) {
	filters, err := checkFilterArgs("any", args)
	if err != nil {
		return nil, err
	}
	return func(rec sexp.Value) bool {
		for _, f := range filters {
			if f(rec) {
				return true
			}
		}
		return false
	}, nil
}

// create filter that's true only if all the arguments are true.
func filterAll(args []sexp.Value) (Filter, error) {
	filters, err := checkFilterArgs("all", args)
	if err != nil {
		return nil, err
	}
	return func(rec sexp.Value) bool {
		for _, f := range filters {
			if !f(rec) {
				return false
			}
		}
		return true
	}, nil
}

// a filter function which always passes (used if filter source is empty).
func passFunc(sexp.Value) bool {
	return true
}
