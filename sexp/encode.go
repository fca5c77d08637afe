package sexp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encoder writes Values as text.  Its zero value is ready to use.
type Encoder struct {
	// MaxDepth bounds how deeply sequences and mappings may nest, which also
	// stops runaway recursion on a Mapping that contains itself.  Zero means
	// DefaultMaxDepth.
	MaxDepth int
}

// Encode converts v to text using a zero Encoder.
func Encode(v Value) (string, error) {
	return Encoder{}.Encode(v)
}

// Encode converts v to text.  It fails only for values the format cannot
// express: a nil Value or *Mapping, a NaN or infinite Number, or nesting
// beyond MaxDepth.
//
// An empty Mapping encodes as "()", the same as an empty Sequence, and so
// decodes back as a Sequence.
func (e Encoder) Encode(v Value) (string, error) {
	var sb strings.Builder
	if err := e.encode(&sb, v, depthLimit(e.MaxDepth)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e Encoder) encode(sb *strings.Builder, v Value, budget int) error {
	switch v := v.(type) {
	case Number:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%v: %w", f, ErrNotFinite)
		}
		sb.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	case Text:
		sb.WriteByte('"')
		sb.WriteString(string(v))
		sb.WriteByte('"')
	case Boolean:
		if v {
			sb.WriteString("T")
		} else {
			sb.WriteString("NIL")
		}
	case Sequence:
		if budget <= 0 {
			return ErrTooDeep
		}
		sb.WriteByte('(')
		for i, item := range v {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if err := e.encode(sb, item, budget-1); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
	case *Mapping:
		if v == nil {
			return fmt.Errorf("nil *Mapping: %w", ErrUnsupportedType)
		}
		if budget <= 0 {
			return ErrTooDeep
		}
		sb.WriteByte('(')
		for i, k := range v.keys {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(':')
			sb.WriteString(k)
			sb.WriteByte(' ')
			if err := e.encode(sb, v.vals[k], budget-1); err != nil {
				return err
			}
		}
		sb.WriteByte(')')
	default:
		return fmt.Errorf("%T: %w", v, ErrUnsupportedType)
	}
	return nil
}
