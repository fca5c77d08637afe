package sexp

import "strconv"

// Kind identifies which variant of Value is held.
type Kind int

// The five kinds of Value.
const (
	KindNumber Kind = iota
	KindText
	KindBoolean
	KindSequence
	KindMapping
)

var kindNames = [...]string{
	KindNumber:   "number",
	KindText:     "text",
	KindBoolean:  "boolean",
	KindSequence: "sequence",
	KindMapping:  "mapping",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Value is any decoded or encodable datum.  The set of implementations is
// closed: Number, Text, Boolean, Sequence and *Mapping.
type Value interface {
	Kind() Kind
	String() string
	value()
}

// Number is a signed fractional number.
type Number float64

// Text is a run of characters.  It is written between double quotes with no
// escaping, so a Text containing '"' cannot be encoded faithfully.
type Text string

// Boolean is written T or NIL.
type Boolean bool

// Sequence is an ordered list of values.
type Sequence []Value

func (Number) value()   {}
func (Text) value()     {}
func (Boolean) value()  {}
func (Sequence) value() {}

// Kind satisfies Value.
func (Number) Kind() Kind { return KindNumber }

// Kind satisfies Value.
func (Text) Kind() Kind { return KindText }

// Kind satisfies Value.
func (Boolean) Kind() Kind { return KindBoolean }

// Kind satisfies Value.
func (Sequence) Kind() Kind { return KindSequence }

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'f', -1, 64) }

func (t Text) String() string { return `"` + string(t) + `"` }

func (b Boolean) String() string {
	if b {
		return "T"
	}
	return "NIL"
}

func (s Sequence) String() string { return stringOf(s) }

// stringOf encodes v for display; errors are rendered inline rather than
// returned.
func stringOf(v Value) string {
	s, err := Encode(v)
	if err != nil {
		return "!!(" + err.Error() + ")!!"
	}
	return s
}

// Equal reports whether a and b are structurally identical.  Mappings are
// equal only if they hold the same keys in the same order.  Equal does not
// terminate on cyclic values.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Sequence:
		bv, ok := b.(Sequence)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		bv, ok := b.(*Mapping)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for i, k := range av.keys {
			if bv.keys[i] != k || !Equal(av.vals[k], bv.vals[k]) {
				return false
			}
		}
		return true
	}
	return false
}
