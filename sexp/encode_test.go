package sexp

import (
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestEncode(t *testing.T) {
	nested := NewMapping()
	nested.Set("even", Boolean(false))
	nested.Set("positive", Boolean(true))
	record := NewMapping()
	record.Set("number", Number(123))
	record.Set("digits", Sequence{Text("1"), Text("2"), Text("3")})
	record.Set("attributes", nested)

	testCases := map[string]struct {
		v      Value
		expect string
	}{
		"integer":         {Number(12), `12`},
		"negative":        {Number(-0.5), `-0.5`},
		"fraction":        {Number(0.1), `0.1`},
		"large":           {Number(1e21), `1000000000000000000000`},
		"small":           {Number(1e-7), `0.0000001`},
		"text":            {Text("hi there"), `"hi there"`},
		"empty text":      {Text(""), `""`},
		"true":            {Boolean(true), `T`},
		"false":           {Boolean(false), `NIL`},
		"empty sequence":  {Sequence{}, `()`},
		"nil sequence":    {Sequence(nil), `()`},
		"sequence":        {Sequence{Number(1), Text("a"), Boolean(true)}, `(1 "a" T)`},
		"nested sequence": {Sequence{Sequence{Sequence{}}}, `((()))`},
		"empty mapping":   {NewMapping(), `()`},
		"record":          {record, `(:number 123 :digits ("1" "2" "3") :attributes (:even NIL :positive T))`},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			s, err := Encode(tc.v)
			is.NoErr(err)
			is.Equal(s, tc.expect)
		})
	}
}

func TestEncodeFailures(t *testing.T) {
	cyclic := NewMapping()
	cyclic.Set("self", cyclic)

	testCases := map[string]struct {
		v        Value
		expected error
	}{
		"nil value":       {nil, ErrUnsupportedType},
		"nil mapping":     {(*Mapping)(nil), ErrUnsupportedType},
		"NaN":             {Number(math.NaN()), ErrNotFinite},
		"infinity":        {Number(math.Inf(1)), ErrNotFinite},
		"nested infinity": {Sequence{Number(1), Number(math.Inf(-1))}, ErrNotFinite},
		"cyclic mapping":  {cyclic, ErrTooDeep},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			s, err := Encode(tc.v)
			t.Log(err, tc.expected)
			is.Equal(s, "") // no partial output
			is.True(errors.Is(err, tc.expected))
		})
	}
}

func TestEncodeMaxDepth(t *testing.T) {
	is := is.New(t)
	v := Sequence{Sequence{Sequence{}}}

	_, err := Encoder{MaxDepth: 3}.Encode(v)
	is.NoErr(err)

	_, err = Encoder{MaxDepth: 2}.Encode(v)
	is.True(errors.Is(err, ErrTooDeep))
}

func TestRoundTrip(t *testing.T) {
	inner := NewMapping()
	inner.Set("c", Number(69))
	inner.Set("d", Sequence{Text("x"), Boolean(false)})
	outer := NewMapping()
	outer.Set("a", Number(1))
	outer.Set("b", inner)
	outer.Set("list", Sequence{inner, inner})

	testCases := map[string]Value{
		"numbers":           Sequence{Number(0), Number(-1.25), Number(.5), Number(123456789)},
		"texts":             Sequence{Text("a b c"), Text(""), Text("(x)"), Text("back\\slash")},
		"booleans":          Sequence{Boolean(true), Boolean(false)},
		"empty":             Sequence{},
		"nested":            Sequence{Number(1), Sequence{Number(2), Sequence{Number(3)}}, Sequence{}},
		"single pair":       func() Value { m := NewMapping(); m.Set("k", Text("v")); return m }(),
		"nested mappings":   outer,
		"array of mappings": Sequence{inner, outer},
	}

	for name, v := range testCases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			s, err := Encode(v)
			is.NoErr(err)
			got, err := Parse(s)
			is.NoErr(err)
			is.True(Equal(got, v)) // parse(encode(v)) == v
			again, err := Encode(got)
			is.NoErr(err)
			is.Equal(again, s) // encode is idempotent through parse
		})
	}
}

func TestEmptyMappingBecomesSequence(t *testing.T) {
	is := is.New(t)
	s, err := Encode(NewMapping())
	is.NoErr(err)
	v, err := Parse(s)
	is.NoErr(err)
	is.Equal(v.Kind(), KindSequence)
}

func BenchmarkEncode(b *testing.B) {
	v, err := Parse(`(:number 123 :digits ("1" "2" "3") :attributes (:even NIL :positive T))`)
	if err != nil {
		b.Fatalf("unable to parse: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(v); err != nil {
			b.Fatalf("unable to encode: %v", err)
		}
	}
}
