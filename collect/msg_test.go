package collect

import (
	"testing"
	"time"

	"github.com/jasonrobot/sexp-parser/sexp"
	"github.com/matryer/is"
)

func loadRecord(is *is.I, src string) sexp.Value {
	rec, err := sexp.Parse(src)
	is.NoErr(err) // test record parses
	return rec
}

func TestNewMsg(t *testing.T) {
	testCases := map[string]struct {
		source     string
		expectedID string
	}{
		"no id, sequence": {
			`(1 2 3)`,
			"5162c8c86cd7a794",
		},
		"no id, mapping": {
			`(:level "info")`,
			"43ffc669b2c4a304",
		},
		"text id": {
			`(:id "12345678@foo.com" :level "info")`,
			"12345678@foo.com",
		},
		"numeric id": {
			`(:level "info" :id 1024)`,
			"1024",
		},
		"empty id hashed": {
			`(:id "" :level "info")`,
			"956cf49be5015325",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			rec := loadRecord(is, tc.source)

			msg := NewMsg(rec)

			t.Logf("[test:%s] %+v", name, msg)
			is.Equal(msg.ID, tc.expectedID)         // ID should match
			is.True(sexp.Equal(msg.Record, rec))    // record is carried unchanged
			is.True(!msg.Time.IsZero())             // time is set
			is.Equal(msg.Time.Location(), time.UTC) // time is UTC
		})
	}
}

func TestMsgEncode(t *testing.T) {
	is := is.New(t)

	msg := &Msg{
		Record: loadRecord(is, `(:level "info" :tags ("a" "b"))`),
		Time:   time.Date(2020, 7, 4, 12, 30, 0, 500, time.UTC),
		ID:     "abc",
	}

	out, err := msg.Encode()
	is.NoErr(err)
	is.Equal(out, `(:id "abc" :time "2020-07-04T12:30:00.0000005Z" :record (:level "info" :tags ("a" "b")))`)

	back := loadRecord(is, out)
	env, ok := back.(*sexp.Mapping)
	is.True(ok) // envelope decodes as a mapping
	rec, _ := env.Get("record")
	is.True(sexp.Equal(rec, msg.Record)) // record survives the envelope
}

func TestMsgEncodeFailure(t *testing.T) {
	is := is.New(t)

	msg := NewMsg(sexp.Sequence{sexp.Text("x"), nil})
	_, err := msg.Encode()
	is.True(err != nil) // nil element cannot be encoded
}

func BenchmarkNewMsg(b *testing.B) {
	is := is.New(b)
	rec := loadRecord(is, `(:id "12345678@foo.com" :level "info")`)
	for i := 0; i < b.N; i++ {
		NewMsg(rec)
	}
}

func BenchmarkNewMsgHashed(b *testing.B) {
	is := is.New(b)
	rec := loadRecord(is, `(:level "info" :status 200 :host "web-3")`)
	for i := 0; i < b.N; i++ {
		NewMsg(rec)
	}
}
