package collect

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/jasonrobot/sexp-parser/sexp"
)

// Msg represents an accepted record and metadata.  It exists to create an
// envelope for publishing.
type Msg struct {
	Record sexp.Value
	Time   time.Time
	ID     string
}

// NewMsg creates a Msg from a decoded record.  Its ID will be the record's
// own id field if it has a text or numeric one, or a hash of the encoded
// record if not.
func NewMsg(rec sexp.Value) *Msg {
	return &Msg{
		Record: rec,
		Time:   time.Now().UTC(),
		ID:     recordID(rec),
	}
}

func recordID(rec sexp.Value) string {
	if m, ok := rec.(*sexp.Mapping); ok {
		switch id, _ := m.Get("id"); v := id.(type) {
		case sexp.Text:
			if v != "" {
				return string(v)
			}
		case sexp.Number:
			return strconv.FormatFloat(float64(v), 'f', -1, 64)
		}
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(rec.String()))
	return fmt.Sprintf("%x", h.Sum64())
}

// Encode renders the envelope as a single s-expression:
//	(:id "..." :time "..." :record ...)
func (m *Msg) Encode() (string, error) {
	env := sexp.NewMapping()
	env.Set("id", sexp.Text(m.ID))
	env.Set("time", sexp.Text(m.Time.Format(time.RFC3339Nano)))
	env.Set("record", m.Record)
	return sexp.Encode(env)
}
