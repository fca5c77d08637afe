package publisher

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jasonrobot/sexp-parser/collect"
	"github.com/jasonrobot/sexp-parser/sexp"
	"github.com/jasonrobot/sexp-parser/testhelpers"
	"github.com/matryer/is"
)

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func testMsg(id string, rec sexp.Value) *collect.Msg {
	return &collect.Msg{
		Record: rec,
		Time:   time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
		ID:     id,
	}
}

func TestWriterPublisher(t *testing.T) {
	testCases := map[string]struct {
		msg      *collect.Msg
		expected string
		fails    bool
	}{
		"sequence": {
			testMsg("a", sexp.Sequence{sexp.Number(1), sexp.Boolean(true)}),
			`(:id "a" :time "2020-01-02T03:04:05Z" :record (1 T))` + "\n",
			false,
		},
		"empty": {
			testMsg("b", sexp.Sequence{}),
			`(:id "b" :time "2020-01-02T03:04:05Z" :record ())` + "\n",
			false,
		},
		"unencodable": {
			testMsg("c", sexp.Sequence{sexp.Number(1), nil}),
			"",
			true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			buf := &bytes.Buffer{}
			p := NewWriter(buf)

			err := p.Publish(context.Background(), tc.msg)
			is.Equal(err != nil, tc.fails)
			if tc.fails {
				is.True(errors.Is(err, sexp.ErrUnsupportedType))
			}
			is.Equal(buf.String(), tc.expected)
		})
	}
}

func TestWriterPublisherWriteError(t *testing.T) {
	is := is.New(t)

	p := NewWriter(failWriter{})
	err := p.Publish(context.Background(), testMsg("a", sexp.Sequence{}))
	is.True(err != nil) // write errors are returned
}

func TestWriterPublisherConcurrent(t *testing.T) {
	is := is.New(t)
	buf := testhelpers.NewLogBuf()
	p := NewWriter(buf)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for x := 0; x < 20; x++ {
		wg.Add(1)
		go func(x int) {
			defer wg.Done()
			rec := sexp.Sequence{sexp.Number(float64(x)), sexp.Text(strings.Repeat("z", 100))}
			errs <- p.Publish(context.Background(), testMsg("x", rec))
		}(x)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		is.NoErr(err)
	}

	lines := buf.Lines()
	is.Equal(len(lines), 20)
	for _, l := range lines {
		_, err := sexp.Parse(l)
		is.NoErr(err) // each line is a whole envelope
	}
}

func TestNewMQTT(t *testing.T) {
	is := is.New(t)

	m, err := NewMQTT(MQTTOptions{Broker: "tcp://localhost:1883", Topic: "records"})
	is.NoErr(err)
	is.True(strings.HasPrefix(m.opts.ClientID, "sexp-relay:")) // client id generated

	_, err = NewMQTT(MQTTOptions{
		Broker:      "tcp://localhost:1883",
		TLSKeyFile:  "testdata/missing.key",
		TLSCertFile: "testdata/missing.pem",
	})
	is.True(err != nil) // missing tls files fail
}

func TestTimeoutFromCtx(t *testing.T) {
	is := is.New(t)

	is.Equal(timeoutFromCtx(context.Background(), time.Second), time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	d := timeoutFromCtx(ctx, time.Second)
	is.True(d > time.Minute && d <= time.Hour)
}
