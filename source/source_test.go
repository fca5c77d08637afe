package source

import (
	"bufio"
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jasonrobot/sexp-parser/splitter"
	"github.com/jasonrobot/sexp-parser/testhelpers"
	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func drain(t *testing.T, ch <-chan []byte) []string {
	t.Helper()
	records := []string{}
	timeout := time.After(time.Second)
	for {
		select {
		case rec, ok := <-ch:
			if !ok {
				return records
			}
			records = append(records, string(rec))
		case <-timeout:
			t.Fatal("timed out waiting for records")
		}
	}
}

func TestRecords(t *testing.T) {
	is := is.New(t)
	input := "(:a 1)\nnoise (:b 2)\n(:c\n(:d \"(x)\")"
	src := NewReader("test", ioutil.NopCloser(strings.NewReader(input)), 0)
	defer src.Close()

	records := drain(t, src.Records(context.Background()))
	is.Equal(records, []string{"(:a 1)", "(:b 2)", `(:d "(x)")`})

	is.Equal(testutil.ToFloat64(src.metrics.Records), 3.0)
	is.Equal(testutil.ToFloat64(src.metrics.Incomplete), 1.0) // "(:c\n"
	is.Equal(testutil.ToFloat64(src.metrics.Discarded), 7.0)  // "\nnoise "
	is.Equal(testutil.ToFloat64(src.metrics.Info.WithLabelValues("test")), 1.0)
}

func TestRecordTooLarge(t *testing.T) {
	is := is.New(t)
	buf := testhelpers.NewLogBuf()
	log := zerolog.New(buf)
	ctx := log.WithContext(context.Background())

	input := "(1)\n(" + strings.Repeat("1 ", 100) + ")\n(2)\n"
	src := NewReader("big", ioutil.NopCloser(strings.NewReader(input)), 64)

	records := drain(t, src.Records(ctx))
	t.Log(buf.String())
	is.Equal(records, []string{"(1)"})              // stops at the oversized record
	is.True(buf.Contains("reading records failed")) // and says why
	is.True(errors.Is(src.Err(), bufio.ErrTooLong)) // and keeps the cause
}

func TestRecordsStrict(t *testing.T) {
	is := is.New(t)
	input := "(1)\n(:id \"r4 :x 1)\n(2)\n"
	src := NewReader("strict", ioutil.NopCloser(strings.NewReader(input)), 0)
	src.SetStrict(true)

	records := drain(t, src.Records(context.Background()))
	is.Equal(records, []string{"(1)"})                      // stops at the cut off record
	is.True(errors.Is(src.Err(), splitter.ErrUnterminated)) // reports why
	is.Equal(testutil.ToFloat64(src.metrics.Incomplete), 1.0)
}

func TestRecordsLenient(t *testing.T) {
	is := is.New(t)
	input := "(1)\n(:id \"r4 :x 1)\n(2)\n"
	src := NewReader("lenient", ioutil.NopCloser(strings.NewReader(input)), 0)

	records := drain(t, src.Records(context.Background()))
	is.Equal(records, []string{"(1)", "(2)"}) // a stray quote only loses its own line
	is.NoErr(src.Err())
}

func TestRecordsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	input := strings.Repeat("(1)\n", 100)
	src := NewReader("cancel", ioutil.NopCloser(strings.NewReader(input)), 0)

	ch := src.Records(ctx)
	<-ch
	cancel()

	// the channel must close even though nobody reads the remaining records.
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("records channel not closed after cancel")
		}
	}
}

func TestNewFile(t *testing.T) {
	is := is.New(t)
	dir, err := ioutil.TempDir("", "source")
	is.NoErr(err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "records.sexp")
	is.NoErr(ioutil.WriteFile(path, []byte("(1 2)\n(3)\n"), 0600))

	src, err := NewFile(path, 0)
	is.NoErr(err)
	defer src.Close()
	is.Equal(drain(t, src.Records(context.Background())), []string{"(1 2)", "(3)"})

	_, err = NewFile(filepath.Join(dir, "missing"), 0)
	is.True(err != nil) // missing file
}
