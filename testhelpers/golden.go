package testhelpers

import (
	"bytes"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

// updateGolden is set by the '-update' flag of `go test`.
var updateGolden bool

func init() {
	flag.BoolVar(&updateGolden, "update", false, "rewrite golden files under testdata with current output")
}

// LoadTestdata reads a fixture from the package's testdata directory,
// failing the test if it cannot.
func LoadTestdata(t testing.TB, file string) []byte {
	t.Helper()
	data, err := ioutil.ReadFile(filepath.Join("testdata", file))
	if err != nil {
		t.Fatalf("unable to load testdata %s, %v", file, err)
	}
	return data
}

// SaveGolden stores contents as testdata/goldfile, creating testdata if
// needed.
func SaveGolden(t testing.TB, goldfile string, contents []byte) {
	t.Helper()
	if _, err := os.Stat("testdata"); os.IsNotExist(err) {
		if err := os.Mkdir("testdata", 0700); err != nil {
			t.Fatalf("unable to make testdata directory %v", err)
		}
	}

	fp := filepath.Join("testdata", goldfile)
	if err := ioutil.WriteFile(fp, contents, 0600); err != nil {
		t.Fatalf("unable to write golden file %s, %v", goldfile, err)
	}
}

// CompareGolden checks actual against testdata/goldfile, reporting a test
// error naming tname on mismatch.  Run with -update to accept the current
// output, in which case it always returns true.
func CompareGolden(t testing.TB, tname string, goldfile string, actual []byte) bool {
	t.Helper()

	if updateGolden {
		SaveGolden(t, goldfile, actual)
	}
	expected := LoadTestdata(t, goldfile)
	if !bytes.Equal(actual, expected) {
		t.Errorf("%v: got: [%v] expecting: [%v]", tname, string(actual), string(expected))
		return false
	}
	return true
}
