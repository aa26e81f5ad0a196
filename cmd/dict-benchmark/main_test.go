package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"golang.org/x/exp/rand"

	"github.com/pengdafu/redis-dict/dict"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunPrintsStats(t *testing.T) {
	for _, hash := range []string{"siphash", "xxhash"} {
		t.Run(hash, func(t *testing.T) {
			out, err := execute(t, "--count", "300", "--hash", hash, "--seed", "7", "--rehash-ms", "1")
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.StringContains(out, "Hash table 0 stats (main hash table):"))
			qt.Assert(t, qt.StringContains(out, "number of elements: 300"))
		})
	}
}

func TestRunWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.yaml")
	err := os.WriteFile(path, []byte("initial_size: 16\nmin_fill_percent: 5\n"), 0o644)
	qt.Assert(t, qt.IsNil(err))

	out, err := execute(t, "--count", "100", "--config", path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(out, "number of elements: 100"))
}

func TestRunErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte("initial_size: 3\n"), 0o644)))

	_, err := execute(t, "--config", path)
	qt.Assert(t, qt.ErrorIs(err, dict.ErrInvalidConfig))

	_, err = execute(t, "--hash", "md5")
	qt.Assert(t, qt.ErrorMatches(err, `unknown hash function "md5"`))

	_, err = execute(t, "--count", "0")
	qt.Assert(t, qt.IsNotNil(err))

	out, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "Error:")))
}

func TestWorkloadReportsFailures(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	d := dict.Create(dict.TypeHeapStringCopyKey[int64](), nil)
	qt.Assert(t, qt.IsNil(d.Add("0", 0)))
	err := workload(d, 10, 1, rnd)
	qt.Assert(t, qt.ErrorIs(err, dict.ErrDuplicateKey))
	qt.Assert(t, qt.ErrorMatches(err, `Inserting: add 0: dict: key already exists`))

	// stored keys no longer match the ones looked up
	typ := dict.TypeHeapStringCopyKey[int64]()
	typ.KeyDup = func(_ interface{}, key string) string { return key + "x" }
	err = workload(dict.Create(typ, nil), 10, 1, rnd)
	qt.Assert(t, qt.ErrorMatches(err, `Linear access of existing elements: key 0 not found`))
}
