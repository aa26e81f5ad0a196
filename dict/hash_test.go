package dict

import (
	"bytes"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/go-quicktest/qt"

	"github.com/pengdafu/redis-dict/util"
)

func withSeed(t *testing.T, seed []byte) {
	old := GetHashFunctionSeed()
	SetHashFunctionSeed(seed)
	t.Cleanup(func() { SetHashFunctionSeed(old) })
}

func TestHashFunctionSeed(t *testing.T) {
	withSeed(t, bytes.Repeat([]byte{1}, 16))
	buf := []byte("hello world")
	h1 := GenHashFunction(buf)
	f1 := GenFastHashFunction(buf)
	qt.Assert(t, qt.Equals(GenHashFunction(buf), h1))

	seed := GetHashFunctionSeed()
	qt.Assert(t, qt.DeepEquals(seed, bytes.Repeat([]byte{1}, 16)))
	seed[0] = 9
	qt.Assert(t, qt.Equals(GenHashFunction(buf), h1))

	SetHashFunctionSeed(util.GetRandomBytes(16))
	qt.Assert(t, qt.Not(qt.Equals(GenHashFunction(buf), h1)))
	qt.Assert(t, qt.Not(qt.Equals(GenFastHashFunction(buf), f1)))
}

func TestShortSeedIsPadded(t *testing.T) {
	withSeed(t, []byte{1, 2, 3})
	qt.Assert(t, qt.DeepEquals(GetHashFunctionSeed(), []byte{1, 2, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}))
}

func TestGenCaseHashFunction(t *testing.T) {
	withSeed(t, []byte("0123456789abcdef"))
	qt.Assert(t, qt.Equals(GenCaseHashFunction([]byte("Hello World")), GenCaseHashFunction([]byte("hELLO wORLD"))))
	qt.Assert(t, qt.Equals(GenCaseHashFunction([]byte("hello world")), GenHashFunction([]byte("hello world"))))

	// longer than one lowering chunk
	long := bytes.Repeat([]byte("AbC"), 100)
	qt.Assert(t, qt.Equals(GenCaseHashFunction(long), GenHashFunction(bytes.ToLower(long))))
	qt.Assert(t, qt.Not(qt.Equals(GenCaseHashFunction([]byte("a")), GenCaseHashFunction([]byte("b")))))
}

func TestIntHashFunction(t *testing.T) {
	qt.Assert(t, qt.Equals(IntHashFunction(42), IntHashFunction(42)))
	qt.Assert(t, qt.Not(qt.Equals(IntHashFunction(42), IntHashFunction(43))))
}

func TestGenFastHashFunctionIsSeeded(t *testing.T) {
	buf := []byte("some key")
	withSeed(t, []byte("0123456789abcdef"))
	h1 := GenFastHashFunction(buf)
	qt.Assert(t, qt.Equals(GenFastHashFunction(buf), h1))
	qt.Assert(t, qt.Not(qt.Equals(h1, xxhash.Sum64(buf))))

	SetHashFunctionSeed([]byte("fedcba9876543210"))
	qt.Assert(t, qt.Not(qt.Equals(GenFastHashFunction(buf), h1)))

	allocs := testing.AllocsPerRun(100, func() {
		GenFastHashFunction(buf)
	})
	qt.Assert(t, qt.Equals(allocs, 0.0))
}
