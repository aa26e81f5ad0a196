package dict

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
)

var (
	dictSeedKey    = make([]byte, 16)
	seedK0, seedK1 uint64
	// fastSeed is the 64 bit xxhash seed derived from dictSeedKey.
	fastSeed = xxhash.Sum64(dictSeedKey)
)

// SetHashFunctionSeed sets the process wide seed of the default hash
// functions. It must be called before any dict is populated and never again.
func SetHashFunctionSeed(seed []byte) {
	dictSeedKey = make([]byte, 16)
	copy(dictSeedKey, seed)
	seedK0 = binary.LittleEndian.Uint64(dictSeedKey[:8])
	seedK1 = binary.LittleEndian.Uint64(dictSeedKey[8:])
	fastSeed = xxhash.Sum64(dictSeedKey)
}

func GetHashFunctionSeed() []byte {
	seed := make([]byte, len(dictSeedKey))
	copy(seed, dictSeedKey)
	return seed
}

// GenHashFunction is SipHash-2-4 keyed with the process seed.
func GenHashFunction(buf []byte) uint64 {
	return siphash.Hash(seedK0, seedK1, buf)
}

// GenCaseHashFunction hashes buf as if it were ASCII lowercase.
func GenCaseHashFunction(buf []byte) uint64 {
	h := siphash.New(dictSeedKey)
	var chunk [64]byte
	for len(buf) > 0 {
		n := copy(chunk[:], buf)
		for i := 0; i < n; i++ {
			if c := chunk[i]; c >= 'A' && c <= 'Z' {
				chunk[i] = c + ('a' - 'A')
			}
		}
		h.Write(chunk[:n])
		buf = buf[n:]
	}
	return h.Sum64()
}

// GenFastHashFunction is a seeded xxhash64. Cheaper than GenHashFunction but
// not meant for keys chosen by an adversary. It does not allocate.
func GenFastHashFunction(buf []byte) uint64 {
	var d xxhash.Digest
	d.ResetWithSeed(fastSeed)
	_, _ = d.Write(buf)
	return d.Sum64()
}

func IntHashFunction(key uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], key)
	return GenFastHashFunction(b[:])
}
