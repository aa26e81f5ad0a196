package dict

import (
	"strconv"
	"testing"
)

func benchKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

func BenchmarkAdd(b *testing.B) {
	keys := benchKeys(1 << 16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; {
		d := Create(TypeHeapStringCopyKey[int](), nil)
		for j := 0; j < len(keys) && i < b.N; j, i = j+1, i+1 {
			_ = d.Add(keys[j], j)
		}
	}
}

func BenchmarkFind(b *testing.B) {
	for _, hash := range []string{"siphash", "xxhash"} {
		b.Run(hash, func(b *testing.B) {
			typ := TypeHeapStringCopyKey[int]()
			if hash == "xxhash" {
				typ.HashFunction = func(key string) uint64 { return GenFastHashFunction([]byte(key)) }
			}
			d := Create(typ, nil)
			keys := benchKeys(1 << 16)
			for j, k := range keys {
				_ = d.Add(k, j)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if d.Find(keys[i&(len(keys)-1)]) == nil {
					b.Fatal("missing key")
				}
			}
		})
	}
}

func BenchmarkGetRandomKey(b *testing.B) {
	d := Create(TypeHeapStringCopyKey[int](), nil)
	for j, k := range benchKeys(1 << 14) {
		_ = d.Add(k, j)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.GetRandomKey()
	}
}
