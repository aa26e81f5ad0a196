package util

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestStringBytesRoundTrip(t *testing.T) {
	b := String2Bytes("hello")
	qt.Assert(t, qt.HasLen(b, 5))
	qt.Assert(t, qt.Equals(cap(b), 5))
	qt.Assert(t, qt.Equals(Bytes2String(b), "hello"))
	qt.Assert(t, qt.HasLen(String2Bytes(""), 0))
}

func TestBytesCmp(t *testing.T) {
	tests := []struct {
		a, b        string
		equal       bool
		equalNoCase bool
	}{
		{"", "", true, true},
		{"abc", "abc", true, true},
		{"abc", "ABC", false, true},
		{"Hello-World_1", "hELLO-wORLD_1", false, true},
		{"abc", "abd", false, false},
		{"abc", "ab", false, false},
		{"[", "{", false, false},
	}
	for _, test := range tests {
		a, b := []byte(test.a), []byte(test.b)
		qt.Check(t, qt.Equals(BytesCmp(a, b), test.equal), qt.Commentf("%q %q", test.a, test.b))
		qt.Check(t, qt.Equals(BytesCaseCmp(a, b), test.equalNoCase), qt.Commentf("%q %q", test.a, test.b))
	}
}

func TestGetRandomBytes(t *testing.T) {
	a, b := GetRandomBytes(16), GetRandomBytes(16)
	qt.Assert(t, qt.HasLen(a, 16))
	qt.Assert(t, qt.Not(qt.DeepEquals(a, b)))
	qt.Assert(t, qt.HasLen(GetRandomBytes(0), 0))
}
