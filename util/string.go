package util

import (
	"crypto/rand"
	"unsafe"
)

// String2Bytes returns the bytes backing str without copying. The result
// must not be modified.
func String2Bytes(str string) []byte {
	x := *(*[2]uintptr)(unsafe.Pointer(&str))
	b := [3]uintptr{x[0], x[1], x[1]}
	return *(*[]byte)(unsafe.Pointer(&b))
}

func Bytes2String(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

func BytesCmp(key1, key2 []byte) bool {
	if len(key1) != len(key2) {
		return false
	}

	for i := 0; i < len(key2); i++ {
		if key1[i] != key2[i] {
			return false
		}
	}
	return true
}

// BytesCaseCmp compares ASCII case-insensitively.
func BytesCaseCmp(key1, key2 []byte) bool {
	if len(key1) != len(key2) {
		return false
	}

	for i := 0; i < len(key2); i++ {
		if toLower(key1[i]) != toLower(key2[i]) {
			return false
		}
	}
	return true
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// GetRandomBytes is used for hash seeds.
func GetRandomBytes(needLen int) []byte {
	ret := make([]byte, needLen)
	if _, err := rand.Read(ret); err != nil {
		panic(err)
	}
	return ret
}
