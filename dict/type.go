package dict

import (
	"strings"

	"github.com/pengdafu/redis-dict/util"
)

// Type is the key/value policy of a dict. HashFunction is required, every
// other hook is optional:
//   - without KeyDup/ValDup the dict stores the reference it was given;
//   - without KeyCompare keys are compared with ==;
//   - destructors run once for every key or value leaving the dict, even when
//     the dict never duplicated it.
type Type[K comparable, V any] struct {
	HashFunction  func(key K) uint64
	KeyDup        func(privData interface{}, key K) K
	ValDup        func(privData interface{}, obj V) V
	KeyCompare    func(privData interface{}, key1, key2 K) bool
	KeyDestructor func(privData interface{}, key K)
	ValDestructor func(privData interface{}, obj V)
}

func stringHash(key string) uint64 {
	return GenHashFunction(util.String2Bytes(key))
}

func stringCompare(_ interface{}, key1, key2 string) bool {
	return key1 == key2
}

func stringDup(_ interface{}, s string) string {
	return strings.Clone(s)
}

// TypeHeapStringCopyKey copies string keys on insert and leaves values alone.
func TypeHeapStringCopyKey[V any]() *Type[string, V] {
	return &Type[string, V]{
		HashFunction: stringHash,
		KeyDup:       stringDup,
		KeyCompare:   stringCompare,
	}
}

// TypeHeapStrings stores both keys and values by reference.
func TypeHeapStrings() *Type[string, string] {
	return &Type[string, string]{
		HashFunction: stringHash,
		KeyCompare:   stringCompare,
	}
}

// TypeHeapStringCopyKeyValue copies both keys and values on insert.
func TypeHeapStringCopyKeyValue() *Type[string, string] {
	return &Type[string, string]{
		HashFunction: stringHash,
		KeyDup:       stringDup,
		ValDup:       stringDup,
		KeyCompare:   stringCompare,
	}
}

// TypeCaseStringKey treats keys that differ only in ASCII case as equal, the
// way command names are looked up.
func TypeCaseStringKey[V any]() *Type[string, V] {
	return &Type[string, V]{
		HashFunction: func(key string) uint64 {
			return GenCaseHashFunction(util.String2Bytes(key))
		},
		KeyDup: stringDup,
		KeyCompare: func(_ interface{}, key1, key2 string) bool {
			return util.BytesCaseCmp(util.String2Bytes(key1), util.String2Bytes(key2))
		},
	}
}
