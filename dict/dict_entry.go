package dict

import "math"

type valueKind uint8

const (
	kindVal valueKind = iota
	kindS64
	kindU64
	kindDouble
)

// Entry is one node of a bucket chain. The value is a tagged union: either a
// policy-managed V or one of the raw numeric forms.
type Entry[K comparable, V any] struct {
	key K
	v   struct {
		val  V
		bits uint64
		kind valueKind
	}
	next *Entry[K, V]
}

func (de *Entry[K, V]) Key() K {
	return de.key
}

func (de *Entry[K, V]) Val() V {
	return de.v.val
}

func (de *Entry[K, V]) SignedIntegerVal() int64 {
	return int64(de.v.bits)
}

func (de *Entry[K, V]) UnsignedIntegerVal() uint64 {
	return de.v.bits
}

func (de *Entry[K, V]) DoubleVal() float64 {
	return math.Float64frombits(de.v.bits)
}

// SetSignedIntegerVal stores s64 in place of the value. Numeric values are
// never passed to ValDup or ValDestructor.
func (de *Entry[K, V]) SetSignedIntegerVal(s64 int64) {
	de.clearVal()
	de.v.bits = uint64(s64)
	de.v.kind = kindS64
}

func (de *Entry[K, V]) SetUnsignedIntegerVal(u64 uint64) {
	de.clearVal()
	de.v.bits = u64
	de.v.kind = kindU64
}

func (de *Entry[K, V]) SetDoubleVal(d float64) {
	de.clearVal()
	de.v.bits = math.Float64bits(d)
	de.v.kind = kindDouble
}

// HoldsVal reports whether the entry currently carries a V rather than a
// numeric value.
func (de *Entry[K, V]) HoldsVal() bool {
	return de.v.kind == kindVal
}

func (de *Entry[K, V]) clearVal() {
	var zero V
	de.v.val = zero
}
