package dict

// dictHt is one table generation.
type dictHt[K comparable, V any] struct {
	table    []*Entry[K, V]
	size     int64
	sizeMask uint64
	used     int64
}

func newDictHt[K comparable, V any](size int64) dictHt[K, V] {
	return dictHt[K, V]{
		table:    make([]*Entry[K, V], size),
		size:     size,
		sizeMask: uint64(size - 1),
	}
}

func (ht *dictHt[K, V]) reset() {
	ht.table = nil
	ht.size = 0
	ht.sizeMask = 0
	ht.used = 0
}
