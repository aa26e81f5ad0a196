package dict

// Iterator walks a dict bucket by bucket, ht[0] first and ht[1] only while
// rehashing. An unsafe iterator only allows Next on its dict until Release;
// a safe one pauses the incremental rehash so that the caller may Add, Find
// or Delete (including the entry just returned) while iterating.
type Iterator[K comparable, V any] struct {
	d                *Dict[K, V]
	index            int64
	table            int
	safe             bool
	released         bool
	entry, nextEntry *Entry[K, V]
	fingerprint      uint64
}

func (d *Dict[K, V]) GetIterator() *Iterator[K, V] {
	return &Iterator[K, V]{
		d:           d,
		index:       -1,
		fingerprint: d.fingerprint(),
	}
}

func (d *Dict[K, V]) GetSafeIterator() *Iterator[K, V] {
	d.iterators++
	return &Iterator[K, V]{
		d:     d,
		index: -1,
		safe:  true,
	}
}

func (iter *Iterator[K, V]) Next() *Entry[K, V] {
	for {
		if iter.entry == nil {
			ht := &iter.d.ht[iter.table]
			iter.index++
			if iter.index >= ht.size {
				if iter.d.IsRehashing() && iter.table == 0 {
					iter.table++
					iter.index = 0
					ht = &iter.d.ht[1]
				} else {
					break
				}
			}
			iter.entry = ht.table[iter.index]
		} else {
			iter.entry = iter.nextEntry
		}
		if iter.entry != nil {
			// the caller may delete entry before the next call
			iter.nextEntry = iter.entry.next
			return iter.entry
		}
	}
	return nil
}

// Release ends the iteration. For an unsafe iterator it returns
// ErrInvalidIteratorUse if the dict was structurally modified since the
// iterator was created.
func (iter *Iterator[K, V]) Release() error {
	if iter.released {
		return nil
	}
	iter.released = true
	if iter.safe {
		iter.d.iterators--
		return nil
	}
	if iter.fingerprint != iter.d.fingerprint() {
		return ErrInvalidIteratorUse
	}
	return nil
}

// fingerprint folds the table sizes, used counts and the structural version
// into one value. Any insert, removal, migration or resize changes it.
func (d *Dict[K, V]) fingerprint() uint64 {
	integers := [5]uint64{
		uint64(d.ht[0].size),
		uint64(d.ht[0].used),
		uint64(d.ht[1].size),
		uint64(d.ht[1].used),
		d.version,
	}

	// hash(hash(hash(int1)+int2)+int3) ..., Thomas Wang's 64 bit mix
	var hash uint64
	for _, v := range integers {
		hash += v
		hash = (^hash) + (hash << 21)
		hash = hash ^ (hash >> 24)
		hash = (hash + (hash << 3)) + (hash << 8)
		hash = hash ^ (hash >> 14)
		hash = (hash + (hash << 2)) + (hash << 4)
		hash = hash ^ (hash >> 28)
		hash = hash + (hash << 31)
	}
	return hash
}
