package dict

import "math/bits"

type (
	ScanFunc[K comparable, V any]       func(privData interface{}, de *Entry[K, V])
	ScanBucketFunc[K comparable, V any] func(privData interface{}, bucketRef **Entry[K, V])
)

// Scan visits the bucket selected by cursor v (in both generations while
// rehashing) and returns the cursor of the next call. A scan starts at 0 and
// is complete when 0 is returned again.
//
// The cursor is incremented on its reversed bits, so the high bits are the
// ones that change first. Since tables are powers of two, a bucket of a
// smaller table maps to a contiguous run of cursors in a larger one and the
// other way round, so a resize between two calls never makes the scan skip
// buckets it has not visited yet:
//
//   - every element present from the first to the last call is returned at
//     least once;
//   - elements may be returned more than once when the table shrinks;
//   - elements added or removed during the scan may or may not be returned.
//
// fn may delete the entry it is given. bucketFn, if set, gets the address of
// each visited bucket head before its entries are visited.
func (d *Dict[K, V]) Scan(v uint64, fn ScanFunc[K, V], bucketFn ScanBucketFunc[K, V], privData interface{}) uint64 {
	if d.Size() == 0 {
		return 0
	}

	// callbacks may delete entries; migrations would move the chains under us
	d.iterators++
	defer func() { d.iterators-- }()

	if !d.IsRehashing() {
		t0 := &d.ht[0]
		m0 := t0.sizeMask

		d.scanBucket(t0, v&m0, fn, bucketFn, privData)

		// set the unmasked bits so the reversed increment carries into
		// the masked ones
		v |= ^m0
		v = bits.Reverse64(v)
		v++
		v = bits.Reverse64(v)
		return v
	}

	t0, t1 := &d.ht[0], &d.ht[1]
	// t0 is the smaller table
	if t0.size > t1.size {
		t0, t1 = t1, t0
	}
	m0, m1 := t0.sizeMask, t1.sizeMask

	d.scanBucket(t0, v&m0, fn, bucketFn, privData)

	// walk every bucket of the larger table the small bucket expands to
	for {
		d.scanBucket(t1, v&m1, fn, bucketFn, privData)

		v |= ^m1
		v = bits.Reverse64(v)
		v++
		v = bits.Reverse64(v)

		// done once the bits the two masks disagree on wrap around
		if v&(m0^m1) == 0 {
			break
		}
	}
	return v
}

func (d *Dict[K, V]) scanBucket(ht *dictHt[K, V], idx uint64, fn ScanFunc[K, V], bucketFn ScanBucketFunc[K, V], privData interface{}) {
	if bucketFn != nil {
		bucketFn(privData, &ht.table[idx])
	}
	de := ht.table[idx]
	if fn == nil {
		return
	}
	for de != nil {
		next := de.next
		fn(privData, de)
		de = next
	}
}
