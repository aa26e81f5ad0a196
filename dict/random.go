package dict

// GetRandomKey returns a random entry, or nil when the dict is empty. A
// random non-empty bucket is picked first and then a random entry of its
// chain, so entries on long chains are less likely to be returned.
func (d *Dict[K, V]) GetRandomKey() *Entry[K, V] {
	if d.Size() == 0 {
		return nil
	}
	if d.IsRehashing() {
		d.rehashStep()
	}

	var he *Entry[K, V]
	if d.IsRehashing() {
		s0 := d.ht[0].size
		span := uint64(d.Slots() - d.rehashIdx)
		for he == nil {
			// buckets below rehashIdx in ht[0] are known to be empty
			h := d.rehashIdx + int64(d.rand.Uint64()%span)
			if h >= s0 {
				he = d.ht[1].table[h-s0]
			} else {
				he = d.ht[0].table[h]
			}
		}
	} else {
		m := d.ht[0].sizeMask
		for he == nil {
			he = d.ht[0].table[d.rand.Uint64()&m]
		}
	}

	listLen := 0
	for e := he; e != nil; e = e.next {
		listLen++
	}
	for listEle := d.rand.Intn(listLen); listEle > 0; listEle-- {
		he = he.next
	}
	return he
}

// GetSomeKeys samples up to count entries starting at a random bucket and
// returning whole chains. It is much faster than count calls to GetRandomKey
// but the result is neither uniform nor guaranteed to reach count. The
// returned entries are distinct.
func (d *Dict[K, V]) GetSomeKeys(count int) []*Entry[K, V] {
	if size := d.Size(); int64(count) > size {
		count = int(size)
	}
	if count <= 0 {
		return nil
	}
	maxSteps := count * 10

	for j := 0; j < count; j++ {
		if d.IsRehashing() {
			d.rehashStep()
		} else {
			break
		}
	}

	tables := 1
	if d.IsRehashing() {
		tables = 2
	}
	maxSizeMask := d.ht[0].sizeMask
	if tables > 1 && d.ht[1].sizeMask > maxSizeMask {
		maxSizeMask = d.ht[1].sizeMask
	}

	des := make([]*Entry[K, V], 0, count)
	// a random restart may land on a bucket already drained
	visited := make(map[uint64]struct{})
	i := d.rand.Uint64() & maxSizeMask
	emptyLen := 0
	for len(des) < count && maxSteps > 0 {
		maxSteps--
		for j := 0; j < tables; j++ {
			// ht[0] below rehashIdx is already migrated
			if tables == 2 && j == 0 && i < uint64(d.rehashIdx) {
				// when ht[1] is the smaller table nothing past its end can
				// be found there, so jump to the unmigrated part of ht[0]
				if i >= uint64(d.ht[1].size) {
					i = uint64(d.rehashIdx)
				} else {
					continue
				}
			}
			if i >= uint64(d.ht[j].size) {
				continue
			}
			he := d.ht[j].table[i]
			if _, ok := visited[i<<1|uint64(j)]; ok {
				continue
			}

			if he == nil {
				emptyLen++
				if emptyLen >= 5 && emptyLen > count {
					i = d.rand.Uint64() & maxSizeMask
					emptyLen = 0
				}
				continue
			}
			emptyLen = 0
			visited[i<<1|uint64(j)] = struct{}{}
			for he != nil {
				des = append(des, he)
				if len(des) == count {
					return des
				}
				he = he.next
			}
		}
		i = (i + 1) & maxSizeMask
	}
	return des
}
