package dict

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/pengdafu/redis-dict/util"
)

const (
	maxTableSize = int64(1) << 62
	// empty buckets a single rehash step may skip, per bucket requested
	rehashEmptyVisits = 10
	// buckets migrated between two deadline checks in RehashMilliseconds
	rehashBatch = 100
)

// Dict is a chained hash table with incremental rehashing. It keeps two
// table generations: ht[0] is the active one and ht[1] only holds a table
// while ht[0] is being migrated into it. Every lookup or mutation moves one
// bucket, so the cost of a resize is spread over normal traffic.
//
// A Dict is not safe for concurrent use.
type Dict[K comparable, V any] struct {
	typ       *Type[K, V]
	privData  interface{}
	cfg       *Config
	ht        [2]dictHt[K, V]
	rehashIdx int64  // -1 表示没有进行rehash
	iterators uint64 // safe iterators and scans pausing the rehash
	version   uint64
	rand      *rand.Rand
}

func Create[K comparable, V any](typ *Type[K, V], privData interface{}) *Dict[K, V] {
	return CreateWithConfig(typ, privData, DefaultConfig())
}

// CreateWithConfig creates a dict driven by cfg. cfg may be shared between
// dicts and is kept, never copied. A cfg built by hand is normalized in
// place so that every table size stays a power of two.
func CreateWithConfig[K comparable, V any](typ *Type[K, V], privData interface{}, cfg *Config) *Dict[K, V] {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.normalize()
	d := new(Dict[K, V])
	d.init(typ, privData, cfg)
	return d
}

func (d *Dict[K, V]) init(typ *Type[K, V], privData interface{}, cfg *Config) {
	d.ht[0].reset()
	d.ht[1].reset()

	d.typ = typ
	d.privData = privData
	d.cfg = cfg
	d.rehashIdx = -1
	d.iterators = 0

	seed := cfg.RandSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	d.rand = rand.New(rand.NewSource(seed))
}

func (d *Dict[K, V]) Size() int64 {
	return d.ht[0].used + d.ht[1].used
}

// Slots is the bucket count of both generations.
func (d *Dict[K, V]) Slots() int64 {
	return d.ht[0].size + d.ht[1].size
}

func (d *Dict[K, V]) IsRehashing() bool {
	return d.rehashIdx != -1
}

// RehashIdx is the next ht[0] bucket awaiting migration, or -1.
func (d *Dict[K, V]) RehashIdx() int64 {
	return d.rehashIdx
}

func (d *Dict[K, V]) Config() *Config {
	return d.cfg
}

func (d *Dict[K, V]) GetHash(key K) uint64 {
	return d.typ.HashFunction(key)
}

func (d *Dict[K, V]) hashKey(key K) uint64 {
	return d.typ.HashFunction(key)
}

func (d *Dict[K, V]) compareKeys(key1, key2 K) bool {
	if d.typ.KeyCompare == nil {
		return key1 == key2
	}
	return d.typ.KeyCompare(d.privData, key1, key2)
}

// SetKey stores key into de, duplicating it when the policy says so.
func (d *Dict[K, V]) SetKey(de *Entry[K, V], key K) {
	if d.typ.KeyDup != nil {
		de.key = d.typ.KeyDup(d.privData, key)
	} else {
		de.key = key
	}
}

// SetVal stores obj into de, duplicating it when the policy says so. The
// previous value is not destroyed; see Replace.
func (d *Dict[K, V]) SetVal(de *Entry[K, V], obj V) {
	if d.typ.ValDup != nil {
		de.v.val = d.typ.ValDup(d.privData, obj)
	} else {
		de.v.val = obj
	}
	de.v.bits = 0
	de.v.kind = kindVal
}

func (d *Dict[K, V]) FreeKey(de *Entry[K, V]) {
	if d.typ.KeyDestructor != nil {
		d.typ.KeyDestructor(d.privData, de.key)
	}
}

func (d *Dict[K, V]) FreeVal(de *Entry[K, V]) {
	if de.v.kind == kindVal && d.typ.ValDestructor != nil {
		d.typ.ValDestructor(d.privData, de.v.val)
	}
}

// Expand starts a rehash into a table of at least size buckets, or allocates
// the first table. It does not consult the resize toggle.
func (d *Dict[K, V]) Expand(size int64) error {
	if d.IsRehashing() {
		return ErrRehashing
	}
	if size < d.ht[0].used {
		size = d.ht[0].used
	}
	realSize, ok := d.nextPower(size)
	if !ok {
		return ErrOutOfMemory
	}
	if realSize == d.ht[0].size {
		return ErrSameSize
	}

	n := newDictHt[K, V](realSize)
	d.version++
	if d.ht[0].table == nil {
		d.ht[0] = n
		return nil
	}
	d.ht[1] = n
	d.rehashIdx = 0
	return nil
}

// Resize shrinks or grows the table to the smallest power of two holding all
// elements. Like Expand it ignores the resize toggle.
func (d *Dict[K, V]) Resize() error {
	if d.IsRehashing() {
		return ErrRehashing
	}
	minimal := d.ht[0].used
	if minimal < d.cfg.InitialSize {
		minimal = d.cfg.InitialSize
	}
	return d.Expand(minimal)
}

func (d *Dict[K, V]) nextPower(size int64) (int64, bool) {
	if size > maxTableSize {
		return 0, false
	}
	i := d.cfg.InitialSize
	for i < size {
		i *= 2
	}
	return i, true
}

func (d *Dict[K, V]) expandIfNeeded() error {
	if d.IsRehashing() {
		return nil
	}

	if d.ht[0].size == 0 {
		return d.Expand(d.cfg.InitialSize)
	}

	if d.ht[0].used >= d.ht[0].size && (d.cfg.CanResize() || d.ht[0].used/d.ht[0].size > d.cfg.ForceResizeRatio) {
		return d.Expand(d.ht[0].used * 2)
	}
	return nil
}

func (d *Dict[K, V]) shrinkIfNeeded() {
	if d.IsRehashing() || !d.cfg.CanResize() {
		return
	}
	size := d.ht[0].size
	if size > d.cfg.InitialSize && d.ht[0].used*100/size < d.cfg.MinFillPercent {
		_ = d.Resize()
	}
}

// keyIndex returns the bucket a new key goes to, or -1 and the entry already
// holding the key. While rehashing the index refers to ht[1].
func (d *Dict[K, V]) keyIndex(key K, hash uint64) (int64, *Entry[K, V]) {
	if err := d.expandIfNeeded(); err != nil {
		// a half done resize cannot be rolled back
		panic(err)
	}
	var idx uint64
	for table := 0; table <= 1; table++ {
		idx = hash & d.ht[table].sizeMask
		for he := d.ht[table].table[idx]; he != nil; he = he.next {
			if key == he.key || d.compareKeys(key, he.key) {
				return -1, he
			}
		}
		if !d.IsRehashing() {
			break
		}
	}
	return int64(idx), nil
}

func (d *Dict[K, V]) rehashStep() {
	if d.iterators == 0 {
		d.Rehash(1)
	}
}

// Rehash migrates up to n non-empty buckets from ht[0] to ht[1]. At most
// n*10 empty buckets are skipped per call. It reports whether keys are still
// left to move.
func (d *Dict[K, V]) Rehash(n int) bool {
	emptyVisits := n * rehashEmptyVisits
	if !d.IsRehashing() {
		return false
	}

	for ; n > 0 && d.ht[0].used != 0; n-- {
		for d.ht[0].table[d.rehashIdx] == nil {
			d.rehashIdx++
			emptyVisits--
			if emptyVisits == 0 {
				return true
			}
		}
		de := d.ht[0].table[d.rehashIdx]
		for de != nil {
			nextDe := de.next
			h := d.hashKey(de.key) & d.ht[1].sizeMask
			de.next = d.ht[1].table[h]
			d.ht[1].table[h] = de
			d.ht[0].used--
			d.ht[1].used++
			de = nextDe
		}
		d.ht[0].table[d.rehashIdx] = nil
		d.rehashIdx++
		d.version++
	}

	if d.ht[0].used == 0 {
		d.ht[0] = d.ht[1]
		d.ht[1].reset()
		d.rehashIdx = -1
		d.version++
		return false
	}
	return true
}

// RehashMilliseconds rehashes in batches of 100 buckets until done or until
// ms milliseconds have passed, and returns the number of buckets requested.
// It does nothing while a safe iterator is open.
func (d *Dict[K, V]) RehashMilliseconds(ms int) int {
	if d.iterators > 0 {
		return 0
	}
	start := util.GetMonotonicMs()
	rehashes := 0
	for d.Rehash(rehashBatch) {
		rehashes += rehashBatch
		if util.GetMonotonicMs()-start > int64(ms) {
			break
		}
	}
	return rehashes
}

// AddRaw inserts a value-less entry for key and returns it. When key is
// already present nothing changes and the existing entry is returned as the
// second result. The caller is expected to set the value.
func (d *Dict[K, V]) AddRaw(key K) (entry, existing *Entry[K, V]) {
	if d.IsRehashing() {
		d.rehashStep()
	}

	idx, existing := d.keyIndex(key, d.hashKey(key))
	if existing != nil {
		return nil, existing
	}

	ht := &d.ht[0]
	if d.IsRehashing() {
		ht = &d.ht[1]
	}
	entry = new(Entry[K, V])
	entry.next = ht.table[idx]
	ht.table[idx] = entry
	ht.used++
	d.version++

	d.SetKey(entry, key)
	return entry, nil
}

func (d *Dict[K, V]) Add(key K, val V) error {
	entry, _ := d.AddRaw(key)
	if entry == nil {
		return ErrDuplicateKey
	}
	d.SetVal(entry, val)
	return nil
}

// AddOrFind returns the entry of key, adding an empty one if needed.
func (d *Dict[K, V]) AddOrFind(key K) *Entry[K, V] {
	entry, existing := d.AddRaw(key)
	if entry != nil {
		return entry
	}
	return existing
}

// Replace sets key to val, adding the key if needed. It returns true when the
// key was added and false when an existing value was overwritten. The old
// value is destroyed only after the new one is set, which matters for
// reference counted values where val may be the value already stored.
func (d *Dict[K, V]) Replace(key K, val V) bool {
	entry, existing := d.AddRaw(key)
	if entry != nil {
		d.SetVal(entry, val)
		return true
	}

	old := *existing
	d.SetVal(existing, val)
	d.FreeVal(&old)
	return false
}

func (d *Dict[K, V]) genericDelete(key K, noFree bool) *Entry[K, V] {
	if d.Size() == 0 {
		return nil
	}
	if d.IsRehashing() {
		d.rehashStep()
	}

	h := d.hashKey(key)
	for table := 0; table <= 1; table++ {
		idx := h & d.ht[table].sizeMask
		var prevHe *Entry[K, V]
		for he := d.ht[table].table[idx]; he != nil; he = he.next {
			if key == he.key || d.compareKeys(key, he.key) {
				if prevHe != nil {
					prevHe.next = he.next
				} else {
					d.ht[table].table[idx] = he.next
				}
				if !noFree {
					d.FreeKey(he)
					d.FreeVal(he)
				}
				d.ht[table].used--
				d.version++
				return he
			}
			prevHe = he
		}
		if !d.IsRehashing() {
			break
		}
	}
	return nil
}

// Delete removes key, running the policy destructors.
func (d *Dict[K, V]) Delete(key K) error {
	if d.genericDelete(key, false) == nil {
		return ErrNotFound
	}
	d.shrinkIfNeeded()
	return nil
}

// Unlink removes key without destroying it and hands the entry to the caller,
// who must pass it to FreeUnlinkedEntry once done with it. Returns nil when
// the key is absent.
func (d *Dict[K, V]) Unlink(key K) *Entry[K, V] {
	he := d.genericDelete(key, true)
	if he != nil {
		d.shrinkIfNeeded()
	}
	return he
}

// FreeUnlinkedEntry runs the destructors of an entry returned by Unlink. It
// accepts nil.
func (d *Dict[K, V]) FreeUnlinkedEntry(he *Entry[K, V]) {
	if he == nil {
		return
	}
	d.FreeKey(he)
	d.FreeVal(he)
}

func (d *Dict[K, V]) Find(key K) *Entry[K, V] {
	if d.Size() == 0 {
		return nil
	}
	if d.IsRehashing() {
		d.rehashStep()
	}

	h := d.hashKey(key)
	for table := 0; table <= 1; table++ {
		idx := h & d.ht[table].sizeMask
		for he := d.ht[table].table[idx]; he != nil; he = he.next {
			if key == he.key || d.compareKeys(key, he.key) {
				return he
			}
		}
		if !d.IsRehashing() {
			return nil
		}
	}
	return nil
}

func (d *Dict[K, V]) FetchValue(key K) (V, bool) {
	he := d.Find(key)
	if he == nil {
		var zero V
		return zero, false
	}
	return he.Val(), true
}

// FindEntryRefByPtrAndHash returns the link pointing at the entry whose key
// is identical to oldKey, given its precomputed hash. KeyCompare is not
// consulted and no rehash step is performed.
func (d *Dict[K, V]) FindEntryRefByPtrAndHash(oldKey K, hash uint64) **Entry[K, V] {
	if d.Size() == 0 {
		return nil
	}
	for table := 0; table <= 1; table++ {
		idx := hash & d.ht[table].sizeMask
		ref := &d.ht[table].table[idx]
		for *ref != nil {
			if (*ref).key == oldKey {
				return ref
			}
			ref = &(*ref).next
		}
		if !d.IsRehashing() {
			return nil
		}
	}
	return nil
}

func (d *Dict[K, V]) clear(ht *dictHt[K, V], callback func(*Dict[K, V])) {
	for i := int64(0); i < ht.size && ht.used > 0; i++ {
		if callback != nil && i&65535 == 0 {
			callback(d)
		}
		he := ht.table[i]
		for he != nil {
			nextHe := he.next
			d.FreeKey(he)
			d.FreeVal(he)
			ht.used--
			he = nextHe
		}
	}
	ht.reset()
}

// Empty destroys every entry and drops both tables but keeps the dict usable.
// callback, if set, is called every 65536 buckets.
func (d *Dict[K, V]) Empty(callback func(*Dict[K, V])) {
	d.clear(&d.ht[0], callback)
	d.clear(&d.ht[1], callback)
	d.rehashIdx = -1
	d.version++
}

// Release destroys every entry. The dict must not be used afterwards.
func (d *Dict[K, V]) Release() {
	d.Empty(nil)
	d.privData = nil
}
