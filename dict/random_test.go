package dict

import (
	"strconv"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestGetRandomKeyEmpty(t *testing.T) {
	d := newTestDict()
	qt.Assert(t, qt.IsNil(d.GetRandomKey()))

	qt.Assert(t, qt.IsNil(d.Add("a", 1)))
	qt.Assert(t, qt.IsNil(d.Delete("a")))
	qt.Assert(t, qt.IsNil(d.GetRandomKey()))
}

func TestGetRandomKeyReturnsLiveEntries(t *testing.T) {
	for _, rehashing := range []bool{false, true} {
		d := fillTestDict(t, 10)
		completeRehash(d)
		if rehashing {
			qt.Assert(t, qt.IsNil(d.Expand(1024)))
		}

		counts := map[string]int{}
		for i := 0; i < 2000; i++ {
			// keep the rehash from finishing in the rehashing case
			if rehashing && !d.IsRehashing() {
				qt.Assert(t, qt.IsNil(d.Expand(d.ht[0].size*2)))
			}
			de := d.GetRandomKey()
			qt.Assert(t, qt.IsNotNil(de))
			qt.Assert(t, qt.Equals(d.Find(de.Key()), de))
			counts[de.Key()]++
		}
		qt.Assert(t, qt.HasLen(counts, 10))
	}
}

func TestGetSomeKeys(t *testing.T) {
	d := newTestDict()
	qt.Assert(t, qt.HasLen(d.GetSomeKeys(5), 0))

	for i := 0; i < 100; i++ {
		qt.Assert(t, qt.IsNil(d.Add(strconv.Itoa(i), i)))
	}
	completeRehash(d)
	qt.Assert(t, qt.HasLen(d.GetSomeKeys(0), 0))

	for _, count := range []int{1, 10, 50, 100, 500} {
		des := d.GetSomeKeys(count)
		want := count
		if want > 100 {
			want = 100
		}
		qt.Assert(t, qt.IsTrue(len(des) <= want), qt.Commentf("count %d got %d", count, len(des)))
		qt.Assert(t, qt.IsTrue(len(des) > 0))

		distinct := map[string]bool{}
		for _, de := range des {
			qt.Assert(t, qt.IsFalse(distinct[de.Key()]), qt.Commentf("duplicate %s", de.Key()))
			distinct[de.Key()] = true
			qt.Assert(t, qt.Equals(d.Find(de.Key()), de))
		}
	}
}

func TestGetSomeKeysWhileRehashing(t *testing.T) {
	grow := fillTestDict(t, 100)
	completeRehash(grow)
	qt.Assert(t, qt.IsNil(grow.Expand(1024)))

	// resizing disabled so that the deletes leave the big table alone
	shrink := fillTestDict(t, 100)
	completeRehash(shrink)
	shrink.Config().DisableResize()
	for i := 10; i < 100; i++ {
		qt.Assert(t, qt.IsNil(shrink.Delete("k"+strconv.Itoa(i))))
	}
	completeRehash(shrink)
	qt.Assert(t, qt.IsNil(shrink.Expand(16)))
	qt.Assert(t, qt.IsTrue(shrink.ht[1].size < shrink.ht[0].size))

	for _, d := range []*Dict[string, int]{grow, shrink} {
		qt.Assert(t, qt.IsTrue(d.IsRehashing()))
		des := d.GetSomeKeys(20)
		qt.Assert(t, qt.IsTrue(len(des) > 0))
		qt.Assert(t, qt.IsTrue(int64(len(des)) <= d.Size()))
		distinct := map[*Entry[string, int]]bool{}
		for _, de := range des {
			qt.Assert(t, qt.IsFalse(distinct[de]))
			distinct[de] = true
			qt.Assert(t, qt.IsNotNil(d.Find(de.Key())))
		}
	}
}
