package dict

import (
	"fmt"
	"strings"
)

const statsVectLen = 50

func (d *Dict[K, V]) getStatsHt(buf *strings.Builder, tableID int) {
	ht := &d.ht[tableID]
	if ht.used == 0 {
		buf.WriteString("No stats available for empty dictionaries\n")
		return
	}

	var (
		slots, maxChainLen, totChainLen int64
		clVector                        [statsVectLen]int64
	)
	for i := int64(0); i < ht.size; i++ {
		he := ht.table[i]
		if he == nil {
			clVector[0]++
			continue
		}
		slots++
		chainLen := int64(0)
		for ; he != nil; he = he.next {
			chainLen++
		}
		if chainLen < statsVectLen {
			clVector[chainLen]++
		} else {
			clVector[statsVectLen-1]++
		}
		if chainLen > maxChainLen {
			maxChainLen = chainLen
		}
		totChainLen += chainLen
	}

	name := "main hash table"
	if tableID == 1 {
		name = "rehashing target"
	}
	fmt.Fprintf(buf, "Hash table %d stats (%s):\n", tableID, name)
	fmt.Fprintf(buf, " table size: %d\n", ht.size)
	fmt.Fprintf(buf, " number of elements: %d\n", ht.used)
	fmt.Fprintf(buf, " different slots: %d\n", slots)
	fmt.Fprintf(buf, " max chain length: %d\n", maxChainLen)
	fmt.Fprintf(buf, " avg chain length (counted): %.02f\n", float64(totChainLen)/float64(slots))
	fmt.Fprintf(buf, " avg chain length (computed): %.02f\n", float64(ht.used)/float64(slots))
	buf.WriteString(" Chain length distribution:\n")
	for i := 0; i < statsVectLen; i++ {
		if clVector[i] == 0 {
			continue
		}
		prefix := ""
		if i == statsVectLen-1 {
			prefix = ">= "
		}
		fmt.Fprintf(buf, "   %s%d: %d (%.02f%%)\n", prefix, i, clVector[i], float64(clVector[i])/float64(ht.size)*100)
	}
}

// GetStats describes the chain length distribution of both generations.
func (d *Dict[K, V]) GetStats() string {
	var buf strings.Builder
	d.getStatsHt(&buf, 0)
	if d.IsRehashing() {
		d.getStatsHt(&buf, 1)
	}
	return buf.String()
}
