package cache

import akitacache "github.com/sarchlab/akita/v4/mem/cache"

// lfuVictimFinder selects the least-frequently-accessed block in a set.
// Akita's own mem/cache package only ships NewLRUVictimFinder; spec.md
// §4.12 requires LFU (minimum-access-counter) eviction, so this
// implements the same akitacache.VictimFinder contract the teacher's LRU
// finder satisfies, tracking a frequency counter per block instead of
// recency.
type lfuVictimFinder struct {
	counts map[*akitacache.Block]uint64
}

func newLFUVictimFinder() *lfuVictimFinder {
	return &lfuVictimFinder{counts: make(map[*akitacache.Block]uint64)}
}

// touch increments block's access count. Called by Cache on every hit
// and every fresh install, mirroring the directory.Visit(block) call the
// teacher makes for LRU recency bookkeeping.
func (f *lfuVictimFinder) touch(block *akitacache.Block) {
	f.counts[block]++
}

// FindVictim returns an invalid (empty) block if the set still has one,
// otherwise the block with the lowest access count.
func (f *lfuVictimFinder) FindVictim(set *akitacache.Set) *akitacache.Block {
	var victim *akitacache.Block
	var victimCount uint64

	for _, b := range set.Blocks {
		if !b.IsValid {
			return b
		}
		c := f.counts[b]
		if victim == nil || c < victimCount {
			victim, victimCount = b, c
		}
	}
	return victim
}
