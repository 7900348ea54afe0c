// Package cache provides the BatBridge multi-level memory cache
// hierarchy (spec.md §4.12): an ordered list of word-addressed, fully
// associative, LFU-evicting cache levels, each chained to the next as
// its backing store and terminating at main memory.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Config holds one cache level's parameters: its capacity in 32-bit
// words and its access latency in cycles (spec.md §4.12 — latency is
// bookkeeping only; this package models the hit/miss/eviction state
// machine, not cycle-accurate timing injection into the pipeline).
type Config struct {
	Capacity int
	Latency  uint64
}

// Stats holds a cache level's running access counters.
type Stats struct {
	Reads     uint64
	Writes    uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// BackingStore is whatever a cache level falls through to on a miss: the
// next level in the hierarchy, or main memory at the root. Both
// *emu.Memory and *Cache itself satisfy this directly — no adapter is
// needed, unlike the teacher's byte-addressed MemoryBacking, because
// this hierarchy is word-addressed throughout (see backing.go).
type BackingStore interface {
	Read(addr uint32) int32
	Write(addr uint32, v int32)
}

// Cache is a single fully-associative, LFU-evicting level. Grounded on
// the teacher's Cache struct (directory/backing/stats field shape,
// New/Read/Write/Stats/Reset organization) with the byte-addressed,
// set-associative M2 cache-line model dropped in favor of a single
// all-ways set of whole words, since spec.md's cache levels are
// word-granular with a flat capacity, not byte-block-and-way sized.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl
	finder    *lfuVictimFinder
	values    map[*akitacache.Block]int32
	stats     Stats
	backing   BackingStore
}

// New creates a cache level of the given capacity, backed by the next
// level (or main memory) in the chain.
func New(config Config, backing BackingStore) *Cache {
	finder := newLFUVictimFinder()
	return &Cache{
		config:    config,
		directory: akitacache.NewDirectory(1, config.Capacity, 4, finder),
		finder:    finder,
		values:    make(map[*akitacache.Block]int32),
		backing:   backing,
	}
}

// Config returns this level's configuration.
func (c *Cache) Config() Config { return c.config }

// Stats returns this level's access counters.
func (c *Cache) Stats() Stats { return c.stats }

// ResetStats clears this level's access counters without touching its
// contents.
func (c *Cache) ResetStats() { c.stats = Stats{} }

// Read is spec.md §4.12's get(addr): a hit increments the frequency
// counter and returns the cached word; a miss recurses to the backing
// store (returning 0 at the root, per emu.Memory's unset-read contract)
// and installs the fetched value here, evicting the least-frequently
// accessed word if this level is already full.
func (c *Cache) Read(addr uint32) int32 {
	c.stats.Reads++

	if block := c.directory.Lookup(0, uint64(addr)); block != nil && block.IsValid {
		c.stats.Hits++
		c.finder.touch(block)
		c.directory.Visit(block)
		return c.values[block]
	}

	c.stats.Misses++
	var v int32
	if c.backing != nil {
		v = c.backing.Read(addr)
	}
	c.install(addr, v)
	return v
}

// Write is spec.md §4.12's write(addr,v): it writes through every level
// of the hierarchy (propagating to the backing store first) and
// installs/updates the value at this level too.
func (c *Cache) Write(addr uint32, v int32) {
	c.stats.Writes++

	if c.backing != nil {
		c.backing.Write(addr, v)
	}

	if block := c.directory.Lookup(0, uint64(addr)); block != nil && block.IsValid {
		c.values[block] = v
		c.finder.touch(block)
		c.directory.Visit(block)
		return
	}
	c.install(addr, v)
}

func (c *Cache) install(addr uint32, v int32) {
	victim := c.directory.FindVictim(uint64(addr))
	if victim == nil {
		return
	}
	if victim.IsValid {
		c.stats.Evictions++
		delete(c.values, victim)
	}
	victim.Tag = uint64(addr)
	victim.IsValid = true
	c.values[victim] = v
	c.finder.touch(victim)
	c.directory.Visit(victim)
}

// Reset invalidates all entries and clears stats, without writing back
// (there is nothing dirty to write back: Write always propagates through
// immediately).
func (c *Cache) Reset() {
	c.directory.Reset()
	c.values = make(map[*akitacache.Block]int32)
	c.stats = Stats{}
}

// NewHierarchy builds an ordered chain of cache levels from nearest
// (index 0) to farthest, each backed by the next and the last backed by
// mem (spec.md §4.12's "ordered list of cache levels" collaborator).
// Callers use levels[0] as the entry point for Read/Write.
func NewHierarchy(configs []Config, mem BackingStore) []*Cache {
	levels := make([]*Cache, len(configs))
	var backing BackingStore = mem
	for i := len(configs) - 1; i >= 0; i-- {
		levels[i] = New(configs[i], backing)
		backing = levels[i]
	}
	return levels
}
