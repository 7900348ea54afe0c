package cache

// *emu.Memory already implements BackingStore (Read(addr uint32) int32,
// Write(addr uint32, v int32)) directly, so unlike the teacher's
// byte-addressed MemoryBacking — which existed only to bridge Memory's
// Read8/Write8 to the cache's byte-range Read/Write — no adapter type is
// needed here: a *cache.Cache can itself serve as the next level's
// BackingStore (see NewHierarchy in cache.go), and the chain bottoms out
// directly at a *emu.Memory.
