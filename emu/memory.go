// Package emu implements the BatBridge instruction-set model: memory and
// register state, the per-opcode semantic functions, and the single-cycle
// step driver that consumes them. The pipelined and predicted drivers live
// in timing/pipeline and timing/predicted and reuse everything here.
package emu

// Memory is a sparse word-addressed store shared by instructions and data
// (Von Neumann, spec.md §3). Unset addresses read as 0.
type Memory struct {
	words map[uint32]int32
}

// NewMemory creates an empty memory image.
func NewMemory() *Memory {
	return &Memory{words: make(map[uint32]int32)}
}

// Normalize rounds addr down to the nearest multiple of 4, as required of
// every ld/st/branch target (spec.md §3).
func Normalize(addr uint32) uint32 {
	return addr &^ 0x3
}

// Read returns the 32-bit word at the normalized address, 0 if unset.
func (m *Memory) Read(addr uint32) int32 {
	return m.words[Normalize(addr)]
}

// Write stores a 32-bit word at the normalized address.
func (m *Memory) Write(addr uint32, v int32) {
	m.words[Normalize(addr)] = v
}

// LoadWords bulk-loads a program image keyed by 4-aligned address, the
// form produced by the loader package (spec.md §6).
func (m *Memory) LoadWords(image map[uint32]int32) {
	for addr, v := range image {
		m.Write(addr, v)
	}
}

// Snapshot returns a defensive copy of the populated addresses, used by
// tests asserting on the architectural memory image after a run.
func (m *Memory) Snapshot() map[uint32]int32 {
	out := make(map[uint32]int32, len(m.words))
	for k, v := range m.words {
		out[k] = v
	}
	return out
}
