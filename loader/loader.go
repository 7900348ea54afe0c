// Package loader reads a BatBridge program image off disk and installs
// it into memory. Reshaped from the teacher's loader/elf.go ELF reader:
// BatBridge has no ELF binaries (the architecture targets no real
// triple), so debug/elf is dropped in favor of the JSON program-image
// format spec.md §6 names — a mapping from 4-aligned addresses to
// either word integers or symbolic vectors — while keeping the
// teacher's Program-struct-plus-Load-function shape.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/sarchlab/batbridge/emu"
	"github.com/sarchlab/batbridge/insts"
)

// Program is a parsed program image ready to install into memory.
type Program struct {
	// EntryPoint is the address execution should begin at; the loader
	// seeds registers[31] with this value.
	EntryPoint uint32

	// Words maps each 4-aligned address to its encoded instruction.
	Words map[uint32]insts.Word
}

// image is the on-disk JSON shape: {"entry": <addr>, "words": {"<addr>":
// <int32-or-vector>, ...}}.
type image struct {
	Entry uint32                     `json:"entry"`
	Words map[string]json.RawMessage `json:"words"`
}

// Load reads and parses a program image file.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read program image: %w", err)
	}
	return Parse(data)
}

// Parse decodes a program image from its JSON bytes, resolving each
// word's int32 or symbolic-vector form into its packed encoding (spec.md
// §4.1's Pack/Decode round trip).
func Parse(data []byte) (*Program, error) {
	var img image
	if err := json.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("loader: failed to parse program image: %w", err)
	}

	prog := &Program{
		EntryPoint: img.Entry,
		Words:      make(map[uint32]insts.Word, len(img.Words)),
	}

	for key, raw := range img.Words {
		addr, err := strconv.ParseUint(key, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("loader: invalid address key %q: %w", key, err)
		}
		word, err := decodeEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("loader: address 0x%x: %w", addr, err)
		}
		prog.Words[uint32(addr)] = word
	}

	return prog, nil
}

// decodeEntry resolves one "words" map value, which is either a plain
// JSON number (an already-packed word) or a JSON array (a symbolic
// vector, decoded and re-packed through insts.Decode/PackInstruction).
func decodeEntry(raw json.RawMessage) (insts.Word, error) {
	var asInt int64
	if err := json.Unmarshal(raw, &asInt); err == nil {
		return insts.Word(uint32(asInt)), nil
	}

	var asVector []any
	if err := json.Unmarshal(raw, &asVector); err != nil {
		return 0, fmt.Errorf("unsupported word encoding: %w", err)
	}

	vector := normalizeVector(asVector)
	inst, err := insts.Decode(insts.Vector(vector))
	if err != nil {
		return 0, err
	}
	return insts.PackInstruction(inst), nil
}

// normalizeVector converts encoding/json's float64 number decoding back
// to the int32 registers/immediates insts.Decode's Vector form expects.
func normalizeVector(v []any) []any {
	out := make([]any, len(v))
	for i, el := range v {
		if f, ok := el.(float64); ok {
			out[i] = int32(f)
			continue
		}
		out[i] = el
	}
	return out
}

// InstallInto writes every word of the program into mem and seeds
// registers[31] with the entry point, ready for a driver's first Step.
func (p *Program) InstallInto(mem *emu.Memory, regs *emu.RegFile) {
	image := make(map[uint32]int32, len(p.Words))
	for addr, w := range p.Words {
		image[addr] = int32(w)
	}
	mem.LoadWords(image)
	regs.Write(insts.RegPC, int32(p.EntryPoint))
}

// SortedAddresses returns the program's addresses in ascending order,
// useful for deterministic disassembly listings.
func (p *Program) SortedAddresses() []uint32 {
	addrs := make([]uint32, 0, len(p.Words))
	for addr := range p.Words {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
