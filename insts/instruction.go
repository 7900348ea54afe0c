package insts

import "fmt"

// Instruction is the canonical decoded map form (spec.md §3): every
// register field is a resolved integer index 0..31, i is sign-extended,
// and pc/npc are metadata threaded through by the pipeline stages rather
// than filled by Decode itself.
type Instruction struct {
	Op OpCode
	D  uint8
	A  uint8
	B  uint8
	I  int32

	PC  uint32
	NPC uint32
}

// Vector is the symbolic assembler form: an ordered tuple whose first
// element is the opcode mnemonic and whose remaining elements are register
// references (an index 0..31, or one of the alias strings "r_PC", "r_ZERO",
// "r_IMM") and a signed immediate. Slot count and meaning depend on the
// opcode — conditionals carry no d, hlt carries nothing at all.
type Vector []any

// aliasReg resolves a register reference, which may already be a plain
// index or one of the architectural assembler aliases.
func aliasReg(v any) (uint8, error) {
	switch r := v.(type) {
	case string:
		switch r {
		case "r_PC":
			return RegPC, nil
		case "r_ZERO":
			return RegZERO, nil
		case "r_IMM":
			return RegIMM, nil
		default:
			return 0, fmt.Errorf("insts: unknown register alias %q", r)
		}
	case uint8:
		return boundReg(int(r))
	case int:
		return boundReg(r)
	case int32:
		return boundReg(int(r))
	default:
		return 0, fmt.Errorf("insts: unsupported register reference %T", v)
	}
}

// boundReg rejects a register index outside 0..31 rather than silently
// aliasing it into range (spec.md §7 — a corrupted vector-form register
// reference is fatal, not masked).
func boundReg(n int) (uint8, error) {
	if n < 0 || n > 31 {
		return 0, fmt.Errorf("insts: register index %d out of range 0..31", n)
	}
	return uint8(n), nil
}

func asImm(v any) (int32, error) {
	switch n := v.(type) {
	case int32:
		return n, nil
	case int:
		return int32(n), nil
	case uint8:
		return int32(n), nil
	default:
		return 0, fmt.Errorf("insts: unsupported immediate %T", v)
	}
}

// Decode resolves a blob — nil, a word, or a symbolic vector — into the
// canonical decoded form (spec.md §4.2). A nil blob is the no-op marker
// and decodes to a nil *Instruction with no error.
func Decode(raw any) (*Instruction, error) {
	switch blob := raw.(type) {
	case nil:
		return nil, nil
	case Word:
		return decodeWord(blob)
	case uint32:
		return decodeWord(Word(blob))
	case int32:
		return decodeWord(Word(uint32(blob)))
	case Vector:
		return decodeVector(blob)
	case []any:
		return decodeVector(Vector(blob))
	default:
		return nil, fmt.Errorf("insts: unsupported blob type %T", raw)
	}
}

func decodeWord(w Word) (*Instruction, error) {
	op := OpFromValue(Opcode(w))
	return &Instruction{
		Op: op,
		D:  D(w),
		A:  A(w),
		B:  B(w),
		I:  Imm(w),
	}, nil
}

func decodeVector(v Vector) (*Instruction, error) {
	if len(v) == 0 {
		return nil, fmt.Errorf("insts: empty vector")
	}
	symbol, ok := v[0].(string)
	if !ok {
		return nil, fmt.Errorf("insts: vector head must be an opcode symbol, got %T", v[0])
	}
	op := OpFromSymbol(symbol)
	if op == OpUnknown {
		return nil, fmt.Errorf("insts: unknown opcode symbol %q", symbol)
	}

	inst := &Instruction{Op: op}

	switch {
	case op == OpHlt:
		// [:hlt] — no operand slots.
	case op.IsConditional():
		// [:iflt a b i] — no d slot.
		if len(v) != 4 {
			return nil, fmt.Errorf("insts: %s expects 3 operands, got %d", symbol, len(v)-1)
		}
		a, err := aliasReg(v[1])
		if err != nil {
			return nil, err
		}
		b, err := aliasReg(v[2])
		if err != nil {
			return nil, err
		}
		i, err := asImm(v[3])
		if err != nil {
			return nil, err
		}
		inst.A, inst.B, inst.I = a, b, i
	default:
		// [:ld d a b i], [:<alu-op> d a b i], [:push d a b i], [:pop d a b i]
		if len(v) != 5 {
			return nil, fmt.Errorf("insts: %s expects 4 operands, got %d", symbol, len(v)-1)
		}
		d, err := aliasReg(v[1])
		if err != nil {
			return nil, err
		}
		a, err := aliasReg(v[2])
		if err != nil {
			return nil, err
		}
		b, err := aliasReg(v[3])
		if err != nil {
			return nil, err
		}
		i, err := asImm(v[4])
		if err != nil {
			return nil, err
		}
		inst.D, inst.A, inst.B, inst.I = d, a, b, i
	}

	return inst, nil
}

// PackInstruction re-encodes a decoded instruction to its word form, the
// inverse of Decode for non-vector blobs (spec.md §4.1 round-trip law).
func PackInstruction(inst *Instruction) Word {
	if inst == nil {
		return NoOp
	}
	return Pack(inst.Op.Value(), inst.D, inst.A, inst.B, inst.I)
}
