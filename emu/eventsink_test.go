package emu_test

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/batbridge/emu"
	"github.com/sarchlab/batbridge/insts"
)

var _ = Describe("JSONEventSink", func() {
	It("writes one JSON line per event, tagged", func() {
		var buf bytes.Buffer
		sink := emu.NewJSONEventSink(&buf)

		sink.Emit("flush", map[string]any{"pc": 4})

		var decoded map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
		Expect(decoded["tag"]).To(Equal("flush"))
		Expect(decoded["pc"]).To(Equal(float64(4)))
	})

	It("is emitted on every branch writeback", func() {
		mem := emu.NewMemory()
		out := emu.NewBufferSink()
		state := emu.NewState(mem, out)
		var events bytes.Buffer
		state.WithEvents(emu.NewJSONEventSink(&events))
		core := emu.NewSingleCycle(state)

		// add r_PC, r_PC, r_IMM, 4 -> registers[31] := npc(4) + 4 = 8
		mem.Write(0, int32(wordOf(insts.OpAdd, insts.RegPC, insts.RegPC, insts.RegIMM, 4)))
		mem.Write(8, int32(wordOf(insts.OpHlt, 0, 0, 0, 0)))

		Expect(emu.Run(core, 100)).To(Succeed())
		Expect(events.String()).To(ContainSubstring(`"tag":"flush"`))
	})
})
