package wasm

import (
	"bytes"
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func knownOpcodes() []Opcode {
	ops := make([]Opcode, 0, len(opcodeTable))
	for op := range opcodeTable {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

var genValueType = rapid.SampledFrom([]ValueType{ValI32, ValI64, ValF32, ValF64, ValV128, ValFuncRef, ValExternRef})

func genMemArg(t *rapid.T, label string) MemoryImm {
	m := MemoryImm{
		Align:  rapid.Uint32Range(0, 0x3F).Draw(t, label+"align"),
		Offset: rapid.Uint64().Draw(t, label+"offset"),
	}
	if rapid.Bool().Draw(t, label+"multimem") {
		m.Align |= memArgMultiMemBit
		m.MemIdx = rapid.Uint32().Draw(t, label+"memidx")
	}
	return m
}

func genBytes16(t *rapid.T, label string) [16]byte {
	var out [16]byte
	copy(out[:], rapid.SliceOfN(rapid.Byte(), 16, 16).Draw(t, label))
	return out
}

func genImmediate(t *rapid.T, kind immKind) Immediate {
	u32 := func(label string) uint32 { return rapid.Uint32().Draw(t, label) }
	switch kind {
	case immNone:
		return nil
	case immBlock:
		switch rapid.IntRange(0, 2).Draw(t, "blockkind") {
		case 0:
			return BlockImm{Type: BlockTypeVoid}
		case 1:
			return BlockImm{Type: int32(genValueType.Draw(t, "blockvt"))}
		default:
			return BlockImm{Type: rapid.Int32Range(0, math.MaxInt32).Draw(t, "blockidx")}
		}
	case immLabel:
		return BranchImm{LabelIdx: u32("label")}
	case immBrTable:
		return BrTableImm{Labels: rapid.SliceOfN(rapid.Uint32(), 0, 8).Draw(t, "labels"), Default: u32("default")}
	case immCall:
		return CallImm{FuncIdx: u32("func")}
	case immCallIndirect:
		return CallIndirectImm{TypeIdx: u32("type"), TableIdx: u32("table")}
	case immLocal:
		return LocalImm{LocalIdx: u32("local")}
	case immGlobal:
		return GlobalImm{GlobalIdx: u32("global")}
	case immTable:
		return TableImm{TableIdx: u32("table")}
	case immTableInit:
		return TableInitImm{ElemIdx: u32("elem"), TableIdx: u32("table")}
	case immTableCopy:
		return TableCopyImm{DstTable: u32("dst"), SrcTable: u32("src")}
	case immElem:
		return ElemImm{ElemIdx: u32("elem")}
	case immData:
		return DataImm{DataIdx: u32("data")}
	case immMemoryInit:
		return MemoryInitImm{DataIdx: u32("data"), MemIdx: u32("mem")}
	case immMemoryCopy:
		return MemoryCopyImm{DstMem: u32("dst"), SrcMem: u32("src")}
	case immMemoryIdx:
		return MemoryIdxImm{MemIdx: u32("mem")}
	case immMemArg:
		return genMemArg(t, "")
	case immMemLane:
		return MemoryLaneImm{Mem: genMemArg(t, "lane"), Lane: rapid.Byte().Draw(t, "lane")}
	case immLane:
		return LaneImm{Lane: rapid.Byte().Draw(t, "lane")}
	case immShuffle:
		return ShuffleImm{Lanes: genBytes16(t, "lanes")}
	case immI32:
		return I32Imm{Value: rapid.Int32().Draw(t, "i32")}
	case immI64:
		return I64Imm{Value: rapid.Int64().Draw(t, "i64")}
	case immF32:
		return F32Imm{Value: math.Float32frombits(rapid.Uint32().Draw(t, "f32bits"))}
	case immF64:
		return F64Imm{Value: math.Float64frombits(rapid.Uint64().Draw(t, "f64bits"))}
	case immV128:
		return V128Imm{Bytes: genBytes16(t, "v128")}
	case immRefNull:
		return RefNullImm{Type: rapid.SampledFrom([]ValueType{ValFuncRef, ValExternRef}).Draw(t, "heap")}
	case immRefFunc:
		return RefFuncImm{FuncIdx: u32("func")}
	case immSelectType:
		return SelectTypeImm{Types: rapid.SliceOfN(genValueType, 0, 4).Draw(t, "types")}
	}
	t.Fatalf("no generator for immediate kind %d", kind)
	return nil
}

func genInstruction(ops []Opcode) *rapid.Generator[Instruction] {
	return rapid.Custom(func(t *rapid.T) Instruction {
		op := rapid.SampledFrom(ops).Draw(t, "op")
		return Instruction{Opcode: op, Imm: genImmediate(t, opcodeTable[op].imm)}
	})
}

func hasFloatImm(instr Instruction) bool {
	switch instr.Imm.(type) {
	case F32Imm, F64Imm:
		return true
	}
	return false
}

func TestInstructionRoundTrip(t *testing.T) {
	ops := knownOpcodes()
	rapid.Check(t, func(t *rapid.T) {
		instr := genInstruction(ops).Draw(t, "instr")

		w := NewWriter()
		if err := EncodeInstruction(w, instr); err != nil {
			t.Fatalf("encode %s: %v", instr, err)
		}
		encoded := append([]byte(nil), w.Bytes()...)

		r := NewReader(encoded)
		got, err := DecodeInstruction(r)
		if err != nil {
			t.Fatalf("decode % x: %v", encoded, err)
		}
		if r.Len() != 0 {
			t.Fatalf("decode left %d bytes of % x", r.Len(), encoded)
		}

		// NaN payloads do not compare equal; the byte comparison below covers them.
		if !hasFloatImm(instr) {
			if diff := cmp.Diff(instr, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("decode(encode(i)) mismatch (-want +got):\n%s", diff)
			}
		}

		w2 := NewWriter()
		if err := EncodeInstruction(w2, got); err != nil {
			t.Fatalf("re-encode: %v", err)
		}
		if !bytes.Equal(encoded, w2.Bytes()) {
			t.Fatalf("re-encode mismatch: % x != % x", w2.Bytes(), encoded)
		}
	})
}

func TestDecodedBytesReencode(t *testing.T) {
	ops := knownOpcodes()
	rapid.Check(t, func(t *rapid.T) {
		instrs := rapid.SliceOfN(genInstruction(ops), 1, 16).Draw(t, "instrs")
		code, err := EncodeInstructions(instrs)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		decoded, err := DecodeInstructions(code)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(decoded) != len(instrs) {
			t.Fatalf("decoded %d instructions, want %d", len(decoded), len(instrs))
		}
		again, err := EncodeInstructions(decoded)
		if err != nil {
			t.Fatalf("re-encode: %v", err)
		}
		if !bytes.Equal(code, again) {
			t.Fatalf("encode(decode(b)) != b")
		}
	})
}

func TestOpcodeTableCoversImmediateKinds(t *testing.T) {
	for op, info := range opcodeTable {
		if info.name == "" {
			t.Errorf("opcode %#x has no name", uint16(op))
		}
		if op.IsPrefixed() {
			prefix := byte(op >> 8)
			if prefix != PrefixMisc && prefix != PrefixSIMD {
				t.Errorf("opcode %#x has unexpected prefix", uint16(op))
			}
		}
	}
}

func TestUnassignedSIMDOpcodes(t *testing.T) {
	for _, sub := range []uint16{0x9a, 0xa2, 0xa5, 0xa6, 0xaf, 0xb0, 0xb2, 0xb3, 0xb4, 0xbb, 0xc2, 0xc5, 0xc6, 0xcf, 0xd0, 0xd2, 0xd3, 0xd4, 0xe2, 0xee} {
		op := Opcode(uint16(PrefixSIMD)<<8 | sub)
		if op.Known() {
			t.Errorf("%s should not be assigned", op)
		}
	}
}
