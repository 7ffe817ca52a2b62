package wasm_test

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/wasm"
)

func asError(t *testing.T, err error) *errors.Error {
	t.Helper()
	var werr *errors.Error
	if !stderrors.As(err, &werr) {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	return werr
}

func TestDecodeInstruction(t *testing.T) {
	tests := []struct {
		name string
		want wasm.Instruction
		in   []byte
	}{
		{"nop", wasm.Instruction{Opcode: wasm.OpNop}, []byte{0x01}},
		{"i32.const 5", wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 5}}, []byte{0x41, 0x05}},
		{"i32.const -1", wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: -1}}, []byte{0x41, 0x7F}},
		{"i64.const min", wasm.Instruction{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: -1 << 63}},
			[]byte{0x42, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x7F}},
		{"block void", wasm.Instruction{Opcode: wasm.OpBlock, Imm: wasm.BlockImm{Type: wasm.BlockTypeVoid}}, []byte{0x02, 0x40}},
		{"block i32", wasm.Instruction{Opcode: wasm.OpBlock, Imm: wasm.BlockImm{Type: int32(wasm.ValI32)}}, []byte{0x02, 0x7F}},
		{"loop funcref", wasm.Instruction{Opcode: wasm.OpLoop, Imm: wasm.BlockImm{Type: int32(wasm.ValFuncRef)}}, []byte{0x03, 0x70}},
		{"if type index", wasm.Instruction{Opcode: wasm.OpIf, Imm: wasm.BlockImm{Type: 5}}, []byte{0x04, 0x05}},
		{"block type index 200", wasm.Instruction{Opcode: wasm.OpBlock, Imm: wasm.BlockImm{Type: 200}}, []byte{0x02, 0xC8, 0x01}},
		{"br_table", wasm.Instruction{Opcode: wasm.OpBrTable, Imm: wasm.BrTableImm{Labels: []uint32{0, 1}, Default: 2}},
			[]byte{0x0E, 0x02, 0x00, 0x01, 0x02}},
		{"call_indirect", wasm.Instruction{Opcode: wasm.OpCallIndirect, Imm: wasm.CallIndirectImm{TypeIdx: 3, TableIdx: 0}},
			[]byte{0x11, 0x03, 0x00}},
		{"i32.load", wasm.Instruction{Opcode: wasm.OpI32Load, Imm: wasm.MemoryImm{Align: 2, Offset: 16}}, []byte{0x28, 0x02, 0x10}},
		{"i32.load memidx", wasm.Instruction{Opcode: wasm.OpI32Load, Imm: wasm.MemoryImm{Align: 0x42, MemIdx: 1, Offset: 8}},
			[]byte{0x28, 0x42, 0x01, 0x08}},
		{"memory.grow", wasm.Instruction{Opcode: wasm.OpMemoryGrow, Imm: wasm.MemoryIdxImm{}}, []byte{0x40, 0x00}},
		{"i32.trunc_sat_f32_s", wasm.Instruction{Opcode: wasm.OpI32TruncSatF32S}, []byte{0xFC, 0x00}},
		{"memory.copy", wasm.Instruction{Opcode: wasm.OpMemoryCopy, Imm: wasm.MemoryCopyImm{}}, []byte{0xFC, 0x0A, 0x00, 0x00}},
		{"i16x8.abs two-byte sub-opcode", wasm.Instruction{Opcode: wasm.OpI16x8Abs}, []byte{0xFD, 0x80, 0x01}},
		{"i8x16.extract_lane_s", wasm.Instruction{Opcode: wasm.OpI8x16ExtractLaneS, Imm: wasm.LaneImm{Lane: 15}}, []byte{0xFD, 0x15, 0x0F}},
		{"ref.null extern", wasm.Instruction{Opcode: wasm.OpRefNull, Imm: wasm.RefNullImm{Type: wasm.ValExternRef}}, []byte{0xD0, 0x6F}},
		{"select t", wasm.Instruction{Opcode: wasm.OpSelectT, Imm: wasm.SelectTypeImm{Types: []wasm.ValueType{wasm.ValF64}}},
			[]byte{0x1C, 0x01, 0x7C}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := wasm.NewReader(tt.in)
			got, err := wasm.DecodeInstruction(r)
			if err != nil {
				t.Fatalf("DecodeInstruction: %v", err)
			}
			if r.Len() != 0 {
				t.Errorf("%d bytes left unread", r.Len())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}

			w := wasm.NewWriter()
			if err := wasm.EncodeInstruction(w, got); err != nil {
				t.Fatalf("EncodeInstruction: %v", err)
			}
			if !bytes.Equal(w.Bytes(), tt.in) {
				t.Errorf("encode = % x, want % x", w.Bytes(), tt.in)
			}
		})
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		wantOp   uint16
		consumed int
	}{
		{"0xFF", []byte{0xFF, 0x01, 0x02}, 0xFF, 1},
		{"0xFB page", []byte{0xFB, 0x00}, 0xFB, 1},
		{"0xFE page", []byte{0xFE, 0x00}, 0xFE, 1},
		{"reserved 0x06", []byte{0x06}, 0x06, 1},
		{"unassigned simd", []byte{0xFD, 0x9A, 0x01}, 0xFD9A, 3},
		{"unassigned misc", []byte{0xFC, 0x12}, 0xFC12, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := wasm.NewReader(tt.in)
			_, err := wasm.DecodeInstruction(r)
			werr := asError(t, err)
			if werr.Kind != errors.KindUnknownOpcode {
				t.Fatalf("kind = %s, want %s", werr.Kind, errors.KindUnknownOpcode)
			}
			if werr.Value != tt.wantOp {
				t.Errorf("value = %v, want %#x", werr.Value, tt.wantOp)
			}
			if werr.Offset != 0 {
				t.Errorf("offset = %d, want 0", werr.Offset)
			}
			if r.Position() != tt.consumed {
				t.Errorf("consumed %d bytes, want %d", r.Position(), tt.consumed)
			}
		})
	}
}

func TestDecodeSubOpcodeOverflow(t *testing.T) {
	r := wasm.NewReader([]byte{0xFD, 0x80, 0x02})
	_, err := wasm.DecodeInstruction(r)
	if werr := asError(t, err); werr.Kind != errors.KindUnknownOpcode {
		t.Fatalf("kind = %s, want unknown_opcode", werr.Kind)
	}
}

func TestDecodeInstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		kind errors.Kind
		in   []byte
	}{
		{"empty", errors.KindTruncated, nil},
		{"i32.const without immediate", errors.KindTruncated, []byte{0x41}},
		{"truncated leb", errors.KindTruncated, []byte{0x41, 0x80}},
		{"f64.const short", errors.KindTruncated, []byte{0x44, 0x00, 0x00}},
		{"prefix without sub-opcode", errors.KindTruncated, []byte{0xFD}},
		{"br_table count past input", errors.KindTruncated, []byte{0x0E, 0x7F}},
		{"invalid block type", errors.KindInvalidBlockType, []byte{0x02, 0x60}},
		{"u32 overflow", errors.KindOverflow, []byte{0x20, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}},
		{"ref.null non-reference", errors.KindInvalidData, []byte{0xD0, 0x7F}},
		{"select t bad type", errors.KindInvalidData, []byte{0x1C, 0x01, 0x55}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wasm.DecodeInstruction(wasm.NewReader(tt.in))
			werr := asError(t, err)
			if werr.Phase != errors.PhaseDecode {
				t.Errorf("phase = %s, want decode", werr.Phase)
			}
			if werr.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", werr.Kind, tt.kind, err)
			}
		})
	}
}

func TestEncodeInstructionErrors(t *testing.T) {
	tests := []struct {
		name  string
		kind  errors.Kind
		instr wasm.Instruction
	}{
		{"unknown opcode", errors.KindUnknownOpcode, wasm.Instruction{Opcode: 0xFB}},
		{"wrong immediate", errors.KindInvalidData, wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I64Imm{Value: 1}}},
		{"missing immediate", errors.KindInvalidData, wasm.Instruction{Opcode: wasm.OpLocalGet}},
		{"unexpected immediate", errors.KindInvalidData, wasm.Instruction{Opcode: wasm.OpNop, Imm: wasm.I32Imm{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wasm.NewWriter()
			err := wasm.EncodeInstruction(w, tt.instr)
			werr := asError(t, err)
			if werr.Phase != errors.PhaseEncode || werr.Kind != tt.kind {
				t.Errorf("got [%s] %s, want [encode] %s", werr.Phase, werr.Kind, tt.kind)
			}
			if w.Len() != 0 {
				t.Errorf("wrote %d bytes on failure", w.Len())
			}
		})
	}
}

func TestBlockImmAccessors(t *testing.T) {
	void := wasm.BlockImm{Type: wasm.BlockTypeVoid}
	if !void.IsVoid() {
		t.Error("void block should report IsVoid")
	}
	if _, ok := void.ValueType(); ok {
		t.Error("void block has no value type")
	}

	single := wasm.BlockImm{Type: int32(wasm.ValF32)}
	if vt, ok := single.ValueType(); !ok || vt != wasm.ValF32 {
		t.Errorf("ValueType = %v, %v", vt, ok)
	}

	indexed := wasm.BlockImm{Type: 7}
	if idx, ok := indexed.TypeIndex(); !ok || idx != 7 {
		t.Errorf("TypeIndex = %d, %v", idx, ok)
	}
	if _, ok := single.TypeIndex(); ok {
		t.Error("value-typed block has no type index")
	}
}

func TestOpcodeString(t *testing.T) {
	tests := []struct {
		want string
		op   wasm.Opcode
	}{
		{"i32.add", wasm.OpI32Add},
		{"memory.fill", wasm.OpMemoryFill},
		{"f64x2.convert_low_i32x4_u", wasm.OpF64x2ConvertLowI32x4U},
		{"0xff", 0xFF},
		{"0xfd 0x9a", 0xFD9A},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("String(%#x) = %q, want %q", uint16(tt.op), got, tt.want)
		}
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		want  string
		instr wasm.Instruction
	}{
		{"i32.const 42", wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 42}}},
		{"block (result i64)", wasm.Instruction{Opcode: wasm.OpBlock, Imm: wasm.BlockImm{Type: int32(wasm.ValI64)}}},
		{"loop", wasm.Instruction{Opcode: wasm.OpLoop, Imm: wasm.BlockImm{Type: wasm.BlockTypeVoid}}},
		{"if (type 3)", wasm.Instruction{Opcode: wasm.OpIf, Imm: wasm.BlockImm{Type: 3}}},
		{"i64.load offset=8 align=8", wasm.Instruction{Opcode: wasm.OpI64Load, Imm: wasm.MemoryImm{Align: 3, Offset: 8}}},
		{"ref.null extern", wasm.Instruction{Opcode: wasm.OpRefNull, Imm: wasm.RefNullImm{Type: wasm.ValExternRef}}},
	}
	for _, tt := range tests {
		if got := tt.instr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
