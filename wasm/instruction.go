package wasm

import (
	"fmt"
	"strings"
)

// Instruction represents a decoded WebAssembly instruction.
// Imm is nil for opcodes without immediates.
type Instruction struct {
	Imm    Immediate
	Opcode Opcode
}

// Immediate is the closed set of immediate schemas. Each opcode maps to
// exactly one concrete type (or none).
type Immediate interface {
	isImmediate()
}

// BlockImm holds the block type for block, loop and if.
type BlockImm struct {
	Type int32 // -64=void, negative=value type, >=0=type index
}

// IsVoid reports whether the block produces no value.
func (b BlockImm) IsVoid() bool { return b.Type == BlockTypeVoid }

// ValueType returns the single result type of a value-typed block.
func (b BlockImm) ValueType() (ValueType, bool) {
	if b.Type < 0 && b.Type != BlockTypeVoid {
		return ValueType(b.Type), true
	}
	return 0, false
}

// TypeIndex returns the signature index of a type-indexed block.
func (b BlockImm) TypeIndex() (uint32, bool) {
	if b.Type >= 0 {
		return uint32(b.Type), true
	}
	return 0, false
}

// BranchImm holds the label depth for br and br_if.
type BranchImm struct {
	LabelIdx uint32
}

// BrTableImm holds the label table for br_table.
type BrTableImm struct {
	Labels  []uint32
	Default uint32
}

// CallImm holds the function index for call and return_call.
type CallImm struct {
	FuncIdx uint32
}

// CallIndirectImm holds type and table indices for call_indirect.
type CallIndirectImm struct {
	TypeIdx  uint32
	TableIdx uint32
}

// LocalImm holds the local index for local.get, local.set, local.tee.
type LocalImm struct {
	LocalIdx uint32
}

// GlobalImm holds the global index for global.get and global.set.
type GlobalImm struct {
	GlobalIdx uint32
}

// TableImm holds a table index (table.get/set/grow/size/fill).
type TableImm struct {
	TableIdx uint32
}

// TableInitImm holds the operands of table.init.
type TableInitImm struct {
	ElemIdx  uint32
	TableIdx uint32
}

// TableCopyImm holds the operands of table.copy.
type TableCopyImm struct {
	DstTable uint32
	SrcTable uint32
}

// ElemImm holds an element segment index (elem.drop).
type ElemImm struct {
	ElemIdx uint32
}

// DataImm holds a data segment index (data.drop).
type DataImm struct {
	DataIdx uint32
}

// MemoryInitImm holds the operands of memory.init.
type MemoryInitImm struct {
	DataIdx uint32
	MemIdx  uint32
}

// MemoryCopyImm holds the operands of memory.copy.
type MemoryCopyImm struct {
	DstMem uint32
	SrcMem uint32
}

// MemoryIdxImm holds a memory index (memory.size, memory.grow, memory.fill).
type MemoryIdxImm struct {
	MemIdx uint32
}

// MemoryImm holds a memarg for loads and stores.
//
// Align is the raw flags field: log2 alignment, with bit 0x40 set when an
// explicit memory index follows. MemIdx is only encoded when that bit is set,
// which keeps re-encoding bit-exact.
type MemoryImm struct {
	Offset uint64
	Align  uint32
	MemIdx uint32
}

const memArgMultiMemBit = 0x40

// Alignment returns the log2 alignment without the memory-index flag.
func (m MemoryImm) Alignment() uint32 { return m.Align &^ memArgMultiMemBit }

// HasMemIdx reports whether the memarg names a memory explicitly.
func (m MemoryImm) HasMemIdx() bool { return m.Align&memArgMultiMemBit != 0 }

// MemoryLaneImm holds a memarg plus lane index (v128.loadN_lane/storeN_lane).
type MemoryLaneImm struct {
	Mem  MemoryImm
	Lane byte
}

// LaneImm holds a lane index (extract_lane/replace_lane).
type LaneImm struct {
	Lane byte
}

// ShuffleImm holds the 16 lane selectors of i8x16.shuffle.
type ShuffleImm struct {
	Lanes [16]byte
}

// I32Imm holds the constant value for i32.const.
type I32Imm struct {
	Value int32
}

// I64Imm holds the constant value for i64.const.
type I64Imm struct {
	Value int64
}

// F32Imm holds the constant value for f32.const.
type F32Imm struct {
	Value float32
}

// F64Imm holds the constant value for f64.const.
type F64Imm struct {
	Value float64
}

// V128Imm holds the 16 raw bytes of v128.const.
type V128Imm struct {
	Bytes [16]byte
}

// RefNullImm holds the reference type for ref.null.
type RefNullImm struct {
	Type ValueType // ValFuncRef or ValExternRef
}

// RefFuncImm holds the function index for ref.func.
type RefFuncImm struct {
	FuncIdx uint32
}

// SelectTypeImm holds value types for typed select.
type SelectTypeImm struct {
	Types []ValueType
}

func (BlockImm) isImmediate()        {}
func (BranchImm) isImmediate()       {}
func (BrTableImm) isImmediate()      {}
func (CallImm) isImmediate()         {}
func (CallIndirectImm) isImmediate() {}
func (LocalImm) isImmediate()        {}
func (GlobalImm) isImmediate()       {}
func (TableImm) isImmediate()        {}
func (TableInitImm) isImmediate()    {}
func (TableCopyImm) isImmediate()    {}
func (ElemImm) isImmediate()         {}
func (DataImm) isImmediate()         {}
func (MemoryInitImm) isImmediate()   {}
func (MemoryCopyImm) isImmediate()   {}
func (MemoryIdxImm) isImmediate()    {}
func (MemoryImm) isImmediate()       {}
func (MemoryLaneImm) isImmediate()   {}
func (LaneImm) isImmediate()         {}
func (ShuffleImm) isImmediate()      {}
func (I32Imm) isImmediate()          {}
func (I64Imm) isImmediate()          {}
func (F32Imm) isImmediate()          {}
func (F64Imm) isImmediate()          {}
func (V128Imm) isImmediate()         {}
func (RefNullImm) isImmediate()      {}
func (RefFuncImm) isImmediate()      {}
func (SelectTypeImm) isImmediate()   {}

// String returns the text-format mnemonic, or a hex form for unknown opcodes.
func (op Opcode) String() string {
	if info, ok := opcodeTable[op]; ok {
		return info.name
	}
	if op > 0xFF {
		return fmt.Sprintf("0x%02x 0x%02x", byte(op>>8), byte(op))
	}
	return fmt.Sprintf("0x%02x", byte(op))
}

// IsPrefixed reports whether the opcode lives on a two-byte page.
func (op Opcode) IsPrefixed() bool { return op > 0xFF }

// Known reports whether the codec has a schema for op.
func (op Opcode) Known() bool {
	_, ok := opcodeTable[op]
	return ok
}

// Delta returns the nesting-depth change of the opcode: +1 for block
// openers, -1 for end, 0 otherwise.
func (op Opcode) Delta() int {
	switch op {
	case OpBlock, OpLoop, OpIf:
		return 1
	case OpEnd:
		return -1
	}
	return 0
}

// String renders the instruction in a text-format-like form.
func (i Instruction) String() string {
	var b strings.Builder
	b.WriteString(i.Opcode.String())
	switch imm := i.Imm.(type) {
	case nil:
	case BlockImm:
		switch {
		case imm.IsVoid():
		case imm.Type < 0:
			fmt.Fprintf(&b, " (result %s)", ValueType(imm.Type))
		default:
			fmt.Fprintf(&b, " (type %d)", imm.Type)
		}
	case BranchImm:
		fmt.Fprintf(&b, " %d", imm.LabelIdx)
	case BrTableImm:
		for _, l := range imm.Labels {
			fmt.Fprintf(&b, " %d", l)
		}
		fmt.Fprintf(&b, " %d", imm.Default)
	case CallImm:
		fmt.Fprintf(&b, " %d", imm.FuncIdx)
	case CallIndirectImm:
		fmt.Fprintf(&b, " %d (type %d)", imm.TableIdx, imm.TypeIdx)
	case LocalImm:
		fmt.Fprintf(&b, " %d", imm.LocalIdx)
	case GlobalImm:
		fmt.Fprintf(&b, " %d", imm.GlobalIdx)
	case TableImm:
		fmt.Fprintf(&b, " %d", imm.TableIdx)
	case TableInitImm:
		fmt.Fprintf(&b, " %d %d", imm.TableIdx, imm.ElemIdx)
	case TableCopyImm:
		fmt.Fprintf(&b, " %d %d", imm.DstTable, imm.SrcTable)
	case ElemImm:
		fmt.Fprintf(&b, " %d", imm.ElemIdx)
	case DataImm:
		fmt.Fprintf(&b, " %d", imm.DataIdx)
	case MemoryInitImm:
		fmt.Fprintf(&b, " %d %d", imm.MemIdx, imm.DataIdx)
	case MemoryCopyImm:
		fmt.Fprintf(&b, " %d %d", imm.DstMem, imm.SrcMem)
	case MemoryIdxImm:
		if imm.MemIdx != 0 {
			fmt.Fprintf(&b, " %d", imm.MemIdx)
		}
	case MemoryImm:
		writeMemArgText(&b, imm)
	case MemoryLaneImm:
		writeMemArgText(&b, imm.Mem)
		fmt.Fprintf(&b, " %d", imm.Lane)
	case LaneImm:
		fmt.Fprintf(&b, " %d", imm.Lane)
	case ShuffleImm:
		for _, l := range imm.Lanes {
			fmt.Fprintf(&b, " %d", l)
		}
	case I32Imm:
		fmt.Fprintf(&b, " %d", imm.Value)
	case I64Imm:
		fmt.Fprintf(&b, " %d", imm.Value)
	case F32Imm:
		fmt.Fprintf(&b, " %v", imm.Value)
	case F64Imm:
		fmt.Fprintf(&b, " %v", imm.Value)
	case V128Imm:
		fmt.Fprintf(&b, " i8x16 %x", imm.Bytes[:])
	case RefNullImm:
		fmt.Fprintf(&b, " %s", imm.Type.heapName())
	case RefFuncImm:
		fmt.Fprintf(&b, " %d", imm.FuncIdx)
	case SelectTypeImm:
		b.WriteString(" (result")
		for _, t := range imm.Types {
			b.WriteByte(' ')
			b.WriteString(t.String())
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(&b, " %v", imm)
	}
	return b.String()
}

func writeMemArgText(b *strings.Builder, m MemoryImm) {
	if m.HasMemIdx() {
		fmt.Fprintf(b, " %d", m.MemIdx)
	}
	if m.Offset != 0 {
		fmt.Fprintf(b, " offset=%d", m.Offset)
	}
	fmt.Fprintf(b, " align=%d", uint64(1)<<m.Alignment())
}
