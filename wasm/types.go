package wasm

import (
	"fmt"

	"github.com/wippyai/wasmkit/wasm/internal/binary"
)

// Module represents a parsed WebAssembly core module.
type Module struct {
	Types    []FuncType // Signature table
	Imports  []Import
	Funcs    []uint32 // Type indices for declared functions
	Tables   []TableType
	Memories []MemoryType
	Globals  []Global
	Exports  []Export
	Start    *uint32
	Elements []Element
	Code     []FuncBody
	Data     []DataSegment

	// DataCount holds the count from the DataCount section (ID 12).
	DataCount *uint32

	CustomSections []CustomSection
}

// ValueType is a value type in its signed block-type encoding: the binary
// byte read as a signed LEB (0x7F → -1). Negative block-type immediates are
// therefore directly comparable with ValueType constants.
type ValueType int32

// Value types.
const (
	ValI32       ValueType = -0x01 // 0x7F
	ValI64       ValueType = -0x02 // 0x7E
	ValF32       ValueType = -0x03 // 0x7D
	ValF64       ValueType = -0x04 // 0x7C
	ValV128      ValueType = -0x05 // 0x7B
	ValFuncRef   ValueType = -0x10 // 0x70
	ValExternRef ValueType = -0x11 // 0x6F
)

// BlockTypeVoid is the block-type immediate for a block without results.
const BlockTypeVoid int32 = -0x40

// ValueTypeFromByte maps a binary value type byte to its ValueType.
func ValueTypeFromByte(b byte) (ValueType, bool) {
	if b&0x80 != 0 {
		return 0, false
	}
	v := ValueType(b)
	if b&0x40 != 0 {
		v -= 0x80
	}
	return v, v.Valid()
}

// Byte returns the single-byte binary encoding.
func (v ValueType) Byte() byte {
	return byte(v) & 0x7F
}

// Valid reports whether v is one of the supported value types.
func (v ValueType) Valid() bool {
	switch v {
	case ValI32, ValI64, ValF32, ValF64, ValV128, ValFuncRef, ValExternRef:
		return true
	}
	return false
}

// IsRef reports whether v is a reference type.
func (v ValueType) IsRef() bool {
	return v == ValFuncRef || v == ValExternRef
}

func (v ValueType) String() string {
	switch v {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	case ValV128:
		return "v128"
	case ValFuncRef:
		return "funcref"
	case ValExternRef:
		return "externref"
	default:
		return fmt.Sprintf("valtype(%d)", int32(v))
	}
}

func (v ValueType) heapName() string {
	switch v {
	case ValFuncRef:
		return "func"
	case ValExternRef:
		return "extern"
	}
	return v.String()
}

// FuncType represents a function signature with parameter and result types.
type FuncType struct {
	Params  []ValueType
	Results []ValueType
}

// Equal reports whether two signatures have identical params and results.
func (f FuncType) Equal(o FuncType) bool {
	if len(f.Params) != len(o.Params) || len(f.Results) != len(o.Results) {
		return false
	}
	for i := range f.Params {
		if f.Params[i] != o.Params[i] {
			return false
		}
	}
	for i := range f.Results {
		if f.Results[i] != o.Results[i] {
			return false
		}
	}
	return true
}

func (f FuncType) String() string {
	return fmt.Sprintf("%v -> %v", f.Params, f.Results)
}

// Import represents an imported function, table, memory, or global.
type Import struct {
	Desc   ImportDesc
	Module string
	Name   string
}

// ImportDesc describes an imported item.
// Kind uses KindFunc, KindTable, KindMemory or KindGlobal.
type ImportDesc struct {
	Table   *TableType
	Memory  *MemoryType
	Global  *GlobalType
	TypeIdx uint32
	Kind    byte
}

// TableType describes a table with element type and size limits.
type TableType struct {
	Limits   Limits
	ElemType ValueType
}

// MemoryType describes a linear memory with size limits.
type MemoryType struct {
	Limits Limits
}

// Limits describes size constraints for tables and memories.
type Limits struct {
	Max      *uint64
	Min      uint64
	Shared   bool
	Memory64 bool
}

// GlobalType describes a global variable's type and mutability.
type GlobalType struct {
	ValType ValueType
	Mutable bool
}

// Global represents a global variable with type and initializer.
type Global struct {
	Type GlobalType
	Init []Instruction // Constant expression, ending in End
}

// Export describes an exported item.
type Export struct {
	Name string
	Kind byte
	Idx  uint32
}

// Element represents an element segment.
// Flags determine the format:
//   - 0: active, tableIdx=0, offset expr, vec(funcidx)
//   - 1: passive, elemkind, vec(funcidx)
//   - 2: active, tableIdx, offset expr, elemkind, vec(funcidx)
//   - 3: declarative, elemkind, vec(funcidx)
//   - 4: active, tableIdx=0, offset expr, vec(expr)
//   - 5: passive, reftype, vec(expr)
//   - 6: active, tableIdx, offset expr, reftype, vec(expr)
//   - 7: declarative, reftype, vec(expr)
type Element struct {
	Offset   []Instruction
	FuncIdxs []uint32
	Exprs    [][]Instruction
	Flags    uint32
	TableIdx uint32
	ElemKind byte
	Type     ValueType
}

// Active reports whether the segment is copied into a table at instantiation.
func (e *Element) Active() bool { return e.Flags&0x01 == 0 }

// FuncBody represents a function's local declarations and bytecode.
type FuncBody struct {
	Locals []LocalEntry
	Code   []byte // Raw code bytes including the final end opcode
	// Offset is the position of Code within the module binary.
	Offset int
}

// Instructions decodes the body as one expression. Error offsets are
// relative to the module binary.
func (b *FuncBody) Instructions() ([]Instruction, error) {
	r := binary.NewReaderAt(b.Code, b.Offset)
	instrs, err := DecodeExpression(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%d bytes after function end", r.Len())
	}
	return instrs, nil
}

// NumLocals returns the number of declared (non-parameter) locals.
func (b *FuncBody) NumLocals() uint64 {
	var n uint64
	for _, l := range b.Locals {
		n += uint64(l.Count)
	}
	return n
}

// LocalEntry represents a group of local variables with the same type.
type LocalEntry struct {
	Count   uint32
	ValType ValueType
}

// DataSegment represents a data segment.
// Flags determine the format:
//   - 0: active, memIdx=0, offset expr, vec(byte)
//   - 1: passive, vec(byte)
//   - 2: active, memIdx, offset expr, vec(byte)
type DataSegment struct {
	Offset []Instruction
	Init   []byte
	Flags  uint32
	MemIdx uint32
}

// CustomSection holds a named custom section's data.
type CustomSection struct {
	Name string
	Data []byte
}

func (m *Module) numImported(kind byte) int {
	count := 0
	for _, imp := range m.Imports {
		if imp.Desc.Kind == kind {
			count++
		}
	}
	return count
}

// NumImportedFuncs returns the number of imported functions
func (m *Module) NumImportedFuncs() int { return m.numImported(KindFunc) }

// NumImportedGlobals returns the number of imported globals
func (m *Module) NumImportedGlobals() int { return m.numImported(KindGlobal) }

// NumImportedTables returns the number of imported tables
func (m *Module) NumImportedTables() int { return m.numImported(KindTable) }

// NumImportedMemories returns the number of imported memories
func (m *Module) NumImportedMemories() int { return m.numImported(KindMemory) }

// GetFuncType returns the type of a function by its index in the function
// index space (imports first), or nil when out of range.
func (m *Module) GetFuncType(funcIdx uint32) *FuncType {
	for i := range m.Imports {
		if m.Imports[i].Desc.Kind != KindFunc {
			continue
		}
		if funcIdx == 0 {
			return m.typeAt(m.Imports[i].Desc.TypeIdx)
		}
		funcIdx--
	}
	if int(funcIdx) >= len(m.Funcs) {
		return nil
	}
	return m.typeAt(m.Funcs[funcIdx])
}

func (m *Module) typeAt(idx uint32) *FuncType {
	if int(idx) >= len(m.Types) {
		return nil
	}
	return &m.Types[idx]
}

// AddType returns the index of ft in the signature table, appending it when
// no equal signature exists.
func (m *Module) AddType(ft FuncType) uint32 {
	for i, t := range m.Types {
		if t.Equal(ft) {
			return uint32(i)
		}
	}
	m.Types = append(m.Types, ft)
	return uint32(len(m.Types) - 1)
}
