package ir

import "github.com/wippyai/wasmkit/wasm"

type memAccess struct {
	typ    wasm.ValueType
	width  uint8
	signed bool
}

var loadOps = map[wasm.Opcode]memAccess{
	wasm.OpI32Load:    {wasm.ValI32, 4, false},
	wasm.OpI64Load:    {wasm.ValI64, 8, false},
	wasm.OpF32Load:    {wasm.ValF32, 4, false},
	wasm.OpF64Load:    {wasm.ValF64, 8, false},
	wasm.OpI32Load8S:  {wasm.ValI32, 1, true},
	wasm.OpI32Load8U:  {wasm.ValI32, 1, false},
	wasm.OpI32Load16S: {wasm.ValI32, 2, true},
	wasm.OpI32Load16U: {wasm.ValI32, 2, false},
	wasm.OpI64Load8S:  {wasm.ValI64, 1, true},
	wasm.OpI64Load8U:  {wasm.ValI64, 1, false},
	wasm.OpI64Load16S: {wasm.ValI64, 2, true},
	wasm.OpI64Load16U: {wasm.ValI64, 2, false},
	wasm.OpI64Load32S: {wasm.ValI64, 4, true},
	wasm.OpI64Load32U: {wasm.ValI64, 4, false},
	wasm.OpV128Load:   {wasm.ValV128, 16, false},
}

var storeOps = map[wasm.Opcode]memAccess{
	wasm.OpI32Store:   {wasm.ValI32, 4, false},
	wasm.OpI64Store:   {wasm.ValI64, 8, false},
	wasm.OpF32Store:   {wasm.ValF32, 4, false},
	wasm.OpF64Store:   {wasm.ValF64, 8, false},
	wasm.OpI32Store8:  {wasm.ValI32, 1, false},
	wasm.OpI32Store16: {wasm.ValI32, 2, false},
	wasm.OpI64Store8:  {wasm.ValI64, 1, false},
	wasm.OpI64Store16: {wasm.ValI64, 2, false},
	wasm.OpI64Store32: {wasm.ValI64, 4, false},
	wasm.OpV128Store:  {wasm.ValV128, 16, false},
}

// Result types of the monomorphic numeric operators, keyed by opcode.
var (
	unaryOps   = map[wasm.Opcode]wasm.ValueType{}
	binaryOps  = map[wasm.Opcode]wasm.ValueType{}
	convertOps = map[wasm.Opcode]wasm.ValueType{}
)

func opRange(m map[wasm.Opcode]wasm.ValueType, first, last wasm.Opcode, result wasm.ValueType) {
	for op := first; op <= last; op++ {
		m[op] = result
	}
}

func init() {
	i32, i64, f32, f64 := wasm.ValI32, wasm.ValI64, wasm.ValF32, wasm.ValF64

	opRange(unaryOps, wasm.OpI32Eqz, wasm.OpI32Eqz, i32)
	opRange(unaryOps, wasm.OpI64Eqz, wasm.OpI64Eqz, i32)
	opRange(unaryOps, 0x67, 0x69, i32) // clz ctz popcnt
	opRange(unaryOps, 0x79, 0x7B, i64)
	opRange(unaryOps, 0x8B, 0x91, f32) // abs .. sqrt
	opRange(unaryOps, 0x99, 0x9F, f64)
	opRange(unaryOps, wasm.OpI32Extend8S, wasm.OpI32Extend16S, i32)
	opRange(unaryOps, wasm.OpI64Extend8S, wasm.OpI64Extend32S, i64)
	opRange(unaryOps, wasm.OpRefIsNull, wasm.OpRefIsNull, i32)

	// Comparisons yield i32 whatever the operand type.
	opRange(binaryOps, 0x46, 0x4F, i32)
	opRange(binaryOps, 0x51, 0x5A, i32)
	opRange(binaryOps, 0x5B, 0x60, i32)
	opRange(binaryOps, 0x61, 0x66, i32)
	opRange(binaryOps, 0x6A, 0x78, i32) // add .. rotr
	opRange(binaryOps, 0x7C, 0x8A, i64)
	opRange(binaryOps, 0x92, 0x98, f32) // add .. copysign
	opRange(binaryOps, 0xA0, 0xA6, f64)

	opRange(convertOps, wasm.OpI32WrapI64, 0xAB, i32)
	opRange(convertOps, wasm.OpI64ExtendI32S, 0xB1, i64)
	opRange(convertOps, 0xB2, 0xB6, f32)
	opRange(convertOps, 0xB7, 0xBB, f64)
	opRange(convertOps, wasm.OpI32ReinterpretF32, wasm.OpI32ReinterpretF32, i32)
	opRange(convertOps, wasm.OpI64ReinterpretF64, wasm.OpI64ReinterpretF64, i64)
	opRange(convertOps, wasm.OpF32ReinterpretI32, wasm.OpF32ReinterpretI32, f32)
	opRange(convertOps, wasm.OpF64ReinterpretI64, wasm.OpF64ReinterpretI64, f64)
	opRange(convertOps, wasm.OpI32TruncSatF32S, wasm.OpI32TruncSatF64U, i32)
	opRange(convertOps, wasm.OpI64TruncSatF32S, wasm.OpI64TruncSatF64U, i64)
}
