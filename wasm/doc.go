// Package wasm reads and writes the WebAssembly binary format.
//
// The instruction codec is the core of the package. DecodeInstruction and
// EncodeInstruction convert single instructions between bytes and the
// Instruction value; DecodeExpression and EncodeExpression handle whole
// expressions terminated by the end that closes depth zero.
//
//	r := wasm.NewReader(body.Code)
//	instrs, err := wasm.DecodeExpression(r)
//
// Opcodes are 16-bit values. Single-byte opcodes keep their byte value;
// prefixed opcodes (0xFC misc, 0xFD SIMD) combine prefix and sub-opcode as
// prefix<<8 | sub. The sub-opcode is a LEB128 u32 on the wire and must fit
// in a byte, so every prefixed opcode maps to exactly one Opcode.
//
// Instructions are values. Decoding never shares state between calls, and
// encoding a decoded canonical stream reproduces the input bytes exactly.
//
// # Modules
//
// SplitSections checks the header and returns the raw sections of a module.
// ParseModule builds a Module descriptor on top of it: signatures, imports,
// functions, tables, memories, globals, exports, segments and bodies.
// Constant expressions are decoded eagerly, function bodies lazily through
// FuncBody.Instructions.
//
//	m, err := wasm.ParseModule(data)
//	out, err := m.Encode()
//
// # Errors
//
// Codec failures are *errors.Error values from the errors package with
// PhaseDecode or PhaseEncode and a kind such as KindUnknownOpcode,
// KindTruncated or KindUnbalanced.
package wasm
