// Package wasmkit is a toolkit for reading, decompiling and rewriting core
// WebAssembly modules.
//
// A module binary is exposed at three layers: raw sections, a structurally
// typed module descriptor, and a tree-shaped instruction IR that can be
// lowered back to a flat instruction stream.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	wasmkit/
//	├── wasm/            Opcode table, instruction codec, sections, module parse/encode
//	├── ir/              Stack lifter, tree IR, traversal, printer, lowering
//	├── kit/             Cache of decoded forms over one module binary
//	├── errors/          Structured error types for debugging
//	└── cmd/wasmkit/     Command line inspector and interactive browser
//
// # Quick Start
//
// Decompile every function of a module:
//
//	desc, err := wasm.ParseModule(data)
//	if err != nil {
//	    return err
//	}
//	m, err := ir.Extract(desc)
//	if err != nil {
//	    return err
//	}
//	for _, fn := range m.Functions {
//	    if !fn.Imported() {
//	        fmt.Print(ir.Sprint(fn.Body))
//	    }
//	}
//
// Rebuild the module from the lifted bodies:
//
//	if err := ir.LowerCode(desc, m); err != nil {
//	    return err
//	}
//	out, err := desc.Encode()
//
// # Instruction Streams
//
// A function body or constant expression decodes to a []wasm.Instruction
// ending in its final end. Prefixed opcodes (0xFC bulk memory and
// saturating conversions, 0xFD SIMD) are stored as prefix<<8 | sub.
//
//	instrs, err := wasm.DecodeExpression(wasm.NewReader(code))
//	w := wasm.NewWriter()
//	err = wasm.EncodeExpression(w, instrs)
//
// # Error Handling
//
// Errors carry a phase and kind and match with errors.Is:
//
//	_, err := ir.LiftFunctionBody(fn, instrs, ctx)
//	if errors.Is(err, &werrors.Error{Phase: werrors.PhaseLift, Kind: werrors.KindUnhandled}) {
//	    // opcode the lifter does not model
//	}
//
// # Logging
//
// The wasm, ir and kit packages log debug events through zap. Each exposes
// SetLogger; the default is a no-op logger.
package wasmkit
