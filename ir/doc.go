// Package ir lifts WebAssembly instruction streams into a tree IR.
//
// The lifter consumes the flat stack-machine form produced by the wasm
// package and rebuilds structured control flow: blocks, loops and if/else
// become nested Block and If nodes, operands become child expressions, and
// branches hold direct references to the Block they target.
//
//	fn := mod.Functions[3]
//	body, err := ir.LiftFunctionBody(fn, instrs, mod.Context())
//
// Values left on the stack at a block boundary are wrapped in Drop nodes so
// that the block's children end in exactly its result values. Instructions
// producing several results are desugared through fresh locals appended to
// the function: a MultiSet node stores the results and one Get per result
// takes their place on the stack.
//
// Extract builds a whole Module from a parsed wasm.Module. Walk, Fprint and
// Lower traverse, print and flatten lifted trees.
package ir
