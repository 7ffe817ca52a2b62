// Package errors provides structured error types for the wasmkit toolkit.
//
// Errors are categorized by Phase (decode, encode, lift, lower, extract, load)
// and Kind (unknown opcode, truncated input, lifter invariant, ...). The Error
// type carries the byte offset and opcode when known, a location path, and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLift, errors.KindOutOfBounds).
//		Path("func", "3").
//		Detail("label depth %d exceeds %d open blocks", 4, 2).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownOpcode(0xff, 12)
//	err := errors.Invariant(errors.PhaseLift, "value stack underflow")
//
// All errors implement the standard error interface and support errors.Is/As.
// Every error is terminal: operations that fail return no partial result.
package errors
