// Package kit caches the decoded forms of a WebAssembly module binary.
//
// A Kit computes each form on first use and keeps it until the binary is
// replaced:
//
//	k := kit.New(data, kit.WithLazyIR())
//	fn, err := k.Function(3) // parses, extracts and lifts function 3 only
//	k.Load(other)            // drops every cached form
//
// Functions handed out by one generation are rejected by Kit.Lift after the
// next Load.
package kit
