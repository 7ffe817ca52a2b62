package ir

import (
	"slices"
	"strings"

	"github.com/wippyai/wasmkit/wasm"
)

// ResultType is the result of an expression: void, one value, or several.
// The zero value is void.
type ResultType struct {
	// Multi holds the result list when there is more than one result.
	Multi []wasm.ValueType
	// Value is the single result type, or 0.
	Value wasm.ValueType
}

// Void is the result type of statements.
var Void = ResultType{}

// Single returns the result type of an expression yielding one v.
func Single(v wasm.ValueType) ResultType {
	return ResultType{Value: v}
}

// ResultOf normalizes a result list.
func ResultOf(results []wasm.ValueType) ResultType {
	switch len(results) {
	case 0:
		return Void
	case 1:
		return Single(results[0])
	}
	return ResultType{Multi: append([]wasm.ValueType(nil), results...)}
}

// Arity returns the number of values produced.
func (r ResultType) Arity() int {
	if r.Multi != nil {
		return len(r.Multi)
	}
	if r.Value != 0 {
		return 1
	}
	return 0
}

// Equal reports whether r and o describe the same results.
func (r ResultType) Equal(o ResultType) bool {
	return slices.Equal(r.Results(), o.Results())
}

// IsVoid reports whether no value is produced.
func (r ResultType) IsVoid() bool { return r.Arity() == 0 }

// IsMulti reports whether more than one value is produced.
func (r ResultType) IsMulti() bool { return r.Arity() > 1 }

// Results returns the produced value types in order.
func (r ResultType) Results() []wasm.ValueType {
	if r.Multi != nil {
		return r.Multi
	}
	if r.Value != 0 {
		return []wasm.ValueType{r.Value}
	}
	return nil
}

func (r ResultType) String() string {
	switch r.Arity() {
	case 0:
		return "void"
	case 1:
		return r.Value.String()
	}
	parts := make([]string, len(r.Multi))
	for i, v := range r.Multi {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Variable is a local or global slot.
type Variable struct {
	Index       uint32
	Type        wasm.ValueType
	Mutable     bool
	IsGlobal    bool
	IsParameter bool
}

// ImportName identifies an imported entity.
type ImportName struct {
	Module string
	Name   string
}

// Function is a lifted function. Imported functions have no locals or body.
type Function struct {
	Signature *wasm.FuncType
	Import    *ImportName
	Body      *Block
	// Locals lists parameters first, then declared locals, then locals
	// added while lifting.
	Locals  []*Variable
	Exports []string
	Index   uint32
	TypeIdx uint32
}

// Imported reports whether the function is provided by the host.
func (f *Function) Imported() bool { return f.Import != nil }

// NumParams returns the number of parameters.
func (f *Function) NumParams() int {
	if f.Signature == nil {
		return 0
	}
	return len(f.Signature.Params)
}

// NewFunction creates a function with parameter locals for sig and one local
// per declared entry.
func NewFunction(index, typeIdx uint32, sig *wasm.FuncType, locals []wasm.LocalEntry) *Function {
	fn := &Function{Index: index, TypeIdx: typeIdx, Signature: sig}
	for _, p := range sig.Params {
		fn.addLocal(p, true)
	}
	for _, entry := range locals {
		for range entry.Count {
			fn.addLocal(entry.ValType, false)
		}
	}
	return fn
}

func (f *Function) addLocal(t wasm.ValueType, param bool) *Variable {
	v := &Variable{
		Index:       uint32(len(f.Locals)),
		Type:        t,
		Mutable:     true,
		IsParameter: param,
	}
	f.Locals = append(f.Locals, v)
	return v
}

// Global is a module global with its lifted initializer.
type Global struct {
	Var     *Variable
	Init    *Block
	Import  *ImportName
	Exports []string
}

// Memory is a linear memory declaration.
type Memory struct {
	Import  *ImportName
	Exports []string
	Type    wasm.MemoryType
	Index   uint32
}

// Table is a table declaration.
type Table struct {
	Import  *ImportName
	Exports []string
	Type    wasm.TableType
	Index   uint32
}

// ElementMode is how an element segment is applied.
type ElementMode uint8

const (
	ElementActive ElementMode = iota
	ElementPassive
	ElementDeclarative
)

// Element is an element segment. Exactly one of Funcs and Exprs is set.
type Element struct {
	Offset *Block
	Funcs  []*Function
	Exprs  []*Block
	Table  uint32
	Type   wasm.ValueType
	Mode   ElementMode
}

// Data is a data segment. Passive segments have no offset.
type Data struct {
	Offset  *Block
	Init    []byte
	MemIdx  uint32
	Passive bool
}

// Module is a whole module in IR form.
type Module struct {
	Start      *Function
	Signatures []wasm.FuncType
	Functions  []*Function
	Globals    []*Global
	Memories   []*Memory
	Tables     []*Table
	Elements   []*Element
	Data       []*Data

	code map[*Function]*wasm.FuncBody
}

// ModuleContext is the read-only module view a lift resolves indices
// against.
type ModuleContext struct {
	Signatures []wasm.FuncType
	Functions  []*Function
	Globals    []*Variable
}

// Context returns the lift context for m.
func (m *Module) Context() *ModuleContext {
	globals := make([]*Variable, len(m.Globals))
	for i, g := range m.Globals {
		globals[i] = g.Var
	}
	return &ModuleContext{
		Signatures: m.Signatures,
		Functions:  m.Functions,
		Globals:    globals,
	}
}
