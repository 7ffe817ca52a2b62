package ir

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/wasm"
)

// ExtractOption configures Extract.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	skipBodies bool
}

// WithoutBodies leaves function bodies unlifted. Module.Lift lifts them on
// demand.
func WithoutBodies() ExtractOption {
	return func(c *extractConfig) { c.skipBodies = true }
}

type extractor struct {
	desc *wasm.Module
	out  *Module
	code map[*Function]*wasm.FuncBody
}

// Extract builds the IR form of a parsed module: imports, functions with
// their locals, globals and segment offsets with lifted initializers,
// export names, the start function and, unless WithoutBodies is given,
// every function body.
func Extract(desc *wasm.Module, opts ...ExtractOption) (*Module, error) {
	var cfg extractConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(desc.Code) != len(desc.Funcs) {
		return nil, errors.Malformed(errors.PhaseExtract,
			"%d function declarations but %d bodies", len(desc.Funcs), len(desc.Code))
	}

	x := &extractor{
		desc: desc,
		out:  &Module{Signatures: desc.Types},
		code: make(map[*Function]*wasm.FuncBody, len(desc.Code)),
	}
	steps := []func() error{
		x.imports,
		x.functions,
		x.declarations,
		x.globals,
		x.exports,
		x.start,
		x.elements,
		x.data,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	x.out.code = x.code

	if !cfg.skipBodies {
		for _, fn := range x.out.Functions {
			if fn.Imported() {
				continue
			}
			if err := x.out.Lift(fn); err != nil {
				return nil, err
			}
		}
	}

	Logger().Debug("extracted module",
		zap.Int("functions", len(x.out.Functions)),
		zap.Int("globals", len(x.out.Globals)),
		zap.Int("elements", len(x.out.Elements)),
		zap.Int("data", len(x.out.Data)),
		zap.Bool("bodies", !cfg.skipBodies))
	return x.out, nil
}

// Lift lifts the body of fn if it has not been lifted yet.
func (m *Module) Lift(fn *Function) error {
	if fn.Body != nil || fn.Imported() {
		return nil
	}
	code, ok := m.code[fn]
	if !ok {
		return errors.Invariant(errors.PhaseExtract, "function %d has no code", fn.Index)
	}
	instrs, err := code.Instructions()
	if err != nil {
		return fmt.Errorf("func[%d]: %w", fn.Index, err)
	}
	body, err := LiftFunctionBody(fn, instrs, m.Context())
	if err != nil {
		return err
	}
	fn.Body = body
	return nil
}

func (x *extractor) signature(typeIdx uint32, path ...string) (*wasm.FuncType, error) {
	if int(typeIdx) >= len(x.desc.Types) {
		return nil, errors.OutOfBounds(errors.PhaseExtract, path, int(typeIdx), len(x.desc.Types))
	}
	return &x.desc.Types[typeIdx], nil
}

func (x *extractor) imports() error {
	for i, imp := range x.desc.Imports {
		name := &ImportName{Module: imp.Module, Name: imp.Name}
		path := fmt.Sprintf("import[%d]", i)
		switch imp.Desc.Kind {
		case wasm.KindFunc:
			sig, err := x.signature(imp.Desc.TypeIdx, path)
			if err != nil {
				return err
			}
			x.out.Functions = append(x.out.Functions, &Function{
				Index:     uint32(len(x.out.Functions)),
				TypeIdx:   imp.Desc.TypeIdx,
				Signature: sig,
				Import:    name,
			})
		case wasm.KindTable:
			if imp.Desc.Table == nil {
				return errors.InvalidData(errors.PhaseExtract, []string{path}, "table import without type")
			}
			x.out.Tables = append(x.out.Tables, &Table{
				Index:  uint32(len(x.out.Tables)),
				Type:   *imp.Desc.Table,
				Import: name,
			})
		case wasm.KindMemory:
			if imp.Desc.Memory == nil {
				return errors.InvalidData(errors.PhaseExtract, []string{path}, "memory import without type")
			}
			x.out.Memories = append(x.out.Memories, &Memory{
				Index:  uint32(len(x.out.Memories)),
				Type:   *imp.Desc.Memory,
				Import: name,
			})
		case wasm.KindGlobal:
			if imp.Desc.Global == nil {
				return errors.InvalidData(errors.PhaseExtract, []string{path}, "global import without type")
			}
			x.out.Globals = append(x.out.Globals, &Global{
				Var:    x.globalVar(*imp.Desc.Global),
				Import: name,
			})
		default:
			return errors.InvalidData(errors.PhaseExtract, []string{path},
				fmt.Sprintf("unknown import kind %d", imp.Desc.Kind))
		}
	}
	return nil
}

func (x *extractor) globalVar(t wasm.GlobalType) *Variable {
	return &Variable{
		Index:    uint32(len(x.out.Globals)),
		Type:     t.ValType,
		Mutable:  t.Mutable,
		IsGlobal: true,
	}
}

func (x *extractor) functions() error {
	for i, typeIdx := range x.desc.Funcs {
		index := uint32(len(x.out.Functions))
		sig, err := x.signature(typeIdx, fmt.Sprintf("func[%d]", index))
		if err != nil {
			return err
		}
		body := &x.desc.Code[i]
		fn := NewFunction(index, typeIdx, sig, body.Locals)
		x.code[fn] = body
		x.out.Functions = append(x.out.Functions, fn)
	}
	return nil
}

func (x *extractor) declarations() error {
	for _, t := range x.desc.Tables {
		x.out.Tables = append(x.out.Tables, &Table{Index: uint32(len(x.out.Tables)), Type: t})
	}
	for _, mem := range x.desc.Memories {
		x.out.Memories = append(x.out.Memories, &Memory{Index: uint32(len(x.out.Memories)), Type: mem})
	}
	return nil
}

// globals creates every declared global before lifting initializers so
// that initializers may refer to any global.
func (x *extractor) globals() error {
	first := len(x.out.Globals)
	for _, g := range x.desc.Globals {
		x.out.Globals = append(x.out.Globals, &Global{Var: x.globalVar(g.Type)})
	}
	ctx := x.out.Context()
	for i, g := range x.desc.Globals {
		out := x.out.Globals[first+i]
		init, err := LiftConstExpr(g.Type.ValType, g.Init, ctx)
		if err != nil {
			return withPath(err, fmt.Sprintf("global[%d]", out.Var.Index))
		}
		out.Init = init
	}
	return nil
}

func (x *extractor) exports() error {
	for _, exp := range x.desc.Exports {
		path := []string{"export", exp.Name}
		idx := int(exp.Idx)
		switch exp.Kind {
		case wasm.KindFunc:
			if idx >= len(x.out.Functions) {
				return errors.OutOfBounds(errors.PhaseExtract, path, idx, len(x.out.Functions))
			}
			fn := x.out.Functions[idx]
			fn.Exports = append(fn.Exports, exp.Name)
		case wasm.KindTable:
			if idx >= len(x.out.Tables) {
				return errors.OutOfBounds(errors.PhaseExtract, path, idx, len(x.out.Tables))
			}
			t := x.out.Tables[idx]
			t.Exports = append(t.Exports, exp.Name)
		case wasm.KindMemory:
			if idx >= len(x.out.Memories) {
				return errors.OutOfBounds(errors.PhaseExtract, path, idx, len(x.out.Memories))
			}
			mem := x.out.Memories[idx]
			mem.Exports = append(mem.Exports, exp.Name)
		case wasm.KindGlobal:
			if idx >= len(x.out.Globals) {
				return errors.OutOfBounds(errors.PhaseExtract, path, idx, len(x.out.Globals))
			}
			g := x.out.Globals[idx]
			g.Exports = append(g.Exports, exp.Name)
		default:
			return errors.InvalidData(errors.PhaseExtract, path, fmt.Sprintf("unknown export kind %d", exp.Kind))
		}
	}
	return nil
}

func (x *extractor) start() error {
	if x.desc.Start == nil {
		return nil
	}
	idx := int(*x.desc.Start)
	if idx >= len(x.out.Functions) {
		return errors.OutOfBounds(errors.PhaseExtract, []string{"start"}, idx, len(x.out.Functions))
	}
	x.out.Start = x.out.Functions[idx]
	return nil
}

func (x *extractor) elements() error {
	ctx := x.out.Context()
	for i := range x.desc.Elements {
		e := &x.desc.Elements[i]
		path := fmt.Sprintf("elem[%d]", i)
		out := &Element{Table: e.TableIdx, Type: e.Type}

		switch {
		case e.Active():
			out.Mode = ElementActive
			offset, err := LiftConstExpr(x.tableIndexType(e.TableIdx), e.Offset, ctx)
			if err != nil {
				return withPath(err, path, "offset")
			}
			out.Offset = offset
		case e.Flags&0x02 == 0:
			out.Mode = ElementPassive
		default:
			out.Mode = ElementDeclarative
		}

		if e.Exprs != nil {
			out.Exprs = make([]*Block, len(e.Exprs))
			for j, expr := range e.Exprs {
				b, err := LiftConstExpr(e.Type, expr, ctx)
				if err != nil {
					return withPath(err, path, fmt.Sprintf("item[%d]", j))
				}
				out.Exprs[j] = b
			}
		} else {
			out.Funcs = make([]*Function, len(e.FuncIdxs))
			for j, idx := range e.FuncIdxs {
				if int(idx) >= len(x.out.Functions) {
					return errors.OutOfBounds(errors.PhaseExtract, []string{path}, int(idx), len(x.out.Functions))
				}
				out.Funcs[j] = x.out.Functions[idx]
			}
		}
		x.out.Elements = append(x.out.Elements, out)
	}
	return nil
}

func (x *extractor) data() error {
	ctx := x.out.Context()
	for i := range x.desc.Data {
		d := &x.desc.Data[i]
		out := &Data{MemIdx: d.MemIdx, Init: d.Init, Passive: d.Flags == 1}
		if !out.Passive {
			offset, err := LiftConstExpr(x.memoryIndexType(d.MemIdx), d.Offset, ctx)
			if err != nil {
				return withPath(err, fmt.Sprintf("data[%d]", i), "offset")
			}
			out.Offset = offset
		}
		x.out.Data = append(x.out.Data, out)
	}
	return nil
}

func (x *extractor) memoryIndexType(idx uint32) wasm.ValueType {
	if int(idx) < len(x.out.Memories) && x.out.Memories[idx].Type.Limits.Memory64 {
		return wasm.ValI64
	}
	return wasm.ValI32
}

func (x *extractor) tableIndexType(idx uint32) wasm.ValueType {
	if int(idx) < len(x.out.Tables) && x.out.Tables[idx].Type.Limits.Memory64 {
		return wasm.ValI64
	}
	return wasm.ValI32
}
