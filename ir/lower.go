package ir

import (
	"fmt"
	"slices"

	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/wasm"
)

// Lower flattens a lifted body back into an instruction stream ending in
// End. Synthetic blocks are inlined; labelled blocks keep their original
// block-type immediates.
func Lower(body *Block) ([]wasm.Instruction, error) {
	lw := &lowerer{labels: []*Block{body}}
	for _, c := range body.Children {
		if err := lw.expr(c); err != nil {
			return nil, err
		}
	}
	lw.emit(wasm.OpEnd, nil)
	return lw.out, nil
}

// LowerFunction lowers fn into a code section entry.
func LowerFunction(fn *Function) (wasm.FuncBody, error) {
	if fn.Body == nil {
		return wasm.FuncBody{}, errors.Invariant(errors.PhaseLower, "function %d has no body", fn.Index)
	}
	instrs, err := Lower(fn.Body)
	if err != nil {
		return wasm.FuncBody{}, withPath(err, fmt.Sprintf("func[%d]", fn.Index))
	}
	code, err := wasm.EncodeInstructions(instrs)
	if err != nil {
		return wasm.FuncBody{}, err
	}
	return wasm.FuncBody{Locals: LocalEntries(fn), Code: code}, nil
}

// LowerCode replaces the code section of desc with the lowered bodies of m.
// Locals added while lifting are declared in the new bodies.
func LowerCode(desc *wasm.Module, m *Module) error {
	code := make([]wasm.FuncBody, 0, len(desc.Code))
	for _, fn := range m.Functions {
		if fn.Imported() {
			continue
		}
		body, err := LowerFunction(fn)
		if err != nil {
			return err
		}
		code = append(code, body)
	}
	if len(code) != len(desc.Funcs) {
		return errors.Invariant(errors.PhaseLower, "lowered %d bodies for %d functions", len(code), len(desc.Funcs))
	}
	desc.Code = code
	return nil
}

// LocalEntries groups the non-parameter locals of fn into runs of one type.
func LocalEntries(fn *Function) []wasm.LocalEntry {
	var out []wasm.LocalEntry
	for _, v := range fn.Locals[fn.NumParams():] {
		if n := len(out); n > 0 && out[n-1].ValType == v.Type {
			out[n-1].Count++
			continue
		}
		out = append(out, wasm.LocalEntry{Count: 1, ValType: v.Type})
	}
	return out
}

type lowerer struct {
	out    []wasm.Instruction
	labels []*Block
}

func (lw *lowerer) emit(op wasm.Opcode, imm wasm.Immediate) {
	lw.out = append(lw.out, wasm.Instruction{Opcode: op, Imm: imm})
}

func (lw *lowerer) all(es []Expr) error {
	for _, e := range es {
		if err := lw.expr(e); err != nil {
			return err
		}
	}
	return nil
}

func (lw *lowerer) depth(target *Block) (uint32, error) {
	for i := len(lw.labels) - 1; i >= 0; i-- {
		if lw.labels[i] == target {
			return uint32(len(lw.labels) - 1 - i), nil
		}
	}
	return 0, errors.Invariant(errors.PhaseLower, "branch target is not an enclosing block")
}

func (lw *lowerer) scoped(b *Block) error {
	lw.labels = append(lw.labels, b)
	err := lw.all(b.Children)
	lw.labels = lw.labels[:len(lw.labels)-1]
	return err
}

func (lw *lowerer) expr(e Expr) error {
	switch n := e.(type) {
	case *Nop:
		for range n.Count {
			lw.emit(wasm.OpNop, nil)
		}
	case *Unreachable:
		lw.emit(wasm.OpUnreachable, nil)
	case *Drop:
		if err := lw.expr(n.Value); err != nil {
			return err
		}
		lw.emit(wasm.OpDrop, nil)
	case *Block:
		if n.Synthetic {
			return lw.all(n.Children)
		}
		op := wasm.OpBlock
		if n.IsLoop {
			op = wasm.OpLoop
		}
		lw.emit(op, wasm.BlockImm{Type: n.BlockType})
		if err := lw.scoped(n); err != nil {
			return err
		}
		lw.emit(wasm.OpEnd, nil)
	case *If:
		if err := lw.expr(n.Condition); err != nil {
			return err
		}
		lw.emit(wasm.OpIf, wasm.BlockImm{Type: n.BlockType})
		if err := lw.scoped(n.Then); err != nil {
			return err
		}
		if n.Else != nil {
			lw.emit(wasm.OpElse, nil)
			if err := lw.scoped(n.Else); err != nil {
				return err
			}
		}
		lw.emit(wasm.OpEnd, nil)
	case *Br:
		if err := lw.all(Children(n)); err != nil {
			return err
		}
		d, err := lw.depth(n.Label)
		if err != nil {
			return err
		}
		op := wasm.OpBr
		if n.Condition != nil {
			op = wasm.OpBrIf
		}
		lw.emit(op, wasm.BranchImm{LabelIdx: d})
	case *Switch:
		if err := lw.all(Children(n)); err != nil {
			return err
		}
		imm := wasm.BrTableImm{Labels: make([]uint32, len(n.Labels))}
		for i, l := range n.Labels {
			d, err := lw.depth(l)
			if err != nil {
				return err
			}
			imm.Labels[i] = d
		}
		d, err := lw.depth(n.Default)
		if err != nil {
			return err
		}
		imm.Default = d
		lw.emit(wasm.OpBrTable, imm)
	case *Call:
		if err := lw.all(Children(n)); err != nil {
			return err
		}
		if n.Indirect {
			lw.emit(wasm.OpCallIndirect, wasm.CallIndirectImm{TypeIdx: n.TypeIdx, TableIdx: n.TableIdx})
		} else {
			lw.emit(wasm.OpCall, wasm.CallImm{FuncIdx: n.Func.Index})
		}
	case *Get:
		if n.Var.IsGlobal {
			lw.emit(wasm.OpGlobalGet, wasm.GlobalImm{GlobalIdx: n.Var.Index})
		} else {
			lw.emit(wasm.OpLocalGet, wasm.LocalImm{LocalIdx: n.Var.Index})
		}
	case *Set:
		if err := lw.expr(n.Value); err != nil {
			return err
		}
		lw.set(n.Var)
	case *Load:
		if err := lw.expr(n.Address); err != nil {
			return err
		}
		lw.emit(n.Op, n.Mem)
	case *Store:
		if err := lw.all(Children(n)); err != nil {
			return err
		}
		lw.emit(n.Op, n.Mem)
	case *Const:
		lw.out = append(lw.out, constInstr(n))
	case *Unary:
		if err := lw.expr(n.Operand); err != nil {
			return err
		}
		lw.emit(n.Op, nil)
	case *Convert:
		if err := lw.expr(n.Operand); err != nil {
			return err
		}
		lw.emit(n.Op, nil)
	case *Binary:
		if err := lw.all(Children(n)); err != nil {
			return err
		}
		lw.emit(n.Op, nil)
	case *Select:
		if err := lw.all(Children(n)); err != nil {
			return err
		}
		if n.Typed != nil {
			lw.emit(wasm.OpSelectT, wasm.SelectTypeImm{Types: n.Typed})
		} else {
			lw.emit(wasm.OpSelect, nil)
		}
	case *Return:
		if err := lw.all(n.Values); err != nil {
			return err
		}
		lw.emit(wasm.OpReturn, nil)
	case *MemorySize:
		lw.emit(wasm.OpMemorySize, wasm.MemoryIdxImm{MemIdx: n.MemIdx})
	case *MemoryGrow:
		if err := lw.expr(n.Delta); err != nil {
			return err
		}
		lw.emit(wasm.OpMemoryGrow, wasm.MemoryIdxImm{MemIdx: n.MemIdx})
	case *MultiSet:
		if err := lw.expr(n.Value); err != nil {
			return err
		}
		for _, v := range slices.Backward(n.Targets) {
			lw.set(v)
		}
	default:
		return errors.Invariant(errors.PhaseLower, "cannot lower %T", e)
	}
	return nil
}

func (lw *lowerer) set(v *Variable) {
	if v.IsGlobal {
		lw.emit(wasm.OpGlobalSet, wasm.GlobalImm{GlobalIdx: v.Index})
	} else {
		lw.emit(wasm.OpLocalSet, wasm.LocalImm{LocalIdx: v.Index})
	}
}

// constInstr is the instruction producing c.
func constInstr(c *Const) wasm.Instruction {
	switch {
	case c.Null:
		return wasm.Instruction{Opcode: wasm.OpRefNull, Imm: wasm.RefNullImm{Type: c.ValType}}
	case c.Func != nil:
		return wasm.Instruction{Opcode: wasm.OpRefFunc, Imm: wasm.RefFuncImm{FuncIdx: c.Func.Index}}
	}
	switch c.ValType {
	case wasm.ValI64:
		return wasm.Instruction{Opcode: wasm.OpI64Const, Imm: wasm.I64Imm{Value: c.I64}}
	case wasm.ValF32:
		return wasm.Instruction{Opcode: wasm.OpF32Const, Imm: wasm.F32Imm{Value: c.F32}}
	case wasm.ValF64:
		return wasm.Instruction{Opcode: wasm.OpF64Const, Imm: wasm.F64Imm{Value: c.F64}}
	case wasm.ValV128:
		return wasm.Instruction{Opcode: wasm.OpV128Const, Imm: wasm.V128Imm{Bytes: c.V128}}
	}
	return wasm.Instruction{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: int32(c.I64)}}
}
