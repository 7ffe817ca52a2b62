package ir

import (
	stderrors "errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/wasm"
)

// frame is one open block. base is the value stack height when it opened;
// entries below base belong to enclosing blocks.
type frame struct {
	block *Block
	base  int
}

type lifter struct {
	mc     *ModuleContext
	fn     *Function // nil for constant expressions
	instrs []wasm.Instruction
	values []Expr
	frames []frame
	pos    int
	last   wasm.Opcode // delimiter that closed the latest body
}

// LiftFunctionBody lifts the instruction stream of fn into its root block.
// Locals created for multi-value results are appended to fn.Locals; on error
// fn.Locals is left as it was.
//
// Nesting is lifted recursively, so the depth of if/else nesting is bounded
// by the goroutine stack. Runs of consecutive block and loop openers are
// read iteratively.
func LiftFunctionBody(fn *Function, instrs []wasm.Instruction, mc *ModuleContext) (*Block, error) {
	if fn == nil || fn.Signature == nil {
		return nil, errors.Invariant(errors.PhaseLift, "function without signature")
	}
	if fn.Imported() {
		return nil, errors.Invariant(errors.PhaseLift, "imported function %d has no body", fn.Index)
	}
	if mc == nil {
		mc = &ModuleContext{}
	}

	before := len(fn.Locals)
	l := &lifter{mc: mc, fn: fn, instrs: instrs}
	root := &Block{
		Result:    ResultOf(fn.Signature.Results),
		BlockType: int32(fn.TypeIdx),
	}
	if err := l.run(root); err != nil {
		clear(fn.Locals[before:])
		fn.Locals = fn.Locals[:before]
		return nil, withPath(err, fmt.Sprintf("func[%d]", fn.Index))
	}

	Logger().Debug("lifted function",
		zap.Uint32("index", fn.Index),
		zap.Int("instructions", len(instrs)),
		zap.Int("locals_added", len(fn.Locals)-before))
	return root, nil
}

// LiftConstExpr lifts an initializer expression producing one result.
// Locals, return and multi-value results are errors here.
func LiftConstExpr(result wasm.ValueType, instrs []wasm.Instruction, mc *ModuleContext) (*Block, error) {
	if mc == nil {
		mc = &ModuleContext{}
	}
	l := &lifter{mc: mc, instrs: instrs}
	root := &Block{Result: Single(result), BlockType: int32(result)}
	if err := l.run(root); err != nil {
		return nil, err
	}
	return root, nil
}

func (l *lifter) run(root *Block) error {
	l.open(root)
	if err := l.body(); err != nil {
		return err
	}
	if l.last != wasm.OpEnd {
		return errors.Malformed(errors.PhaseLift, "else outside if")
	}
	l.close()
	if rest := len(l.instrs) - l.pos; rest > 0 {
		return errors.Malformed(errors.PhaseLift, "%d instructions after final end", rest)
	}
	if len(l.frames) != 0 || len(l.values) != 0 {
		return errors.Invariant(errors.PhaseLift, "%d blocks and %d values left after lift", len(l.frames), len(l.values))
	}
	return nil
}

func (l *lifter) open(b *Block) {
	l.frames = append(l.frames, frame{block: b, base: len(l.values)})
}

// close finishes the innermost open block from the entries at its level.
func (l *lifter) close() {
	f := l.frames[len(l.frames)-1]
	l.frames = l.frames[:len(l.frames)-1]
	f.block.Children = trim(l.values[f.base:], f.block.Result.Arity())
	clear(l.values[f.base:])
	l.values = l.values[:f.base]
}

// body lifts instructions until the End or Else closing the current block.
func (l *lifter) body() error {
	for {
		if l.pos >= len(l.instrs) {
			return errors.Invariant(errors.PhaseLift, "instruction stream ends inside %d open blocks", len(l.frames))
		}
		instr := l.instrs[l.pos]
		l.pos++
		switch instr.Opcode {
		case wasm.OpEnd, wasm.OpElse:
			l.last = instr.Opcode
			return nil
		}
		if err := l.step(instr); err != nil {
			return err
		}
	}
}

func (l *lifter) step(instr wasm.Instruction) error {
	op := instr.Opcode
	switch op {
	case wasm.OpUnreachable:
		return l.push(&Unreachable{})
	case wasm.OpNop:
		if n, ok := l.top().(*Nop); ok {
			n.Count++
			return nil
		}
		return l.push(&Nop{Count: 1})
	case wasm.OpBlock, wasm.OpLoop:
		return l.blocks(instr)
	case wasm.OpIf:
		return l.ifElse(instr)
	case wasm.OpBr, wasm.OpBrIf:
		return l.branch(instr)
	case wasm.OpBrTable:
		return l.brTable(instr)
	case wasm.OpReturn:
		return l.ret()
	case wasm.OpCall:
		return l.call(instr)
	case wasm.OpCallIndirect:
		return l.callIndirect(instr)
	case wasm.OpDrop:
		v, err := l.popNonVoid()
		if err != nil {
			return err
		}
		return l.push(&Drop{Value: v})
	case wasm.OpSelect, wasm.OpSelectT:
		return l.selectOp(instr)
	case wasm.OpLocalGet, wasm.OpGlobalGet:
		v, err := l.variable(instr)
		if err != nil {
			return err
		}
		return l.push(&Get{Var: v})
	case wasm.OpLocalSet, wasm.OpGlobalSet, wasm.OpLocalTee:
		return l.set(instr)
	case wasm.OpI32Const, wasm.OpI64Const, wasm.OpF32Const, wasm.OpF64Const,
		wasm.OpV128Const, wasm.OpRefNull, wasm.OpRefFunc:
		c, err := l.constant(instr)
		if err != nil {
			return err
		}
		return l.push(c)
	case wasm.OpMemorySize:
		imm, err := immOf[wasm.MemoryIdxImm](instr)
		if err != nil {
			return err
		}
		return l.push(&MemorySize{MemIdx: imm.MemIdx})
	case wasm.OpMemoryGrow:
		imm, err := immOf[wasm.MemoryIdxImm](instr)
		if err != nil {
			return err
		}
		delta, err := l.popNonVoid()
		if err != nil {
			return err
		}
		return l.push(&MemoryGrow{MemIdx: imm.MemIdx, Delta: delta})
	}

	if acc, ok := loadOps[op]; ok {
		return l.load(instr, acc)
	}
	if acc, ok := storeOps[op]; ok {
		return l.store(instr, acc)
	}
	if result, ok := unaryOps[op]; ok {
		operand, err := l.popNonVoid()
		if err != nil {
			return err
		}
		return l.push(&Unary{Op: op, Operand: operand, Result: result})
	}
	if result, ok := convertOps[op]; ok {
		operand, err := l.popNonVoid()
		if err != nil {
			return err
		}
		return l.push(&Convert{Op: op, Operand: operand, Result: result})
	}
	if result, ok := binaryOps[op]; ok {
		right, err := l.popNonVoid()
		if err != nil {
			return err
		}
		left, err := l.popNonVoid()
		if err != nil {
			return err
		}
		return l.push(&Binary{Op: op, Left: left, Right: right, Result: result})
	}
	return errors.Unhandled(errors.PhaseLift, uint16(op), op.String())
}

// blocks lifts a run of consecutive block and loop openers. All openers are
// put on the label stack first; bodies are then closed inner to outer, each
// closed block becoming the first entry of its parent.
func (l *lifter) blocks(instr wasm.Instruction) error {
	var chain []*Block
	for {
		result, bt, err := l.blockResult(instr)
		if err != nil {
			return err
		}
		b := &Block{Result: result, BlockType: bt, IsLoop: instr.Opcode == wasm.OpLoop}
		chain = append(chain, b)
		l.open(b)

		if l.pos >= len(l.instrs) {
			break
		}
		next := l.instrs[l.pos]
		if next.Opcode != wasm.OpBlock && next.Opcode != wasm.OpLoop {
			break
		}
		instr = next
		l.pos++
	}

	for i := len(chain) - 1; i >= 0; i-- {
		if err := l.body(); err != nil {
			return err
		}
		if l.last != wasm.OpEnd {
			return errors.Malformed(errors.PhaseLift, "else outside if")
		}
		l.close()
		if err := l.push(chain[i]); err != nil {
			return err
		}
	}
	return nil
}

func (l *lifter) ifElse(instr wasm.Instruction) error {
	result, bt, err := l.blockResult(instr)
	if err != nil {
		return err
	}
	cond, err := l.popNonVoid()
	if err != nil {
		return err
	}

	n := &If{Condition: cond, Result: result, BlockType: bt}
	n.Then = &Block{Result: result, BlockType: bt}
	if err := l.arm(n.Then); err != nil {
		return err
	}
	if l.last == wasm.OpElse {
		n.Else = &Block{Result: result, BlockType: bt}
		if err := l.arm(n.Else); err != nil {
			return err
		}
		if l.last != wasm.OpEnd {
			return errors.Malformed(errors.PhaseLift, "if with two else arms")
		}
	}
	return l.push(n)
}

func (l *lifter) arm(b *Block) error {
	l.open(b)
	if err := l.body(); err != nil {
		return err
	}
	l.close()
	return nil
}

// blockResult resolves the block type of block, loop and if.
func (l *lifter) blockResult(instr wasm.Instruction) (ResultType, int32, error) {
	imm, err := immOf[wasm.BlockImm](instr)
	if err != nil {
		return Void, 0, err
	}
	if imm.IsVoid() {
		return Void, imm.Type, nil
	}
	if vt, ok := imm.ValueType(); ok {
		return Single(vt), imm.Type, nil
	}
	idx, _ := imm.TypeIndex()
	if int(idx) >= len(l.mc.Signatures) {
		return Void, 0, errors.OutOfBounds(errors.PhaseLift, []string{"blocktype"}, int(idx), len(l.mc.Signatures))
	}
	sig := l.mc.Signatures[idx]
	if len(sig.Params) > 0 {
		return Void, 0, errors.Unsupported(errors.PhaseLift, fmt.Sprintf("block parameters (type %d)", idx))
	}
	return ResultOf(sig.Results), imm.Type, nil
}

func (l *lifter) label(depth uint32) (*Block, error) {
	if int(depth) >= len(l.frames) {
		return nil, errors.Invariant(errors.PhaseLift, "label depth %d exceeds %d open blocks", depth, len(l.frames))
	}
	return l.frames[len(l.frames)-1-int(depth)].block, nil
}

// labelArity is the number of values a branch to b carries. A branch to a
// loop restarts it and carries none.
func labelArity(b *Block) int {
	if b.IsLoop {
		return 0
	}
	return b.Result.Arity()
}

func (l *lifter) branch(instr wasm.Instruction) error {
	imm, err := immOf[wasm.BranchImm](instr)
	if err != nil {
		return err
	}
	target, err := l.label(imm.LabelIdx)
	if err != nil {
		return err
	}

	n := &Br{Label: target}
	if instr.Opcode == wasm.OpBrIf {
		if n.Condition, err = l.popNonVoid(); err != nil {
			return err
		}
		if !target.IsLoop {
			n.Result = target.Result
		}
	}
	if n.Values, err = l.popN(labelArity(target)); err != nil {
		return err
	}
	return l.push(n)
}

func (l *lifter) brTable(instr wasm.Instruction) error {
	imm, err := immOf[wasm.BrTableImm](instr)
	if err != nil {
		return err
	}
	cond, err := l.popNonVoid()
	if err != nil {
		return err
	}
	def, err := l.label(imm.Default)
	if err != nil {
		return err
	}
	arity := labelArity(def)

	labels := make([]*Block, len(imm.Labels))
	for i, depth := range imm.Labels {
		b, err := l.label(depth)
		if err != nil {
			return err
		}
		if got := labelArity(b); got != arity {
			return errors.Malformed(errors.PhaseLift, "br_table case %d carries %d values, default carries %d", i, got, arity)
		}
		labels[i] = b
	}

	values, err := l.popN(arity)
	if err != nil {
		return err
	}
	return l.push(&Switch{Labels: labels, Default: def, Condition: cond, Values: values})
}

func (l *lifter) ret() error {
	if l.fn == nil {
		return errors.Malformed(errors.PhaseLift, "return outside function scope")
	}
	values, err := l.popN(len(l.fn.Signature.Results))
	if err != nil {
		return err
	}
	return l.push(&Return{Values: values})
}

func (l *lifter) call(instr wasm.Instruction) error {
	imm, err := immOf[wasm.CallImm](instr)
	if err != nil {
		return err
	}
	if int(imm.FuncIdx) >= len(l.mc.Functions) {
		return errors.OutOfBounds(errors.PhaseLift, []string{"call"}, int(imm.FuncIdx), len(l.mc.Functions))
	}
	callee := l.mc.Functions[imm.FuncIdx]
	if callee.Signature == nil {
		return errors.Invariant(errors.PhaseLift, "function %d has no signature", imm.FuncIdx)
	}
	args, err := l.popN(len(callee.Signature.Params))
	if err != nil {
		return err
	}
	return l.push(&Call{
		Func:    callee,
		Sig:     callee.Signature,
		TypeIdx: callee.TypeIdx,
		Args:    args,
		Result:  ResultOf(callee.Signature.Results),
	})
}

func (l *lifter) callIndirect(instr wasm.Instruction) error {
	imm, err := immOf[wasm.CallIndirectImm](instr)
	if err != nil {
		return err
	}
	if int(imm.TypeIdx) >= len(l.mc.Signatures) {
		return errors.OutOfBounds(errors.PhaseLift, []string{"call_indirect"}, int(imm.TypeIdx), len(l.mc.Signatures))
	}
	sig := &l.mc.Signatures[imm.TypeIdx]
	target, err := l.popNonVoid()
	if err != nil {
		return err
	}
	args, err := l.popN(len(sig.Params))
	if err != nil {
		return err
	}
	return l.push(&Call{
		Target:   target,
		Indirect: true,
		Sig:      sig,
		TypeIdx:  imm.TypeIdx,
		TableIdx: imm.TableIdx,
		Args:     args,
		Result:   ResultOf(sig.Results),
	})
}

func (l *lifter) selectOp(instr wasm.Instruction) error {
	n := &Select{}
	if instr.Opcode == wasm.OpSelectT {
		imm, err := immOf[wasm.SelectTypeImm](instr)
		if err != nil {
			return err
		}
		n.Typed = imm.Types
	}
	var err error
	if n.Condition, err = l.popNonVoid(); err != nil {
		return err
	}
	if n.IfFalse, err = l.popNonVoid(); err != nil {
		return err
	}
	if n.IfTrue, err = l.popNonVoid(); err != nil {
		return err
	}
	return l.push(n)
}

func (l *lifter) variable(instr wasm.Instruction) (*Variable, error) {
	switch instr.Opcode {
	case wasm.OpGlobalGet, wasm.OpGlobalSet:
		imm, err := immOf[wasm.GlobalImm](instr)
		if err != nil {
			return nil, err
		}
		if int(imm.GlobalIdx) >= len(l.mc.Globals) {
			return nil, errors.OutOfBounds(errors.PhaseLift, []string{"global"}, int(imm.GlobalIdx), len(l.mc.Globals))
		}
		return l.mc.Globals[imm.GlobalIdx], nil
	}

	imm, err := immOf[wasm.LocalImm](instr)
	if err != nil {
		return nil, err
	}
	if l.fn == nil {
		return nil, errors.Malformed(errors.PhaseLift, "%s outside function scope", instr.Opcode)
	}
	if int(imm.LocalIdx) >= len(l.fn.Locals) {
		return nil, errors.OutOfBounds(errors.PhaseLift, []string{"local"}, int(imm.LocalIdx), len(l.fn.Locals))
	}
	return l.fn.Locals[imm.LocalIdx], nil
}

func (l *lifter) set(instr wasm.Instruction) error {
	v, err := l.variable(instr)
	if err != nil {
		return err
	}
	value, err := l.popNonVoid()
	if err != nil {
		return err
	}
	if err := l.push(&Set{Var: v, Value: value}); err != nil {
		return err
	}
	if instr.Opcode == wasm.OpLocalTee {
		return l.push(&Get{Var: v})
	}
	return nil
}

func (l *lifter) constant(instr wasm.Instruction) (*Const, error) {
	switch instr.Opcode {
	case wasm.OpI32Const:
		imm, err := immOf[wasm.I32Imm](instr)
		return &Const{ValType: wasm.ValI32, I64: int64(imm.Value)}, err
	case wasm.OpI64Const:
		imm, err := immOf[wasm.I64Imm](instr)
		return &Const{ValType: wasm.ValI64, I64: imm.Value}, err
	case wasm.OpF32Const:
		imm, err := immOf[wasm.F32Imm](instr)
		return &Const{ValType: wasm.ValF32, F32: imm.Value}, err
	case wasm.OpF64Const:
		imm, err := immOf[wasm.F64Imm](instr)
		return &Const{ValType: wasm.ValF64, F64: imm.Value}, err
	case wasm.OpV128Const:
		imm, err := immOf[wasm.V128Imm](instr)
		return &Const{ValType: wasm.ValV128, V128: imm.Bytes}, err
	case wasm.OpRefNull:
		imm, err := immOf[wasm.RefNullImm](instr)
		return &Const{ValType: imm.Type, Null: true}, err
	}

	imm, err := immOf[wasm.RefFuncImm](instr)
	if err != nil {
		return nil, err
	}
	if int(imm.FuncIdx) >= len(l.mc.Functions) {
		return nil, errors.OutOfBounds(errors.PhaseLift, []string{"ref.func"}, int(imm.FuncIdx), len(l.mc.Functions))
	}
	return &Const{ValType: wasm.ValFuncRef, Func: l.mc.Functions[imm.FuncIdx]}, nil
}

func (l *lifter) load(instr wasm.Instruction, acc memAccess) error {
	imm, err := immOf[wasm.MemoryImm](instr)
	if err != nil {
		return err
	}
	addr, err := l.popNonVoid()
	if err != nil {
		return err
	}
	return l.push(&Load{
		Op:      instr.Opcode,
		ValType: acc.typ,
		Width:   acc.width,
		Signed:  acc.signed,
		Mem:     imm,
		Address: addr,
	})
}

func (l *lifter) store(instr wasm.Instruction, acc memAccess) error {
	imm, err := immOf[wasm.MemoryImm](instr)
	if err != nil {
		return err
	}
	value, err := l.popNonVoid()
	if err != nil {
		return err
	}
	addr, err := l.popNonVoid()
	if err != nil {
		return err
	}
	return l.push(&Store{
		Op:      instr.Opcode,
		ValType: acc.typ,
		Width:   acc.width,
		Mem:     imm,
		Address: addr,
		Value:   value,
	})
}

// top returns the newest entry of the current level, or nil.
func (l *lifter) top() Expr {
	if len(l.values) <= l.frames[len(l.frames)-1].base {
		return nil
	}
	return l.values[len(l.values)-1]
}

func (l *lifter) pop() (Expr, error) {
	if len(l.values) <= l.frames[len(l.frames)-1].base {
		return nil, errors.Invariant(errors.PhaseLift, "value stack underflow at instruction %d (%s)",
			l.pos-1, l.instrs[l.pos-1].Opcode)
	}
	e := l.values[len(l.values)-1]
	l.values[len(l.values)-1] = nil
	l.values = l.values[:len(l.values)-1]
	return e, nil
}

// popNonVoid pops one value. Statements above the value are kept after it
// in a synthetic block typed as the value.
func (l *lifter) popNonVoid() (Expr, error) {
	e, err := l.pop()
	if err != nil {
		return nil, err
	}
	if !e.Type().IsVoid() {
		return e, nil
	}

	children := []Expr{e}
	for e.Type().IsVoid() {
		if e, err = l.pop(); err != nil {
			return nil, err
		}
		children = append(children, e)
	}
	slices.Reverse(children)
	return synthetic(e.Type(), children), nil
}

// popN pops n values and returns them in stack order.
func (l *lifter) popN(n int) ([]Expr, error) {
	if n == 0 {
		return nil, nil
	}
	out := make([]Expr, n)
	for i := n - 1; i >= 0; i-- {
		v, err := l.popNonVoid()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// push adds e to the current level. Multi-value results are stored into
// fresh locals and replaced by one Get per result.
func (l *lifter) push(e Expr) error {
	rt := e.Type()
	if !rt.IsMulti() {
		l.values = append(l.values, e)
		return nil
	}
	if l.fn == nil {
		return errors.Malformed(errors.PhaseLift, "multi-value result outside function scope")
	}

	targets := make([]*Variable, len(rt.Multi))
	for i, t := range rt.Multi {
		targets[i] = l.fn.addLocal(t, false)
	}
	l.values = append(l.values, &MultiSet{Value: e, Targets: targets})
	for _, v := range targets {
		l.values = append(l.values, &Get{Var: v})
	}
	return nil
}

// trim builds the children of a closing block from the entries left at its
// level. Values below the last arity values are dropped in place.
func trim(entries []Expr, arity int) []Expr {
	end := len(entries)
	if arity > 0 {
		seen := 0
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].Type().IsVoid() {
				continue
			}
			if seen++; seen == arity {
				end = i
				break
			}
		}
	}

	children := make([]Expr, 0, len(entries))
	for _, e := range entries[:end] {
		if !e.Type().IsVoid() {
			e = &Drop{Value: e}
		}
		children = append(children, e)
	}
	return foldNops(append(children, settle(entries[end:])...))
}

// foldNops merges nop runs that settle moved next to each other.
func foldNops(es []Expr) []Expr {
	out := es[:0]
	for _, e := range es {
		if n, ok := e.(*Nop); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Nop); ok {
				prev.Count += n.Count
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// settle moves statements that follow a result value so the values end the
// list. Statements after a constant are hoisted before it; a value followed
// by statements is grouped with them into a synthetic block.
func settle(tail []Expr) []Expr {
	out := make([]Expr, 0, len(tail))
	var pending []Expr // statements not yet placed, newest first
	for i := len(tail) - 1; i >= 0; i-- {
		e := tail[i]
		switch {
		case e.Type().IsVoid():
			pending = append(pending, e)
			continue
		case len(pending) == 0:
			out = append(out, e)
			continue
		}
		if _, ok := e.(*Const); ok {
			out = append(out, e)
			continue
		}
		slices.Reverse(pending)
		out = append(out, synthetic(e.Type(), append([]Expr{e}, pending...)))
		pending = nil
	}
	out = append(out, pending...)
	slices.Reverse(out)
	return out
}

func synthetic(result ResultType, children []Expr) *Block {
	return &Block{
		Children:  children,
		Result:    result,
		BlockType: blockType(result),
		Synthetic: true,
	}
}

func blockType(r ResultType) int32 {
	if r.Arity() == 1 {
		return int32(r.Value)
	}
	return wasm.BlockTypeVoid
}

func immOf[T wasm.Immediate](instr wasm.Instruction) (T, error) {
	imm, ok := instr.Imm.(T)
	if !ok {
		return imm, errors.New(errors.PhaseLift, errors.KindInvalidData).
			Opcode(uint16(instr.Opcode)).
			Detail("%s carries immediate %T", instr.Opcode, instr.Imm).
			Build()
	}
	return imm, nil
}

// withPath prefixes the location of a structured error with path.
func withPath(err error, path ...string) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		e.Path = append(slices.Clone(path), e.Path...)
	}
	return err
}
