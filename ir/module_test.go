package ir

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tetratelabs/wazero"

	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/wasm"
)

func i32Init(v int32) []wasm.Instruction {
	return []wasm.Instruction{
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: v}},
		{Opcode: wasm.OpEnd},
	}
}

var sumCode = []byte{0x41, 0x00, 0x10, 0x00, 0x10, 0x02, 0x6A, 0x0B}

// testModule imports env.log and defines add, pair (two results) and sum,
// which logs and adds the results of pair.
func testModule() *wasm.Module {
	return &wasm.Module{
		Types: []wasm.FuncType{
			{Params: types(i32, i32), Results: types(i32)},
			{Results: types(i32, i32)},
			{Results: types(i32)},
			{Params: types(i32)},
		},
		Imports: []wasm.Import{
			{Module: "env", Name: "log", Desc: wasm.ImportDesc{Kind: wasm.KindFunc, TypeIdx: 3}},
		},
		Funcs:    []uint32{0, 1, 2},
		Tables:   []wasm.TableType{{ElemType: wasm.ValFuncRef, Limits: wasm.Limits{Min: 1}}},
		Memories: []wasm.MemoryType{{Limits: wasm.Limits{Min: 1}}},
		Globals: []wasm.Global{
			{Type: wasm.GlobalType{ValType: i32, Mutable: true}, Init: i32Init(7)},
		},
		Exports: []wasm.Export{
			{Name: "add", Kind: wasm.KindFunc, Idx: 1},
			{Name: "sum", Kind: wasm.KindFunc, Idx: 3},
			{Name: "memory", Kind: wasm.KindMemory, Idx: 0},
			{Name: "counter", Kind: wasm.KindGlobal, Idx: 0},
		},
		Elements: []wasm.Element{
			{Flags: 0, Offset: i32Init(0), FuncIdxs: []uint32{1}, Type: wasm.ValFuncRef},
		},
		Code: []wasm.FuncBody{
			{Code: []byte{0x20, 0x00, 0x20, 0x01, 0x6A, 0x0B}},
			{Code: []byte{0x41, 0x01, 0x41, 0x02, 0x0B}},
			{Code: sumCode},
		},
		Data: []wasm.DataSegment{
			{Flags: 0, Offset: i32Init(16), Init: []byte("hi")},
		},
	}
}

func extract(t *testing.T, opts ...ExtractOption) *Module {
	t.Helper()
	m, err := Extract(testModule(), opts...)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return m
}

func TestExtract(t *testing.T) {
	m := extract(t)

	if len(m.Functions) != 4 {
		t.Fatalf("functions = %d, want 4", len(m.Functions))
	}
	log := m.Functions[0]
	if !log.Imported() || log.Import.Module != "env" || log.Import.Name != "log" || log.Body != nil {
		t.Errorf("import = %#v", log)
	}
	for i, fn := range m.Functions {
		if fn.Index != uint32(i) {
			t.Errorf("function %d has index %d", i, fn.Index)
		}
	}
	if diff := cmp.Diff([]string{"add"}, m.Functions[1].Exports); diff != "" {
		t.Errorf("add exports (-want +got):\n%s", diff)
	}
	if m.Functions[3].Body == nil || len(m.Functions[3].Locals) != 2 {
		t.Errorf("sum: body %v, %d locals", m.Functions[3].Body != nil, len(m.Functions[3].Locals))
	}

	g := m.Globals[0]
	if !g.Var.IsGlobal || !g.Var.Mutable || constValue(t, g.Init.Children[0]) != 7 {
		t.Errorf("global = %#v init %s", g.Var, Sprint(g.Init))
	}
	if diff := cmp.Diff([]string{"counter"}, g.Exports); diff != "" {
		t.Errorf("global exports (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"memory"}, m.Memories[0].Exports); diff != "" {
		t.Errorf("memory exports (-want +got):\n%s", diff)
	}

	elem := m.Elements[0]
	if elem.Mode != ElementActive || len(elem.Funcs) != 1 || elem.Funcs[0] != m.Functions[1] {
		t.Errorf("element = %#v", elem)
	}
	if constValue(t, elem.Offset.Children[0]) != 0 {
		t.Errorf("element offset = %s", Sprint(elem.Offset))
	}
	if d := m.Data[0]; d.Passive || constValue(t, d.Offset.Children[0]) != 16 || string(d.Init) != "hi" {
		t.Errorf("data = %#v", d)
	}
}

func TestExtractWithoutBodies(t *testing.T) {
	m := extract(t, WithoutBodies())
	sum := m.Functions[3]
	if sum.Body != nil {
		t.Fatal("body lifted despite WithoutBodies")
	}
	if err := m.Lift(sum); err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if sum.Body == nil || len(sum.Locals) != 2 {
		t.Fatalf("sum after Lift: %d locals", len(sum.Locals))
	}
	body := sum.Body
	if err := m.Lift(sum); err != nil || sum.Body != body || len(sum.Locals) != 2 {
		t.Errorf("second Lift changed the function")
	}
	if err := m.Lift(m.Functions[0]); err != nil {
		t.Errorf("Lift on import: %v", err)
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *wasm.Module)
		kind   errors.Kind
	}{
		{"export index", func(m *wasm.Module) { m.Exports[0].Idx = 9 }, errors.KindOutOfBounds},
		{"import type", func(m *wasm.Module) { m.Imports[0].Desc.TypeIdx = 9 }, errors.KindOutOfBounds},
		{"start index", func(m *wasm.Module) { s := uint32(12); m.Start = &s }, errors.KindOutOfBounds},
		{"element function", func(m *wasm.Module) { m.Elements[0].FuncIdxs[0] = 40 }, errors.KindOutOfBounds},
		{"code count", func(m *wasm.Module) { m.Code = m.Code[:2] }, errors.KindMalformed},
		{"global init", func(m *wasm.Module) { m.Globals[0].Init[0].Opcode = wasm.OpLocalGet }, errors.KindInvalidData},
		{"body", func(m *wasm.Module) { m.Code[0].Code = []byte{0x1A, 0x0B} }, errors.KindInvariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := testModule()
			tt.mutate(desc)
			m, err := Extract(desc)
			if m != nil {
				t.Error("partial module returned with error")
			}
			wantKind(t, err, tt.kind)
		})
	}
}

func TestFprint(t *testing.T) {
	m := extract(t)
	want := `(block $L0 (result i32)
  (call 0
    (i32.const 0))
  (multi.set 0 1
    (call 2))
  (i32.add
    (local.get 0)
    (local.get 1)))
`
	if diff := cmp.Diff(want, Sprint(m.Functions[3].Body)); diff != "" {
		t.Errorf("sum mismatch (-want +got):\n%s", diff)
	}

	fn := newFunc(types(i32), types(i32))
	body := liftFunc(t, fn, nil, 0x20, 0x00, 0x04, 0x7F, 0x41, 0x01, 0x05, 0x41, 0x02, 0x0B, 0x0B)
	want = `(block $L0 (result i32)
  (if (result i32)
    (local.get 0)
    (then $L1 (result i32)
      (i32.const 1))
    (else $L2 (result i32)
      (i32.const 2))))
`
	if diff := cmp.Diff(want, Sprint(body)); diff != "" {
		t.Errorf("if mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := Fprint(&buf, body); err != nil || buf.String() != want {
		t.Errorf("Fprint = %q, %v", buf.String(), err)
	}
}

func TestFprintBranchLabels(t *testing.T) {
	// block block br 1 end end
	body := liftFunc(t, newFunc(none, none), nil, 0x02, 0x40, 0x02, 0x40, 0x0C, 0x01, 0x0B, 0x0B, 0x0B)
	want := `(block $L0
  (block $L1
    (block $L2
      (br $L1))))
`
	if diff := cmp.Diff(want, Sprint(body)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk(t *testing.T) {
	m := extract(t)
	var order []string
	err := Walk(m.Functions[1].Body, func(e Expr) error {
		order = append(order, fmt.Sprintf("%T", e))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{"*ir.Get", "*ir.Get", "*ir.Binary", "*ir.Block"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("post-order mismatch (-want +got):\n%s", diff)
	}
	if n := Count(m.Functions[3].Body); n != 8 {
		t.Errorf("Count(sum) = %d, want 8", n)
	}

	stop := stderrors.New("stop")
	visited := 0
	err = Walk(m.Functions[3].Body, func(Expr) error {
		visited++
		if visited == 2 {
			return stop
		}
		return nil
	})
	if err != stop || visited != 2 {
		t.Errorf("Walk did not stop: err %v after %d visits", err, visited)
	}
}

func TestChildrenEvaluationOrder(t *testing.T) {
	mc := &ModuleContext{Signatures: []wasm.FuncType{{Params: types(i32)}}}
	// i32.const 5 (arg) i32.const 0 (target) call_indirect
	body := liftFunc(t, newFunc(none, none), mc, 0x41, 0x05, 0x41, 0x00, 0x11, 0x00, 0x00, 0x0B)
	kids := Children(body.Children[0])
	if len(kids) != 2 || constValue(t, kids[0]) != 5 || constValue(t, kids[1]) != 0 {
		t.Errorf("children = %v", kids)
	}
}

func TestLowerReproducesCode(t *testing.T) {
	m := extract(t)
	tests := []struct {
		fn   *Function
		want []byte
	}{
		{m.Functions[1], []byte{0x20, 0x00, 0x20, 0x01, 0x6A, 0x0B}},
		{m.Functions[2], []byte{0x41, 0x01, 0x41, 0x02, 0x0B}},
		{
			m.Functions[3],
			[]byte{
				0x41, 0x00, 0x10, 0x00,
				0x10, 0x02, 0x21, 0x01, 0x21, 0x00,
				0x20, 0x00, 0x20, 0x01, 0x6A,
				0x0B,
			},
		},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("func[%d]", tt.fn.Index), func(t *testing.T) {
			body, err := LowerFunction(tt.fn)
			if err != nil {
				t.Fatalf("LowerFunction: %v", err)
			}
			if !bytes.Equal(body.Code, tt.want) {
				t.Errorf("code = % x, want % x", body.Code, tt.want)
			}
		})
	}

	sum, err := LowerFunction(m.Functions[3])
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]wasm.LocalEntry{{Count: 2, ValType: i32}}, sum.Locals); diff != "" {
		t.Errorf("locals mismatch (-want +got):\n%s", diff)
	}
}

func TestLowerControlFlow(t *testing.T) {
	codes := [][]byte{
		{0x20, 0x00, 0x04, 0x7F, 0x41, 0x01, 0x05, 0x41, 0x02, 0x0B, 0x0B},
		{0x02, 0x40, 0x02, 0x40, 0x20, 0x00, 0x0E, 0x01, 0x00, 0x01, 0x0B, 0x0B, 0x41, 0x03, 0x0B},
		{0x03, 0x40, 0x20, 0x00, 0x0D, 0x00, 0x0B, 0x41, 0x00, 0x0B},
		{0x02, 0x7F, 0x41, 0x07, 0x20, 0x00, 0x0D, 0x00, 0x0B, 0x0B},
		{0x20, 0x00, 0x20, 0x00, 0x41, 0x01, 0x1B, 0x0F, 0x0B},
	}
	for i, code := range codes {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			body := liftFunc(t, newFunc(types(i32), types(i32)), nil, code...)
			instrs, err := Lower(body)
			if err != nil {
				t.Fatalf("Lower: %v", err)
			}
			out, err := wasm.EncodeInstructions(instrs)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if !bytes.Equal(out, code) {
				t.Errorf("lowered = % x, want % x", out, code)
			}
		})
	}
}

func TestLowerForeignLabel(t *testing.T) {
	body := &Block{Children: []Expr{&Br{Label: &Block{}}}}
	_, err := Lower(body)
	wantKind(t, err, errors.KindInvariant)
}

func TestLoweredModuleRunsInWazero(t *testing.T) {
	desc := testModule()
	m, err := Extract(desc)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if err := LowerCode(desc, m); err != nil {
		t.Fatalf("LowerCode: %v", err)
	}
	bin, err := desc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	ctx := context.Background()
	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer r.Close(ctx)

	var logged []int32
	_, err = r.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, v int32) { logged = append(logged, v) }).
		Export("log").
		Instantiate(ctx)
	if err != nil {
		t.Fatalf("host module: %v", err)
	}
	mod, err := r.Instantiate(ctx, bin)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	res, err := mod.ExportedFunction("sum").Call(ctx)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if res[0] != 3 {
		t.Errorf("sum() = %d, want 3", res[0])
	}
	res, err = mod.ExportedFunction("add").Call(ctx, 2, 3)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if res[0] != 5 {
		t.Errorf("add(2, 3) = %d, want 5", res[0])
	}
	if diff := cmp.Diff([]int32{0}, logged); diff != "" {
		t.Errorf("log calls (-want +got):\n%s", diff)
	}
}
