package wasm_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/tetratelabs/wazero"

	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/wasm"
)

var header = []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}

func ptrTo[T any](v T) *T { return &v }

func i32Const(v int32) []wasm.Instruction {
	return []wasm.Instruction{
		{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: v}},
		{Opcode: wasm.OpEnd},
	}
}

// sampleModule exports add(i32, i32) -> i32 along with memory, a table, a
// mutable global and one segment of each kind.
func sampleModule() *wasm.Module {
	return &wasm.Module{
		Types: []wasm.FuncType{
			{Params: []wasm.ValueType{wasm.ValI32, wasm.ValI32}, Results: []wasm.ValueType{wasm.ValI32}},
			{Results: []wasm.ValueType{wasm.ValI32, wasm.ValI32}},
		},
		Funcs:    []uint32{0, 1},
		Tables:   []wasm.TableType{{ElemType: wasm.ValFuncRef, Limits: wasm.Limits{Min: 1, Max: ptrTo[uint64](4)}}},
		Memories: []wasm.MemoryType{{Limits: wasm.Limits{Min: 1}}},
		Globals: []wasm.Global{
			{Type: wasm.GlobalType{ValType: wasm.ValI32, Mutable: true}, Init: i32Const(42)},
		},
		Exports: []wasm.Export{
			{Name: "add", Kind: wasm.KindFunc, Idx: 0},
			{Name: "pair", Kind: wasm.KindFunc, Idx: 1},
			{Name: "memory", Kind: wasm.KindMemory, Idx: 0},
		},
		Elements: []wasm.Element{
			{Flags: 0, Offset: i32Const(0), FuncIdxs: []uint32{0}, Type: wasm.ValFuncRef},
		},
		Code: []wasm.FuncBody{
			{Code: []byte{0x20, 0x00, 0x20, 0x01, 0x6A, 0x0B}},
			{Code: []byte{0x41, 0x01, 0x41, 0x02, 0x0B}},
		},
		Data: []wasm.DataSegment{
			{Flags: 0, Offset: i32Const(16), Init: []byte("hi")},
		},
		CustomSections: []wasm.CustomSection{{Name: "note", Data: []byte{1, 2, 3}}},
	}
}

func TestModuleRoundTrip(t *testing.T) {
	m := sampleModule()
	bin, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	parsed, err := wasm.ParseModule(bin)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	opts := cmp.Options{
		cmpopts.EquateEmpty(),
		cmpopts.IgnoreFields(wasm.FuncBody{}, "Offset"),
	}
	if diff := cmp.Diff(m, parsed, opts); diff != "" {
		t.Errorf("module mismatch (-want +got):\n%s", diff)
	}

	again, err := parsed.Encode()
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(bin, again) {
		t.Error("encode(parse(b)) != b")
	}
	if err := parsed.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestEncodedModuleRunsInWazero(t *testing.T) {
	ctx := context.Background()
	bin, err := sampleModule().Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer r.Close(ctx)

	mod, err := r.Instantiate(ctx, bin)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	res, err := mod.ExportedFunction("add").Call(ctx, 2, 3)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(res) != 1 || uint32(res[0]) != 5 {
		t.Errorf("add(2, 3) = %v, want [5]", res)
	}

	data, ok := mod.Memory().Read(16, 2)
	if !ok || string(data) != "hi" {
		t.Errorf("data segment = %q, %v", data, ok)
	}
}

func TestFuncBodyInstructions(t *testing.T) {
	bin, err := sampleModule().Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	m, err := wasm.ParseModule(bin)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	instrs, err := m.Code[0].Instructions()
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	want := []wasm.Opcode{wasm.OpLocalGet, wasm.OpLocalGet, wasm.OpI32Add, wasm.OpEnd}
	var got []wasm.Opcode
	for _, instr := range instrs {
		got = append(got, instr.Opcode)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("opcodes mismatch (-want +got):\n%s", diff)
	}
	if m.Code[0].Offset <= len(header) {
		t.Errorf("body offset %d not inside module", m.Code[0].Offset)
	}
}

func TestFuncBodyInstructionsErrorOffset(t *testing.T) {
	body := wasm.FuncBody{Code: []byte{0x01, 0xFF, 0x0B}, Offset: 100}
	_, err := body.Instructions()
	werr := asError(t, err)
	if werr.Kind != errors.KindUnknownOpcode || werr.Offset != 101 {
		t.Errorf("got %s at %d, want unknown_opcode at 101", werr.Kind, werr.Offset)
	}
}

func TestModuleFuncTypes(t *testing.T) {
	m := sampleModule()
	m.Imports = []wasm.Import{
		{Module: "env", Name: "log", Desc: wasm.ImportDesc{Kind: wasm.KindFunc, TypeIdx: 1}},
		{Module: "env", Name: "g", Desc: wasm.ImportDesc{Kind: wasm.KindGlobal, Global: &wasm.GlobalType{ValType: wasm.ValI64}}},
	}
	if got := m.NumImportedFuncs(); got != 1 {
		t.Errorf("NumImportedFuncs = %d", got)
	}
	if got := m.NumImportedGlobals(); got != 1 {
		t.Errorf("NumImportedGlobals = %d", got)
	}
	if ft := m.GetFuncType(0); ft == nil || len(ft.Results) != 2 {
		t.Errorf("GetFuncType(0) = %v, want the imported pair signature", ft)
	}
	if ft := m.GetFuncType(1); ft == nil || len(ft.Params) != 2 {
		t.Errorf("GetFuncType(1) = %v, want add signature", ft)
	}
	if ft := m.GetFuncType(9); ft != nil {
		t.Errorf("GetFuncType(9) = %v, want nil", ft)
	}

	idx := m.AddType(wasm.FuncType{Params: []wasm.ValueType{wasm.ValI32, wasm.ValI32}, Results: []wasm.ValueType{wasm.ValI32}})
	if idx != 0 {
		t.Errorf("AddType reused index %d, want 0", idx)
	}
	idx = m.AddType(wasm.FuncType{Params: []wasm.ValueType{wasm.ValF64}})
	if idx != 2 || len(m.Types) != 3 {
		t.Errorf("AddType appended at %d (len %d)", idx, len(m.Types))
	}
}

func section(id byte, payload ...byte) []byte {
	return append([]byte{id, byte(len(payload))}, payload...)
}

func moduleBytes(sections ...[]byte) []byte {
	out := append([]byte(nil), header...)
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

func TestSplitSections(t *testing.T) {
	data := moduleBytes(
		section(wasm.SectionType, 0x01, 0x60, 0x00, 0x00),
		section(wasm.SectionCustom, 0x03, 'a', 'b', 'c', 0xEE),
		section(wasm.SectionFunction, 0x01, 0x00),
		section(wasm.SectionCode, 0x01, 0x02, 0x00, 0x0B),
	)
	sections, err := wasm.SplitSections(data)
	if err != nil {
		t.Fatalf("SplitSections: %v", err)
	}
	var names []string
	for _, s := range sections {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"type", "abc", "function", "code"}, names); diff != "" {
		t.Errorf("section names (-want +got):\n%s", diff)
	}
	custom := sections[1]
	if !bytes.Equal(custom.Data, []byte{0xEE}) {
		t.Errorf("custom payload = % x", custom.Data)
	}
	if got := data[custom.Offset]; got != 0xEE {
		t.Errorf("custom offset %d points at %#x", custom.Offset, got)
	}
	if got := data[sections[0].Offset]; got != 0x01 {
		t.Errorf("type offset %d points at %#x", sections[0].Offset, got)
	}
}

func TestSplitSectionsErrors(t *testing.T) {
	tests := []struct {
		want error
		name string
		data []byte
		kind errors.Kind
	}{
		{name: "bad magic", data: []byte{0, 0, 0, 0, 1, 0, 0, 0}, want: wasm.ErrInvalidMagic},
		{name: "bad version", data: []byte{0x00, 0x61, 0x73, 0x6D, 0x02, 0x00, 0x00, 0x00}, want: wasm.ErrInvalidVersion},
		{name: "unknown id", data: moduleBytes(section(13)), kind: errors.KindMalformed},
		{name: "duplicate", data: moduleBytes(section(wasm.SectionStart, 0x00), section(wasm.SectionStart, 0x00)), kind: errors.KindMalformed},
		{name: "out of order", data: moduleBytes(section(wasm.SectionCode, 0x00), section(wasm.SectionDataCount, 0x00)), kind: errors.KindMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wasm.SplitSections(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil {
				if !stderrors.Is(err, tt.want) {
					t.Errorf("err = %v, want %v", err, tt.want)
				}
				return
			}
			if werr := asError(t, err); werr.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", werr.Kind, tt.kind)
			}
		})
	}
}

func TestSplitSectionsTruncated(t *testing.T) {
	data := moduleBytes([]byte{wasm.SectionType, 0x05, 0x01})
	_, err := wasm.SplitSections(data)
	if err == nil || !strings.Contains(err.Error(), "type section") {
		t.Errorf("err = %v, want truncated type section", err)
	}
}

func TestParseModuleErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr string
	}{
		{"truncated header", []byte{0x00, 0x61, 0x73}, "header"},
		{"bad type form", moduleBytes(section(wasm.SectionType, 0x01, 0x5F, 0x00, 0x00)), "unsupported type form"},
		{"bad value type", moduleBytes(section(wasm.SectionType, 0x01, 0x60, 0x01, 0x55, 0x00)), "invalid value type"},
		{"trailing bytes", moduleBytes(section(wasm.SectionStart, 0x00, 0x00)), "trailing bytes"},
		{"count mismatch", moduleBytes(section(wasm.SectionType, 0x01, 0x60, 0x00, 0x00), section(wasm.SectionFunction, 0x01, 0x00)), "counts differ"},
		{"global init truncated", moduleBytes(section(wasm.SectionGlobal, 0x01, 0x7F, 0x00, 0x41, 0x00)), "global 0 init"},
		{"limits min over max", moduleBytes(section(wasm.SectionMemory, 0x01, 0x01, 0x02, 0x01)), "exceeds max"},
		{"huge count", moduleBytes(section(wasm.SectionFunction, 0xFF, 0xFF, 0x03)), "exceeds remaining"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wasm.ParseModule(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseModuleEmpty(t *testing.T) {
	m, err := wasm.ParseModule(header)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	if len(m.Types) != 0 || len(m.Code) != 0 {
		t.Errorf("empty module has content: %+v", m)
	}
	out, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(out, header) {
		t.Errorf("empty module encodes to % x", out)
	}
}

func TestEncodeRejectsBadInitExpr(t *testing.T) {
	m := &wasm.Module{
		Globals: []wasm.Global{{
			Type: wasm.GlobalType{ValType: wasm.ValI32},
			Init: []wasm.Instruction{{Opcode: wasm.OpI32Const, Imm: wasm.I32Imm{Value: 1}}},
		}},
	}
	_, err := m.Encode()
	if err == nil || !strings.Contains(err.Error(), "global 0 init") {
		t.Fatalf("err = %v, want global init error", err)
	}
	if werr := asError(t, err); werr.Kind != errors.KindUnbalanced {
		t.Errorf("kind = %s, want unbalanced", werr.Kind)
	}
}
