package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wippyai/wasmkit/wasm"
)

func answerModule(t *testing.T) []byte {
	t.Helper()
	m := &wasm.Module{
		Types: []wasm.FuncType{
			{Results: []wasm.ValueType{wasm.ValI32}},
			{Results: []wasm.ValueType{wasm.ValI32, wasm.ValI32}},
		},
		Funcs: []uint32{0, 1, 0},
		Exports: []wasm.Export{
			{Name: "answer", Kind: wasm.KindFunc, Idx: 0},
			{Name: "sum", Kind: wasm.KindFunc, Idx: 2},
		},
		Code: []wasm.FuncBody{
			{Code: []byte{0x41, 0x2A, 0x0B}},
			{Code: []byte{0x41, 0x01, 0x41, 0x02, 0x0B}},
			{Code: []byte{0x10, 0x01, 0x6A, 0x0B}},
		},
	}
	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func TestRun(t *testing.T) {
	data := answerModule(t)

	tests := []struct {
		name string
		opts options
		want []string
	}{
		{
			name: "summary",
			opts: options{funcIdx: noFunc},
			want: []string{"Module: answer.wasm", "Functions: 3 (0 imported)", "Exports: 2"},
		},
		{
			name: "sections",
			opts: options{funcIdx: noFunc, sections: true},
			want: []string{"Sections", "type", "code"},
		},
		{
			name: "disasm",
			opts: options{funcIdx: noFunc, disasm: true},
			want: []string{"func[0]", "  i32.const 42", "  call 1", "end"},
		},
		{
			name: "one function",
			opts: options{funcIdx: 0},
			want: []string{"func[0]", "export answer", "i32.const 42"},
		},
		{
			name: "all functions",
			opts: options{funcIdx: allFuncs},
			want: []string{"func[2]", "export sum", "multi.set"},
		},
		{
			name: "roundtrip",
			opts: options{funcIdx: noFunc, roundtrip: true},
			want: []string{"identical"},
		},
		{
			name: "verify",
			opts: options{funcIdx: noFunc, verify: true},
			want: []string{"indices", "original", "re-encoded", "lowered"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(&out, "answer.wasm", data, tt.opts, false); err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output lacks %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	data := answerModule(t)

	tests := []struct {
		name string
		data []byte
		opts options
		want string
	}{
		{
			name: "not a module",
			data: []byte("\x00asm\x02\x00\x00\x00"),
			opts: options{funcIdx: noFunc},
			want: "version",
		},
		{
			name: "function out of range",
			data: data,
			opts: options{funcIdx: 7},
			want: "out of bounds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(&out, "bad.wasm", tt.data, tt.opts, false)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("run error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
