package kit

import (
	stderrors "errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/wasm"
)

var i32 = wasm.ValI32

// encodeModule builds a module with the given function bodies. Function i
// has type i; type 1 returns two values.
func encodeModule(t *testing.T, bodies ...[]byte) []byte {
	t.Helper()
	m := &wasm.Module{
		Types: []wasm.FuncType{
			{Results: []wasm.ValueType{i32}},
			{Results: []wasm.ValueType{i32, i32}},
			{Results: []wasm.ValueType{i32}},
		},
	}
	for i, code := range bodies {
		m.Funcs = append(m.Funcs, uint32(i))
		m.Code = append(m.Code, wasm.FuncBody{Code: code})
	}
	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

func threeFuncs(t *testing.T) []byte {
	return encodeModule(t,
		[]byte{0x41, 0x05, 0x0B},
		[]byte{0x41, 0x01, 0x41, 0x02, 0x0B},
		[]byte{0x10, 0x01, 0x6A, 0x0B},
	)
}

func TestKitCachesForms(t *testing.T) {
	k := New(threeFuncs(t))

	sections, err := k.Sections()
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	if len(sections) != 3 {
		t.Errorf("sections = %d, want type, function and code", len(sections))
	}

	m1, err := k.Module()
	if err != nil {
		t.Fatalf("Module: %v", err)
	}
	m2, _ := k.Module()
	if m1 != m2 {
		t.Error("Module is not cached")
	}

	ir1, err := k.IR()
	if err != nil {
		t.Fatalf("IR: %v", err)
	}
	ir2, _ := k.IR()
	if ir1 != ir2 {
		t.Error("IR is not cached")
	}
	if len(ir1.Functions) != 3 {
		t.Fatalf("functions = %d", len(ir1.Functions))
	}
	for i, fn := range ir1.Functions {
		if fn.Body == nil {
			t.Errorf("function %d not lifted", i)
		}
	}
}

func TestKitLoadInvalidates(t *testing.T) {
	k := New(threeFuncs(t))
	if got := k.Generation(); got != 1 {
		t.Fatalf("Generation = %d, want 1", got)
	}
	before, err := k.IR()
	if err != nil {
		t.Fatalf("IR: %v", err)
	}
	oldModule, _ := k.Module()

	k.Load(encodeModule(t, []byte{0x41, 0x09, 0x0B}))
	if got := k.Generation(); got != 2 {
		t.Fatalf("Generation = %d, want 2", got)
	}

	m, err := k.Module()
	if err != nil {
		t.Fatalf("Module: %v", err)
	}
	if m == oldModule || len(m.Funcs) != 1 {
		t.Errorf("Module not reparsed: %d funcs", len(m.Funcs))
	}
	after, err := k.IR()
	if err != nil {
		t.Fatalf("IR: %v", err)
	}
	if after == before || len(after.Functions) != 1 {
		t.Errorf("IR not rebuilt: %d functions", len(after.Functions))
	}
	if len(before.Functions) != 3 {
		t.Errorf("detached IR changed: %d functions", len(before.Functions))
	}
}

func TestKitCopiesInput(t *testing.T) {
	data := threeFuncs(t)
	k := New(data)
	want := append([]byte(nil), data...)
	data[0] = 0xFF

	if _, err := k.Module(); err != nil {
		t.Fatalf("Module after caller mutation: %v", err)
	}
	got := k.Bytes()
	if string(got) != string(want) {
		t.Error("Bytes does not match the loaded input")
	}
	got[0] = 0xFF
	if k.Bytes()[0] != 0x00 {
		t.Error("Bytes aliases the cached binary")
	}
}

func TestKitLazyIR(t *testing.T) {
	k := New(threeFuncs(t), WithLazyIR())

	m, err := k.IR()
	if err != nil {
		t.Fatalf("IR: %v", err)
	}
	for i, fn := range m.Functions {
		if fn.Body != nil {
			t.Errorf("function %d lifted eagerly", i)
		}
	}

	fn, err := k.Function(2)
	if err != nil {
		t.Fatalf("Function(2): %v", err)
	}
	if fn.Body == nil {
		t.Fatal("Function(2) returned no body")
	}
	if len(fn.Locals) != 2 {
		t.Errorf("locals = %d, want the two multi-value temporaries", len(fn.Locals))
	}
	if m.Functions[0].Body != nil {
		t.Error("Function(2) lifted function 0")
	}

	again, err := k.Function(2)
	if err != nil || again != fn || len(again.Locals) != 2 {
		t.Errorf("second Function(2) = %p, %v, %d locals", again, err, len(again.Locals))
	}
}

func TestKitLiftStaleFunction(t *testing.T) {
	data := threeFuncs(t)
	k := New(data, WithLazyIR())
	m, err := k.IR()
	if err != nil {
		t.Fatalf("IR: %v", err)
	}
	fn := m.Functions[0]
	if err := k.Lift(fn); err != nil {
		t.Fatalf("Lift current function: %v", err)
	}

	k.Load(data)
	stale := m.Functions[1]
	err = k.Lift(stale)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindStale}) {
		t.Fatalf("Lift after Load = %v, want stale error", err)
	}
	if stale.Body != nil {
		t.Error("stale function was lifted")
	}

	fresh, err := k.IR()
	if err != nil {
		t.Fatalf("IR: %v", err)
	}
	if err := k.Lift(fresh.Functions[1]); err != nil {
		t.Errorf("Lift fresh function: %v", err)
	}
}

func TestKitErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		call func(*Kit) error
		want error
	}{
		{
			name: "bad magic",
			data: []byte("nope\x01\x00\x00\x00"),
			call: func(k *Kit) error { _, err := k.Module(); return err },
			want: wasm.ErrInvalidMagic,
		},
		{
			name: "bad magic through IR",
			data: []byte("nope\x01\x00\x00\x00"),
			call: func(k *Kit) error { _, err := k.IR(); return err },
			want: wasm.ErrInvalidMagic,
		},
		{
			name: "function out of range",
			data: encodeModule(t, []byte{0x41, 0x05, 0x0B}),
			call: func(k *Kit) error { _, err := k.Function(1); return err },
			want: &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindOutOfBounds},
		},
		{
			name: "negative function index",
			data: encodeModule(t, []byte{0x41, 0x05, 0x0B}),
			call: func(k *Kit) error { _, err := k.Function(-1); return err },
			want: &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindOutOfBounds},
		},
		{
			name: "unhandled opcode in lazy body",
			data: encodeModule(t, []byte{0xFC, 0x0F, 0x00, 0x0B}),
			call: func(k *Kit) error { _, err := k.Function(0); return err },
			want: &errors.Error{Phase: errors.PhaseLift, Kind: errors.KindUnhandled},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := New(tt.data, WithLazyIR())
			err := tt.call(k)
			if !stderrors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKitConcurrentAccess(t *testing.T) {
	k := New(threeFuncs(t), WithLazyIR())

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for g := range 30 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := k.Function(g % 3); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Function: %v", err)
	}

	m, err := k.IR()
	if err != nil {
		t.Fatalf("IR: %v", err)
	}
	for i, fn := range m.Functions {
		if fn.Body == nil {
			t.Errorf("function %d not lifted", i)
		}
	}
	if got := len(m.Functions[2].Locals); got != 2 {
		t.Errorf("function 2 has %d locals, want 2", got)
	}
}

func TestKitLogsInvalidation(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	data := threeFuncs(t)
	k := New(data, WithLogger(zap.New(core)))
	if _, err := k.IR(); err != nil {
		t.Fatalf("IR: %v", err)
	}
	k.Load(data)

	loads := logs.FilterMessage("kit loaded").All()
	if len(loads) != 2 {
		t.Fatalf("kit loaded logged %d times, want 2", len(loads))
	}
	if gen := loads[1].ContextMap()["generation"]; gen != uint64(2) {
		t.Errorf("second load generation = %v", gen)
	}
	if n := logs.FilterMessage("kit cached ir").Len(); n != 1 {
		t.Errorf("kit cached ir logged %d times, want 1", n)
	}
}
