package main

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wasmkit/ir"
	"github.com/wippyai/wasmkit/kit"
)

type variant struct {
	name  string
	build func() ([]byte, error)
}

// verify checks the index references of the module, then compiles the
// original binary, its re-encoding and the module rebuilt from lowered IR
// bodies. Compilation runs wazero's validator.
func verify(ctx context.Context, p printer, k *kit.Kit) error {
	desc, err := k.Module()
	if err != nil {
		return err
	}
	p.header("Verify")
	if err := desc.Validate(); err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	p.printf("  %-10s ok\n", "indices")

	runtime := wazero.NewRuntimeWithConfig(ctx,
		wazero.NewRuntimeConfigInterpreter().WithCoreFeatures(api.CoreFeaturesV2))
	defer runtime.Close(ctx)

	variants := []variant{
		{"original", func() ([]byte, error) { return k.Bytes(), nil }},
		{"re-encoded", desc.Encode},
		{"lowered", func() ([]byte, error) { return lowered(k) }},
	}

	for _, v := range variants {
		data, err := v.build()
		if err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
		compiled, err := runtime.CompileModule(ctx, data)
		if err != nil {
			return fmt.Errorf("%s: compile: %w", v.name, err)
		}
		if err := compiled.Close(ctx); err != nil {
			return err
		}
		p.printf("  %-10s ok (%d bytes)\n", v.name, len(data))
	}
	return nil
}

// lowered lifts every function and encodes a copy of the module with the
// lowered bodies.
func lowered(k *kit.Kit) ([]byte, error) {
	desc, err := k.Module()
	if err != nil {
		return nil, err
	}
	m, err := k.IR()
	if err != nil {
		return nil, err
	}
	for i := range m.Functions {
		if _, err := k.Function(i); err != nil {
			return nil, err
		}
	}
	out := *desc
	if err := ir.LowerCode(&out, m); err != nil {
		return nil, err
	}
	return out.Encode()
}
