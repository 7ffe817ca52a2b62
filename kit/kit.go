package kit

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/ir"
	"github.com/wippyai/wasmkit/wasm"
)

// Option configures a Kit.
type Option func(*Kit)

// WithLogger sets the logger used for cache events. It defaults to the
// package logger.
func WithLogger(l *zap.Logger) Option {
	return func(k *Kit) { k.log = l }
}

// WithLazyIR makes IR extract the module without lifting function bodies.
// Bodies are lifted on first access through Function or Lift.
func WithLazyIR() Option {
	return func(k *Kit) { k.lazy = true }
}

// Kit caches the decoded forms of one module binary: raw sections, the
// module descriptor and the IR module. Each form is computed on first use
// and dropped by Load. A Kit is safe for concurrent use.
type Kit struct {
	log  *zap.Logger
	lazy bool

	mu       sync.Mutex
	data     []byte
	gen      uint64
	sections []wasm.Section
	module   *wasm.Module
	ir       *ir.Module
}

// New returns a Kit holding a copy of data.
func New(data []byte, opts ...Option) *Kit {
	k := &Kit{}
	for _, opt := range opts {
		opt(k)
	}
	if k.log == nil {
		k.log = Logger()
	}
	k.Load(data)
	return k
}

// Load replaces the module binary with a copy of data and invalidates every
// cached form. Values handed out before Load stay usable but are detached
// from the Kit.
func (k *Kit) Load(data []byte) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.data = append([]byte(nil), data...)
	k.sections = nil
	k.module = nil
	k.ir = nil
	k.gen++
	k.log.Debug("kit loaded",
		zap.Int("bytes", len(k.data)),
		zap.Uint64("generation", k.gen))
}

// Generation counts Load calls, including the one made by New.
func (k *Kit) Generation() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.gen
}

// Bytes returns a copy of the current module binary.
func (k *Kit) Bytes() []byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]byte(nil), k.data...)
}

// Sections returns the raw sections of the module binary.
func (k *Kit) Sections() ([]wasm.Section, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.loadSections()
}

// Module returns the parsed module descriptor.
func (k *Kit) Module() (*wasm.Module, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.loadModule()
}

// IR returns the IR form of the module. With WithLazyIR, function bodies
// may still be nil.
func (k *Kit) IR() (*ir.Module, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.loadIR()
}

// Function returns function idx of the IR module with its body lifted.
func (k *Kit) Function(idx int) (*ir.Function, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, err := k.loadIR()
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(m.Functions) {
		return nil, errors.OutOfBounds(errors.PhaseLoad, []string{"func"}, idx, len(m.Functions))
	}
	fn := m.Functions[idx]
	if err := m.Lift(fn); err != nil {
		return nil, err
	}
	return fn, nil
}

// Lift lifts the body of fn, which must come from the current IR module.
// A function obtained before the last Load is stale.
func (k *Kit) Lift(fn *ir.Function) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.ir == nil || int(fn.Index) >= len(k.ir.Functions) || k.ir.Functions[fn.Index] != fn {
		return errors.New(errors.PhaseLoad, errors.KindStale).
			Path(fmt.Sprintf("func[%d]", fn.Index)).
			Value(k.gen).
			Detail("function does not belong to generation %d", k.gen).
			Build()
	}
	return k.ir.Lift(fn)
}

func (k *Kit) loadSections() ([]wasm.Section, error) {
	if k.sections != nil {
		return k.sections, nil
	}
	sections, err := wasm.SplitSections(k.data)
	if err != nil {
		return nil, err
	}
	k.sections = sections
	k.log.Debug("kit cached sections", zap.Int("count", len(sections)), zap.Uint64("generation", k.gen))
	return sections, nil
}

func (k *Kit) loadModule() (*wasm.Module, error) {
	if k.module != nil {
		return k.module, nil
	}
	m, err := wasm.ParseModule(k.data)
	if err != nil {
		return nil, err
	}
	k.module = m
	k.log.Debug("kit cached module", zap.Uint64("generation", k.gen))
	return m, nil
}

func (k *Kit) loadIR() (*ir.Module, error) {
	if k.ir != nil {
		return k.ir, nil
	}
	desc, err := k.loadModule()
	if err != nil {
		return nil, err
	}
	var opts []ir.ExtractOption
	if k.lazy {
		opts = append(opts, ir.WithoutBodies())
	}
	m, err := ir.Extract(desc, opts...)
	if err != nil {
		return nil, err
	}
	k.ir = m
	k.log.Debug("kit cached ir",
		zap.Int("functions", len(m.Functions)),
		zap.Bool("lazy", k.lazy),
		zap.Uint64("generation", k.gen))
	return m, nil
}
