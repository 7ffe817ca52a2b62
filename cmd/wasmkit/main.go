package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasmkit/ir"
	"github.com/wippyai/wasmkit/kit"
	"github.com/wippyai/wasmkit/wasm"
)

// allFuncs selects every function for -func; noFunc disables it.
const (
	allFuncs = -1
	noFunc   = -2
)

type options struct {
	sections  bool
	disasm    bool
	funcIdx   int
	roundtrip bool
	verify    bool
}

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to core wasm module")
		sections    = flag.Bool("sections", false, "List raw sections")
		disasm      = flag.Bool("disasm", false, "Print flat instruction streams of every function")
		funcIdx     = flag.Int("func", noFunc, "Print lifted IR of one function (-1 for all)")
		roundtrip   = flag.Bool("roundtrip", false, "Re-encode the module and compare bytes")
		verify      = flag.Bool("verify", false, "Compile original, re-encoded and lowered bytes with wazero")
		interactive = flag.Bool("i", false, "Interactive function browser")
		verbose     = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: wasmkit -wasm <file.wasm> [-sections] [-disasm] [-func idx] [-roundtrip] [-verify] [-v]")
		fmt.Fprintln(os.Stderr, "       wasmkit -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger = l
	}
	defer logger.Sync() //nolint:errcheck
	wasm.SetLogger(logger.Named("wasm"))
	ir.SetLogger(logger.Named("ir"))
	kit.SetLogger(logger.Named("kit"))

	data, err := os.ReadFile(*wasmFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read file: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*wasmFile, data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := options{
		sections:  *sections,
		disasm:    *disasm,
		funcIdx:   *funcIdx,
		roundtrip: *roundtrip,
		verify:    *verify,
	}
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(os.Stdout, *wasmFile, data, opts, styled); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1)

type printer struct {
	w      io.Writer
	styled bool
}

func (p printer) header(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if p.styled {
		text = headerStyle.Render(text)
	}
	fmt.Fprintf(p.w, "\n%s\n", text)
}

func (p printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func run(w io.Writer, name string, data []byte, opts options, styled bool) error {
	k := kit.New(data, kit.WithLazyIR())
	p := printer{w: w, styled: styled}

	desc, err := k.Module()
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	p.printf("Module: %s\n", name)
	p.printf("Types: %d\n", len(desc.Types))
	p.printf("Imports: %d\n", len(desc.Imports))
	p.printf("Functions: %d (%d imported)\n", desc.NumImportedFuncs()+len(desc.Funcs), desc.NumImportedFuncs())
	p.printf("Exports: %d\n", len(desc.Exports))

	if opts.sections {
		if err := printSections(p, k); err != nil {
			return err
		}
	}
	if opts.disasm {
		if err := printDisasm(p, desc); err != nil {
			return err
		}
	}
	if opts.funcIdx != noFunc {
		if err := printIR(p, k, opts.funcIdx); err != nil {
			return err
		}
	}
	if opts.roundtrip {
		if err := roundtrip(p, data, desc); err != nil {
			return err
		}
	}
	if opts.verify {
		if err := verify(context.Background(), p, k); err != nil {
			return err
		}
	}
	return nil
}

func printSections(p printer, k *kit.Kit) error {
	sections, err := k.Sections()
	if err != nil {
		return fmt.Errorf("sections: %w", err)
	}
	p.header("Sections")
	for _, sec := range sections {
		p.printf("  %2d %-10s offset %-8d size %d\n", sec.ID, sec.Name, sec.Offset, len(sec.Data))
	}
	return nil
}

func printDisasm(p printer, desc *wasm.Module) error {
	imported := uint32(desc.NumImportedFuncs())
	for i := range desc.Code {
		idx := imported + uint32(i)
		instrs, err := desc.Code[i].Instructions()
		if err != nil {
			return fmt.Errorf("func[%d]: %w", idx, err)
		}
		p.header("func[%d] %s", idx, funcTypeString(desc.GetFuncType(idx)))
		depth := 1
		for _, in := range instrs {
			if in.Opcode == wasm.OpEnd || in.Opcode == wasm.OpElse {
				depth--
			}
			p.printf("%s%s\n", strings.Repeat("  ", max(depth, 0)), in)
			if in.Opcode.Delta() > 0 || in.Opcode == wasm.OpElse {
				depth++
			}
		}
	}
	return nil
}

func printIR(p printer, k *kit.Kit, idx int) error {
	m, err := k.IR()
	if err != nil {
		return err
	}
	indices := []int{idx}
	if idx == allFuncs {
		indices = indices[:0]
		for i := range m.Functions {
			indices = append(indices, i)
		}
	}
	for _, i := range indices {
		fn, err := k.Function(i)
		if err != nil {
			return err
		}
		p.header("%s", funcTitle(fn))
		if fn.Imported() {
			p.printf("  (import %q %q)\n", fn.Import.Module, fn.Import.Name)
			continue
		}
		if err := ir.Fprint(p.w, fn.Body); err != nil {
			return err
		}
	}
	return nil
}

func roundtrip(p printer, data []byte, desc *wasm.Module) error {
	out, err := desc.Encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	p.header("Round trip")
	if bytes.Equal(out, data) {
		p.printf("  identical (%d bytes)\n", len(out))
		return nil
	}
	at := 0
	for at < len(out) && at < len(data) && out[at] == data[at] {
		at++
	}
	return fmt.Errorf("re-encoded module differs at offset %d (%d bytes, original %d)", at, len(out), len(data))
}

func funcTitle(fn *ir.Function) string {
	title := fmt.Sprintf("func[%d] %s", fn.Index, funcTypeString(fn.Signature))
	if len(fn.Exports) > 0 {
		title += " export " + strings.Join(fn.Exports, ",")
	}
	return title
}

func funcTypeString(ft *wasm.FuncType) string {
	if ft == nil {
		return "(unknown type)"
	}
	return ft.String()
}
