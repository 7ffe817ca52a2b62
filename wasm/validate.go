package wasm

import (
	"fmt"

	"github.com/wippyai/wasmkit/errors"
)

// indexSpace holds the size of each index space, imports included.
type indexSpace struct {
	types    uint32
	funcs    uint32
	tables   uint32
	memories uint32
	globals  uint32
	elems    uint32
	data     uint32
}

func (m *Module) indexSpace() indexSpace {
	return indexSpace{
		types:    uint32(len(m.Types)),
		funcs:    uint32(m.NumImportedFuncs() + len(m.Funcs)),
		tables:   uint32(m.NumImportedTables() + len(m.Tables)),
		memories: uint32(m.NumImportedMemories() + len(m.Memories)),
		globals:  uint32(m.NumImportedGlobals() + len(m.Globals)),
		elems:    uint32(len(m.Elements)),
		data:     uint32(len(m.Data)),
	}
}

// Validate checks that every index in the module, including the ones
// inside function bodies and constant expressions, refers to an existing
// entity, and that section counts and memory limits are consistent. It does
// not type check instructions.
func (m *Module) Validate() error {
	s := m.indexSpace()
	checks := []func(indexSpace) error{
		m.checkCounts,
		m.checkImports,
		m.checkFuncs,
		m.checkMemories,
		m.checkGlobals,
		m.checkExports,
		m.checkStart,
		m.checkElements,
		m.checkData,
		m.checkBodies,
	}
	for _, check := range checks {
		if err := check(s); err != nil {
			return err
		}
	}
	return nil
}

// ParseModuleValidate parses a WebAssembly binary and validates it.
func ParseModuleValidate(data []byte) (*Module, error) {
	m, err := ParseModule(data)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func bounds(idx, n uint32, path ...string) error {
	if idx < n {
		return nil
	}
	return errors.OutOfBounds(errors.PhaseDecode, path, int(idx), int(n))
}

func invalid(path string, format string, args ...any) error {
	return errors.InvalidData(errors.PhaseDecode, []string{path}, fmt.Sprintf(format, args...))
}

func (m *Module) checkCounts(indexSpace) error {
	if len(m.Code) != len(m.Funcs) {
		return errors.Malformed(errors.PhaseDecode,
			"code section has %d entries but function section has %d", len(m.Code), len(m.Funcs))
	}
	if m.DataCount != nil && *m.DataCount != uint32(len(m.Data)) {
		return errors.Malformed(errors.PhaseDecode,
			"data count section declares %d segments but data section has %d", *m.DataCount, len(m.Data))
	}
	return nil
}

func (m *Module) checkImports(s indexSpace) error {
	for i, imp := range m.Imports {
		path := fmt.Sprintf("import[%d]", i)
		switch imp.Desc.Kind {
		case KindFunc:
			if err := bounds(imp.Desc.TypeIdx, s.types, path, "type"); err != nil {
				return err
			}
		case KindMemory:
			if imp.Desc.Memory != nil {
				if err := checkMemoryType(*imp.Desc.Memory, path); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (m *Module) checkFuncs(s indexSpace) error {
	first := uint32(m.NumImportedFuncs())
	for i, typeIdx := range m.Funcs {
		if err := bounds(typeIdx, s.types, fmt.Sprintf("func[%d]", first+uint32(i)), "type"); err != nil {
			return err
		}
	}
	return nil
}

func (m *Module) checkMemories(indexSpace) error {
	first := m.NumImportedMemories()
	for i, mem := range m.Memories {
		if err := checkMemoryType(mem, fmt.Sprintf("memory[%d]", first+i)); err != nil {
			return err
		}
	}
	return nil
}

func checkMemoryType(mem MemoryType, path string) error {
	maxPages := uint64(MemoryMaxPages32)
	if mem.Limits.Memory64 {
		maxPages = MemoryMaxPages64
	}
	if mem.Limits.Shared && mem.Limits.Max == nil {
		return invalid(path, "shared memory must have maximum limit")
	}
	if mem.Limits.Min > maxPages {
		return invalid(path, "min pages %d exceeds maximum %d", mem.Limits.Min, maxPages)
	}
	if mem.Limits.Max != nil && *mem.Limits.Max > maxPages {
		return invalid(path, "max pages %d exceeds maximum %d", *mem.Limits.Max, maxPages)
	}
	return nil
}

func (m *Module) checkGlobals(s indexSpace) error {
	first := m.NumImportedGlobals()
	for i, g := range m.Globals {
		if err := s.checkExpr(g.Init, 0, fmt.Sprintf("global[%d]", first+i), "init"); err != nil {
			return err
		}
	}
	return nil
}

func (m *Module) checkExports(s indexSpace) error {
	seen := make(map[string]bool, len(m.Exports))
	for _, exp := range m.Exports {
		path := []string{"export", exp.Name}
		if seen[exp.Name] {
			return errors.New(errors.PhaseDecode, errors.KindMalformed).
				Path(path...).
				Detail("duplicate export name %q", exp.Name).
				Build()
		}
		seen[exp.Name] = true

		var n uint32
		switch exp.Kind {
		case KindFunc:
			n = s.funcs
		case KindTable:
			n = s.tables
		case KindMemory:
			n = s.memories
		case KindGlobal:
			n = s.globals
		default:
			return errors.InvalidData(errors.PhaseDecode, path, fmt.Sprintf("unknown export kind %d", exp.Kind))
		}
		if err := bounds(exp.Idx, n, path...); err != nil {
			return err
		}
	}
	return nil
}

func (m *Module) checkStart(s indexSpace) error {
	if m.Start == nil {
		return nil
	}
	if err := bounds(*m.Start, s.funcs, "start"); err != nil {
		return err
	}
	ft := m.GetFuncType(*m.Start)
	if ft == nil {
		return invalid("start", "function %d has no type", *m.Start)
	}
	if len(ft.Params) != 0 || len(ft.Results) != 0 {
		return invalid("start", "start function must have signature [] -> [], got %s", ft)
	}
	return nil
}

func (m *Module) checkElements(s indexSpace) error {
	for i := range m.Elements {
		e := &m.Elements[i]
		path := fmt.Sprintf("elem[%d]", i)
		if e.Active() {
			if err := bounds(e.TableIdx, s.tables, path, "table"); err != nil {
				return err
			}
			if err := s.checkExpr(e.Offset, 0, path, "offset"); err != nil {
				return err
			}
		}
		for j, idx := range e.FuncIdxs {
			if err := bounds(idx, s.funcs, path, fmt.Sprintf("item[%d]", j)); err != nil {
				return err
			}
		}
		for j, expr := range e.Exprs {
			if err := s.checkExpr(expr, 0, path, fmt.Sprintf("item[%d]", j)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Module) checkData(s indexSpace) error {
	for i, d := range m.Data {
		if d.Flags == 1 {
			continue
		}
		path := fmt.Sprintf("data[%d]", i)
		if err := bounds(d.MemIdx, s.memories, path, "memory"); err != nil {
			return err
		}
		if err := s.checkExpr(d.Offset, 0, path, "offset"); err != nil {
			return err
		}
	}
	return nil
}

func (m *Module) checkBodies(s indexSpace) error {
	first := uint32(m.NumImportedFuncs())
	for i := range m.Code {
		idx := first + uint32(i)
		path := fmt.Sprintf("func[%d]", idx)
		locals := uint64(len(m.Types[m.Funcs[i]].Params))
		for _, entry := range m.Code[i].Locals {
			locals += uint64(entry.Count)
		}
		instrs, err := m.Code[i].Instructions()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := s.checkExpr(instrs, locals, path); err != nil {
			return err
		}
	}
	return nil
}

// checkExpr checks the indices named by the immediates of instrs. locals
// is zero for constant expressions.
func (s indexSpace) checkExpr(instrs []Instruction, locals uint64, path ...string) error {
	for k, in := range instrs {
		at := append(path[:len(path):len(path)], fmt.Sprintf("instr[%d]", k))
		var err error
		switch imm := in.Imm.(type) {
		case BlockImm:
			if typeIdx, ok := imm.TypeIndex(); ok {
				err = bounds(typeIdx, s.types, at...)
			}
		case CallImm:
			err = bounds(imm.FuncIdx, s.funcs, at...)
		case RefFuncImm:
			err = bounds(imm.FuncIdx, s.funcs, at...)
		case CallIndirectImm:
			if err = bounds(imm.TypeIdx, s.types, at...); err == nil {
				err = bounds(imm.TableIdx, s.tables, at...)
			}
		case LocalImm:
			if uint64(imm.LocalIdx) >= locals {
				err = errors.OutOfBounds(errors.PhaseDecode, at, int(imm.LocalIdx), int(locals))
			}
		case GlobalImm:
			err = bounds(imm.GlobalIdx, s.globals, at...)
		case TableImm:
			err = bounds(imm.TableIdx, s.tables, at...)
		case TableInitImm:
			if err = bounds(imm.TableIdx, s.tables, at...); err == nil {
				err = bounds(imm.ElemIdx, s.elems, at...)
			}
		case TableCopyImm:
			if err = bounds(imm.DstTable, s.tables, at...); err == nil {
				err = bounds(imm.SrcTable, s.tables, at...)
			}
		case ElemImm:
			err = bounds(imm.ElemIdx, s.elems, at...)
		case DataImm:
			err = bounds(imm.DataIdx, s.data, at...)
		case MemoryInitImm:
			if err = bounds(imm.MemIdx, s.memories, at...); err == nil {
				err = bounds(imm.DataIdx, s.data, at...)
			}
		case MemoryCopyImm:
			if err = bounds(imm.DstMem, s.memories, at...); err == nil {
				err = bounds(imm.SrcMem, s.memories, at...)
			}
		case MemoryIdxImm:
			err = bounds(imm.MemIdx, s.memories, at...)
		case MemoryImm:
			err = bounds(imm.MemIdx, s.memories, at...)
		case MemoryLaneImm:
			err = bounds(imm.Mem.MemIdx, s.memories, at...)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
