package wasm

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/wasmkit/wasm/internal/binary"
)

// ParseModule parses a WebAssembly binary module.
//
// Constant expressions are decoded into instructions. Function bodies keep
// their raw code bytes; FuncBody.Instructions decodes them on demand.
func ParseModule(data []byte) (*Module, error) {
	sections, err := SplitSections(data)
	if err != nil {
		return nil, err
	}

	m := &Module{}
	for _, sec := range sections {
		sr := binary.NewReaderAt(sec.Data, sec.Offset)
		var perr error
		switch sec.ID {
		case SectionCustom:
			m.CustomSections = append(m.CustomSections, CustomSection{Name: sec.Name, Data: sec.Data})
			continue
		case SectionType:
			perr = parseTypeSection(sr, m)
		case SectionImport:
			perr = parseImportSection(sr, m)
		case SectionFunction:
			perr = parseFunctionSection(sr, m)
		case SectionTable:
			perr = parseTableSection(sr, m)
		case SectionMemory:
			perr = parseMemorySection(sr, m)
		case SectionGlobal:
			perr = parseGlobalSection(sr, m)
		case SectionExport:
			perr = parseExportSection(sr, m)
		case SectionStart:
			perr = parseStartSection(sr, m)
		case SectionElement:
			perr = parseElementSection(sr, m)
		case SectionDataCount:
			perr = parseDataCountSection(sr, m)
		case SectionCode:
			perr = parseCodeSection(sr, m)
		case SectionData:
			perr = parseDataSection(sr, m)
		}
		if perr != nil {
			return nil, fmt.Errorf("%s section: %w", sec.Name, perr)
		}
		if sr.Len() != 0 {
			return nil, fmt.Errorf("%s section: %d trailing bytes", sec.Name, sr.Len())
		}
	}

	if len(m.Funcs) != len(m.Code) {
		return nil, fmt.Errorf("function and code section counts differ: %d != %d", len(m.Funcs), len(m.Code))
	}
	Logger().Debug("parsed module",
		zap.Int("bytes", len(data)),
		zap.Int("sections", len(sections)),
		zap.Int("types", len(m.Types)),
		zap.Int("imports", len(m.Imports)),
		zap.Int("functions", len(m.Funcs)))
	return m, nil
}

// readCount reads a vector length and rejects counts that could not fit in
// the remaining input at minSize bytes per element.
func readCount(r *binary.Reader, minSize int) (uint32, error) {
	count, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if uint64(count)*uint64(minSize) > uint64(r.Len()) {
		return 0, fmt.Errorf("count %d exceeds remaining %d bytes: %w", count, r.Len(), io.ErrUnexpectedEOF)
	}
	return count, nil
}

func parseTypeSection(r *binary.Reader, m *Module) error {
	count, err := readCount(r, 3)
	if err != nil {
		return err
	}
	m.Types = make([]FuncType, count)
	for i := range m.Types {
		form, err := r.ReadByte()
		if err != nil {
			return err
		}
		if form != FuncTypeByte {
			return fmt.Errorf("type %d: unsupported type form 0x%02x", i, form)
		}
		params, err := readValueTypes(r)
		if err != nil {
			return fmt.Errorf("type %d params: %w", i, err)
		}
		results, err := readValueTypes(r)
		if err != nil {
			return fmt.Errorf("type %d results: %w", i, err)
		}
		m.Types[i] = FuncType{Params: params, Results: results}
	}
	return nil
}

func readValueTypes(r *binary.Reader) ([]ValueType, error) {
	count, err := readCount(r, 1)
	if err != nil {
		return nil, err
	}
	types := make([]ValueType, count)
	for i := range types {
		if types[i], err = readValueType(r); err != nil {
			return nil, err
		}
	}
	return types, nil
}

func readValueType(r *binary.Reader) (ValueType, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	t, ok := ValueTypeFromByte(b)
	if !ok {
		return 0, fmt.Errorf("invalid value type 0x%02x", b)
	}
	return t, nil
}

func parseImportSection(r *binary.Reader, m *Module) error {
	count, err := readCount(r, 4)
	if err != nil {
		return err
	}
	m.Imports = make([]Import, count)
	for i := range m.Imports {
		module, err := r.ReadName()
		if err != nil {
			return err
		}
		name, err := r.ReadName()
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return err
		}

		imp := Import{Module: module, Name: name, Desc: ImportDesc{Kind: kind}}

		switch kind {
		case KindFunc:
			imp.Desc.TypeIdx, err = r.ReadU32()
			if err != nil {
				return err
			}
		case KindTable:
			table, err := readTableType(r)
			if err != nil {
				return err
			}
			imp.Desc.Table = &table
		case KindMemory:
			memory, err := readMemoryType(r)
			if err != nil {
				return err
			}
			imp.Desc.Memory = &memory
		case KindGlobal:
			global, err := readGlobalType(r)
			if err != nil {
				return err
			}
			imp.Desc.Global = &global
		default:
			return fmt.Errorf("unknown import kind: %d", kind)
		}

		m.Imports[i] = imp
	}
	return nil
}

func parseFunctionSection(r *binary.Reader, m *Module) error {
	count, err := readCount(r, 1)
	if err != nil {
		return err
	}
	m.Funcs = make([]uint32, count)
	for i := range m.Funcs {
		if m.Funcs[i], err = r.ReadU32(); err != nil {
			return err
		}
	}
	return nil
}

func parseTableSection(r *binary.Reader, m *Module) error {
	count, err := readCount(r, 2)
	if err != nil {
		return err
	}
	m.Tables = make([]TableType, count)
	for i := range m.Tables {
		if m.Tables[i], err = readTableType(r); err != nil {
			return err
		}
	}
	return nil
}

func parseMemorySection(r *binary.Reader, m *Module) error {
	count, err := readCount(r, 2)
	if err != nil {
		return err
	}
	m.Memories = make([]MemoryType, count)
	for i := range m.Memories {
		if m.Memories[i], err = readMemoryType(r); err != nil {
			return err
		}
	}
	return nil
}

func parseGlobalSection(r *binary.Reader, m *Module) error {
	count, err := readCount(r, 3)
	if err != nil {
		return err
	}
	m.Globals = make([]Global, count)
	for i := range m.Globals {
		globalType, err := readGlobalType(r)
		if err != nil {
			return err
		}
		init, err := DecodeExpression(r)
		if err != nil {
			return fmt.Errorf("global %d init: %w", i, err)
		}
		m.Globals[i] = Global{Type: globalType, Init: init}
	}
	return nil
}

func parseExportSection(r *binary.Reader, m *Module) error {
	count, err := readCount(r, 3)
	if err != nil {
		return err
	}
	m.Exports = make([]Export, count)
	for i := range m.Exports {
		name, err := r.ReadName()
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return err
		}
		if kind > KindGlobal {
			return fmt.Errorf("invalid export kind: 0x%02x", kind)
		}
		idx, err := r.ReadU32()
		if err != nil {
			return err
		}
		m.Exports[i] = Export{Name: name, Kind: kind, Idx: idx}
	}
	return nil
}

func parseStartSection(r *binary.Reader, m *Module) error {
	idx, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.Start = &idx
	return nil
}

func parseElementSection(r *binary.Reader, m *Module) error {
	count, err := readCount(r, 2)
	if err != nil {
		return err
	}
	m.Elements = make([]Element, count)
	for i := range m.Elements {
		flags, err := r.ReadU32()
		if err != nil {
			return err
		}
		if flags > 7 {
			return fmt.Errorf("invalid element segment flags: %d", flags)
		}

		elem := Element{Flags: flags, Type: ValFuncRef}

		// Bit 0: passive or declarative, no offset
		// Bit 1: explicit table index when active, elemkind/reftype follows
		// Bit 2: elements are expressions
		hasTableIdx := flags&0x02 != 0 && flags&0x01 == 0
		hasOffset := flags&0x01 == 0
		usesExprs := flags&0x04 != 0

		if hasTableIdx {
			if elem.TableIdx, err = r.ReadU32(); err != nil {
				return err
			}
		}
		if hasOffset {
			if elem.Offset, err = DecodeExpression(r); err != nil {
				return fmt.Errorf("element %d offset: %w", i, err)
			}
		}

		if flags&0x03 != 0 {
			if usesExprs {
				if elem.Type, err = readValueType(r); err != nil {
					return err
				}
				if !elem.Type.IsRef() {
					return fmt.Errorf("element %d: %s is not a reference type", i, elem.Type)
				}
			} else {
				if elem.ElemKind, err = r.ReadByte(); err != nil {
					return err
				}
				if elem.ElemKind != ElemKindFuncRef {
					return fmt.Errorf("element %d: unsupported elemkind 0x%02x", i, elem.ElemKind)
				}
			}
		}

		vecCount, err := readCount(r, 1)
		if err != nil {
			return err
		}
		if usesExprs {
			elem.Exprs = make([][]Instruction, vecCount)
			for j := range elem.Exprs {
				if elem.Exprs[j], err = DecodeExpression(r); err != nil {
					return fmt.Errorf("element %d expr %d: %w", i, j, err)
				}
			}
		} else {
			elem.FuncIdxs = make([]uint32, vecCount)
			for j := range elem.FuncIdxs {
				if elem.FuncIdxs[j], err = r.ReadU32(); err != nil {
					return err
				}
			}
		}

		m.Elements[i] = elem
	}
	return nil
}

func parseDataCountSection(r *binary.Reader, m *Module) error {
	count, err := r.ReadU32()
	if err != nil {
		return err
	}
	m.DataCount = &count
	return nil
}

func parseCodeSection(r *binary.Reader, m *Module) error {
	count, err := readCount(r, 2)
	if err != nil {
		return err
	}
	m.Code = make([]FuncBody, count)
	for i := range m.Code {
		bodySize, err := r.ReadU32()
		if err != nil {
			return err
		}
		bodyAt := r.Position()
		bodyData, err := r.ReadBytes(int(bodySize))
		if err != nil {
			return err
		}

		br := binary.NewReaderAt(bodyData, bodyAt)
		localCount, err := readCount(br, 2)
		if err != nil {
			return fmt.Errorf("body %d locals: %w", i, err)
		}
		locals := make([]LocalEntry, localCount)
		var total uint64
		for j := range locals {
			n, err := br.ReadU32()
			if err != nil {
				return err
			}
			t, err := readValueType(br)
			if err != nil {
				return fmt.Errorf("body %d local %d: %w", i, j, err)
			}
			total += uint64(n)
			if total > maxLocals {
				return fmt.Errorf("body %d: too many locals", i)
			}
			locals[j] = LocalEntry{Count: n, ValType: t}
		}

		codeAt := br.Position()
		m.Code[i] = FuncBody{Locals: locals, Code: br.ReadRemaining(), Offset: codeAt}
	}
	return nil
}

// maxLocals bounds the expanded local count of one function body.
const maxLocals = 50000

func parseDataSection(r *binary.Reader, m *Module) error {
	count, err := readCount(r, 2)
	if err != nil {
		return err
	}
	m.Data = make([]DataSegment, count)
	for i := range m.Data {
		flags, err := r.ReadU32()
		if err != nil {
			return err
		}
		if flags > 2 {
			return fmt.Errorf("invalid data segment flags: %d", flags)
		}

		seg := DataSegment{Flags: flags}

		// flags=0: active, memIdx=0, offset, data
		// flags=1: passive, data only
		// flags=2: active, memIdx, offset, data
		if flags == 2 {
			if seg.MemIdx, err = r.ReadU32(); err != nil {
				return err
			}
		}
		if flags != 1 {
			if seg.Offset, err = DecodeExpression(r); err != nil {
				return fmt.Errorf("data %d offset: %w", i, err)
			}
		}

		initLen, err := r.ReadU32()
		if err != nil {
			return err
		}
		if seg.Init, err = r.ReadBytes(int(initLen)); err != nil {
			return err
		}

		m.Data[i] = seg
	}
	return nil
}

func readLimits(r *binary.Reader) (Limits, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return Limits{}, err
	}
	if flags&^(LimitsHasMax|LimitsShared|LimitsMemory64) != 0 {
		return Limits{}, fmt.Errorf("invalid limits flags 0x%02x", flags)
	}

	l := Limits{
		Shared:   flags&LimitsShared != 0,
		Memory64: flags&LimitsMemory64 != 0,
	}

	if l.Memory64 {
		if l.Min, err = r.ReadU64(); err != nil {
			return Limits{}, err
		}
		if flags&LimitsHasMax != 0 {
			maxVal, err := r.ReadU64()
			if err != nil {
				return Limits{}, err
			}
			l.Max = &maxVal
		}
	} else {
		minVal, err := r.ReadU32()
		if err != nil {
			return Limits{}, err
		}
		l.Min = uint64(minVal)
		if flags&LimitsHasMax != 0 {
			maxVal, err := r.ReadU32()
			if err != nil {
				return Limits{}, err
			}
			max64 := uint64(maxVal)
			l.Max = &max64
		}
	}

	if l.Max != nil && l.Min > *l.Max {
		return Limits{}, fmt.Errorf("limits min (%d) exceeds max (%d)", l.Min, *l.Max)
	}
	return l, nil
}

func readTableType(r *binary.Reader) (TableType, error) {
	elemType, err := readValueType(r)
	if err != nil {
		return TableType{}, err
	}
	if !elemType.IsRef() {
		return TableType{}, fmt.Errorf("table element type %s is not a reference type", elemType)
	}
	limits, err := readLimits(r)
	if err != nil {
		return TableType{}, err
	}
	return TableType{ElemType: elemType, Limits: limits}, nil
}

func readMemoryType(r *binary.Reader) (MemoryType, error) {
	limits, err := readLimits(r)
	if err != nil {
		return MemoryType{}, err
	}
	return MemoryType{Limits: limits}, nil
}

func readGlobalType(r *binary.Reader) (GlobalType, error) {
	valType, err := readValueType(r)
	if err != nil {
		return GlobalType{}, err
	}
	mut, err := r.ReadByte()
	if err != nil {
		return GlobalType{}, err
	}
	if mut > 1 {
		return GlobalType{}, fmt.Errorf("invalid global mutability 0x%02x", mut)
	}
	return GlobalType{ValType: valType, Mutable: mut == 1}, nil
}
