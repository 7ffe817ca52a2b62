package wasm

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/wasm/internal/binary"
)

// DecodeInstruction reads one instruction from r.
//
// An opcode outside the known set fails with an unknown_opcode error and no
// bytes past the opcode are consumed.
func DecodeInstruction(r *Reader) (Instruction, error) {
	start := r.Position()
	b, err := r.ReadByte()
	if err != nil {
		return Instruction{}, errors.Truncated(start, "expected opcode")
	}

	op := Opcode(b)
	if b == PrefixMisc || b == PrefixSIMD {
		sub, err := r.ReadU32()
		if err != nil {
			return Instruction{}, decodeError(r, op, err)
		}
		if sub > 0xFF {
			return Instruction{}, errors.New(errors.PhaseDecode, errors.KindUnknownOpcode).
				Offset(start).
				Opcode(uint16(b)<<8).
				Value(sub).
				Detail("unknown opcode 0x%02x 0x%x", b, sub).
				Build()
		}
		op = Opcode(uint16(b)<<8 | uint16(sub))
	}

	info, ok := opcodeTable[op]
	if !ok {
		return Instruction{}, errors.UnknownOpcode(uint16(op), start)
	}

	imm, err := decodeImmediate(r, info.imm)
	if err != nil {
		return Instruction{}, decodeError(r, op, err)
	}
	return Instruction{Opcode: op, Imm: imm}, nil
}

// decodeError maps cursor failures onto the error taxonomy.
func decodeError(r *Reader, op Opcode, err error) error {
	var werr *errors.Error
	if stderrors.As(err, &werr) {
		return err
	}
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.New(errors.PhaseDecode, errors.KindTruncated).
			Offset(r.Position()).
			Opcode(uint16(op)).
			Detail("%s: immediate truncated", op).
			Build()
	}
	kind := errors.KindInvalidData
	if stderrors.Is(err, binary.ErrOverflow) {
		kind = errors.KindOverflow
	}
	return errors.New(errors.PhaseDecode, kind).
		Offset(r.Position()).
		Opcode(uint16(op)).
		Detail("%s immediate", op).
		Cause(err).
		Build()
}

func decodeImmediate(r *Reader, kind immKind) (Immediate, error) {
	switch kind {
	case immNone:
		return nil, nil

	case immBlock:
		return readBlockType(r)

	case immLabel:
		idx, err := r.ReadU32()
		return BranchImm{LabelIdx: idx}, err

	case immBrTable:
		count, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		if int(count) > r.Len() {
			return nil, io.ErrUnexpectedEOF
		}
		labels := make([]uint32, count)
		for i := range labels {
			if labels[i], err = r.ReadU32(); err != nil {
				return nil, err
			}
		}
		def, err := r.ReadU32()
		return BrTableImm{Labels: labels, Default: def}, err

	case immCall:
		idx, err := r.ReadU32()
		return CallImm{FuncIdx: idx}, err

	case immCallIndirect:
		typeIdx, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		tableIdx, err := r.ReadU32()
		return CallIndirectImm{TypeIdx: typeIdx, TableIdx: tableIdx}, err

	case immLocal:
		idx, err := r.ReadU32()
		return LocalImm{LocalIdx: idx}, err

	case immGlobal:
		idx, err := r.ReadU32()
		return GlobalImm{GlobalIdx: idx}, err

	case immTable:
		idx, err := r.ReadU32()
		return TableImm{TableIdx: idx}, err

	case immTableInit:
		elem, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		table, err := r.ReadU32()
		return TableInitImm{ElemIdx: elem, TableIdx: table}, err

	case immTableCopy:
		dst, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		src, err := r.ReadU32()
		return TableCopyImm{DstTable: dst, SrcTable: src}, err

	case immElem:
		idx, err := r.ReadU32()
		return ElemImm{ElemIdx: idx}, err

	case immData:
		idx, err := r.ReadU32()
		return DataImm{DataIdx: idx}, err

	case immMemoryInit:
		data, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		mem, err := r.ReadU32()
		return MemoryInitImm{DataIdx: data, MemIdx: mem}, err

	case immMemoryCopy:
		dst, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		src, err := r.ReadU32()
		return MemoryCopyImm{DstMem: dst, SrcMem: src}, err

	case immMemoryIdx:
		idx, err := r.ReadU32()
		return MemoryIdxImm{MemIdx: idx}, err

	case immMemArg:
		return readMemArg(r)

	case immMemLane:
		mem, err := readMemArg(r)
		if err != nil {
			return nil, err
		}
		lane, err := r.ReadByte()
		return MemoryLaneImm{Mem: mem, Lane: lane}, err

	case immLane:
		lane, err := r.ReadByte()
		return LaneImm{Lane: lane}, err

	case immShuffle:
		var imm ShuffleImm
		buf, err := r.ReadBytes(16)
		copy(imm.Lanes[:], buf)
		return imm, err

	case immI32:
		v, err := r.ReadS32()
		return I32Imm{Value: v}, err

	case immI64:
		v, err := r.ReadS64()
		return I64Imm{Value: v}, err

	case immF32:
		v, err := r.ReadF32()
		return F32Imm{Value: v}, err

	case immF64:
		v, err := r.ReadF64()
		return F64Imm{Value: v}, err

	case immV128:
		var imm V128Imm
		buf, err := r.ReadBytes(16)
		copy(imm.Bytes[:], buf)
		return imm, err

	case immRefNull:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		t, ok := ValueTypeFromByte(b)
		if !ok || !t.IsRef() {
			return nil, fmt.Errorf("invalid heap type 0x%02x", b)
		}
		return RefNullImm{Type: t}, nil

	case immRefFunc:
		idx, err := r.ReadU32()
		return RefFuncImm{FuncIdx: idx}, err

	case immSelectType:
		count, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		if int(count) > r.Len() {
			return nil, io.ErrUnexpectedEOF
		}
		types := make([]ValueType, count)
		for i := range types {
			b, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			t, ok := ValueTypeFromByte(b)
			if !ok {
				return nil, fmt.Errorf("invalid value type 0x%02x", b)
			}
			types[i] = t
		}
		return SelectTypeImm{Types: types}, nil
	}
	return nil, fmt.Errorf("no decoder for immediate kind %d", kind)
}

func readBlockType(r *Reader) (Immediate, error) {
	start := r.Position()
	v, err := r.ReadS32()
	if err != nil {
		return nil, err
	}
	if v < 0 && v != BlockTypeVoid && !ValueType(v).Valid() {
		return nil, errors.InvalidBlockType(v, start)
	}
	return BlockImm{Type: v}, nil
}

func readMemArg(r *Reader) (MemoryImm, error) {
	align, err := r.ReadU32()
	if err != nil {
		return MemoryImm{}, err
	}
	var memIdx uint32
	if align&memArgMultiMemBit != 0 {
		if memIdx, err = r.ReadU32(); err != nil {
			return MemoryImm{}, err
		}
	}
	offset, err := r.ReadU64()
	if err != nil {
		return MemoryImm{}, err
	}
	return MemoryImm{Align: align, Offset: offset, MemIdx: memIdx}, nil
}

// EncodeInstruction writes one instruction to w. The 16-bit opcodes are split
// back into prefix byte and LEB sub-opcode. An immediate whose type does not
// match the opcode's schema is an error and nothing is written.
func EncodeInstruction(w *Writer, instr Instruction) error {
	info, ok := opcodeTable[instr.Opcode]
	if !ok {
		return errors.New(errors.PhaseEncode, errors.KindUnknownOpcode).
			Opcode(uint16(instr.Opcode)).
			Value(uint16(instr.Opcode)).
			Detail("unknown opcode %s", instr.Opcode).
			Build()
	}
	if !immMatches(info.imm, instr.Imm) {
		return errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Opcode(uint16(instr.Opcode)).
			Value(instr.Imm).
			Detail("%s: immediate %T does not match opcode", instr.Opcode, instr.Imm).
			Build()
	}

	if instr.Opcode.IsPrefixed() {
		w.Byte(byte(instr.Opcode >> 8))
		w.WriteU32(uint32(instr.Opcode & 0xFF))
	} else {
		w.Byte(byte(instr.Opcode))
	}

	switch imm := instr.Imm.(type) {
	case nil:
	case BlockImm:
		w.WriteS32(imm.Type)
	case BranchImm:
		w.WriteU32(imm.LabelIdx)
	case BrTableImm:
		w.WriteU32(uint32(len(imm.Labels)))
		for _, l := range imm.Labels {
			w.WriteU32(l)
		}
		w.WriteU32(imm.Default)
	case CallImm:
		w.WriteU32(imm.FuncIdx)
	case CallIndirectImm:
		w.WriteU32(imm.TypeIdx)
		w.WriteU32(imm.TableIdx)
	case LocalImm:
		w.WriteU32(imm.LocalIdx)
	case GlobalImm:
		w.WriteU32(imm.GlobalIdx)
	case TableImm:
		w.WriteU32(imm.TableIdx)
	case TableInitImm:
		w.WriteU32(imm.ElemIdx)
		w.WriteU32(imm.TableIdx)
	case TableCopyImm:
		w.WriteU32(imm.DstTable)
		w.WriteU32(imm.SrcTable)
	case ElemImm:
		w.WriteU32(imm.ElemIdx)
	case DataImm:
		w.WriteU32(imm.DataIdx)
	case MemoryInitImm:
		w.WriteU32(imm.DataIdx)
		w.WriteU32(imm.MemIdx)
	case MemoryCopyImm:
		w.WriteU32(imm.DstMem)
		w.WriteU32(imm.SrcMem)
	case MemoryIdxImm:
		w.WriteU32(imm.MemIdx)
	case MemoryImm:
		writeMemArg(w, imm)
	case MemoryLaneImm:
		writeMemArg(w, imm.Mem)
		w.Byte(imm.Lane)
	case LaneImm:
		w.Byte(imm.Lane)
	case ShuffleImm:
		w.WriteBytes(imm.Lanes[:])
	case I32Imm:
		w.WriteS32(imm.Value)
	case I64Imm:
		w.WriteS64(imm.Value)
	case F32Imm:
		w.WriteF32(imm.Value)
	case F64Imm:
		w.WriteF64(imm.Value)
	case V128Imm:
		w.WriteBytes(imm.Bytes[:])
	case RefNullImm:
		w.Byte(imm.Type.Byte())
	case RefFuncImm:
		w.WriteU32(imm.FuncIdx)
	case SelectTypeImm:
		w.WriteU32(uint32(len(imm.Types)))
		for _, t := range imm.Types {
			w.Byte(t.Byte())
		}
	}
	return nil
}

func writeMemArg(w *Writer, m MemoryImm) {
	w.WriteU32(m.Align)
	if m.HasMemIdx() {
		w.WriteU32(m.MemIdx)
	}
	w.WriteU64(m.Offset)
}

func immMatches(kind immKind, imm Immediate) bool {
	switch kind {
	case immNone:
		return imm == nil
	case immBlock:
		_, ok := imm.(BlockImm)
		return ok
	case immLabel:
		_, ok := imm.(BranchImm)
		return ok
	case immBrTable:
		_, ok := imm.(BrTableImm)
		return ok
	case immCall:
		_, ok := imm.(CallImm)
		return ok
	case immCallIndirect:
		_, ok := imm.(CallIndirectImm)
		return ok
	case immLocal:
		_, ok := imm.(LocalImm)
		return ok
	case immGlobal:
		_, ok := imm.(GlobalImm)
		return ok
	case immTable:
		_, ok := imm.(TableImm)
		return ok
	case immTableInit:
		_, ok := imm.(TableInitImm)
		return ok
	case immTableCopy:
		_, ok := imm.(TableCopyImm)
		return ok
	case immElem:
		_, ok := imm.(ElemImm)
		return ok
	case immData:
		_, ok := imm.(DataImm)
		return ok
	case immMemoryInit:
		_, ok := imm.(MemoryInitImm)
		return ok
	case immMemoryCopy:
		_, ok := imm.(MemoryCopyImm)
		return ok
	case immMemoryIdx:
		_, ok := imm.(MemoryIdxImm)
		return ok
	case immMemArg:
		_, ok := imm.(MemoryImm)
		return ok
	case immMemLane:
		_, ok := imm.(MemoryLaneImm)
		return ok
	case immLane:
		_, ok := imm.(LaneImm)
		return ok
	case immShuffle:
		_, ok := imm.(ShuffleImm)
		return ok
	case immI32:
		_, ok := imm.(I32Imm)
		return ok
	case immI64:
		_, ok := imm.(I64Imm)
		return ok
	case immF32:
		_, ok := imm.(F32Imm)
		return ok
	case immF64:
		_, ok := imm.(F64Imm)
		return ok
	case immV128:
		_, ok := imm.(V128Imm)
		return ok
	case immRefNull:
		_, ok := imm.(RefNullImm)
		return ok
	case immRefFunc:
		_, ok := imm.(RefFuncImm)
		return ok
	case immSelectType:
		_, ok := imm.(SelectTypeImm)
		return ok
	}
	return false
}
