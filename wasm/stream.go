package wasm

import (
	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/wasm/internal/binary"
)

// DecodeExpression reads one expression: instructions up to and including
// the end that closes depth 0. The returned stream always finishes with that
// end, which acts as the sentinel for consumers. Running out of input first
// is a truncated error.
func DecodeExpression(r *Reader) ([]Instruction, error) {
	var instrs []Instruction
	depth := 0
	for {
		if r.Len() == 0 {
			return nil, errors.New(errors.PhaseDecode, errors.KindTruncated).
				Offset(r.Position()).
				Value(depth).
				Detail("expression ended at depth %d without end", depth).
				Build()
		}
		instr, err := DecodeInstruction(r)
		if err != nil {
			return nil, err
		}
		if instr.Opcode == OpEnd && depth == 0 {
			return append(instrs, instr), nil
		}
		depth += instr.Opcode.Delta()
		instrs = append(instrs, instr)
	}
}

// EncodeExpression writes instrs as one expression. The stream must close
// exactly one more block than it opens, and only on its last instruction;
// otherwise nothing is written.
func EncodeExpression(w *Writer, instrs []Instruction) error {
	if err := checkBalance(instrs); err != nil {
		return err
	}
	tmp := binary.NewWriterSize(len(instrs) * 2)
	for _, instr := range instrs {
		if err := EncodeInstruction(tmp, instr); err != nil {
			return err
		}
	}
	w.WriteBytes(tmp.Bytes())
	return nil
}

func checkBalance(instrs []Instruction) error {
	depth := 0
	for i, instr := range instrs {
		depth += instr.Opcode.Delta()
		if depth < 0 && i != len(instrs)-1 {
			return errors.New(errors.PhaseEncode, errors.KindUnbalanced).
				Value(i).
				Detail("expression closes at instruction %d of %d", i, len(instrs)).
				Build()
		}
	}
	if depth != -1 {
		return errors.Unbalanced(errors.PhaseEncode, depth)
	}
	return nil
}

// DecodeInstructions decodes every instruction in code without tracking
// structure.
func DecodeInstructions(code []byte) ([]Instruction, error) {
	r := NewReader(code)
	var instrs []Instruction
	for r.Len() > 0 {
		instr, err := DecodeInstruction(r)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, instr)
	}
	return instrs, nil
}

// EncodeInstructions encodes instrs back to back without structural checks.
func EncodeInstructions(instrs []Instruction) ([]byte, error) {
	w := NewWriter()
	for _, instr := range instrs {
		if err := EncodeInstruction(w, instr); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}
