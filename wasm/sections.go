package wasm

import (
	stderrors "errors"
	"fmt"

	"github.com/wippyai/wasmkit/errors"
	"github.com/wippyai/wasmkit/wasm/internal/binary"
)

// Parsing errors returned by SplitSections and ParseModule.
var (
	ErrInvalidMagic   = stderrors.New("invalid wasm magic number")
	ErrInvalidVersion = stderrors.New("invalid wasm version")
)

// Section is one raw section of a module binary.
type Section struct {
	// Name is the custom section name, or the section kind for known ids.
	Name string
	// Data is the section payload; it aliases the input.
	Data []byte
	// Offset is the byte position of Data within the module binary.
	Offset int
	ID     byte
}

// SplitSections checks the module header and splits the remaining bytes into
// sections without interpreting their payloads. Known sections must appear at
// most once and in canonical order; custom sections may appear anywhere.
func SplitSections(data []byte) ([]Section, error) {
	r := binary.NewReader(data)

	magic, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}
	version, err := r.ReadU32LE()
	if err != nil {
		return nil, r.WrapError("header", err)
	}
	if version != Version {
		return nil, ErrInvalidVersion
	}

	var sections []Section
	lastOrder := 0
	for r.Len() > 0 {
		start := r.Position()
		id, _ := r.ReadByte()
		if id >= numSectionIDs {
			return nil, errors.New(errors.PhaseDecode, errors.KindMalformed).
				Offset(start).
				Value(id).
				Detail("unknown section id 0x%02x at offset %d", id, start).
				Build()
		}

		if id != SectionCustom {
			order := sectionOrder[id]
			if order == lastOrder {
				return nil, errors.Malformed(errors.PhaseDecode, "duplicate %s section at offset %d", SectionName(id), start)
			}
			if order < lastOrder {
				return nil, errors.Malformed(errors.PhaseDecode, "%s section at offset %d appears out of order", SectionName(id), start)
			}
			lastOrder = order
		}

		size, err := r.ReadU32()
		if err != nil {
			return nil, r.WrapError("section size", err)
		}
		payloadAt := r.Position()
		payload, err := r.ReadBytes(int(size))
		if err != nil {
			return nil, r.WrapError(SectionName(id)+" section", err)
		}

		sec := Section{ID: id, Name: SectionName(id), Data: payload, Offset: payloadAt}
		if id == SectionCustom {
			sr := binary.NewReaderAt(payload, payloadAt)
			name, err := sr.ReadName()
			if err != nil {
				return nil, fmt.Errorf("custom section: %w", sr.WrapError("name", err))
			}
			sec.Name = name
			sec.Offset = sr.Position()
			sec.Data = sr.ReadRemaining()
		}
		sections = append(sections, sec)
	}
	return sections, nil
}
