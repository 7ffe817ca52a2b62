package wasm

import "github.com/wippyai/wasmkit/wasm/internal/binary"

// Reader is the byte cursor the codec reads from.
type Reader = binary.Reader

// Writer is the growable byte cursor the codec writes to.
type Writer = binary.Writer

// NewReader returns a Reader over data.
func NewReader(data []byte) *Reader { return binary.NewReader(data) }

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return binary.NewWriter() }
