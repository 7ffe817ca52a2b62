package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode  Phase = "decode"  // bytes to instructions or module
	PhaseEncode  Phase = "encode"  // instructions or module to bytes
	PhaseLift    Phase = "lift"    // flat stream to tree IR
	PhaseLower   Phase = "lower"   // tree IR to flat stream
	PhaseExtract Phase = "extract" // module descriptor to IR module
	PhaseLoad    Phase = "load"    // format cache
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownOpcode    Kind = "unknown_opcode"
	KindTruncated        Kind = "truncated"
	KindInvalidBlockType Kind = "invalid_block_type"
	KindUnbalanced       Kind = "unbalanced"
	KindInvalidData      Kind = "invalid_data"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindOverflow         Kind = "overflow"
	KindInvariant        Kind = "invariant"
	KindUnhandled        Kind = "unhandled_opcode"
	KindUnsupported      Kind = "unsupported"
	KindMalformed        Kind = "malformed"
	KindStale            Kind = "stale"
)

// Error is the structured error type used throughout the toolkit
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	// Offset is the byte position in the input, or -1 when unknown.
	Offset int
	// Opcode is the raw opcode involved, or 0 when not applicable.
	Opcode uint16
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Offset >= 0 && (e.Kind == KindUnknownOpcode || e.Kind == KindTruncated || e.Kind == KindInvalidBlockType) {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Path sets the location path (section, function, ...)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the byte offset
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Opcode sets the opcode involved
func (b *Builder) Opcode(op uint16) *Builder {
	b.err.Opcode = op
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnknownOpcode creates an error for an opcode outside the known set.
func UnknownOpcode(op uint16, offset int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownOpcode,
		Opcode: op,
		Offset: offset,
		Value:  op,
		Detail: fmt.Sprintf("unknown opcode 0x%02x", op),
	}
}

// Truncated creates an error for input that ends mid-instruction or mid-expression.
func Truncated(offset int, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTruncated,
		Offset: offset,
		Detail: detail,
	}
}

// InvalidBlockType creates an error for a negative block type that is neither void nor a value type.
func InvalidBlockType(value int32, offset int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidBlockType,
		Offset: offset,
		Value:  value,
		Detail: fmt.Sprintf("invalid block type %d", value),
	}
}

// Unbalanced creates an error for an instruction stream whose block structure does not close.
func Unbalanced(phase Phase, delta int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnbalanced,
		Offset: -1,
		Value:  delta,
		Detail: fmt.Sprintf("depth delta %d, want -1", delta),
	}
}

// Invariant creates an error for a broken lifter or cursor invariant.
func Invariant(phase Phase, format string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvariant,
		Offset: -1,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Unhandled creates an error for an opcode the codec knows but the lifter does not model.
func Unhandled(phase Phase, op uint16, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnhandled,
		Opcode: op,
		Offset: -1,
		Value:  op,
		Detail: fmt.Sprintf("unhandled opcode %s (0x%02x)", name, op),
	}
}

// Malformed creates an error for structurally invalid input detected after decoding.
func Malformed(phase Phase, format string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformed,
		Offset: -1,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Offset: -1,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Offset: -1,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Offset: -1,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: -1,
		Detail: detail,
		Cause:  cause,
	}
}
