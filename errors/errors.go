package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode  Phase = "encode"  // Go to guest bytes
	PhaseDecode  Phase = "decode"  // guest bytes to Go
	PhaseAlloc   Phase = "alloc"   // placing an object in the heap
	PhaseConvert Phase = "convert" // number conversions
	PhaseHeap    Phase = "heap"    // heap backend access
)

// Kind categorizes the error
type Kind string

const (
	KindSizeNotFit       Kind = "size_not_fit"
	KindSizeMismatch     Kind = "size_mismatch"
	KindOverflow         Kind = "overflow"
	KindMalformedInput   Kind = "malformed_input"
	KindInvalidBoolean   Kind = "invalid_boolean"
	KindRecursionLimit   Kind = "recursion_limit"
	KindNumberOutOfRange Kind = "number_out_of_range"
	KindHeapAccess       Kind = "heap_access"
)

// Sentinels matching any error of the given Kind, regardless of phase.
var (
	ErrSizeNotFit       = &Error{Kind: KindSizeNotFit}
	ErrSizeMismatch     = &Error{Kind: KindSizeMismatch}
	ErrOverflow         = &Error{Kind: KindOverflow}
	ErrMalformedInput   = &Error{Kind: KindMalformedInput}
	ErrInvalidBoolean   = &Error{Kind: KindInvalidBoolean}
	ErrRecursionLimit   = &Error{Kind: KindRecursionLimit}
	ErrNumberOutOfRange = &Error{Kind: KindNumberOutOfRange}
	ErrHeapAccess       = &Error{Kind: KindHeapAccess}
)

// Error is the structured error type returned by every codec operation
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Type != "" {
		b.WriteString(" in ")
		b.WriteString(e.Type)
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

// Is reports whether target matches this error. A target without a phase
// matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Type sets the name of the guest type being processed
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
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

// Convenience constructors, one per taxonomy entry

// SizeNotFit reports content whose byte size exceeds the u32 size field.
func SizeNotFit(phase Phase, typ string, size uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeNotFit,
		Type:   typ,
		Detail: fmt.Sprintf("size %d does not fit in u32", size),
		Value:  size,
	}
}

// SizeMismatch reports a byte length disagreeing with the expected one.
func SizeMismatch(phase Phase, typ string, expected, actual int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeMismatch,
		Type:   typ,
		Detail: fmt.Sprintf("expected %d bytes, got %d", expected, actual),
		Value:  actual,
	}
}

// Overflow carries the magnitude that could not be represented.
func Overflow(phase Phase, value uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value overflow: %d", value),
		Value:  value,
	}
}

// Malformed creates a generic decode failure.
func Malformed(phase Phase, typ, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindMalformedInput,
		Type:   typ,
		Detail: detail,
	}
}

// InvalidBoolean reports a boolean byte other than 0 or 1.
func InvalidBoolean(phase Phase, value uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidBoolean,
		Type:   "bool",
		Detail: fmt.Sprintf("bad boolean value: %d", value),
		Value:  value,
	}
}

// RecursionLimit reports a decode that went deeper than limit.
func RecursionLimit(depth, limit int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindRecursionLimit,
		Detail: fmt.Sprintf("maximum recursion depth %d reached at depth %d", limit, depth),
		Value:  depth,
	}
}

// NumberOutOfRange reports a lossy big number conversion.
func NumberOutOfRange(typ, detail string) *Error {
	return &Error{
		Phase:  PhaseConvert,
		Kind:   KindNumberOutOfRange,
		Type:   typ,
		Detail: detail,
	}
}

// HeapAccess wraps a heap backend failure at addr.
func HeapAccess(cause error, addr, length uint32) *Error {
	return &Error{
		Phase:  PhaseHeap,
		Kind:   KindHeapAccess,
		Detail: fmt.Sprintf("invalid access at %d (length %d)", addr, length),
		Cause:  cause,
		Value:  addr,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is forwards to the standard library errors.Is.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As forwards to the standard library errors.As.
func As(err error, target any) bool { return stderrors.As(err, target) }
