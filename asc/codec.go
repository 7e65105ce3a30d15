package asc

import (
	ascruntime "github.com/wippyai/asc-runtime"
)

type (
	Heap    = ascruntime.Heap
	Version = ascruntime.Version
	TypeTag = ascruntime.TypeTag
)

// Type is implemented by every value that can be laid out in guest memory.
type Type interface {
	// ToAscBytes returns the guest layout of the value, padding included.
	// The output length depends only on the content size and the layout.
	ToAscBytes() ([]byte, error)
	// ContentLen is the logical size of ascBytes without trailing padding.
	ContentLen(ascBytes []byte) int
}

// Tagged reports the class tag the guest GC needs for fresh objects.
type Tagged interface {
	AscTag() TypeTag
}

// Object is the constraint for guest classes reachable through a Ptr.
type Object[C any] interface {
	*C
	Type
	Tagged
	// FromAscBytes decodes b in place using the layout selected by v.
	FromAscBytes(b []byte, v Version) error
	// AscSize reads the object size at addr for legacy layouts, which carry
	// no header.
	AscSize(addr uint32, h Heap) (uint32, error)
}

// Encode is the free-function form of ToAscBytes.
func Encode(t Type) ([]byte, error) {
	return t.ToAscBytes()
}

// Decode reconstructs a C from bytes previously read from the heap.
func Decode[C any, PC Object[C]](b []byte, v Version) (*C, error) {
	obj := new(C)
	if err := PC(obj).FromAscBytes(b, v); err != nil {
		return nil, err
	}
	return obj, nil
}
