package asc

import (
	"encoding/binary"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

const typedArraySize = 12

// TypedArray is a typed view over an ArrayBuffer:
//
//	buffer u32, byteOffset u32, byteLength u32   (legacy)
//	buffer u32, dataStart u32,  byteLength u32   (current)
//
// The legacy second field is relative to the buffer content; the current one
// is an absolute address inside it.
type TypedArray[T any, E TypedElem[T]] struct {
	buffer     Ptr[ArrayBuffer]
	offset     uint32
	byteLength uint32
	legacy     bool
}

type (
	Int8Array    = TypedArray[int8, I8]
	Int16Array   = TypedArray[int16, I16]
	Int32Array   = TypedArray[int32, I32]
	Int64Array   = TypedArray[int64, I64]
	Uint8Array   = TypedArray[uint8, U8]
	Uint16Array  = TypedArray[uint16, U16]
	Uint32Array  = TypedArray[uint32, U32]
	Uint64Array  = TypedArray[uint64, U64]
	Float32Array = TypedArray[float32, F32]
	Float64Array = TypedArray[float64, F64]
)

// NewTypedArray places the backing buffer in h and returns the view.
func NewTypedArray[T any, E TypedElem[T]](h Heap, content []T) (*TypedArray[T, E], error) {
	v := h.APIVersion()
	buf, err := newElemBuffer[T, E](content, v)
	if err != nil {
		return nil, err
	}
	bufPtr, err := AllocObj(h, buf)
	if err != nil {
		return nil, err
	}

	ta := &TypedArray[T, E]{
		buffer:     bufPtr,
		byteLength: buf.ByteLength(),
		legacy:     ascruntime.IsLegacy(v),
	}
	if !ta.legacy {
		ta.offset = bufPtr.Addr()
	}
	return ta, nil
}

// AllocTypedArray builds the view and places it, returning its pointer.
func AllocTypedArray[T any, E TypedElem[T]](h Heap, content []T) (Ptr[TypedArray[T, E]], error) {
	ta, err := NewTypedArray[T, E](h, content)
	if err != nil {
		return NullPtr, err
	}
	return AllocObj(h, ta)
}

// Legacy reports whether the legacy layout is in use.
func (a *TypedArray[T, E]) Legacy() bool {
	return a.legacy
}

// ByteLength is the size of the view in bytes.
func (a *TypedArray[T, E]) ByteLength() uint32 {
	return a.byteLength
}

// ToSlice reads the backing buffer and decodes the viewed elements.
func (a *TypedArray[T, E]) ToSlice(h Heap) ([]T, error) {
	var e E
	typ := e.TypedArrayTag().String()
	if a.buffer.IsNull() {
		return nil, errors.Malformed(errors.PhaseDecode, typ, "null buffer pointer")
	}
	if a.byteLength%uint32(e.Size()) != 0 {
		return nil, errors.Malformed(errors.PhaseDecode, typ,
			"byteLength %d is not a multiple of element size %d", a.byteLength, e.Size())
	}

	offset := a.offset
	if !a.legacy {
		if a.offset < a.buffer.Addr() {
			return nil, errors.Malformed(errors.PhaseDecode, typ,
				"dataStart %d precedes buffer %d", a.offset, a.buffer.Addr())
		}
		offset = a.offset - a.buffer.Addr()
	}

	buf, err := ReadObj(h, a.buffer)
	if err != nil {
		return nil, err
	}
	return bufferElems[T, E](buf, offset, a.byteLength/uint32(e.Size()))
}

func (a *TypedArray[T, E]) AscTag() TypeTag {
	var e E
	return e.TypedArrayTag()
}

func (a *TypedArray[T, E]) ToAscBytes() ([]byte, error) {
	out := make([]byte, typedArraySize)
	binary.LittleEndian.PutUint32(out[0:], a.buffer.Addr())
	binary.LittleEndian.PutUint32(out[4:], a.offset)
	binary.LittleEndian.PutUint32(out[8:], a.byteLength)
	return out, nil
}

func (a *TypedArray[T, E]) ContentLen(b []byte) int {
	return len(b)
}

func (a *TypedArray[T, E]) FromAscBytes(b []byte, v Version) error {
	if err := fixedSize(b, typedArraySize, a.AscTag().String()); err != nil {
		return err
	}
	*a = TypedArray[T, E]{
		buffer:     Ptr[ArrayBuffer](binary.LittleEndian.Uint32(b[0:])),
		offset:     binary.LittleEndian.Uint32(b[4:]),
		byteLength: binary.LittleEndian.Uint32(b[8:]),
		legacy:     ascruntime.IsLegacy(v),
	}
	return nil
}

func (a *TypedArray[T, E]) AscSize(uint32, Heap) (uint32, error) {
	return typedArraySize, nil
}
