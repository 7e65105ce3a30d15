package asc

import (
	"encoding/binary"
	"math"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

// Elem is the inline codec of a fixed-size array element. Element size
// equals its alignment, so elements pack without padding.
//
// Every Elem also names the tag of the Array class holding it, which keeps
// the Array[T, E] to tag mapping fixed at compile time.
type Elem[T any] interface {
	Size() int
	Put(dst []byte, v T)
	Get(src []byte) (T, error)
	ArrayTag() TypeTag
}

// TypedElem is an Elem that can also back a typed array view.
type TypedElem[T any] interface {
	Elem[T]
	TypedArrayTag() TypeTag
}

// Scalar element codecs.
type (
	Bool struct{}
	U8   struct{}
	U16  struct{}
	U32  struct{}
	U64  struct{}
	I8   struct{}
	I16  struct{}
	I32  struct{}
	I64  struct{}
	F32  struct{}
	F64  struct{}
)

func (Bool) Size() int         { return 1 }
func (Bool) ArrayTag() TypeTag { return ascruntime.TagArrayBool }
func (Bool) Put(dst []byte, v bool) {
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
}

// Get accepts only 0 and 1.
func (Bool) Get(src []byte) (bool, error) {
	switch src[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.InvalidBoolean(errors.PhaseDecode, uint64(src[0]))
	}
}

func (U8) Size() int                     { return 1 }
func (U8) ArrayTag() TypeTag             { return ascruntime.TagArrayU8 }
func (U8) TypedArrayTag() TypeTag        { return ascruntime.TagUint8Array }
func (U8) Put(dst []byte, v uint8)       { dst[0] = v }
func (U8) Get(src []byte) (uint8, error) { return src[0], nil }

func (U16) Size() int                { return 2 }
func (U16) ArrayTag() TypeTag        { return ascruntime.TagArrayU16 }
func (U16) TypedArrayTag() TypeTag   { return ascruntime.TagUint16Array }
func (U16) Put(dst []byte, v uint16) { binary.LittleEndian.PutUint16(dst, v) }
func (U16) Get(src []byte) (uint16, error) {
	return binary.LittleEndian.Uint16(src), nil
}

func (U32) Size() int                { return 4 }
func (U32) ArrayTag() TypeTag        { return ascruntime.TagArrayU32 }
func (U32) TypedArrayTag() TypeTag   { return ascruntime.TagUint32Array }
func (U32) Put(dst []byte, v uint32) { binary.LittleEndian.PutUint32(dst, v) }
func (U32) Get(src []byte) (uint32, error) {
	return binary.LittleEndian.Uint32(src), nil
}

func (U64) Size() int                { return 8 }
func (U64) ArrayTag() TypeTag        { return ascruntime.TagArrayU64 }
func (U64) TypedArrayTag() TypeTag   { return ascruntime.TagUint64Array }
func (U64) Put(dst []byte, v uint64) { binary.LittleEndian.PutUint64(dst, v) }
func (U64) Get(src []byte) (uint64, error) {
	return binary.LittleEndian.Uint64(src), nil
}

func (I8) Size() int                    { return 1 }
func (I8) ArrayTag() TypeTag            { return ascruntime.TagArrayI8 }
func (I8) TypedArrayTag() TypeTag       { return ascruntime.TagInt8Array }
func (I8) Put(dst []byte, v int8)       { dst[0] = uint8(v) }
func (I8) Get(src []byte) (int8, error) { return int8(src[0]), nil }

func (I16) Size() int              { return 2 }
func (I16) ArrayTag() TypeTag      { return ascruntime.TagArrayI16 }
func (I16) TypedArrayTag() TypeTag { return ascruntime.TagInt16Array }
func (I16) Put(dst []byte, v int16) {
	binary.LittleEndian.PutUint16(dst, uint16(v))
}
func (I16) Get(src []byte) (int16, error) {
	return int16(binary.LittleEndian.Uint16(src)), nil
}

func (I32) Size() int              { return 4 }
func (I32) ArrayTag() TypeTag      { return ascruntime.TagArrayI32 }
func (I32) TypedArrayTag() TypeTag { return ascruntime.TagInt32Array }
func (I32) Put(dst []byte, v int32) {
	binary.LittleEndian.PutUint32(dst, uint32(v))
}
func (I32) Get(src []byte) (int32, error) {
	return int32(binary.LittleEndian.Uint32(src)), nil
}

func (I64) Size() int              { return 8 }
func (I64) ArrayTag() TypeTag      { return ascruntime.TagArrayI64 }
func (I64) TypedArrayTag() TypeTag { return ascruntime.TagInt64Array }
func (I64) Put(dst []byte, v int64) {
	binary.LittleEndian.PutUint64(dst, uint64(v))
}
func (I64) Get(src []byte) (int64, error) {
	return int64(binary.LittleEndian.Uint64(src)), nil
}

func (F32) Size() int              { return 4 }
func (F32) ArrayTag() TypeTag      { return ascruntime.TagArrayF32 }
func (F32) TypedArrayTag() TypeTag { return ascruntime.TagFloat32Array }
func (F32) Put(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}
func (F32) Get(src []byte) (float32, error) {
	return math.Float32frombits(binary.LittleEndian.Uint32(src)), nil
}

func (F64) Size() int              { return 8 }
func (F64) ArrayTag() TypeTag      { return ascruntime.TagArrayF64 }
func (F64) TypedArrayTag() TypeTag { return ascruntime.TagFloat64Array }
func (F64) Put(dst []byte, v float64) {
	binary.LittleEndian.PutUint64(dst, math.Float64bits(v))
}
func (F64) Get(src []byte) (float64, error) {
	return math.Float64frombits(binary.LittleEndian.Uint64(src)), nil
}

// PtrElem stores a Ptr[C] inline as a u32 address. Array classes of
// pointers embed it and add their own ArrayTag.
type PtrElem[C any] struct{}

func (PtrElem[C]) Size() int { return 4 }

func (PtrElem[C]) Put(dst []byte, p Ptr[C]) {
	binary.LittleEndian.PutUint32(dst, p.Addr())
}

func (PtrElem[C]) Get(src []byte) (Ptr[C], error) {
	return Ptr[C](binary.LittleEndian.Uint32(src)), nil
}

// StringRef is the element of Array<String>.
type StringRef struct{ PtrElem[String] }

func (StringRef) ArrayTag() TypeTag { return ascruntime.TagArrayString }

// Uint8ArrayRef is the element of Array<Uint8Array>.
type Uint8ArrayRef struct{ PtrElem[Uint8Array] }

func (Uint8ArrayRef) ArrayTag() TypeTag { return ascruntime.TagArrayUint8Array }

// encodeElems packs values with e into one buffer.
func encodeElems[T any, E Elem[T]](values []T) ([]byte, error) {
	var e E
	size := uint64(e.Size()) * uint64(len(values))
	if !fitsU32(size) {
		return nil, errors.SizeNotFit(errors.PhaseEncode, e.ArrayTag().String(), size)
	}
	out := make([]byte, size)
	for i, v := range values {
		e.Put(out[i*e.Size():], v)
	}
	return out, nil
}

// decodeElems unpacks count values starting at byte offset of content.
func decodeElems[T any, E Elem[T]](content []byte, offset, count uint32) ([]T, error) {
	var e E
	need := uint64(offset) + uint64(count)*uint64(e.Size())
	if need > uint64(len(content)) {
		return nil, errors.New(errors.PhaseDecode, errors.KindSizeMismatch).
			Type(e.ArrayTag().String()).
			Detail("%d elements at offset %d need %d bytes, buffer has %d", count, offset, need, len(content)).
			Value(need).
			Build()
	}
	out := make([]T, count)
	size := e.Size()
	pos := int(offset)
	for i := range out {
		v, err := e.Get(content[pos : pos+size])
		if err != nil {
			return nil, err
		}
		out[i] = v
		pos += size
	}
	return out, nil
}
