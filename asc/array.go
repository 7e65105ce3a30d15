package asc

import (
	"encoding/binary"
	"math"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

const (
	legacyArraySize  = 8
	currentArraySize = 16
)

// arrayLayout is one binary form of Array<T>.
type arrayLayout[T any] interface {
	Type
	toSlice(h Heap) ([]T, error)
	legacy() bool
}

// Array is AssemblyScript's Array<T>, stored as a header object pointing at
// an ArrayBuffer of packed elements. The header has two binary-incompatible
// forms; the one in use is chosen once from the API version and never
// changes:
//
//	legacy  (<= 0.0.4)  buffer u32, length u32
//	current             buffer u32, dataStart u32, byteLength u32, length i32
//
// E is the element codec and fixes the class tag of each instantiation.
type Array[T any, E Elem[T]] struct {
	layout arrayLayout[T]
}

// Common instantiations.
type (
	ArrayBool       = Array[bool, Bool]
	ArrayU8         = Array[uint8, U8]
	ArrayU16        = Array[uint16, U16]
	ArrayU32        = Array[uint32, U32]
	ArrayU64        = Array[uint64, U64]
	ArrayI8         = Array[int8, I8]
	ArrayI16        = Array[int16, I16]
	ArrayI32        = Array[int32, I32]
	ArrayI64        = Array[int64, I64]
	ArrayF32        = Array[float32, F32]
	ArrayF64        = Array[float64, F64]
	ArrayString     = Array[Ptr[String], StringRef]
	ArrayUint8Array = Array[Ptr[Uint8Array], Uint8ArrayRef]
)

// NewArray places the element buffer in h and returns the array header
// value for h's API version. The header itself is not allocated; pass it to
// AllocObj for that.
func NewArray[T any, E Elem[T]](h Heap, content []T) (*Array[T, E], error) {
	v := h.APIVersion()
	if err := checkArrayLen[T, E](len(content), v); err != nil {
		return nil, err
	}
	buf, err := newElemBuffer[T, E](content, v)
	if err != nil {
		return nil, err
	}
	bufPtr, err := AllocObj(h, buf)
	if err != nil {
		return nil, err
	}

	if ascruntime.IsLegacy(v) {
		return &Array[T, E]{layout: &legacyArray[T, E]{
			buffer: bufPtr,
			length: uint32(len(content)),
		}}, nil
	}

	byteLength, err := ReadLen(h, bufPtr)
	if err != nil {
		return nil, err
	}
	return &Array[T, E]{layout: &currentArray[T, E]{
		buffer:     bufPtr,
		dataStart:  bufPtr.Addr(),
		byteLength: byteLength,
		length:     int32(len(content)),
	}}, nil
}

// checkArrayLen rejects element counts the header length field cannot hold:
// u32 for the legacy layout, i32 for the current one.
func checkArrayLen[T any, E Elem[T]](n int, v Version) error {
	limit := uint64(math.MaxInt32)
	if ascruntime.IsLegacy(v) {
		limit = math.MaxUint32
	}
	if uint64(n) > limit {
		var elem E
		return errors.SizeNotFit(errors.PhaseEncode, elem.ArrayTag().String(), uint64(n))
	}
	return nil
}

// AllocArray builds the array and places its header, returning the pointer
// the guest uses for it.
func AllocArray[T any, E Elem[T]](h Heap, content []T) (Ptr[Array[T, E]], error) {
	arr, err := NewArray[T, E](h, content)
	if err != nil {
		return NullPtr, err
	}
	return AllocObj(h, arr)
}

// Legacy reports whether the legacy layout is in use.
func (a *Array[T, E]) Legacy() bool {
	return a.layout != nil && a.layout.legacy()
}

// ToSlice reads the element buffer through h and decodes every element.
func (a *Array[T, E]) ToSlice(h Heap) ([]T, error) {
	if a.layout == nil {
		return nil, errors.Malformed(errors.PhaseDecode, a.AscTag().String(), "uninitialized array")
	}
	return a.layout.toSlice(h)
}

func (a *Array[T, E]) AscTag() TypeTag {
	var e E
	return e.ArrayTag()
}

func (a *Array[T, E]) ToAscBytes() ([]byte, error) {
	if a.layout == nil {
		return nil, errors.Malformed(errors.PhaseEncode, a.AscTag().String(), "uninitialized array")
	}
	return a.layout.ToAscBytes()
}

func (a *Array[T, E]) ContentLen(b []byte) int {
	return len(b)
}

// FromAscBytes applies the same version boundary as NewArray, so a header
// decoded under a declared version always yields the layout that version
// encodes.
func (a *Array[T, E]) FromAscBytes(b []byte, v Version) error {
	typ := a.AscTag().String()
	if ascruntime.IsLegacy(v) {
		if err := fixedSize(b, legacyArraySize, typ); err != nil {
			return err
		}
		a.layout = &legacyArray[T, E]{
			buffer: Ptr[ArrayBuffer](binary.LittleEndian.Uint32(b[0:])),
			length: binary.LittleEndian.Uint32(b[4:]),
		}
		return nil
	}
	if err := fixedSize(b, currentArraySize, typ); err != nil {
		return err
	}
	a.layout = &currentArray[T, E]{
		buffer:     Ptr[ArrayBuffer](binary.LittleEndian.Uint32(b[0:])),
		dataStart:  binary.LittleEndian.Uint32(b[4:]),
		byteLength: binary.LittleEndian.Uint32(b[8:]),
		length:     int32(binary.LittleEndian.Uint32(b[12:])),
	}
	return nil
}

func (a *Array[T, E]) AscSize(uint32, Heap) (uint32, error) {
	return legacyArraySize, nil
}

type legacyArray[T any, E Elem[T]] struct {
	buffer Ptr[ArrayBuffer]
	length uint32
}

func (a *legacyArray[T, E]) legacy() bool { return true }

func (a *legacyArray[T, E]) ToAscBytes() ([]byte, error) {
	out := make([]byte, legacyArraySize)
	binary.LittleEndian.PutUint32(out[0:], a.buffer.Addr())
	binary.LittleEndian.PutUint32(out[4:], a.length)
	return out, nil
}

func (a *legacyArray[T, E]) ContentLen(b []byte) int { return len(b) }

func (a *legacyArray[T, E]) toSlice(h Heap) ([]T, error) {
	buf, err := ReadObj(h, a.buffer)
	if err != nil {
		return nil, err
	}
	return bufferElems[T, E](buf, 0, a.length)
}

type currentArray[T any, E Elem[T]] struct {
	buffer     Ptr[ArrayBuffer]
	dataStart  uint32
	byteLength uint32
	length     int32
}

func (a *currentArray[T, E]) legacy() bool { return false }

func (a *currentArray[T, E]) ToAscBytes() ([]byte, error) {
	out := make([]byte, currentArraySize)
	binary.LittleEndian.PutUint32(out[0:], a.buffer.Addr())
	binary.LittleEndian.PutUint32(out[4:], a.dataStart)
	binary.LittleEndian.PutUint32(out[8:], a.byteLength)
	binary.LittleEndian.PutUint32(out[12:], uint32(a.length))
	return out, nil
}

func (a *currentArray[T, E]) ContentLen(b []byte) int { return len(b) }

func (a *currentArray[T, E]) toSlice(h Heap) ([]T, error) {
	var e E
	typ := e.ArrayTag().String()
	if a.buffer.IsNull() {
		return nil, errors.Malformed(errors.PhaseDecode, typ, "null buffer pointer")
	}
	if a.length < 0 {
		return nil, errors.Malformed(errors.PhaseDecode, typ, "negative length %d", a.length)
	}
	if a.dataStart < a.buffer.Addr() {
		return nil, errors.Malformed(errors.PhaseDecode, typ,
			"dataStart %d precedes buffer %d", a.dataStart, a.buffer.Addr())
	}
	buf, err := ReadObj(h, a.buffer)
	if err != nil {
		return nil, err
	}
	return bufferElems[T, E](buf, a.dataStart-a.buffer.Addr(), uint32(a.length))
}
