package value

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
)

const enumSize = 16

// Kind is the discriminant type of an Enum. The kind type fixes the class
// tag of the Enum instantiation.
type Kind interface {
	~uint32
	EnumTag() asc.TypeTag
}

// Enum is a tagged union: a kind and an untyped 64-bit payload.
type Enum[K Kind] struct {
	Kind    K
	Payload uint64
}

// Bool interprets the payload as a boolean. Only 0 and 1 are accepted.
func (e *Enum[K]) Bool() (bool, error) {
	switch e.Payload {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.InvalidBoolean(errors.PhaseDecode, e.Payload)
	}
}

// I32 interprets the low 32 bits of the payload as a signed integer.
func (e *Enum[K]) I32() int32 {
	return int32(uint32(e.Payload))
}

// I64 interprets the payload as a signed integer.
func (e *Enum[K]) I64() int64 {
	return int64(e.Payload)
}

// F64 interprets the payload as an IEEE 754 double.
func (e *Enum[K]) F64() float64 {
	return math.Float64frombits(e.Payload)
}

// PayloadPtr interprets the payload of e as a pointer to C. Bits above the
// low 32 must be clear.
func PayloadPtr[C any, K Kind](e *Enum[K]) (asc.Ptr[C], error) {
	if e.Payload > math.MaxUint32 {
		return asc.NullPtr, errors.Malformed(errors.PhaseDecode, e.AscTag().String(),
			"payload %#x is not a pointer", e.Payload)
	}
	return asc.NewPtr[C](uint32(e.Payload)), nil
}

// BoolPayload encodes b as an Enum payload.
func BoolPayload(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// I32Payload sign-extends i into an Enum payload.
func I32Payload(i int32) uint64 {
	return uint64(int64(i))
}

// PtrPayload encodes p as an Enum payload.
func PtrPayload[C any](p asc.Ptr[C]) uint64 {
	return uint64(p.Addr())
}

func (e *Enum[K]) AscTag() asc.TypeTag {
	var k K
	return k.EnumTag()
}

func (e *Enum[K]) ToAscBytes() ([]byte, error) {
	out := make([]byte, enumSize)
	binary.LittleEndian.PutUint32(out[0:], uint32(e.Kind))
	binary.LittleEndian.PutUint64(out[8:], e.Payload)
	return out, nil
}

func (e *Enum[K]) ContentLen(ascBytes []byte) int {
	return len(ascBytes)
}

func (e *Enum[K]) FromAscBytes(b []byte, _ asc.Version) error {
	if len(b) != enumSize {
		return errors.SizeMismatch(errors.PhaseDecode, e.AscTag().String(), enumSize, len(b))
	}
	e.Kind = K(binary.LittleEndian.Uint32(b[0:]))
	e.Payload = binary.LittleEndian.Uint64(b[8:])
	return nil
}

func (e *Enum[K]) AscSize(uint32, asc.Heap) (uint32, error) {
	return enumSize, nil
}

// allocEnum places an Enum with the given kind and payload.
func allocEnum[K Kind](h asc.Heap, kind K, payload uint64) (asc.Ptr[Enum[K]], error) {
	return asc.AllocObj(h, &Enum[K]{Kind: kind, Payload: payload})
}

func unknownKind[K Kind](e *Enum[K]) error {
	return errors.Malformed(errors.PhaseDecode, e.AscTag().String(), "unknown kind %d", uint32(e.Kind))
}
