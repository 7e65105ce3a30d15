package value

import (
	"encoding/binary"

	"github.com/tarantool/go-option"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
)

const (
	wrappedSize = 4
	resultSize  = 8
)

// WrapSpec names the Wrapped and Result classes of one payload type.
type WrapSpec interface {
	WrappedTag() asc.TypeTag
	ResultTag() asc.TypeTag
}

// JSONWrap carries the tags of Wrapped<JsonValue> and Result<JsonValue, bool>.
type JSONWrap struct{}

func (JSONWrap) WrappedTag() asc.TypeTag { return ascruntime.TagWrappedJSONValue }
func (JSONWrap) ResultTag() asc.TypeTag  { return ascruntime.TagResultJSONValueBool }

// JSONMapWrap carries the tags of Wrapped<TypedMap<String, JsonValue>> and
// Result<TypedMap<String, JsonValue>, bool>.
type JSONMapWrap struct{}

func (JSONMapWrap) WrappedTag() asc.TypeTag { return ascruntime.TagWrappedTypedMapStringJSONValue }
func (JSONMapWrap) ResultTag() asc.TypeTag  { return ascruntime.TagResultTypedMapStringJSONValueBool }

type (
	WrappedJSON       = Wrapped[JSONValue, JSONWrap]
	WrappedJSONMap    = Wrapped[JSONMap, JSONMapWrap]
	ResultJSONBool    = Result[JSONValue, JSONWrap]
	ResultJSONMapBool = Result[JSONMap, JSONMapWrap]
)

// Wrapped boxes a pointer so that it can itself be referenced.
type Wrapped[V any, S WrapSpec] struct {
	Inner asc.Ptr[V]
}

func (w *Wrapped[V, S]) AscTag() asc.TypeTag {
	var s S
	return s.WrappedTag()
}

func (w *Wrapped[V, S]) ToAscBytes() ([]byte, error) {
	out := make([]byte, wrappedSize)
	binary.LittleEndian.PutUint32(out, w.Inner.Addr())
	return out, nil
}

func (w *Wrapped[V, S]) ContentLen(ascBytes []byte) int {
	return len(ascBytes)
}

func (w *Wrapped[V, S]) FromAscBytes(b []byte, _ asc.Version) error {
	if len(b) != wrappedSize {
		return errors.SizeMismatch(errors.PhaseDecode, w.AscTag().String(), wrappedSize, len(b))
	}
	w.Inner = asc.NewPtr[V](binary.LittleEndian.Uint32(b))
	return nil
}

func (w *Wrapped[V, S]) AscSize(uint32, asc.Heap) (uint32, error) {
	return wrappedSize, nil
}

// WrappedBool boxes a boolean, stored in a 32-bit slot.
type WrappedBool struct {
	Inner bool
}

func (w *WrappedBool) AscTag() asc.TypeTag {
	return ascruntime.TagWrappedBool
}

func (w *WrappedBool) ToAscBytes() ([]byte, error) {
	out := make([]byte, wrappedSize)
	if w.Inner {
		out[0] = 1
	}
	return out, nil
}

func (w *WrappedBool) ContentLen(ascBytes []byte) int {
	return len(ascBytes)
}

// FromAscBytes accepts only 0 and 1.
func (w *WrappedBool) FromAscBytes(b []byte, _ asc.Version) error {
	if len(b) != wrappedSize {
		return errors.SizeMismatch(errors.PhaseDecode, "WrappedBool", wrappedSize, len(b))
	}
	switch v := binary.LittleEndian.Uint32(b); v {
	case 0:
		w.Inner = false
	case 1:
		w.Inner = true
	default:
		return errors.InvalidBoolean(errors.PhaseDecode, uint64(v))
	}
	return nil
}

func (w *WrappedBool) AscSize(uint32, asc.Heap) (uint32, error) {
	return wrappedSize, nil
}

// Result is the guest Result<V, bool>: exactly one of Value and Error is
// set, the other is null.
type Result[V any, S WrapSpec] struct {
	Value asc.Ptr[Wrapped[V, S]]
	Error asc.Ptr[WrappedBool]
}

func (r *Result[V, S]) AscTag() asc.TypeTag {
	var s S
	return s.ResultTag()
}

func (r *Result[V, S]) ToAscBytes() ([]byte, error) {
	out := make([]byte, resultSize)
	binary.LittleEndian.PutUint32(out[0:], r.Value.Addr())
	binary.LittleEndian.PutUint32(out[4:], r.Error.Addr())
	return out, nil
}

func (r *Result[V, S]) ContentLen(ascBytes []byte) int {
	return len(ascBytes)
}

func (r *Result[V, S]) FromAscBytes(b []byte, _ asc.Version) error {
	if len(b) != resultSize {
		return errors.SizeMismatch(errors.PhaseDecode, r.AscTag().String(), resultSize, len(b))
	}
	r.Value = asc.NewPtr[Wrapped[V, S]](binary.LittleEndian.Uint32(b[0:]))
	r.Error = asc.NewPtr[WrappedBool](binary.LittleEndian.Uint32(b[4:]))
	return nil
}

func (r *Result[V, S]) AscSize(uint32, asc.Heap) (uint32, error) {
	return resultSize, nil
}

// Outcome is the host form of a Result: either a value or a boolean error.
type Outcome[T any] struct {
	Value option.Generic[T]
	Error option.Generic[bool]
}

// Ok returns a successful outcome.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: option.Some(v), Error: option.None[bool]()}
}

// Fail returns a failed outcome carrying flag.
func Fail[T any](flag bool) Outcome[T] {
	return Outcome[T]{Value: option.None[T](), Error: option.Some(flag)}
}

// AllocJSONResult places a Result<JsonValue, bool>.
func AllocJSONResult(h asc.Heap, o Outcome[JSON]) (asc.Ptr[ResultJSONBool], error) {
	return allocResult[JSONValue, JSONWrap](h, o, AllocJSON)
}

// ReadJSONResult decodes a Result<JsonValue, bool>.
func ReadJSONResult(h asc.Heap, p asc.Ptr[ResultJSONBool], depth int) (Outcome[JSON], error) {
	return readResult(h, p, depth, ReadJSON)
}

// AllocJSONMapResult places a Result<TypedMap<String, JsonValue>, bool>.
func AllocJSONMapResult(h asc.Heap, o Outcome[[]Field[JSON]]) (asc.Ptr[ResultJSONMapBool], error) {
	return allocResult[JSONMap, JSONMapWrap](h, o, AllocJSONMap)
}

// ReadJSONMapResult decodes a Result<TypedMap<String, JsonValue>, bool>.
func ReadJSONMapResult(h asc.Heap, p asc.Ptr[ResultJSONMapBool], depth int) (Outcome[[]Field[JSON]], error) {
	return readResult(h, p, depth, ReadJSONMap)
}

func allocResult[V any, S WrapSpec, T any](
	h asc.Heap,
	o Outcome[T],
	alloc func(asc.Heap, T) (asc.Ptr[V], error),
) (asc.Ptr[Result[V, S]], error) {
	if o.Value.IsSome() == o.Error.IsSome() {
		return asc.NullPtr, errors.Malformed(errors.PhaseEncode, "Result", "exactly one of value and error must be set")
	}

	var r Result[V, S]
	if o.Value.IsSome() {
		var zero T
		inner, err := alloc(h, o.Value.UnwrapOr(zero))
		if err != nil {
			return asc.NullPtr, err
		}
		r.Value, err = asc.AllocObj(h, &Wrapped[V, S]{Inner: inner})
		if err != nil {
			return asc.NullPtr, err
		}
	} else {
		var err error
		r.Error, err = asc.AllocObj(h, &WrappedBool{Inner: o.Error.UnwrapOr(false)})
		if err != nil {
			return asc.NullPtr, err
		}
	}
	return asc.AllocObj(h, &r)
}

func readResult[V any, S WrapSpec, T any](
	h asc.Heap,
	p asc.Ptr[Result[V, S]],
	depth int,
	read func(asc.Heap, asc.Ptr[V], int) (T, error),
) (Outcome[T], error) {
	r, err := asc.Get(h, p, depth)
	if err != nil {
		return Outcome[T]{}, err
	}
	if r.Value.IsNull() == r.Error.IsNull() {
		return Outcome[T]{}, errors.Malformed(errors.PhaseDecode, r.AscTag().String(),
			"exactly one of value and error must be set")
	}

	if r.Error.IsNull() {
		w, err := asc.Get(h, r.Value, depth+1)
		if err != nil {
			return Outcome[T]{}, err
		}
		v, err := read(h, w.Inner, depth+2)
		if err != nil {
			return Outcome[T]{}, err
		}
		return Ok(v), nil
	}

	w, err := asc.Get(h, r.Error, depth+1)
	if err != nil {
		return Outcome[T]{}, err
	}
	return Fail[T](w.Inner), nil
}
