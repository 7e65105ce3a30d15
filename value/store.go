package value

import (
	"fmt"
	"math/big"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/bignum"
	"github.com/wippyai/asc-runtime/errors"
)

// StoreKind discriminates store values.
type StoreKind uint32

const (
	StoreKindString StoreKind = iota
	StoreKindInt
	StoreKindBigDecimal
	StoreKindBool
	StoreKindArray
	StoreKindNull
	StoreKindBytes
	StoreKindBigInt
)

var storeKindNames = [...]string{
	StoreKindString:     "String",
	StoreKindInt:        "Int",
	StoreKindBigDecimal: "BigDecimal",
	StoreKindBool:       "Bool",
	StoreKindArray:      "Array",
	StoreKindNull:       "Null",
	StoreKindBytes:      "Bytes",
	StoreKindBigInt:     "BigInt",
}

func (k StoreKind) String() string {
	if int(k) < len(storeKindNames) {
		return storeKindNames[k]
	}
	return fmt.Sprintf("StoreKind(%d)", uint32(k))
}

func (StoreKind) EnumTag() asc.TypeTag { return ascruntime.TagStoreValue }

// StoreValue is the guest StoreValue class.
type StoreValue = Enum[StoreKind]

// StoreRef is the element of Array<StoreValue>.
type StoreRef struct{ asc.PtrElem[StoreValue] }

func (StoreRef) ArrayTag() asc.TypeTag { return ascruntime.TagArrayStoreValue }

// ArrayStoreValue is Array<StoreValue>.
type ArrayStoreValue = asc.Array[asc.Ptr[StoreValue], StoreRef]

// Store is the host form of a store value. The dynamic value is one of
// string, int32, bignum.Decimal, bool, []Store, nil, []byte or *big.Int,
// matching Kind.
type Store struct {
	kind StoreKind
	val  any
}

func StoreString(s string) Store             { return Store{StoreKindString, s} }
func StoreInt(i int32) Store                 { return Store{StoreKindInt, i} }
func StoreBigDecimal(d bignum.Decimal) Store { return Store{StoreKindBigDecimal, d} }
func StoreBool(b bool) Store                 { return Store{StoreKindBool, b} }
func StoreArray(items ...Store) Store        { return Store{StoreKindArray, items} }
func StoreNull() Store                       { return Store{StoreKindNull, nil} }
func StoreBytes(b []byte) Store              { return Store{StoreKindBytes, b} }
func StoreBigInt(x *big.Int) Store           { return Store{StoreKindBigInt, x} }

// Kind returns the discriminant.
func (s Store) Kind() StoreKind {
	return s.kind
}

// Value returns the dynamic value.
func (s Store) Value() any {
	return s.val
}

// AllocStore places s and everything it references in h.
func AllocStore(h asc.Heap, s Store) (asc.Ptr[StoreValue], error) {
	payload, err := storePayload(h, s)
	if err != nil {
		return asc.NullPtr, err
	}
	return allocEnum(h, s.kind, payload)
}

func storePayload(h asc.Heap, s Store) (uint64, error) {
	switch s.kind {
	case StoreKindString:
		str, _ := s.val.(string)
		return allocString(h, str)
	case StoreKindInt:
		i, _ := s.val.(int32)
		return I32Payload(i), nil
	case StoreKindBigDecimal:
		d, _ := s.val.(bignum.Decimal)
		p, err := bignum.AllocBigDecimal(h, d)
		return PtrPayload(p), err
	case StoreKindBool:
		b, _ := s.val.(bool)
		return BoolPayload(b), nil
	case StoreKindArray:
		items, _ := s.val.([]Store)
		ptrs := make([]asc.Ptr[StoreValue], 0, len(items))
		for _, item := range items {
			p, err := AllocStore(h, item)
			if err != nil {
				return 0, err
			}
			ptrs = append(ptrs, p)
		}
		p, err := asc.AllocArray[asc.Ptr[StoreValue], StoreRef](h, ptrs)
		return PtrPayload(p), err
	case StoreKindNull:
		return 0, nil
	case StoreKindBytes:
		b, _ := s.val.([]byte)
		p, err := asc.AllocTypedArray[uint8, asc.U8](h, b)
		return PtrPayload(p), err
	case StoreKindBigInt:
		x, ok := s.val.(*big.Int)
		if !ok || x == nil {
			x = new(big.Int)
		}
		p, err := bignum.AllocBigInt(h, x)
		return PtrPayload(p), err
	default:
		return 0, errors.Malformed(errors.PhaseEncode, "StoreValue", "unknown kind %d", uint32(s.kind))
	}
}

// ReadStore decodes the store value at p on behalf of a decoder depth levels
// deep.
func ReadStore(h asc.Heap, p asc.Ptr[StoreValue], depth int) (Store, error) {
	e, err := asc.Get(h, p, depth)
	if err != nil {
		return Store{}, err
	}

	switch e.Kind {
	case StoreKindString:
		s, err := readString(h, e, depth)
		return StoreString(s), err
	case StoreKindInt:
		return StoreInt(e.I32()), nil
	case StoreKindBigDecimal:
		ptr, err := PayloadPtr[bignum.BigDecimal](e)
		if err != nil {
			return Store{}, err
		}
		obj, err := asc.Get(h, ptr, depth+1)
		if err != nil {
			return Store{}, err
		}
		d, err := obj.Decimal(h, depth+1)
		return StoreBigDecimal(d), err
	case StoreKindBool:
		b, err := e.Bool()
		return StoreBool(b), err
	case StoreKindArray:
		ptr, err := PayloadPtr[ArrayStoreValue](e)
		if err != nil {
			return Store{}, err
		}
		items, err := readArray(h, ptr, depth, ReadStore)
		return StoreArray(items...), err
	case StoreKindNull:
		return StoreNull(), nil
	case StoreKindBytes:
		b, err := readBytes(h, e, depth)
		return StoreBytes(b), err
	case StoreKindBigInt:
		ptr, err := PayloadPtr[bignum.BigInt](e)
		if err != nil {
			return Store{}, err
		}
		obj, err := asc.Get(h, ptr, depth+1)
		if err != nil {
			return Store{}, err
		}
		x, err := obj.Big(h)
		return StoreBigInt(x), err
	default:
		return Store{}, unknownKind(e)
	}
}

func allocString(h asc.Heap, s string) (uint64, error) {
	str, err := asc.StringFromGo(s, h.APIVersion())
	if err != nil {
		return 0, err
	}
	p, err := asc.AllocObj(h, str)
	return PtrPayload(p), err
}

func readString[K Kind](h asc.Heap, e *Enum[K], depth int) (string, error) {
	ptr, err := PayloadPtr[asc.String](e)
	if err != nil {
		return "", err
	}
	s, err := asc.Get(h, ptr, depth+1)
	if err != nil {
		return "", err
	}
	return s.Value(), nil
}

func readBytes[K Kind](h asc.Heap, e *Enum[K], depth int) ([]byte, error) {
	ptr, err := PayloadPtr[asc.Uint8Array](e)
	if err != nil {
		return nil, err
	}
	ta, err := asc.Get(h, ptr, depth+1)
	if err != nil {
		return nil, err
	}
	return ta.ToSlice(h)
}

// readArray decodes an array of enum pointers, each element two levels
// below depth.
func readArray[K Kind, E asc.Elem[asc.Ptr[Enum[K]]], T any](
	h asc.Heap,
	p asc.Ptr[asc.Array[asc.Ptr[Enum[K]], E]],
	depth int,
	read func(asc.Heap, asc.Ptr[Enum[K]], int) (T, error),
) ([]T, error) {
	arr, err := asc.Get(h, p, depth+1)
	if err != nil {
		return nil, err
	}
	ptrs, err := arr.ToSlice(h)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(ptrs))
	for _, ep := range ptrs {
		v, err := read(h, ep, depth+2)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
