package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/bignum"
	"github.com/wippyai/asc-runtime/value"
)

// decoder reads the object at addr and returns a value the formatters can
// encode as JSON or msgpack.
type decoder func(h asc.Heap, addr uint32) (any, error)

var decoders = map[string]decoder{
	"string": func(h asc.Heap, addr uint32) (any, error) {
		s, err := asc.ReadObj(h, asc.NewPtr[asc.String](addr))
		if err != nil {
			return nil, err
		}
		return s.Value(), nil
	},
	"store": func(h asc.Heap, addr uint32) (any, error) {
		return value.ReadStore(h, asc.NewPtr[value.StoreValue](addr), 0)
	},
	"store-map": func(h asc.Heap, addr uint32) (any, error) {
		f, err := value.ReadStoreMap(h, asc.NewPtr[value.StoreMap](addr), 0)
		return fields[value.Store](f), err
	},
	"json": func(h asc.Heap, addr uint32) (any, error) {
		return value.ReadJSON(h, asc.NewPtr[value.JSONValue](addr), 0)
	},
	"json-map": func(h asc.Heap, addr uint32) (any, error) {
		f, err := value.ReadJSONMap(h, asc.NewPtr[value.JSONMap](addr), 0)
		return fields[value.JSON](f), err
	},
	"json-result": func(h asc.Heap, addr uint32) (any, error) {
		o, err := value.ReadJSONResult(h, asc.NewPtr[value.ResultJSONBool](addr), 0)
		if err != nil {
			return nil, err
		}
		return outcome(o), nil
	},
	"json-map-result": func(h asc.Heap, addr uint32) (any, error) {
		o, err := value.ReadJSONMapResult(h, asc.NewPtr[value.ResultJSONMapBool](addr), 0)
		if err != nil {
			return nil, err
		}
		if !o.Value.IsSome() {
			return outcome(value.Fail[fields[value.JSON]](o.Error.UnwrapOr(false))), nil
		}
		return outcome(value.Ok(fields[value.JSON](o.Value.UnwrapOr(nil)))), nil
	},
	"bigint": func(h asc.Heap, addr uint32) (any, error) {
		b, err := asc.ReadObj(h, asc.NewPtr[bignum.BigInt](addr))
		if err != nil {
			return nil, err
		}
		x, err := b.Big(h)
		if err != nil {
			return nil, err
		}
		return x.String(), nil
	},
	"bigdecimal": func(h asc.Heap, addr uint32) (any, error) {
		b, err := asc.ReadObj(h, asc.NewPtr[bignum.BigDecimal](addr))
		if err != nil {
			return nil, err
		}
		d, err := b.Decimal(h, 0)
		if err != nil {
			return nil, err
		}
		return d.String(), nil
	},
	"bytes":        typedArray[uint8, asc.U8],
	"array-bool":   array[bool, asc.Bool],
	"array-i32":    array[int32, asc.I32],
	"array-i64":    array[int64, asc.I64],
	"array-u8":     array[uint8, asc.U8],
	"array-u32":    array[uint32, asc.U32],
	"array-f64":    array[float64, asc.F64],
	"array-string": arrayString,
	"array-store":  arrayStore,
}

func array[T any, E asc.Elem[T]](h asc.Heap, addr uint32) (any, error) {
	a, err := asc.ReadObj(h, asc.NewPtr[asc.Array[T, E]](addr))
	if err != nil {
		return nil, err
	}
	return a.ToSlice(h)
}

func typedArray[T any, E asc.TypedElem[T]](h asc.Heap, addr uint32) (any, error) {
	a, err := asc.ReadObj(h, asc.NewPtr[asc.TypedArray[T, E]](addr))
	if err != nil {
		return nil, err
	}
	return a.ToSlice(h)
}

func arrayString(h asc.Heap, addr uint32) (any, error) {
	a, err := asc.ReadObj(h, asc.NewPtr[asc.ArrayString](addr))
	if err != nil {
		return nil, err
	}
	ptrs, err := a.ToSlice(h)
	if err != nil {
		return nil, err
	}
	objs, err := asc.GetAll(h, ptrs, 0)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(objs))
	for i, s := range objs {
		out[i] = s.Value()
	}
	return out, nil
}

func arrayStore(h asc.Heap, addr uint32) (any, error) {
	a, err := asc.ReadObj(h, asc.NewPtr[value.ArrayStoreValue](addr))
	if err != nil {
		return nil, err
	}
	ptrs, err := a.ToSlice(h)
	if err != nil {
		return nil, err
	}
	out := make([]value.Store, len(ptrs))
	for i, p := range ptrs {
		if out[i], err = value.ReadStore(h, p, 1); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func typeNames() []string {
	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func decode(h asc.Heap, typ string, addr uint32) (any, error) {
	d, ok := decoders[typ]
	if !ok {
		return nil, fmt.Errorf("unknown type %q (known: %v)", typ, typeNames())
	}
	return d(h, addr)
}

// fields keeps map entries in guest order when encoded.
type fields[T any] []value.Field[T]

func (f fields[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f fields[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeMapLen(len(f)); err != nil {
		return err
	}
	for _, field := range f {
		if err := enc.EncodeString(field.Key); err != nil {
			return err
		}
		if err := enc.Encode(field.Value); err != nil {
			return err
		}
	}
	return nil
}

// outcome renders a Result as {"ok": value} or {"error": flag}.
func outcome[T any](o value.Outcome[T]) map[string]any {
	if o.Value.IsSome() {
		var zero T
		return map[string]any{"ok": o.Value.UnwrapOr(zero)}
	}
	return map[string]any{"error": o.Error.UnwrapOr(false)}
}
