package value

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/wippyai/asc-runtime/bignum"
)

var (
	_ json.Marshaler        = JSON{}
	_ json.Marshaler        = Store{}
	_ msgpack.CustomEncoder = JSON{}
	_ msgpack.CustomEncoder = Store{}
)

// MarshalJSON writes j back as JSON text, in key order.
func (j JSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := j.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (j JSON) writeJSON(buf *bytes.Buffer) error {
	switch j.kind {
	case JSONKindBool:
		b, _ := j.val.(bool)
		buf.WriteString(strconv.FormatBool(b))
	case JSONKindNumber:
		n, _ := j.val.(json.Number)
		b, err := json.Marshal(n)
		if err != nil {
			return writeQuoted(buf, n.String())
		}
		buf.Write(b)
	case JSONKindString:
		s, _ := j.val.(string)
		return writeQuoted(buf, s)
	case JSONKindArray:
		items, _ := j.val.([]JSON)
		buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case JSONKindObject:
		fields, _ := j.val.([]Field[JSON])
		buf.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeQuoted(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
	return nil
}

// MarshalJSON renders s as JSON. Big numbers become decimal strings and
// bytes become 0x-prefixed hex.
func (s Store) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case StoreKindString, StoreKindInt, StoreKindBool:
		return json.Marshal(s.val)
	case StoreKindBigDecimal:
		d, _ := s.val.(bignum.Decimal)
		return json.Marshal(d.String())
	case StoreKindArray:
		items, _ := s.val.([]Store)
		if items == nil {
			items = []Store{}
		}
		return json.Marshal(items)
	case StoreKindBytes:
		b, _ := s.val.([]byte)
		return json.Marshal("0x" + hex.EncodeToString(b))
	case StoreKindBigInt:
		x, _ := s.val.(*big.Int)
		return json.Marshal(bigString(x))
	default:
		return []byte("null"), nil
	}
}

// EncodeMsgpack writes j as the matching MessagePack value. Integral numbers
// become integers, other numbers floats.
func (j JSON) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch j.kind {
	case JSONKindBool:
		b, _ := j.val.(bool)
		return enc.EncodeBool(b)
	case JSONKindNumber:
		n, _ := j.val.(json.Number)
		if i, err := n.Int64(); err == nil {
			return enc.EncodeInt(i)
		}
		if f, err := n.Float64(); err == nil {
			return enc.EncodeFloat64(f)
		}
		return enc.EncodeString(n.String())
	case JSONKindString:
		s, _ := j.val.(string)
		return enc.EncodeString(s)
	case JSONKindArray:
		items, _ := j.val.([]JSON)
		if err := enc.EncodeArrayLen(len(items)); err != nil {
			return err
		}
		for _, item := range items {
			if err := item.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case JSONKindObject:
		fields, _ := j.val.([]Field[JSON])
		if err := enc.EncodeMapLen(len(fields)); err != nil {
			return err
		}
		for _, f := range fields {
			if err := enc.EncodeString(f.Key); err != nil {
				return err
			}
			if err := f.Value.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	default:
		return enc.EncodeNil()
	}
}

// EncodeMsgpack writes s as the matching MessagePack value. Big numbers are
// written as decimal strings.
func (s Store) EncodeMsgpack(enc *msgpack.Encoder) error {
	switch s.kind {
	case StoreKindString:
		str, _ := s.val.(string)
		return enc.EncodeString(str)
	case StoreKindInt:
		i, _ := s.val.(int32)
		return enc.EncodeInt(int64(i))
	case StoreKindBigDecimal:
		d, _ := s.val.(bignum.Decimal)
		return enc.EncodeString(d.String())
	case StoreKindBool:
		b, _ := s.val.(bool)
		return enc.EncodeBool(b)
	case StoreKindArray:
		items, _ := s.val.([]Store)
		if err := enc.EncodeArrayLen(len(items)); err != nil {
			return err
		}
		for _, item := range items {
			if err := item.EncodeMsgpack(enc); err != nil {
				return err
			}
		}
		return nil
	case StoreKindBytes:
		b, _ := s.val.([]byte)
		return enc.EncodeBytes(b)
	case StoreKindBigInt:
		x, _ := s.val.(*big.Int)
		return enc.EncodeString(bigString(x))
	default:
		return enc.EncodeNil()
	}
}

func writeQuoted(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func bigString(x *big.Int) string {
	if x == nil {
		return "0"
	}
	return x.String()
}
