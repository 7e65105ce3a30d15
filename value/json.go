package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
)

// JSONKind discriminates JSON values.
type JSONKind uint32

const (
	JSONKindNull JSONKind = iota
	JSONKindBool
	JSONKindNumber
	JSONKindString
	JSONKindArray
	JSONKindObject
)

var jsonKindNames = [...]string{
	JSONKindNull:   "Null",
	JSONKindBool:   "Bool",
	JSONKindNumber: "Number",
	JSONKindString: "String",
	JSONKindArray:  "Array",
	JSONKindObject: "Object",
}

func (k JSONKind) String() string {
	if int(k) < len(jsonKindNames) {
		return jsonKindNames[k]
	}
	return fmt.Sprintf("JSONKind(%d)", uint32(k))
}

func (JSONKind) EnumTag() asc.TypeTag { return ascruntime.TagJSONValue }

// JSONValue is the guest JsonValue class.
type JSONValue = Enum[JSONKind]

// JSONRef is the element of Array<JsonValue>.
type JSONRef struct{ asc.PtrElem[JSONValue] }

func (JSONRef) ArrayTag() asc.TypeTag { return ascruntime.TagArrayJSONValue }

// ArrayJSONValue is Array<JsonValue>.
type ArrayJSONValue = asc.Array[asc.Ptr[JSONValue], JSONRef]

// JSON is the host form of a JSON value. The dynamic value is nil, bool,
// json.Number, string, []JSON or []Field[JSON], matching Kind. Numbers keep
// their source text; objects keep their key order.
type JSON struct {
	kind JSONKind
	val  any
}

func JSONNull() JSON                        { return JSON{JSONKindNull, nil} }
func JSONBool(b bool) JSON                  { return JSON{JSONKindBool, b} }
func JSONNumber(n json.Number) JSON         { return JSON{JSONKindNumber, n} }
func JSONString(s string) JSON              { return JSON{JSONKindString, s} }
func JSONArray(items ...JSON) JSON          { return JSON{JSONKindArray, items} }
func JSONObject(fields ...Field[JSON]) JSON { return JSON{JSONKindObject, fields} }

// Kind returns the discriminant.
func (j JSON) Kind() JSONKind {
	return j.kind
}

// Value returns the dynamic value.
func (j JSON) Value() any {
	return j.val
}

// AllocJSON places j and everything it references in h.
func AllocJSON(h asc.Heap, j JSON) (asc.Ptr[JSONValue], error) {
	payload, err := jsonPayload(h, j)
	if err != nil {
		return asc.NullPtr, err
	}
	return allocEnum(h, j.kind, payload)
}

func jsonPayload(h asc.Heap, j JSON) (uint64, error) {
	switch j.kind {
	case JSONKindNull:
		return 0, nil
	case JSONKindBool:
		b, _ := j.val.(bool)
		return BoolPayload(b), nil
	case JSONKindNumber:
		n, _ := j.val.(json.Number)
		return allocString(h, n.String())
	case JSONKindString:
		s, _ := j.val.(string)
		return allocString(h, s)
	case JSONKindArray:
		items, _ := j.val.([]JSON)
		ptrs := make([]asc.Ptr[JSONValue], 0, len(items))
		for _, item := range items {
			p, err := AllocJSON(h, item)
			if err != nil {
				return 0, err
			}
			ptrs = append(ptrs, p)
		}
		p, err := asc.AllocArray[asc.Ptr[JSONValue], JSONRef](h, ptrs)
		return PtrPayload(p), err
	case JSONKindObject:
		fields, _ := j.val.([]Field[JSON])
		p, err := AllocJSONMap(h, fields)
		return PtrPayload(p), err
	default:
		return 0, errors.Malformed(errors.PhaseEncode, "JsonValue", "unknown kind %d", uint32(j.kind))
	}
}

// ReadJSON decodes the JSON value at p on behalf of a decoder depth levels
// deep.
func ReadJSON(h asc.Heap, p asc.Ptr[JSONValue], depth int) (JSON, error) {
	e, err := asc.Get(h, p, depth)
	if err != nil {
		return JSON{}, err
	}

	switch e.Kind {
	case JSONKindNull:
		return JSONNull(), nil
	case JSONKindBool:
		b, err := e.Bool()
		return JSONBool(b), err
	case JSONKindNumber:
		s, err := readString(h, e, depth)
		return JSONNumber(json.Number(s)), err
	case JSONKindString:
		s, err := readString(h, e, depth)
		return JSONString(s), err
	case JSONKindArray:
		ptr, err := PayloadPtr[ArrayJSONValue](e)
		if err != nil {
			return JSON{}, err
		}
		items, err := readArray(h, ptr, depth, ReadJSON)
		return JSONArray(items...), err
	case JSONKindObject:
		ptr, err := PayloadPtr[JSONMap](e)
		if err != nil {
			return JSON{}, err
		}
		fields, err := ReadJSONMap(h, ptr, depth+1)
		return JSONObject(fields...), err
	default:
		return JSON{}, unknownKind(e)
	}
}

// ParseJSON parses a single JSON document, keeping number text and object
// key order.
func ParseJSON(data []byte) (JSON, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	j, err := parseJSON(dec)
	if err != nil {
		return JSON{}, malformedJSON(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return JSON{}, malformedJSON(fmt.Errorf("trailing data after document"))
	}
	return j, nil
}

func parseJSON(dec *json.Decoder) (JSON, error) {
	tok, err := dec.Token()
	if err != nil {
		return JSON{}, err
	}

	switch t := tok.(type) {
	case nil:
		return JSONNull(), nil
	case bool:
		return JSONBool(t), nil
	case json.Number:
		return JSONNumber(t), nil
	case string:
		return JSONString(t), nil
	case json.Delim:
		switch t {
		case '[':
			var items []JSON
			for dec.More() {
				item, err := parseJSON(dec)
				if err != nil {
					return JSON{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return JSON{}, err
			}
			return JSONArray(items...), nil
		case '{':
			var fields []Field[JSON]
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return JSON{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return JSON{}, fmt.Errorf("object key %v is not a string", keyTok)
				}
				val, err := parseJSON(dec)
				if err != nil {
					return JSON{}, err
				}
				fields = append(fields, Field[JSON]{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return JSON{}, err
			}
			return JSONObject(fields...), nil
		}
	}
	return JSON{}, fmt.Errorf("unexpected token %v", tok)
}

func malformedJSON(cause error) error {
	return errors.New(errors.PhaseDecode, errors.KindMalformedInput).
		Type("JsonValue").
		Detail("invalid JSON document").
		Cause(cause).
		Build()
}
