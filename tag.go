package ascruntime

import "strconv"

// TypeTag identifies a concrete guest class. The heap resolves it to the
// runtime class id stamped into object headers (see Heap.TypeID).
//
// These ids are FROZEN. Once assigned an id never changes meaning; changing
// one breaks every guest built against the table. Ids marked reserved belong
// to ledger-specific classes this module does not marshal and are never reused.
type TypeTag uint32

const (
	TagString      TypeTag = 0
	TagArrayBuffer TypeTag = 1

	// Typed arrays
	TagInt8Array    TypeTag = 2
	TagInt16Array   TypeTag = 3
	TagInt32Array   TypeTag = 4
	TagInt64Array   TypeTag = 5
	TagUint8Array   TypeTag = 6
	TagUint16Array  TypeTag = 7
	TagUint32Array  TypeTag = 8
	TagUint64Array  TypeTag = 9
	TagFloat32Array TypeTag = 10
	TagFloat64Array TypeTag = 11

	TagBigDecimal      TypeTag = 12
	TagArrayBool       TypeTag = 13
	TagArrayUint8Array TypeTag = 14
	// 15 reserved
	TagArrayStoreValue TypeTag = 16
	TagArrayJSONValue  TypeTag = 17
	TagArrayString     TypeTag = 18
	// 19 reserved
	TagArrayTypedMapEntryStringJSONValue  TypeTag = 20
	TagArrayTypedMapEntryStringStoreValue TypeTag = 21
	// 22-26 reserved
	TagWrappedTypedMapStringJSONValue TypeTag = 27
	TagWrappedBool                    TypeTag = 28
	TagWrappedJSONValue               TypeTag = 29
	// 30 reserved
	TagStoreValue TypeTag = 31
	TagJSONValue  TypeTag = 32
	// 33 reserved
	TagTypedMapEntryStringStoreValue         TypeTag = 34
	TagTypedMapEntryStringJSONValue          TypeTag = 35
	TagTypedMapStringStoreValue              TypeTag = 36
	TagTypedMapStringJSONValue               TypeTag = 37
	TagTypedMapStringTypedMapStringJSONValue TypeTag = 38
	TagResultTypedMapStringJSONValueBool     TypeTag = 39
	TagResultJSONValueBool                   TypeTag = 40

	// Plain arrays of scalars
	TagArrayU8  TypeTag = 41
	TagArrayU16 TypeTag = 42
	TagArrayU32 TypeTag = 43
	TagArrayU64 TypeTag = 44
	TagArrayI8  TypeTag = 45
	TagArrayI16 TypeTag = 46
	TagArrayI32 TypeTag = 47
	TagArrayI64 TypeTag = 48
	TagArrayF32 TypeTag = 49
	TagArrayF64 TypeTag = 50

	TagArrayBigDecimal TypeTag = 51
)

var tagNames = map[TypeTag]string{
	TagString:                                "String",
	TagArrayBuffer:                           "ArrayBuffer",
	TagInt8Array:                             "Int8Array",
	TagInt16Array:                            "Int16Array",
	TagInt32Array:                            "Int32Array",
	TagInt64Array:                            "Int64Array",
	TagUint8Array:                            "Uint8Array",
	TagUint16Array:                           "Uint16Array",
	TagUint32Array:                           "Uint32Array",
	TagUint64Array:                           "Uint64Array",
	TagFloat32Array:                          "Float32Array",
	TagFloat64Array:                          "Float64Array",
	TagBigDecimal:                            "BigDecimal",
	TagArrayBool:                             "ArrayBool",
	TagArrayUint8Array:                       "ArrayUint8Array",
	TagArrayStoreValue:                       "ArrayStoreValue",
	TagArrayJSONValue:                        "ArrayJsonValue",
	TagArrayString:                           "ArrayString",
	TagArrayTypedMapEntryStringJSONValue:     "ArrayTypedMapEntryStringJsonValue",
	TagArrayTypedMapEntryStringStoreValue:    "ArrayTypedMapEntryStringStoreValue",
	TagWrappedTypedMapStringJSONValue:        "WrappedTypedMapStringJsonValue",
	TagWrappedBool:                           "WrappedBool",
	TagWrappedJSONValue:                      "WrappedJsonValue",
	TagStoreValue:                            "StoreValue",
	TagJSONValue:                             "JsonValue",
	TagTypedMapEntryStringStoreValue:         "TypedMapEntryStringStoreValue",
	TagTypedMapEntryStringJSONValue:          "TypedMapEntryStringJsonValue",
	TagTypedMapStringStoreValue:              "TypedMapStringStoreValue",
	TagTypedMapStringJSONValue:               "TypedMapStringJsonValue",
	TagTypedMapStringTypedMapStringJSONValue: "TypedMapStringTypedMapStringJsonValue",
	TagResultTypedMapStringJSONValueBool:     "ResultTypedMapStringJsonValueBool",
	TagResultJSONValueBool:                   "ResultJsonValueBool",
	TagArrayU8:                               "ArrayU8",
	TagArrayU16:                              "ArrayU16",
	TagArrayU32:                              "ArrayU32",
	TagArrayU64:                              "ArrayU64",
	TagArrayI8:                               "ArrayI8",
	TagArrayI16:                              "ArrayI16",
	TagArrayI32:                              "ArrayI32",
	TagArrayI64:                              "ArrayI64",
	TagArrayF32:                              "ArrayF32",
	TagArrayF64:                              "ArrayF64",
	TagArrayBigDecimal:                       "ArrayBigDecimal",
}

// AllTags returns every assigned tag in ascending order.
func AllTags() []TypeTag {
	tags := make([]TypeTag, 0, len(tagNames))
	for t := TypeTag(0); t <= TagArrayBigDecimal; t++ {
		if _, ok := tagNames[t]; ok {
			tags = append(tags, t)
		}
	}
	return tags
}

func (t TypeTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "TypeTag(" + strconv.FormatUint(uint64(t), 10) + ")"
}
