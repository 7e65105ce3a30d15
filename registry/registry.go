// Package registry lists every guest class this module marshals together
// with its type tag.
//
// Tags are carried by the types themselves (AscTag methods, element codecs
// and map specs), so a type without a tag does not satisfy asc.Object and
// cannot be allocated. The list here exists to check the mapping as a whole:
// no two types may share a tag, and every tag of the frozen table must be
// claimed by a type unless it is known to be unmarshaled.
package registry

import (
	"fmt"
	"reflect"
	"slices"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/bignum"
	"github.com/wippyai/asc-runtime/value"
)

// Entry binds a Go type to its class tag.
type Entry struct {
	Tag  ascruntime.TypeTag
	Type reflect.Type
}

func entry[C any, PC asc.Object[C]]() Entry {
	return Entry{
		Tag:  PC(new(C)).AscTag(),
		Type: reflect.TypeFor[C](),
	}
}

// BigInt shares the Uint8Array class and is not listed separately.
var entries = []Entry{
	entry[asc.String](),
	entry[asc.ArrayBuffer](),

	entry[asc.Int8Array](),
	entry[asc.Int16Array](),
	entry[asc.Int32Array](),
	entry[asc.Int64Array](),
	entry[asc.Uint8Array](),
	entry[asc.Uint16Array](),
	entry[asc.Uint32Array](),
	entry[asc.Uint64Array](),
	entry[asc.Float32Array](),
	entry[asc.Float64Array](),

	entry[bignum.BigDecimal](),
	entry[asc.ArrayBool](),
	entry[asc.ArrayUint8Array](),
	entry[value.ArrayStoreValue](),
	entry[value.ArrayJSONValue](),
	entry[asc.ArrayString](),
	entry[asc.Array[asc.Ptr[value.JSONEntry], value.EntryRef[value.JSONValue, value.JSONFields]]](),
	entry[asc.Array[asc.Ptr[value.StoreEntry], value.EntryRef[value.StoreValue, value.StoreFields]]](),
	entry[value.WrappedJSONMap](),
	entry[value.WrappedBool](),
	entry[value.WrappedJSON](),
	entry[value.StoreValue](),
	entry[value.JSONValue](),
	entry[value.StoreEntry](),
	entry[value.JSONEntry](),
	entry[value.StoreMap](),
	entry[value.JSONMap](),
	entry[value.ResultJSONMapBool](),
	entry[value.ResultJSONBool](),

	entry[asc.ArrayU8](),
	entry[asc.ArrayU16](),
	entry[asc.ArrayU32](),
	entry[asc.ArrayU64](),
	entry[asc.ArrayI8](),
	entry[asc.ArrayI16](),
	entry[asc.ArrayI32](),
	entry[asc.ArrayI64](),
	entry[asc.ArrayF32](),
	entry[asc.ArrayF64](),

	entry[bignum.ArrayBigDecimal](),
}

// unmarshaled are assigned tags with no host type. The entry classes of
// TypedMap<String, TypedMap<String, JsonValue>> have no ids in the table, so
// the map cannot be built consistently.
var unmarshaled = []ascruntime.TypeTag{
	ascruntime.TagTypedMapStringTypedMapStringJSONValue,
}

var (
	byTag  = make(map[ascruntime.TypeTag]Entry, len(entries))
	byType = make(map[reflect.Type]ascruntime.TypeTag, len(entries))
)

func init() {
	if err := build(entries); err != nil {
		panic(err)
	}
}

func build(list []Entry) error {
	tags := make(map[ascruntime.TypeTag]Entry, len(list))
	types := make(map[reflect.Type]ascruntime.TypeTag, len(list))
	for _, e := range list {
		if prev, ok := tags[e.Tag]; ok {
			return fmt.Errorf("registry: tag %s claimed by both %v and %v", e.Tag, prev.Type, e.Type)
		}
		if prev, ok := types[e.Type]; ok {
			return fmt.Errorf("registry: type %v registered under %s and %s", e.Type, prev, e.Tag)
		}
		tags[e.Tag] = e
		types[e.Type] = e.Tag
	}
	byTag, byType = tags, types
	return nil
}

// TagOf returns the tag of C.
func TagOf[C any, PC asc.Object[C]]() ascruntime.TypeTag {
	return PC(new(C)).AscTag()
}

// Lookup returns the entry registered for tag.
func Lookup(tag ascruntime.TypeTag) (Entry, bool) {
	e, ok := byTag[tag]
	return e, ok
}

// Registered reports whether t is a listed type.
func Registered(t reflect.Type) bool {
	_, ok := byType[t]
	return ok
}

// Tags returns every registered tag in ascending order.
func Tags() []ascruntime.TypeTag {
	out := make([]ascruntime.TypeTag, 0, len(byTag))
	for t := range byTag {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Unmarshaled returns the assigned tags no host type claims.
func Unmarshaled() []ascruntime.TypeTag {
	return slices.Clone(unmarshaled)
}
