package value

import (
	"encoding/binary"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
)

// MapSpec names the classes of one string-keyed TypedMap instantiation.
type MapSpec interface {
	EntryTag() asc.TypeTag
	EntryArrayTag() asc.TypeTag
	MapTag() asc.TypeTag
}

// StoreFields carries the tags of TypedMap<String, StoreValue>.
type StoreFields struct{}

func (StoreFields) EntryTag() asc.TypeTag      { return ascruntime.TagTypedMapEntryStringStoreValue }
func (StoreFields) EntryArrayTag() asc.TypeTag { return ascruntime.TagArrayTypedMapEntryStringStoreValue }
func (StoreFields) MapTag() asc.TypeTag        { return ascruntime.TagTypedMapStringStoreValue }

// JSONFields carries the tags of TypedMap<String, JsonValue>.
type JSONFields struct{}

func (JSONFields) EntryTag() asc.TypeTag      { return ascruntime.TagTypedMapEntryStringJSONValue }
func (JSONFields) EntryArrayTag() asc.TypeTag { return ascruntime.TagArrayTypedMapEntryStringJSONValue }
func (JSONFields) MapTag() asc.TypeTag        { return ascruntime.TagTypedMapStringJSONValue }

// Common instantiations.
type (
	StoreEntry = TypedMapEntry[StoreValue, StoreFields]
	StoreMap   = TypedMap[StoreValue, StoreFields]
	JSONEntry  = TypedMapEntry[JSONValue, JSONFields]
	JSONMap    = TypedMap[JSONValue, JSONFields]
)

const (
	entrySize = 8
	mapSize   = 4
)

// TypedMapEntry is one key/value pair of a TypedMap.
type TypedMapEntry[V any, S MapSpec] struct {
	Key   asc.Ptr[asc.String]
	Value asc.Ptr[V]
}

func (e *TypedMapEntry[V, S]) AscTag() asc.TypeTag {
	var s S
	return s.EntryTag()
}

func (e *TypedMapEntry[V, S]) ToAscBytes() ([]byte, error) {
	out := make([]byte, entrySize)
	binary.LittleEndian.PutUint32(out[0:], e.Key.Addr())
	binary.LittleEndian.PutUint32(out[4:], e.Value.Addr())
	return out, nil
}

func (e *TypedMapEntry[V, S]) ContentLen(ascBytes []byte) int {
	return len(ascBytes)
}

func (e *TypedMapEntry[V, S]) FromAscBytes(b []byte, _ asc.Version) error {
	if len(b) != entrySize {
		return errors.SizeMismatch(errors.PhaseDecode, e.AscTag().String(), entrySize, len(b))
	}
	e.Key = asc.NewPtr[asc.String](binary.LittleEndian.Uint32(b[0:]))
	e.Value = asc.NewPtr[V](binary.LittleEndian.Uint32(b[4:]))
	return nil
}

func (e *TypedMapEntry[V, S]) AscSize(uint32, asc.Heap) (uint32, error) {
	return entrySize, nil
}

// EntryRef is the element of the entries array of a TypedMap.
type EntryRef[V any, S MapSpec] struct {
	asc.PtrElem[TypedMapEntry[V, S]]
}

func (EntryRef[V, S]) ArrayTag() asc.TypeTag {
	var s S
	return s.EntryArrayTag()
}

// TypedMap is an insertion ordered list of entries. Keys are not required to
// be unique; lookups return the first match.
type TypedMap[V any, S MapSpec] struct {
	Entries asc.Ptr[asc.Array[asc.Ptr[TypedMapEntry[V, S]], EntryRef[V, S]]]
}

func (m *TypedMap[V, S]) AscTag() asc.TypeTag {
	var s S
	return s.MapTag()
}

func (m *TypedMap[V, S]) ToAscBytes() ([]byte, error) {
	out := make([]byte, mapSize)
	binary.LittleEndian.PutUint32(out, m.Entries.Addr())
	return out, nil
}

func (m *TypedMap[V, S]) ContentLen(ascBytes []byte) int {
	return len(ascBytes)
}

func (m *TypedMap[V, S]) FromAscBytes(b []byte, _ asc.Version) error {
	if len(b) != mapSize {
		return errors.SizeMismatch(errors.PhaseDecode, m.AscTag().String(), mapSize, len(b))
	}
	m.Entries = asc.NewPtr[asc.Array[asc.Ptr[TypedMapEntry[V, S]], EntryRef[V, S]]](binary.LittleEndian.Uint32(b))
	return nil
}

func (m *TypedMap[V, S]) AscSize(uint32, asc.Heap) (uint32, error) {
	return mapSize, nil
}

// Field is a decoded map entry.
type Field[T any] struct {
	Key   string
	Value T
}

// Lookup returns the value of the first field named key.
func Lookup[T any](fields []Field[T], key string) (T, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	var zero T
	return zero, false
}

func allocMap[V any, S MapSpec, T any](
	h asc.Heap,
	fields []Field[T],
	alloc func(asc.Heap, T) (asc.Ptr[V], error),
) (asc.Ptr[TypedMap[V, S]], error) {
	v := h.APIVersion()
	entries := make([]asc.Ptr[TypedMapEntry[V, S]], 0, len(fields))
	for _, f := range fields {
		key, err := asc.StringFromGo(f.Key, v)
		if err != nil {
			return asc.NullPtr, err
		}
		keyPtr, err := asc.AllocObj(h, key)
		if err != nil {
			return asc.NullPtr, err
		}
		valPtr, err := alloc(h, f.Value)
		if err != nil {
			return asc.NullPtr, err
		}
		entryPtr, err := asc.AllocObj(h, &TypedMapEntry[V, S]{Key: keyPtr, Value: valPtr})
		if err != nil {
			return asc.NullPtr, err
		}
		entries = append(entries, entryPtr)
	}

	arrPtr, err := asc.AllocArray[asc.Ptr[TypedMapEntry[V, S]], EntryRef[V, S]](h, entries)
	if err != nil {
		return asc.NullPtr, err
	}
	return asc.AllocObj(h, &TypedMap[V, S]{Entries: arrPtr})
}

func readMap[V any, S MapSpec, T any](
	h asc.Heap,
	p asc.Ptr[TypedMap[V, S]],
	depth int,
	read func(asc.Heap, asc.Ptr[V], int) (T, error),
) ([]Field[T], error) {
	m, err := asc.Get(h, p, depth)
	if err != nil {
		return nil, err
	}
	arr, err := asc.Get(h, m.Entries, depth+1)
	if err != nil {
		return nil, err
	}
	ptrs, err := arr.ToSlice(h)
	if err != nil {
		return nil, err
	}
	entries, err := asc.GetAll(h, ptrs, depth+1)
	if err != nil {
		return nil, err
	}

	fields := make([]Field[T], 0, len(entries))
	for _, e := range entries {
		key, err := asc.Get(h, e.Key, depth+3)
		if err != nil {
			return nil, err
		}
		val, err := read(h, e.Value, depth+3)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field[T]{Key: key.Value(), Value: val})
	}
	return fields, nil
}

// AllocStoreMap places an entity-style map of store values.
func AllocStoreMap(h asc.Heap, fields []Field[Store]) (asc.Ptr[StoreMap], error) {
	return allocMap[StoreValue, StoreFields](h, fields, AllocStore)
}

// ReadStoreMap decodes a TypedMap<String, StoreValue>.
func ReadStoreMap(h asc.Heap, p asc.Ptr[StoreMap], depth int) ([]Field[Store], error) {
	return readMap(h, p, depth, ReadStore)
}

// AllocJSONMap places a JSON object.
func AllocJSONMap(h asc.Heap, fields []Field[JSON]) (asc.Ptr[JSONMap], error) {
	return allocMap[JSONValue, JSONFields](h, fields, AllocJSON)
}

// ReadJSONMap decodes a TypedMap<String, JsonValue>.
func ReadJSONMap(h asc.Heap, p asc.Ptr[JSONMap], depth int) ([]Field[JSON], error) {
	return readMap(h, p, depth, ReadJSON)
}
