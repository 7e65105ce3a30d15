package registry

import (
	"reflect"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/bignum"
	"github.com/wippyai/asc-runtime/value"
)

func TestRegistry_CoversTable(t *testing.T) {
	registered := Tags()
	for _, tag := range ascruntime.AllTags() {
		if slices.Contains(Unmarshaled(), tag) {
			assert.NotContains(t, registered, tag)
			continue
		}
		assert.Contains(t, registered, tag, "tag %s has no type", tag)
	}
	assert.Len(t, registered, len(ascruntime.AllTags())-len(Unmarshaled()))
}

func TestRegistry_Injective(t *testing.T) {
	seen := make(map[reflect.Type]bool)
	for _, e := range entries {
		assert.False(t, seen[e.Type], "duplicate %v", e.Type)
		seen[e.Type] = true
	}
	assert.Len(t, byTag, len(entries))
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	saved := byTag
	savedTypes := byType
	t.Cleanup(func() { byTag, byType = saved, savedTypes })

	err := build([]Entry{entry[asc.String](), entry[asc.String]()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "String")

	clash := Entry{Tag: ascruntime.TagString, Type: reflect.TypeFor[int]()}
	err = build([]Entry{entry[asc.String](), clash})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claimed by both")
}

func TestTagOf(t *testing.T) {
	assert.Equal(t, ascruntime.TagString, TagOf[asc.String]())
	assert.Equal(t, ascruntime.TagArrayI32, TagOf[asc.ArrayI32]())
	assert.Equal(t, ascruntime.TagStoreValue, TagOf[value.StoreValue]())
	assert.Equal(t, ascruntime.TagArrayBigDecimal, TagOf[bignum.ArrayBigDecimal]())
	assert.Equal(t, ascruntime.TagUint8Array, TagOf[bignum.BigInt]())
}

func TestLookup(t *testing.T) {
	e, ok := Lookup(ascruntime.TagJSONValue)
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[value.JSONValue](), e.Type)
	assert.True(t, Registered(e.Type))

	_, ok = Lookup(ascruntime.TagTypedMapStringTypedMapStringJSONValue)
	assert.False(t, ok)

	_, ok = Lookup(15)
	assert.False(t, ok)

	assert.False(t, Registered(reflect.TypeFor[bignum.BigInt]()))
}
