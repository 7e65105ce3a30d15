package value_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
	"github.com/wippyai/asc-runtime/value"
)

func TestStoreMap_RoundTrip(t *testing.T) {
	for _, tc := range versions {
		t.Run(tc.name, func(t *testing.T) {
			h := newHeap(tc.version)

			fields := []value.Field[value.Store]{
				{Key: "id", Value: value.StoreString("0xabc")},
				{Key: "count", Value: value.StoreInt(3)},
				{Key: "balance", Value: value.StoreBigInt(big.NewInt(1_000_000))},
				{Key: "owner", Value: value.StoreNull()},
			}

			p, err := value.AllocStoreMap(h, fields)
			require.NoError(t, err)

			got, err := value.ReadStoreMap(h, p, 0)
			require.NoError(t, err)
			require.Len(t, got, len(fields))

			for i, f := range got {
				assert.Equal(t, fields[i].Key, f.Key)
				assert.Equal(t, fields[i].Value.Kind(), f.Value.Kind())
			}

			count, ok := value.Lookup(got, "count")
			require.True(t, ok)
			assert.Equal(t, int32(3), count.Value())
		})
	}
}

func TestJSONMap_Empty(t *testing.T) {
	h := newHeap(currentVersion)

	p, err := value.AllocJSONMap(h, nil)
	require.NoError(t, err)

	got, err := value.ReadJSONMap(h, p, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTypedMap_Tags(t *testing.T) {
	assert.Equal(t, ascruntime.TagTypedMapStringStoreValue, (&value.StoreMap{}).AscTag())
	assert.Equal(t, ascruntime.TagTypedMapStringJSONValue, (&value.JSONMap{}).AscTag())
	assert.Equal(t, ascruntime.TagTypedMapEntryStringStoreValue, (&value.StoreEntry{}).AscTag())
	assert.Equal(t, ascruntime.TagTypedMapEntryStringJSONValue, (&value.JSONEntry{}).AscTag())
	assert.Equal(t, ascruntime.TagArrayTypedMapEntryStringStoreValue,
		(&asc.Array[asc.Ptr[value.StoreEntry], value.EntryRef[value.StoreValue, value.StoreFields]]{}).AscTag())
}

func TestTypedMap_DecodeSizes(t *testing.T) {
	_, err := asc.Decode[value.StoreMap](make([]byte, 8), currentVersion)
	require.ErrorIs(t, err, errors.ErrSizeMismatch)

	_, err = asc.Decode[value.JSONEntry](make([]byte, 4), currentVersion)
	require.ErrorIs(t, err, errors.ErrSizeMismatch)
}

func TestTypedMap_NullEntries(t *testing.T) {
	h := newHeap(currentVersion)

	p, err := asc.AllocObj(h, &value.JSONMap{})
	require.NoError(t, err)

	_, err = value.ReadJSONMap(h, p, 0)
	require.ErrorIs(t, err, errors.ErrMalformedInput)
}
