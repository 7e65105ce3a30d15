package value_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
	"github.com/wippyai/asc-runtime/value"
)

func TestJSONResult_Ok(t *testing.T) {
	for _, tc := range versions {
		t.Run(tc.name, func(t *testing.T) {
			h := newHeap(tc.version)

			p, err := value.AllocJSONResult(h, value.Ok(value.JSONString("fine")))
			require.NoError(t, err)

			got, err := value.ReadJSONResult(h, p, 0)
			require.NoError(t, err)
			require.True(t, got.Value.IsSome())
			assert.False(t, got.Error.IsSome())
			assert.Equal(t, "fine", got.Value.UnwrapOr(value.JSONNull()).Value())
		})
	}
}

func TestJSONResult_Fail(t *testing.T) {
	h := newHeap(currentVersion)

	p, err := value.AllocJSONResult(h, value.Fail[value.JSON](true))
	require.NoError(t, err)

	got, err := value.ReadJSONResult(h, p, 0)
	require.NoError(t, err)
	assert.False(t, got.Value.IsSome())
	assert.True(t, got.Error.UnwrapOr(false))
}

func TestJSONMapResult(t *testing.T) {
	h := newHeap(currentVersion)

	obj, err := value.ParseJSON([]byte(`{"a":1,"b":[true]}`))
	require.NoError(t, err)
	fields := obj.Value().([]value.Field[value.JSON])

	p, err := value.AllocJSONMapResult(h, value.Ok(fields))
	require.NoError(t, err)

	r, err := asc.ReadObj(h, p)
	require.NoError(t, err)
	assert.Equal(t, ascruntime.TagResultTypedMapStringJSONValueBool, r.AscTag())

	got, err := value.ReadJSONMapResult(h, p, 0)
	require.NoError(t, err)

	out, err := json.Marshal(value.JSONObject(got.Value.UnwrapOr(nil)...))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":[true]}`, string(out))
}

func TestResult_ExactlyOneSide(t *testing.T) {
	h := newHeap(currentVersion)

	_, err := value.AllocJSONResult(h, value.Outcome[value.JSON]{})
	require.ErrorIs(t, err, errors.ErrMalformedInput)

	empty, err := asc.AllocObj(h, &value.ResultJSONBool{})
	require.NoError(t, err)
	_, err = value.ReadJSONResult(h, empty, 0)
	require.ErrorIs(t, err, errors.ErrMalformedInput)
}

func TestWrappedBool(t *testing.T) {
	b, err := (&value.WrappedBool{Inner: true}).ToAscBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0}, b)

	got, err := asc.Decode[value.WrappedBool](b, currentVersion)
	require.NoError(t, err)
	assert.True(t, got.Inner)

	_, err = asc.Decode[value.WrappedBool]([]byte{2, 0, 0, 0}, currentVersion)
	require.ErrorIs(t, err, errors.ErrInvalidBoolean)

	_, err = asc.Decode[value.WrappedBool]([]byte{0, 0, 0, 1}, currentVersion)
	require.ErrorIs(t, err, errors.ErrInvalidBoolean)
}

func TestWrapped_Tags(t *testing.T) {
	assert.Equal(t, ascruntime.TagWrappedBool, (&value.WrappedBool{}).AscTag())
	assert.Equal(t, ascruntime.TagWrappedJSONValue, (&value.WrappedJSON{}).AscTag())
	assert.Equal(t, ascruntime.TagWrappedTypedMapStringJSONValue, (&value.WrappedJSONMap{}).AscTag())
	assert.Equal(t, ascruntime.TagResultJSONValueBool, (&value.ResultJSONBool{}).AscTag())
}
