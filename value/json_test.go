package value_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
	"github.com/wippyai/asc-runtime/value"
)

const sampleDocument = `{"name":"token","decimals":18,"supply":"1e27","tags":["a","b"],"meta":{"ok":true,"ref":null},"ratio":-0.5}`

func TestParseJSON(t *testing.T) {
	j, err := value.ParseJSON([]byte(sampleDocument))
	require.NoError(t, err)
	require.Equal(t, value.JSONKindObject, j.Kind())

	fields := j.Value().([]value.Field[value.JSON])
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"name", "decimals", "supply", "tags", "meta", "ratio"}, keys)

	decimals, ok := value.Lookup(fields, "decimals")
	require.True(t, ok)
	assert.Equal(t, value.JSONKindNumber, decimals.Kind())
	assert.Equal(t, json.Number("18"), decimals.Value())

	_, ok = value.Lookup(fields, "missing")
	assert.False(t, ok)

	out, err := json.Marshal(j)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument, string(out))
}

func TestParseJSON_Errors(t *testing.T) {
	for _, doc := range []string{``, `{`, `[1,]`, `{"a" 1}`, `1 2`, `]`, `nul`} {
		_, err := value.ParseJSON([]byte(doc))
		require.ErrorIs(t, err, errors.ErrMalformedInput, doc)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	docs := []string{
		`null`,
		`true`,
		`false`,
		`12345678901234567890.125`,
		`"quoted \"text\" ✓"`,
		`[]`,
		`{}`,
		`[1,[2,[3,[]]],{"k":"v"}]`,
		sampleDocument,
	}

	for _, tc := range versions {
		t.Run(tc.name, func(t *testing.T) {
			h := newHeap(tc.version)

			for _, doc := range docs {
				j, err := value.ParseJSON([]byte(doc))
				require.NoError(t, err, doc)

				p, err := value.AllocJSON(h, j)
				require.NoError(t, err, doc)

				got, err := value.ReadJSON(h, p, 0)
				require.NoError(t, err, doc)

				out, err := json.Marshal(got)
				require.NoError(t, err)
				assert.Equal(t, doc, string(out))
			}
		})
	}
}

func TestJSON_SelfReferentialArray(t *testing.T) {
	for _, tc := range versions {
		t.Run(tc.name, func(t *testing.T) {
			h := newHeap(tc.version)

			enumPtr, err := asc.AllocObj(h, &value.JSONValue{Kind: value.JSONKindArray})
			require.NoError(t, err)
			arrPtr, err := asc.AllocArray[asc.Ptr[value.JSONValue], value.JSONRef](h, []asc.Ptr[value.JSONValue]{enumPtr})
			require.NoError(t, err)

			patched, err := (&value.JSONValue{Kind: value.JSONKindArray, Payload: value.PtrPayload(arrPtr)}).ToAscBytes()
			require.NoError(t, err)
			require.NoError(t, h.Poke(enumPtr.Addr(), patched))

			_, err = value.ReadJSON(h, enumPtr, 0)
			require.ErrorIs(t, err, errors.ErrRecursionLimit)
		})
	}
}

func TestJSON_DeepButFiniteNesting(t *testing.T) {
	h := newHeap(currentVersion)

	j := value.JSONNull()
	for range 20 {
		j = value.JSONArray(j)
	}

	p, err := value.AllocJSON(h, j)
	require.NoError(t, err)

	_, err = value.ReadJSON(h, p, 0)
	require.NoError(t, err)
}

func TestJSON_TooDeepNesting(t *testing.T) {
	h := newHeap(currentVersion)

	j := value.JSONNull()
	for range 100 {
		j = value.JSONArray(j)
	}

	p, err := value.AllocJSON(h, j)
	require.NoError(t, err)

	_, err = value.ReadJSON(h, p, 0)
	require.ErrorIs(t, err, errors.ErrRecursionLimit)
}

func TestJSON_NumberPayloadIsString(t *testing.T) {
	h := newHeap(currentVersion)

	p, err := value.AllocJSON(h, value.JSONNumber("3.25"))
	require.NoError(t, err)

	e, err := asc.ReadObj(h, p)
	require.NoError(t, err)
	assert.Equal(t, value.JSONKindNumber, e.Kind)

	sp, err := value.PayloadPtr[asc.String](e)
	require.NoError(t, err)
	s, err := asc.ReadObj(h, sp)
	require.NoError(t, err)
	assert.Equal(t, "3.25", s.Value())
}
