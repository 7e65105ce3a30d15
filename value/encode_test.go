package value_test

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/wippyai/asc-runtime/bignum"
	"github.com/wippyai/asc-runtime/value"
)

func TestStore_MarshalJSON(t *testing.T) {
	d, err := bignum.ParseDecimal("0.25")
	require.NoError(t, err)

	s := value.StoreArray(
		value.StoreString("x"),
		value.StoreInt(-1),
		value.StoreBigDecimal(d),
		value.StoreBool(false),
		value.StoreNull(),
		value.StoreBytes([]byte{0x01, 0xff}),
		value.StoreBigInt(big.NewInt(-300)),
		value.StoreArray(),
	)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `["x",-1,"0.25",false,null,"0x01ff","-300",[]]`, string(out))
}

func TestJSON_MarshalInvalidNumber(t *testing.T) {
	out, err := json.Marshal(value.JSONNumber("NaN"))
	require.NoError(t, err)
	assert.Equal(t, `"NaN"`, string(out))
}

func TestJSON_EncodeMsgpack(t *testing.T) {
	j, err := value.ParseJSON([]byte(`{"int":7,"float":1.5,"huge":123456789012345678901234567890,"list":[null,"s",false]}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&buf).Encode(j))

	var got map[string]any
	require.NoError(t, msgpack.NewDecoder(&buf).Decode(&got))

	assert.EqualValues(t, 7, got["int"])
	assert.Equal(t, 1.5, got["float"])
	assert.InDelta(t, 1.2345678901234568e29, got["huge"], 1e15)
	assert.Equal(t, []any{nil, "s", false}, got["list"])
}

func TestStore_EncodeMsgpack(t *testing.T) {
	s := value.StoreArray(
		value.StoreInt(-9),
		value.StoreBytes([]byte{1, 2}),
		value.StoreBigInt(big.NewInt(1<<40)),
		value.StoreNull(),
	)

	b, err := msgpack.Marshal(s)
	require.NoError(t, err)

	var got []any
	require.NoError(t, msgpack.Unmarshal(b, &got))
	require.Len(t, got, 4)
	assert.EqualValues(t, -9, got[0])
	assert.Equal(t, []byte{1, 2}, got[1])
	assert.Equal(t, "1099511627776", got[2])
	assert.Nil(t, got[3])
}
