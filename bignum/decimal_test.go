package bignum_test

import (
	"encoding/binary"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/bignum"
	"github.com/wippyai/asc-runtime/errors"
	"github.com/wippyai/asc-runtime/heap"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in     string
		digits string
		exp    int64
		str    string
	}{
		{"0", "0", 0, "0"},
		{"-0.000", "0", 0, "0"},
		{"12.50", "125", -1, "12.5"},
		{"-12.50", "-125", -1, "-12.5"},
		{"+7", "7", 0, "7"},
		{"1000", "1", 3, "1000"},
		{".5", "5", -1, "0.5"},
		{"3e-7", "3", -7, "0.0000003"},
		{"1.5E+10", "15", 9, "15000000000"},
		{"1e100", "1", 100, "1e100"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := bignum.ParseDecimal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.digits, d.Digits.String())
			assert.Equal(t, tt.exp, d.Exp)
			assert.Equal(t, tt.str, d.String())
		})
	}
}

func TestParseDecimal_Errors(t *testing.T) {
	for _, in := range []string{"", "-", "abc", "1.2.3", "1e", "e5", "1e99999999999999999999", "--1", "1,5"} {
		_, err := bignum.ParseDecimal(in)
		require.ErrorIs(t, err, errors.ErrNumberOutOfRange, in)
	}
}

func ratOf(t *testing.T, d bignum.Decimal) *big.Rat {
	t.Helper()
	r, err := d.Rat()
	require.NoError(t, err)
	return r
}

func TestDecimal_Rat(t *testing.T) {
	d, err := bignum.ParseDecimal("-1.25")
	require.NoError(t, err)
	assert.Zero(t, big.NewRat(-5, 4).Cmp(ratOf(t, d)))

	d, err = bignum.ParseDecimal("2e3")
	require.NoError(t, err)
	assert.Zero(t, big.NewRat(2000, 1).Cmp(ratOf(t, d)))
}

func TestDecimal_RatExponentBounds(t *testing.T) {
	five := big.NewInt(5)

	r := ratOf(t, bignum.Decimal{Digits: five, Exp: -bignum.MaxRatExponent})
	assert.Equal(t, 1, big.NewRat(1, 1).Cmp(r))
	assert.Equal(t, 1, r.Sign())

	for _, exp := range []int64{math.MinInt64, math.MaxInt64, -bignum.MaxRatExponent - 1, bignum.MaxRatExponent + 1} {
		_, err := bignum.Decimal{Digits: five, Exp: exp}.Rat()
		require.ErrorIs(t, err, errors.ErrNumberOutOfRange, "exp %d", exp)
	}
}

func TestBigDecimal_HeapRoundTrip(t *testing.T) {
	for _, tc := range versions {
		t.Run(tc.name, func(t *testing.T) {
			h := heap.NewMemory(tc.version, nil)

			for _, s := range []string{"0", "3.14159", "-1e-30", "123456789012345678901234567890"} {
				want, err := bignum.ParseDecimal(s)
				require.NoError(t, err)

				ptr, err := bignum.AllocBigDecimal(h, want)
				require.NoError(t, err)

				obj, err := asc.ReadObj(h, ptr)
				require.NoError(t, err)
				assert.Equal(t, ascruntime.TagBigDecimal, obj.AscTag())

				got, err := obj.Decimal(h, 0)
				require.NoError(t, err)
				assert.Equal(t, want.String(), got.String())
				assert.Equal(t, 0, ratOf(t, want).Cmp(ratOf(t, got)))
			}
		})
	}
}

func TestBigDecimal_ExponentOutOfRange(t *testing.T) {
	h := heap.NewMemory(ascruntime.MustParseVersion("0.0.5"), nil)

	digits, err := bignum.AllocBigInt(h, big.NewInt(1))
	require.NoError(t, err)
	exp, err := bignum.AllocBigInt(h, new(big.Int).Lsh(big.NewInt(1), 70))
	require.NoError(t, err)

	raw := make([]byte, 8)
	binary.LittleEndian.PutUint32(raw[0:], digits.Addr())
	binary.LittleEndian.PutUint32(raw[4:], exp.Addr())

	obj, err := asc.Decode[bignum.BigDecimal](raw, h.APIVersion())
	require.NoError(t, err)
	assert.Equal(t, digits, obj.DigitsPtr())
	assert.Equal(t, exp, obj.ExpPtr())

	_, err = obj.Decimal(h, 0)
	require.ErrorIs(t, err, errors.ErrNumberOutOfRange)
}

func TestBigDecimal_DepthGuard(t *testing.T) {
	h := heap.NewMemory(ascruntime.MustParseVersion("0.0.5"), nil)

	obj, err := bignum.NewBigDecimal(h, bignum.Decimal{Digits: big.NewInt(5), Exp: -1})
	require.NoError(t, err)

	_, err = obj.Decimal(h, asc.MaxRecursionDepth)
	require.ErrorIs(t, err, errors.ErrRecursionLimit)
}

func TestBigDecimal_DecodeSize(t *testing.T) {
	_, err := asc.Decode[bignum.BigDecimal](make([]byte, 12), ascruntime.MustParseVersion("0.0.5"))
	require.ErrorIs(t, err, errors.ErrSizeMismatch)
}

func TestArrayBigDecimal(t *testing.T) {
	for _, tc := range versions {
		t.Run(tc.name, func(t *testing.T) {
			h := heap.NewMemory(tc.version, nil)
			values := []string{"1.5", "-2", "0.001"}

			ptrs := make([]asc.Ptr[bignum.BigDecimal], 0, len(values))
			for _, s := range values {
				d, err := bignum.ParseDecimal(s)
				require.NoError(t, err)
				p, err := bignum.AllocBigDecimal(h, d)
				require.NoError(t, err)
				ptrs = append(ptrs, p)
			}

			arrPtr, err := asc.AllocArray[asc.Ptr[bignum.BigDecimal], bignum.BigDecimalRef](h, ptrs)
			require.NoError(t, err)

			arr, err := asc.ReadObj(h, arrPtr)
			require.NoError(t, err)
			assert.Equal(t, ascruntime.TagArrayBigDecimal, arr.AscTag())

			elems, err := arr.ToSlice(h)
			require.NoError(t, err)

			objs, err := asc.GetAll(h, elems, 0)
			require.NoError(t, err)
			for i, obj := range objs {
				d, err := obj.Decimal(h, 1)
				require.NoError(t, err)
				assert.Equal(t, values[i], d.String())
			}
		})
	}
}
