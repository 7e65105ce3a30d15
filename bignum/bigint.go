// Package bignum marshals arbitrary precision numbers to and from guest
// memory.
//
// A guest BigInt is a Uint8Array of little-endian two's-complement bytes. A
// guest BigDecimal is a pair of BigInt pointers, digits and exponent, whose
// value is digits * 10^exp.
package bignum

import (
	"math/big"

	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
)

// BigInt is the guest BigInt class. It shares the Uint8Array layout and tag.
type BigInt struct {
	asc.Uint8Array
}

// NewBigInt places the two's-complement bytes of x in h and returns the
// BigInt view over them.
func NewBigInt(h asc.Heap, x *big.Int) (*BigInt, error) {
	ta, err := asc.NewTypedArray[uint8, asc.U8](h, SignedBytes(x))
	if err != nil {
		return nil, err
	}
	return &BigInt{Uint8Array: *ta}, nil
}

// AllocBigInt places x and its view in h.
func AllocBigInt(h asc.Heap, x *big.Int) (asc.Ptr[BigInt], error) {
	b, err := NewBigInt(h, x)
	if err != nil {
		return asc.NullPtr, err
	}
	return asc.AllocObj(h, b)
}

// Big reads the bytes behind b and returns the integer they encode.
func (b *BigInt) Big(h asc.Heap) (*big.Int, error) {
	raw, err := b.ToSlice(h)
	if err != nil {
		return nil, err
	}
	return FromSignedBytes(raw), nil
}

// Uint64 reads b and converts it, failing when it is negative or too large.
func (b *BigInt) Uint64(h asc.Heap) (uint64, error) {
	x, err := b.Big(h)
	if err != nil {
		return 0, err
	}
	return ToUint64(x)
}

// Int64 reads b and converts it, failing when it does not fit in an int64.
func (b *BigInt) Int64(h asc.Heap) (int64, error) {
	x, err := b.Big(h)
	if err != nil {
		return 0, err
	}
	return ToInt64(x)
}

// SignedBytes returns the shortest little-endian two's-complement encoding of
// x. Zero encodes as a single zero byte.
func SignedBytes(x *big.Int) []byte {
	var n int
	v := new(big.Int)
	if x.Sign() >= 0 {
		n = x.BitLen()/8 + 1
		v.Set(x)
	} else {
		// -2^(8n-1) <= x requires |x|-1 to fit in 8n-1 bits.
		abs := new(big.Int).Neg(x)
		n = abs.Sub(abs, big.NewInt(1)).BitLen()/8 + 1
		v.Lsh(big.NewInt(1), uint(8*n))
		v.Add(v, x)
	}

	out := v.FillBytes(make([]byte, n))
	reverse(out)
	return out
}

// FromSignedBytes decodes little-endian two's-complement bytes. An empty
// slice is zero.
func FromSignedBytes(b []byte) *big.Int {
	if len(b) == 0 {
		return new(big.Int)
	}
	be := make([]byte, len(b))
	copy(be, b)
	reverse(be)

	x := new(big.Int).SetBytes(be)
	if b[len(b)-1]&0x80 != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}
	return x
}

// ToUint64 converts x, failing with NumberOutOfRange when it is negative or
// does not fit.
func ToUint64(x *big.Int) (uint64, error) {
	if x.Sign() < 0 {
		return 0, errors.NumberOutOfRange("BigInt", "negative value "+x.String()+" cannot convert to u64")
	}
	if !x.IsUint64() {
		return 0, errors.NumberOutOfRange("BigInt", "value "+x.String()+" does not fit in u64")
	}
	return x.Uint64(), nil
}

// ToInt64 converts x, failing with NumberOutOfRange when it does not fit.
func ToInt64(x *big.Int) (int64, error) {
	if !x.IsInt64() {
		return 0, errors.NumberOutOfRange("BigInt", "value "+x.String()+" does not fit in i64")
	}
	return x.Int64(), nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
