package bignum

import (
	"encoding/binary"
	"math"
	"math/big"
	"strconv"
	"strings"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
)

// Decimal is an exact decimal number: Digits * 10^Exp.
type Decimal struct {
	Digits *big.Int
	Exp    int64
}

// ParseDecimal parses plain or exponent notation ("-12.50", "3e-7").
// Syntax errors and exponents beyond int64 fail with NumberOutOfRange.
func ParseDecimal(s string) (Decimal, error) {
	fail := func(reason string) (Decimal, error) {
		return Decimal{}, errors.NumberOutOfRange("BigDecimal", "cannot parse "+strconv.Quote(s)+": "+reason)
	}

	mantissa, expPart, hasExp := strings.Cut(strings.ToLower(s), "e")
	var exp int64
	if hasExp {
		e, err := strconv.ParseInt(expPart, 10, 64)
		if err != nil {
			return fail("bad exponent")
		}
		exp = e
	}

	neg := false
	switch {
	case strings.HasPrefix(mantissa, "-"):
		neg = true
		mantissa = mantissa[1:]
	case strings.HasPrefix(mantissa, "+"):
		mantissa = mantissa[1:]
	}

	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	digits := intPart + fracPart
	if digits == "" || strings.ContainsFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) {
		return fail("invalid digits")
	}

	frac := int64(len(fracPart))
	if exp < math.MinInt64+frac {
		return fail("exponent out of range")
	}
	exp -= frac

	d, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return fail("invalid digits")
	}
	if neg {
		d.Neg(d)
	}
	return Decimal{Digits: d, Exp: exp}.Normalize(), nil
}

// Normalize strips trailing zero digits into the exponent. Zero normalizes to
// 0e0.
func (d Decimal) Normalize() Decimal {
	if d.Digits == nil || d.Digits.Sign() == 0 {
		return Decimal{Digits: new(big.Int)}
	}
	digits := new(big.Int).Set(d.Digits)
	exp := d.Exp
	ten := big.NewInt(10)
	q, r := new(big.Int), new(big.Int)
	for exp < math.MaxInt64 {
		q.QuoRem(digits, ten, r)
		if r.Sign() != 0 {
			break
		}
		digits.Set(q)
		exp++
	}
	return Decimal{Digits: digits, Exp: exp}
}

// MaxRatExponent bounds |Exp| for Rat, which materializes 10^|Exp|.
const MaxRatExponent = 1 << 20

// Rat returns the exact value of d. Exponents beyond MaxRatExponent in
// either direction fail with NumberOutOfRange.
func (d Decimal) Rat() (*big.Rat, error) {
	digits := d.Digits
	if digits == nil {
		digits = new(big.Int)
	}
	if d.Exp > MaxRatExponent || d.Exp < -MaxRatExponent {
		return nil, errors.NumberOutOfRange("BigDecimal",
			"exponent "+strconv.FormatInt(d.Exp, 10)+" out of range")
	}
	exp := d.Exp
	neg := exp < 0
	if neg {
		exp = -exp
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil)
	if neg {
		return new(big.Rat).SetFrac(digits, scale), nil
	}
	return new(big.Rat).SetInt(new(big.Int).Mul(digits, scale)), nil
}

// String formats d without exponent notation when the exponent is small and
// as "<digits>e<exp>" otherwise.
func (d Decimal) String() string {
	n := d.Normalize()
	s := n.Digits.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	switch {
	case n.Exp >= 0 && n.Exp <= 32:
		s += strings.Repeat("0", int(n.Exp))
	case n.Exp < 0 && -n.Exp < int64(len(s)):
		point := len(s) + int(n.Exp)
		s = s[:point] + "." + s[point:]
	case n.Exp < 0 && -n.Exp <= int64(len(s))+32:
		s = "0." + strings.Repeat("0", int(-n.Exp)-len(s)) + s
	default:
		s += "e" + strconv.FormatInt(n.Exp, 10)
	}

	if neg {
		return "-" + s
	}
	return s
}

const bigDecimalSize = 8

// BigDecimal is the guest BigDecimal class: two BigInt pointers.
type BigDecimal struct {
	digits asc.Ptr[BigInt]
	exp    asc.Ptr[BigInt]
}

// NewBigDecimal places the digits and exponent of d in h.
func NewBigDecimal(h asc.Heap, d Decimal) (*BigDecimal, error) {
	d = d.Normalize()
	digits, err := AllocBigInt(h, d.Digits)
	if err != nil {
		return nil, err
	}
	exp, err := AllocBigInt(h, big.NewInt(d.Exp))
	if err != nil {
		return nil, err
	}
	return &BigDecimal{digits: digits, exp: exp}, nil
}

// AllocBigDecimal places d and its pair object in h.
func AllocBigDecimal(h asc.Heap, d Decimal) (asc.Ptr[BigDecimal], error) {
	b, err := NewBigDecimal(h, d)
	if err != nil {
		return asc.NullPtr, err
	}
	return asc.AllocObj(h, b)
}

func (b *BigDecimal) DigitsPtr() asc.Ptr[BigInt] { return b.digits }
func (b *BigDecimal) ExpPtr() asc.Ptr[BigInt]    { return b.exp }

// Decimal follows both pointers one level below depth.
func (b *BigDecimal) Decimal(h asc.Heap, depth int) (Decimal, error) {
	digitsObj, err := asc.Get(h, b.digits, depth+1)
	if err != nil {
		return Decimal{}, err
	}
	digits, err := digitsObj.Big(h)
	if err != nil {
		return Decimal{}, err
	}

	expObj, err := asc.Get(h, b.exp, depth+1)
	if err != nil {
		return Decimal{}, err
	}
	expBig, err := expObj.Big(h)
	if err != nil {
		return Decimal{}, err
	}
	if !expBig.IsInt64() {
		return Decimal{}, errors.NumberOutOfRange("BigDecimal", "exponent "+expBig.String()+" does not fit in i64")
	}
	return Decimal{Digits: digits, Exp: expBig.Int64()}, nil
}

func (b *BigDecimal) AscTag() asc.TypeTag {
	return ascruntime.TagBigDecimal
}

func (b *BigDecimal) ToAscBytes() ([]byte, error) {
	out := make([]byte, bigDecimalSize)
	binary.LittleEndian.PutUint32(out[0:], b.digits.Addr())
	binary.LittleEndian.PutUint32(out[4:], b.exp.Addr())
	return out, nil
}

func (b *BigDecimal) ContentLen(ascBytes []byte) int {
	return len(ascBytes)
}

func (b *BigDecimal) FromAscBytes(data []byte, _ asc.Version) error {
	if len(data) != bigDecimalSize {
		return errors.SizeMismatch(errors.PhaseDecode, "BigDecimal", bigDecimalSize, len(data))
	}
	b.digits = asc.NewPtr[BigInt](binary.LittleEndian.Uint32(data[0:]))
	b.exp = asc.NewPtr[BigInt](binary.LittleEndian.Uint32(data[4:]))
	return nil
}

func (b *BigDecimal) AscSize(uint32, asc.Heap) (uint32, error) {
	return bigDecimalSize, nil
}

// BigDecimalRef is the element of Array<BigDecimal>.
type BigDecimalRef struct{ asc.PtrElem[BigDecimal] }

func (BigDecimalRef) ArrayTag() asc.TypeTag { return ascruntime.TagArrayBigDecimal }

// ArrayBigDecimal is Array<BigDecimal>.
type ArrayBigDecimal = asc.Array[asc.Ptr[BigDecimal], BigDecimalRef]
