package asc

import (
	"encoding/binary"
	"math"
	"unicode/utf16"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

// String is an AssemblyScript string: UTF-16LE code units.
//
// The layout is fixed when the value is built. The current layout is the
// bare code units padded so that HeaderSize plus the content fills a
// power-of-two block; the legacy layout prefixes the units with their count.
// Code units are stored verbatim, unpaired surrogates included.
type String struct {
	units  []uint16
	legacy bool
}

// NewString builds a current-layout string from UTF-16 code units.
func NewString(units []uint16) (*String, error) {
	if err := checkStringSize(uint64(len(units)) * 2); err != nil {
		return nil, err
	}
	return &String{units: append([]uint16(nil), units...)}, nil
}

// NewStringFor builds a string using the layout selected by v.
func NewStringFor(units []uint16, v Version) (*String, error) {
	s, err := NewString(units)
	if err != nil {
		return nil, err
	}
	s.legacy = ascruntime.IsLegacy(v)
	return s, nil
}

// StringFromGo transcodes s to UTF-16 for the layout selected by v.
func StringFromGo(s string, v Version) (*String, error) {
	return NewStringFor(utf16.Encode([]rune(s)), v)
}

func checkStringSize(byteSize uint64) error {
	if !fitsU32(byteSize) {
		return errors.SizeNotFit(errors.PhaseEncode, "String", byteSize)
	}
	return nil
}

// Len is the number of UTF-16 code units.
func (s *String) Len() uint32 {
	return uint32(len(s.units))
}

// Units returns the code units. The slice must not be modified.
func (s *String) Units() []uint16 {
	return s.units
}

// Legacy reports whether s uses the legacy layout.
func (s *String) Legacy() bool {
	return s.legacy
}

// Value transcodes the units to a Go string. Unpaired surrogates become
// U+FFFD.
func (s *String) Value() string {
	return string(utf16.Decode(s.units))
}

func (s *String) AscTag() TypeTag {
	return ascruntime.TagString
}

// ToAscBytes writes the code units low byte first. Current-layout output
// carries capacity padding; slice it to ContentLen before FromAscBytes. The
// heap path does this through the rtSize header field.
func (s *String) ToAscBytes() ([]byte, error) {
	if s.legacy {
		out := make([]byte, 4+2*len(s.units))
		binary.LittleEndian.PutUint32(out, s.Len())
		putUnits(out[4:], s.units)
		return out, nil
	}

	content := 2 * len(s.units)
	out := make([]byte, content+capacityPadding(content))
	putUnits(out, s.units)
	return out, nil
}

// ContentLen is the byte length of the units, capacity padding excluded.
func (s *String) ContentLen(_ []byte) int {
	if s.legacy {
		return 4 + 2*len(s.units)
	}
	return 2 * len(s.units)
}

// FromAscBytes decodes exactly the content bytes. Trailing capacity padding
// is not recognised and decodes as NUL code units.
func (s *String) FromAscBytes(b []byte, v Version) error {
	if ascruntime.IsLegacy(v) {
		return s.fromLegacyBytes(b)
	}
	units, err := getUnits(b)
	if err != nil {
		return err
	}
	decoded, err := NewString(units)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func (s *String) fromLegacyBytes(b []byte) error {
	if len(b) < 4 {
		return errors.SizeMismatch(errors.PhaseDecode, "String", 4, len(b))
	}
	length := binary.LittleEndian.Uint32(b)
	units, err := getUnits(b[4:])
	if err != nil {
		return err
	}
	if uint64(len(units)) != uint64(length) {
		return errors.SizeMismatch(errors.PhaseDecode, "String", int(length)*2, len(units)*2)
	}
	*s = String{units: units, legacy: true}
	return nil
}

// AscSize is 4 + 2*length, read from the legacy length prefix.
func (s *String) AscSize(addr uint32, h Heap) (uint32, error) {
	length, err := readU32(h, addr)
	if err != nil {
		return 0, err
	}
	data, ok := safeMulU32(length, 2)
	if !ok {
		return 0, errors.Overflow(errors.PhaseDecode, length)
	}
	total, ok := safeAddU32(data, 4)
	if !ok {
		return 0, errors.Overflow(errors.PhaseDecode, length)
	}
	return total, nil
}

func putUnits(dst []byte, units []uint16) {
	for i, u := range units {
		dst[2*i] = byte(u)
		dst[2*i+1] = byte(u >> 8)
	}
}

// getUnits reads two-byte little-endian code units. A trailing odd byte is
// malformed input, never silently dropped.
func getUnits(b []byte) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, errors.Malformed(errors.PhaseDecode, "String",
			"attempted to read past end of string content: %d bytes", len(b))
	}
	if uint64(len(b)) > math.MaxUint32 {
		return nil, errors.SizeNotFit(errors.PhaseDecode, "String", uint64(len(b)))
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return units, nil
}
