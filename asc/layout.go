package asc

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/asc-runtime/errors"
)

// HeaderSize is the size of the object header preceding current-layout
// objects. The String and ArrayBuffer capacity rounding uses the same
// constant, so the padding they emit always completes the block that
// AllocObj starts with the header.
const HeaderSize = 20

// sizeOfRtSize is the width of the trailing rtSize header field.
const sizeOfRtSize = 4

// nextPowerOfTwo returns the smallest power of two >= n (1 for n == 0).
func nextPowerOfTwo(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// capacityPadding is the zero fill a String or ArrayBuffer with contentLen
// bytes carries so header plus content fills a power-of-two block.
func capacityPadding(contentLen int) int {
	total := uint64(HeaderSize) + uint64(contentLen)
	return int(nextPowerOfTwo(total) - total)
}

// padding16 is the fill needed to align n to 16 bytes.
func padding16(n int) int {
	return (16 - n%16) % 16
}

func fitsU32(n uint64) bool {
	return n <= math.MaxUint32
}

func safeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

func safeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func readU32(h Heap, addr uint32) (uint32, error) {
	b, err := h.Read(addr, 4)
	if err != nil {
		return 0, err
	}
	if len(b) != 4 {
		return 0, errors.SizeMismatch(errors.PhaseDecode, "u32", 4, len(b))
	}
	return binary.LittleEndian.Uint32(b), nil
}

// fixedSize checks b against the exact size of a fixed layout struct.
func fixedSize(b []byte, size int, typ string) error {
	if len(b) != size {
		return errors.SizeMismatch(errors.PhaseDecode, typ, size, len(b))
	}
	return nil
}
