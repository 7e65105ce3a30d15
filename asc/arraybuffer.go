package asc

import (
	"encoding/binary"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

// legacyBufferPrefix is byteLength plus 4 bytes that align the content to 8.
const legacyBufferPrefix = 8

// ArrayBuffer is the raw byte store behind arrays and typed arrays.
//
// Legacy layout: byteLength u32, 4 zero bytes, content. Current layout: the
// content, zero filled to complete a power-of-two block with the header.
type ArrayBuffer struct {
	content []byte
	legacy  bool
}

// NewArrayBuffer wraps content using the layout selected by v.
func NewArrayBuffer(content []byte, v Version) (*ArrayBuffer, error) {
	if !fitsU32(uint64(len(content))) {
		return nil, errors.SizeNotFit(errors.PhaseEncode, "ArrayBuffer", uint64(len(content)))
	}
	return &ArrayBuffer{
		content: content,
		legacy:  ascruntime.IsLegacy(v),
	}, nil
}

// newElemBuffer packs values into a buffer for the layout selected by v.
func newElemBuffer[T any, E Elem[T]](values []T, v Version) (*ArrayBuffer, error) {
	content, err := encodeElems[T, E](values)
	if err != nil {
		return nil, err
	}
	return NewArrayBuffer(content, v)
}

// ByteLength is the content size in bytes.
func (b *ArrayBuffer) ByteLength() uint32 {
	return uint32(len(b.content))
}

// Bytes returns the content. The slice must not be modified.
func (b *ArrayBuffer) Bytes() []byte {
	return b.content
}

func (b *ArrayBuffer) AscTag() TypeTag {
	return ascruntime.TagArrayBuffer
}

func (b *ArrayBuffer) ToAscBytes() ([]byte, error) {
	if b.legacy {
		out := make([]byte, legacyBufferPrefix+len(b.content))
		binary.LittleEndian.PutUint32(out, b.ByteLength())
		copy(out[legacyBufferPrefix:], b.content)
		return out, nil
	}
	out := make([]byte, len(b.content)+capacityPadding(len(b.content)))
	copy(out, b.content)
	return out, nil
}

func (b *ArrayBuffer) ContentLen(ascBytes []byte) int {
	if b.legacy {
		return len(ascBytes)
	}
	return len(b.content)
}

func (b *ArrayBuffer) FromAscBytes(data []byte, v Version) error {
	if !ascruntime.IsLegacy(v) {
		*b = ArrayBuffer{content: append([]byte(nil), data...)}
		return nil
	}
	if len(data) < legacyBufferPrefix {
		return errors.SizeMismatch(errors.PhaseDecode, "ArrayBuffer", legacyBufferPrefix, len(data))
	}
	byteLength := binary.LittleEndian.Uint32(data)
	content := data[legacyBufferPrefix:]
	if uint64(byteLength) != uint64(len(content)) {
		return errors.SizeMismatch(errors.PhaseDecode, "ArrayBuffer", int(byteLength), len(content))
	}
	*b = ArrayBuffer{content: append([]byte(nil), content...), legacy: true}
	return nil
}

// AscSize is the prefix plus byteLength, read from the legacy header field.
func (b *ArrayBuffer) AscSize(addr uint32, h Heap) (uint32, error) {
	byteLength, err := readU32(h, addr)
	if err != nil {
		return 0, err
	}
	total, ok := safeAddU32(byteLength, legacyBufferPrefix)
	if !ok {
		return 0, errors.Overflow(errors.PhaseDecode, byteLength)
	}
	return total, nil
}

// bufferElems decodes count elements starting at byte offset.
func bufferElems[T any, E Elem[T]](b *ArrayBuffer, offset, count uint32) ([]T, error) {
	return decodeElems[T, E](b.content, offset, count)
}
