package asc

import (
	"encoding/binary"
	"strconv"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

// Ptr is a guest address expected to hold a C. It owns nothing: the bytes
// belong to the heap and every access goes through it.
type Ptr[C any] uint32

// NullPtr is the zero address, never a valid object.
const NullPtr = 0

// NewPtr annotates a raw address with the class it points at.
func NewPtr[C any](addr uint32) Ptr[C] {
	return Ptr[C](addr)
}

// Addr returns the raw guest address.
func (p Ptr[C]) Addr() uint32 {
	return uint32(p)
}

// IsNull reports whether p is the zero address.
func (p Ptr[C]) IsNull() bool {
	return p == NullPtr
}

func (p Ptr[C]) String() string {
	return "0x" + strconv.FormatUint(uint64(p), 16)
}

// AllocObj encodes obj and places it in the heap with a single write.
//
// Legacy heaps receive the bare encoding. Current heaps receive the header
// followed by the content padded to 16 bytes, and the returned pointer
// addresses the content, past the header.
func AllocObj[C any, PC Object[C]](h Heap, obj *C) (Ptr[C], error) {
	pc := PC(obj)
	b, err := pc.ToAscBytes()
	if err != nil {
		return NullPtr, err
	}

	if ascruntime.IsLegacy(h.APIVersion()) {
		addr, err := h.Write(b)
		if err != nil {
			return NullPtr, err
		}
		return Ptr[C](addr), nil
	}

	contentLen := pc.ContentLen(b)
	full := len(b) + padding16(len(b))
	if !fitsU32(uint64(full) + HeaderSize) {
		return NullPtr, errors.SizeNotFit(errors.PhaseAlloc, pc.AscTag().String(), uint64(full)+HeaderSize)
	}

	id, err := h.TypeID(pc.AscTag())
	if err != nil {
		return NullPtr, err
	}

	block := make([]byte, HeaderSize+full)
	writeHeader(block[:HeaderSize], id, uint32(contentLen), uint32(full))
	copy(block[HeaderSize:], b)

	addr, err := h.Write(block)
	if err != nil {
		return NullPtr, err
	}
	ptr, ok := safeAddU32(addr, HeaderSize)
	if !ok {
		return NullPtr, errors.Overflow(errors.PhaseAlloc, addr)
	}
	return Ptr[C](ptr), nil
}

// writeHeader fills dst with mmInfo, gcInfo, gcInfo2, rtId and rtSize.
// mmInfo counts the four trailing header fields plus the padded content.
func writeHeader(dst []byte, typeID, contentLen, fullLen uint32) {
	binary.LittleEndian.PutUint32(dst[0:], HeaderSize-4+fullLen)
	binary.LittleEndian.PutUint32(dst[4:], 0)
	binary.LittleEndian.PutUint32(dst[8:], 0)
	binary.LittleEndian.PutUint32(dst[12:], typeID)
	binary.LittleEndian.PutUint32(dst[16:], contentLen)
}

// ReadLen returns the content length of the object at p: rtSize from the
// header for current layouts, the class's own size probe for legacy ones.
func ReadLen[C any, PC Object[C]](h Heap, p Ptr[C]) (uint32, error) {
	if p.IsNull() {
		return 0, errors.Malformed(errors.PhaseDecode, "", "null pointer dereference")
	}
	if ascruntime.IsLegacy(h.APIVersion()) {
		return PC(new(C)).AscSize(p.Addr(), h)
	}
	if p.Addr() < sizeOfRtSize {
		return 0, errors.HeapAccess(nil, p.Addr(), sizeOfRtSize)
	}
	return readU32(h, p.Addr()-sizeOfRtSize)
}

// ReadObj reads and decodes the object at p.
func ReadObj[C any, PC Object[C]](h Heap, p Ptr[C]) (*C, error) {
	size, err := ReadLen[C, PC](h, p)
	if err != nil {
		return nil, err
	}
	b, err := h.Read(p.Addr(), size)
	if err != nil {
		return nil, err
	}
	return Decode[C, PC](b, h.APIVersion())
}
