// Package asc implements the AssemblyScript object codecs.
//
// Every guest class implements the codec contract: Type encodes a value to
// the exact bytes the guest lays out, and Object adds in-place decoding, the
// legacy size probe and the class tag. Objects are placed with AllocObj and
// read back with ReadObj through a typed Ptr.
//
// # Object Layout
//
// For API versions above 0.0.4 every object is preceded by a header:
//
//	offset  field    value
//	──────────────────────────────────────────────
//	-20     mmInfo   16 + padded content length
//	-16     gcInfo   0
//	-12     gcInfo2  0
//	-8      rtId     heap.TypeID(tag)
//	-4      rtSize   logical content length
//	 0      content  (pointer points here)
//
// Legacy objects have no header; their size is derived from their own fields.
//
// # Versioned Layouts
//
//	Class        legacy (<= 0.0.4)                   current
//	──────────────────────────────────────────────────────────────────────────
//	String       length u32, units []u16             units []u16 + pow2 padding
//	ArrayBuffer  byteLength u32, pad 4, content      content + pow2 padding
//	Array<T>     buffer u32, length u32              buffer, dataStart, byteLength u32, length i32
//	TypedArray   buffer u32, byteOffset, byteLength  buffer u32, dataStart, byteLength
//
// # Safety
//
// Bytes read from the guest are untrusted. Decoders check every length and
// offset against the bytes actually read and return taxonomy errors from the
// errors package instead of panicking. Pointer-following decoders take a
// depth and fail with RecursionLimitReached past MaxRecursionDepth.
package asc
