// Package value marshals the dynamically typed values guests exchange with
// the host: store values, JSON values, string-keyed typed maps, and the
// Wrapped and Result holders.
//
// Each dynamic value is an Enum: a 16-byte object holding a kind and a
// 64-bit payload. Scalars live in the payload; everything else is a pointer
// to another guest object, stored in the low 32 bits.
//
//	offset  size  field
//	0       4     kind
//	4       4     padding
//	8       8     payload
//
// Decoding follows pointers through asc.Get, so cyclic or very deep guest
// graphs fail with a recursion limit error instead of exhausting the stack.
package value
