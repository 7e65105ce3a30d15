package ascruntime

// Heap is the guest memory capability every codec works against.
//
// Addresses are byte offsets into guest linear memory. Implementations report
// out-of-bounds access as errors, never by panicking.
type Heap interface {
	// Read copies length bytes starting at addr.
	Read(addr, length uint32) ([]byte, error)
	// Write allocates len(data) bytes, copies data in and returns the address.
	Write(data []byte) (uint32, error)
	// APIVersion is the guest's declared binary-compatibility version.
	APIVersion() Version
	// TypeID resolves a tag to the class id the guest GC expects in object headers.
	TypeID(tag TypeTag) (uint32, error)
}
