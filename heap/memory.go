package heap

import (
	"fmt"
	"math"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

// memoryBase is the first address Memory hands out. Address 0 stays unused
// so a null pointer never resolves to an object.
const memoryBase = 8

// DefaultMemoryLimit caps a Memory heap at 64 MiB.
const DefaultMemoryLimit = 64 << 20

// MemoryConfig configures a Memory heap.
type MemoryConfig struct {
	// Limit is the maximum heap size in bytes. 0 means DefaultMemoryLimit.
	Limit uint32
	// TypeIDs maps tags to class ids. Unmapped tags resolve to themselves.
	TypeIDs map[ascruntime.TypeTag]uint32
}

// Memory is a growable in-process heap with a bump allocator.
type Memory struct {
	typeIDs map[ascruntime.TypeTag]uint32
	data    []byte
	version ascruntime.Version
	limit   uint32
}

var _ ascruntime.Heap = (*Memory)(nil)

// NewMemory creates an empty heap reporting version v.
func NewMemory(v ascruntime.Version, cfg *MemoryConfig) *Memory {
	m := &Memory{
		data:    make([]byte, memoryBase),
		version: v,
		limit:   DefaultMemoryLimit,
	}
	if cfg != nil {
		if cfg.Limit > 0 {
			m.limit = cfg.Limit
		}
		m.typeIDs = cfg.TypeIDs
	}
	return m
}

// Read copies length bytes starting at addr.
func (m *Memory) Read(addr, length uint32) ([]byte, error) {
	end := uint64(addr) + uint64(length)
	if end > uint64(len(m.data)) {
		return nil, errors.HeapAccess(
			fmt.Errorf("read past heap end %d", len(m.data)), addr, length)
	}
	out := make([]byte, length)
	copy(out, m.data[addr:end])
	return out, nil
}

// Write appends data to the heap and returns its address.
func (m *Memory) Write(data []byte) (uint32, error) {
	end := uint64(len(m.data)) + uint64(len(data))
	if end > uint64(m.limit) || end > math.MaxUint32 {
		return 0, errors.New(errors.PhaseAlloc, errors.KindSizeNotFit).
			Detail("allocating %d bytes exceeds heap limit %d", len(data), m.limit).
			Value(uint64(len(data))).
			Build()
	}
	addr := uint32(len(m.data))
	m.data = append(m.data, data...)
	return addr, nil
}

// Poke overwrites bytes at addr without allocating, for building malformed
// or cyclic guest data.
func (m *Memory) Poke(addr uint32, data []byte) error {
	end := uint64(addr) + uint64(len(data))
	if end > uint64(len(m.data)) {
		return errors.HeapAccess(
			fmt.Errorf("write past heap end %d", len(m.data)), addr, uint32(len(data)))
	}
	copy(m.data[addr:], data)
	return nil
}

// APIVersion returns the version given at construction.
func (m *Memory) APIVersion() ascruntime.Version {
	return m.version
}

// TypeID returns the configured id for tag, or the tag itself.
func (m *Memory) TypeID(tag ascruntime.TypeTag) (uint32, error) {
	if id, ok := m.typeIDs[tag]; ok {
		return id, nil
	}
	return uint32(tag), nil
}

// Size is the number of bytes in use, the reserved prefix included.
func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}
