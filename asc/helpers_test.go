package asc_test

import (
	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/heap"
)

var (
	v3 = ascruntime.MustParseVersion("0.0.3")
	v4 = ascruntime.MustParseVersion("0.0.4")
	v5 = ascruntime.MustParseVersion("0.0.5")
	v1 = ascruntime.MustParseVersion("1.0.0")
)

// versions covers both layouts.
var versions = []struct {
	name    string
	version ascruntime.Version
}{
	{"legacy", v4},
	{"current", v5},
}

func newHeap(v ascruntime.Version) *heap.Memory {
	return heap.NewMemory(v, nil)
}

func u32le(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// countingHeap records calls made to the wrapped heap.
type countingHeap struct {
	*heap.Memory
	reads  int
	writes int
	typeID error
}

func (c *countingHeap) Read(addr, length uint32) ([]byte, error) {
	c.reads++
	return c.Memory.Read(addr, length)
}

func (c *countingHeap) Write(data []byte) (uint32, error) {
	c.writes++
	return c.Memory.Write(data)
}

func (c *countingHeap) TypeID(tag ascruntime.TypeTag) (uint32, error) {
	if c.typeID != nil {
		return 0, c.typeID
	}
	return c.Memory.TypeID(tag)
}

func newHeapWithLimit(v ascruntime.Version, limit uint32) *heap.Memory {
	return heap.NewMemory(v, &heap.MemoryConfig{Limit: limit})
}
