package value_test

import (
	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/heap"
)

var (
	legacyVersion  = ascruntime.MustParseVersion("0.0.4")
	currentVersion = ascruntime.MustParseVersion("0.0.5")
)

var versions = []struct {
	name    string
	version ascruntime.Version
}{
	{"legacy", legacyVersion},
	{"current", currentVersion},
}

func newHeap(v ascruntime.Version) *heap.Memory {
	return heap.NewMemory(v, nil)
}
