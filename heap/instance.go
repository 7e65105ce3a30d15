package heap

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

// DefaultMinArenaSize is the smallest chunk requested from the guest
// allocator. Small objects are carved out of one arena instead of costing a
// guest call each.
const DefaultMinArenaSize = 10_000

// arenaAlignOffset moves a fresh current-layout arena from the allocator's
// block start to where a 16-byte aligned object header begins. The guest's
// untyped allocation returns a block whose 4-byte mmInfo precedes the
// 16-byte boundary.
const arenaAlignOffset = 12

// Guest export names.
const (
	ExportMemory         = "memory"
	ExportAllocate       = "allocate"
	ExportAllocateLegacy = "memory.allocate"
	ExportIDOfType       = "id_of_type"
)

// Config holds configuration for a wazero-backed heap
type Config struct {
	// Logger overrides the package logger for this heap.
	Logger *zap.Logger

	// MinArenaSize is the minimum arena requested from the guest allocator.
	// 0 means DefaultMinArenaSize.
	MinArenaSize uint32
}

// Instance is a Heap over a wazero module's linear memory.
type Instance struct {
	ctx        context.Context
	mem        api.Memory
	allocate   api.Function
	idOfType   api.Function
	log        *zap.Logger
	version    ascruntime.Version
	arenaStart uint32
	arenaFree  uint32
	minArena   uint32
}

var _ ascruntime.Heap = (*Instance)(nil)

// NewInstance binds a heap to mod. The module must export its memory and an
// allocator; current-version guests must also export id_of_type.
//
// ctx is used for every guest call the heap makes.
func NewInstance(ctx context.Context, mod api.Module, v ascruntime.Version, cfg *Config) (*Instance, error) {
	if mod == nil {
		return nil, fmt.Errorf("heap: nil module")
	}

	mem := mod.ExportedMemory(ExportMemory)
	if mem == nil {
		mem = mod.Memory()
	}
	if mem == nil {
		return nil, fmt.Errorf("heap: module %q exports no memory", mod.Name())
	}

	allocate := mod.ExportedFunction(ExportAllocate)
	if allocate == nil {
		allocate = mod.ExportedFunction(ExportAllocateLegacy)
	}
	if allocate == nil {
		return nil, fmt.Errorf("heap: module %q exports neither %q nor %q",
			mod.Name(), ExportAllocate, ExportAllocateLegacy)
	}

	idOfType := mod.ExportedFunction(ExportIDOfType)
	if idOfType == nil && !ascruntime.IsLegacy(v) {
		return nil, fmt.Errorf("heap: module %q exports no %q required by API version %s",
			mod.Name(), ExportIDOfType, v.String())
	}

	h := &Instance{
		ctx:      ctx,
		mem:      mem,
		allocate: allocate,
		idOfType: idOfType,
		log:      Logger(),
		version:  v,
		minArena: DefaultMinArenaSize,
	}
	if cfg != nil {
		if cfg.Logger != nil {
			h.log = cfg.Logger
		}
		if cfg.MinArenaSize > 0 {
			h.minArena = cfg.MinArenaSize
		}
	}
	return h, nil
}

// newReader builds a read-only view used by host functions, which only see
// the calling module.
func newReader(ctx context.Context, mem api.Memory, v ascruntime.Version) *Instance {
	return &Instance{ctx: ctx, mem: mem, version: v, log: Logger()}
}

// Read copies length bytes starting at addr out of guest memory.
func (h *Instance) Read(addr, length uint32) ([]byte, error) {
	view, ok := h.mem.Read(addr, length)
	if !ok {
		return nil, errors.HeapAccess(
			fmt.Errorf("memory read out of bounds: offset=%d, length=%d, size=%d", addr, length, h.mem.Size()),
			addr, length)
	}
	out := make([]byte, len(view))
	copy(out, view)
	return out, nil
}

// Write copies data into the current arena, requesting a new arena from the
// guest when the free space is too small. Space left in the old arena is
// abandoned.
func (h *Instance) Write(data []byte) (uint32, error) {
	if len(data) > math.MaxInt32-arenaAlignOffset {
		return 0, errors.SizeNotFit(errors.PhaseAlloc, "", uint64(len(data)))
	}
	size := uint32(len(data))

	if size > h.arenaFree {
		if err := h.newArena(size); err != nil {
			return 0, err
		}
	}

	addr := h.arenaStart
	if !h.mem.Write(addr, data) {
		return 0, errors.HeapAccess(
			fmt.Errorf("memory write out of bounds: offset=%d, length=%d, size=%d", addr, size, h.mem.Size()),
			addr, size)
	}
	h.arenaStart += size
	h.arenaFree -= size
	return addr, nil
}

func (h *Instance) newArena(size uint32) error {
	if h.allocate == nil {
		return errors.New(errors.PhaseAlloc, errors.KindHeapAccess).
			Detail("heap is read-only").
			Build()
	}

	arena := max(size, h.minArena)
	request := arena
	legacy := ascruntime.IsLegacy(h.version)
	if !legacy {
		request += arenaAlignOffset
	}

	results, err := h.allocate.Call(h.ctx, uint64(request))
	if err != nil {
		return errors.New(errors.PhaseAlloc, errors.KindHeapAccess).
			Detail("guest allocate(%d) failed", request).
			Cause(err).
			Build()
	}
	if len(results) == 0 {
		return errors.New(errors.PhaseAlloc, errors.KindHeapAccess).
			Detail("guest allocate(%d) returned no result", request).
			Build()
	}

	start := uint32(results[0])
	if !legacy {
		start += arenaAlignOffset
	}
	h.arenaStart = start
	h.arenaFree = arena

	h.log.Debug("allocated arena",
		zap.Uint32("start", start),
		zap.Uint32("size", arena),
		zap.String("api_version", h.version.String()))
	return nil
}

// APIVersion returns the version declared at construction.
func (h *Instance) APIVersion() ascruntime.Version {
	return h.version
}

// TypeID asks the guest for the runtime class id of tag. Legacy guests have
// no headers and the tag is returned unchanged.
func (h *Instance) TypeID(tag ascruntime.TypeTag) (uint32, error) {
	if h.idOfType == nil {
		if ascruntime.IsLegacy(h.version) {
			return uint32(tag), nil
		}
		return 0, errors.New(errors.PhaseAlloc, errors.KindHeapAccess).
			Detail("guest exports no %s", ExportIDOfType).
			Build()
	}

	results, err := h.idOfType.Call(h.ctx, uint64(tag))
	if err != nil {
		return 0, errors.New(errors.PhaseAlloc, errors.KindHeapAccess).
			Detail("guest %s(%d) failed", ExportIDOfType, uint32(tag)).
			Cause(err).
			Build()
	}
	if len(results) == 0 {
		return 0, errors.New(errors.PhaseAlloc, errors.KindHeapAccess).
			Detail("guest %s(%d) returned no result", ExportIDOfType, uint32(tag)).
			Build()
	}
	return uint32(results[0]), nil
}

// MemorySize is the current size of guest linear memory in bytes.
func (h *Instance) MemorySize() uint32 {
	return h.mem.Size()
}
