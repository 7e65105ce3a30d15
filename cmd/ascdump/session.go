package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/heap"
)

// session is one instantiated guest and the heap bound to it.
type session struct {
	rt   wazero.Runtime
	mod  api.Module
	heap *heap.Instance
	log  *zap.Logger
}

// export is a guest function that takes i32 arguments and returns a single
// i32, which is treated as an object pointer.
type export struct {
	name   string
	params int
}

func openSession(ctx context.Context, wasmFile string, v ascruntime.Version, log *zap.Logger) (*session, error) {
	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	rt := wazero.NewRuntime(ctx)
	if _, err := heap.InstantiateEnv(ctx, rt, v); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate env: %w", err)
	}

	mod, err := rt.Instantiate(ctx, data)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate: %w", err)
	}

	h, err := heap.NewInstance(ctx, mod, v, &heap.Config{Logger: log})
	if err != nil {
		rt.Close(ctx)
		return nil, err
	}

	log.Debug("guest loaded",
		zap.String("file", wasmFile),
		zap.String("api_version", v.String()),
		zap.Uint32("memory_size", h.MemorySize()))

	return &session{rt: rt, mod: mod, heap: h, log: log}, nil
}

// exports lists the functions whose signature fits (i32...) -> i32.
func (s *session) exports() []export {
	var out []export
	for name, def := range s.mod.ExportedFunctionDefinitions() {
		results := def.ResultTypes()
		if len(results) != 1 || results[0] != api.ValueTypeI32 {
			continue
		}
		ok := true
		for _, p := range def.ParamTypes() {
			if p != api.ValueTypeI32 {
				ok = false
				break
			}
		}
		if !ok || name == heap.ExportAllocate || name == heap.ExportAllocateLegacy || name == heap.ExportIDOfType {
			continue
		}
		out = append(out, export{name: name, params: len(def.ParamTypes())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// call invokes fn and returns the pointer it produced.
func (s *session) call(ctx context.Context, fn string, args []uint32) (uint32, error) {
	f := s.mod.ExportedFunction(fn)
	if f == nil {
		return 0, fmt.Errorf("function %q not exported", fn)
	}

	params := make([]uint64, len(args))
	for i, a := range args {
		params[i] = api.EncodeU32(a)
	}

	results, err := f.Call(ctx, params...)
	if err != nil {
		return 0, fmt.Errorf("call %s: %w", fn, err)
	}
	if len(results) != 1 {
		return 0, fmt.Errorf("call %s: expected 1 result, got %d", fn, len(results))
	}

	ptr := api.DecodeU32(results[0])
	s.log.Debug("guest call returned", zap.String("func", fn), zap.Uint32("ptr", ptr))
	return ptr, nil
}

// inspect calls fn and decodes its result as typ.
func (s *session) inspect(ctx context.Context, fn, typ string, args []uint32) (any, error) {
	ptr, err := s.call(ctx, fn, args)
	if err != nil {
		return nil, err
	}
	return decode(s.heap, typ, ptr)
}

func (s *session) Close(ctx context.Context) error {
	return s.rt.Close(ctx)
}
