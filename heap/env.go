package heap

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
)

// EnvModule is the import module AssemblyScript guests expect.
const EnvModule = "env"

// GuestAbort is raised when the guest calls abort. Calls into the guest
// return it wrapped, so errors.As recovers it.
type GuestAbort struct {
	Message string
	File    string
	Line    uint32
	Column  uint32
}

func (e *GuestAbort) Error() string {
	return fmt.Sprintf("guest aborted: %s at %s:%d:%d", e.Message, e.File, e.Line, e.Column)
}

// InstantiateEnv registers the env host module with abort(msg, file, line,
// column). String arguments are decoded with the layout of version v.
func InstantiateEnv(ctx context.Context, r wazero.Runtime, v ascruntime.Version) (api.Module, error) {
	i32 := api.ValueTypeI32
	return r.NewHostModuleBuilder(EnvModule).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
			h := newReader(ctx, mod.Memory(), v)
			abort := readAbort(h,
				asc.NewPtr[asc.String](api.DecodeU32(stack[0])),
				asc.NewPtr[asc.String](api.DecodeU32(stack[1])),
				api.DecodeU32(stack[2]),
				api.DecodeU32(stack[3]))
			Logger().Error("guest abort",
				zap.String("module", mod.Name()),
				zap.String("message", abort.Message),
				zap.String("file", abort.File),
				zap.Uint32("line", abort.Line),
				zap.Uint32("column", abort.Column))
			panic(abort)
		}), []api.ValueType{i32, i32, i32, i32}, nil).
		WithName("abort").
		Export("abort").
		Instantiate(ctx)
}

// readAbort decodes the abort arguments. Strings that fail to decode are
// replaced by a description of the failure so the abort itself still
// surfaces.
func readAbort(h ascruntime.Heap, msg, file asc.Ptr[asc.String], line, column uint32) *GuestAbort {
	return &GuestAbort{
		Message: readAbortString(h, msg),
		File:    readAbortString(h, file),
		Line:    line,
		Column:  column,
	}
}

func readAbortString(h ascruntime.Heap, p asc.Ptr[asc.String]) string {
	if p.IsNull() {
		return ""
	}
	s, err := asc.ReadObj(h, p)
	if err != nil {
		return fmt.Sprintf("<unreadable string at %s: %v>", p, err)
	}
	return s.Value()
}
