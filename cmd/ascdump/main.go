package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/heap"
	"github.com/wippyai/asc-runtime/registry"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to AssemblyScript module")
		funcName    = flag.String("func", "", "Export returning an object pointer")
		typeName    = flag.String("type", "", "Guest type of the result ("+strings.Join(typeNames(), ", ")+")")
		apiVersion  = flag.String("api", "0.0.5", "Guest API version")
		argsStr     = flag.String("args", "", "u32 arguments (comma-separated)")
		format      = flag.String("format", formatJSON, "Output format (json, msgpack)")
		list        = flag.Bool("list", false, "List pointer-returning exports and exit")
		tags        = flag.Bool("tags", false, "Print the class tag table and exit")
		verbose     = flag.Bool("v", false, "Debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *tags {
		printTags(os.Stdout, isTerminal(os.Stdout))
		return
	}

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: ascdump -wasm <file.wasm> -func name -type string [-args 1,2] [-format json|msgpack]")
		fmt.Fprintln(os.Stderr, "       ascdump -wasm <file.wasm> -list")
		fmt.Fprintln(os.Stderr, "       ascdump -wasm <file.wasm> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       ascdump -tags")
		os.Exit(1)
	}

	v, err := ascruntime.ParseVersion(*apiVersion)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: api version: %v\n", err)
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
	}
	heap.SetLogger(log)

	if *interactive {
		if err := runInteractive(*wasmFile, v, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args, err := parseArgs(*argsStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(*wasmFile, *funcName, *typeName, *format, args, v, *list, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile, funcName, typeName, format string, args []uint32, v ascruntime.Version, listOnly bool, log *zap.Logger) error {
	ctx := context.Background()

	s, err := openSession(ctx, wasmFile, v, log)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	tty := isTerminal(os.Stdout)

	if listOnly {
		if tty {
			fmt.Println(titleStyle.Render("ascdump") + " " + wasmFile)
		}
		for _, e := range s.exports() {
			fmt.Println(formatExport(e))
		}
		return nil
	}

	if funcName == "" || typeName == "" {
		return fmt.Errorf("both -func and -type are required")
	}
	if _, ok := decoders[typeName]; !ok {
		return fmt.Errorf("unknown type %q (known: %s)", typeName, strings.Join(typeNames(), ", "))
	}

	result, err := s.inspect(ctx, funcName, typeName, args)
	if err != nil {
		return err
	}

	b, err := encode(result, format)
	if err != nil {
		return err
	}
	return writeResult(os.Stdout, b, format, tty)
}

func parseArgs(s string) ([]uint32, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint32, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 0, 32)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = uint32(n)
	}
	return out, nil
}

func formatExport(e export) string {
	params := make([]string, e.params)
	for i := range params {
		params[i] = fmt.Sprintf("arg%d: %s", i, typeStyle.Render("i32"))
	}
	return funcStyle.Render(e.name) + "(" + strings.Join(params, ", ") + ") -> " + typeStyle.Render("ptr")
}

// printTags writes one line per class tag: the id, its name and the host
// type bound to it.
func printTags(w io.Writer, tty bool) {
	if tty {
		fmt.Fprintln(w, titleStyle.Render("class tags"))
	}
	for _, tag := range registry.Tags() {
		e, _ := registry.Lookup(tag)
		fmt.Fprintf(w, "%3d %-40s %s\n", uint32(tag), tag.String(), typeStyle.Render(e.Type.String()))
	}
	for _, tag := range registry.Unmarshaled() {
		fmt.Fprintf(w, "%3d %-40s %s\n", uint32(tag), tag.String(), helpStyle.Render("unmarshaled"))
	}
}
