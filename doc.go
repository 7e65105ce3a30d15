// Package ascruntime marshals values between a Go host and the linear memory
// of an AssemblyScript guest running in a WebAssembly sandbox.
//
// The guest runtime is garbage collected and has its own object layout. Objects
// the host places in guest memory must be byte-exact so the guest GC accepts
// them, and everything the host reads back is treated as untrusted input.
//
// # Architecture Overview
//
//	ascruntime/   Root package with the Heap capability, Version and TypeTag ids
//	├── asc/      Codec contract, pointers, headers, String, ArrayBuffer, Array, TypedArray
//	├── bignum/   BigInt and BigDecimal guest objects
//	├── value/    Enum payloads, store values, JSON values, typed maps
//	├── registry/ Type to tag table, checked at init
//	├── heap/     Heap implementations (in-process and wazero-backed)
//	├── errors/   Error taxonomy
//	└── cmd/      ascdump inspector
//
// # API Versions
//
// The guest declares an API version. Versions up to and including 0.0.4 use
// the legacy layout: objects have no header and sizes are read from the
// objects themselves. Later versions prefix every object with a 20-byte header
// carrying the GC type id and the content size.
//
//	v, _ := ascruntime.ParseVersion("0.0.5")
//	ascruntime.IsLegacy(v) // false
//
// # Quick Start
//
//	v := ascruntime.MustParseVersion("0.0.5")
//	h := heap.NewMemory(v, nil)
//
//	str, err := asc.StringFromGo("hello", v)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ptr, err := asc.AllocObj(h, str)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := asc.ReadObj(h, ptr)
//	fmt.Println(s.Value()) // "hello"
//
// # Thread Safety
//
// Codecs hold no shared state. A Heap is used by one in-flight host call at a
// time; implementations do not lock.
package ascruntime
