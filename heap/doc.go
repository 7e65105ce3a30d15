// Package heap provides implementations of the ascruntime.Heap capability.
//
// Memory is an in-process heap over a Go byte slice, used to stage objects
// on the host and in tests. Instance adapts a wazero module: it reads and
// writes the exported linear memory, allocates through the guest's
// "allocate" export and resolves type tags through "id_of_type".
//
// Both return errors from the errors package with kind heap_access for
// out-of-bounds access, so callers can tell guest faults from host bugs.
//
// Neither implementation is safe for concurrent use. One host call per
// sandbox instance is in flight at a time.
package heap
