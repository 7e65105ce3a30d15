// Package errors provides the error taxonomy shared by every codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (the
// failure class). Kinds form a closed set:
//
//	size_not_fit        content byte size does not fit the u32 size field
//	size_mismatch       byte length disagrees with a header field
//	overflow            numeric value exceeds its representable range
//	malformed_input     generic decode failure
//	invalid_boolean     boolean byte is neither 0 nor 1
//	recursion_limit     pointer-following decode went too deep
//	number_out_of_range big number conversion loses sign or magnitude
//	heap_access         the heap reported an invalid access
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindSizeMismatch).
//		Type("Array").
//		Detail("expected %d bytes, got %d", 16, n).
//		Build()
//
// or a convenience constructor:
//
//	err := errors.Overflow(errors.PhaseDecode, length)
//
// Every Kind has a sentinel, so callers match the class of failure without
// caring about the phase:
//
//	if errors.Is(err, errors.ErrRecursionLimit) { ... }
package errors
