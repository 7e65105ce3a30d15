package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindSizeMismatch,
				Type:   "Array",
				Detail: "expected 16 bytes, got 12",
			},
			contains: []string{"[decode]", "size_mismatch", "in Array", "expected 16 bytes"},
		},
		{
			name:     "minimal error",
			err:      &Error{Phase: PhaseEncode, Kind: KindSizeNotFit},
			contains: []string{"[encode]", "size_not_fit"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseHeap,
				Kind:   KindHeapAccess,
				Detail: "read past memory end",
				Cause:  stderrors.New("underlying error"),
			},
			contains: []string{"[heap]", "heap_access", "read past memory end", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				assert.Contains(t, msg, s)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := HeapAccess(cause, 64, 4)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestError_IsMatchesKindSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel *Error
	}{
		{SizeNotFit(PhaseEncode, "String", 1<<33), ErrSizeNotFit},
		{SizeMismatch(PhaseDecode, "Array", 16, 12), ErrSizeMismatch},
		{Overflow(PhaseDecode, 0x80000000), ErrOverflow},
		{Malformed(PhaseDecode, "String", "odd length %d", 3), ErrMalformedInput},
		{InvalidBoolean(PhaseDecode, 2), ErrInvalidBoolean},
		{RecursionLimit(129, 128), ErrRecursionLimit},
		{NumberOutOfRange("BigInt", "negative"), ErrNumberOutOfRange},
		{HeapAccess(nil, 1, 1), ErrHeapAccess},
	}

	all := []*Error{
		ErrSizeNotFit, ErrSizeMismatch, ErrOverflow, ErrMalformedInput,
		ErrInvalidBoolean, ErrRecursionLimit, ErrNumberOutOfRange, ErrHeapAccess,
	}

	for _, tt := range tests {
		t.Run(string(tt.sentinel.Kind), func(t *testing.T) {
			for _, s := range all {
				if s == tt.sentinel {
					assert.ErrorIs(t, tt.err, s)
				} else {
					assert.NotErrorIs(t, tt.err, s)
				}
			}
		})
	}
}

func TestError_IsWithPhase(t *testing.T) {
	err := SizeMismatch(PhaseDecode, "String", 4, 2)

	assert.True(t, err.Is(&Error{Phase: PhaseDecode, Kind: KindSizeMismatch}))
	assert.False(t, err.Is(&Error{Phase: PhaseEncode, Kind: KindSizeMismatch}))
	assert.False(t, err.Is(stderrors.New("other")))
}

func TestError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("lifting result: %w", RecursionLimit(200, 128))

	assert.True(t, Is(err, ErrRecursionLimit))
	assert.Equal(t, KindRecursionLimit, KindOf(err))

	var e *Error
	require.True(t, As(err, &e))
	assert.Equal(t, 200, e.Value)
}

func TestKindOf_NonTaxonomy(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(stderrors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestBuilder(t *testing.T) {
	cause := stderrors.New("boom")
	err := New(PhaseAlloc, KindHeapAccess).
		Type("ArrayBuffer").
		Value(uint32(12)).
		Cause(cause).
		Detail("allocate %d bytes", 12).
		Build()

	assert.Equal(t, PhaseAlloc, err.Phase)
	assert.Equal(t, KindHeapAccess, err.Kind)
	assert.Equal(t, "ArrayBuffer", err.Type)
	assert.Equal(t, uint32(12), err.Value)
	assert.Equal(t, "allocate 12 bytes", err.Detail)
	assert.ErrorIs(t, err, cause)
}

func TestOverflow_CarriesValue(t *testing.T) {
	err := Overflow(PhaseDecode, 4000000000)
	assert.Equal(t, uint32(4000000000), err.Value)
	assert.Contains(t, err.Error(), "4000000000")
}
