package asc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
)

func TestCheckDepth(t *testing.T) {
	assert.NoError(t, asc.CheckDepth(0, asc.MaxRecursionDepth))
	assert.NoError(t, asc.CheckDepth(asc.MaxRecursionDepth, asc.MaxRecursionDepth))

	err := asc.CheckDepth(asc.MaxRecursionDepth+1, asc.MaxRecursionDepth)
	require.ErrorIs(t, err, errors.ErrRecursionLimit)
	assert.Contains(t, err.Error(), "128")
}

func TestGet_StopsBeforeReading(t *testing.T) {
	h := &countingHeap{Memory: newHeap(v5)}

	s, err := asc.StringFromGo("deep", v5)
	require.NoError(t, err)
	ptr, err := asc.AllocObj(h, s)
	require.NoError(t, err)

	got, err := asc.Get(h, ptr, asc.MaxRecursionDepth)
	require.NoError(t, err)
	assert.Equal(t, "deep", got.Value())

	reads := h.reads
	_, err = asc.Get(h, ptr, asc.MaxRecursionDepth+1)
	require.ErrorIs(t, err, errors.ErrRecursionLimit)
	assert.Equal(t, reads, h.reads)
}

func TestGetWithLimit(t *testing.T) {
	h := newHeap(v4)

	s, err := asc.StringFromGo("x", v4)
	require.NoError(t, err)
	ptr, err := asc.AllocObj(h, s)
	require.NoError(t, err)

	_, err = asc.GetWithLimit(h, ptr, 3, 2)
	require.ErrorIs(t, err, errors.ErrRecursionLimit)

	_, err = asc.GetWithLimit(h, ptr, 2, 2)
	require.NoError(t, err)
}

func TestGetAll_DescendsOneLevel(t *testing.T) {
	h := newHeap(v5)

	s, err := asc.StringFromGo("x", v5)
	require.NoError(t, err)
	ptr, err := asc.AllocObj(h, s)
	require.NoError(t, err)
	ptrs := []asc.Ptr[asc.String]{ptr, ptr}

	got, err := asc.GetAll(h, ptrs, asc.MaxRecursionDepth-1)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = asc.GetAll(h, ptrs, asc.MaxRecursionDepth)
	require.ErrorIs(t, err, errors.ErrRecursionLimit)

	empty, err := asc.GetAll[asc.String](h, nil, asc.MaxRecursionDepth)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
