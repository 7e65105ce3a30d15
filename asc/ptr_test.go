package asc_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
	"github.com/wippyai/asc-runtime/heap"
)

func TestPtr_Basics(t *testing.T) {
	p := asc.NewPtr[asc.String](28)
	assert.Equal(t, uint32(28), p.Addr())
	assert.False(t, p.IsNull())
	assert.Equal(t, "0x1c", p.String())

	var null asc.Ptr[asc.String]
	assert.True(t, null.IsNull())
}

func TestAllocObj_SingleWrite(t *testing.T) {
	for _, tc := range versions {
		t.Run(tc.name, func(t *testing.T) {
			h := &countingHeap{Memory: newHeap(tc.version)}

			s, err := asc.StringFromGo("payload", tc.version)
			require.NoError(t, err)

			_, err = asc.AllocObj(h, s)
			require.NoError(t, err)
			assert.Equal(t, 1, h.writes)
		})
	}
}

func TestAllocObj_LegacyHasNoHeader(t *testing.T) {
	h := newHeap(v4)

	s, err := asc.StringFromGo("abc", v4)
	require.NoError(t, err)

	ptr, err := asc.AllocObj(h, s)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), ptr.Addr())
	assert.Equal(t, uint32(8+4+6), h.Size())
}

func TestAllocObj_CurrentBlockIsAligned(t *testing.T) {
	h := newHeap(v5)

	for _, n := range []int{0, 1, 5, 17, 40} {
		before := h.Size()
		buf, err := asc.NewArrayBuffer(make([]byte, n), v5)
		require.NoError(t, err)

		ptr, err := asc.AllocObj(h, buf)
		require.NoError(t, err)
		assert.Equal(t, before+asc.HeaderSize, ptr.Addr())
		assert.Zero(t, (h.Size()-before-asc.HeaderSize)%16, "content of %d bytes", n)

		size, err := asc.ReadLen(h, ptr)
		require.NoError(t, err)
		assert.Equal(t, uint32(n), size)
	}
}

func TestAllocObj_UsesHeapTypeID(t *testing.T) {
	h := heap.NewMemory(v5, &heap.MemoryConfig{
		TypeIDs: map[ascruntime.TypeTag]uint32{ascruntime.TagString: 77},
	})

	s, err := asc.StringFromGo("x", v5)
	require.NoError(t, err)

	ptr, err := asc.AllocObj(h, s)
	require.NoError(t, err)

	rtID, err := h.Read(ptr.Addr()-8, 4)
	require.NoError(t, err)
	assert.Equal(t, u32le(77), rtID)
}

func TestAllocObj_TypeIDFailure(t *testing.T) {
	boom := stderrors.New("no such class")
	h := &countingHeap{Memory: newHeap(v5), typeID: boom}

	s, err := asc.StringFromGo("x", v5)
	require.NoError(t, err)

	_, err = asc.AllocObj(h, s)
	require.ErrorIs(t, err, boom)
	assert.Zero(t, h.writes)
}

func TestAllocObj_LegacySkipsTypeID(t *testing.T) {
	h := &countingHeap{Memory: newHeap(v4), typeID: stderrors.New("unused")}

	s, err := asc.StringFromGo("x", v4)
	require.NoError(t, err)

	_, err = asc.AllocObj(h, s)
	require.NoError(t, err)
}

func TestReadLen_Errors(t *testing.T) {
	h := newHeap(v5)

	_, err := asc.ReadLen(h, asc.Ptr[asc.String](asc.NullPtr))
	require.ErrorIs(t, err, errors.ErrMalformedInput)

	_, err = asc.ReadLen(h, asc.NewPtr[asc.String](2))
	require.ErrorIs(t, err, errors.ErrHeapAccess)

	_, err = asc.ReadObj(h, asc.NewPtr[asc.String](1<<20))
	require.ErrorIs(t, err, errors.ErrHeapAccess)
}

func TestReadObj_RtSizePastHeapEnd(t *testing.T) {
	h := newHeap(v5)

	s, err := asc.StringFromGo("hi", v5)
	require.NoError(t, err)
	ptr, err := asc.AllocObj(h, s)
	require.NoError(t, err)

	require.NoError(t, h.Poke(ptr.Addr()-4, u32le(4096)))

	_, err = asc.ReadObj(h, ptr)
	require.ErrorIs(t, err, errors.ErrHeapAccess)
}

func TestEncode(t *testing.T) {
	s, err := asc.NewString([]uint16{'a'})
	require.NoError(t, err)

	direct, err := s.ToAscBytes()
	require.NoError(t, err)

	viaEncode, err := asc.Encode(s)
	require.NoError(t, err)
	assert.Equal(t, direct, viaEncode)
}
