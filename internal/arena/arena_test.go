package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocAdvancesOffset(t *testing.T) {
	a := New(16)
	b1, ok := a.TryAlloc(10)
	require.True(t, ok)
	require.Len(t, b1, 10)
	require.Equal(t, 10, a.Used())

	b2, ok := a.TryAlloc(6)
	require.True(t, ok)
	require.Len(t, b2, 6)
	require.Equal(t, 16, a.Used())
}

func TestTryAllocFailsOnOverflow(t *testing.T) {
	a := New(8)
	_, ok := a.TryAlloc(9)
	require.False(t, ok)
	require.Equal(t, 0, a.Used())
}

func TestResetReclaimsSpace(t *testing.T) {
	a := New(8)
	buf, ok := a.TryAlloc(8)
	require.True(t, ok)
	buf[0] = 0xAB

	require.False(t, func() bool { _, ok := a.TryAlloc(1); return ok }())

	a.Reset()
	require.Equal(t, 0, a.Used())

	buf2, ok := a.TryAlloc(8)
	require.True(t, ok)
	require.Equal(t, byte(0), buf2[0])
}

func TestAllocPanicsOnOverflow(t *testing.T) {
	a := New(4)
	require.Panics(t, func() { a.Alloc(5) })
}
