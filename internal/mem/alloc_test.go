package mem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestAllocAligned(t *testing.T) {
	for _, size := range []int{1, 8, 63, 64, 65, 4096} {
		b := AllocAligned(size)
		require.Len(t, b, size)
		require.Zero(t, uintptr(unsafe.Pointer(&b[0]))%Alignment)
	}
	require.Nil(t, AllocAligned(0))
}

func TestUint64View(t *testing.T) {
	region := AllocAligned(32)
	words := Uint64View(region, 4)
	require.Len(t, words, 4)

	words[0] = 0x0102030405060708
	require.Equal(t, byte(0x08), region[0]) // Little-endian hosts

	require.Nil(t, Uint64View(region, 0))
}

func TestAligned8(t *testing.T) {
	require.True(t, Aligned8(nil))
	require.True(t, Aligned8(AllocAligned(16)))

	buf := make([]byte, 16)
	aligned := Aligned8(buf)
	off := Aligned8(buf[1:])
	require.NotEqual(t, aligned, off)
}
