// Package mem provides aligned allocation for caller-owned vocabulary
// regions and typed views into them.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment guaranteed by AllocAligned. 64 bytes keeps
// every 8-byte word inside a region naturally aligned and matches cache-line
// placement for the probing table's slots.
const Alignment = 64

// AllocAligned allocates a byte slice of the given size whose first byte sits
// at an address divisible by Alignment.
//
// Note: this allocates slightly more than requested to find an aligned
// offset. The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size == 0 {
		return nil
	}

	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size)]
}

// Uint64View reinterprets region as a []uint64 of n words without copying.
// The region must be at least 8*n bytes and 8-byte aligned; regions from
// AllocAligned and page-aligned mmaps always are.
func Uint64View(region []byte, n int) []uint64 {
	if n == 0 {
		return nil
	}
	ptr := unsafe.Pointer(&region[0])      //nolint:gosec // typed view over a caller-owned region
	return unsafe.Slice((*uint64)(ptr), n) //nolint:gosec // typed view over a caller-owned region
}

// Aligned8 reports whether the region starts on an 8-byte boundary.
func Aligned8(region []byte) bool {
	if len(region) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&region[0]))&7 == 0 //nolint:gosec // alignment probe only
}
