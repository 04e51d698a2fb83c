// Package probing implements an open-addressing hash table placed into a
// caller-owned memory region.
//
// The table never allocates: it is a typed view over a byte region sized by
// Size, which makes it safe to place inside a larger memory-mapped model
// file. Keys are 64-bit word hashes, so no secondary hashing is applied; the
// key itself is the distribution input (identity hashing). A zero key marks
// an empty slot, which means a word whose hash is genuinely zero cannot be
// stored — an accepted consequence of indexing by 64-bit hash alone.
package probing

import (
	"errors"
	"unsafe"
)

// Slot is one table entry: the word hash and its assigned index. The trailing
// pad keeps slots at 16 bytes so the region stays uint64-aligned throughout.
type Slot struct {
	Key   uint64
	Value uint32
	_     uint32
}

// SlotSize is the on-disk and in-memory size of a Slot in bytes.
const SlotSize = 16

var (
	// ErrRegionTooSmall is returned when the supplied region cannot hold the
	// table Size demands.
	ErrRegionTooSmall = errors.New("probing: region smaller than required size")
	// ErrUnaligned is returned when the region does not start on an 8-byte
	// boundary.
	ErrUnaligned = errors.New("probing: region is not 8-byte aligned")
	// ErrFull is returned when an insert cannot find an empty slot.
	ErrFull = errors.New("probing: table is full")
)

// Buckets returns the slot count for the given expected entries and
// multiplier. At least one empty slot is always reserved so that probe
// sequences terminate.
func Buckets(entries int, multiplier float64) uint64 {
	b := uint64(multiplier * float64(entries))
	if min := uint64(entries) + 1; b < min {
		b = min
	}
	return b
}

// Size returns the exact region size in bytes for the given expected entries
// and load-factor multiplier.
func Size(entries int, multiplier float64) int {
	return int(Buckets(entries, multiplier)) * SlotSize
}

// Table is an open-addressing hash table over an external region.
type Table struct {
	slots   []Slot
	buckets uint64
	entries uint64
}

// New binds a table to region, which must be at least Size(entries,
// multiplier) bytes and 8-byte aligned. The region's prior contents are
// preserved; call Clear before the first insert when building fresh.
func New(region []byte, entries int, multiplier float64) (*Table, error) {
	buckets := Buckets(entries, multiplier)
	if uint64(len(region)) < buckets*SlotSize {
		return nil, ErrRegionTooSmall
	}
	if uintptr(unsafe.Pointer(&region[0]))&7 != 0 {
		return nil, ErrUnaligned
	}
	ptr := unsafe.Pointer(&region[0]) //nolint:gosec // typed view over a caller-owned region
	return &Table{
		slots:   unsafe.Slice((*Slot)(ptr), buckets), //nolint:gosec // typed view over a caller-owned region
		buckets: buckets,
	}, nil
}

// Clear zeroes every slot.
func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i] = Slot{}
	}
	t.entries = 0
}

// Insert places (key, value) into the first empty slot along the probe
// sequence starting at key % buckets.
func (t *Table) Insert(key uint64, value uint32) error {
	if t.entries+1 >= t.buckets {
		return ErrFull
	}
	i := key % t.buckets
	for t.slots[i].Key != 0 {
		i++
		if i == t.buckets {
			i = 0
		}
	}
	t.slots[i] = Slot{Key: key, Value: value}
	t.entries++
	return nil
}

// Find probes for key and returns its value. Probing stops at the first
// empty slot, so lookups on a finalized table are bounded.
func (t *Table) Find(key uint64) (uint32, bool) {
	i := key % t.buckets
	for {
		s := t.slots[i]
		if s.Key == key {
			return s.Value, true
		}
		if s.Key == 0 {
			return 0, false
		}
		i++
		if i == t.buckets {
			i = 0
		}
	}
}

// Buckets returns the slot count of the bound table.
func (t *Table) Buckets() uint64 {
	return t.buckets
}
