// Package sorteduniform implements bounded interpolation search over sorted
// arrays of near-uniformly distributed 64-bit keys.
//
// The keys here are word hashes, so their distribution over the uint64 space
// is close to uniform. Instead of always bisecting at the midpoint, the
// search estimates the probe position from the key's offset within the
// current bracket, which cuts the expected probe count well below classic
// binary search on large arrays. The precondition is the distribution: with
// skewed keys this degrades toward linear scanning, so any caller with a
// different key source must use standard binary search instead.
package sorteduniform

import (
	"math"
	"math/bits"
)

// pivot estimates the probe offset for a key at distance off inside a value
// bracket of width rng, mapped onto width array slots. The multiply needs
// 128 bits; rng+1 would wrap at MaxUint64, where dividing by 2^64 is just
// taking the high word.
func pivot(off, rng, width uint64) uint64 {
	hi, lo := bits.Mul64(off, width)
	if rng == math.MaxUint64 {
		return hi
	}
	q, _ := bits.Div64(hi, lo, rng+1)
	return q
}

// Find locates key in the sorted slice keys and returns its offset.
// The bracket starts at the virtual bounds (-1, 0) and (len, MaxUint64), so
// keys containing 0 or MaxUint64 are still found.
func Find(keys []uint64, key uint64) (int, bool) {
	below := -1
	belowValue := uint64(0)
	above := len(keys)
	aboveValue := uint64(math.MaxUint64)

	for above-below > 1 {
		probe := below + 1 + int(pivot(key-belowValue, aboveValue-belowValue, uint64(above-below-1)))
		value := keys[probe]
		switch {
		case value > key:
			above = probe
			aboveValue = value
		case value < key:
			below = probe
			belowValue = value
		default:
			return probe, true
		}
	}
	return 0, false
}
