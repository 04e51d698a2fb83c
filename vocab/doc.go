// Package vocab maps word strings to dense WordIndex identifiers and back,
// in two interchangeable representations sharing one binary-compatible
// contract.
//
// SortedVocabulary stores only the sorted 64-bit word hashes (8 bytes per
// entry) and answers lookups with interpolation search. ProbingVocabulary
// trades memory for speed: an open-addressing table with load-factor slack
// answers lookups in expected constant time. Both place their state into a
// caller-owned memory region sized by the corresponding Size function and
// never allocate backing storage themselves, which is what makes a region
// inside a memory-mapped model file directly usable.
//
// Construction is single-threaded: repeated Insert calls, then exactly one
// FinishedLoading. After finalization (or LoadedBinary) the structures are
// immutable and Index may be called concurrently without locking.
//
// Both representations key purely by the 64-bit word hash and store no
// original strings for verification. Hash collisions between distinct words
// are an accepted limitation of the 64-bit key space, not something to patch
// with string-equality checks.
package vocab
