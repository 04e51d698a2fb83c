// Package mmap provides read-only memory mapping of model files.
//
// Mapping a pre-built binary model lets any number of worker processes share
// one copy of the physical pages and start answering lookups without parsing
// or copying. The vocabulary structures bind typed views directly into the
// mapped bytes, so a mapping must outlive every vocabulary placed on it.
package mmap
