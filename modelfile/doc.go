// Package modelfile defines the binary container for a built vocabulary: a
// fixed little-endian header, the raw vocabulary region, and the NUL-framed
// words section, optionally block-compressed.
//
// The header is 96 bytes, so the vocabulary region always starts 8-byte
// aligned. A reader that memory-maps the file can bind the vocabulary
// structures directly onto the mapped region without copying; only the words
// section is ever decompressed into fresh memory.
package modelfile
