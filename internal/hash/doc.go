// Package hash provides the checksum used for model file integrity.
//
// All section checksums in vocabgo use CRC32-Castagnoli (CRC32C): hardware
// accelerated on x86 (SSE4.2) and ARM, and the industry standard for storage
// formats (iSCSI, RocksDB, LevelDB). The checksum guards against torn or
// truncated model files; it is not the word hash, which lives in the vocab
// package and is part of the binary format contract.
package hash
