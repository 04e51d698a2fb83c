// Package blobstore provides storage abstraction for immutable model files.
//
// BlobStore is the interface for reading and writing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap support for zero-copy loads
//   - MemoryStore: In-memory store for tests
//   - CachingStore: Block-level read cache in front of any store
//   - s3.Store: Amazon S3 with range reads and streaming uploads
//   - minio.Store: MinIO and other S3-compatible endpoints
//
// Model files are written once and never modified, so stores may cache
// aggressively and never need invalidation beyond Delete and Put.
//
// For cloud backends, implement ReadRange for efficient partial reads; local
// stores should additionally implement Mappable so readers can bind
// vocabulary structures directly onto the file pages.
package blobstore
