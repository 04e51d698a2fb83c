// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Model files are read with ranged GETs, so a remote model can be queried
// without downloading it whole; pair the store with blobstore.CachingStore
// to keep hot blocks local. Writes stream through multipart uploads with
// CRC32C integrity validation.
//
// Three store variants are provided:
//
//   - Store: standard S3 buckets
//   - ExpressStore: S3 Express One Zone directory buckets, with conditional
//     writes for atomic publishes
//   - DDBCommitStore: S3 plus a DynamoDB commit log giving the CURRENT
//     model pointer compare-and-swap semantics
package s3
