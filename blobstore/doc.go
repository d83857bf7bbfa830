// Package blobstore abstracts where grid snapshots live.
//
// The BlobStore interface covers the small surface snapshots need:
// sequential reads, streamed atomic writes, delete and prefix listing.
// LocalStore and MemoryStore live here; S3, S3-compatible (MinIO) and
// DynamoDB-assisted backends live in subpackages so their SDKs stay out
// of the dependency graph of users who only persist to disk.
package blobstore
