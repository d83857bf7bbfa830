// Package s3 provides an S3-backed blobstore.BlobStore for grid
// snapshots, plus a DynamoDB-backed LatestPointer that gives the
// "which snapshot is current" question the atomic compare-and-swap
// semantics S3 itself lacks.
package s3
