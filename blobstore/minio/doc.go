// Package minio provides a blobstore.BlobStore backed by MinIO or any
// S3-compatible object store, for deployments that keep snapshots off
// AWS.
package minio
