// Package blobstore abstracts where model files live. The persistence
// layer addresses model snapshots and their backups by name through the
// Store interface; implementations back that by the local file system, by
// memory (tests), or by S3-compatible object storage (see the s3 and minio
// subpackages).
package blobstore
