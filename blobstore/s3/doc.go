// Package s3 provides a blobstore.Store backed by Amazon S3, for teams
// that keep trained models in object storage instead of on the training
// host. An optional DynamoDB commit store publishes a "latest model"
// pointer atomically after each save.
package s3
