// Package storage provides an abstraction layer for S3-compatible object storage backends.
//
// It wraps the MinIO Go client (minio.Core) to expose explicit, page-by-page bucket listing
// with continuation tokens. Both AWS S3 and Ceph RADOS gateways are supported; requests use
// path-style bucket addressing and static V4 credentials.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Timeouts
//
// Config.TimeoutSeconds bounds connection setup, TLS handshake and the wait for the first
// response byte of every request. Config.MaxRetries defaults to a single attempt, so an
// exceeded timeout surfaces as an error instead of being retried.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.BackendA)
//	page, err := client.ListPage(ctx, "photos", storage.ListPageOptions{MaxKeys: 1000})
package storage
