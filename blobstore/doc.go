// Package blobstore provides read-only access to the blobs a scan consumes:
// archives, class files and resources on local disk or in object storage.
//
// BlobStore opens blobs by name and lists them by prefix. Implementations
// must be safe for concurrent use and must route every name through
// entrypath before turning it into a path or key.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem, memory-mapped, unmapped early on Close
//   - MemoryStore: In-memory blobs for tests, with optional lying sizes
//   - minio.Store: MinIO and S3-compatible storage
//   - s3.Store: Amazon S3 with range reads and concurrent downloads
//
// # Reading
//
// Read drains a whole blob, treating Blob.Size as an untrusted hint:
//
//	res, err := blobstore.Read(ctx, store, "lib/app.jar", drain.WithController(rc))
//
// ReadAll does the same for many blobs with bounded parallelism.
package blobstore
