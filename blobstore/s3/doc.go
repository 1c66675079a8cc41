// Package s3 provides a read-only S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("artifacts/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	res, err := blobstore.Read(ctx, store, "lib/app.jar")
//
// # Features
//
//   - Range reads for partial fetches
//   - Concurrent whole-object downloads via Fetch
//   - Automatic pagination for listing
//   - Object names sanitized against traversal before use as keys
package s3
