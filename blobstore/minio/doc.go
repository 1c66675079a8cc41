// Package minio provides a read-only BlobStore backed by the MinIO client.
//
// MinIO is a high-performance, S3-compatible object storage system. The store
// works with any S3-compatible server (Ceph, SeaweedFS, Garage) and needs no
// AWS dependencies.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "artifacts/")
//	res, err := blobstore.Read(ctx, store, "lib/app.jar")
//
// Object names are sanitized with entrypath before they become keys, so an
// entry name like "../../secret" cannot leave the root prefix.
package minio
