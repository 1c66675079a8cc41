package s3

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/scanio/blobstore"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()

	// Create a unique prefix for this test run
	prefix := fmt.Sprintf("test-scanio-%d/", time.Now().UnixNano())
	store, err := New(ctx, bucket, WithPrefix(prefix))
	require.NoError(t, err)

	client := store.client.(*s3.Client)

	name := "lib/test.blob"
	data := make([]byte, 1024*1024) // 1MB
	_, _ = rand.Read(data)

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(prefix + name),
		Body:   bytes.NewReader(data),
	})
	require.NoError(t, err)
	defer func() {
		_, _ = client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(prefix + name),
		})
	}()

	blobs, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, blobs, name)

	r, err := store.Open(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), r.Size())

	buf := make([]byte, 100)
	n, err := r.ReadAt(ctx, buf, 1024)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[1024:1124], buf)
	require.NoError(t, r.Close())

	res, err := blobstore.Read(ctx, store, name)
	require.NoError(t, err)
	assert.Equal(t, data, res.Bytes())

	fetched, err := store.Fetch(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, data, fetched)

	_, err = store.Open(ctx, "nonexistent")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
