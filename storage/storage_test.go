package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutAndURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/files/", nil)
	require.NoError(t, err)

	ctx := context.Background()
	body := "%PDF-1.4 test"

	err = store.Put(ctx, "cv/abc.pdf", strings.NewReader(body), int64(len(body)), "application/pdf")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "cv", "abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, body, string(content))

	url, err := store.URL(ctx, "cv/abc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/files/cv/abc.pdf", url)
}

func TestLocalStore_Overwrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files", nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "cv.pdf", strings.NewReader("one"), 3, "application/pdf"))
	require.NoError(t, store.Put(ctx, "cv.pdf", strings.NewReader("second"), 6, "application/pdf"))

	content, err := os.ReadFile(filepath.Join(store.Dir(), "cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestLocalStore_RejectsBadKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files", nil)
	require.NoError(t, err)

	ctx := context.Background()
	for _, key := range []string{"", "../escape.pdf", "cv/../../escape.pdf", "/abs.pdf", "cv//double.pdf"} {
		t.Run(key, func(t *testing.T) {
			err := store.Put(ctx, key, strings.NewReader("x"), 1, "application/pdf")
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestLocalStore_ShortWrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/files", nil)
	require.NoError(t, err)

	err = store.Put(context.Background(), "cv.pdf", strings.NewReader("abc"), 10, "application/pdf")
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(store.Dir(), "cv.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewS3Store_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewS3Store(ctx, S3Config{AccessKey: "a", SecretKey: "b"}, nil)
	assert.ErrorContains(t, err, "bucket is required")

	_, err = NewS3Store(ctx, S3Config{Bucket: "cv"}, nil)
	assert.ErrorContains(t, err, "access key")

	_, err = NewS3Store(ctx, S3Config{Bucket: "cv", AccessKey: "a", SecretKey: "b", Endpoint: "minio:9000"}, nil)
	assert.ErrorContains(t, err, "invalid storage endpoint")
}

func TestS3Store_PresignedURL(t *testing.T) {
	store, err := NewS3Store(context.Background(), S3Config{
		Endpoint:     "http://localhost:9000",
		Bucket:       "portfolio",
		AccessKey:    "minio",
		SecretKey:    "minio123",
		UsePathStyle: true,
	}, nil)
	require.NoError(t, err)

	url, err := store.URL(context.Background(), "cv/abc.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/portfolio/cv/abc.pdf?"), url)
	assert.Contains(t, url, "X-Amz-Signature=")

	_, err = store.URL(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
