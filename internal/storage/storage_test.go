package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vidtube/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutAndDelete(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := NewLocalStore(root, "http://cdn.local/media/")
	require.NoError(t, err)
	ctx := context.Background()

	obj, err := store.Put(ctx, "videos/abc/video.mp4", strings.NewReader("frames"), -1, "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.local/media/videos/abc/video.mp4", obj.URL)
	assert.Equal(t, int64(6), obj.Size)

	data, err := os.ReadFile(filepath.Join(root, "videos", "abc", "video.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "frames", string(data))

	require.NoError(t, store.Delete(ctx, obj.Key))
	_, err = os.Stat(filepath.Join(root, "videos", "abc", "video.mp4"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, obj.Key), "deleting twice is not an error")
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir(), "http://x")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../escape.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)
	assert.Error(t, store.Delete(context.Background(), ""))
}

func TestLocalStore_CancelledContext(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir(), "http://x")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Put(ctx, "a.txt", strings.NewReader("x"), 1, "text/plain")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_SelectsDriver(t *testing.T) {
	t.Parallel()

	local, err := New(context.Background(), &config.Config{StorageDriver: "local", StorageLocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "local", local.Name())

	s3Store, err := New(context.Background(), &config.Config{StorageDriver: "s3", S3Bucket: "videos", AWSRegion: "eu-west-1"})
	require.NoError(t, err)
	assert.Equal(t, "s3", s3Store.Name())

	_, err = New(context.Background(), &config.Config{StorageDriver: "cloudinary"})
	assert.Error(t, err)
}

func TestS3Store_ObjectURL(t *testing.T) {
	t.Parallel()

	aws, err := NewS3Store(S3Config{Bucket: "videos", Region: "eu-west-1"})
	require.NoError(t, err)
	assert.Equal(t, "https://videos.s3.eu-west-1.amazonaws.com/v/1.mp4", aws.objectURL("v/1.mp4"))

	compat, err := NewS3Store(S3Config{Bucket: "videos", Endpoint: "http://localhost:9000", AccessKeyID: "k", SecretAccessKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/videos/v/1.mp4", compat.objectURL("v/1.mp4"))
}
