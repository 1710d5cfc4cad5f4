package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjects implements objectAPI for testing without network.
type fakeObjects struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	putErr   error
	putName  string
	putSize  int64
	putType  string
	putBytes []byte

	removeErr  error
	removeName string
}

func (f *fakeObjects) BucketExists(context.Context, string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeObjects) MakeBucket(context.Context, string, minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}

func (f *fakeObjects) PutObject(_ context.Context, _ string, name string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putName, f.putSize, f.putType = name, size, opts.ContentType
	f.putBytes, _ = io.ReadAll(r)
	return minioLib.UploadInfo{Key: name, Size: size}, f.putErr
}

func (f *fakeObjects) RemoveObject(_ context.Context, _ string, name string, _ minioLib.RemoveObjectOptions) error {
	f.removeName = name
	return f.removeErr
}

func TestNewClient(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name       string
		api        *fakeObjects
		bucket     string
		wantErr    string
		wantCreate bool
	}{
		{name: "bucket exists", api: &fakeObjects{bucketExists: true}, bucket: "b"},
		{name: "bucket created", api: &fakeObjects{}, bucket: "b", wantCreate: true},
		{
			name:       "bucket created concurrently",
			api:        &fakeObjects{makeBucketErr: minioLib.ErrorResponse{Code: "BucketAlreadyOwnedByYou"}},
			bucket:     "b",
			wantCreate: true,
		},
		{name: "exists check fails", api: &fakeObjects{bucketExistsErr: errors.New("boom")}, bucket: "b", wantErr: "failed to ensure bucket exists"},
		{name: "create fails", api: &fakeObjects{makeBucketErr: errors.New("fail")}, bucket: "b", wantErr: "failed to create bucket", wantCreate: true},
		{name: "empty bucket", api: &fakeObjects{}, bucket: "", wantErr: "bucket name is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := newClient(ctx, tt.api, tt.bucket, "/staging/")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, c)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "staging", c.prefix)
			}
			assert.Equal(t, tt.wantCreate, tt.api.madeBucket)
		})
	}
}

func TestClient_Upload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("prefixes key and forwards size", func(t *testing.T) {
		t.Parallel()
		api := &fakeObjects{}
		c := &Client{api: api, bucket: "b", prefix: "staging"}

		err := c.Upload(ctx, "u1/abc", bytes.NewReader([]byte("data")), 4)
		require.NoError(t, err)
		assert.Equal(t, "staging/u1/abc", api.putName)
		assert.Equal(t, int64(4), api.putSize)
		assert.Equal(t, stagedContentType, api.putType)
		assert.Equal(t, []byte("data"), api.putBytes)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		c := &Client{api: &fakeObjects{putErr: errors.New("put-fail")}, bucket: "b"}
		err := c.Upload(ctx, "k", bytes.NewReader([]byte("data")), 4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "success"},
		{name: "already gone", err: minioLib.ErrorResponse{Code: "NoSuchKey"}},
		{name: "error", err: errors.New("remove-fail"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := &fakeObjects{removeErr: tt.err}
			c := &Client{api: api, bucket: "b", prefix: "staging"}
			err := c.Delete(ctx, "k")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to delete object")
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, "staging/k", api.removeName)
		})
	}
}
