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

// fakeMinio implements minioAPI without network access.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr   error
	putKey   string
	putSize  int64
	putOpts  minioLib.PutObjectOptions
	putBytes []byte

	getRC  io.ReadCloser
	getErr error

	statErr error
}

func (f *fakeMinio) BucketExists(context.Context, string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeMinio) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.putKey, f.putSize, f.putOpts, f.putBytes = key, size, opts, data
	return minioLib.UploadInfo{Key: key, Size: size}, nil
}

func (f *fakeMinio) GetObject(context.Context, string, string, minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeMinio) StatObject(context.Context, string, string, minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewWithAPI(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		api        *fakeMinio
		wantErr    bool
		wantCreate bool
	}{
		"bucket exists":       {api: &fakeMinio{bucketExists: true}},
		"bucket is created":   {api: &fakeMinio{}, wantCreate: true},
		"exists check fails":  {api: &fakeMinio{bucketExistsErr: errors.New("boom")}, wantErr: true},
		"bucket create fails": {api: &fakeMinio{makeBucketErr: errors.New("denied")}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			a, err := NewWithAPI(context.Background(), tt.api, "interview-reports")
			if tt.wantErr {
				assert.Nil(t, a)
				require.ErrorContains(t, err, "failed to ensure bucket exists")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "interview-reports", a.bucket)
			if tt.wantCreate {
				assert.Equal(t, "interview-reports", tt.api.madeBucket)
			}
		})
	}
}

func TestArchive_Upload(t *testing.T) {
	t.Parallel()

	api := &fakeMinio{}
	a := &Archive{api: api, bucket: "b"}

	data := []byte("xlsx bytes")
	err := a.Upload(context.Background(), "reports/1.xlsx", bytes.NewReader(data), int64(len(data)), "application/x-test")
	require.NoError(t, err)

	assert.Equal(t, "reports/1.xlsx", api.putKey)
	assert.Equal(t, int64(len(data)), api.putSize)
	assert.Equal(t, "application/x-test", api.putOpts.ContentType)
	assert.Equal(t, data, api.putBytes)

	failing := &Archive{api: &fakeMinio{putErr: errors.New("put-fail")}, bucket: "b"}
	err = failing.Upload(context.Background(), "k", bytes.NewReader(data), int64(len(data)), "x")
	require.ErrorContains(t, err, "failed to upload object")
}

func TestArchive_Download(t *testing.T) {
	t.Parallel()

	a := &Archive{api: &fakeMinio{getRC: io.NopCloser(bytes.NewReader([]byte("abc")))}, bucket: "b"}
	rc, err := a.Download(context.Background(), "k")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	a = &Archive{api: &fakeMinio{getErr: errors.New("get-fail")}, bucket: "b"}
	rc, err = a.Download(context.Background(), "k")
	assert.Nil(t, rc)
	require.ErrorContains(t, err, "failed to get object")
}

func TestArchive_Exists(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		statErr error
		want    bool
		wantErr bool
	}{
		"exists":      {want: true},
		"not found":   {statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}},
		"other error": {statErr: errors.New("stat-fail"), wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			a := &Archive{api: &fakeMinio{statErr: tt.statErr}, bucket: "b"}
			ok, err := a.Exists(context.Background(), "k")
			if tt.wantErr {
				require.ErrorContains(t, err, "failed to stat object")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
		})
	}
}
