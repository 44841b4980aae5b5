package sinks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUploader struct {
	uploads []mockUpload
}

type mockUpload struct {
	bucket      string
	key         string
	body        []byte
	contentType string
}

func (m *mockUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	body, _ := io.ReadAll(input.Body)
	upload := mockUpload{
		bucket: *input.Bucket,
		key:    *input.Key,
		body:   body,
	}
	if input.ContentType != nil {
		upload.contentType = *input.ContentType
	}
	m.uploads = append(m.uploads, upload)
	return &manager.UploadOutput{}, nil
}

func TestS3Sink_Name(t *testing.T) {
	tests := []struct {
		name     string
		bucket   string
		prefix   string
		expected string
	}{
		{
			name:     "bucket only",
			bucket:   "my-bucket",
			prefix:   "",
			expected: "s3(my-bucket)",
		},
		{
			name:     "bucket with prefix",
			bucket:   "my-bucket",
			prefix:   "archives/nightly",
			expected: "s3(my-bucket/archives/nightly)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := NewS3SinkWithUploader(tt.bucket, tt.prefix, &mockUploader{})
			assert.Equal(t, tt.expected, sink.Name())
		})
	}
}

func TestS3Sink_Kind(t *testing.T) {
	sink := NewS3SinkWithUploader("bucket", "", &mockUploader{})
	assert.Equal(t, "s3", sink.Kind())
}

func TestS3Sink_Write(t *testing.T) {
	tests := []struct {
		name           string
		bucket         string
		prefix         string
		path           string
		data           string
		expectedKey    string
		expectedBucket string
	}{
		{
			name:           "write without prefix",
			bucket:         "my-bucket",
			prefix:         "",
			path:           "etc/hosts",
			data:           "member payload",
			expectedKey:    "etc/hosts",
			expectedBucket: "my-bucket",
		},
		{
			name:           "write with prefix",
			bucket:         "my-bucket",
			prefix:         "restore/2026-10-19",
			path:           "etc/hosts",
			data:           "member payload",
			expectedKey:    "restore/2026-10-19/etc/hosts",
			expectedBucket: "my-bucket",
		},
		{
			name:           "write nested path with prefix",
			bucket:         "my-bucket",
			prefix:         "data",
			path:           "var/lib/app/state.bin",
			data:           "\x00nested\x00",
			expectedKey:    "data/var/lib/app/state.bin",
			expectedBucket: "my-bucket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &mockUploader{}
			sink := NewS3SinkWithUploader(tt.bucket, tt.prefix, uploader)

			err := sink.Write(t.Context(), tt.path, bytes.NewBufferString(tt.data))
			require.NoError(t, err)

			require.Len(t, uploader.uploads, 1)
			assert.Equal(t, tt.expectedBucket, uploader.uploads[0].bucket)
			assert.Equal(t, tt.expectedKey, uploader.uploads[0].key)
			assert.Equal(t, tt.data, string(uploader.uploads[0].body))
		})
	}
}

func TestS3Sink_Write_ContentType(t *testing.T) {
	tests := []struct {
		name                string
		path                string
		expectedContentType string
	}{
		{
			name:                "json file",
			path:                "data.json",
			expectedContentType: "application/json",
		},
		{
			name:                "yaml file",
			path:                "config.yaml",
			expectedContentType: "application/x-yaml",
		},
		{
			name:                "yml file",
			path:                "config.yml",
			expectedContentType: "application/x-yaml",
		},
		{
			name:                "txt file",
			path:                "readme.txt",
			expectedContentType: "text/plain",
		},
		{
			name:                "oar archive",
			path:                "backup.oar",
			expectedContentType: "application/octet-stream",
		},
		{
			name:                "unknown extension",
			path:                "data.bin",
			expectedContentType: "",
		},
		{
			name:                "no extension",
			path:                "data",
			expectedContentType: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &mockUploader{}
			sink := NewS3SinkWithUploader("bucket", "", uploader)

			err := sink.Write(t.Context(), tt.path, bytes.NewBufferString("content"))
			require.NoError(t, err)

			require.Len(t, uploader.uploads, 1)
			assert.Equal(t, tt.expectedContentType, uploader.uploads[0].contentType)
		})
	}
}

func TestNewS3Sink_RequiresBucket(t *testing.T) {
	_, err := NewS3Sink(t.Context(), S3Config{})
	assert.ErrorContains(t, err, "bucket is required")
}

type failingUploader struct{}

func (failingUploader) Upload(context.Context, *s3.PutObjectInput, ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	return nil, errors.New("access denied")
}

func TestS3Sink_WriteError(t *testing.T) {
	sink := NewS3SinkWithUploader("bucket", "extracted", failingUploader{})
	err := sink.Write(t.Context(), "a.txt", bytes.NewBufferString("x"))
	assert.ErrorContains(t, err, "s3://bucket/extracted/a.txt")
	assert.ErrorContains(t, err, "access denied")
}
