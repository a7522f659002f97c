package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioAttachments implements Attachments against MinIO or any
// S3-compatible endpoint.
type MinioAttachments struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioAttachments connects to the object store and ensures the
// bucket exists.
func NewMinioAttachments(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioAttachments, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &MinioAttachments{
		client:  client,
		bucket:  bucket,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket),
	}, nil
}

// Upload stores the payload under a fresh object key. The object key is
// the remote identifier recorded on the media row.
func (m *MinioAttachments) Upload(ctx context.Context, filename string, r io.Reader, size int64) (Attachment, error) {
	contentType, body, err := sniffContentType(r)
	if err != nil {
		return Attachment{}, fmt.Errorf("sniff content type: %w", err)
	}

	key := uuid.New().String() + filepath.Ext(filename)
	if _, err := m.client.PutObject(ctx, m.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return Attachment{}, fmt.Errorf("put object: %w", err)
	}

	return Attachment{
		URL:      m.baseURL + "/" + key,
		RemoteID: key,
		Kind:     KindFromContentType(contentType),
	}, nil
}

// Delete removes the remote asset by its object key.
func (m *MinioAttachments) Delete(ctx context.Context, remoteID, kind string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, remoteID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
