package publish

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Minio publishes to a MinIO or other S3-compatible server.
type Minio struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinio creates a Minio publisher from static credentials.
func NewMinio(opts Options) (*Minio, error) {
	if opts.Endpoint == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("publish: minio needs endpoint and bucket")
	}
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("publish: minio client: %w", err)
	}
	return NewMinioWithClient(client, opts.Bucket, opts.Prefix), nil
}

// NewMinioWithClient wraps an existing client.
func NewMinioWithClient(client *minio.Client, bucket, prefix string) *Minio {
	return &Minio{client: client, bucket: bucket, prefix: prefix}
}

func (m *Minio) key(name string) string {
	return path.Join(m.prefix, name)
}

// Put implements Publisher.
func (m *Minio) Put(ctx context.Context, name string, data []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	_, err := m.client.PutObject(ctx, m.bucket, m.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(name),
	})
	if err != nil {
		return fmt.Errorf("publish %s to minio: %w", name, err)
	}
	return nil
}
