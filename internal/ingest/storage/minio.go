package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/autopeer-io/vfacts/internal/ingest/core"
	"github.com/autopeer-io/vfacts/pkg/log"
	"github.com/autopeer-io/vfacts/pkg/options"
	"github.com/autopeer-io/vfacts/pkg/vehicle"
)

var _ core.Archive = (*MinIO)(nil)

// MinIO archives raw payloads to an S3 compatible bucket.
type MinIO struct {
	client     *minio.Client
	bucketName string
	region     string
}

// NewMinIO creates the archive. It does not contact the server.
func NewMinIO(opts *options.S3Options) (*MinIO, error) {
	minioOpts := &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	}
	if opts.InsecureSkipVerify {
		transport, err := minio.DefaultTransport(opts.UseSSL)
		if err != nil {
			return nil, fmt.Errorf("failed to create minio transport: %w", err)
		}
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		minioOpts.Transport = transport
	}

	client, err := minio.New(opts.Endpoint, minioOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIO{
		client:     client,
		bucketName: opts.BucketName,
		region:     opts.Region,
	}, nil
}

// ObjectKey returns where a payload received at receivedAt is stored:
// raw/{vehicleID}/{category}/{unixnano}.json
func ObjectKey(vehicleID string, category vehicle.Category, receivedAt time.Time) string {
	return fmt.Sprintf("raw/%s/%s/%d.json", vehicleID, category, receivedAt.UnixNano())
}

func (m *MinIO) Put(ctx context.Context, vehicleID string, category vehicle.Category, receivedAt time.Time, payload []byte) (string, error) {
	key := ObjectKey(vehicleID, category, receivedAt)
	_, err := m.client.PutObject(ctx, m.bucketName, key, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
		UserMetadata: map[string]string{
			"vehicle-id": vehicleID,
			"category":   string(category),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return key, nil
}

func (m *MinIO) CheckBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		log.Info("Bucket does not exist, creating...", "bucket", m.bucketName)
		if err := m.client.MakeBucket(ctx, m.bucketName, minio.MakeBucketOptions{Region: m.region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Get reads an archived payload back.
func (m *MinIO) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return buf.Bytes(), nil
}
