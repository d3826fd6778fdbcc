package blob

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"

	"lastmile/internal/pkg/errs"
)

// GCSBlobStorage implements the BlobStorage port on a Google Cloud Storage
// bucket. Objects are written once and addressed by their public URL; the
// bucket is expected to allow public reads for the stored artifacts.
type GCSBlobStorage struct {
	client *storage.Client
	bucket string
}

// NewGCSBlobStorage creates a blob storage adapter for the given bucket.
// Credentials are resolved from the environment by the storage client.
func NewGCSBlobStorage(ctx context.Context, bucket string) (*GCSBlobStorage, error) {
	if bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	return &GCSBlobStorage{
		client: client,
		bucket: bucket,
	}, nil
}

// Upload decodes the data-URI payload and writes it as one object,
// returning the object's public URL. Decode failures surface as invalid
// value errors before any network call; write failures are wrapped as
// upload errors.
func (s *GCSBlobStorage) Upload(ctx context.Context, objectName, contentType, payload string) (string, error) {
	raw, err := decodeDataURI(payload)
	if err != nil {
		return "", err
	}

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err = w.Write(raw); err != nil {
		_ = w.Close()
		return "", errs.NewUploadFailedError(objectName, err)
	}

	if err = w.Close(); err != nil {
		return "", errs.NewUploadFailedError(objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectName), nil
}

// Close releases the underlying storage client.
func (s *GCSBlobStorage) Close() error {
	return s.client.Close()
}
