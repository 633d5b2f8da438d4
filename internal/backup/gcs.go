package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/tinoosan/finboard/internal/errs"
)

// uploadTimeout bounds a single object write.
const uploadTimeout = 2 * time.Minute

// GCSSink keeps backups as objects under a bucket prefix. It uses
// Application Default Credentials.
type GCSSink struct {
	client *storage.Client
	bucket string
	prefix string
}

// ParseGCSURI splits "gs://bucket/prefix" into its parts. The prefix may be
// empty.
func ParseGCSURI(uri string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("%w: not a gs:// uri: %s", errs.ErrInvalid, uri)
	}
	rest := strings.TrimPrefix(uri, "gs://")
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%w: gcs uri has no bucket: %s", errs.ErrInvalid, uri)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// NewGCSSink opens a storage client for uri.
func NewGCSSink(ctx context.Context, uri string) (*GCSSink, error) {
	bucket, prefix, err := ParseGCSURI(uri)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSSink{client: client, bucket: bucket, prefix: prefix}, nil
}

// Close releases the storage client.
func (s *GCSSink) Close() error { return s.client.Close() }

func (s *GCSSink) object(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *GCSSink) Write(ctx context.Context, name string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	obj := s.object(name)
	w := s.client.Bucket(s.bucket).Object(obj).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload backup: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}
	return "gs://" + s.bucket + "/" + obj, nil
}

func (s *GCSSink) Read(ctx context.Context, name string) ([]byte, error) {
	obj := s.object(name)
	r, err := s.client.Bucket(s.bucket).Object(obj).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: backup gs://%s/%s", errs.ErrNotFound, s.bucket, obj)
	}
	if err != nil {
		return nil, fmt.Errorf("open gcs object: %w", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read gcs object: %w", err)
	}
	return data, nil
}
