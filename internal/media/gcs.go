package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// ErrBucketRequired indicates the GCS uploader was built without a bucket.
var ErrBucketRequired = errors.New("media: gcs bucket is required")

const defaultUploadTimeout = 2 * time.Minute

// GCSConfig selects the bucket and public URL layout.
type GCSConfig struct {
	Bucket    string
	Prefix    string
	CDNDomain string
	Timeout   time.Duration
}

// GCSUploader writes images to a Google Cloud Storage bucket.
type GCSUploader struct {
	client *storage.Client
	cfg    GCSConfig
	logger interfaces.Logger
	newID  func() string
}

// GCSOption customises the uploader.
type GCSOption func(*GCSUploader)

// WithGCSLogger overrides the uploader logger.
func WithGCSLogger(logger interfaces.Logger) GCSOption {
	return func(u *GCSUploader) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewGCSUploader dials a storage client with the given client options.
func NewGCSUploader(ctx context.Context, cfg GCSConfig, clientOpts []option.ClientOption, opts ...GCSOption) (*GCSUploader, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrBucketRequired
	}
	clientOpts = append(clientOpts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("media: create storage client: %w", err)
	}
	return NewGCSUploaderWithClient(client, cfg, opts...)
}

// NewGCSUploaderWithClient wraps an existing storage client.
func NewGCSUploaderWithClient(client *storage.Client, cfg GCSConfig, opts ...GCSOption) (*GCSUploader, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrBucketRequired
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultUploadTimeout
	}
	u := &GCSUploader{
		client: client,
		cfg:    cfg,
		logger: logging.NoOp(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// Upload streams the object into the bucket and returns its public URL.
func (u *GCSUploader) Upload(ctx context.Context, object interfaces.UploadObject) (string, error) {
	if u == nil || u.client == nil {
		return "", ErrUploaderUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
	defer cancel()

	key := ObjectKey(u.cfg.Prefix, u.newID(), object.Name)
	w := u.client.Bucket(u.cfg.Bucket).Object(key).NewWriter(ctx)
	if object.ContentType != "" {
		w.ContentType = object.ContentType
	}
	if _, err := io.Copy(w, bytes.NewReader(object.Data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("media: write gcs object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("media: close gcs writer %q: %w", key, err)
	}

	u.logger.Info("media.uploaded", "bucket", u.cfg.Bucket, "key", key, "size", len(object.Data))
	return PublicURL(u.cfg, key), nil
}

// Close releases the underlying client.
func (u *GCSUploader) Close() error {
	if u == nil || u.client == nil {
		return nil
	}
	return u.client.Close()
}

// PublicURL prefers the CDN domain over the storage.googleapis.com host.
func PublicURL(cfg GCSConfig, key string) string {
	if domain := strings.Trim(strings.TrimSpace(cfg.CDNDomain), "/"); domain != "" {
		domain = strings.TrimPrefix(strings.TrimPrefix(domain, "https://"), "http://")
		return fmt.Sprintf("https://%s/%s", domain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", cfg.Bucket, key)
}
