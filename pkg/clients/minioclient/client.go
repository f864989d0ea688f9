package minioclient

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/media"
)

// Config holds the connection settings for an S3-compatible bucket
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	Folder        string
	PublicBaseURL string
}

// objectPutter is the subset of *minio.Client used for uploads
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Client stores uploads in a MinIO or other S3-compatible bucket
type Client struct {
	cfg    Config
	putter objectPutter
	logger *zap.Logger
}

type minioPutter struct {
	client *minio.Client
}

func (m minioPutter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return m.client.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

// NewClient connects to the object store and ensures the bucket exists
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		logger.Info("Creating media bucket", zap.String("bucket", cfg.Bucket))
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return newClient(cfg, minioPutter{client: mc}, logger), nil
}

func newClient(cfg Config, putter objectPutter, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, putter: putter, logger: logger}
}

// progressSink counts the bytes minio reports through PutObjectOptions.Progress
type progressSink struct {
	progress *media.ProgressReader
}

func (s progressSink) Read(b []byte) (int, error) {
	s.progress.Add(int64(len(b)))
	return len(b), nil
}

// Upload stores one file under <folder>/<uuid>-<name>
func (c *Client) Upload(ctx context.Context, file media.File, onProgress media.ProgressFunc) (*media.Result, error) {
	if err := media.ValidateFile(file, media.DocumentTypes); err != nil {
		return nil, err
	}

	key := objectKey(c.cfg.Folder, file.Name)
	opts := minio.PutObjectOptions{ContentType: file.ContentType}
	if onProgress != nil {
		opts.Progress = progressSink{progress: media.NewProgressReader(nil, file.Size, onProgress)}
	}

	c.logger.Debug("Uploading file to object store",
		zap.String("bucket", c.cfg.Bucket),
		zap.String("key", key),
		zap.Int64("size", file.Size))

	info, err := c.putter.PutObject(ctx, c.cfg.Bucket, key, file.Body, file.Size, opts)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	uploadedAt := info.LastModified
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}

	return &media.Result{
		URL:          c.objectURL(key),
		PublicID:     key,
		Format:       strings.TrimPrefix(path.Ext(file.Name), "."),
		ResourceType: resourceType(file.ContentType),
		Bytes:        info.Size,
		CreatedAt:    uploadedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (c *Client) objectURL(key string) string {
	base := strings.TrimRight(c.cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if c.cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, c.cfg.Endpoint)
	}
	return fmt.Sprintf("%s/%s/%s", base, c.cfg.Bucket, key)
}

func objectKey(folder, name string) string {
	clean := strings.ReplaceAll(path.Base(name), " ", "_")
	key := fmt.Sprintf("%s-%s", uuid.New().String(), clean)
	if folder == "" {
		return key
	}
	return path.Join(folder, key)
}

func resourceType(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return "image"
	}
	return "raw"
}
