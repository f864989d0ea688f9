package cloudinaryclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/media"
)

// Config holds the unsigned-upload settings for a Cloudinary account
type Config struct {
	CloudName    string
	UploadPreset string
	Folder       string
}

// Client uploads files to Cloudinary using an unsigned upload preset
type Client struct {
	cfg    Config
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

// NewClient creates a Cloudinary client. Missing credentials are reported on
// the first upload rather than here so the rest of the app stays usable.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	// Unsigned uploads need neither an API key nor a secret
	cld, err := cloudinary.NewFromParams(cfg.CloudName, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &Client{
		cfg:    cfg,
		cld:    cld,
		logger: logger,
	}, nil
}

// WithBaseURL points the client at a different API host
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.cld.Upload.Config.API.UploadPrefix = strings.TrimRight(baseURL, "/")
	return c
}

func (c *Client) credentialsError() error {
	status := func(v string) string {
		if v == "" {
			return "Missing"
		}
		return "Set"
	}
	return fmt.Errorf("cloudinary credentials not configured (cloud name: %s, upload preset: %s); set CLOUDINARY_CLOUD_NAME and CLOUDINARY_UPLOAD_PRESET",
		status(c.cfg.CloudName), status(c.cfg.UploadPreset))
}

// Upload sends one file to Cloudinary and reports progress as the file body is read
func (c *Client) Upload(ctx context.Context, file media.File, onProgress media.ProgressFunc) (*media.Result, error) {
	if c.cfg.CloudName == "" || c.cfg.UploadPreset == "" {
		err := c.credentialsError()
		c.logger.Error("Cloudinary not configured", zap.Error(err))
		return nil, err
	}

	if err := media.ValidateFile(file, media.DocumentTypes); err != nil {
		return nil, err
	}

	c.logger.Debug("Uploading file to Cloudinary",
		zap.String("file", file.Name),
		zap.String("content_type", file.ContentType),
		zap.Int64("size", file.Size))

	body := media.NewProgressReader(file.Body, file.Size, onProgress)
	resp, err := c.cld.Upload.UnsignedUpload(ctx, body, c.cfg.UploadPreset, uploader.UploadParams{
		Folder:       c.cfg.Folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, uploadError(err)
	}

	if resp.Error.Message != "" {
		c.logger.Warn("Cloudinary rejected upload",
			zap.String("file", file.Name),
			zap.String("message", resp.Error.Message))
		return nil, errors.New(resp.Error.Message)
	}
	if resp.SecureURL == "" {
		c.logger.Error("Upload response has no secure url", zap.String("file", file.Name))
		return nil, errors.New("upload failed: response has no secure url")
	}

	result := &media.Result{
		URL:          resp.SecureURL,
		PublicID:     resp.PublicID,
		Format:       resp.Format,
		ResourceType: resp.ResourceType,
		Bytes:        int64(resp.Bytes),
	}
	if resp.Width > 0 {
		width := resp.Width
		result.Width = &width
	}
	if resp.Height > 0 {
		height := resp.Height
		result.Height = &height
	}
	if !resp.CreatedAt.IsZero() {
		result.CreatedAt = resp.CreatedAt.Format(time.RFC3339)
	}

	return result, nil
}

// uploadError classifies an error returned by the SDK
func uploadError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("network error during upload: %w", err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("failed to parse upload response: %w", err)
	}

	return fmt.Errorf("upload failed: %w", err)
}
