// pkg/blob/cloudinary.go
package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Config holds Cloudinary credentials (from env or config).
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Store is the blob storage used for item images. Images are keyed by a
// folder/public-id path embedded in their delivery URL.
type Store interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (url string, err error)
	DeleteByURL(ctx context.Context, url string) error
}

type storeImpl struct {
	cloudName string
	uploader  *uploader.API
}

// NewStore builds a Store from Cloudinary cloud name, API key, and secret.
func NewStore(cfg Config) (Store, error) {
	c, err := config.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	up, err := uploader.NewWithConfiguration(c)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary uploader: %w", err)
	}
	return &storeImpl{cloudName: cfg.CloudName, uploader: up}, nil
}

// UploadImage uploads an image and returns its delivery URL.
func (s *storeImpl) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	result, err := s.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return result.SecureURL, nil
}

// DeleteByURL removes the asset behind a delivery URL. The public id is the
// URL path after the upload segment, minus any version prefix and extension.
func (s *storeImpl) DeleteByURL(ctx context.Context, url string) error {
	publicID := PublicIDFromURL(url)
	if publicID == "" {
		return fmt.Errorf("could not derive public id from url %q", url)
	}
	_, err := s.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	return nil
}

// PublicIDFromURL extracts the Cloudinary public id from a delivery URL.
// Returns "" when the URL does not look like an upload URL.
func PublicIDFromURL(url string) string {
	_, after, found := strings.Cut(url, "/upload/")
	if !found {
		return ""
	}
	// Strip a version segment like v1712345678/.
	if strings.HasPrefix(after, "v") {
		if idx := strings.Index(after, "/"); idx > 1 {
			digits := after[1:idx]
			if strings.Trim(digits, "0123456789") == "" {
				after = after[idx+1:]
			}
		}
	}
	// Strip the file extension.
	if idx := strings.LastIndex(after, "."); idx > strings.LastIndex(after, "/") {
		after = after[:idx]
	}
	return after
}
