package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/voltkart/storefront/internal/config"
)

// uploaded images are fitted into 800x600 at reasonable quality
const uploadTransformation = "c_limit,w_800,h_600,q_auto:good"

// Uploader is the media-upload collaborator: bytes in, URL out.
type Uploader interface {
	UploadImage(ctx context.Context, file io.Reader) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
	Ping(ctx context.Context) error
}

type client struct {
	cld    *cld.Cloudinary
	folder string
}

func New(cfg *config.Cloudinary) (Uploader, error) {

	c, err := cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &client{cld: c, folder: cfg.Folder}, nil
}

// UploadImage implements Uploader.
func (c *client) UploadImage(ctx context.Context, file io.Reader) (string, error) {

	result, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         c.folder,
		ResourceType:   "image",
		Transformation: uploadTransformation,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}

	// the SDK reports API-level failures on the result, not as err
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", result.Error.Message)
	}

	if result.SecureURL == "" {
		return "", errors.New("cloudinary upload returned no URL")
	}

	return result.SecureURL, nil
}

// DeleteImage implements Uploader.
func (c *client) DeleteImage(ctx context.Context, publicID string) error {

	result, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}

	if result.Result != "ok" {
		return fmt.Errorf("cloudinary destroy failed: %s", result.Result)
	}

	return nil
}

// Ping implements Uploader.
func (c *client) Ping(ctx context.Context) error {

	result, err := c.cld.Admin.Ping(ctx)
	if err != nil {
		return fmt.Errorf("failed to reach cloudinary: %w", err)
	}

	if result.Status != "ok" {
		return fmt.Errorf("cloudinary ping status: %s", result.Status)
	}

	return nil
}
