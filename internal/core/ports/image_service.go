package ports

import (
	"context"
	"io"

	"github.com/brandbook/entries-api/internal/core/domain"
)

// ImageUpload is a file received by the upload endpoint.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ImageService interface {
	Upload(ctx context.Context, in ImageUpload) (*domain.UploadedImage, error)
}

// ObjectStorage writes objects to a bucket and knows their public address.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error
	PublicURL(key string) string
}
