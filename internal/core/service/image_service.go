package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/brandbook/entries-api/internal/core/domain"
	"github.com/brandbook/entries-api/internal/core/ports"
)

// ImageService forwards uploaded images to object storage.
type ImageService struct {
	storage ports.ObjectStorage
	metrics ports.Metrics
	log     zerolog.Logger
}

func NewImageService(storage ports.ObjectStorage, log zerolog.Logger) *ImageService {
	return &ImageService{storage: storage, metrics: nopMetrics{}, log: log}
}

// WithMetrics sets the outcome recorder.
func (s *ImageService) WithMetrics(m ports.Metrics) *ImageService {
	s.metrics = orNop(m)
	return s
}

// Upload writes the whole file under its original base name. An object with
// the same name is overwritten.
func (s *ImageService) Upload(ctx context.Context, in ports.ImageUpload) (*domain.UploadedImage, error) {
	key := objectKey(in.FileName)
	if key == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Size > domain.MaxImageSize {
		return nil, domain.ErrImageTooLarge
	}

	// buffered so the storage client can sign and retry the payload
	buf, err := io.ReadAll(io.LimitReader(in.Body, domain.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("upload image: read body: %w", err)
	}
	if len(buf) > domain.MaxImageSize {
		return nil, domain.ErrImageTooLarge
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.Put(ctx, key, bytes.NewReader(buf), int64(len(buf)), contentType); err != nil {
		s.metrics.ImageUpload("error", 0)
		s.log.Error().Err(err).Str("key", key).Msg("image upload failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	s.metrics.ImageUpload("success", len(buf))
	s.log.Info().Str("key", key).Int("bytes", len(buf)).Msg("image uploaded")

	return &domain.UploadedImage{
		FileName:     key,
		FileLocation: s.storage.PublicURL(key),
	}, nil
}

// objectKey strips any directory part a client may have sent.
func objectKey(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
