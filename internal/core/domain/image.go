package domain

import "errors"

// MaxImageSize is the largest upload accepted by the image endpoint.
const MaxImageSize = 5 << 20

var (
	ErrStorage       = errors.New("object storage error")
	ErrImageTooLarge = errors.New("file is larger than 5 MiB")
)

// UploadedImage describes an object written to the bucket.
type UploadedImage struct {
	FileName     string `json:"fileName"`
	FileLocation string `json:"fileLocation"`
}
