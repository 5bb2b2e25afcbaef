package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brandbook/entries-api/internal/core/domain"
	"github.com/brandbook/entries-api/internal/core/ports"
)

const (
	// ImageFormField is the multipart field carrying the uploaded file.
	ImageFormField = "image"
	// MsgFileTooLarge answers uploads over domain.MaxImageSize.
	MsgFileTooLarge = "File size cannot be larger than 5MB!"
)

type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// Upload handles POST /image. Storage failures are returned to the central
// error handler.
//
// @Summary      Upload an image
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Image file, at most 5 MiB"
// @Success      200    {object}  domain.UploadedImage
// @Failure      400    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /image [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile(ImageFormField)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "Please upload a file!"})
	}
	if fh.Size > domain.MaxImageSize {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: MsgFileTooLarge})
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := h.service.Upload(c.Request().Context(), ports.ImageUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	switch {
	case errors.Is(err, domain.ErrImageTooLarge):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: MsgFileTooLarge})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "Please upload a file!"})
	case err != nil:
		return err
	}

	return c.JSON(http.StatusOK, img)
}
