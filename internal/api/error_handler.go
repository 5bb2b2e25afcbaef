package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/brandbook/entries-api/internal/api/handler"
	"github.com/brandbook/entries-api/internal/core/domain"
)

// errorResponse is the envelope for errors that reach the central handler.
type errorResponse struct {
	Error string `json:"error"`
}

// uploadTooLargeResponse matches the image handler's own size rejection.
type uploadTooLargeResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if isOversizedUpload(err, c) {
			_ = c.JSON(http.StatusBadRequest, uploadTooLargeResponse{Message: handler.MsgFileTooLarge})
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

// isOversizedUpload reports a body-limit rejection on the image route.
func isOversizedUpload(err error, c echo.Context) bool {
	var he *echo.HTTPError
	return c.Path() == imageRoute && errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Please authenticate."
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrImageTooLarge):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrStorage):
		log.Error().
			Err(err).
			Str("path", c.Path()).
			Msg("object storage failure")
		return http.StatusInternalServerError, "Could not upload the file."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
