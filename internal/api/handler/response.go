package handler

import "github.com/labstack/echo/v4"

// errorResponse covers the three failure shapes clients of this API expect:
// {"error": ...}, {"message": ...} and {"status": "error", "message": ...}.
type errorResponse struct {
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, errorResponse{Status: "error", Message: msg})
}
