package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func Error(c echo.Context, status int, code, message string) error {
	return c.JSON(status, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

// Unavailable reports a failed dependency check while still returning the
// detail so probes and humans can see which dependency is down.
func Unavailable(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusServiceUnavailable, Response{
		Success: false,
		Data:    data,
		Error: &ErrorInfo{
			Code:    "SERVICE_UNAVAILABLE",
			Message: "one or more dependencies are unhealthy",
		},
	})
}

func NotFound(c echo.Context, message string) error {
	return Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

func InternalError(c echo.Context, message string) error {
	return Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}
