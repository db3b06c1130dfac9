package handler

import "github.com/labstack/echo/v4"

// The modern API wraps every response in a typed envelope so clients can
// branch on one field instead of on status codes alone.
type envelope struct {
	Type          string   `json:"type"`
	Result        any      `json:"result,omitempty"`
	ErrorMessages []string `json:"errorMessages,omitempty"`
}

func success(c echo.Context, status int, result any) error {
	return c.JSON(status, envelope{Type: "success", Result: result})
}

func failure(c echo.Context, status int, messages ...string) error {
	return c.JSON(status, envelope{Type: "error", ErrorMessages: messages})
}
