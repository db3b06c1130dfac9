package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// absolutize prefixes a relative artwork or stream URL with the scheme and
// host the request arrived on.  Already-absolute URLs and empty strings pass
// through untouched.
func absolutize(c echo.Context, url string) string {
	if url == "" || strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return baseURL(c) + url
}

// baseURL reconstructs scheme://host for the current request.
func baseURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}
