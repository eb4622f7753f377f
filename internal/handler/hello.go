package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Fixed response bodies.  Both strings are immutable and safe to share
// across any number of concurrent exchanges.
const (
	helloBody    = "Hello world"
	notFoundBody = "Not Found"
)

// Hello serves GET /hello.  It returns the fixed greeting as plain text
// with an HTTP 200 status code; String writes text/plain with a UTF-8
// charset, which is the canonical content type for this service.
func Hello(c echo.Context) error {
	return c.String(http.StatusOK, helloBody)
}

// NotFound serves every request that matches no registered route.  The
// body is generic on purpose: no path echo, no internal detail.
func NotFound(c echo.Context) error {
	return c.String(http.StatusNotFound, notFoundBody)
}
