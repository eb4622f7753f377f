package router // package router defines how HTTP routes are registered for the service

import (
	"net/http"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/hello-http/internal/handler" // import the handlers that produce responses
)

// RegisterRoutes registers all routes on the provided Echo instance.
// The service exposes exactly one route: GET /hello.  Every other
// path falls through to the NotFound handler, and every error that
// reaches the framework is rendered by errorHandler so that response
// bodies stay generic.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/hello" to the Hello handler.  The
	// query string does not participate in matching, so /hello?x=1
	// resolves to the same handler.
	e.GET("/hello", handler.Hello)

	// Any path with no registered route gets the plain-text 404 body
	// instead of echo's default JSON error document.
	e.RouteNotFound("/*", handler.NotFound)

	e.HTTPErrorHandler = errorHandler
}

// errorHandler renders every error that escapes a handler.  A method
// mismatch on a known path (e.g. POST /hello) surfaces from the router
// as 405; the service folds it into 404 so that the only visible miss
// class is "not found".  Anything else gets the bare status text --
// internal details never reach a response body.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}

	switch code {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		err = handler.NotFound(c)
	default:
		err = c.String(code, http.StatusText(code))
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
