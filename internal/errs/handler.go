package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler returns the echo.HTTPErrorHandler for the server. *HTTPError is
// rendered as is, echo's own errors keep their status, and anything else
// becomes a logged 500.
func Handler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *HTTPError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
		case errors.As(err, &echoErr):
			httpErr = &HTTPError{
				Code:    codeFor(echoErr.Code),
				Message: fmt.Sprint(echoErr.Message),
				Status:  echoErr.Code,
			}
			if echoErr.Code == http.StatusNotFound {
				httpErr.Message = "Route not found"
			}
		default:
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
			httpErr = NewInternalServerError()
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(httpErr.Status)
		} else {
			werr = c.JSON(httpErr.Status, httpErr)
		}
		if werr != nil {
			log.Error().Err(werr).Msg("write error response")
		}
	}
}
