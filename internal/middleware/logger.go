package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/iliyamo/leetcode-tracker/internal/errs"
)

const LoggerKey = "logger"

// ContextLogger attaches a request-scoped logger carrying the request id.
// It must run after RequestID.
func ContextLogger(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base.With().Str("request_id", GetRequestID(c)).Logger()
			c.Set(LoggerKey, &l)
			c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
			return next(c)
		}
	}
}

// GetLogger returns the request logger, or a no-op logger outside a request.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	l := zerolog.Nop()
	return &l
}

// RequestLogger writes one line per request, at warn for 4xx and error for 5xx.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogError:    true,
		LogLatency:  true,
		LogMethod:   true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil {
				var httpErr *errs.HTTPError
				var echoErr *echo.HTTPError
				switch {
				case errors.As(v.Error, &httpErr):
					status = httpErr.Status
				case errors.As(v.Error, &echoErr):
					status = echoErr.Code
				}
			}

			l := GetLogger(c)
			var ev *zerolog.Event
			switch {
			case status >= 500:
				ev = l.Error().Err(v.Error)
			case status >= 400:
				ev = l.Warn()
			default:
				ev = l.Info()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
