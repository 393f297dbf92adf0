package web

import (
	"errors"
	"github.com/labstack/echo/v4"
	"log/slog"
	"net/http"
)

func NoCacheOnErrorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				noCache(c)
			}

			return err
		}
	}
}

func NeverCacheMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			noCache(c)
			err := next(c)
			noCache(c)
			return err
		}
	}
}

// ErrorLogAndMaskMiddleware logs every handler error and converts it into an
// echo.HTTPError. Errors other than *HTTPError and *echo.HTTPError become a
// plain 500 without any detail.
func ErrorLogAndMaskMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			req := c.Request()
			attrs := []any{
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.String("err", err.Error()),
			}

			var httpErr *HTTPError
			var echoErr *echo.HTTPError
			switch {
			case errors.As(err, &httpErr):
				attrs = append(attrs, slog.Int("status", httpErr.code))
				if httpErr.code >= http.StatusInternalServerError {
					logger.ErrorContext(req.Context(), "request failed", attrs...)
				} else {
					logger.InfoContext(req.Context(), "request rejected", attrs...)
				}

				return echo.NewHTTPError(httpErr.code, httpErr.publicMessage())

			case errors.As(err, &echoErr):
				attrs = append(attrs, slog.Int("status", echoErr.Code))
				if echoErr.Code >= http.StatusInternalServerError {
					logger.ErrorContext(req.Context(), "request failed", attrs...)
				} else {
					logger.InfoContext(req.Context(), "request rejected", attrs...)
				}

				return echoErr
			}

			attrs = append(attrs, slog.Int("status", http.StatusInternalServerError))
			logger.ErrorContext(req.Context(), "request failed", attrs...)

			return echo.NewHTTPError(http.StatusInternalServerError)
		}
	}
}
