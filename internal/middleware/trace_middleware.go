package middleware

import (
	"ecoEats/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const maxTraceIDLen = 128

// TraceID propagates the caller's X-Request-ID or assigns a new one, and
// stores it in the request context for logging.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" || len(id) > maxTraceIDLen {
				id = uuid.NewString()
			}

			c.SetRequest(req.WithContext(logger.WithTraceID(req.Context(), id)))
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.Set("trace_id", id)

			return next(c)
		}
	}
}

// RequestLogger logs one line per request through pkg/logger.
func RequestLogger() echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			args := []any{
				"trace_id", logger.TraceIDFromContext(c.Request().Context()),
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			}
			if v.Error != nil {
				logger.Warn("request failed", append(args, "error", v.Error.Error())...)
				return nil
			}
			logger.Info("request", args...)
			return nil
		},
	})
}
