package middleware

import (
	"errors"
	"net/http"

	"ecoEats/pkg/logger"
	jsonres "ecoEats/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error that escapes a handler as a JSON body.
// Client errors keep their message; server errors are logged and reported
// generically.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled error",
			"trace_id", logger.TraceIDFromContext(c.Request().Context()),
			"path", c.Path(),
			"error", err.Error(),
		)
		message = "Internal Server Error"
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, jsonres.Error(errorCode(code), message, nil))
	}
	if writeErr != nil {
		logger.Error("Failed to write error response", writeErr)
	}
}

func errorCode(status int) string {
	switch {
	case status == http.StatusNotFound:
		return jsonres.CodeNotFound
	case status == http.StatusTooManyRequests:
		return jsonres.CodeTooMany
	case status >= http.StatusInternalServerError:
		return jsonres.CodeInternalError
	default:
		return jsonres.CodeBadRequest
	}
}
