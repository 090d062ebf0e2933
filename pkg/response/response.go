// Package response holds the JSON error envelope shared by handlers and
// middleware.
package response

// ErrorBody is the structured error payload. Error carries the
// user-readable message.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeNotFound      = "NOT_FOUND"
	CodeTooMany       = "TOO_MANY_REQUESTS"
	CodeInternalError = "INTERNAL_ERROR"
)

func Error(code, message string, details any) ErrorBody {
	return ErrorBody{
		Error:   message,
		Code:    code,
		Details: details,
	}
}
