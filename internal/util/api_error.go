package util

import (
	"net/http"

	"github.com/tidwall/gjson"
)

// FromAPIResponse turns an error answer of the careers API back into an
// AppError, keeping the message the server chose for the user.
func FromAPIResponse(status int, body string) *AppError {
	msg := gjson.Get(body, "error").String()
	if msg == "" {
		msg = gjson.Get(body, "message").String()
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	var details any
	if d := gjson.Get(body, "details"); d.Exists() {
		details = d.Value()
	}

	switch {
	case status == http.StatusBadRequest:
		return &AppError{Kind: KindValidation, Message: msg, Details: details}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return AuthenticationError(msg)
	case status == http.StatusNotFound:
		return NotFoundError(msg)
	case status == http.StatusTooManyRequests:
		return NetworkError(msg, nil)
	case status == http.StatusInternalServerError && msg == "Failed to save application":
		return PersistenceError(msg, nil)
	case status >= http.StatusBadGateway:
		return NetworkError(msg, nil)
	default:
		return InternalError(msg, nil)
	}
}
