package util

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ErrorKind string

const (
	KindValidation     ErrorKind = "ValidationError"
	KindUpload         ErrorKind = "UploadError"
	KindPersistence    ErrorKind = "PersistenceError"
	KindAuthentication ErrorKind = "AuthenticationError"
	KindNetwork        ErrorKind = "NetworkError"
	KindNotFound       ErrorKind = "NotFoundError"
	KindInternal       ErrorKind = "InternalError"
)

// HTTPStatus maps a kind to the status code the API answers with.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindAuthentication:
		return fiber.StatusUnauthorized
	case KindNotFound:
		return fiber.StatusNotFound
	case KindNetwork, KindUpload:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// AppError is the error type crossing layer boundaries. Message is safe to
// show to the user, Err is the internal cause and is only ever logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func ValidationError(message string, details any) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Details: details}
}

func UploadError(message string, err error) *AppError {
	return NewAppError(KindUpload, message, err)
}

func PersistenceError(message string, err error) *AppError {
	return NewAppError(KindPersistence, message, err)
}

func AuthenticationError(message string) *AppError {
	return NewAppError(KindAuthentication, message, nil)
}

func NetworkError(message string, err error) *AppError {
	return NewAppError(KindNetwork, message, err)
}

func NotFoundError(message string) *AppError {
	return NewAppError(KindNotFound, message, nil)
}

func InternalError(message string, err error) *AppError {
	return NewAppError(KindInternal, message, err)
}

// KindOf returns the kind of the first AppError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage is the text shown to end users for err.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "Internal server error"
}
