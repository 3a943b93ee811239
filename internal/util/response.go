package util

import (
	"errors"

	"github.com/fadilmartias/careers/internal/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code    int
	Message string
	Details any
}

type OrderedErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse sends the standard success envelope
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	})
}

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(OrderedErrorResponse{
		Success: false,
		Error:   params.Message,
		Details: params.Details,
	})
}

// AppErrorResponse answers with the status and public message of err. The
// internal cause never leaves the server; 5xx responses log it instead.
func AppErrorResponse(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = InternalError("Internal server error", err)
	}

	code := appErr.Kind.HTTPStatus()
	if code >= fiber.StatusInternalServerError && log != nil {
		log.WithFields(logrus.Fields{
			"kind":   appErr.Kind,
			"method": c.Method(),
			"path":   c.Path(),
		}).WithError(appErr.Err).Error(appErr.Message)
	}

	return ErrorResponse(c, ErrorResponseFormat{
		Code:    code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}
