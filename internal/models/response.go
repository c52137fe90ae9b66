package models

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// APIResponse is the success envelope returned by every endpoint.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// APIError is the failure envelope. Stack is only populated outside production.
type APIError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
	Stack      string   `json:"stack,omitempty"`
}

func NewAPIResponse(statusCode int, data any, message string) APIResponse {
	if message == "" {
		message = "Success"
	}
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	}
}

func NewAPIError(statusCode int, message string, errs []string) APIError {
	if message == "" {
		message = "Something went wrong"
	}
	if errs == nil {
		errs = []string{}
	}
	return APIError{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     errs,
	}
}

// Respond writes a success envelope.
func Respond(c *fiber.Ctx, statusCode int, data any, message string) error {
	return c.Status(statusCode).JSON(NewAPIResponse(statusCode, data, message))
}

// ToAPIError maps any error returned by a handler onto the failure envelope.
// withStack controls whether the %+v rendering of the cause is attached.
func ToAPIError(err error, withStack bool) APIError {
	var (
		appErr   *AppError
		fiberErr *fiber.Error
		out      APIError
	)

	switch {
	case errors.As(err, &appErr):
		status := appErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		out = NewAPIError(status, appErr.Message, appErr.Errors)
	case errors.As(err, &fiberErr):
		out = NewAPIError(fiberErr.Code, fiberErr.Message, nil)
	case errors.Is(err, gorm.ErrRecordNotFound):
		out = NewAPIError(http.StatusNotFound, "Resource not found", nil)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		out = NewAPIError(http.StatusConflict, "Resource already exists", nil)
	default:
		out = NewAPIError(http.StatusInternalServerError, "Internal server error", nil)
	}

	if withStack && err != nil {
		out.Stack = fmt.Sprintf("%+v", err)
	}
	return out
}

// RespondWithError renders err through the failure envelope.
func RespondWithError(c *fiber.Ctx, err error, withStack bool) error {
	apiErr := ToAPIError(err, withStack)
	return c.Status(apiErr.StatusCode).JSON(apiErr)
}
