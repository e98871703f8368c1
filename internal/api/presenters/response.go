package presenters

import (
	"wejv/domain"

	"github.com/gofiber/fiber/v2"
)

// ExposeErrorDetails includes wrapped driver errors in failure bodies. Off in production.
var ExposeErrorDetails = false

type (
	Response struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
	}

	ErrorBody struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
		Error   string `json:"error,omitempty"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	body := ErrorBody{
		Status:  false,
		Message: message,
	}

	if appErr, ok := domain.AsAppError(err); ok {
		body.Code = string(appErr.Code)
		if ExposeErrorDetails {
			body.Error = appErr.Error()
		} else if appErr.Code != domain.CodeDatabaseError {
			body.Error = appErr.Message
		}
	} else if err != nil {
		body.Error = err.Error()
	}

	return c.Status(statusCode).JSON(body)
}

// AppErrorResponse answers with the status and message carried by err. Errors that are not
// an *domain.AppError become a 500 with fallback as the message.
func AppErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	if appErr, ok := domain.AsAppError(err); ok {
		return ErrorResponse(c, appErr.StatusCode(), appErr.Message, appErr)
	}
	return ErrorResponse(c, fiber.StatusInternalServerError, fallback, domain.NewPersistenceError(fallback, err))
}
