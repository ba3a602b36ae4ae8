package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MessageResponse общий ответ с текстом для клиента.
type MessageResponse struct {
	Message string `json:"message"`
}

func message(c echo.Context, status int, text string) error {
	return c.JSON(status, MessageResponse{Message: text})
}

func badRequest(c echo.Context, text string) error {
	return message(c, http.StatusBadRequest, text)
}

func notFound(c echo.Context, text string) error {
	return message(c, http.StatusNotFound, text)
}

// validationMessage превращает первую ошибку валидатора в короткое сообщение.
func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return "validation failed"
	}

	fe := fieldErrors[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
