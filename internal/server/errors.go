package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const genericErrorMessage = "Something went wrong!"

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// errorHandler отвечает JSON на ошибки, не обработанные в хендлерах.
// Детали внутренней ошибки уходят клиенту только в development.
func errorHandler(exposeDetails bool, logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorBody(err, c.Request().RequestURI, exposeDetails)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("uri", c.Request().RequestURI),
				slog.String("error", err.Error()),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("write error response", slog.String("error", writeErr.Error()))
		}
	}
}

func errorBody(err error, uri string, exposeDetails bool) (int, errorResponse) {
	if errors.Is(err, echo.ErrNotFound) {
		return http.StatusNotFound, errorResponse{Message: fmt.Sprintf("Route %s not found", uri)}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		return httpErr.Code, errorResponse{Message: fmt.Sprint(httpErr.Message)}
	}

	body := errorResponse{Message: genericErrorMessage}
	if exposeDetails {
		body.Error = err.Error()
	}
	return http.StatusInternalServerError, body
}
