package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/expense-tracker/internal/repository"
)

const healthTimeout = 2 * time.Second

type HealthResponse struct {
	Status string `json:"status"`
}

type HealthHandler struct {
	Store repository.HealthChecker
}

// NewHealthHandler создает обработчик проверки состояния.
func NewHealthHandler(store repository.HealthChecker) *HealthHandler {
	return &HealthHandler{Store: store}
}

// Root отвечает, что API запущен.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "API is running...")
}

// Health проверяет доступность хранилища.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		slog.Warn("health check failed", slog.String("error", err.Error()))
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
	}

	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
