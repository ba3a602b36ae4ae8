package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/expense-tracker/internal/models"
	"example.com/expense-tracker/internal/repository"
	"example.com/expense-tracker/internal/summary"
)

const (
	incomeNotFound = "Income not found"
	incomeDeleted  = "Income deleted successfully"
)

type IncomeHandler struct {
	Incomes  repository.IncomeStore
	Currency string
	now      func() time.Time
}

// NewIncomeHandler создает обработчик доходов.
func NewIncomeHandler(incomes repository.IncomeStore, currency string) *IncomeHandler {
	return &IncomeHandler{Incomes: incomes, Currency: currency, now: time.Now}
}

type IncomeRequest struct {
	Amount   decimal.NullDecimal `json:"amount"`
	Date     string              `json:"date"`
	Category string              `json:"category" validate:"required"`
	Note     string              `json:"note"`
}

// List возвращает все доходы, новые первыми.
func (h *IncomeHandler) List(c echo.Context) error {
	incomes, err := h.Incomes.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, incomes)
}

// Create сохраняет новый доход.
func (h *IncomeHandler) Create(c echo.Context) error {
	income, ok, err := h.bind(c)
	if !ok {
		return err
	}

	created, err := h.Incomes.Create(c.Request().Context(), income)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "validation failed")
		}
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// Update полностью заменяет поля дохода.
func (h *IncomeHandler) Update(c echo.Context) error {
	id, ok := parseRecordID(c.Param("id"))
	if !ok {
		return notFound(c, incomeNotFound)
	}

	income, ok, err := h.bind(c)
	if !ok {
		return err
	}

	updated, err := h.Incomes.Update(c.Request().Context(), id, income)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, incomeNotFound)
		case errors.Is(err, repository.ErrInvalid):
			return badRequest(c, "validation failed")
		}
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete удаляет доход.
func (h *IncomeHandler) Delete(c echo.Context) error {
	id, ok := parseRecordID(c.Param("id"))
	if !ok {
		return notFound(c, incomeNotFound)
	}

	if err := h.Incomes.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, incomeNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: incomeDeleted})
}

// Summary возвращает сводку доходов; goal задает целевую сумму.
func (h *IncomeHandler) Summary(c echo.Context) error {
	goal, err := parseThreshold(c.QueryParam("goal"))
	if err != nil {
		return badRequest(c, "goal must be a number")
	}

	incomes, err := h.Incomes.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary.Compute(incomeEntries(incomes), goal))
}

func (h *IncomeHandler) bind(c echo.Context) (models.Income, bool, error) {
	var req IncomeRequest
	if err := c.Bind(&req); err != nil {
		return models.Income{}, false, badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Income{}, false, badRequest(c, validationMessage(err))
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		return models.Income{}, false, badRequest(c, "category is required")
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return models.Income{}, false, badRequest(c, err.Error())
	}

	date, err := parseDate(req.Date, h.now())
	if err != nil {
		return models.Income{}, false, badRequest(c, err.Error())
	}

	return models.Income{
		Amount:   amount,
		Date:     date,
		Category: category,
		Note:     strings.TrimSpace(req.Note),
	}, true, nil
}
