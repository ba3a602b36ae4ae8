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
	expenseNotFound = "Expense not found"
	expenseDeleted  = "Expense deleted successfully"
)

type ExpenseHandler struct {
	Expenses repository.ExpenseStore
	Currency string
	now      func() time.Time
}

// NewExpenseHandler создает обработчик расходов.
func NewExpenseHandler(expenses repository.ExpenseStore, currency string) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses, Currency: currency, now: time.Now}
}

type ExpenseRequest struct {
	Title    string              `json:"title" validate:"required"`
	Amount   decimal.NullDecimal `json:"amount"`
	Date     string              `json:"date"`
	Category string              `json:"category"`
}

// List возвращает все расходы, новые первыми.
func (h *ExpenseHandler) List(c echo.Context) error {
	expenses, err := h.Expenses.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, expenses)
}

// Create сохраняет новый расход.
func (h *ExpenseHandler) Create(c echo.Context) error {
	expense, ok, err := h.bind(c)
	if !ok {
		return err
	}

	created, err := h.Expenses.Create(c.Request().Context(), expense)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "validation failed")
		}
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// Update полностью заменяет поля расхода.
func (h *ExpenseHandler) Update(c echo.Context) error {
	id, ok := parseRecordID(c.Param("id"))
	if !ok {
		return notFound(c, expenseNotFound)
	}

	expense, ok, err := h.bind(c)
	if !ok {
		return err
	}

	updated, err := h.Expenses.Update(c.Request().Context(), id, expense)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, expenseNotFound)
		case errors.Is(err, repository.ErrInvalid):
			return badRequest(c, "validation failed")
		}
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete удаляет расход.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, ok := parseRecordID(c.Param("id"))
	if !ok {
		return notFound(c, expenseNotFound)
	}

	if err := h.Expenses.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, expenseNotFound)
		}
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: expenseDeleted})
}

// Summary возвращает сводку расходов; budget задает порог предупреждения.
func (h *ExpenseHandler) Summary(c echo.Context) error {
	budget, err := parseThreshold(c.QueryParam("budget"))
	if err != nil {
		return badRequest(c, "budget must be a number")
	}

	expenses, err := h.Expenses.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary.Compute(expenseEntries(expenses), budget))
}

// bind разбирает и нормализует тело запроса. При ok == false ответ уже записан
// либо err содержит ошибку для общего обработчика.
func (h *ExpenseHandler) bind(c echo.Context) (models.Expense, bool, error) {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return models.Expense{}, false, badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Expense{}, false, badRequest(c, validationMessage(err))
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Expense{}, false, badRequest(c, "title is required")
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return models.Expense{}, false, badRequest(c, err.Error())
	}

	date, err := parseDate(req.Date, h.now())
	if err != nil {
		return models.Expense{}, false, badRequest(c, err.Error())
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	return models.Expense{
		Title:    title,
		Amount:   amount,
		Date:     date,
		Category: category,
	}, true, nil
}
