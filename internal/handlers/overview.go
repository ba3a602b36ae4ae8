package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"example.com/expense-tracker/internal/models"
	"example.com/expense-tracker/internal/repository"
	"example.com/expense-tracker/internal/summary"
)

type OverviewHandler struct {
	Expenses repository.ExpenseStore
	Incomes  repository.IncomeStore
}

// NewOverviewHandler создает обработчик общей сводки.
func NewOverviewHandler(expenses repository.ExpenseStore, incomes repository.IncomeStore) *OverviewHandler {
	return &OverviewHandler{Expenses: expenses, Incomes: incomes}
}

type OverviewResponse struct {
	Expenses summary.Report  `json:"expenses"`
	Income   summary.Report  `json:"income"`
	Balance  decimal.Decimal `json:"balance"`
}

// Overview возвращает сводки расходов и доходов и баланс между ними.
func (h *OverviewHandler) Overview(c echo.Context) error {
	budget, err := parseThreshold(c.QueryParam("budget"))
	if err != nil {
		return badRequest(c, "budget must be a number")
	}

	goal, err := parseThreshold(c.QueryParam("goal"))
	if err != nil {
		return badRequest(c, "goal must be a number")
	}

	var (
		expenses []models.Expense
		incomes  []models.Income
	)

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		expenses, err = h.Expenses.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		incomes, err = h.Incomes.List(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	response := OverviewResponse{
		Expenses: summary.Compute(expenseEntries(expenses), budget),
		Income:   summary.Compute(incomeEntries(incomes), goal),
	}
	response.Balance = response.Income.Total.Sub(response.Expenses.Total)

	return c.JSON(http.StatusOK, response)
}
