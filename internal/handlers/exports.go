package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/expense-tracker/internal/export"
	"example.com/expense-tracker/internal/models"
	"example.com/expense-tracker/internal/summary"
)

// Export выгружает расходы в CSV, XLSX или PDF.
func (h *ExpenseHandler) Export(c echo.Context) error {
	format, err := export.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return badRequest(c, "format must be one of csv, xlsx, pdf")
	}

	expenses, err := h.Expenses.List(c.Request().Context())
	if err != nil {
		return err
	}

	return writeExport(c, format, "expenses-report", buildExpenseReport(expenses, h.Currency))
}

// Export выгружает доходы в CSV, XLSX или PDF.
func (h *IncomeHandler) Export(c echo.Context) error {
	format, err := export.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return badRequest(c, "format must be one of csv, xlsx, pdf")
	}

	incomes, err := h.Incomes.List(c.Request().Context())
	if err != nil {
		return err
	}

	return writeExport(c, format, "income-report", buildIncomeReport(incomes, h.Currency))
}

func writeExport(c echo.Context, format export.Format, name string, report export.Report) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, report); err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			return badRequest(c, err.Error())
		}
		return fmt.Errorf("export %s: %w", name, err)
	}

	filename := name + "." + format.Extension()
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func buildExpenseReport(expenses []models.Expense, currency string) export.Report {
	rows := make([][]string, 0, len(expenses))
	for _, expense := range expenses {
		rows = append(rows, []string{
			expense.Title,
			expense.Category,
			expense.Amount.StringFixed(2),
			expense.Date.UTC().Format(dateLayout),
		})
	}

	return export.Report{
		Title:   "Expenses Report",
		Sheet:   "Expenses",
		Headers: []string{"Title", "Category", "Amount", "Date"},
		Rows:    rows,
		Summary: summaryMetrics(summary.Compute(expenseEntries(expenses), decimal.Zero), currency),
	}
}

func buildIncomeReport(incomes []models.Income, currency string) export.Report {
	rows := make([][]string, 0, len(incomes))
	for _, income := range incomes {
		rows = append(rows, []string{
			income.Category,
			income.Amount.StringFixed(2),
			income.Date.UTC().Format(dateLayout),
			income.Note,
		})
	}

	return export.Report{
		Title:   "Income Report",
		Sheet:   "Income",
		Headers: []string{"Category", "Amount", "Date", "Note"},
		Rows:    rows,
		Summary: summaryMetrics(summary.Compute(incomeEntries(incomes), decimal.Zero), currency),
	}
}

func summaryMetrics(report summary.Report, currency string) []export.Metric {
	return []export.Metric{
		{Name: "Total", Value: formatMoney(currency, report.Total)},
		{Name: "Average", Value: formatMoney(currency, report.Average)},
		{Name: "Highest", Value: formatMoney(currency, report.Highest)},
		{Name: "Highest Month", Value: fmt.Sprintf("%s (%s)", report.BestMonth.Month, formatMoney(currency, report.BestMonth.Amount))},
	}
}

func formatMoney(currency string, amount decimal.Decimal) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return currency + " " + amount.StringFixed(2)
}
