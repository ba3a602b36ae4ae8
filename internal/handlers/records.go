package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"example.com/expense-tracker/internal/models"
	"example.com/expense-tracker/internal/summary"
)

const (
	dateLayout = "2006-01-02"

	// Суммы ограничены по модулю 1e15 и десятью знаками после запятой.
	maxIntegerDigits  = 15
	maxFractionDigits = 10
)

var (
	errAmountRequired = errors.New("amount is required")
	errAmountRange    = errors.New("amount must be a finite number below 1e15 with at most 10 decimal places")
	errInvalidDate    = errors.New("date must be YYYY-MM-DD or RFC3339")
)

// parseAmount требует, чтобы сумма была передана числом или числовой строкой.
func parseAmount(value decimal.NullDecimal) (decimal.Decimal, error) {
	if !value.Valid {
		return decimal.Zero, errAmountRequired
	}

	return boundedAmount(value.Decimal)
}

// boundedAmount проверяет порядок числа по экспоненте и числу цифр, без Cmp
// и без приведения к строке.
func boundedAmount(value decimal.Decimal) (decimal.Decimal, error) {
	if value.Sign() == 0 {
		return decimal.Zero, nil
	}

	exp := int64(value.Exponent())
	if exp < -maxFractionDigits || exp > maxIntegerDigits {
		return decimal.Zero, errAmountRange
	}
	if int64(value.NumDigits())+exp > maxIntegerDigits {
		return decimal.Zero, errAmountRange
	}

	return value, nil
}

// parseDate разбирает дату записи. Пустая дата означает текущий момент.
func parseDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.UTC(), nil
	}

	if date, err := time.Parse(dateLayout, value); err == nil {
		return date.UTC(), nil
	}

	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errInvalidDate
	}

	return date.UTC(), nil
}

// parseThreshold читает порог из query-параметра; пустое значение равно нулю.
func parseThreshold(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}

	threshold, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}

	return boundedAmount(threshold)
}

// parseRecordID разбирает идентификатор из пути; неверный формат не найдет запись.
func parseRecordID(value string) (uuid.UUID, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

func expenseEntries(expenses []models.Expense) []summary.Entry {
	entries := make([]summary.Entry, 0, len(expenses))
	for _, expense := range expenses {
		entries = append(entries, summary.Entry{Amount: expense.Amount, Date: expense.Date, Category: expense.Category})
	}
	return entries
}

func incomeEntries(incomes []models.Income) []summary.Entry {
	entries := make([]summary.Entry, 0, len(incomes))
	for _, income := range incomes {
		entries = append(entries, summary.Entry{Amount: income.Amount, Date: income.Date, Category: income.Category})
	}
	return entries
}
