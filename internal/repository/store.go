package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/expense-tracker/internal/models"
)

// ExpenseStore описывает коллекцию расходов.
type ExpenseStore interface {
	List(ctx context.Context) ([]models.Expense, error)
	Create(ctx context.Context, expense models.Expense) (models.Expense, error)
	Update(ctx context.Context, id uuid.UUID, expense models.Expense) (models.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IncomeStore описывает коллекцию доходов.
type IncomeStore interface {
	List(ctx context.Context) ([]models.Income, error)
	Create(ctx context.Context, income models.Income) (models.Income, error)
	Update(ctx context.Context, id uuid.UUID, income models.Income) (models.Income, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Store объединяет коллекции одного хранилища.
type Store struct {
	Expenses ExpenseStore
	Incomes  IncomeStore
	Health   HealthChecker
}

// ValidateExpense проверяет обязательные поля расхода перед записью.
func ValidateExpense(expense models.Expense) error {
	if strings.TrimSpace(expense.Title) == "" {
		return fmt.Errorf("title is required: %w", ErrInvalid)
	}
	if strings.TrimSpace(expense.Category) == "" {
		return fmt.Errorf("category is required: %w", ErrInvalid)
	}
	if err := validateDate(expense.Date); err != nil {
		return err
	}

	return nil
}

// ValidateIncome проверяет обязательные поля дохода перед записью.
func ValidateIncome(income models.Income) error {
	if strings.TrimSpace(income.Category) == "" {
		return fmt.Errorf("category is required: %w", ErrInvalid)
	}
	if err := validateDate(income.Date); err != nil {
		return err
	}

	return nil
}

// Даты записей ограничены четырехзначными годами в UTC.
const (
	minYear = 1
	maxYear = 9999
)

func validateDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("date is required: %w", ErrInvalid)
	}
	if year := date.UTC().Year(); year < minYear || year > maxYear {
		return fmt.Errorf("date year %d is out of range: %w", year, ErrInvalid)
	}

	return nil
}
