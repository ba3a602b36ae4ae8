package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"example.com/expense-tracker/internal/models"
)

// TestNumericRoundTrip проверяет конвертацию decimal <-> pgtype.Numeric.
func TestNumericRoundTrip(t *testing.T) {
	for _, raw := range []string{"12.5", "0", "-3.25", "1000000.01"} {
		value := decimal.RequireFromString(raw)

		got := fromNumeric(toNumeric(value))
		if !got.Equal(value) {
			t.Fatalf("expected %s, got %s", value, got)
		}
	}
}

// TestFromNumericInvalid проверяет обработку NULL и NaN.
func TestFromNumericInvalid(t *testing.T) {
	if got := fromNumeric(pgtype.Numeric{}); !got.IsZero() {
		t.Fatalf("expected zero for NULL, got %s", got)
	}

	if got := fromNumeric(pgtype.Numeric{NaN: true, Valid: true}); !got.IsZero() {
		t.Fatalf("expected zero for NaN, got %s", got)
	}
}

// TestValidateExpense проверяет обязательные поля расхода.
func TestValidateExpense(t *testing.T) {
	valid := models.Expense{Title: "Lunch", Category: "Food", Date: time.Now()}
	if err := ValidateExpense(valid); err != nil {
		t.Fatalf("expected valid expense, got %v", err)
	}

	blank := valid
	blank.Title = "   "
	if err := ValidateExpense(blank); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for blank title, got %v", err)
	}

	far := valid
	far.Date = time.Date(9999, 12, 31, 23, 0, 0, 0, time.UTC)
	if err := ValidateExpense(far); err != nil {
		t.Fatalf("expected year 9999 to be valid, got %v", err)
	}

	far.Date = time.Date(9999, 12, 31, 23, 0, 0, 0, time.FixedZone("west", -2*3600))
	if err := ValidateExpense(far); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for year past 9999 in UTC, got %v", err)
	}
}

// TestValidateIncome проверяет обязательную категорию дохода.
func TestValidateIncome(t *testing.T) {
	if err := ValidateIncome(models.Income{Date: time.Now()}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for missing category, got %v", err)
	}

	if err := ValidateIncome(models.Income{Category: "Salary/Wages", Date: time.Now()}); err != nil {
		t.Fatalf("expected valid income, got %v", err)
	}
}
