// Package sqlite хранит записи в локальном файле SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"example.com/expense-tracker/internal/repository"
)

type pinger struct {
	db *sql.DB
}

func (p pinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// NewStore собирает хранилище поверх открытой базы SQLite.
func NewStore(db *sql.DB) repository.Store {
	return repository.Store{
		Expenses: NewExpenseRepository(db),
		Incomes:  NewIncomeRepository(db),
		Health:   pinger{db: db},
	}
}

// timeLayout фиксированной ширины: строки в UTC сортируются как время.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(value time.Time) string {
	return value.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}

	return parsed.UTC(), nil
}

func parseAmount(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(value)
}

type scanner interface {
	Scan(dest ...any) error
}
