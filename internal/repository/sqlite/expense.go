package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"example.com/expense-tracker/internal/models"
	"example.com/expense-tracker/internal/repository"
)

const expenseColumns = `id, title, amount, date, category, created_at, updated_at`

type ExpenseRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewExpenseRepository создает репозиторий расходов SQLite.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db, now: time.Now}
}

// List возвращает все расходы, новые по дате первыми.
func (r *ExpenseRepository) List(ctx context.Context) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+`
		 FROM expenses
		 ORDER BY date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	return expenses, nil
}

// Create сохраняет новый расход.
func (r *ExpenseRepository) Create(ctx context.Context, expense models.Expense) (models.Expense, error) {
	if err := repository.ValidateExpense(expense); err != nil {
		return models.Expense{}, err
	}

	now := formatTime(r.now())
	created, err := scanExpense(r.db.QueryRowContext(ctx,
		`INSERT INTO expenses (id, title, amount, date, category, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+expenseColumns,
		uuid.NewString(), expense.Title, expense.Amount.String(), formatTime(expense.Date), expense.Category, now, now,
	))
	if err != nil {
		return models.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	return created, nil
}

// Update полностью заменяет поля расхода.
func (r *ExpenseRepository) Update(ctx context.Context, id uuid.UUID, expense models.Expense) (models.Expense, error) {
	if err := repository.ValidateExpense(expense); err != nil {
		return models.Expense{}, err
	}

	updated, err := scanExpense(r.db.QueryRowContext(ctx,
		`UPDATE expenses
		 SET title = ?,
		     amount = ?,
		     date = ?,
		     category = ?,
		     updated_at = ?
		 WHERE id = ?
		 RETURNING `+expenseColumns,
		expense.Title, expense.Amount.String(), formatTime(expense.Date), expense.Category, formatTime(r.now()), id.String(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Expense{}, repository.ErrNotFound
		}
		return models.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	return updated, nil
}

// Delete удаляет расход.
func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanExpense(row scanner) (models.Expense, error) {
	var expense models.Expense
	var id, amount string
	var date, createdAt, updatedAt string

	if err := row.Scan(&id, &expense.Title, &amount, &date, &expense.Category, &createdAt, &updatedAt); err != nil {
		return expense, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return expense, fmt.Errorf("parse id %q: %w", id, err)
	}

	value, err := parseAmount(amount)
	if err != nil {
		return expense, fmt.Errorf("parse amount %q: %w", amount, err)
	}

	expense.ID = parsedID
	expense.Amount = value
	if expense.Date, err = parseTime(date); err != nil {
		return expense, fmt.Errorf("parse date %q: %w", date, err)
	}
	if expense.CreatedAt, err = parseTime(createdAt); err != nil {
		return expense, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if expense.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return expense, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	return expense, nil
}
