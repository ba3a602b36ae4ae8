package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/expense-tracker/internal/models"
)

const expenseColumns = `id, title, amount, date, category, created_at, updated_at`

type ExpenseRepository struct {
	db *pgxpool.Pool
}

// NewExpenseRepository создает репозиторий расходов.
func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// NewPostgresStore собирает хранилище поверх пула PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) Store {
	return Store{
		Expenses: NewExpenseRepository(db),
		Incomes:  NewIncomeRepository(db),
		Health:   db,
	}
}

// List возвращает все расходы, новые по дате первыми.
func (r *ExpenseRepository) List(ctx context.Context) ([]models.Expense, error) {
	rows, err := r.db.Query(ctx,
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
	if err := ValidateExpense(expense); err != nil {
		return models.Expense{}, err
	}

	created, err := scanExpense(r.db.QueryRow(ctx,
		`INSERT INTO expenses (id, title, amount, date, category)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+expenseColumns,
		uuid.New(), expense.Title, toNumeric(expense.Amount), expense.Date, expense.Category,
	))
	if err != nil {
		return models.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	return created, nil
}

// Update полностью заменяет поля расхода.
func (r *ExpenseRepository) Update(ctx context.Context, id uuid.UUID, expense models.Expense) (models.Expense, error) {
	if err := ValidateExpense(expense); err != nil {
		return models.Expense{}, err
	}

	updated, err := scanExpense(r.db.QueryRow(ctx,
		`UPDATE expenses
		 SET title = $2,
		     amount = $3,
		     date = $4,
		     category = $5,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+expenseColumns,
		id, expense.Title, toNumeric(expense.Amount), expense.Date, expense.Category,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Expense{}, ErrNotFound
		}
		return models.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	return updated, nil
}

// Delete удаляет расход.
func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanExpense(row pgx.Row) (models.Expense, error) {
	var expense models.Expense
	var amount pgtype.Numeric

	err := row.Scan(&expense.ID, &expense.Title, &amount, &expense.Date, &expense.Category, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return expense, err
	}

	expense.Amount = fromNumeric(amount)
	return expense, nil
}
