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

const incomeColumns = `id, amount, date, category, note, created_at, updated_at`

type IncomeRepository struct {
	db *pgxpool.Pool
}

// NewIncomeRepository создает репозиторий доходов.
func NewIncomeRepository(db *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{db: db}
}

// List возвращает все доходы, новые по дате первыми.
func (r *IncomeRepository) List(ctx context.Context) ([]models.Income, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+incomeColumns+`
		 FROM incomes
		 ORDER BY date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	incomes := make([]models.Income, 0)
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		incomes = append(incomes, income)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}

	return incomes, nil
}

// Create сохраняет новый доход.
func (r *IncomeRepository) Create(ctx context.Context, income models.Income) (models.Income, error) {
	if err := ValidateIncome(income); err != nil {
		return models.Income{}, err
	}

	created, err := scanIncome(r.db.QueryRow(ctx,
		`INSERT INTO incomes (id, amount, date, category, note)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+incomeColumns,
		uuid.New(), toNumeric(income.Amount), income.Date, income.Category, nullableString(income.Note),
	))
	if err != nil {
		return models.Income{}, fmt.Errorf("create income: %w", err)
	}

	return created, nil
}

// Update полностью заменяет поля дохода.
func (r *IncomeRepository) Update(ctx context.Context, id uuid.UUID, income models.Income) (models.Income, error) {
	if err := ValidateIncome(income); err != nil {
		return models.Income{}, err
	}

	updated, err := scanIncome(r.db.QueryRow(ctx,
		`UPDATE incomes
		 SET amount = $2,
		     date = $3,
		     category = $4,
		     note = $5,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+incomeColumns,
		id, toNumeric(income.Amount), income.Date, income.Category, nullableString(income.Note),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Income{}, ErrNotFound
		}
		return models.Income{}, fmt.Errorf("update income: %w", err)
	}

	return updated, nil
}

// Delete удаляет доход.
func (r *IncomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM incomes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanIncome(row pgx.Row) (models.Income, error) {
	var income models.Income
	var amount pgtype.Numeric
	var note *string

	err := row.Scan(&income.ID, &amount, &income.Date, &income.Category, &note, &income.CreatedAt, &income.UpdatedAt)
	if err != nil {
		return income, err
	}

	income.Amount = fromNumeric(amount)
	income.Note = stringValue(note)
	return income, nil
}
