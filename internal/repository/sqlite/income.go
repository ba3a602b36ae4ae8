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

const incomeColumns = `id, amount, date, category, note, created_at, updated_at`

type IncomeRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewIncomeRepository создает репозиторий доходов SQLite.
func NewIncomeRepository(db *sql.DB) *IncomeRepository {
	return &IncomeRepository{db: db, now: time.Now}
}

// List возвращает все доходы, новые по дате первыми.
func (r *IncomeRepository) List(ctx context.Context) ([]models.Income, error) {
	rows, err := r.db.QueryContext(ctx,
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
	if err := repository.ValidateIncome(income); err != nil {
		return models.Income{}, err
	}

	now := formatTime(r.now())
	created, err := scanIncome(r.db.QueryRowContext(ctx,
		`INSERT INTO incomes (id, amount, date, category, note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+incomeColumns,
		uuid.NewString(), income.Amount.String(), formatTime(income.Date), income.Category, nullableNote(income.Note), now, now,
	))
	if err != nil {
		return models.Income{}, fmt.Errorf("create income: %w", err)
	}

	return created, nil
}

// Update полностью заменяет поля дохода.
func (r *IncomeRepository) Update(ctx context.Context, id uuid.UUID, income models.Income) (models.Income, error) {
	if err := repository.ValidateIncome(income); err != nil {
		return models.Income{}, err
	}

	updated, err := scanIncome(r.db.QueryRowContext(ctx,
		`UPDATE incomes
		 SET amount = ?,
		     date = ?,
		     category = ?,
		     note = ?,
		     updated_at = ?
		 WHERE id = ?
		 RETURNING `+incomeColumns,
		income.Amount.String(), formatTime(income.Date), income.Category, nullableNote(income.Note), formatTime(r.now()), id.String(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Income{}, repository.ErrNotFound
		}
		return models.Income{}, fmt.Errorf("update income: %w", err)
	}

	return updated, nil
}

// Delete удаляет доход.
func (r *IncomeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}

	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func nullableNote(note string) sql.NullString {
	return sql.NullString{String: note, Valid: note != ""}
}

func scanIncome(row scanner) (models.Income, error) {
	var income models.Income
	var id, amount string
	var note sql.NullString
	var date, createdAt, updatedAt string

	if err := row.Scan(&id, &amount, &date, &income.Category, &note, &createdAt, &updatedAt); err != nil {
		return income, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return income, fmt.Errorf("parse id %q: %w", id, err)
	}

	value, err := parseAmount(amount)
	if err != nil {
		return income, fmt.Errorf("parse amount %q: %w", amount, err)
	}

	income.ID = parsedID
	income.Amount = value
	income.Note = note.String
	if income.Date, err = parseTime(date); err != nil {
		return income, fmt.Errorf("parse date %q: %w", date, err)
	}
	if income.CreatedAt, err = parseTime(createdAt); err != nil {
		return income, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if income.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return income, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	return income, nil
}
