// Package memory держит записи в памяти процесса. Используется в тестах
// и для запуска без базы данных.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/expense-tracker/internal/models"
	"example.com/expense-tracker/internal/repository"
)

type noopPinger struct{}

func (noopPinger) Ping(context.Context) error { return nil }

// NewStore собирает пустое хранилище в памяти.
func NewStore() repository.Store {
	return repository.Store{
		Expenses: NewExpenseStore(),
		Incomes:  NewIncomeStore(),
		Health:   noopPinger{},
	}
}

type ExpenseStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.Expense
	now   func() time.Time
}

// NewExpenseStore создает коллекцию расходов в памяти.
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{items: make(map[uuid.UUID]models.Expense), now: time.Now}
}

func (s *ExpenseStore) List(_ context.Context) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Expense, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}

	slices.SortFunc(out, func(a, b models.Expense) int {
		return compareNewestFirst(a.Date, b.Date, a.CreatedAt, b.CreatedAt)
	})
	return out, nil
}

func (s *ExpenseStore) Create(_ context.Context, expense models.Expense) (models.Expense, error) {
	if err := repository.ValidateExpense(expense); err != nil {
		return models.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	expense.ID = uuid.New()
	expense.Date = expense.Date.UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	s.items[expense.ID] = expense
	return expense, nil
}

func (s *ExpenseStore) Update(_ context.Context, id uuid.UUID, expense models.Expense) (models.Expense, error) {
	if err := repository.ValidateExpense(expense); err != nil {
		return models.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return models.Expense{}, repository.ErrNotFound
	}

	current.Title = expense.Title
	current.Amount = expense.Amount
	current.Date = expense.Date.UTC()
	current.Category = expense.Category
	current.UpdatedAt = s.now().UTC()
	s.items[id] = current
	return current, nil
}

func (s *ExpenseStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}

	delete(s.items, id)
	return nil
}

type IncomeStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.Income
	now   func() time.Time
}

// NewIncomeStore создает коллекцию доходов в памяти.
func NewIncomeStore() *IncomeStore {
	return &IncomeStore{items: make(map[uuid.UUID]models.Income), now: time.Now}
}

func (s *IncomeStore) List(_ context.Context) ([]models.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Income, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}

	slices.SortFunc(out, func(a, b models.Income) int {
		return compareNewestFirst(a.Date, b.Date, a.CreatedAt, b.CreatedAt)
	})
	return out, nil
}

func (s *IncomeStore) Create(_ context.Context, income models.Income) (models.Income, error) {
	if err := repository.ValidateIncome(income); err != nil {
		return models.Income{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	income.ID = uuid.New()
	income.Date = income.Date.UTC()
	income.CreatedAt = now
	income.UpdatedAt = now
	s.items[income.ID] = income
	return income, nil
}

func (s *IncomeStore) Update(_ context.Context, id uuid.UUID, income models.Income) (models.Income, error) {
	if err := repository.ValidateIncome(income); err != nil {
		return models.Income{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return models.Income{}, repository.ErrNotFound
	}

	current.Amount = income.Amount
	current.Date = income.Date.UTC()
	current.Category = income.Category
	current.Note = income.Note
	current.UpdatedAt = s.now().UTC()
	s.items[id] = current
	return current, nil
}

func (s *IncomeStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}

	delete(s.items, id)
	return nil
}

func compareNewestFirst(dateA, dateB, createdA, createdB time.Time) int {
	if c := dateB.Compare(dateA); c != 0 {
		return c
	}

	return createdB.Compare(createdA)
}
