package memory

import (
	"context"
	"sort"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

type ExpenseRepository struct {
	s *Store
}

func (r *ExpenseRepository) Create(_ context.Context, expense domain.Expense) (domain.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expense.ID = r.s.id("expenses")
	expense.Status = domain.ExpensePending
	expense.CreatedAt = r.s.now()
	r.s.expenses[expense.ID] = expense
	return expense, nil
}

func (r *ExpenseRepository) GetByID(_ context.Context, id int64) (domain.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expense, ok := r.s.expenses[id]
	if !ok {
		return domain.Expense{}, commons.ErrRecordNotFound
	}
	return expense, nil
}

// List orders by invoice date, newest first.
func (r *ExpenseRepository) List(_ context.Context) ([]domain.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Expense, 0, len(r.s.expenses))
	for _, id := range sortedIDs(r.s.expenses) {
		out = append(out, r.s.expenses[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].InvoiceDate.After(out[j].InvoiceDate) })
	return out, nil
}

func (r *ExpenseRepository) Void(_ context.Context, id int64) (domain.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expense, ok := r.s.expenses[id]
	if !ok {
		return domain.Expense{}, commons.ErrRecordNotFound
	}
	switch expense.Status {
	case domain.ExpenseVoided:
		return domain.Expense{}, commons.ErrAlreadyVoided
	case domain.ExpensePaid:
		return domain.Expense{}, commons.ErrAlreadySettled
	}
	expense.Status = domain.ExpenseVoided
	r.s.expenses[id] = expense
	return expense, nil
}
