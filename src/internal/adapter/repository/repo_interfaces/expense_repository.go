package repo_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

// ExpenseRepository stores supplier expenses. Paying one moves money, so
// that path lives on LedgerRepository.PayExpense.
type ExpenseRepository interface {
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, id int64) (domain.Expense, error)
	List(ctx context.Context) ([]domain.Expense, error)
	// Void returns commons.ErrAlreadySettled for a paid expense and
	// commons.ErrAlreadyVoided when it was voided before.
	Void(ctx context.Context, id int64) (domain.Expense, error)
}
