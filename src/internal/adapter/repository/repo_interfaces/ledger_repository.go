package repo_interfaces

import (
	"context"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

// LedgerRepository posts every balance-changing operation atomically:
// ledger rows and balance updates commit together or not at all.
type LedgerRepository interface {
	OpenRegister(ctx context.Context, posting domain.OpenRegisterPosting) (domain.Register, domain.RegisterSession, error)
	CloseRegister(ctx context.Context, posting domain.CloseRegisterPosting) (domain.RegisterClosing, error)
	PostMovement(ctx context.Context, posting domain.MovementPosting) (domain.Movement, error)
	PostDeposit(ctx context.Context, posting domain.DepositPosting) (domain.Deposit, error)
	VoidDeposit(ctx context.Context, depositID int64) (domain.Deposit, error)
	Transfer(ctx context.Context, posting domain.TransferPosting) (domain.TransferResult, error)
	SettleInstallment(ctx context.Context, posting domain.SettlementPosting) (domain.Payment, error)
	// PayExpense debits the register or bank account and marks the expense
	// paid. The balance must cover the full amount.
	PayExpense(ctx context.Context, posting domain.ExpensePaymentPosting) (domain.Expense, error)

	ListMovements(ctx context.Context, registerID int64, from, to *time.Time) ([]domain.Movement, error)
	ListSessionMovements(ctx context.Context, sessionID string) ([]domain.Movement, error)
	ListDeposits(ctx context.Context, bankAccountID int64, from, to *time.Time) ([]domain.Deposit, error)
}
