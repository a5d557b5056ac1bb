package repo_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

type RegisterRepository interface {
	Create(ctx context.Context, register domain.Register) (domain.Register, error)
	GetByID(ctx context.Context, id int64) (domain.Register, error)
	List(ctx context.Context) ([]domain.Register, error)
}

type BankAccountRepository interface {
	Create(ctx context.Context, account domain.BankAccount) (domain.BankAccount, error)
	GetByID(ctx context.Context, id int64) (domain.BankAccount, error)
	List(ctx context.Context) ([]domain.BankAccount, error)
}

type RegisterSessionRepository interface {
	// GetOpen returns commons.ErrRecordNotFound when the session does not
	// exist or has already been closed.
	GetOpen(ctx context.Context, sessionID string) (domain.RegisterSession, error)
}
