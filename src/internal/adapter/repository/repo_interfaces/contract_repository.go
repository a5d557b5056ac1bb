package repo_interfaces

import (
	"context"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/shopspring/decimal"
)

type ContractRepository interface {
	CreateWithSchedule(ctx context.Context, contract domain.Contract, firstDue time.Time) (domain.Contract, []domain.Installment, error)
	GetByID(ctx context.Context, id int64) (domain.Contract, error)
	ListByClientDocument(ctx context.Context, clientDocument string) ([]domain.Contract, error)
	CreateSubdivision(ctx context.Context, subdivision domain.Subdivision) (domain.Subdivision, error)
	GetSubdivision(ctx context.Context, id int64) (domain.Subdivision, error)
}

type InstallmentRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Installment, error)
	ListByContract(ctx context.Context, contractID int64) ([]domain.Installment, error)
	// AddServiceCharge appends a SERVICE installment numbered after the
	// contract's current last installment.
	AddServiceCharge(ctx context.Context, contractID int64, amount decimal.Decimal, dueDate time.Time, description string) (domain.Installment, error)
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Payment, error)
	ListByContract(ctx context.Context, contractID int64) ([]domain.Payment, error)
	ListBySubdivision(ctx context.Context, subdivisionID int64, from, to time.Time) ([]domain.Payment, error)
}
