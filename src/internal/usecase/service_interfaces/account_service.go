package service_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
)

type AccountService interface {
	CreateRegister(ctx context.Context, req models.CreateRegisterRequest) (commons.Response[models.RegisterResponse], error)
	ListRegisters(ctx context.Context) (commons.Response[[]models.RegisterResponse], error)
	GetRegister(ctx context.Context, id int64) (commons.Response[models.RegisterResponse], error)
	CreateBankAccount(ctx context.Context, req models.CreateBankAccountRequest) (commons.Response[models.BankAccountResponse], error)
	ListBankAccounts(ctx context.Context) (commons.Response[[]models.BankAccountResponse], error)
	GetBankAccount(ctx context.Context, id int64) (commons.Response[models.BankAccountResponse], error)
	ReconcileRegister(ctx context.Context, id int64) (commons.Response[models.ReconciliationResponse], error)
	ReconcileBankAccount(ctx context.Context, id int64) (commons.Response[models.ReconciliationResponse], error)
}
