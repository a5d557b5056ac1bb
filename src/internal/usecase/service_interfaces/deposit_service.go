package service_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
)

type DepositService interface {
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.DepositResponse], error)
	VoidDeposit(ctx context.Context, depositID int64, operatorID string) (commons.Response[models.DepositResponse], error)
	BankStatement(ctx context.Context, req models.StatementRequest) (commons.Response[models.StatementResponse], error)
}
