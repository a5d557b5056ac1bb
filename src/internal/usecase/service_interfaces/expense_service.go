package service_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
)

type ExpenseService interface {
	Create(ctx context.Context, req models.CreateExpenseRequest) (commons.Response[models.ExpenseResponse], error)
	Get(ctx context.Context, expenseID int64) (commons.Response[models.ExpenseResponse], error)
	List(ctx context.Context) (commons.Response[[]models.ExpenseResponse], error)
	Void(ctx context.Context, expenseID int64, operatorID string) (commons.Response[models.ExpenseResponse], error)
	Pay(ctx context.Context, req models.PayExpenseRequest) (commons.Response[models.ExpenseResponse], error)
}
