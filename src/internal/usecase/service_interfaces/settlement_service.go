package service_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
)

type SettlementService interface {
	Settle(ctx context.Context, req models.SettleInstallmentRequest) (commons.Response[models.PaymentResponse], error)
	ListOutstanding(ctx context.Context, req models.OutstandingRequest) (commons.Response[[]models.OutstandingInstallmentResponse], error)
}
