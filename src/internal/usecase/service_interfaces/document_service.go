package service_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
)

type DocumentService interface {
	Receipt(ctx context.Context, paymentID int64) (commons.Response[models.ReceiptDocument], error)
	ContractDocument(ctx context.Context, contractID int64) (commons.Response[models.ContractDocument], error)
	OwnerSettlement(ctx context.Context, req models.OwnerSettlementRequest) (commons.Response[models.OwnerSettlementReport], error)
	AccountStatement(ctx context.Context, clientDocument string) (commons.Response[models.AccountStatement], error)
}
