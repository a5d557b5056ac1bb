package service_interfaces

import (
	"context"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
)

type ScheduleService interface {
	CreateContract(ctx context.Context, req models.CreateContractRequest) (commons.Response[models.ContractResponse], error)
	GetContract(ctx context.Context, id int64) (commons.Response[models.ContractResponse], error)
	ListInstallments(ctx context.Context, contractID int64) (commons.Response[[]models.InstallmentResponse], error)
	AddServiceCharge(ctx context.Context, req models.ServiceChargeRequest) (commons.Response[models.InstallmentResponse], error)
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
	CreateSubdivision(ctx context.Context, req models.CreateSubdivisionRequest) (commons.Response[models.SubdivisionResponse], error)
}
