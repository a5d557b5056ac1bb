package service_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
)

type RegisterService interface {
	OpenRegister(ctx context.Context, req models.OpenRegisterRequest) (commons.Response[models.OpenRegisterResponse], error)
	CloseRegister(ctx context.Context, req models.CloseRegisterRequest) (commons.Response[models.ClosingSummaryResponse], error)
	RegisterStatus(ctx context.Context, sessionID string) (commons.Response[models.RegisterStatusResponse], error)
	PostManualMovement(ctx context.Context, req models.ManualMovementRequest) (commons.Response[models.MovementResponse], error)
	CashCount(ctx context.Context, req models.CashCountRequest) (commons.Response[models.CashCountResponse], error)
}
