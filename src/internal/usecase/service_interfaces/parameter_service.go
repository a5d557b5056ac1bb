package service_interfaces

import (
	"context"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/shopspring/decimal"
)

type ParameterService interface {
	Value(ctx context.Context, key string) string
	DailyLateRate(ctx context.Context) decimal.Decimal
	CompanyIdentity(ctx context.Context) models.CompanyIdentity
	ListParameters(ctx context.Context) (commons.Response[[]models.ParameterResponse], error)
	SetParameter(ctx context.Context, req models.SetParameterRequest) (commons.Response[models.ParameterResponse], error)
}
