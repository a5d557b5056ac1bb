package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

var _ service_interfaces.ParameterService = (*ParameterService)(nil)

type ParameterService struct {
	repo     repo_interfaces.ParameterRepository
	defaults map[string]string
}

// NewParameterService builds the parameter store. Keys missing from storage
// fall back to hardcoded defaults; dailyLateRate seeds INTERES_MORA_DIARIO.
func NewParameterService(repo repo_interfaces.ParameterRepository, dailyLateRate decimal.Decimal) *ParameterService {
	return &ParameterService{
		repo: repo,
		defaults: map[string]string{
			domain.ParamDailyLateRate:  dailyLateRate.String(),
			domain.ParamCompanyName:    "Inmobiliaria",
			domain.ParamCompanyTaxID:   "",
			domain.ParamCompanyAddress: "",
			domain.ParamCompanyPhone:   "",
		},
	}
}

// Value returns the stored parameter or its default. Lookup failures are
// logged and answered with the default.
func (s *ParameterService) Value(ctx context.Context, key string) string {
	fallback := s.defaults[key]

	param, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, commons.ErrRecordNotFound) {
			logger.Error("parameter service get failed, using default", err, logger.Fields{
				"key": key,
			})
		}
		return fallback
	}

	if strings.TrimSpace(param.Value) == "" {
		return fallback
	}
	return strings.TrimSpace(param.Value)
}

func (s *ParameterService) DailyLateRate(ctx context.Context) decimal.Decimal {
	raw := s.Value(ctx, domain.ParamDailyLateRate)
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		logger.Error("parameter service invalid daily late rate, using default", err, logger.Fields{
			"value": raw,
		})
		return decimal.RequireFromString(s.defaults[domain.ParamDailyLateRate])
	}
	return rate
}

func (s *ParameterService) CompanyIdentity(ctx context.Context) models.CompanyIdentity {
	return models.CompanyIdentity{
		Name:    s.Value(ctx, domain.ParamCompanyName),
		TaxID:   s.Value(ctx, domain.ParamCompanyTaxID),
		Address: s.Value(ctx, domain.ParamCompanyAddress),
		Phone:   s.Value(ctx, domain.ParamCompanyPhone),
	}
}

func (s *ParameterService) ListParameters(ctx context.Context) (commons.Response[[]models.ParameterResponse], error) {
	logger.Info("parameter service list request", nil)

	params, err := s.repo.List(ctx)
	if err != nil {
		logger.Error("parameter service list failed", err, nil)
		return failure[[]models.ParameterResponse]("list parameters", err)
	}

	resp := make([]models.ParameterResponse, 0, len(params))
	for _, p := range params {
		resp = append(resp, mapParameterToResponse(p))
	}
	return commons.SuccessResponse("parameters fetched successfully", resp), nil
}

func (s *ParameterService) SetParameter(ctx context.Context, req models.SetParameterRequest) (commons.Response[models.ParameterResponse], error) {
	logger.Info("parameter service set request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return failure[models.ParameterResponse]("set parameter", err)
	}

	key := strings.ToUpper(strings.TrimSpace(req.Key))
	value := strings.TrimSpace(req.Value)
	if key == domain.ParamDailyLateRate {
		rate, err := decimal.NewFromString(value)
		if err != nil || rate.IsNegative() {
			return failure[models.ParameterResponse]("set parameter", commons.NewValidationError("value must be a non-negative decimal rate"))
		}
	}

	saved, err := s.repo.Upsert(ctx, domain.SystemParameter{
		Key:         key,
		Value:       value,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		logger.Error("parameter service set failed", err, logger.Fields{"key": key})
		return failure[models.ParameterResponse]("set parameter", err)
	}

	logger.Info("parameter service set success", logger.Fields{"key": key})
	return commons.SuccessResponse("parameter saved successfully", mapParameterToResponse(saved)), nil
}

func mapParameterToResponse(p domain.SystemParameter) models.ParameterResponse {
	resp := models.ParameterResponse{
		Key:         p.Key,
		Value:       p.Value,
		Description: p.Description,
	}
	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
