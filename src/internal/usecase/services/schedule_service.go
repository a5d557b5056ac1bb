package services

import (
	"context"
	"fmt"
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

var _ service_interfaces.ScheduleService = (*ScheduleService)(nil)

type ScheduleService struct {
	contractRepo    repo_interfaces.ContractRepository
	installmentRepo repo_interfaces.InstallmentRepository
	audit           service_interfaces.AuditService
}

func NewScheduleService(
	contractRepo repo_interfaces.ContractRepository,
	installmentRepo repo_interfaces.InstallmentRepository,
	audit service_interfaces.AuditService,
) *ScheduleService {
	return &ScheduleService{
		contractRepo:    contractRepo,
		installmentRepo: installmentRepo,
		audit:           audit,
	}
}

// CreateContract stores a contract with its monthly installment schedule.
// The first installment falls due on FirstDueDate, or on the contract date
// when none is given.
func (s *ScheduleService) CreateContract(ctx context.Context, req models.CreateContractRequest) (commons.Response[models.ContractResponse], error) {
	logger.Info("schedule service create contract request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("schedule service create contract validation failed", err, nil)
		return failure[models.ContractResponse]("create contract", err)
	}

	contractDate, _ := models.ParseDate(req.ContractDate, time.Now().UTC())
	firstDue, _ := models.ParseDate(req.FirstDueDate, contractDate)
	totalValue, _ := models.ParseAmount(req.TotalValue)
	installmentAmount, _ := models.ParseAmount(req.InstallmentAmount)
	downPayment := decimal.Zero
	if strings.TrimSpace(req.DownPayment) != "" {
		downPayment, _ = models.ParseAmount(req.DownPayment)
	}
	currency := domain.Currency(strings.ToUpper(strings.TrimSpace(req.Currency)))
	if currency == "" {
		currency = domain.CurrencyPYG
	}

	contract, installments, err := s.contractRepo.CreateWithSchedule(ctx, domain.Contract{
		ContractNumber:    strings.TrimSpace(req.ContractNumber),
		ClientName:        strings.TrimSpace(req.ClientName),
		ClientDocument:    strings.TrimSpace(req.ClientDocument),
		LotLabel:          strings.TrimSpace(req.LotLabel),
		SubdivisionID:     req.SubdivisionID,
		Currency:          currency,
		ContractDate:      domain.CivilDate(contractDate),
		TotalValue:        totalValue.Round(2),
		DownPayment:       downPayment.Round(2),
		InstallmentCount:  req.InstallmentCount,
		InstallmentAmount: installmentAmount.Round(2),
		Status:            domain.ContractActive,
	}, domain.CivilDate(firstDue))
	if err != nil {
		logger.Error("schedule service create contract failed", err, logger.Fields{
			"contractNumber": req.ContractNumber,
		})
		return failure[models.ContractResponse]("create contract", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action: "CREATE",
		Entity: "contract",
		Detail: fmt.Sprintf("contract %s with %d installments of %s", contract.ContractNumber, len(installments), contract.InstallmentAmount.StringFixed(2)),
	})

	logger.Info("schedule service create contract success", logger.Fields{
		"contractId":   contract.ID,
		"installments": len(installments),
	})

	return commons.SuccessResponse("contract created successfully", mapContractToResponse(contract, installments)), nil
}

func (s *ScheduleService) GetContract(ctx context.Context, id int64) (commons.Response[models.ContractResponse], error) {
	logger.Info("schedule service get contract request", logger.Fields{"contractId": id})

	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("schedule service get contract failed", err, logger.Fields{"contractId": id})
		return failure[models.ContractResponse]("get contract", err)
	}

	installments, err := s.installmentRepo.ListByContract(ctx, id)
	if err != nil {
		logger.Error("schedule service get contract installments failed", err, logger.Fields{"contractId": id})
		return failure[models.ContractResponse]("get contract", err)
	}

	return commons.SuccessResponse("contract fetched successfully", mapContractToResponse(contract, installments)), nil
}

func (s *ScheduleService) ListInstallments(ctx context.Context, contractID int64) (commons.Response[[]models.InstallmentResponse], error) {
	logger.Info("schedule service list installments request", logger.Fields{"contractId": contractID})

	if _, err := s.contractRepo.GetByID(ctx, contractID); err != nil {
		logger.Error("schedule service list installments get contract failed", err, logger.Fields{"contractId": contractID})
		return failure[[]models.InstallmentResponse]("list installments", err)
	}

	installments, err := s.installmentRepo.ListByContract(ctx, contractID)
	if err != nil {
		logger.Error("schedule service list installments failed", err, logger.Fields{"contractId": contractID})
		return failure[[]models.InstallmentResponse]("list installments", err)
	}

	return commons.SuccessResponse("installments fetched successfully", mapInstallments(installments)), nil
}

// AddServiceCharge appends a SERVICE installment after the contract's last
// one. Service charges never accrue late fees.
func (s *ScheduleService) AddServiceCharge(ctx context.Context, req models.ServiceChargeRequest) (commons.Response[models.InstallmentResponse], error) {
	logger.Info("schedule service add service charge request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("schedule service add service charge validation failed", err, nil)
		return failure[models.InstallmentResponse]("add service charge", err)
	}

	amount, _ := models.ParseAmount(req.Amount)
	dueDate, _ := models.ParseDate(req.DueDate, time.Now().UTC())

	installment, err := s.installmentRepo.AddServiceCharge(ctx, req.ContractID, amount.Round(2), domain.CivilDate(dueDate), strings.TrimSpace(req.Description))
	if err != nil {
		logger.Error("schedule service add service charge failed", err, logger.Fields{"contractId": req.ContractID})
		return failure[models.InstallmentResponse]("add service charge", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Action: "CREATE",
		Entity: "installment",
		Detail: fmt.Sprintf("contract %d service charge %d of %s", installment.ContractID, installment.Number, installment.Amount.StringFixed(2)),
	})

	logger.Info("schedule service add service charge success", logger.Fields{
		"installmentId": installment.ID,
		"number":        installment.Number,
	})

	return commons.SuccessResponse("service charge added successfully", mapInstallmentToResponse(installment)), nil
}

// MarkOverdue flags pending installments due before asOf.
func (s *ScheduleService) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	logger.Info("schedule service mark overdue request", logger.Fields{"asOf": models.FormatDate(asOf)})

	count, err := s.installmentRepo.MarkOverdue(ctx, domain.CivilDate(asOf))
	if err != nil {
		logger.Error("schedule service mark overdue failed", err, nil)
		return 0, fmt.Errorf("%w: mark overdue: %w", commons.ErrInternal, err)
	}

	logger.Info("schedule service mark overdue success", logger.Fields{"count": count})
	return count, nil
}

func (s *ScheduleService) CreateSubdivision(ctx context.Context, req models.CreateSubdivisionRequest) (commons.Response[models.SubdivisionResponse], error) {
	logger.Info("schedule service create subdivision request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("schedule service create subdivision validation failed", err, nil)
		return failure[models.SubdivisionResponse]("create subdivision", err)
	}

	agency, _ := models.ParseAmount(req.AgencyCommission)
	owner, _ := models.ParseAmount(req.OwnerCommission)

	subdivision, err := s.contractRepo.CreateSubdivision(ctx, domain.Subdivision{
		Name:             strings.TrimSpace(req.Name),
		AgencyCommission: agency,
		OwnerCommission:  owner,
	})
	if err != nil {
		logger.Error("schedule service create subdivision failed", err, logger.Fields{"name": req.Name})
		return failure[models.SubdivisionResponse]("create subdivision", err)
	}

	return commons.SuccessResponse("subdivision created successfully", models.SubdivisionResponse{
		ID:               subdivision.ID,
		Name:             subdivision.Name,
		AgencyCommission: subdivision.AgencyCommission,
		OwnerCommission:  subdivision.OwnerCommission,
	}), nil
}

func mapContractToResponse(c domain.Contract, installments []domain.Installment) models.ContractResponse {
	return models.ContractResponse{
		ID:                c.ID,
		ContractNumber:    c.ContractNumber,
		ClientName:        c.ClientName,
		ClientDocument:    c.ClientDocument,
		LotLabel:          c.LotLabel,
		SubdivisionID:     c.SubdivisionID,
		Currency:          string(c.Currency),
		ContractDate:      models.FormatDate(c.ContractDate),
		TotalValue:        c.TotalValue,
		DownPayment:       c.DownPayment,
		InstallmentCount:  c.InstallmentCount,
		InstallmentAmount: c.InstallmentAmount,
		Status:            string(c.Status),
		Installments:      mapInstallments(installments),
	}
}

func mapInstallments(installments []domain.Installment) []models.InstallmentResponse {
	out := make([]models.InstallmentResponse, 0, len(installments))
	for _, inst := range installments {
		out = append(out, mapInstallmentToResponse(inst))
	}
	return out
}

func mapInstallmentToResponse(i domain.Installment) models.InstallmentResponse {
	resp := models.InstallmentResponse{
		ID:           i.ID,
		ContractID:   i.ContractID,
		Number:       i.Number,
		DueDate:      models.FormatDate(i.DueDate),
		Amount:       i.Amount,
		Kind:         string(i.Kind),
		Status:       string(i.Status),
		Observations: i.Observations,
	}
	if i.PaidDate != nil {
		resp.PaidDate = models.FormatDate(*i.PaidDate)
	}
	if i.PaidAmount.Valid {
		paid := i.PaidAmount.Decimal
		resp.PaidAmount = &paid
	}
	return resp
}
