package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/events"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

var _ service_interfaces.SettlementService = (*SettlementService)(nil)

type SettlementService struct {
	contractRepo    repo_interfaces.ContractRepository
	installmentRepo repo_interfaces.InstallmentRepository
	ledgerRepo      repo_interfaces.LedgerRepository
	params          service_interfaces.ParameterService
	audit           service_interfaces.AuditService
	graceDays       int
	tolerance       decimal.Decimal
}

func NewSettlementService(
	contractRepo repo_interfaces.ContractRepository,
	installmentRepo repo_interfaces.InstallmentRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
	params service_interfaces.ParameterService,
	audit service_interfaces.AuditService,
	graceDays int,
	tolerance decimal.Decimal,
) *SettlementService {
	return &SettlementService{
		contractRepo:    contractRepo,
		installmentRepo: installmentRepo,
		ledgerRepo:      ledgerRepo,
		params:          params,
		audit:           audit,
		graceDays:       graceDays,
		tolerance:       tolerance,
	}
}

func (s *SettlementService) policy(ctx context.Context) domain.LateFeePolicy {
	return domain.LateFeePolicy{
		GraceDays: s.graceDays,
		DailyRate: s.params.DailyLateRate(ctx),
	}
}

// Settle records a payment against an unpaid installment. The late fee and
// the minimum accepted amount are computed before anything is written; the
// payment, the installment transition and the cash or bank leg then commit
// as one posting.
func (s *SettlementService) Settle(ctx context.Context, req models.SettleInstallmentRequest) (commons.Response[models.PaymentResponse], error) {
	logger.Info("settlement service settle request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("settlement service settle validation failed", err, nil)
		return failure[models.PaymentResponse]("settle installment", err)
	}

	installment, err := s.installmentRepo.GetByID(ctx, req.InstallmentID)
	if err != nil {
		logger.Error("settlement service get installment failed", err, logger.Fields{
			"installmentId": req.InstallmentID,
		})
		return failure[models.PaymentResponse]("settle installment", fmt.Errorf("installment %d: %w", req.InstallmentID, err))
	}
	if installment.Settled() {
		err := fmt.Errorf("installment %d: %w", installment.ID, commons.ErrAlreadySettled)
		logger.Error("settlement service installment already settled", err, logger.Fields{
			"installmentId": installment.ID,
		})
		return failure[models.PaymentResponse]("settle installment", err)
	}

	contract, err := s.contractRepo.GetByID(ctx, installment.ContractID)
	if err != nil {
		logger.Error("settlement service get contract failed", err, logger.Fields{
			"contractId": installment.ContractID,
		})
		return failure[models.PaymentResponse]("settle installment", err)
	}

	received, _ := models.ParseAmount(req.AmountReceived)
	received = received.Round(2)
	paymentDate, _ := models.ParseDate(req.PaymentDate, time.Now().UTC())
	paymentDate = domain.CivilDate(paymentDate)

	daysOverdue := domain.DaysOverdue(installment.DueDate, paymentDate)
	lateFee := s.policy(ctx).Charge(installment.Kind, installment.Amount, daysOverdue)
	required := installment.Amount.Add(lateFee)

	if received.LessThan(required.Sub(s.tolerance)) {
		err := fmt.Errorf("received %s, required %s: %w", received.StringFixed(2), required.StringFixed(2), commons.ErrInsufficientAmount)
		logger.Error("settlement service insufficient amount", err, logger.Fields{
			"installmentId": installment.ID,
			"daysOverdue":   daysOverdue,
			"lateFee":       lateFee,
		})
		return failure[models.PaymentResponse]("settle installment", err)
	}

	method := domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.Method)))
	if method == domain.PaymentCash && strings.TrimSpace(req.SessionID) == "" {
		err := fmt.Errorf("cash payment without register session: %w", commons.ErrRegisterNotOpen)
		logger.Error("settlement service cash without session", err, logger.Fields{
			"installmentId": installment.ID,
		})
		return failure[models.PaymentResponse]("settle installment", err)
	}
	var bankAccountID *int64
	if method != domain.PaymentCash {
		bankAccountID = req.BankAccountID
	}

	concept := fmt.Sprintf("Cobro cuota %d - %s", installment.Number, contract.ClientName)
	reference := strings.TrimSpace(req.Reference)

	payment, err := s.ledgerRepo.SettleInstallment(ctx, domain.SettlementPosting{
		InstallmentID: installment.ID,
		Payment: domain.Payment{
			Amount:        received,
			PaymentDate:   paymentDate,
			Method:        method,
			Reference:     reference,
			Observations:  settlementObservations(req.Observations, lateFee, daysOverdue),
			BankAccountID: bankAccountID,
			OperatorID:    strings.TrimSpace(req.OperatorID),
			LateFee:       lateFee,
			DaysOverdue:   daysOverdue,
		},
		SessionID:        req.SessionID,
		MovementConcept:  concept,
		DepositConcept:   concept,
		DepositReference: reference,
	})
	if err != nil {
		logger.Error("settlement service posting failed", err, logger.Fields{
			"installmentId": installment.ID,
			"method":        method,
		})
		return failure[models.PaymentResponse]("settle installment", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		OperatorID: payment.OperatorID,
		Action:     "SETTLE",
		Entity:     "installment",
		Detail: fmt.Sprintf("contract %s installment %d paid %s (late fee %s)",
			contract.ContractNumber, installment.Number, payment.Amount.StringFixed(2), lateFee.StringFixed(2)),
	})
	s.audit.Publish(ctx, events.RoutingPaymentSettled, events.LedgerEvent{
		Type:       events.RoutingPaymentSettled,
		EntityID:   strconv.FormatInt(payment.ID, 10),
		Amount:     payment.Amount,
		Currency:   string(contract.Currency),
		OperatorID: payment.OperatorID,
		Detail:     fmt.Sprintf("%s/%d", contract.ContractNumber, installment.Number),
	})

	logger.Info("settlement service settle success", logger.Fields{
		"paymentId":     payment.ID,
		"installmentId": installment.ID,
		"amount":        payment.Amount,
		"lateFee":       lateFee,
	})

	resp := mapPaymentToResponse(payment)
	resp.RequiredAmount = required
	return commons.SuccessResponse("installment settled successfully", resp), nil
}

// ListOutstanding quotes every unpaid installment of a contract as of a date.
func (s *SettlementService) ListOutstanding(ctx context.Context, req models.OutstandingRequest) (commons.Response[[]models.OutstandingInstallmentResponse], error) {
	logger.Info("settlement service outstanding request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("settlement service outstanding validation failed", err, nil)
		return failure[[]models.OutstandingInstallmentResponse]("list outstanding installments", err)
	}

	if _, err := s.contractRepo.GetByID(ctx, req.ContractID); err != nil {
		logger.Error("settlement service outstanding get contract failed", err, logger.Fields{"contractId": req.ContractID})
		return failure[[]models.OutstandingInstallmentResponse]("list outstanding installments", err)
	}

	installments, err := s.installmentRepo.ListByContract(ctx, req.ContractID)
	if err != nil {
		logger.Error("settlement service outstanding list failed", err, logger.Fields{"contractId": req.ContractID})
		return failure[[]models.OutstandingInstallmentResponse]("list outstanding installments", err)
	}

	asOf, _ := models.ParseDate(req.AsOf, time.Now().UTC())
	policy := s.policy(ctx)

	resp := make([]models.OutstandingInstallmentResponse, 0, len(installments))
	for _, inst := range installments {
		if inst.Settled() {
			continue
		}
		days := domain.DaysOverdue(inst.DueDate, asOf)
		fee := policy.Charge(inst.Kind, inst.Amount, days)
		resp = append(resp, models.OutstandingInstallmentResponse{
			InstallmentID: inst.ID,
			Number:        inst.Number,
			Kind:          string(inst.Kind),
			Status:        string(inst.Status),
			DueDate:       models.FormatDate(inst.DueDate),
			Amount:        inst.Amount,
			DaysOverdue:   days,
			LateFee:       fee,
			TotalDue:      inst.Amount.Add(fee),
		})
	}

	return commons.SuccessResponse("outstanding installments fetched successfully", resp), nil
}

func settlementObservations(observations string, lateFee decimal.Decimal, daysOverdue int) string {
	obs := strings.TrimSpace(observations)
	if !lateFee.IsPositive() {
		return obs
	}
	suffix := fmt.Sprintf("[Interés por mora: %s por %d días de atraso]", lateFee.StringFixed(2), daysOverdue)
	if obs == "" {
		return suffix
	}
	return obs + " " + suffix
}

func mapPaymentToResponse(p domain.Payment) models.PaymentResponse {
	return models.PaymentResponse{
		ID:            p.ID,
		ContractID:    p.ContractID,
		InstallmentID: p.InstallmentID,
		Amount:        p.Amount,
		PaymentDate:   models.FormatDate(p.PaymentDate),
		Method:        string(p.Method),
		Reference:     p.Reference,
		Observations:  p.Observations,
		BankAccountID: p.BankAccountID,
		LateFee:       p.LateFee,
		DaysOverdue:   p.DaysOverdue,
	}
}
