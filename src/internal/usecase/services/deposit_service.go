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
)

var _ service_interfaces.DepositService = (*DepositService)(nil)

type DepositService struct {
	bankAccountRepo repo_interfaces.BankAccountRepository
	ledgerRepo      repo_interfaces.LedgerRepository
	audit           service_interfaces.AuditService
}

func NewDepositService(
	bankAccountRepo repo_interfaces.BankAccountRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
	audit service_interfaces.AuditService,
) *DepositService {
	return &DepositService{
		bankAccountRepo: bankAccountRepo,
		ledgerRepo:      ledgerRepo,
		audit:           audit,
	}
}

// Deposit credits a bank account. A REGISTER deposit also moves the cash out
// of the caller's open register in the same posting.
func (s *DepositService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.DepositResponse], error) {
	logger.Info("deposit service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("deposit service deposit validation failed", err, nil)
		return failure[models.DepositResponse]("post deposit", err)
	}

	amount, _ := models.ParseAmount(req.Amount)
	amount = amount.Round(2)
	if !amount.IsPositive() {
		err := fmt.Errorf("deposit amount %s rounds to zero: %w", req.Amount, commons.ErrInvalidAmount)
		logger.Error("deposit service deposit validation failed", err, nil)
		return failure[models.DepositResponse]("post deposit", err)
	}
	depositDate, _ := models.ParseDate(req.DepositDate, time.Now().UTC())
	source := domain.DepositSource(strings.ToUpper(strings.TrimSpace(req.Source)))
	if source == "" {
		source = domain.DepositSourceExternal
	}
	reference := strings.TrimSpace(req.Reference)
	concept := strings.TrimSpace(req.Concept)
	if concept == "" {
		concept = "Depósito bancario"
	}

	deposit, err := s.ledgerRepo.PostDeposit(ctx, domain.DepositPosting{
		Deposit: domain.Deposit{
			BankAccountID: req.BankAccountID,
			DepositDate:   domain.CivilDate(depositDate),
			Amount:        amount,
			Reference:     reference,
			Concept:       concept,
			Source:        source,
			OperatorID:    strings.TrimSpace(req.OperatorID),
		},
		SessionID:       req.SessionID,
		MovementConcept: strings.TrimSpace(fmt.Sprintf("Depósito a cuenta %d %s", req.BankAccountID, reference)),
	})
	if err != nil {
		logger.Error("deposit service deposit failed", err, logger.Fields{
			"bankAccountId": req.BankAccountID,
			"source":        source,
		})
		return failure[models.DepositResponse]("post deposit", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		OperatorID: deposit.OperatorID,
		Action:     "DEPOSIT",
		Entity:     entityBankAccount,
		Detail:     fmt.Sprintf("account %d deposit %d %s from %s", deposit.BankAccountID, deposit.ID, deposit.Amount.StringFixed(2), deposit.Source),
	})
	s.audit.Publish(ctx, events.RoutingDepositCreated, events.LedgerEvent{
		Type:       events.RoutingDepositCreated,
		EntityID:   strconv.FormatInt(deposit.ID, 10),
		Amount:     deposit.Amount,
		OperatorID: deposit.OperatorID,
		Detail:     string(deposit.Source),
	})

	logger.Info("deposit service deposit success", logger.Fields{
		"depositId":     deposit.ID,
		"bankAccountId": deposit.BankAccountID,
	})

	return commons.SuccessResponse("deposit posted successfully", mapDepositToResponse(deposit)), nil
}

// VoidDeposit reverses a confirmed deposit on its bank account. A register
// movement that fed the deposit is left in place.
func (s *DepositService) VoidDeposit(ctx context.Context, depositID int64, operatorID string) (commons.Response[models.DepositResponse], error) {
	logger.Info("deposit service void request", logger.Fields{"depositId": depositID})

	if depositID <= 0 {
		return failure[models.DepositResponse]("void deposit", commons.NewValidationError("depositId is required"))
	}

	deposit, err := s.ledgerRepo.VoidDeposit(ctx, depositID)
	if err != nil {
		logger.Error("deposit service void failed", err, logger.Fields{"depositId": depositID})
		return failure[models.DepositResponse]("void deposit", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		OperatorID: operatorID,
		Action:     "VOID",
		Entity:     "deposit",
		Detail:     fmt.Sprintf("deposit %d on account %d voided, %s reversed", deposit.ID, deposit.BankAccountID, deposit.Amount.StringFixed(2)),
	})
	s.audit.Publish(ctx, events.RoutingDepositVoided, events.LedgerEvent{
		Type:       events.RoutingDepositVoided,
		EntityID:   strconv.FormatInt(deposit.ID, 10),
		Amount:     deposit.Amount.Neg(),
		OperatorID: operatorID,
	})

	logger.Info("deposit service void success", logger.Fields{"depositId": deposit.ID})
	return commons.SuccessResponse("deposit voided successfully", mapDepositToResponse(deposit)), nil
}

func (s *DepositService) BankStatement(ctx context.Context, req models.StatementRequest) (commons.Response[models.StatementResponse], error) {
	logger.Info("deposit service statement request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("deposit service statement validation failed", err, nil)
		return failure[models.StatementResponse]("build bank statement", err)
	}

	account, err := s.bankAccountRepo.GetByID(ctx, req.BankAccountID)
	if err != nil {
		logger.Error("deposit service statement get account failed", err, logger.Fields{"bankAccountId": req.BankAccountID})
		return failure[models.StatementResponse]("build bank statement", err)
	}

	from, _ := models.ParseOptionalDate(req.From)
	to, _ := models.ParseOptionalDate(req.To)
	deposits, err := s.ledgerRepo.ListDeposits(ctx, req.BankAccountID, from, to)
	if err != nil {
		logger.Error("deposit service statement list deposits failed", err, logger.Fields{"bankAccountId": req.BankAccountID})
		return failure[models.StatementResponse]("build bank statement", err)
	}

	totals := domain.SumConfirmedDeposits(deposits)
	resp := models.StatementResponse{
		Account:  mapBankAccountToResponse(account),
		From:     strings.TrimSpace(req.From),
		To:       strings.TrimSpace(req.To),
		Deposits: make([]models.DepositResponse, 0, len(deposits)),
		TotalIn:  totals.TotalIn,
		TotalOut: totals.TotalOut,
	}
	for _, d := range deposits {
		resp.Deposits = append(resp.Deposits, mapDepositToResponse(d))
	}

	return commons.SuccessResponse("bank statement fetched successfully", resp), nil
}

func mapDepositToResponse(d domain.Deposit) models.DepositResponse {
	return models.DepositResponse{
		ID:                   d.ID,
		BankAccountID:        d.BankAccountID,
		DepositDate:          models.FormatDate(d.DepositDate),
		Amount:               d.Amount,
		Reference:            d.Reference,
		Concept:              d.Concept,
		Status:               string(d.Status),
		Source:               string(d.Source),
		CounterpartAccountID: d.CounterpartAccountID,
		PaymentID:            d.PaymentID,
	}
}
