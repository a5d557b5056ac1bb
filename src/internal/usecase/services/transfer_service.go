package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/events"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.TransferService = (*TransferService)(nil)

type TransferService struct {
	bankAccountRepo repo_interfaces.BankAccountRepository
	ledgerRepo      repo_interfaces.LedgerRepository
	quotes          service_interfaces.QuoteService
	audit           service_interfaces.AuditService
}

func NewTransferService(
	bankAccountRepo repo_interfaces.BankAccountRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
	quotes service_interfaces.QuoteService,
	audit service_interfaces.AuditService,
) *TransferService {
	return &TransferService{
		bankAccountRepo: bankAccountRepo,
		ledgerRepo:      ledgerRepo,
		quotes:          quotes,
		audit:           audit,
	}
}

var transferRefCounter uint32

// Transfer moves funds between two bank accounts, converting with the day's
// quote when the currencies differ.
func (s *TransferService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer service transfer validation failed", err, nil)
		return failure[models.TransferResponse]("transfer funds", err)
	}

	amount, _ := models.ParseAmount(req.Amount)
	amount = amount.Round(2)
	transferDate, _ := models.ParseDate(req.TransferDate, time.Now().UTC())
	transferDate = domain.CivilDate(transferDate)

	source, err := s.bankAccountRepo.GetByID(ctx, req.SourceAccountID)
	if err != nil {
		logger.Error("transfer service get source account failed", err, logger.Fields{
			"sourceAccountId": req.SourceAccountID,
		})
		return failure[models.TransferResponse]("transfer funds", fmt.Errorf("source account %d: %w", req.SourceAccountID, err))
	}
	destination, err := s.bankAccountRepo.GetByID(ctx, req.DestinationAccountID)
	if err != nil {
		logger.Error("transfer service get destination account failed", err, logger.Fields{
			"destinationAccountId": req.DestinationAccountID,
		})
		return failure[models.TransferResponse]("transfer funds", fmt.Errorf("destination account %d: %w", req.DestinationAccountID, err))
	}

	if source.Balance.LessThan(amount) {
		err := fmt.Errorf("account %d has %s, needs %s: %w", source.ID, source.Balance.StringFixed(2), amount.StringFixed(2), commons.ErrInsufficientBalance)
		logger.Error("transfer service insufficient balance", err, logger.Fields{
			"sourceAccountId": source.ID,
		})
		return failure[models.TransferResponse]("transfer funds", err)
	}

	conv, err := s.quotes.ConvertAmount(ctx, amount, source.Currency, destination.Currency, transferDate)
	if err != nil {
		logger.Error("transfer service convert amount failed", err, logger.Fields{
			"sourceCurrency":      source.Currency,
			"destinationCurrency": destination.Currency,
			"transferDate":        models.FormatDate(transferDate),
		})
		return failure[models.TransferResponse]("transfer funds", err)
	}

	concept := strings.TrimSpace(req.Concept)
	if concept == "" {
		concept = "Transferencia"
	}
	reference := generateTransferReference()

	result, err := s.ledgerRepo.Transfer(ctx, domain.TransferPosting{
		SourceAccountID:      source.ID,
		DestinationAccountID: destination.ID,
		DebitAmount:          amount,
		CreditAmount:         conv.Converted,
		TransferDate:         transferDate,
		SourceConcept:        fmt.Sprintf("%s a cuenta %s", concept, destination.AccountNumber),
		DestinationConcept:   fmt.Sprintf("%s desde cuenta %s", concept, source.AccountNumber),
		Reference:            reference,
		OperatorID:           strings.TrimSpace(req.OperatorID),
	})
	if err != nil {
		logger.Error("transfer service posting failed", err, logger.Fields{
			"sourceAccountId":      source.ID,
			"destinationAccountId": destination.ID,
			"reference":            reference,
		})
		return failure[models.TransferResponse]("transfer funds", err)
	}
	result.Rate = conv.Rate
	result.RateKind = conv.RateKind
	result.QuoteDate = conv.QuoteDate

	s.audit.Record(ctx, domain.AuditEntry{
		OperatorID: strings.TrimSpace(req.OperatorID),
		Action:     "TRANSFER",
		Entity:     entityBankAccount,
		Detail: fmt.Sprintf("%s %s from account %d to account %d as %s %s (ref %s)",
			amount.StringFixed(2), source.Currency, source.ID, destination.ID,
			result.CreditAmount.StringFixed(2), destination.Currency, reference),
	})
	s.audit.Publish(ctx, events.RoutingTransferCompleted, events.LedgerEvent{
		Type:       events.RoutingTransferCompleted,
		EntityID:   reference,
		Amount:     amount,
		Currency:   string(source.Currency),
		OperatorID: strings.TrimSpace(req.OperatorID),
		Detail:     strconv.FormatInt(source.ID, 10) + "->" + strconv.FormatInt(destination.ID, 10),
	})

	logger.Info("transfer service transfer success", logger.Fields{
		"reference":    reference,
		"debitAmount":  result.DebitAmount,
		"creditAmount": result.CreditAmount,
		"rate":         result.Rate,
	})

	return commons.SuccessResponse("transfer completed successfully", mapTransferToResponse(result, transferDate)), nil
}

func mapTransferToResponse(r domain.TransferResult, transferDate time.Time) models.TransferResponse {
	resp := models.TransferResponse{
		SourceAccountID:      r.Source.ID,
		DestinationAccountID: r.Destination.ID,
		DebitAmount:          r.DebitAmount,
		DebitCurrency:        string(r.Source.Currency),
		CreditAmount:         r.CreditAmount,
		CreditCurrency:       string(r.Destination.Currency),
		Rate:                 r.Rate,
		RateKind:             r.RateKind,
		DebitDepositID:       r.DebitDeposit.ID,
		CreditDepositID:      r.CreditDeposit.ID,
		TransferDate:         models.FormatDate(transferDate),
	}
	if r.QuoteDate != nil {
		resp.QuoteDate = models.FormatDate(*r.QuoteDate)
	}
	return resp
}

func generateTransferReference() string {
	now := time.Now().UTC()
	counter := atomic.AddUint32(&transferRefCounter, 1) % 10000
	return "TRF" + now.Format("20060102150405") + fmt.Sprintf("%04d", counter)
}
