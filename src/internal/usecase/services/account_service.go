package services

import (
	"context"
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

var _ service_interfaces.AccountService = (*AccountService)(nil)

const (
	entityRegister    = "register"
	entityBankAccount = "bank_account"
)

type AccountService struct {
	registerRepo    repo_interfaces.RegisterRepository
	bankAccountRepo repo_interfaces.BankAccountRepository
	ledgerRepo      repo_interfaces.LedgerRepository
}

func NewAccountService(
	registerRepo repo_interfaces.RegisterRepository,
	bankAccountRepo repo_interfaces.BankAccountRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
) *AccountService {
	return &AccountService{
		registerRepo:    registerRepo,
		bankAccountRepo: bankAccountRepo,
		ledgerRepo:      ledgerRepo,
	}
}

func (s *AccountService) CreateRegister(ctx context.Context, req models.CreateRegisterRequest) (commons.Response[models.RegisterResponse], error) {
	logger.Info("account service create register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create register validation failed", err, nil)
		return failure[models.RegisterResponse]("create register", err)
	}

	register, err := s.registerRepo.Create(ctx, domain.Register{
		Description: strings.TrimSpace(req.Description),
		Branch:      strings.TrimSpace(req.Branch),
		Balance:     decimal.Zero,
	})
	if err != nil {
		logger.Error("account service create register failed", err, logger.Fields{
			"description": req.Description,
		})
		return failure[models.RegisterResponse]("create register", err)
	}

	logger.Info("account service create register success", logger.Fields{
		"registerId": register.ID,
	})

	return commons.SuccessResponse("register created successfully", mapRegisterToResponse(register)), nil
}

func (s *AccountService) ListRegisters(ctx context.Context) (commons.Response[[]models.RegisterResponse], error) {
	logger.Info("account service list registers request", nil)

	registers, err := s.registerRepo.List(ctx)
	if err != nil {
		logger.Error("account service list registers failed", err, nil)
		return failure[[]models.RegisterResponse]("list registers", err)
	}

	resp := make([]models.RegisterResponse, 0, len(registers))
	for _, r := range registers {
		resp = append(resp, mapRegisterToResponse(r))
	}
	return commons.SuccessResponse("registers fetched successfully", resp), nil
}

func (s *AccountService) GetRegister(ctx context.Context, id int64) (commons.Response[models.RegisterResponse], error) {
	logger.Info("account service get register request", logger.Fields{"registerId": id})

	register, err := s.registerRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("account service get register failed", err, logger.Fields{"registerId": id})
		return failure[models.RegisterResponse]("get register", err)
	}

	return commons.SuccessResponse("register fetched successfully", mapRegisterToResponse(register)), nil
}

func (s *AccountService) CreateBankAccount(ctx context.Context, req models.CreateBankAccountRequest) (commons.Response[models.BankAccountResponse], error) {
	logger.Info("account service create bank account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create bank account validation failed", err, nil)
		return failure[models.BankAccountResponse]("create bank account", err)
	}

	opening := decimal.Zero
	if strings.TrimSpace(req.OpeningBalance) != "" {
		opening, _ = models.ParseAmount(req.OpeningBalance)
	}

	account, err := s.bankAccountRepo.Create(ctx, domain.BankAccount{
		Institution:    strings.TrimSpace(req.Institution),
		AccountNumber:  strings.TrimSpace(req.AccountNumber),
		Holder:         strings.TrimSpace(req.Holder),
		AccountType:    domain.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType))),
		Currency:       domain.Currency(strings.ToUpper(strings.TrimSpace(req.Currency))),
		OpeningBalance: opening.Round(2),
	})
	if err != nil {
		logger.Error("account service create bank account failed", err, logger.Fields{
			"accountNumber": req.AccountNumber,
		})
		return failure[models.BankAccountResponse]("create bank account", err)
	}

	logger.Info("account service create bank account success", logger.Fields{
		"bankAccountId": account.ID,
		"currency":      account.Currency,
	})

	return commons.SuccessResponse("bank account created successfully", mapBankAccountToResponse(account)), nil
}

func (s *AccountService) ListBankAccounts(ctx context.Context) (commons.Response[[]models.BankAccountResponse], error) {
	logger.Info("account service list bank accounts request", nil)

	accounts, err := s.bankAccountRepo.List(ctx)
	if err != nil {
		logger.Error("account service list bank accounts failed", err, nil)
		return failure[[]models.BankAccountResponse]("list bank accounts", err)
	}

	resp := make([]models.BankAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, mapBankAccountToResponse(a))
	}
	return commons.SuccessResponse("bank accounts fetched successfully", resp), nil
}

func (s *AccountService) GetBankAccount(ctx context.Context, id int64) (commons.Response[models.BankAccountResponse], error) {
	logger.Info("account service get bank account request", logger.Fields{"bankAccountId": id})

	account, err := s.bankAccountRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("account service get bank account failed", err, logger.Fields{"bankAccountId": id})
		return failure[models.BankAccountResponse]("get bank account", err)
	}

	return commons.SuccessResponse("bank account fetched successfully", mapBankAccountToResponse(account)), nil
}

// ReconcileRegister recomputes the register balance from its movement
// ledger. Every closed session nets to zero, so the sum over all movements
// must equal the stored balance.
func (s *AccountService) ReconcileRegister(ctx context.Context, id int64) (commons.Response[models.ReconciliationResponse], error) {
	logger.Info("account service reconcile register request", logger.Fields{"registerId": id})

	register, err := s.registerRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("account service reconcile register failed", err, logger.Fields{"registerId": id})
		return failure[models.ReconciliationResponse]("reconcile register", err)
	}

	movements, err := s.ledgerRepo.ListMovements(ctx, id, nil, nil)
	if err != nil {
		logger.Error("account service reconcile register movements failed", err, logger.Fields{"registerId": id})
		return failure[models.ReconciliationResponse]("reconcile register", err)
	}

	ledger := decimal.Zero
	for _, m := range movements {
		ledger = ledger.Add(m.Signed())
	}

	resp := reconciliation(entityRegister, id, register.Balance, ledger)
	if !resp.Balanced {
		logger.Warn("account service register ledger mismatch", logger.Fields{
			"registerId": id,
			"difference": resp.Difference,
		})
	}
	return commons.SuccessResponse("register reconciled successfully", resp), nil
}

// ReconcileBankAccount checks balance == opening balance + confirmed deposits.
func (s *AccountService) ReconcileBankAccount(ctx context.Context, id int64) (commons.Response[models.ReconciliationResponse], error) {
	logger.Info("account service reconcile bank account request", logger.Fields{"bankAccountId": id})

	account, err := s.bankAccountRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("account service reconcile bank account failed", err, logger.Fields{"bankAccountId": id})
		return failure[models.ReconciliationResponse]("reconcile bank account", err)
	}

	deposits, err := s.ledgerRepo.ListDeposits(ctx, id, nil, nil)
	if err != nil {
		logger.Error("account service reconcile bank account deposits failed", err, logger.Fields{"bankAccountId": id})
		return failure[models.ReconciliationResponse]("reconcile bank account", err)
	}

	ledger := account.OpeningBalance
	for _, d := range deposits {
		if d.Status == domain.DepositConfirmed {
			ledger = ledger.Add(d.Amount)
		}
	}

	resp := reconciliation(entityBankAccount, id, account.Balance, ledger)
	if !resp.Balanced {
		logger.Warn("account service bank account ledger mismatch", logger.Fields{
			"bankAccountId": id,
			"difference":    resp.Difference,
		})
	}
	return commons.SuccessResponse("bank account reconciled successfully", resp), nil
}

func reconciliation(entity string, id int64, stored, ledger decimal.Decimal) models.ReconciliationResponse {
	diff := stored.Sub(ledger)
	return models.ReconciliationResponse{
		Entity:        entity,
		ID:            id,
		StoredBalance: stored,
		LedgerBalance: ledger,
		Difference:    diff,
		Balanced:      diff.IsZero(),
	}
}

func mapRegisterToResponse(r domain.Register) models.RegisterResponse {
	return models.RegisterResponse{
		ID:               r.ID,
		Description:      r.Description,
		Branch:           r.Branch,
		Balance:          r.Balance,
		IsOpen:           r.IsOpen,
		OpenedAt:         models.FormatOptionalTime(r.OpenedAt),
		LastReconciledAt: models.FormatOptionalTime(r.LastReconciledAt),
	}
}

func mapBankAccountToResponse(a domain.BankAccount) models.BankAccountResponse {
	return models.BankAccountResponse{
		ID:             a.ID,
		Institution:    a.Institution,
		AccountNumber:  a.AccountNumber,
		Holder:         a.Holder,
		AccountType:    string(a.AccountType),
		Currency:       string(a.Currency),
		OpeningBalance: a.OpeningBalance,
		Balance:        a.Balance,
	}
}

func mapMovementToResponse(m domain.Movement) models.MovementResponse {
	return models.MovementResponse{
		ID:         m.ID,
		RegisterID: m.RegisterID,
		Kind:       string(m.Kind),
		Amount:     m.Amount,
		Concept:    m.Concept,
		OccurredAt: m.OccurredAt.Format(time.RFC3339),
		PaymentID:  m.PaymentID,
		OperatorID: m.OperatorID,
	}
}
