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

var _ service_interfaces.ExpenseService = (*ExpenseService)(nil)

type ExpenseService struct {
	expenseRepo repo_interfaces.ExpenseRepository
	ledgerRepo  repo_interfaces.LedgerRepository
	audit       service_interfaces.AuditService
}

func NewExpenseService(
	expenseRepo repo_interfaces.ExpenseRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
	audit service_interfaces.AuditService,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		ledgerRepo:  ledgerRepo,
		audit:       audit,
	}
}

func (s *ExpenseService) Create(ctx context.Context, req models.CreateExpenseRequest) (commons.Response[models.ExpenseResponse], error) {
	logger.Info("expense service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("expense service create validation failed", err, nil)
		return failure[models.ExpenseResponse]("create expense", err)
	}

	amount, _ := models.ParseAmount(req.Amount)
	invoiceDate, _ := models.ParseDate(req.InvoiceDate, time.Now().UTC())

	expense, err := s.expenseRepo.Create(ctx, domain.Expense{
		Supplier:      strings.TrimSpace(req.Supplier),
		Category:      strings.TrimSpace(req.Category),
		Detail:        strings.TrimSpace(req.Detail),
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		InvoiceDate:   invoiceDate,
		Amount:        amount.Round(2),
		OperatorID:    req.OperatorID,
	})
	if err != nil {
		logger.Error("expense service create failed", err, nil)
		return failure[models.ExpenseResponse]("create expense", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		OperatorID: req.OperatorID,
		Action:     "CREATE",
		Entity:     "expense",
		Detail:     fmt.Sprintf("expense %d from %s registered for %s", expense.ID, expense.Supplier, expense.Amount.StringFixed(2)),
	})

	logger.Info("expense service create success", logger.Fields{"expenseId": expense.ID})
	return commons.SuccessResponse("expense created successfully", mapExpenseToResponse(expense)), nil
}

func (s *ExpenseService) Get(ctx context.Context, expenseID int64) (commons.Response[models.ExpenseResponse], error) {
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		logger.Error("expense service get failed", err, logger.Fields{"expenseId": expenseID})
		return failure[models.ExpenseResponse]("get expense", err)
	}
	return commons.SuccessResponse("expense fetched successfully", mapExpenseToResponse(expense)), nil
}

func (s *ExpenseService) List(ctx context.Context) (commons.Response[[]models.ExpenseResponse], error) {
	expenses, err := s.expenseRepo.List(ctx)
	if err != nil {
		logger.Error("expense service list failed", err, nil)
		return failure[[]models.ExpenseResponse]("list expenses", err)
	}

	resp := make([]models.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, mapExpenseToResponse(e))
	}
	return commons.SuccessResponse("expenses fetched successfully", resp), nil
}

// Void cancels a pending expense. Paid expenses stay paid.
func (s *ExpenseService) Void(ctx context.Context, expenseID int64, operatorID string) (commons.Response[models.ExpenseResponse], error) {
	logger.Info("expense service void request", logger.Fields{"expenseId": expenseID})

	if expenseID <= 0 {
		return failure[models.ExpenseResponse]("void expense", commons.NewValidationError("expenseId is required"))
	}

	expense, err := s.expenseRepo.Void(ctx, expenseID)
	if err != nil {
		logger.Error("expense service void failed", err, logger.Fields{"expenseId": expenseID})
		return failure[models.ExpenseResponse]("void expense", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		OperatorID: operatorID,
		Action:     "VOID",
		Entity:     "expense",
		Detail:     fmt.Sprintf("expense %d voided", expense.ID),
	})

	return commons.SuccessResponse("expense voided successfully", mapExpenseToResponse(expense)), nil
}

// Pay settles a pending expense in full. CASH takes the money out of the
// caller's open register; other methods debit the given bank account.
func (s *ExpenseService) Pay(ctx context.Context, req models.PayExpenseRequest) (commons.Response[models.ExpenseResponse], error) {
	logger.Info("expense service pay request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("expense service pay validation failed", err, nil)
		return failure[models.ExpenseResponse]("pay expense", err)
	}

	expense, err := s.expenseRepo.GetByID(ctx, req.ExpenseID)
	if err != nil {
		logger.Error("expense service pay get expense failed", err, logger.Fields{"expenseId": req.ExpenseID})
		return failure[models.ExpenseResponse]("pay expense", err)
	}

	method := domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.Method)))
	paidDate, _ := models.ParseDate(req.PaidDate, time.Now().UTC())
	posting := domain.ExpensePaymentPosting{
		ExpenseID:       expense.ID,
		Method:          method,
		SessionID:       req.SessionID,
		PaidDate:        paidDate,
		Reference:       strings.TrimSpace(req.Reference),
		MovementConcept: "Pago Gasto #" + expense.PaymentLabel(),
		DepositConcept:  "Pago Gasto #" + strconv.FormatInt(expense.ID, 10),
		OperatorID:      req.OperatorID,
	}
	if method != domain.PaymentCash {
		posting.BankAccountID = req.BankAccountID
	}

	paid, err := s.ledgerRepo.PayExpense(ctx, posting)
	if err != nil {
		logger.Error("expense service pay failed", err, logger.Fields{
			"expenseId": expense.ID,
			"method":    method,
		})
		return failure[models.ExpenseResponse]("pay expense", err)
	}

	s.audit.Record(ctx, domain.AuditEntry{
		OperatorID: req.OperatorID,
		Action:     "PAY_EXPENSE",
		Entity:     "expense",
		Detail:     fmt.Sprintf("expense %d paid for %s via %s", paid.ID, paid.Amount.StringFixed(2), method),
	})
	s.audit.Publish(ctx, events.RoutingExpensePaid, events.LedgerEvent{
		Type:       events.RoutingExpensePaid,
		EntityID:   strconv.FormatInt(paid.ID, 10),
		Amount:     paid.Amount,
		OperatorID: req.OperatorID,
		Detail:     string(method),
	})

	logger.Info("expense service pay success", logger.Fields{"expenseId": paid.ID})
	return commons.SuccessResponse("expense paid successfully", mapExpenseToResponse(paid)), nil
}

func mapExpenseToResponse(e domain.Expense) models.ExpenseResponse {
	resp := models.ExpenseResponse{
		ID:            e.ID,
		Supplier:      e.Supplier,
		Category:      e.Category,
		Detail:        e.Detail,
		InvoiceNumber: e.InvoiceNumber,
		InvoiceDate:   models.FormatDate(e.InvoiceDate),
		Amount:        e.Amount,
		Status:        string(e.Status),
		PaymentMethod: string(e.PaymentMethod),
		BankAccountID: e.BankAccountID,
	}
	if e.PaidDate != nil {
		resp.PaidDate = models.FormatDate(*e.PaidDate)
	}
	return resp
}
