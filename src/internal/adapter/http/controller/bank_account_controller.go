package controller

import (
	"net/http"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/middleware"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

// BankAccountController serves bank accounts and the postings against
// them: deposits, voids and inter-account transfers.
type BankAccountController struct {
	accounts  service_interfaces.AccountService
	deposits  service_interfaces.DepositService
	transfers service_interfaces.TransferService
}

func NewBankAccountController(
	accounts service_interfaces.AccountService,
	deposits service_interfaces.DepositService,
	transfers service_interfaces.TransferService,
) *BankAccountController {
	return &BankAccountController{accounts: accounts, deposits: deposits, transfers: transfers}
}

func (c *BankAccountController) RegisterRoutes(r chi.Router) {
	r.Route("/bank-accounts", func(r chi.Router) {
		r.Post("/", c.create)
		r.Get("/", c.list)
		r.Get("/{id}", c.get)
		r.Get("/{id}/statement", c.statement)
		r.Get("/{id}/reconcile", c.reconcile)
	})
	r.Post("/deposits", c.deposit)
	r.Post("/deposits/{id}/void", c.voidDeposit)
	r.Post("/transfers", c.transfer)
}

func (c *BankAccountController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateBankAccountRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.BankAccountResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	logRequest(r, req)

	response, err := c.accounts.CreateBankAccount(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *BankAccountController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.accounts.ListBankAccounts(r.Context())
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *BankAccountController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.BankAccountResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.accounts.GetBankAccount(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *BankAccountController) statement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.StatementResponse](w, r, start, "validation failed", err.Error())
		return
	}

	query := r.URL.Query()
	response, err := c.deposits.BankStatement(r.Context(), models.StatementRequest{
		BankAccountID: id,
		From:          query.Get("from"),
		To:            query.Get("to"),
	})
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *BankAccountController) reconcile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.ReconciliationResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.accounts.ReconcileBankAccount(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *BankAccountController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.DepositRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.DepositResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	req.SessionID = middleware.SessionIDFromContext(r.Context())
	req.OperatorID = commons.OperatorID(r.Context())
	logRequest(r, req)

	response, err := c.deposits.Deposit(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *BankAccountController) voidDeposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.DepositResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.deposits.VoidDeposit(r.Context(), id, commons.OperatorID(r.Context()))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *BankAccountController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TransferRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.TransferResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	req.OperatorID = commons.OperatorID(r.Context())
	logRequest(r, req)

	response, err := c.transfers.Transfer(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}
