package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/cache"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/events"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/controller"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/middleware"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/router"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/memory"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/capability"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

const (
	testChannelID  = "BackOffice"
	testChannelKey = "secret"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	tokens := capability.NewSessionTokens("router-test-key", time.Hour)
	audit := services.NewAuditService(store.Audit(), &events.EventProducerFallback{})
	params := services.NewParameterService(store.Parameters(), decimal.RequireFromString("0.0275"))
	quotes := services.NewQuoteService(store.Quotes())
	accounts := services.NewAccountService(store.Registers(), store.BankAccounts(), store.Ledger())
	registers := services.NewRegisterService(store.Registers(), store.Sessions(), store.Ledger(), tokens, audit)
	deposits := services.NewDepositService(store.BankAccounts(), store.Ledger(), audit)
	transfers := services.NewTransferService(store.BankAccounts(), store.Ledger(), quotes, audit)
	schedule := services.NewScheduleService(store.Contracts(), store.Installments(), audit)
	settlements := services.NewSettlementService(store.Contracts(), store.Installments(), store.Ledger(), params, audit, 90, decimal.NewFromInt(50))
	documents := services.NewDocumentService(store.Contracts(), store.Installments(), store.Payments(), params)
	expenses := services.NewExpenseService(store.Expenses(), store.Ledger(), audit)

	handler := router.New(router.Options{
		AllowedOrigins: []string{"http://*"},
		Auth:           middleware.BasicAuth(testChannelID, testChannelKey, ""),
		Session:        middleware.RegisterSession(tokens),
		Idempotency:    middleware.Idempotency(cache.NewMemoryIdempotencyStore(), time.Hour),
	},
		controller.NewRegisterController(accounts, registers),
		controller.NewBankAccountController(accounts, deposits, transfers),
		controller.NewContractController(schedule, settlements),
		controller.NewQuoteController(quotes),
		controller.NewAdminController(params, audit),
		controller.NewDocumentController(documents),
		controller.NewExpenseController(expenses),
	)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func call(t *testing.T, server *httptest.Server, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("expected body to encode, got %v", err)
		}
	}

	req, err := http.NewRequest(method, server.URL+path, &payload)
	if err != nil {
		t.Fatalf("expected request, got %v", err)
	}
	req.SetBasicAuth(testChannelID, testChannelKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.OperatorHeader, "cashier-1")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("expected response, got %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) commons.Response[T] {
	t.Helper()
	var out commons.Response[T]
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("expected JSON response, got %v", err)
	}
	return out
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d for %s %s, got %d", want, resp.Request.Method, resp.Request.URL.Path, resp.StatusCode)
	}
}

func createContract(t *testing.T, server *httptest.Server, number string) models.ContractResponse {
	t.Helper()

	resp := call(t, server, http.MethodPost, "/contracts", models.CreateContractRequest{
		ContractNumber:    number,
		ClientName:        "Maria Gonzalez",
		ClientDocument:    "4567890",
		LotLabel:          "Manzana 3 Lote 12",
		Currency:          "PYG",
		ContractDate:      "2024-01-10",
		FirstDueDate:      "2024-01-10",
		TotalValue:        "12000000",
		InstallmentCount:  12,
		InstallmentAmount: "1000000",
	}, nil)
	expectStatus(t, resp, http.StatusCreated)
	contract := decode[models.ContractResponse](t, resp)
	if len(contract.Data.Installments) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(contract.Data.Installments))
	}
	return *contract.Data
}

func TestHealthAndSwaggerArePublic(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/health", "/swagger/openapi.json"} {
		resp, err := server.Client().Get(server.URL + path)
		if err != nil {
			t.Fatalf("expected response, got %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, resp.StatusCode)
		}
	}
}

func TestLedgerRoutesRequireAuth(t *testing.T) {
	server := newTestServer(t)

	resp, err := server.Client().Get(server.URL + "/registers")
	if err != nil {
		t.Fatalf("expected response, got %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCashSettlementFlow(t *testing.T) {
	server := newTestServer(t)

	created := call(t, server, http.MethodPost, "/registers", models.CreateRegisterRequest{Description: "Caja Principal", Branch: "Central"}, nil)
	expectStatus(t, created, http.StatusCreated)
	register := decode[models.RegisterResponse](t, created)

	opened := call(t, server, http.MethodPost, fmt.Sprintf("/registers/%d/open", register.Data.ID), map[string]string{"openingAmount": "500000"}, nil)
	expectStatus(t, opened, http.StatusCreated)
	session := decode[models.OpenRegisterResponse](t, opened)
	if session.Data.SessionToken == "" {
		t.Fatalf("expected session token")
	}

	contract := createContract(t, server, "C-001")
	first := contract.Installments[0]

	sessionHeaders := map[string]string{
		middleware.SessionHeader:     session.Data.SessionToken,
		middleware.IdempotencyHeader: "pay-first-installment",
	}
	payment := models.SettleInstallmentRequest{
		InstallmentID:  first.ID,
		AmountReceived: "1000000",
		PaymentDate:    first.DueDate,
		Method:         "CASH",
	}

	settled := call(t, server, http.MethodPost, "/payments", payment, sessionHeaders)
	expectStatus(t, settled, http.StatusCreated)
	settledBody := decode[models.PaymentResponse](t, settled)

	replayed := call(t, server, http.MethodPost, "/payments", payment, sessionHeaders)
	expectStatus(t, replayed, http.StatusCreated)
	if replayed.Header.Get(middleware.ReplayedHeader) != "true" {
		t.Fatalf("expected replayed response header")
	}
	replayedBody := decode[models.PaymentResponse](t, replayed)
	if replayedBody.Data.ID != settledBody.Data.ID {
		t.Fatalf("expected replay of payment %d, got %d", settledBody.Data.ID, replayedBody.Data.ID)
	}

	again := call(t, server, http.MethodPost, "/payments", payment, map[string]string{middleware.SessionHeader: session.Data.SessionToken})
	expectStatus(t, again, http.StatusConflict)

	got := call(t, server, http.MethodGet, fmt.Sprintf("/registers/%d", register.Data.ID), nil, nil)
	expectStatus(t, got, http.StatusOK)
	balance := decode[models.RegisterResponse](t, got)
	if !balance.Data.Balance.Equal(decimal.RequireFromString("1500000")) {
		t.Fatalf("expected register balance 1500000, got %s", balance.Data.Balance)
	}
}

func TestCashSettlementWithoutSessionIsRejected(t *testing.T) {
	server := newTestServer(t)

	contract := createContract(t, server, "C-002")
	first := contract.Installments[0]

	resp := call(t, server, http.MethodPost, "/payments", models.SettleInstallmentRequest{
		InstallmentID:  first.ID,
		AmountReceived: "1000000",
		PaymentDate:    first.DueDate,
		Method:         "CASH",
	}, nil)
	expectStatus(t, resp, http.StatusConflict)
}

func TestForgedSessionTokenIsUnauthorized(t *testing.T) {
	server := newTestServer(t)

	resp := call(t, server, http.MethodGet, "/registers/session", nil, map[string]string{middleware.SessionHeader: "not-a-token"})
	expectStatus(t, resp, http.StatusUnauthorized)
}

func TestCashExpensePaymentFlow(t *testing.T) {
	server := newTestServer(t)

	created := call(t, server, http.MethodPost, "/registers", models.CreateRegisterRequest{Description: "Caja Gastos", Branch: "Central"}, nil)
	expectStatus(t, created, http.StatusCreated)
	register := decode[models.RegisterResponse](t, created)

	opened := call(t, server, http.MethodPost, fmt.Sprintf("/registers/%d/open", register.Data.ID), map[string]string{"openingAmount": "100000"}, nil)
	expectStatus(t, opened, http.StatusCreated)
	session := decode[models.OpenRegisterResponse](t, opened)
	sessionHeaders := map[string]string{middleware.SessionHeader: session.Data.SessionToken}

	small := call(t, server, http.MethodPost, "/expenses", models.CreateExpenseRequest{
		Supplier: "Ferreteria Central", Category: "Mantenimiento", InvoiceNumber: "001-001-0000123",
		InvoiceDate: "2024-03-01", Amount: "80000",
	}, nil)
	expectStatus(t, small, http.StatusCreated)
	smallExpense := decode[models.ExpenseResponse](t, small)

	large := call(t, server, http.MethodPost, "/expenses", models.CreateExpenseRequest{
		Supplier: "ANDE", Category: "Servicios", InvoiceDate: "2024-03-02", Amount: "250000",
	}, nil)
	expectStatus(t, large, http.StatusCreated)
	largeExpense := decode[models.ExpenseResponse](t, large)

	short := call(t, server, http.MethodPost, fmt.Sprintf("/expenses/%d/pay", largeExpense.Data.ID), models.PayExpenseRequest{Method: "CASH"}, sessionHeaders)
	expectStatus(t, short, http.StatusUnprocessableEntity)

	paid := call(t, server, http.MethodPost, fmt.Sprintf("/expenses/%d/pay", smallExpense.Data.ID), models.PayExpenseRequest{Method: "CASH", PaidDate: "2024-03-05"}, sessionHeaders)
	expectStatus(t, paid, http.StatusOK)
	paidBody := decode[models.ExpenseResponse](t, paid)
	if paidBody.Data.Status != "PAID" || paidBody.Data.PaidDate != "2024-03-05" {
		t.Fatalf("expected PAID on 2024-03-05, got %s on %q", paidBody.Data.Status, paidBody.Data.PaidDate)
	}

	again := call(t, server, http.MethodPost, fmt.Sprintf("/expenses/%d/pay", smallExpense.Data.ID), models.PayExpenseRequest{Method: "CASH"}, sessionHeaders)
	expectStatus(t, again, http.StatusConflict)

	got := call(t, server, http.MethodGet, fmt.Sprintf("/registers/%d", register.Data.ID), nil, nil)
	expectStatus(t, got, http.StatusOK)
	balance := decode[models.RegisterResponse](t, got)
	if !balance.Data.Balance.Equal(decimal.RequireFromString("20000")) {
		t.Fatalf("expected register balance 20000, got %s", balance.Data.Balance)
	}
}
