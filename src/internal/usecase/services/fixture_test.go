package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/memory"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/capability"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

type publishedEvent struct {
	routingKey string
	body       any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{routingKey: routingKey, body: body})
	return nil
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.routingKey)
	}
	return out
}

type fixture struct {
	store      *memory.Store
	publisher  *recordingPublisher
	tokens     *capability.SessionTokens
	params     *services.ParameterService
	audit      *services.AuditService
	accounts   *services.AccountService
	registers  *services.RegisterService
	deposits   *services.DepositService
	quotes     *services.QuoteService
	transfers  *services.TransferService
	settlement *services.SettlementService
	schedule   *services.ScheduleService
	documents  *services.DocumentService
	expenses   *services.ExpenseService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	publisher := &recordingPublisher{}
	tokens := capability.NewSessionTokens("test-signing-key", time.Hour)

	params := services.NewParameterService(store.Parameters(), decimal.RequireFromString("0.0275"))
	audit := services.NewAuditService(store.Audit(), publisher)
	quotes := services.NewQuoteService(store.Quotes())

	return &fixture{
		store:      store,
		publisher:  publisher,
		tokens:     tokens,
		params:     params,
		audit:      audit,
		accounts:   services.NewAccountService(store.Registers(), store.BankAccounts(), store.Ledger()),
		registers:  services.NewRegisterService(store.Registers(), store.Sessions(), store.Ledger(), tokens, audit),
		deposits:   services.NewDepositService(store.BankAccounts(), store.Ledger(), audit),
		quotes:     quotes,
		transfers:  services.NewTransferService(store.BankAccounts(), store.Ledger(), quotes, audit),
		settlement: services.NewSettlementService(store.Contracts(), store.Installments(), store.Ledger(), params, audit, 90, decimal.NewFromInt(50)),
		schedule:   services.NewScheduleService(store.Contracts(), store.Installments(), audit),
		documents:  services.NewDocumentService(store.Contracts(), store.Installments(), store.Payments(), params),
		expenses:   services.NewExpenseService(store.Expenses(), store.Ledger(), audit),
	}
}

func (f *fixture) openRegister(t *testing.T, description, opening string) (int64, string) {
	t.Helper()
	ctx := context.Background()

	created, err := f.accounts.CreateRegister(ctx, models.CreateRegisterRequest{Description: description, Branch: "Central"})
	if err != nil {
		t.Fatalf("expected register to be created, got %v", err)
	}
	opened, err := f.registers.OpenRegister(ctx, models.OpenRegisterRequest{
		RegisterID:    created.Data.ID,
		OpeningAmount: opening,
		OperatorID:    "cashier-1",
	})
	if err != nil {
		t.Fatalf("expected register to open, got %v", err)
	}
	return created.Data.ID, opened.Data.SessionID
}

func (f *fixture) bankAccount(t *testing.T, number, currency, opening string) int64 {
	t.Helper()

	resp, err := f.accounts.CreateBankAccount(context.Background(), models.CreateBankAccountRequest{
		Institution:    "Banco Nacional",
		AccountNumber:  number,
		Holder:         "Inmobiliaria SA",
		AccountType:    "CHECKING",
		Currency:       currency,
		OpeningBalance: opening,
	})
	if err != nil {
		t.Fatalf("expected bank account to be created, got %v", err)
	}
	return resp.Data.ID
}

func (f *fixture) contract(t *testing.T, number string, amount string, count int, firstDue string) models.ContractResponse {
	t.Helper()

	resp, err := f.schedule.CreateContract(context.Background(), models.CreateContractRequest{
		ContractNumber:    number,
		ClientName:        "Maria Gonzalez",
		ClientDocument:    "4567890",
		LotLabel:          "Manzana 3 Lote 12",
		Currency:          "PYG",
		ContractDate:      firstDue,
		FirstDueDate:      firstDue,
		TotalValue:        "36000000",
		InstallmentCount:  count,
		InstallmentAmount: amount,
	})
	if err != nil {
		t.Fatalf("expected contract to be created, got %v", err)
	}
	return *resp.Data
}

func (f *fixture) registerBalance(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	resp, err := f.accounts.GetRegister(context.Background(), id)
	if err != nil {
		t.Fatalf("expected register %d, got %v", id, err)
	}
	return resp.Data.Balance
}

func (f *fixture) accountBalance(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	resp, err := f.accounts.GetBankAccount(context.Background(), id)
	if err != nil {
		t.Fatalf("expected bank account %d, got %v", id, err)
	}
	return resp.Data.Balance
}

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(raw)
}

func assertDecimal(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("expected %s %s, got %s", label, want, got.String())
	}
}

func dateOf(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		t.Fatalf("expected valid date %q, got %v", raw, err)
	}
	return parsed
}
