package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

func TestExternalDepositCreditsAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	accountID := f.bankAccount(t, "001-1", "PYG", "1000000")

	resp, err := f.deposits.Deposit(ctx, models.DepositRequest{
		BankAccountID: accountID,
		Amount:        "250000",
		DepositDate:   "2024-03-01",
		Reference:     "BOL-77",
	})
	if err != nil {
		t.Fatalf("expected deposit, got %v", err)
	}
	if resp.Data.Source != string(domain.DepositSourceExternal) || resp.Data.Status != string(domain.DepositConfirmed) {
		t.Fatalf("expected confirmed EXTERNAL deposit, got %+v", resp.Data)
	}
	assertDecimal(t, "bank balance", f.accountBalance(t, accountID), "1250000")

	reconciled, err := f.accounts.ReconcileBankAccount(ctx, accountID)
	if err != nil {
		t.Fatalf("expected reconciliation, got %v", err)
	}
	if !reconciled.Data.Balanced {
		t.Fatalf("expected balanced account, got %+v", reconciled.Data)
	}
}

func TestDepositValidation(t *testing.T) {
	f := newFixture(t)
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	tests := []struct {
		name string
		req  models.DepositRequest
		want error
	}{
		{name: "zero amount", req: models.DepositRequest{BankAccountID: accountID, Amount: "0"}, want: commons.ErrInvalidAmount},
		{name: "negative amount", req: models.DepositRequest{BankAccountID: accountID, Amount: "-10"}, want: commons.ErrInvalidAmount},
		{name: "sub-cent amount", req: models.DepositRequest{BankAccountID: accountID, Amount: "0.004"}, want: commons.ErrInvalidAmount},
		{name: "unknown account", req: models.DepositRequest{BankAccountID: 404, Amount: "10"}, want: commons.ErrRecordNotFound},
		{name: "unknown source", req: models.DepositRequest{BankAccountID: accountID, Amount: "10", Source: "SETTLEMENT"}, want: commons.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.deposits.Deposit(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	assertDecimal(t, "bank balance", f.accountBalance(t, accountID), "0")
}

func TestRegisterDepositMovesCashToBank(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registerID, sessionID := f.openRegister(t, "Caja 1", "100000")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	if _, err := f.deposits.Deposit(ctx, models.DepositRequest{
		BankAccountID: accountID,
		Amount:        "40000",
		Source:        "REGISTER",
		SessionID:     sessionID,
	}); err != nil {
		t.Fatalf("expected register deposit, got %v", err)
	}

	assertDecimal(t, "register balance", f.registerBalance(t, registerID), "60000")
	assertDecimal(t, "bank balance", f.accountBalance(t, accountID), "40000")

	count, _ := f.registers.CashCount(ctx, models.CashCountRequest{RegisterID: registerID})
	last := count.Data.Movements[len(count.Data.Movements)-1]
	if last.Kind != string(domain.MovementEgress) {
		t.Fatalf("expected EGRESS movement, got %s", last.Kind)
	}
}

func TestRegisterDepositIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registerID, sessionID := f.openRegister(t, "Caja 1", "100000")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	_, err := f.deposits.Deposit(ctx, models.DepositRequest{BankAccountID: accountID, Amount: "40000", Source: "REGISTER"})
	if !errors.Is(err, commons.ErrRegisterNotOpen) {
		t.Fatalf("expected ErrRegisterNotOpen, got %v", err)
	}

	f.store.FailPostingsAfter(3)
	_, err = f.deposits.Deposit(ctx, models.DepositRequest{BankAccountID: accountID, Amount: "40000", Source: "REGISTER", SessionID: sessionID})
	f.store.FailPostingsAfter(0)
	if !errors.Is(err, commons.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}

	assertDecimal(t, "register balance", f.registerBalance(t, registerID), "100000")
	assertDecimal(t, "bank balance", f.accountBalance(t, accountID), "0")
}

func TestVoidDepositReversesBalanceOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	deposit, err := f.deposits.Deposit(ctx, models.DepositRequest{BankAccountID: accountID, Amount: "75000"})
	if err != nil {
		t.Fatalf("expected deposit, got %v", err)
	}

	voided, err := f.deposits.VoidDeposit(ctx, deposit.Data.ID, "supervisor")
	if err != nil {
		t.Fatalf("expected void, got %v", err)
	}
	if voided.Data.Status != string(domain.DepositVoided) {
		t.Fatalf("expected VOIDED, got %s", voided.Data.Status)
	}
	assertDecimal(t, "bank balance", f.accountBalance(t, accountID), "0")

	if _, err := f.deposits.VoidDeposit(ctx, deposit.Data.ID, "supervisor"); !errors.Is(err, commons.ErrAlreadyVoided) {
		t.Fatalf("expected ErrAlreadyVoided, got %v", err)
	}
	assertDecimal(t, "bank balance", f.accountBalance(t, accountID), "0")

	reconciled, _ := f.accounts.ReconcileBankAccount(ctx, accountID)
	if !reconciled.Data.Balanced {
		t.Fatalf("expected balanced account after void, got %+v", reconciled.Data)
	}
}

func TestBankStatementTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	accountID := f.bankAccount(t, "001-1", "PYG", "0")
	for _, d := range []struct{ amount, date string }{
		{"100000", "2024-03-01"},
		{"50000", "2024-03-10"},
		{"25000", "2024-04-01"},
	} {
		if _, err := f.deposits.Deposit(ctx, models.DepositRequest{BankAccountID: accountID, Amount: d.amount, DepositDate: d.date}); err != nil {
			t.Fatalf("expected deposit, got %v", err)
		}
	}

	resp, err := f.deposits.BankStatement(ctx, models.StatementRequest{BankAccountID: accountID, From: "2024-03-01", To: "2024-03-31"})
	if err != nil {
		t.Fatalf("expected statement, got %v", err)
	}
	if len(resp.Data.Deposits) != 2 {
		t.Fatalf("expected 2 deposits in March, got %d", len(resp.Data.Deposits))
	}
	assertDecimal(t, "total in", resp.Data.TotalIn, "150000")
}
