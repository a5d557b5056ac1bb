package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/events"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

func bankSettle(installmentID, bankAccountID int64, amount, date string) models.SettleInstallmentRequest {
	return models.SettleInstallmentRequest{
		InstallmentID:  installmentID,
		AmountReceived: amount,
		PaymentDate:    date,
		Method:         "BANK_TRANSFER",
		BankAccountID:  &bankAccountID,
		Reference:      "TRX-1",
		OperatorID:     "cashier-1",
	}
}

func TestSettleAppliesLateFeeAfterGracePeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 12, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	// 2024-01-01 to 2024-04-05 is 95 days: 300000 x 0.0275 x 95 = 783750.
	resp, err := f.settlement.Settle(ctx, bankSettle(contract.Installments[0].ID, accountID, "1083700", "2024-04-05"))
	if err != nil {
		t.Fatalf("expected settlement within tolerance to pass, got %v", err)
	}
	if resp.Data.DaysOverdue != 95 {
		t.Fatalf("expected 95 days overdue, got %d", resp.Data.DaysOverdue)
	}
	assertDecimal(t, "late fee", resp.Data.LateFee, "783750")
	assertDecimal(t, "required amount", resp.Data.RequiredAmount, "1083750")
	if !strings.Contains(resp.Data.Observations, "783750.00") {
		t.Fatalf("expected late fee note in observations, got %q", resp.Data.Observations)
	}

	assertDecimal(t, "bank balance", f.accountBalance(t, accountID), "1083700")

	statement, err := f.deposits.BankStatement(ctx, models.StatementRequest{BankAccountID: accountID})
	if err != nil {
		t.Fatalf("expected statement, got %v", err)
	}
	if len(statement.Data.Deposits) != 1 || statement.Data.Deposits[0].Source != string(domain.DepositSourceSettlement) {
		t.Fatalf("expected one SETTLEMENT deposit, got %+v", statement.Data.Deposits)
	}
	if statement.Data.Deposits[0].PaymentID == nil || *statement.Data.Deposits[0].PaymentID != resp.Data.ID {
		t.Fatalf("expected deposit linked to payment %d", resp.Data.ID)
	}

	installments, _ := f.schedule.ListInstallments(ctx, contract.ID)
	first := (*installments.Data)[0]
	if first.Status != string(domain.InstallmentPaid) {
		t.Fatalf("expected installment PAID, got %s", first.Status)
	}
	if first.PaidAmount == nil || !first.PaidAmount.Equal(dec(t, "1083700")) {
		t.Fatalf("expected paid amount 1083700, got %v", first.PaidAmount)
	}
}

func TestSettleWithinGracePeriodHasNoLateFee(t *testing.T) {
	f := newFixture(t)
	contract := f.contract(t, "C-001", "300000", 3, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	// 90 days late is still inside the grace period.
	resp, err := f.settlement.Settle(context.Background(), bankSettle(contract.Installments[0].ID, accountID, "300000", "2024-03-31"))
	if err != nil {
		t.Fatalf("expected settlement, got %v", err)
	}
	if resp.Data.DaysOverdue != 90 {
		t.Fatalf("expected 90 days overdue, got %d", resp.Data.DaysOverdue)
	}
	assertDecimal(t, "late fee", resp.Data.LateFee, "0")
}

func TestSettleRejectsAmountBelowTolerance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 3, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	_, err := f.settlement.Settle(ctx, bankSettle(contract.Installments[0].ID, accountID, "1083699", "2024-04-05"))
	if !errors.Is(err, commons.ErrInsufficientAmount) {
		t.Fatalf("expected ErrInsufficientAmount, got %v", err)
	}

	assertDecimal(t, "bank balance", f.accountBalance(t, accountID), "0")
	installments, _ := f.schedule.ListInstallments(ctx, contract.ID)
	if (*installments.Data)[0].Status != string(domain.InstallmentPending) {
		t.Fatalf("expected installment to stay PENDING, got %s", (*installments.Data)[0].Status)
	}
}

func TestSettleTwiceFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 3, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")
	req := bankSettle(contract.Installments[0].ID, accountID, "300000", "2024-01-01")

	if _, err := f.settlement.Settle(ctx, req); err != nil {
		t.Fatalf("expected first settlement to pass, got %v", err)
	}
	resp, err := f.settlement.Settle(ctx, req)
	if !errors.Is(err, commons.ErrAlreadySettled) {
		t.Fatalf("expected ErrAlreadySettled, got %v", err)
	}
	if resp.Success {
		t.Fatalf("expected failed response envelope")
	}
	assertDecimal(t, "bank balance", f.accountBalance(t, accountID), "300000")
}

func TestSettleUnknownInstallment(t *testing.T) {
	f := newFixture(t)
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	_, err := f.settlement.Settle(context.Background(), bankSettle(999, accountID, "300000", "2024-01-01"))
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestSettleCashRequiresOpenRegister(t *testing.T) {
	f := newFixture(t)
	contract := f.contract(t, "C-001", "300000", 3, "2024-01-01")

	_, err := f.settlement.Settle(context.Background(), models.SettleInstallmentRequest{
		InstallmentID:  contract.Installments[0].ID,
		AmountReceived: "300000",
		PaymentDate:    "2024-01-01",
		Method:         "CASH",
	})
	if !errors.Is(err, commons.ErrRegisterNotOpen) {
		t.Fatalf("expected ErrRegisterNotOpen, got %v", err)
	}

	_, err = f.settlement.Settle(context.Background(), models.SettleInstallmentRequest{
		InstallmentID:  contract.Installments[0].ID,
		AmountReceived: "300000",
		PaymentDate:    "2024-01-01",
		Method:         "CASH",
		SessionID:      "unknown-session",
	})
	if !errors.Is(err, commons.ErrRegisterNotOpen) {
		t.Fatalf("expected ErrRegisterNotOpen for an unknown session, got %v", err)
	}
}

func TestSettleCashPostsRegisterMovement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registerID, sessionID := f.openRegister(t, "Caja 1", "100000")
	contract := f.contract(t, "C-001", "300000", 3, "2024-01-01")

	resp, err := f.settlement.Settle(ctx, models.SettleInstallmentRequest{
		InstallmentID:  contract.Installments[0].ID,
		AmountReceived: "300000",
		PaymentDate:    "2024-01-10",
		Method:         "CASH",
		SessionID:      sessionID,
		OperatorID:     "cashier-1",
	})
	if err != nil {
		t.Fatalf("expected cash settlement, got %v", err)
	}

	assertDecimal(t, "register balance", f.registerBalance(t, registerID), "400000")

	count, err := f.registers.CashCount(ctx, models.CashCountRequest{RegisterID: registerID})
	if err != nil {
		t.Fatalf("expected cash count, got %v", err)
	}
	last := count.Data.Movements[len(count.Data.Movements)-1]
	if last.Kind != string(domain.MovementIngress) || last.PaymentID == nil || *last.PaymentID != resp.Data.ID {
		t.Fatalf("expected INGRESS movement linked to payment, got %+v", last)
	}
	if last.Concept != "Cobro cuota 1 - Maria Gonzalez" {
		t.Fatalf("expected settlement concept, got %q", last.Concept)
	}

	reconciled, _ := f.accounts.ReconcileRegister(ctx, registerID)
	if !reconciled.Data.Balanced {
		t.Fatalf("expected register ledger to reconcile, got %+v", reconciled.Data)
	}
}

func TestSettleRollsBackOnStorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registerID, sessionID := f.openRegister(t, "Caja 1", "100000")
	contract := f.contract(t, "C-001", "300000", 3, "2024-01-01")

	f.store.FailPostingsAfter(2)
	_, err := f.settlement.Settle(ctx, models.SettleInstallmentRequest{
		InstallmentID:  contract.Installments[0].ID,
		AmountReceived: "300000",
		PaymentDate:    "2024-01-10",
		Method:         "CASH",
		SessionID:      sessionID,
	})
	f.store.FailPostingsAfter(0)
	if !errors.Is(err, commons.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}

	assertDecimal(t, "register balance", f.registerBalance(t, registerID), "100000")
	installments, _ := f.schedule.ListInstallments(ctx, contract.ID)
	if (*installments.Data)[0].Status != string(domain.InstallmentPending) {
		t.Fatalf("expected installment to stay PENDING, got %s", (*installments.Data)[0].Status)
	}
	statement, _ := f.documents.AccountStatement(ctx, "4567890")
	if len(statement.Data.Contracts[0].Payments) != 0 {
		t.Fatalf("expected no payment rows, got %d", len(statement.Data.Contracts[0].Payments))
	}
}

func TestSettleOverdueInstallmentAfterOverdueJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 3, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	marked, err := f.schedule.MarkOverdue(ctx, dateOf(t, "2024-02-15"))
	if err != nil || marked != 2 {
		t.Fatalf("expected 2 installments marked overdue, got %d (%v)", marked, err)
	}

	if _, err := f.settlement.Settle(ctx, bankSettle(contract.Installments[0].ID, accountID, "300000", "2024-02-15")); err != nil {
		t.Fatalf("expected overdue installment to settle, got %v", err)
	}
}

func TestSettleServiceChargeNeverAccruesLateFee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 1, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	charge, err := f.schedule.AddServiceCharge(ctx, models.ServiceChargeRequest{
		ContractID:  contract.ID,
		Amount:      "50000",
		DueDate:     "2024-01-01",
		Description: "Mensura",
	})
	if err != nil {
		t.Fatalf("expected service charge, got %v", err)
	}

	resp, err := f.settlement.Settle(ctx, bankSettle(charge.Data.ID, accountID, "50000", "2024-12-31"))
	if err != nil {
		t.Fatalf("expected service charge settlement, got %v", err)
	}
	assertDecimal(t, "late fee", resp.Data.LateFee, "0")
}

func TestSettleUsesDailyRateParameter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 1, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	if _, err := f.params.SetParameter(ctx, models.SetParameterRequest{Key: domain.ParamDailyLateRate, Value: "0.01"}); err != nil {
		t.Fatalf("expected parameter update, got %v", err)
	}

	resp, err := f.settlement.Settle(ctx, bankSettle(contract.Installments[0].ID, accountID, "585000", "2024-04-05"))
	if err != nil {
		t.Fatalf("expected settlement, got %v", err)
	}
	assertDecimal(t, "late fee", resp.Data.LateFee, "285000")
}

func TestListOutstandingQuotesUnpaidInstallments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 3, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	if _, err := f.settlement.Settle(ctx, bankSettle(contract.Installments[0].ID, accountID, "300000", "2024-01-01")); err != nil {
		t.Fatalf("expected settlement, got %v", err)
	}

	resp, err := f.settlement.ListOutstanding(ctx, models.OutstandingRequest{ContractID: contract.ID, AsOf: "2024-05-06"})
	if err != nil {
		t.Fatalf("expected outstanding list, got %v", err)
	}
	rows := *resp.Data
	if len(rows) != 2 {
		t.Fatalf("expected 2 outstanding installments, got %d", len(rows))
	}
	// Installment 2 is due 2024-02-01: 95 days late on 2024-05-06.
	if rows[0].Number != 2 || rows[0].DaysOverdue != 95 {
		t.Fatalf("expected installment 2 with 95 days overdue, got %+v", rows[0])
	}
	assertDecimal(t, "total due", rows[0].TotalDue, "1083750")
	assertDecimal(t, "late fee", rows[1].LateFee, "0")
}

func TestConcurrentSettlementHasSingleWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 1, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")
	req := bankSettle(contract.Installments[0].ID, accountID, "300000", "2024-01-01")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		settled   int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.settlement.Settle(ctx, req)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, commons.ErrAlreadySettled):
				settled++
			}
		}()
	}
	wg.Wait()

	if successes != 1 || settled != 9 {
		t.Fatalf("expected 1 success and 9 AlreadySettled, got %d and %d", successes, settled)
	}
	assertDecimal(t, "bank balance", f.accountBalance(t, accountID), "300000")
}

func TestSettlePublishesEventAndAudit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 1, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	if _, err := f.settlement.Settle(ctx, bankSettle(contract.Installments[0].ID, accountID, "300000", "2024-01-01")); err != nil {
		t.Fatalf("expected settlement, got %v", err)
	}

	keys := f.publisher.keys()
	if len(keys) == 0 || keys[len(keys)-1] != events.RoutingPaymentSettled {
		t.Fatalf("expected %s event, got %v", events.RoutingPaymentSettled, keys)
	}

	audit, err := f.audit.ListAudit(ctx, 10)
	if err != nil {
		t.Fatalf("expected audit list, got %v", err)
	}
	if (*audit.Data)[0].Action != "SETTLE" || !strings.Contains((*audit.Data)[0].Detail, "C-001") {
		t.Fatalf("expected SETTLE audit entry for C-001, got %+v", (*audit.Data)[0])
	}
}

func TestSettleSurvivesPublisherFailure(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")
	contract := f.contract(t, "C-001", "300000", 1, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	if _, err := f.settlement.Settle(context.Background(), bankSettle(contract.Installments[0].ID, accountID, "300000", "2024-01-01")); err != nil {
		t.Fatalf("expected settlement to ignore publish failure, got %v", err)
	}
}
