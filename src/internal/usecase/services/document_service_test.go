package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
)

func TestOwnerSettlementSplitsPayments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	subdivision, err := f.schedule.CreateSubdivision(ctx, models.CreateSubdivisionRequest{
		Name: "Villa Verde", AgencyCommission: "30", OwnerCommission: "70",
	})
	if err != nil {
		t.Fatalf("expected subdivision, got %v", err)
	}

	created, err := f.schedule.CreateContract(ctx, models.CreateContractRequest{
		ContractNumber:    "VV-1",
		ClientName:        "Juan Perez",
		ClientDocument:    "1234567",
		LotLabel:          "Lote 4",
		SubdivisionID:     &subdivision.Data.ID,
		ContractDate:      "2024-01-01",
		TotalValue:        "10000000",
		InstallmentCount:  3,
		InstallmentAmount: "300000",
	})
	if err != nil {
		t.Fatalf("expected contract, got %v", err)
	}
	accountID := f.bankAccount(t, "001-1", "PYG", "0")
	for i, date := range []string{"2024-01-05", "2024-02-05"} {
		if _, err := f.settlement.Settle(ctx, bankSettle(created.Data.Installments[i].ID, accountID, "300000", date)); err != nil {
			t.Fatalf("expected settlement, got %v", err)
		}
	}
	if _, err := f.settlement.Settle(ctx, bankSettle(created.Data.Installments[2].ID, accountID, "300000", "2024-04-05")); err != nil {
		t.Fatalf("expected settlement, got %v", err)
	}

	resp, err := f.documents.OwnerSettlement(ctx, models.OwnerSettlementRequest{
		SubdivisionID: subdivision.Data.ID, From: "2024-01-01", To: "2024-02-29",
	})
	if err != nil {
		t.Fatalf("expected owner settlement, got %v", err)
	}
	report := resp.Data
	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 payments in period, got %d", len(report.Rows))
	}
	assertDecimal(t, "total collected", report.TotalCollected, "600000")
	assertDecimal(t, "agency share", report.TotalAgency, "180000")
	assertDecimal(t, "owner share", report.TotalOwner, "420000")
	if report.SubdivisionName != "Villa Verde" {
		t.Fatalf("expected subdivision name, got %q", report.SubdivisionName)
	}
}

func TestReceiptDescribesInstallment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 12, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	payment, err := f.settlement.Settle(ctx, bankSettle(contract.Installments[1].ID, accountID, "300000", "2024-02-01"))
	if err != nil {
		t.Fatalf("expected settlement, got %v", err)
	}

	receipt, err := f.documents.Receipt(ctx, payment.Data.ID)
	if err != nil {
		t.Fatalf("expected receipt, got %v", err)
	}
	if receipt.Data.Concept != "Cuota 2 de 12" || receipt.Data.ContractNumber != "C-001" {
		t.Fatalf("expected installment concept, got %+v", receipt.Data)
	}
	if receipt.Data.Company.Name == "" {
		t.Fatalf("expected default company name")
	}

	if _, err := f.documents.Receipt(ctx, 999); !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestAccountStatementSummarizesContracts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 3, "2024-01-01")
	f.contract(t, "C-002", "100000", 2, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	if _, err := f.settlement.Settle(ctx, bankSettle(contract.Installments[0].ID, accountID, "300000", "2024-01-01")); err != nil {
		t.Fatalf("expected settlement, got %v", err)
	}

	resp, err := f.documents.AccountStatement(ctx, "4567890")
	if err != nil {
		t.Fatalf("expected statement, got %v", err)
	}
	if len(resp.Data.Contracts) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(resp.Data.Contracts))
	}
	first := resp.Data.Contracts[0]
	assertDecimal(t, "scheduled", first.TotalScheduled, "900000")
	assertDecimal(t, "paid", first.TotalPaid, "300000")
	assertDecimal(t, "balance", first.Balance, "600000")
	if len(first.Payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(first.Payments))
	}

	if _, err := f.documents.AccountStatement(ctx, "0000"); !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
