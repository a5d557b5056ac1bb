package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

func TestCreateContractBuildsMonthlySchedule(t *testing.T) {
	f := newFixture(t)
	contract := f.contract(t, "C-001", "300000", 12, "2024-01-31")

	if len(contract.Installments) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(contract.Installments))
	}
	wantDue := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}
	for i, want := range wantDue {
		if contract.Installments[i].DueDate != want {
			t.Fatalf("expected installment %d due %s, got %s", i+1, want, contract.Installments[i].DueDate)
		}
	}
	for i, inst := range contract.Installments {
		if inst.Number != i+1 {
			t.Fatalf("expected contiguous numbering, got %d at position %d", inst.Number, i)
		}
		if inst.Kind != string(domain.InstallmentRegular) || inst.Status != string(domain.InstallmentPending) {
			t.Fatalf("expected pending regular installment, got %+v", inst)
		}
	}
}

func TestCreateContractRejectsDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	f.contract(t, "C-001", "300000", 2, "2024-01-01")

	_, err := f.schedule.CreateContract(context.Background(), models.CreateContractRequest{
		ContractNumber:    "C-001",
		ClientName:        "Otro Cliente",
		ClientDocument:    "111",
		LotLabel:          "L1",
		ContractDate:      "2024-01-01",
		TotalValue:        "1000",
		InstallmentCount:  1,
		InstallmentAmount: "1000",
	})
	if !errors.Is(err, commons.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestServiceChargesKeepNumberingContiguous(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 3, "2024-01-01")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.schedule.AddServiceCharge(ctx, models.ServiceChargeRequest{
				ContractID:  contract.ID,
				Amount:      "25000",
				DueDate:     "2024-06-01",
				Description: "Recolección de basura",
			}); err != nil {
				t.Errorf("expected service charge, got %v", err)
			}
		}()
	}
	wg.Wait()

	resp, err := f.schedule.ListInstallments(ctx, contract.ID)
	if err != nil {
		t.Fatalf("expected installments, got %v", err)
	}
	rows := *resp.Data
	if len(rows) != 8 {
		t.Fatalf("expected 8 installments, got %d", len(rows))
	}
	for i, inst := range rows {
		if inst.Number != i+1 {
			t.Fatalf("expected number %d, got %d", i+1, inst.Number)
		}
	}
	if rows[7].Kind != string(domain.InstallmentService) {
		t.Fatalf("expected SERVICE installment, got %s", rows[7].Kind)
	}
}

func TestServiceChargeUnknownContract(t *testing.T) {
	f := newFixture(t)

	_, err := f.schedule.AddServiceCharge(context.Background(), models.ServiceChargeRequest{
		ContractID: 404, Amount: "1", DueDate: "2024-01-01", Description: "x",
	})
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestMarkOverdueOnlyTouchesPendingPastDue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contract := f.contract(t, "C-001", "300000", 4, "2024-01-01")
	accountID := f.bankAccount(t, "001-1", "PYG", "0")

	if _, err := f.settlement.Settle(ctx, bankSettle(contract.Installments[0].ID, accountID, "300000", "2024-01-01")); err != nil {
		t.Fatalf("expected settlement, got %v", err)
	}

	count, err := f.schedule.MarkOverdue(ctx, dateOf(t, "2024-03-01"))
	if err != nil {
		t.Fatalf("expected overdue job, got %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 installment marked, got %d", count)
	}

	resp, _ := f.schedule.ListInstallments(ctx, contract.ID)
	statuses := []string{}
	for _, inst := range *resp.Data {
		statuses = append(statuses, inst.Status)
	}
	want := []string{"PAID", "OVERDUE", "PENDING", "PENDING"}
	for i := range want {
		if statuses[i] != want[i] {
			t.Fatalf("expected statuses %v, got %v", want, statuses)
		}
	}
}
