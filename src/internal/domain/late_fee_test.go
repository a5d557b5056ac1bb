package domain_test

import (
	"testing"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysOverdue(t *testing.T) {
	due := date(2024, time.January, 10)

	cases := []struct {
		name string
		paid time.Time
		want int
	}{
		{name: "early", paid: date(2024, time.January, 1), want: 0},
		{name: "on due date", paid: due, want: 0},
		{name: "same day later hour", paid: due.Add(23 * time.Hour), want: 0},
		{name: "ninety days", paid: due.AddDate(0, 0, 90), want: 90},
		{name: "ninety five days", paid: due.AddDate(0, 0, 95), want: 95},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.DaysOverdue(due, tc.paid); got != tc.want {
				t.Fatalf("expected %d days, got %d", tc.want, got)
			}
		})
	}
}

func TestLateFeePolicyCharge(t *testing.T) {
	policy := domain.LateFeePolicy{GraceDays: 90, DailyRate: decimal.RequireFromString("0.0275")}
	amount := decimal.NewFromInt(300000)

	cases := []struct {
		name string
		kind domain.InstallmentKind
		days int
		want string
	}{
		{name: "within grace", kind: domain.InstallmentRegular, days: 90, want: "0"},
		{name: "first day past grace", kind: domain.InstallmentRegular, days: 91, want: "750750"},
		{name: "ninety five days", kind: domain.InstallmentRegular, days: 95, want: "783750"},
		{name: "service charge never accrues", kind: domain.InstallmentService, days: 200, want: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.Charge(tc.kind, amount, tc.days)
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected late fee %s, got %s", tc.want, got.String())
			}
		})
	}
}

func TestScheduleInstallmentsMonthlyAndContiguous(t *testing.T) {
	items := domain.ScheduleInstallments(4, 3, decimal.NewFromInt(500000), date(2024, time.January, 31))
	if len(items) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(items))
	}

	wantDue := []time.Time{date(2024, time.January, 31), date(2024, time.February, 29), date(2024, time.March, 31)}
	for i, item := range items {
		if item.Number != i+1 {
			t.Fatalf("expected number %d, got %d", i+1, item.Number)
		}
		if !item.DueDate.Equal(wantDue[i]) {
			t.Fatalf("expected due date %s, got %s", wantDue[i].Format("2006-01-02"), item.DueDate.Format("2006-01-02"))
		}
		if item.Kind != domain.InstallmentRegular || item.Status != domain.InstallmentPending {
			t.Fatalf("unexpected kind/status %s/%s", item.Kind, item.Status)
		}
	}
}

func TestQuotePairStoresForeignCurrencyFirst(t *testing.T) {
	src, dst := domain.QuotePair(domain.CurrencyPYG, domain.CurrencyUSD)
	if src != domain.CurrencyUSD || dst != domain.CurrencyPYG {
		t.Fatalf("expected USD/PYG, got %s/%s", src, dst)
	}
}

func TestSumMovementsTreatsTransferAsOutflow(t *testing.T) {
	totals := domain.SumMovements([]domain.Movement{
		{Kind: domain.MovementIngress, Amount: decimal.NewFromInt(100000)},
		{Kind: domain.MovementEgress, Amount: decimal.NewFromInt(5000)},
		{Kind: domain.MovementTransfer, Amount: decimal.NewFromInt(20000)},
	})
	if !totals.TotalIn.Equal(decimal.NewFromInt(100000)) || !totals.TotalOut.Equal(decimal.NewFromInt(25000)) || totals.Count != 3 {
		t.Fatalf("unexpected totals in=%s out=%s count=%d", totals.TotalIn, totals.TotalOut, totals.Count)
	}
}
