package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LateFeePolicy charges simple daily interest on regular installments paid
// more than GraceDays after their due date. Service charges never accrue it.
type LateFeePolicy struct {
	GraceDays int
	DailyRate decimal.Decimal
}

// DaysOverdue counts whole calendar days between due and paid, never negative.
func DaysOverdue(due, paid time.Time) int {
	d := CivilDate(due)
	p := CivilDate(paid)
	if !p.After(d) {
		return 0
	}
	return int(p.Sub(d).Hours() / 24)
}

// Charge returns the late fee rounded to two decimals.
func (p LateFeePolicy) Charge(kind InstallmentKind, amount decimal.Decimal, daysOverdue int) decimal.Decimal {
	if kind != InstallmentRegular || daysOverdue <= p.GraceDays {
		return decimal.Zero
	}
	return amount.Mul(p.DailyRate).Mul(decimal.NewFromInt(int64(daysOverdue))).Round(2)
}

// CivilDate strips the clock and location from t.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
