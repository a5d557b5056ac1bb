package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InstallmentKind string

const (
	InstallmentRegular InstallmentKind = "REGULAR"
	InstallmentService InstallmentKind = "SERVICE"
)

type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "PENDING"
	InstallmentPaid    InstallmentStatus = "PAID"
	InstallmentOverdue InstallmentStatus = "OVERDUE"
)

// Installment numbers are unique per contract and contiguous from 1.
type Installment struct {
	ID           int64
	ContractID   int64
	Number       int
	DueDate      time.Time
	Amount       decimal.Decimal
	Kind         InstallmentKind
	Status       InstallmentStatus
	PaidDate     *time.Time
	PaidAmount   decimal.NullDecimal
	Observations string
}

func (i Installment) Settled() bool {
	return i.Status == InstallmentPaid
}

// ScheduleInstallments generates count regular installments due monthly,
// the first one on firstDue.
func ScheduleInstallments(contractID int64, count int, amount decimal.Decimal, firstDue time.Time) []Installment {
	out := make([]Installment, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, Installment{
			ContractID: contractID,
			Number:     i,
			DueDate:    AddMonths(firstDue, i-1),
			Amount:     amount,
			Kind:       InstallmentRegular,
			Status:     InstallmentPending,
		})
	}
	return out
}

// AddMonths moves t forward n calendar months, clamping to the last day of
// the target month instead of overflowing into the next one.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
