package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositStatus string

const (
	DepositConfirmed DepositStatus = "CONFIRMED"
	DepositVoided    DepositStatus = "VOIDED"
)

type DepositSource string

const (
	DepositSourceExternal   DepositSource = "EXTERNAL"
	DepositSourceRegister   DepositSource = "REGISTER"
	DepositSourceSettlement DepositSource = "SETTLEMENT"
	DepositSourceTransfer   DepositSource = "TRANSFER"
	DepositSourceExpense    DepositSource = "EXPENSE"
)

// Deposit is a bank ledger entry. Amount is signed: outgoing transfer legs
// are negative.
type Deposit struct {
	ID                   int64
	BankAccountID        int64
	DepositDate          time.Time
	Amount               decimal.Decimal
	Reference            string
	Concept              string
	Status               DepositStatus
	Source               DepositSource
	CounterpartAccountID *int64
	PaymentID            *int64
	OperatorID           string
	CreatedAt            time.Time
}

type DepositTotals struct {
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
	Count    int
}

// SumConfirmedDeposits adds up confirmed deposits split by sign.
func SumConfirmedDeposits(deposits []Deposit) DepositTotals {
	totals := DepositTotals{TotalIn: decimal.Zero, TotalOut: decimal.Zero}
	for _, d := range deposits {
		if d.Status != DepositConfirmed {
			continue
		}
		if d.Amount.IsNegative() {
			totals.TotalOut = totals.TotalOut.Add(d.Amount.Abs())
		} else {
			totals.TotalIn = totals.TotalIn.Add(d.Amount)
		}
		totals.Count++
	}
	return totals
}
