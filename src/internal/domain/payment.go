package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCheck        PaymentMethod = "CHECK"
	PaymentCard         PaymentMethod = "CARD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentBankTransfer, PaymentCheck, PaymentCard:
		return true
	}
	return false
}

type Payment struct {
	ID            int64
	ContractID    int64
	InstallmentID *int64
	Amount        decimal.Decimal
	PaymentDate   time.Time
	Method        PaymentMethod
	Reference     string
	Observations  string
	BankAccountID *int64
	OperatorID    string
	LateFee       decimal.Decimal
	DaysOverdue   int
	CreatedAt     time.Time
}
