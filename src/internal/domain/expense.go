package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	ExpensePending ExpenseStatus = "PENDING"
	ExpensePaid    ExpenseStatus = "PAID"
	ExpenseVoided  ExpenseStatus = "VOIDED"
)

// Expense is a supplier invoice the business owes. It leaves the ledger
// untouched until it is paid from a register or a bank account.
type Expense struct {
	ID            int64
	Supplier      string
	Category      string
	Detail        string
	InvoiceNumber string
	InvoiceDate   time.Time
	Amount        decimal.Decimal
	Status        ExpenseStatus
	PaidDate      *time.Time
	PaymentMethod PaymentMethod
	BankAccountID *int64
	OperatorID    string
	CreatedAt     time.Time
}

// PaymentLabel is the number printed on ledger concepts for this expense:
// the invoice number when present, the internal id otherwise.
func (e Expense) PaymentLabel() string {
	if e.InvoiceNumber != "" {
		return e.InvoiceNumber
	}
	return strconv.FormatInt(e.ID, 10)
}
