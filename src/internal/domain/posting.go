package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementPosting is everything the ledger needs to settle an installment
// in one unit of work.
type SettlementPosting struct {
	InstallmentID    int64
	Payment          Payment
	SessionID        string
	MovementConcept  string
	DepositConcept   string
	DepositReference string
}

type DepositPosting struct {
	Deposit         Deposit
	SessionID       string
	MovementConcept string
}

type OpenRegisterPosting struct {
	RegisterID    int64
	OpeningAmount decimal.Decimal
	OperatorID    string
	SessionID     string
	Concept       string
	OpenedAt      time.Time
}

type CloseRegisterPosting struct {
	RegisterID int64
	SessionID  string
	Concept    string
	ClosedAt   time.Time
}

type MovementPosting struct {
	SessionID  string
	Kind       MovementKind
	Amount     decimal.Decimal
	Concept    string
	OperatorID string
	OccurredAt time.Time
}

type TransferPosting struct {
	SourceAccountID      int64
	DestinationAccountID int64
	DebitAmount          decimal.Decimal
	CreditAmount         decimal.Decimal
	TransferDate         time.Time
	SourceConcept        string
	DestinationConcept   string
	Reference            string
	OperatorID           string
}

type TransferResult struct {
	Source        BankAccount
	Destination   BankAccount
	DebitDeposit  Deposit
	CreditDeposit Deposit
	DebitAmount   decimal.Decimal
	CreditAmount  decimal.Decimal
	Rate          decimal.Decimal
	RateKind      string
	QuoteDate     *time.Time
}

// ExpensePaymentPosting pays a pending expense in cash from the session's
// register or by debiting BankAccountID.
type ExpensePaymentPosting struct {
	ExpenseID       int64
	Method          PaymentMethod
	BankAccountID   *int64
	SessionID       string
	PaidDate        time.Time
	Reference       string
	MovementConcept string
	DepositConcept  string
	OperatorID      string
}
