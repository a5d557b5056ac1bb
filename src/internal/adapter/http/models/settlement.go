package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type SettleInstallmentRequest struct {
	InstallmentID  int64  `json:"installmentId"`
	AmountReceived string `json:"amountReceived"`
	PaymentDate    string `json:"paymentDate"`
	Method         string `json:"method"`
	BankAccountID  *int64 `json:"bankAccountId,omitempty"`
	Reference      string `json:"reference"`
	Observations   string `json:"observations"`
	SessionID      string `json:"-"`
	OperatorID     string `json:"-"`
}

func (r SettleInstallmentRequest) Validate() error {
	var v validation
	v.positiveID("installmentId", r.InstallmentID)
	v.positiveAmount("amountReceived", r.AmountReceived)
	v.date("paymentDate", r.PaymentDate)

	switch strings.ToUpper(strings.TrimSpace(r.Method)) {
	case "CASH", "BANK_TRANSFER", "CHECK", "CARD":
	default:
		v.add("method must be one of CASH, BANK_TRANSFER, CHECK, CARD")
	}
	if r.BankAccountID != nil && *r.BankAccountID <= 0 {
		v.add("bankAccountId must be a positive id")
	}
	return v.result()
}

type PaymentResponse struct {
	ID             int64           `json:"id"`
	ContractID     int64           `json:"contractId"`
	InstallmentID  *int64          `json:"installmentId,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    string          `json:"paymentDate"`
	Method         string          `json:"method"`
	Reference      string          `json:"reference,omitempty"`
	Observations   string          `json:"observations,omitempty"`
	BankAccountID  *int64          `json:"bankAccountId,omitempty"`
	LateFee        decimal.Decimal `json:"lateFee"`
	DaysOverdue    int             `json:"daysOverdue"`
	RequiredAmount decimal.Decimal `json:"requiredAmount"`
}

type OutstandingRequest struct {
	ContractID int64  `json:"-"`
	AsOf       string `json:"asOf"`
}

func (r OutstandingRequest) Validate() error {
	var v validation
	v.positiveID("contractId", r.ContractID)
	v.date("asOf", r.AsOf)
	return v.result()
}

type OutstandingInstallmentResponse struct {
	InstallmentID int64           `json:"installmentId"`
	Number        int             `json:"number"`
	Kind          string          `json:"kind"`
	Status        string          `json:"status"`
	DueDate       string          `json:"dueDate"`
	Amount        decimal.Decimal `json:"amount"`
	DaysOverdue   int             `json:"daysOverdue"`
	LateFee       decimal.Decimal `json:"lateFee"`
	TotalDue      decimal.Decimal `json:"totalDue"`
}
