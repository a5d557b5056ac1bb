package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Supplier      string `json:"supplier"`
	Category      string `json:"category"`
	Detail        string `json:"detail"`
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	Amount        string `json:"amount"`
	OperatorID    string `json:"-"`
}

func (r CreateExpenseRequest) Validate() error {
	var v validation
	v.required("supplier", r.Supplier)
	v.required("category", r.Category)
	v.required("invoiceDate", r.InvoiceDate)
	v.date("invoiceDate", r.InvoiceDate)
	v.positiveAmount("amount", r.Amount)
	return v.result()
}

type PayExpenseRequest struct {
	ExpenseID     int64  `json:"-"`
	Method        string `json:"method"`
	BankAccountID *int64 `json:"bankAccountId,omitempty"`
	PaidDate      string `json:"paidDate"`
	Reference     string `json:"reference"`
	SessionID     string `json:"-"`
	OperatorID    string `json:"-"`
}

func (r PayExpenseRequest) Validate() error {
	var v validation
	v.positiveID("expenseId", r.ExpenseID)
	v.date("paidDate", r.PaidDate)

	switch strings.ToUpper(strings.TrimSpace(r.Method)) {
	case "CASH":
	case "BANK_TRANSFER", "CHECK":
		if r.BankAccountID == nil || *r.BankAccountID <= 0 {
			v.add("bankAccountId is required for non-cash payments")
		}
	default:
		v.add("method must be one of CASH, BANK_TRANSFER, CHECK")
	}
	return v.result()
}

type ExpenseResponse struct {
	ID            int64           `json:"id"`
	Supplier      string          `json:"supplier"`
	Category      string          `json:"category"`
	Detail        string          `json:"detail,omitempty"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	InvoiceDate   string          `json:"invoiceDate"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	PaidDate      string          `json:"paidDate,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	BankAccountID *int64          `json:"bankAccountId,omitempty"`
}
