package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	BankAccountID int64  `json:"bankAccountId"`
	Amount        string `json:"amount"`
	DepositDate   string `json:"depositDate"`
	Reference     string `json:"reference"`
	Concept       string `json:"concept"`
	Source        string `json:"source"`
	SessionID     string `json:"-"`
	OperatorID    string `json:"-"`
}

func (r DepositRequest) Validate() error {
	var v validation
	v.positiveID("bankAccountId", r.BankAccountID)
	v.positiveAmount("amount", r.Amount)
	v.date("depositDate", r.DepositDate)

	source := strings.ToUpper(strings.TrimSpace(r.Source))
	if source != "" && source != "EXTERNAL" && source != "REGISTER" {
		v.add("source must be EXTERNAL or REGISTER")
	}
	return v.result()
}

type DepositResponse struct {
	ID                   int64           `json:"id"`
	BankAccountID        int64           `json:"bankAccountId"`
	DepositDate          string          `json:"depositDate"`
	Amount               decimal.Decimal `json:"amount"`
	Reference            string          `json:"reference,omitempty"`
	Concept              string          `json:"concept,omitempty"`
	Status               string          `json:"status"`
	Source               string          `json:"source"`
	CounterpartAccountID *int64          `json:"counterpartAccountId,omitempty"`
	PaymentID            *int64          `json:"paymentId,omitempty"`
}

type StatementRequest struct {
	BankAccountID int64  `json:"-"`
	From          string `json:"from"`
	To            string `json:"to"`
}

func (r StatementRequest) Validate() error {
	var v validation
	v.positiveID("bankAccountId", r.BankAccountID)
	v.date("from", r.From)
	v.date("to", r.To)
	return v.result()
}

type StatementResponse struct {
	Account  BankAccountResponse `json:"account"`
	From     string              `json:"from,omitempty"`
	To       string              `json:"to,omitempty"`
	Deposits []DepositResponse   `json:"deposits"`
	TotalIn  decimal.Decimal     `json:"totalIn"`
	TotalOut decimal.Decimal     `json:"totalOut"`
}
