package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type CreateBankAccountRequest struct {
	Institution    string `json:"institution"`
	AccountNumber  string `json:"accountNumber"`
	Holder         string `json:"holder"`
	AccountType    string `json:"accountType"`
	Currency       string `json:"currency"`
	OpeningBalance string `json:"openingBalance"`
}

func (r CreateBankAccountRequest) Validate() error {
	var v validation
	v.required("institution", r.Institution)
	v.required("accountNumber", r.AccountNumber)
	v.required("holder", r.Holder)

	accountType := strings.ToUpper(strings.TrimSpace(r.AccountType))
	if accountType != "CHECKING" && accountType != "SAVINGS" {
		v.add("accountType must be CHECKING or SAVINGS")
	}
	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if currency != "PYG" && currency != "USD" {
		v.add("currency must be PYG or USD")
	}
	if strings.TrimSpace(r.OpeningBalance) != "" {
		v.nonNegativeAmount("openingBalance", r.OpeningBalance)
	}
	return v.result()
}

type BankAccountResponse struct {
	ID             int64           `json:"id"`
	Institution    string          `json:"institution"`
	AccountNumber  string          `json:"accountNumber"`
	Holder         string          `json:"holder"`
	AccountType    string          `json:"accountType"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
}

type ReconciliationResponse struct {
	Entity        string          `json:"entity"`
	ID            int64           `json:"id"`
	StoredBalance decimal.Decimal `json:"storedBalance"`
	LedgerBalance decimal.Decimal `json:"ledgerBalance"`
	Difference    decimal.Decimal `json:"difference"`
	Balanced      bool            `json:"balanced"`
}
