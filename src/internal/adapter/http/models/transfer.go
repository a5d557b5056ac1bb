package models

import "github.com/shopspring/decimal"

type TransferRequest struct {
	SourceAccountID      int64  `json:"sourceAccountId"`
	DestinationAccountID int64  `json:"destinationAccountId"`
	Amount               string `json:"amount"`
	TransferDate         string `json:"transferDate"`
	Concept              string `json:"concept"`
	OperatorID           string `json:"-"`
}

func (r TransferRequest) Validate() error {
	var v validation
	v.positiveID("sourceAccountId", r.SourceAccountID)
	v.positiveID("destinationAccountId", r.DestinationAccountID)
	if r.SourceAccountID > 0 && r.SourceAccountID == r.DestinationAccountID {
		v.add("sourceAccountId and destinationAccountId cannot be the same")
		v.invalidAmount = true
	}
	v.positiveAmount("amount", r.Amount)
	v.date("transferDate", r.TransferDate)
	return v.result()
}

type TransferResponse struct {
	SourceAccountID      int64           `json:"sourceAccountId"`
	DestinationAccountID int64           `json:"destinationAccountId"`
	DebitAmount          decimal.Decimal `json:"debitAmount"`
	DebitCurrency        string          `json:"debitCurrency"`
	CreditAmount         decimal.Decimal `json:"creditAmount"`
	CreditCurrency       string          `json:"creditCurrency"`
	Rate                 decimal.Decimal `json:"rate"`
	RateKind             string          `json:"rateKind,omitempty"`
	QuoteDate            string          `json:"quoteDate,omitempty"`
	DebitDepositID       int64           `json:"debitDepositId"`
	CreditDepositID      int64           `json:"creditDepositId"`
	TransferDate         string          `json:"transferDate"`
}
