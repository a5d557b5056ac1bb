package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type RecordQuoteRequest struct {
	QuoteDate string `json:"quoteDate"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	Buy       string `json:"buy"`
	Sell      string `json:"sell"`
}

func (r RecordQuoteRequest) Validate() error {
	var v validation
	v.date("quoteDate", r.QuoteDate)
	validateCurrencyPair(&v, "source", r.Source, "target", r.Target)
	v.positiveAmount("buy", r.Buy)
	v.positiveAmount("sell", r.Sell)
	return v.result()
}

type QuoteResponse struct {
	ID        int64           `json:"id"`
	QuoteDate string          `json:"quoteDate"`
	Source    string          `json:"source"`
	Target    string          `json:"target"`
	Buy       decimal.Decimal `json:"buy"`
	Sell      decimal.Decimal `json:"sell"`
}

type ConvertRequest struct {
	Amount string `json:"amount"`
	From   string `json:"from"`
	To     string `json:"to"`
	Date   string `json:"date"`
}

func (r ConvertRequest) Validate() error {
	var v validation
	v.positiveAmount("amount", r.Amount)
	from := strings.ToUpper(strings.TrimSpace(r.From))
	to := strings.ToUpper(strings.TrimSpace(r.To))
	if from != "PYG" && from != "USD" {
		v.add("from must be PYG or USD")
	}
	if to != "PYG" && to != "USD" {
		v.add("to must be PYG or USD")
	}
	v.date("date", r.Date)
	return v.result()
}

type ConvertResponse struct {
	Amount          decimal.Decimal `json:"amount"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	RateUsed        decimal.Decimal `json:"rateUsed"`
	RateKind        string          `json:"rateKind,omitempty"`
	QuoteDate       string          `json:"quoteDate,omitempty"`
}

func validateCurrencyPair(v *validation, sourceField, source, targetField, target string) {
	src := strings.ToUpper(strings.TrimSpace(source))
	dst := strings.ToUpper(strings.TrimSpace(target))
	if src != "PYG" && src != "USD" {
		v.add(sourceField + " must be PYG or USD")
	}
	if dst != "PYG" && dst != "USD" {
		v.add(targetField + " must be PYG or USD")
	}
	if src != "" && src == dst {
		v.add(sourceField + " and " + targetField + " must differ")
	}
}
