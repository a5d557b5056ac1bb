package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeQuote is stored with the foreign currency as Source and the local
// currency as Target. Buy converts Source to Target; Sell converts Target
// back to Source.
type ExchangeQuote struct {
	ID        int64
	QuoteDate time.Time
	Source    Currency
	Target    Currency
	Buy       decimal.Decimal
	Sell      decimal.Decimal
	CreatedAt time.Time
}

// QuotePair orders a currency pair the way quotes are stored.
func QuotePair(a, b Currency) (Currency, Currency) {
	if a == CurrencyPYG {
		return b, a
	}
	return a, b
}

const (
	RateKindBuy  = "BUY"
	RateKindSell = "SELL"
)

// Conversion is the outcome of converting an amount between two currencies.
// QuoteDate is nil when no quote was needed.
type Conversion struct {
	Amount    decimal.Decimal
	Converted decimal.Decimal
	Rate      decimal.Decimal
	RateKind  string
	QuoteDate *time.Time
}
