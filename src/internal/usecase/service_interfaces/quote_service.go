package service_interfaces

import (
	"context"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/shopspring/decimal"
)

type QuoteService interface {
	RecordQuote(ctx context.Context, req models.RecordQuoteRequest) (commons.Response[models.QuoteResponse], error)
	ListQuotes(ctx context.Context) (commons.Response[[]models.QuoteResponse], error)
	FindQuote(ctx context.Context, date time.Time, a, b domain.Currency) (domain.ExchangeQuote, error)
	ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to domain.Currency, date time.Time) (domain.Conversion, error)
	Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error)
}
