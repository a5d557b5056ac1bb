package repo_interfaces

import (
	"context"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote domain.ExchangeQuote) (domain.ExchangeQuote, error)
	List(ctx context.Context) ([]domain.ExchangeQuote, error)
	GetForDate(ctx context.Context, quoteDate time.Time, source, target domain.Currency) (domain.ExchangeQuote, error)
	GetLatest(ctx context.Context, source, target domain.Currency) (domain.ExchangeQuote, error)
}
