package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
)

const quoteColumns = `id, quote_date, source, target, buy, sell, created_at`

type QuoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, quote domain.ExchangeQuote) (domain.ExchangeQuote, error) {
	logger.Info("quote repository create", logger.Fields{
		"quoteDate": quote.QuoteDate.Format("2006-01-02"),
		"source":    quote.Source,
		"target":    quote.Target,
	})

	created, err := scanQuote(r.db.QueryRowContext(ctx, `
INSERT INTO exchange_quotes (quote_date, source, target, buy, sell)
VALUES ($1, $2, $3, $4::numeric, $5::numeric)
RETURNING `+quoteColumns,
		domain.CivilDate(quote.QuoteDate),
		quote.Source,
		quote.Target,
		quote.Buy,
		quote.Sell,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ExchangeQuote{}, commons.ErrDuplicate
		}
		logger.Error("quote repository create failed", err, nil)
		return domain.ExchangeQuote{}, fmt.Errorf("create exchange quote: %w", err)
	}
	return created, nil
}

func (r *QuoteRepository) List(ctx context.Context) ([]domain.ExchangeQuote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+quoteColumns+` FROM exchange_quotes ORDER BY quote_date DESC, id`)
	if err != nil {
		logger.Error("quote repository list failed", err, nil)
		return nil, fmt.Errorf("list exchange quotes: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ExchangeQuote, 0)
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exchange quote row: %w", err)
		}
		out = append(out, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchange quote rows: %w", err)
	}
	return out, nil
}

func (r *QuoteRepository) GetForDate(ctx context.Context, quoteDate time.Time, source, target domain.Currency) (domain.ExchangeQuote, error) {
	return r.get(ctx, `
SELECT `+quoteColumns+`
FROM exchange_quotes
WHERE source = $1 AND target = $2 AND quote_date = $3::date`, source, target, domain.CivilDate(quoteDate))
}

func (r *QuoteRepository) GetLatest(ctx context.Context, source, target domain.Currency) (domain.ExchangeQuote, error) {
	return r.get(ctx, `
SELECT `+quoteColumns+`
FROM exchange_quotes
WHERE source = $1 AND target = $2
ORDER BY quote_date DESC, id DESC
LIMIT 1`, source, target)
}

func (r *QuoteRepository) get(ctx context.Context, query string, args ...any) (domain.ExchangeQuote, error) {
	quote, err := scanQuote(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ExchangeQuote{}, commons.ErrRecordNotFound
		}
		logger.Error("quote repository get failed", err, nil)
		return domain.ExchangeQuote{}, fmt.Errorf("get exchange quote: %w", err)
	}
	return quote, nil
}

func scanQuote(row rowScanner) (domain.ExchangeQuote, error) {
	var quote domain.ExchangeQuote
	var source, target string
	if err := row.Scan(&quote.ID, &quote.QuoteDate, &source, &target, &quote.Buy, &quote.Sell, &quote.CreatedAt); err != nil {
		return domain.ExchangeQuote{}, err
	}
	quote.Source = domain.Currency(strings.TrimSpace(source))
	quote.Target = domain.Currency(strings.TrimSpace(target))
	return quote, nil
}
